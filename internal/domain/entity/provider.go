package entity

import (
	"fmt"

	"github.com/google/uuid"
)

type ProviderKind string

const (
	ProviderKindGrooming ProviderKind = "grooming"
	ProviderKindDoctor   ProviderKind = "doctor"
)

// Provider identifies whose calendar a schedule or booking belongs to: a
// specific doctor, or the single shared grooming queue.
type Provider struct {
	Kind     ProviderKind
	DoctorID uuid.UUID
}

func GroomingProvider() Provider {
	return Provider{Kind: ProviderKindGrooming}
}

func DoctorProvider(doctorID uuid.UUID) Provider {
	return Provider{Kind: ProviderKindDoctor, DoctorID: doctorID}
}

// ProviderFromDoctorID maps a nullable doctor column to a provider.
func ProviderFromDoctorID(doctorID *uuid.UUID) Provider {
	if doctorID == nil || *doctorID == uuid.Nil {
		return GroomingProvider()
	}
	return DoctorProvider(*doctorID)
}

func (p Provider) IsGrooming() bool {
	return p.Kind == ProviderKindGrooming
}

// Key is the persisted, non-null form used in unique indexes.
func (p Provider) Key() string {
	if p.IsGrooming() {
		return string(ProviderKindGrooming)
	}
	return fmt.Sprintf("%s:%s", ProviderKindDoctor, p.DoctorID)
}

// DoctorIDPtr returns nil for the grooming provider.
func (p Provider) DoctorIDPtr() *uuid.UUID {
	if p.IsGrooming() {
		return nil
	}
	id := p.DoctorID
	return &id
}

func (p Provider) String() string {
	return p.Key()
}

package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "Pending"
	BookingStatusConfirmed BookingStatus = "Confirmed"
	BookingStatusCheckedIn BookingStatus = "Checked-In"
	BookingStatusCompleted BookingStatus = "Completed"
	BookingStatusCancelled BookingStatus = "Cancelled"
	BookingStatusNoShow    BookingStatus = "No-Show"
)

var bookingStatuses = map[string]BookingStatus{
	string(BookingStatusPending):   BookingStatusPending,
	string(BookingStatusConfirmed): BookingStatusConfirmed,
	string(BookingStatusCheckedIn): BookingStatusCheckedIn,
	string(BookingStatusCompleted): BookingStatusCompleted,
	string(BookingStatusCancelled): BookingStatusCancelled,
	string(BookingStatusNoShow):    BookingStatusNoShow,
}

func ParseBookingStatus(s string) (BookingStatus, bool) {
	status, ok := bookingStatuses[s]
	return status, ok
}

// IsTerminal reports whether no transition out of the status is defined.
func (s BookingStatus) IsTerminal() bool {
	switch s {
	case BookingStatusCompleted, BookingStatusCancelled, BookingStatusNoShow:
		return true
	}
	return false
}

type BookingType string

const (
	BookingTypeGrooming BookingType = "grooming"
	BookingTypeMedical  BookingType = "medical"
)

// Lifecycle windows, measured from the scheduled time.
const (
	CheckInOpensBefore = 60 * time.Minute
	CheckInClosesAfter = 15 * time.Minute
	NoShowAfter        = 15 * time.Minute
	CompletionAfter    = 60 * time.Minute
)

// Booking is a single appointment. DoctorID is nil for grooming bookings.
type Booking struct {
	ID                 uuid.UUID     `gorm:"type:uuid;primaryKey" json:"id"`
	CustomerID         uuid.UUID     `gorm:"type:uuid;not null;index" json:"customer_id"`
	PetID              uuid.UUID     `gorm:"type:uuid;not null;index" json:"pet_id"`
	DoctorID           *uuid.UUID    `gorm:"type:uuid;index" json:"doctor_id,omitempty"`
	Type               BookingType   `gorm:"type:varchar(20);not null" json:"type"`
	ScheduledAt        time.Time     `gorm:"not null;index" json:"scheduled_at"`
	ServiceDescription string        `gorm:"type:text" json:"service_description"`
	Status             BookingStatus `gorm:"type:varchar(20);not null;index" json:"status"`
	CheckedInAt        *time.Time    `json:"checked_in_at,omitempty"`
	CreatedAt          time.Time     `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time     `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Customer *User `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Pet      *Pet  `gorm:"foreignKey:PetID" json:"pet,omitempty"`
	Doctor   *User `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
}

func (Booking) TableName() string {
	return "bookings"
}

func (b *Booking) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

func (b *Booking) Provider() Provider {
	return ProviderFromDoctorID(b.DoctorID)
}

func (b *Booking) IsConfirmed() bool {
	return b.Status == BookingStatusConfirmed
}

func (b *Booking) IsCancelled() bool {
	return b.Status == BookingStatusCancelled
}

func (b *Booking) OwnedBy(customerID uuid.UUID) bool {
	return b.CustomerID == customerID
}

func (b *Booking) AssignedTo(doctorID uuid.UUID) bool {
	return b.DoctorID != nil && *b.DoctorID == doctorID
}

package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AdoptionRequestStatus string

const (
	AdoptionRequestPending  AdoptionRequestStatus = "pending"
	AdoptionRequestApproved AdoptionRequestStatus = "approved"
	AdoptionRequestRejected AdoptionRequestStatus = "rejected"
)

// AdoptionRequest is a customer's request to adopt a listed pet.
type AdoptionRequest struct {
	ID        uuid.UUID             `gorm:"type:uuid;primaryKey" json:"id"`
	PetID     uuid.UUID             `gorm:"type:uuid;not null;index" json:"pet_id"`
	AdopterID uuid.UUID             `gorm:"type:uuid;not null;index" json:"adopter_id"`
	Status    AdoptionRequestStatus `gorm:"type:varchar(20);not null;index" json:"status"`
	DecidedAt *time.Time            `json:"decided_at,omitempty"`
	CreatedAt time.Time             `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time             `gorm:"autoUpdateTime" json:"updated_at"`

	Pet     *Pet  `gorm:"foreignKey:PetID" json:"pet,omitempty"`
	Adopter *User `gorm:"foreignKey:AdopterID" json:"adopter,omitempty"`
}

func (AdoptionRequest) TableName() string {
	return "adoption_requests"
}

func (a *AdoptionRequest) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

func (a *AdoptionRequest) IsPending() bool {
	return a.Status == AdoptionRequestPending
}

package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AdoptionStatus string

const (
	AdoptionStatusNotAvailable AdoptionStatus = "not_available"
	AdoptionStatusAvailable    AdoptionStatus = "available"
	AdoptionStatusPending      AdoptionStatus = "pending"
	AdoptionStatusAdopted      AdoptionStatus = "adopted"
)

// Pet is owned by a customer, or by an admin while listed for adoption.
type Pet struct {
	ID               uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	OwnerID          uuid.UUID      `gorm:"type:uuid;not null;index" json:"owner_id"`
	Name             string         `gorm:"type:varchar(100);not null" json:"name"`
	Category         string         `gorm:"type:varchar(50);not null" json:"category"`
	Breed            string         `gorm:"type:varchar(100)" json:"breed,omitempty"`
	Age              int            `gorm:"not null" json:"age"`
	MedicalCondition string         `gorm:"type:text" json:"medical_condition,omitempty"`
	PhotoURL         string         `gorm:"type:text" json:"photo_url,omitempty"`
	AdoptionStatus   AdoptionStatus `gorm:"type:varchar(20);not null;index" json:"adoption_status"`
	CreatedAt        time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time      `gorm:"autoUpdateTime" json:"updated_at"`

	Owner         *User          `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	Immunizations []Immunization `gorm:"foreignKey:PetID" json:"immunizations,omitempty"`
}

func (Pet) TableName() string {
	return "pets"
}

func (p *Pet) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.AdoptionStatus == "" {
		p.AdoptionStatus = AdoptionStatusNotAvailable
	}
	return nil
}

// Immunization is a vaccine record of a pet.
type Immunization struct {
	ID          int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	PetID       uuid.UUID  `gorm:"type:uuid;not null;index" json:"pet_id"`
	VaccineName string     `gorm:"type:varchar(100);not null" json:"vaccine_name"`
	VaccineDate time.Time  `gorm:"type:date;not null" json:"vaccine_date"`
	DueDate     *time.Time `gorm:"type:date" json:"due_date,omitempty"`
	Comments    string     `gorm:"type:text" json:"comments,omitempty"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"created_at"`
}

func (Immunization) TableName() string {
	return "immunizations"
}

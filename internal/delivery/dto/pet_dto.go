package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type CreatePetRequest struct {
	Name             string `json:"name" validate:"required,max=100"`
	Category         string `json:"category" validate:"required,max=50"`
	Breed            string `json:"breed" validate:"max=100"`
	Age              int    `json:"age" validate:"gte=0,lte=100"`
	MedicalCondition string `json:"medical_condition"`
	PhotoURL         string `json:"photo_url" validate:"omitempty,url"`
}

type UpdatePetRequest struct {
	Name             string `json:"name" validate:"required,max=100"`
	Category         string `json:"category" validate:"required,max=50"`
	Breed            string `json:"breed" validate:"max=100"`
	Age              int    `json:"age" validate:"gte=0,lte=100"`
	MedicalCondition string `json:"medical_condition"`
	PhotoURL         string `json:"photo_url" validate:"omitempty,url"`
}

type CreateImmunizationRequest struct {
	VaccineName string `json:"vaccine_name" validate:"required,max=100"`
	VaccineDate string `json:"vaccine_date" validate:"required,datetime=2006-01-02"`
	DueDate     string `json:"due_date" validate:"omitempty,datetime=2006-01-02"`
	Comments    string `json:"comments"`
}

// Response DTOs

type PetSummary struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Category string    `json:"category"`
	Breed    string    `json:"breed,omitempty"`
}

type PetResponse struct {
	ID               uuid.UUID `json:"id"`
	OwnerID          uuid.UUID `json:"owner_id"`
	Name             string    `json:"name"`
	Category         string    `json:"category"`
	Breed            string    `json:"breed,omitempty"`
	Age              int       `json:"age"`
	MedicalCondition string    `json:"medical_condition,omitempty"`
	PhotoURL         string    `json:"photo_url,omitempty"`
	AdoptionStatus   string    `json:"adoption_status"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

type PetListResponse struct {
	Pets  []PetResponse `json:"pets"`
	Total int           `json:"total"`
}

type ImmunizationResponse struct {
	ID          int64     `json:"id"`
	PetID       uuid.UUID `json:"pet_id"`
	VaccineName string    `json:"vaccine_name"`
	VaccineDate string    `json:"vaccine_date"`
	DueDate     string    `json:"due_date,omitempty"`
	Comments    string    `json:"comments,omitempty"`
}

type ImmunizationListResponse struct {
	Immunizations []ImmunizationResponse `json:"immunizations"`
}

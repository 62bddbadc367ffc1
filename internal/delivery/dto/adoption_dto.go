package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type DecideAdoptionRequest struct {
	Decision string `json:"decision" validate:"required,oneof=approved rejected"`
}

// Response DTOs

type AdoptionRequestResponse struct {
	ID        uuid.UUID     `json:"id"`
	PetID     uuid.UUID     `json:"pet_id"`
	AdopterID uuid.UUID     `json:"adopter_id"`
	Status    string        `json:"status"`
	DecidedAt *time.Time    `json:"decided_at,omitempty"`
	Pet       *PetSummary   `json:"pet,omitempty"`
	Adopter   *UserResponse `json:"adopter,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
}

type AdoptionRequestListResponse struct {
	Requests []AdoptionRequestResponse `json:"requests"`
	Total    int                       `json:"total"`
}

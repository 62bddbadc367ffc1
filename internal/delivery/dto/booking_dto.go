package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type CreateGroomingBookingRequest struct {
	PetID              uuid.UUID `json:"pet_id" validate:"required"`
	ScheduledAt        string    `json:"scheduled_at" validate:"required,datetime=2006-01-02 15:04:05"`
	ServiceDescription string    `json:"service_description" validate:"max=1000"`
}

type CreateMedicalBookingRequest struct {
	PetID              uuid.UUID  `json:"pet_id" validate:"required"`
	DoctorID           *uuid.UUID `json:"doctor_id"`
	ScheduledAt        string     `json:"scheduled_at" validate:"required,datetime=2006-01-02 15:04:05"`
	ServiceDescription string     `json:"service_description" validate:"max=1000"`
}

type UpdateBookingStatusRequest struct {
	Status string `json:"status" validate:"required,bookingstatus"`
}

type BookingListQuery struct {
	Status string `validate:"omitempty,bookingstatus"`
	Type   string `validate:"omitempty,oneof=grooming medical"`
	From   string `validate:"omitempty,datetime=2006-01-02"`
	To     string `validate:"omitempty,datetime=2006-01-02"`
}

// Response DTOs

type BookingResponse struct {
	ID                 uuid.UUID     `json:"id"`
	CustomerID         uuid.UUID     `json:"customer_id"`
	PetID              uuid.UUID     `json:"pet_id"`
	DoctorID           *uuid.UUID    `json:"doctor_id,omitempty"`
	Provider           string        `json:"provider"`
	Type               string        `json:"type"`
	ScheduledAt        time.Time     `json:"scheduled_at"`
	ServiceDescription string        `json:"service_description,omitempty"`
	Status             string        `json:"status"`
	CheckedInAt        *time.Time    `json:"checked_in_at,omitempty"`
	Pet                *PetSummary   `json:"pet,omitempty"`
	Customer           *UserResponse `json:"customer,omitempty"`
	Doctor             *UserResponse `json:"doctor,omitempty"`
	CreatedAt          time.Time     `json:"created_at"`
	UpdatedAt          time.Time     `json:"updated_at"`
}

type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
	Total    int               `json:"total"`
}

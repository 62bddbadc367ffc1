package dto

import (
	"time"

	"github.com/google/uuid"
)

type SubscribeMembershipRequest struct {
	Plan string `json:"plan" validate:"required,oneof=Silver Gold Platinum"`
	// Months defaults to one.
	Months int `json:"months" validate:"omitempty,min=1,max=24"`
}

type MembershipResponse struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Plan      string    `json:"plan"`
	StartDate string    `json:"start_date"`
	EndDate   string    `json:"end_date"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

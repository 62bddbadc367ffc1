package dto

import (
	"github.com/google/uuid"
)

// Request DTOs

// SetScheduleRequest sets one weekday of a provider's calendar. A nil
// DoctorID targets the grooming calendar.
type SetScheduleRequest struct {
	DoctorID  *uuid.UUID `json:"doctor_id"`
	DayOfWeek string     `json:"day_of_week" validate:"required,weekday"`
	StartTime string     `json:"start_time" validate:"required,clock"`
	EndTime   string     `json:"end_time" validate:"required,clock"`
	IsActive  *bool      `json:"is_active"`
}

// Response DTOs

type ScheduleResponse struct {
	ID        int64      `json:"id"`
	Provider  string     `json:"provider"`
	DoctorID  *uuid.UUID `json:"doctor_id,omitempty"`
	DayOfWeek string     `json:"day_of_week"`
	StartTime string     `json:"start_time"`
	EndTime   string     `json:"end_time"`
	IsActive  bool       `json:"is_active"`
}

type ScheduleListResponse struct {
	Provider  string             `json:"provider"`
	Schedules []ScheduleResponse `json:"schedules"`
}

type SlotResponse struct {
	Value     string `json:"value"`
	Display   string `json:"display"`
	Available bool   `json:"available"`
}

type SlotListResponse struct {
	Date     string         `json:"date"`
	Provider string         `json:"provider"`
	Slots    []SlotResponse `json:"slots"`
}

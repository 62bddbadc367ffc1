package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"dailywag-backend/internal/delivery/dto"
	"dailywag-backend/internal/scheduling"
	"dailywag-backend/internal/usecase"
	"dailywag-backend/pkg/response"
	"dailywag-backend/pkg/validator"
)

type ScheduleHandler struct {
	scheduleUsecase usecase.ScheduleUsecase
	validator       *validator.CustomValidator
}

func NewScheduleHandler(scheduleUsecase usecase.ScheduleUsecase, validator *validator.CustomValidator) *ScheduleHandler {
	return &ScheduleHandler{
		scheduleUsecase: scheduleUsecase,
		validator:       validator,
	}
}

// SetSchedule creates or overwrites one weekday of a provider calendar.
func (h *ScheduleHandler) SetSchedule(w http.ResponseWriter, r *http.Request) {
	var req dto.SetScheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	schedule, err := h.scheduleUsecase.SetSchedule(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrInvalidDay):
			response.BadRequest(w, "Invalid day, use Monday to Sunday")
		case errors.Is(err, usecase.ErrInvalidTimeFormat):
			response.BadRequest(w, "Invalid time format, use HH:MM")
		case errors.Is(err, usecase.ErrInvalidTimeRange):
			response.BadRequest(w, "Start time must be before end time")
		case errors.Is(err, usecase.ErrDoctorNotFound):
			response.NotFound(w, "Doctor not found")
		case errors.Is(err, usecase.ErrUnauthenticated):
			response.Unauthorized(w, "User not authenticated")
		case errors.Is(err, usecase.ErrForbidden):
			response.Forbidden(w, "You can only manage your own schedule")
		default:
			response.InternalServerError(w, "Failed to set schedule")
		}
		return
	}

	response.Success(w, http.StatusOK, "Schedule saved successfully", schedule)
}

func (h *ScheduleHandler) GetSchedule(w http.ResponseWriter, r *http.Request) {
	doctorID, err := queryUUID(r, "doctor_id")
	if err != nil {
		response.BadRequest(w, "Invalid doctor ID")
		return
	}

	schedules, err := h.scheduleUsecase.GetSchedule(r.Context(), doctorID)
	if err != nil {
		response.InternalServerError(w, "Failed to get schedule")
		return
	}

	response.Success(w, http.StatusOK, "Schedule retrieved successfully", schedules)
}

func (h *ScheduleHandler) GetSlots(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		response.BadRequest(w, "Query parameter date is required")
		return
	}

	doctorID, err := queryUUID(r, "doctor_id")
	if err != nil {
		response.BadRequest(w, "Invalid doctor ID")
		return
	}

	slots, err := h.scheduleUsecase.GetSlots(r.Context(), date, doctorID)
	if err != nil {
		if errors.Is(err, scheduling.ErrInvalidDate) {
			response.BadRequest(w, "Invalid date format, use YYYY-MM-DD")
			return
		}
		response.InternalServerError(w, "Failed to get slots")
		return
	}

	response.Success(w, http.StatusOK, "Slots retrieved successfully", slots)
}

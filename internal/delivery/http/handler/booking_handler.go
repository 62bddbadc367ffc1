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

type BookingHandler struct {
	bookingUsecase usecase.BookingUsecase
	validator      *validator.CustomValidator
}

func NewBookingHandler(bookingUsecase usecase.BookingUsecase, validator *validator.CustomValidator) *BookingHandler {
	return &BookingHandler{
		bookingUsecase: bookingUsecase,
		validator:      validator,
	}
}

func (h *BookingHandler) CreateGroomingBooking(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateGroomingBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	booking, err := h.bookingUsecase.CreateGroomingBooking(r.Context(), &req)
	if err != nil {
		h.createError(w, err)
		return
	}

	response.Success(w, http.StatusCreated, "Booking created successfully", booking)
}

func (h *BookingHandler) CreateMedicalBooking(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateMedicalBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	booking, err := h.bookingUsecase.CreateMedicalBooking(r.Context(), &req)
	if err != nil {
		h.createError(w, err)
		return
	}

	response.Success(w, http.StatusCreated, "Booking created successfully", booking)
}

func (h *BookingHandler) createError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, usecase.ErrDoctorRequired):
		response.BadRequest(w, "Medical bookings require a doctor")
	case errors.Is(err, usecase.ErrInvalidScheduledAt):
		response.BadRequest(w, "Invalid scheduled time, use YYYY-MM-DD HH:MM:SS")
	case errors.Is(err, usecase.ErrBookingInPast):
		response.BadRequest(w, "Cannot book a time in the past")
	case errors.Is(err, usecase.ErrDoctorNotFound):
		response.NotFound(w, "Doctor not found")
	case errors.Is(err, usecase.ErrPetNotFound):
		response.NotFound(w, "Pet not found")
	case errors.Is(err, usecase.ErrUnauthenticated):
		response.Unauthorized(w, "User not authenticated")
	default:
		response.InternalServerError(w, "Failed to create booking")
	}
}

func (h *BookingHandler) GetMyBookings(w http.ResponseWriter, r *http.Request) {
	bookings, err := h.bookingUsecase.GetMyBookings(r.Context())
	if err != nil {
		if errors.Is(err, usecase.ErrUnauthenticated) {
			response.Unauthorized(w, "User not authenticated")
			return
		}
		response.InternalServerError(w, "Failed to get bookings")
		return
	}

	response.Success(w, http.StatusOK, "Bookings retrieved successfully", bookings)
}

func (h *BookingHandler) GetDoctorBookings(w http.ResponseWriter, r *http.Request) {
	bookings, err := h.bookingUsecase.GetDoctorBookings(r.Context())
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrUnauthenticated):
			response.Unauthorized(w, "User not authenticated")
		case errors.Is(err, usecase.ErrForbidden):
			response.Forbidden(w, "Only doctors have a booking queue")
		default:
			response.InternalServerError(w, "Failed to get bookings")
		}
		return
	}

	response.Success(w, http.StatusOK, "Bookings retrieved successfully", bookings)
}

// GetAllBookings lists every booking, optionally filtered by status, type
// and an inclusive date range.
func (h *BookingHandler) GetAllBookings(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	query := dto.BookingListQuery{
		Status: q.Get("status"),
		Type:   q.Get("type"),
		From:   q.Get("from"),
		To:     q.Get("to"),
	}

	if err := h.validator.Validate(&query); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	bookings, err := h.bookingUsecase.GetAllBookings(r.Context(), &query)
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidBookingQuery) {
			response.BadRequest(w, "Invalid booking filter")
			return
		}
		response.InternalServerError(w, "Failed to get bookings")
		return
	}

	response.Success(w, http.StatusOK, "Bookings retrieved successfully", bookings)
}

func (h *BookingHandler) GetBooking(w http.ResponseWriter, r *http.Request) {
	bookingID, err := pathUUID(r, "id")
	if err != nil {
		response.BadRequest(w, "Invalid booking ID")
		return
	}

	booking, err := h.bookingUsecase.GetBooking(r.Context(), bookingID)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrBookingNotFound):
			response.NotFound(w, "Booking not found")
		case errors.Is(err, usecase.ErrBookingNotOwned):
			response.Forbidden(w, "You don't have access to this booking")
		case errors.Is(err, usecase.ErrUnauthenticated):
			response.Unauthorized(w, "User not authenticated")
		default:
			response.InternalServerError(w, "Failed to get booking")
		}
		return
	}

	response.Success(w, http.StatusOK, "Booking retrieved successfully", booking)
}

func (h *BookingHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	bookingID, err := pathUUID(r, "id")
	if err != nil {
		response.BadRequest(w, "Invalid booking ID")
		return
	}

	var req dto.UpdateBookingStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	booking, err := h.bookingUsecase.UpdateStatus(r.Context(), bookingID, &req)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrInvalidStatus):
			response.BadRequest(w, "Invalid booking status")
		case errors.Is(err, usecase.ErrBookingNotFound):
			response.NotFound(w, "Booking not found")
		case errors.Is(err, usecase.ErrBookingNotOwned):
			response.Forbidden(w, "This booking is assigned to another doctor")
		case errors.Is(err, usecase.ErrForbidden):
			response.Forbidden(w, "You don't have permission to change booking status")
		case errors.Is(err, usecase.ErrUnauthenticated):
			response.Unauthorized(w, "User not authenticated")
		default:
			response.InternalServerError(w, "Failed to update booking status")
		}
		return
	}

	response.Success(w, http.StatusOK, "Booking status updated successfully", booking)
}

func (h *BookingHandler) CheckIn(w http.ResponseWriter, r *http.Request) {
	bookingID, err := pathUUID(r, "id")
	if err != nil {
		response.BadRequest(w, "Invalid booking ID")
		return
	}

	booking, err := h.bookingUsecase.CheckIn(r.Context(), bookingID)
	if err != nil {
		var checkInErr *scheduling.CheckInError
		switch {
		case errors.As(err, &checkInErr):
			checkInError(w, checkInErr)
		case errors.Is(err, usecase.ErrBookingNotFound):
			response.NotFound(w, "Booking not found")
		case errors.Is(err, usecase.ErrBookingNotOwned):
			response.Forbidden(w, "You can only check in your own booking")
		case errors.Is(err, usecase.ErrUnauthenticated):
			response.Unauthorized(w, "User not authenticated")
		default:
			response.InternalServerError(w, "Failed to check in")
		}
		return
	}

	response.Success(w, http.StatusOK, "Checked in successfully", booking)
}

// checkInError answers 422 while the window has not opened and 409 for a
// booking that can no longer be checked in.
func checkInError(w http.ResponseWriter, err *scheduling.CheckInError) {
	details := map[string]interface{}{"reason": err.Reason.Error()}
	status := http.StatusConflict
	if errors.Is(err.Reason, scheduling.ErrCheckInTooEarly) {
		status = http.StatusUnprocessableEntity
		details["wait_minutes"] = err.WaitMinutes
	}
	response.Error(w, status, err.Error(), details)
}

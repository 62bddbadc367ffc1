package converter

import (
	"dailywag-backend/internal/delivery/dto"
	"dailywag-backend/internal/domain/entity"
)

// BookingToResponse converts a Booking entity to BookingResponse DTO
func BookingToResponse(booking *entity.Booking) *dto.BookingResponse {
	if booking == nil {
		return nil
	}

	response := &dto.BookingResponse{
		ID:                 booking.ID,
		CustomerID:         booking.CustomerID,
		PetID:              booking.PetID,
		DoctorID:           booking.DoctorID,
		Provider:           booking.Provider().Key(),
		Type:               string(booking.Type),
		ScheduledAt:        booking.ScheduledAt,
		ServiceDescription: booking.ServiceDescription,
		Status:             string(booking.Status),
		CheckedInAt:        booking.CheckedInAt,
		Customer:           UserToResponse(booking.Customer),
		Doctor:             UserToResponse(booking.Doctor),
		CreatedAt:          booking.CreatedAt,
		UpdatedAt:          booking.UpdatedAt,
	}

	if booking.Pet != nil {
		response.Pet = PetToSummary(booking.Pet)
	}

	return response
}

// BookingsToResponses converts a slice of Booking entities to slice of BookingResponse DTOs
func BookingsToResponses(bookings []entity.Booking) []dto.BookingResponse {
	responses := make([]dto.BookingResponse, len(bookings))
	for i := range bookings {
		responses[i] = *BookingToResponse(&bookings[i])
	}
	return responses
}

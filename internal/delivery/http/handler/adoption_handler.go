package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"dailywag-backend/internal/delivery/dto"
	"dailywag-backend/internal/usecase"
	"dailywag-backend/pkg/response"
	"dailywag-backend/pkg/validator"
)

type AdoptionHandler struct {
	adoptionUsecase usecase.AdoptionUsecase
	validator       *validator.CustomValidator
}

func NewAdoptionHandler(adoptionUsecase usecase.AdoptionUsecase, validator *validator.CustomValidator) *AdoptionHandler {
	return &AdoptionHandler{
		adoptionUsecase: adoptionUsecase,
		validator:       validator,
	}
}

func (h *AdoptionHandler) GetAvailablePets(w http.ResponseWriter, r *http.Request) {
	pets, err := h.adoptionUsecase.GetAvailablePets(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get pets for adoption")
		return
	}

	response.Success(w, http.StatusOK, "Pets retrieved successfully", pets)
}

func (h *AdoptionHandler) ListPetForAdoption(w http.ResponseWriter, r *http.Request) {
	petID, err := pathUUID(r, "id")
	if err != nil {
		response.BadRequest(w, "Invalid pet ID")
		return
	}

	pet, err := h.adoptionUsecase.ListPetForAdoption(r.Context(), petID)
	if err != nil {
		adoptionError(w, err, "Failed to list pet for adoption")
		return
	}

	response.Success(w, http.StatusOK, "Pet listed for adoption", pet)
}

func (h *AdoptionHandler) RequestAdoption(w http.ResponseWriter, r *http.Request) {
	petID, err := pathUUID(r, "id")
	if err != nil {
		response.BadRequest(w, "Invalid pet ID")
		return
	}

	request, err := h.adoptionUsecase.RequestAdoption(r.Context(), petID)
	if err != nil {
		adoptionError(w, err, "Failed to request adoption")
		return
	}

	response.Success(w, http.StatusCreated, "Adoption requested successfully", request)
}

func (h *AdoptionHandler) GetMyRequests(w http.ResponseWriter, r *http.Request) {
	requests, err := h.adoptionUsecase.GetMyRequests(r.Context())
	if err != nil {
		adoptionError(w, err, "Failed to get adoption requests")
		return
	}

	response.Success(w, http.StatusOK, "Adoption requests retrieved successfully", requests)
}

func (h *AdoptionHandler) GetPendingRequests(w http.ResponseWriter, r *http.Request) {
	requests, err := h.adoptionUsecase.GetPendingRequests(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get adoption requests")
		return
	}

	response.Success(w, http.StatusOK, "Adoption requests retrieved successfully", requests)
}

func (h *AdoptionHandler) DecideRequest(w http.ResponseWriter, r *http.Request) {
	requestID, err := pathUUID(r, "id")
	if err != nil {
		response.BadRequest(w, "Invalid adoption request ID")
		return
	}

	var req dto.DecideAdoptionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	request, err := h.adoptionUsecase.DecideRequest(r.Context(), requestID, &req)
	if err != nil {
		adoptionError(w, err, "Failed to decide adoption request")
		return
	}

	response.Success(w, http.StatusOK, "Adoption request decided", request)
}

func adoptionError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, usecase.ErrPetNotFound):
		response.NotFound(w, "Pet not found")
	case errors.Is(err, usecase.ErrAdoptionRequestNotFound):
		response.NotFound(w, "Adoption request not found")
	case errors.Is(err, usecase.ErrPetNotAvailable):
		response.Conflict(w, "Pet is not available for adoption", nil)
	case errors.Is(err, usecase.ErrPetNotListable):
		response.Conflict(w, "Pet cannot be listed for adoption", nil)
	case errors.Is(err, usecase.ErrAdoptionAlreadyDecided):
		response.Conflict(w, "Adoption request is already decided", nil)
	case errors.Is(err, usecase.ErrOwnPetAdoption):
		response.BadRequest(w, "You already own this pet")
	case errors.Is(err, usecase.ErrInvalidAdoptionDecision):
		response.BadRequest(w, "Decision must be approved or rejected")
	case errors.Is(err, usecase.ErrForbidden):
		response.Forbidden(w, "You don't have permission to perform this action")
	case errors.Is(err, usecase.ErrUnauthenticated):
		response.Unauthorized(w, "User not authenticated")
	default:
		response.InternalServerError(w, fallback)
	}
}

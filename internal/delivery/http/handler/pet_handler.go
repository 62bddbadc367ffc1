package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"dailywag-backend/internal/delivery/dto"
	"dailywag-backend/internal/usecase"
	"dailywag-backend/pkg/response"
	"dailywag-backend/pkg/validator"

	"github.com/gorilla/mux"
)

type PetHandler struct {
	petUsecase usecase.PetUsecase
	validator  *validator.CustomValidator
}

func NewPetHandler(petUsecase usecase.PetUsecase, validator *validator.CustomValidator) *PetHandler {
	return &PetHandler{
		petUsecase: petUsecase,
		validator:  validator,
	}
}

func (h *PetHandler) GetMyPets(w http.ResponseWriter, r *http.Request) {
	pets, err := h.petUsecase.GetMyPets(r.Context())
	if err != nil {
		if errors.Is(err, usecase.ErrUnauthenticated) {
			response.Unauthorized(w, "User not authenticated")
			return
		}
		response.InternalServerError(w, "Failed to get pets")
		return
	}

	response.Success(w, http.StatusOK, "Pets retrieved successfully", pets)
}

func (h *PetHandler) GetAllPets(w http.ResponseWriter, r *http.Request) {
	pets, err := h.petUsecase.GetAllPets(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get pets")
		return
	}

	response.Success(w, http.StatusOK, "Pets retrieved successfully", pets)
}

func (h *PetHandler) GetPet(w http.ResponseWriter, r *http.Request) {
	petID, err := pathUUID(r, "id")
	if err != nil {
		response.BadRequest(w, "Invalid pet ID")
		return
	}

	pet, err := h.petUsecase.GetPet(r.Context(), petID)
	if err != nil {
		h.petError(w, err, "Failed to get pet")
		return
	}

	response.Success(w, http.StatusOK, "Pet retrieved successfully", pet)
}

func (h *PetHandler) CreatePet(w http.ResponseWriter, r *http.Request) {
	var req dto.CreatePetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	pet, err := h.petUsecase.CreatePet(r.Context(), &req)
	if err != nil {
		h.petError(w, err, "Failed to create pet")
		return
	}

	response.Success(w, http.StatusCreated, "Pet created successfully", pet)
}

func (h *PetHandler) UpdatePet(w http.ResponseWriter, r *http.Request) {
	petID, err := pathUUID(r, "id")
	if err != nil {
		response.BadRequest(w, "Invalid pet ID")
		return
	}

	var req dto.UpdatePetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	pet, err := h.petUsecase.UpdatePet(r.Context(), petID, &req)
	if err != nil {
		h.petError(w, err, "Failed to update pet")
		return
	}

	response.Success(w, http.StatusOK, "Pet updated successfully", pet)
}

func (h *PetHandler) DeletePet(w http.ResponseWriter, r *http.Request) {
	petID, err := pathUUID(r, "id")
	if err != nil {
		response.BadRequest(w, "Invalid pet ID")
		return
	}

	if err := h.petUsecase.DeletePet(r.Context(), petID); err != nil {
		h.petError(w, err, "Failed to delete pet")
		return
	}

	response.Success(w, http.StatusOK, "Pet deleted successfully", nil)
}

func (h *PetHandler) GetImmunizations(w http.ResponseWriter, r *http.Request) {
	petID, err := pathUUID(r, "id")
	if err != nil {
		response.BadRequest(w, "Invalid pet ID")
		return
	}

	records, err := h.petUsecase.GetImmunizations(r.Context(), petID)
	if err != nil {
		h.petError(w, err, "Failed to get immunizations")
		return
	}

	response.Success(w, http.StatusOK, "Immunizations retrieved successfully", records)
}

func (h *PetHandler) AddImmunization(w http.ResponseWriter, r *http.Request) {
	petID, err := pathUUID(r, "id")
	if err != nil {
		response.BadRequest(w, "Invalid pet ID")
		return
	}

	var req dto.CreateImmunizationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	records, err := h.petUsecase.AddImmunization(r.Context(), petID, &req)
	if err != nil {
		h.petError(w, err, "Failed to add immunization")
		return
	}

	response.Success(w, http.StatusCreated, "Immunization added successfully", records)
}

func (h *PetHandler) DeleteImmunization(w http.ResponseWriter, r *http.Request) {
	petID, err := pathUUID(r, "id")
	if err != nil {
		response.BadRequest(w, "Invalid pet ID")
		return
	}

	recordID, err := strconv.ParseInt(mux.Vars(r)["immunizationId"], 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid immunization ID")
		return
	}

	if err := h.petUsecase.DeleteImmunization(r.Context(), petID, recordID); err != nil {
		h.petError(w, err, "Failed to delete immunization")
		return
	}

	response.Success(w, http.StatusOK, "Immunization deleted successfully", nil)
}

func (h *PetHandler) petError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, usecase.ErrPetNotFound):
		response.NotFound(w, "Pet not found")
	case errors.Is(err, usecase.ErrImmunizationNotFound):
		response.NotFound(w, "Immunization record not found")
	case errors.Is(err, usecase.ErrInvalidVaccineDate):
		response.BadRequest(w, "Invalid vaccine date, use YYYY-MM-DD")
	case errors.Is(err, usecase.ErrForbidden):
		response.Forbidden(w, "You don't have permission to perform this action")
	case errors.Is(err, usecase.ErrUnauthenticated):
		response.Unauthorized(w, "User not authenticated")
	default:
		response.InternalServerError(w, fallback)
	}
}

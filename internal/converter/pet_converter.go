package converter

import (
	"dailywag-backend/internal/delivery/dto"
	"dailywag-backend/internal/domain/entity"
)

const dateLayout = "2006-01-02"

func PetToResponse(pet *entity.Pet) *dto.PetResponse {
	if pet == nil {
		return nil
	}

	return &dto.PetResponse{
		ID:               pet.ID,
		OwnerID:          pet.OwnerID,
		Name:             pet.Name,
		Category:         pet.Category,
		Breed:            pet.Breed,
		Age:              pet.Age,
		MedicalCondition: pet.MedicalCondition,
		PhotoURL:         pet.PhotoURL,
		AdoptionStatus:   string(pet.AdoptionStatus),
		CreatedAt:        pet.CreatedAt,
		UpdatedAt:        pet.UpdatedAt,
	}
}

func PetsToResponses(pets []entity.Pet) []dto.PetResponse {
	responses := make([]dto.PetResponse, len(pets))
	for i := range pets {
		responses[i] = *PetToResponse(&pets[i])
	}
	return responses
}

func PetToSummary(pet *entity.Pet) *dto.PetSummary {
	if pet == nil {
		return nil
	}
	return &dto.PetSummary{
		ID:       pet.ID,
		Name:     pet.Name,
		Category: pet.Category,
		Breed:    pet.Breed,
	}
}

func ImmunizationsToResponses(records []entity.Immunization) []dto.ImmunizationResponse {
	responses := make([]dto.ImmunizationResponse, len(records))
	for i, record := range records {
		responses[i] = dto.ImmunizationResponse{
			ID:          record.ID,
			PetID:       record.PetID,
			VaccineName: record.VaccineName,
			VaccineDate: record.VaccineDate.Format(dateLayout),
			Comments:    record.Comments,
		}
		if record.DueDate != nil {
			responses[i].DueDate = record.DueDate.Format(dateLayout)
		}
	}
	return responses
}

func AdoptionRequestToResponse(request *entity.AdoptionRequest) *dto.AdoptionRequestResponse {
	if request == nil {
		return nil
	}

	return &dto.AdoptionRequestResponse{
		ID:        request.ID,
		PetID:     request.PetID,
		AdopterID: request.AdopterID,
		Status:    string(request.Status),
		DecidedAt: request.DecidedAt,
		Pet:       PetToSummary(request.Pet),
		Adopter:   UserToResponse(request.Adopter),
		CreatedAt: request.CreatedAt,
	}
}

func AdoptionRequestsToResponses(requests []entity.AdoptionRequest) []dto.AdoptionRequestResponse {
	responses := make([]dto.AdoptionRequestResponse, len(requests))
	for i := range requests {
		responses[i] = *AdoptionRequestToResponse(&requests[i])
	}
	return responses
}

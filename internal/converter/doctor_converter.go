package converter

import (
	"dailywag-backend/internal/delivery/dto"
	"dailywag-backend/internal/domain/entity"
)

func DoctorToResponse(profile *entity.DoctorProfile) *dto.DoctorResponse {
	if profile == nil {
		return nil
	}

	return &dto.DoctorResponse{
		UserID:         profile.UserID,
		FirstName:      profile.User.FirstName,
		LastName:       profile.User.LastName,
		Email:          profile.User.Email,
		Phone:          profile.User.Phone,
		LicenseNumber:  profile.LicenseNumber,
		Specialization: profile.Specialization,
		Biography:      profile.Biography,
	}
}

func DoctorsToResponses(profiles []entity.DoctorProfile) []dto.DoctorResponse {
	responses := make([]dto.DoctorResponse, len(profiles))
	for i := range profiles {
		responses[i] = *DoctorToResponse(&profiles[i])
	}
	return responses
}

package repository

import (
	"context"
	"errors"
	"strings"

	"dailywag-backend/internal/domain/entity"
	domainRepo "dailywag-backend/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type doctorProfileRepository struct{}

func NewDoctorProfileRepository() domainRepo.DoctorProfileRepository {
	return &doctorProfileRepository{}
}

func (r *doctorProfileRepository) FindByUserID(ctx context.Context, db *gorm.DB, doctorID uuid.UUID) (*entity.DoctorProfile, error) {
	var profile entity.DoctorProfile
	err := db.WithContext(ctx).Preload("User").Where("user_id = ?", doctorID).First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}

// FindAllActive returns doctors whose user account is active, optionally
// narrowed by a case-insensitive specialization match.
func (r *doctorProfileRepository) FindAllActive(ctx context.Context, db *gorm.DB, specialization string) ([]entity.DoctorProfile, error) {
	var profiles []entity.DoctorProfile
	query := db.WithContext(ctx).
		Joins("JOIN users ON users.id = doctor_profiles.user_id").
		Where("users.is_active = ?", true)

	if specialization != "" {
		query = query.Where("LOWER(doctor_profiles.specialization) LIKE ?", "%"+strings.ToLower(specialization)+"%")
	}

	err := query.Preload("User").Order("users.first_name ASC").Find(&profiles).Error
	if err != nil {
		return nil, err
	}
	return profiles, nil
}

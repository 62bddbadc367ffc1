package repository

import (
	"context"

	"dailywag-backend/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DoctorProfileRepository interface {
	FindByUserID(ctx context.Context, db *gorm.DB, userID uuid.UUID) (*entity.DoctorProfile, error)
	FindAllActive(ctx context.Context, db *gorm.DB, specialization string) ([]entity.DoctorProfile, error)
}

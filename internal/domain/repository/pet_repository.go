package repository

import (
	"context"

	"dailywag-backend/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PetRepository interface {
	Create(ctx context.Context, db *gorm.DB, pet *entity.Pet) error
	FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Pet, error)
	FindByOwner(ctx context.Context, db *gorm.DB, ownerID uuid.UUID) ([]entity.Pet, error)
	FindAll(ctx context.Context, db *gorm.DB) ([]entity.Pet, error)
	FindByAdoptionStatus(ctx context.Context, db *gorm.DB, status entity.AdoptionStatus) ([]entity.Pet, error)
	// Update changes the descriptive fields of a pet the owner still holds.
	Update(ctx context.Context, db *gorm.DB, pet *entity.Pet) (int64, error)
	// UpdateAdoptionStatus moves a pet only when it is currently in one of from.
	UpdateAdoptionStatus(ctx context.Context, db *gorm.DB, id uuid.UUID, to entity.AdoptionStatus, from ...entity.AdoptionStatus) (int64, error)
	TransferOwnership(ctx context.Context, db *gorm.DB, id, newOwnerID uuid.UUID) error
	Delete(ctx context.Context, db *gorm.DB, id, ownerID uuid.UUID) (int64, error)
}

type ImmunizationRepository interface {
	Create(ctx context.Context, db *gorm.DB, record *entity.Immunization) error
	FindByPetID(ctx context.Context, db *gorm.DB, petID uuid.UUID) ([]entity.Immunization, error)
	Delete(ctx context.Context, db *gorm.DB, petID uuid.UUID, id int64) (int64, error)
}

type AdoptionRepository interface {
	Create(ctx context.Context, db *gorm.DB, request *entity.AdoptionRequest) error
	FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.AdoptionRequest, error)
	FindPending(ctx context.Context, db *gorm.DB) ([]entity.AdoptionRequest, error)
	FindByAdopter(ctx context.Context, db *gorm.DB, adopterID uuid.UUID) ([]entity.AdoptionRequest, error)
	Decide(ctx context.Context, db *gorm.DB, request *entity.AdoptionRequest) (int64, error)
}

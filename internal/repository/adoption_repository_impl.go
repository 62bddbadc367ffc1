package repository

import (
	"context"
	"errors"

	"dailywag-backend/internal/domain/entity"
	domainRepo "dailywag-backend/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type adoptionRepository struct{}

func NewAdoptionRepository() domainRepo.AdoptionRepository {
	return &adoptionRepository{}
}

func (r *adoptionRepository) Create(ctx context.Context, db *gorm.DB, request *entity.AdoptionRequest) error {
	return db.WithContext(ctx).Omit(clause.Associations).Create(request).Error
}

func (r *adoptionRepository) FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.AdoptionRequest, error) {
	var request entity.AdoptionRequest
	err := db.WithContext(ctx).Preload("Pet").Preload("Adopter").Where("id = ?", id).First(&request).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &request, nil
}

func (r *adoptionRepository) FindPending(ctx context.Context, db *gorm.DB) ([]entity.AdoptionRequest, error) {
	var requests []entity.AdoptionRequest
	err := db.WithContext(ctx).
		Preload("Pet").Preload("Adopter").
		Where("status = ?", entity.AdoptionRequestPending).
		Order("created_at ASC").
		Find(&requests).Error
	if err != nil {
		return nil, err
	}
	return requests, nil
}

func (r *adoptionRepository) FindByAdopter(ctx context.Context, db *gorm.DB, adopterID uuid.UUID) ([]entity.AdoptionRequest, error) {
	var requests []entity.AdoptionRequest
	err := db.WithContext(ctx).
		Preload("Pet").
		Where("adopter_id = ?", adopterID).
		Order("created_at DESC").
		Find(&requests).Error
	if err != nil {
		return nil, err
	}
	return requests, nil
}

// Decide records the outcome of a request that is still pending.
// Returns affected rows: 0 means it was already decided.
func (r *adoptionRepository) Decide(ctx context.Context, db *gorm.DB, request *entity.AdoptionRequest) (int64, error) {
	result := db.WithContext(ctx).Model(&entity.AdoptionRequest{}).
		Where("id = ? AND status = ?", request.ID, entity.AdoptionRequestPending).
		Updates(map[string]interface{}{
			"status":     request.Status,
			"decided_at": request.DecidedAt,
		})
	return result.RowsAffected, result.Error
}

package repository

import (
	"context"
	"errors"
	"time"

	"dailywag-backend/internal/domain/entity"
	domainRepo "dailywag-backend/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type membershipRepository struct{}

func NewMembershipRepository() domainRepo.MembershipRepository {
	return &membershipRepository{}
}

func (r *membershipRepository) Create(ctx context.Context, db *gorm.DB, membership *entity.Membership) error {
	return db.WithContext(ctx).Create(membership).Error
}

func (r *membershipRepository) FindActive(ctx context.Context, db *gorm.DB, userID uuid.UUID, today time.Time) (*entity.Membership, error) {
	var membership entity.Membership
	err := db.WithContext(ctx).
		Where("user_id = ? AND status = ? AND end_date >= ?", userID, entity.MembershipStatusActive, today).
		Order("end_date DESC").
		First(&membership).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &membership, nil
}

func (r *membershipRepository) ExpireActive(ctx context.Context, db *gorm.DB, userID uuid.UUID) (int64, error) {
	result := db.WithContext(ctx).
		Model(&entity.Membership{}).
		Where("user_id = ? AND status = ?", userID, entity.MembershipStatusActive).
		Update("status", entity.MembershipStatusExpired)
	return result.RowsAffected, result.Error
}

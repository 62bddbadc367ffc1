package repository

import (
	"context"
	"time"

	"dailywag-backend/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MembershipRepository interface {
	Create(ctx context.Context, db *gorm.DB, membership *entity.Membership) error
	// FindActive returns the active membership whose end date is not before today.
	FindActive(ctx context.Context, db *gorm.DB, userID uuid.UUID, today time.Time) (*entity.Membership, error)
	// ExpireActive marks every active membership of the user expired.
	ExpireActive(ctx context.Context, db *gorm.DB, userID uuid.UUID) (int64, error)
}

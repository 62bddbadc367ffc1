package repository

import (
	"context"

	"dailywag-backend/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProductRepository interface {
	Create(ctx context.Context, db *gorm.DB, product *entity.Product) error
	// FindInStock lists products with stock > 0 ordered by name.
	FindInStock(ctx context.Context, db *gorm.DB, category string, limit, offset int) ([]entity.Product, int64, error)
	FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Product, error)
	Update(ctx context.Context, db *gorm.DB, product *entity.Product) error
	Delete(ctx context.Context, db *gorm.DB, id uuid.UUID) (int64, error)
}

package repository

import (
	"context"
	"errors"

	"dailywag-backend/internal/domain/entity"
	domainRepo "dailywag-backend/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type productRepository struct{}

func NewProductRepository() domainRepo.ProductRepository {
	return &productRepository{}
}

func (r *productRepository) Create(ctx context.Context, db *gorm.DB, product *entity.Product) error {
	return db.WithContext(ctx).Create(product).Error
}

func (r *productRepository) FindInStock(ctx context.Context, db *gorm.DB, category string, limit, offset int) ([]entity.Product, int64, error) {
	var products []entity.Product
	var total int64

	query := db.WithContext(ctx).Model(&entity.Product{}).Where("stock > ?", 0)
	if category != "" {
		query = query.Where("category = ?", category)
	}
	query = query.Session(&gorm.Session{})

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Order("name ASC").Limit(limit).Offset(offset).Find(&products).Error; err != nil {
		return nil, 0, err
	}

	return products, total, nil
}

func (r *productRepository) FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Product, error) {
	var product entity.Product
	err := db.WithContext(ctx).Where("id = ?", id).First(&product).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) Update(ctx context.Context, db *gorm.DB, product *entity.Product) error {
	return db.WithContext(ctx).Save(product).Error
}

func (r *productRepository) Delete(ctx context.Context, db *gorm.DB, id uuid.UUID) (int64, error) {
	result := db.WithContext(ctx).Where("id = ?", id).Delete(&entity.Product{})
	return result.RowsAffected, result.Error
}

package usecase

import (
	"context"
	"errors"

	"dailywag-backend/internal/converter"
	"dailywag-backend/internal/delivery/dto"
	"dailywag-backend/internal/domain/entity"
	"dailywag-backend/internal/domain/repository"
	repo "dailywag-backend/internal/repository"
	"dailywag-backend/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrProductExists   = errors.New("a product with this name already exists")
	ErrInvalidPrice    = errors.New("price must be greater than zero")
)

const (
	defaultProductPageSize = 12
	maxProductPageSize     = 100
)

type ProductUsecase interface {
	Create(ctx context.Context, req *dto.CreateProductRequest) (*dto.ProductResponse, error)
	GetAll(ctx context.Context, category string, page, limit int) (*dto.ProductListResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*dto.ProductResponse, error)
	Update(ctx context.Context, id uuid.UUID, req *dto.UpdateProductRequest) (*dto.ProductResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type productUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	productRepo  repository.ProductRepository
	auditService service.AuditService
}

func NewProductUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	productRepo repository.ProductRepository,
	auditService service.AuditService,
) ProductUsecase {
	return &productUsecase{
		db:           db,
		log:          log,
		productRepo:  productRepo,
		auditService: auditService,
	}
}

func (u *productUsecase) Create(ctx context.Context, req *dto.CreateProductRequest) (*dto.ProductResponse, error) {
	c, err := callerFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if !req.Price.IsPositive() {
		return nil, ErrInvalidPrice
	}

	product := &entity.Product{
		Name:        req.Name,
		Category:    req.Category,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
		ImageURL:    req.ImageURL,
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if err := u.productRepo.Create(ctx, tx, product); err != nil {
		if repo.IsDuplicateKeyError(err, "name") {
			return nil, ErrProductExists
		}
		u.log.Warnf("Failed to create product: %+v", err)
		return nil, err
	}

	resp := converter.ProductToResponse(product)
	if err := u.auditService.LogCreate(ctx, tx, &c.UserID, entity.AuditActionProductCreate, "product", product.ID.String(), resp); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed to commit product: %+v", err)
		return nil, err
	}

	return resp, nil
}

// GetAll lists products that are in stock, ordered by name.
func (u *productUsecase) GetAll(ctx context.Context, category string, page, limit int) (*dto.ProductListResponse, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultProductPageSize
	}
	if limit > maxProductPageSize {
		limit = maxProductPageSize
	}

	offset := (page - 1) * limit

	products, total, err := u.productRepo.FindInStock(ctx, u.db, category, limit, offset)
	if err != nil {
		u.log.Warnf("Failed to find products: %+v", err)
		return nil, err
	}

	return &dto.ProductListResponse{
		Products: converter.ProductsToResponses(products),
		Total:    total,
	}, nil
}

func (u *productUsecase) GetByID(ctx context.Context, id uuid.UUID) (*dto.ProductResponse, error) {
	product, err := u.productRepo.FindByID(ctx, u.db, id)
	if err != nil {
		u.log.Warnf("Failed to find product %s: %+v", id, err)
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}

	return converter.ProductToResponse(product), nil
}

func (u *productUsecase) Update(ctx context.Context, id uuid.UUID, req *dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	c, err := callerFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if !req.Price.IsPositive() {
		return nil, ErrInvalidPrice
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	product, err := u.productRepo.FindByID(ctx, tx, id)
	if err != nil {
		u.log.Warnf("Failed to find product %s: %+v", id, err)
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	before := converter.ProductToResponse(product)

	product.Name = req.Name
	product.Category = req.Category
	product.Description = req.Description
	product.Price = req.Price
	product.Stock = req.Stock
	product.ImageURL = req.ImageURL

	if err := u.productRepo.Update(ctx, tx, product); err != nil {
		if repo.IsDuplicateKeyError(err, "name") {
			return nil, ErrProductExists
		}
		u.log.Warnf("Failed to update product %s: %+v", id, err)
		return nil, err
	}

	after := converter.ProductToResponse(product)
	if err := u.auditService.LogUpdate(ctx, tx, &c.UserID, entity.AuditActionProductUpdate, "product", id.String(), before, after); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed to commit product %s: %+v", id, err)
		return nil, err
	}

	return after, nil
}

func (u *productUsecase) Delete(ctx context.Context, id uuid.UUID) error {
	c, err := callerFromContext(ctx)
	if err != nil {
		return err
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	product, err := u.productRepo.FindByID(ctx, tx, id)
	if err != nil {
		u.log.Warnf("Failed to find product %s: %+v", id, err)
		return err
	}
	if product == nil {
		return ErrProductNotFound
	}

	rows, err := u.productRepo.Delete(ctx, tx, id)
	if err != nil {
		u.log.Warnf("Failed to delete product %s: %+v", id, err)
		return err
	}
	if rows == 0 {
		return ErrProductNotFound
	}

	if err := u.auditService.LogDelete(ctx, tx, &c.UserID, entity.AuditActionProductDelete, "product", id.String(), converter.ProductToResponse(product)); err != nil {
		return err
	}

	return tx.Commit().Error
}

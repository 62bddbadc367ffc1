package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"dailywag-backend/internal/delivery/dto"
	"dailywag-backend/internal/usecase"
	"dailywag-backend/pkg/response"
	"dailywag-backend/pkg/validator"
)

type ProductHandler struct {
	productUsecase usecase.ProductUsecase
	validator      *validator.CustomValidator
}

func NewProductHandler(productUsecase usecase.ProductUsecase, validator *validator.CustomValidator) *ProductHandler {
	return &ProductHandler{
		productUsecase: productUsecase,
		validator:      validator,
	}
}

func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	product, err := h.productUsecase.Create(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrInvalidPrice):
			response.BadRequest(w, "Price must be greater than zero")
		case errors.Is(err, usecase.ErrProductExists):
			response.Conflict(w, "A product with this name already exists", nil)
		default:
			response.InternalServerError(w, "Failed to create product")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Product created successfully", product)
}

// GetAll lists in-stock products.
// Query: category, page (default 1), limit (default 12).
func (h *ProductHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 12
	}

	products, err := h.productUsecase.GetAll(r.Context(), r.URL.Query().Get("category"), page, limit)
	if err != nil {
		response.InternalServerError(w, "Failed to get products")
		return
	}

	meta := response.NewMeta(page, limit, products.Total)

	response.SuccessWithMeta(w, http.StatusOK, "Products retrieved successfully", products.Products, meta)
}

func (h *ProductHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		response.BadRequest(w, "Invalid product ID")
		return
	}

	product, err := h.productUsecase.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, usecase.ErrProductNotFound) {
			response.NotFound(w, "Product not found")
			return
		}
		response.InternalServerError(w, "Failed to get product")
		return
	}

	response.Success(w, http.StatusOK, "Product retrieved successfully", product)
}

func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		response.BadRequest(w, "Invalid product ID")
		return
	}

	var req dto.UpdateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	product, err := h.productUsecase.Update(r.Context(), id, &req)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrProductNotFound):
			response.NotFound(w, "Product not found")
		case errors.Is(err, usecase.ErrInvalidPrice):
			response.BadRequest(w, "Price must be greater than zero")
		case errors.Is(err, usecase.ErrProductExists):
			response.Conflict(w, "A product with this name already exists", nil)
		default:
			response.InternalServerError(w, "Failed to update product")
		}
		return
	}

	response.Success(w, http.StatusOK, "Product updated successfully", product)
}

func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		response.BadRequest(w, "Invalid product ID")
		return
	}

	if err := h.productUsecase.Delete(r.Context(), id); err != nil {
		if errors.Is(err, usecase.ErrProductNotFound) {
			response.NotFound(w, "Product not found")
			return
		}
		response.InternalServerError(w, "Failed to delete product")
		return
	}

	response.Success(w, http.StatusOK, "Product deleted successfully", nil)
}

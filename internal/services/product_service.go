package services

import (
	"context"
	"errors"

	"petshop2/internal/common"
	"petshop2/internal/models"
	"petshop2/internal/repositories"
	"petshop2/internal/tenancy"

	"github.com/google/uuid"
)

type ProductService interface {
	Create(ctx context.Context, req *CreateProductRequest) (*models.Product, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	Update(ctx context.Context, req *UpdateProductRequest) (*models.Product, error)
	AdjustStock(ctx context.Context, id uuid.UUID, delta int) (*models.Product, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit, offset int) ([]*models.Product, error)
}

type productService struct {
	productRepo repositories.ProductRepository
}

func NewProductService(productRepo repositories.ProductRepository) ProductService {
	return &productService{productRepo: productRepo}
}

type CreateProductRequest struct {
	Name    string  `json:"name" validate:"required"`
	Price   float64 `json:"price" validate:"required"`
	Stock   int     `json:"stock"`
	Barcode *string `json:"barcode"`
}

type UpdateProductRequest struct {
	ID      uuid.UUID
	Name    *string  `json:"name"`
	Price   *float64 `json:"price"`
	Barcode *string  `json:"barcode"`
}

func (s *productService) Create(ctx context.Context, req *CreateProductRequest) (*models.Product, error) {
	tenantID, ok := tenancy.TenantIDFromContext(ctx)
	if !ok {
		return nil, errors.New("no tenant in context")
	}

	if err := common.ValidateRequiredString(req.Name, "name"); err != nil {
		return nil, err
	}
	if err := common.ValidatePositiveFloat(req.Price, "price", 1000000); err != nil {
		return nil, err
	}
	if req.Stock < 0 {
		return nil, errors.New("stock cannot be negative")
	}

	product := &models.Product{
		ID:       uuid.New(),
		TenantID: tenantID,
		Name:     req.Name,
		Price:    req.Price,
		Stock:    req.Stock,
		Barcode:  req.Barcode,
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *productService) GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	tenantID, ok := tenancy.TenantIDFromContext(ctx)
	if !ok {
		return nil, errors.New("no tenant in context")
	}

	product, err := s.productRepo.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if !tenancy.Validate(tenantID, product) {
		return nil, tenancy.ErrTenantMismatch
	}
	return product, nil
}

func (s *productService) Update(ctx context.Context, req *UpdateProductRequest) (*models.Product, error) {
	tenantID, ok := tenancy.TenantIDFromContext(ctx)
	if !ok {
		return nil, errors.New("no tenant in context")
	}

	existing, err := s.productRepo.GetByID(ctx, tenantID, req.ID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if err := common.ValidateRequiredString(*req.Name, "name"); err != nil {
			return nil, err
		}
		existing.Name = *req.Name
	}
	if req.Price != nil {
		if err := common.ValidatePositiveFloat(*req.Price, "price", 1000000); err != nil {
			return nil, err
		}
		existing.Price = *req.Price
	}
	if req.Barcode != nil {
		existing.Barcode = req.Barcode
	}

	if err := s.productRepo.Update(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

func (s *productService) AdjustStock(ctx context.Context, id uuid.UUID, delta int) (*models.Product, error) {
	tenantID, ok := tenancy.TenantIDFromContext(ctx)
	if !ok {
		return nil, errors.New("no tenant in context")
	}

	existing, err := s.productRepo.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	if existing.Stock+delta < 0 {
		return nil, errors.New("insufficient stock")
	}
	existing.Stock += delta

	if err := s.productRepo.Update(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

func (s *productService) Delete(ctx context.Context, id uuid.UUID) error {
	tenantID, ok := tenancy.TenantIDFromContext(ctx)
	if !ok {
		return errors.New("no tenant in context")
	}
	return s.productRepo.Delete(ctx, tenantID, id)
}

func (s *productService) List(ctx context.Context, limit, offset int) ([]*models.Product, error) {
	tenantID, ok := tenancy.TenantIDFromContext(ctx)
	if !ok {
		return nil, errors.New("no tenant in context")
	}

	limit, offset = common.ValidatePaginationParams(limit, offset)

	products, err := s.productRepo.List(ctx, tenantID, limit, offset)
	if err != nil {
		return nil, err
	}
	if !tenancy.ValidateAll(tenantID, products) {
		return nil, tenancy.ErrTenantMismatch
	}
	return products, nil
}

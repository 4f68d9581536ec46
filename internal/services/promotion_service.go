package services

import (
	"context"
	"errors"
	"time"

	"petshop2/internal/common"
	"petshop2/internal/models"
	"petshop2/internal/repositories"
	"petshop2/internal/tenancy"

	"github.com/google/uuid"
)

type PromotionService interface {
	Create(ctx context.Context, req *CreatePromotionRequest) (*models.Promotion, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Promotion, error)
	Update(ctx context.Context, req *UpdatePromotionRequest) (*models.Promotion, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, onlyActive bool, limit, offset int) ([]*models.Promotion, error)
}

type promotionService struct {
	promoRepo repositories.PromotionRepository
}

func NewPromotionService(promoRepo repositories.PromotionRepository) PromotionService {
	return &promotionService{promoRepo: promoRepo}
}

type CreatePromotionRequest struct {
	Title           string    `json:"title" validate:"required"`
	DiscountPercent float64   `json:"discount_percent" validate:"required"`
	StartsAt        time.Time `json:"starts_at" validate:"required"`
	EndsAt          time.Time `json:"ends_at" validate:"required"`
}

type UpdatePromotionRequest struct {
	ID              uuid.UUID
	Title           *string    `json:"title"`
	DiscountPercent *float64   `json:"discount_percent"`
	StartsAt        *time.Time `json:"starts_at"`
	EndsAt          *time.Time `json:"ends_at"`
	Active          *bool      `json:"active"`
}

func validateDiscount(pct float64) error {
	if pct <= 0 || pct > 100 {
		return errors.New("discount_percent must be between 0 and 100")
	}
	return nil
}

func (s *promotionService) Create(ctx context.Context, req *CreatePromotionRequest) (*models.Promotion, error) {
	tenantID, ok := tenancy.TenantIDFromContext(ctx)
	if !ok {
		return nil, errors.New("no tenant in context")
	}

	if err := common.ValidateRequiredString(req.Title, "title"); err != nil {
		return nil, err
	}
	if err := validateDiscount(req.DiscountPercent); err != nil {
		return nil, err
	}
	if !req.EndsAt.After(req.StartsAt) {
		return nil, errors.New("ends_at must be after starts_at")
	}

	promo := &models.Promotion{
		ID:              uuid.New(),
		TenantID:        tenantID,
		Title:           req.Title,
		DiscountPercent: req.DiscountPercent,
		StartsAt:        req.StartsAt,
		EndsAt:          req.EndsAt,
		Active:          true,
	}

	if err := s.promoRepo.Create(ctx, promo); err != nil {
		return nil, err
	}
	return promo, nil
}

func (s *promotionService) GetByID(ctx context.Context, id uuid.UUID) (*models.Promotion, error) {
	tenantID, ok := tenancy.TenantIDFromContext(ctx)
	if !ok {
		return nil, errors.New("no tenant in context")
	}

	promo, err := s.promoRepo.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if !tenancy.Validate(tenantID, promo) {
		return nil, tenancy.ErrTenantMismatch
	}
	return promo, nil
}

func (s *promotionService) Update(ctx context.Context, req *UpdatePromotionRequest) (*models.Promotion, error) {
	tenantID, ok := tenancy.TenantIDFromContext(ctx)
	if !ok {
		return nil, errors.New("no tenant in context")
	}

	existing, err := s.promoRepo.GetByID(ctx, tenantID, req.ID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		existing.Title = *req.Title
	}
	if req.DiscountPercent != nil {
		if err := validateDiscount(*req.DiscountPercent); err != nil {
			return nil, err
		}
		existing.DiscountPercent = *req.DiscountPercent
	}
	if req.StartsAt != nil {
		existing.StartsAt = *req.StartsAt
	}
	if req.EndsAt != nil {
		existing.EndsAt = *req.EndsAt
	}
	if req.Active != nil {
		existing.Active = *req.Active
	}
	if !existing.EndsAt.After(existing.StartsAt) {
		return nil, errors.New("ends_at must be after starts_at")
	}

	if err := s.promoRepo.Update(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

func (s *promotionService) Delete(ctx context.Context, id uuid.UUID) error {
	tenantID, ok := tenancy.TenantIDFromContext(ctx)
	if !ok {
		return errors.New("no tenant in context")
	}
	return s.promoRepo.Delete(ctx, tenantID, id)
}

func (s *promotionService) List(ctx context.Context, onlyActive bool, limit, offset int) ([]*models.Promotion, error) {
	tenantID, ok := tenancy.TenantIDFromContext(ctx)
	if !ok {
		return nil, errors.New("no tenant in context")
	}

	limit, offset = common.ValidatePaginationParams(limit, offset)

	promos, err := s.promoRepo.List(ctx, tenantID, onlyActive, limit, offset)
	if err != nil {
		return nil, err
	}

	// The active listing feeds customer-facing display; drop foreign rows
	// rather than failing the page. The management listing stays strict.
	if onlyActive {
		return tenancy.Filter(tenantID, promos), nil
	}
	if !tenancy.ValidateAll(tenantID, promos) {
		return nil, tenancy.ErrTenantMismatch
	}
	return promos, nil
}

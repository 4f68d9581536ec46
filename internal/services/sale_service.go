package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"petshop2/internal/common"
	"petshop2/internal/models"
	"petshop2/internal/repositories"
	"petshop2/internal/tenancy"

	"github.com/google/uuid"
)

type SaleService interface {
	Create(ctx context.Context, req *CreateSaleRequest) (*models.Sale, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Sale, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit, offset int) ([]*models.Sale, error)
}

type saleService struct {
	saleRepo      repositories.SaleRepository
	financialRepo repositories.FinancialRepository
}

func NewSaleService(saleRepo repositories.SaleRepository, financialRepo repositories.FinancialRepository) SaleService {
	return &saleService{saleRepo: saleRepo, financialRepo: financialRepo}
}

type CreateSaleRequest struct {
	ClientID      *uuid.UUID `json:"client_id"`
	Total         float64    `json:"total" validate:"required"`
	PaymentMethod string     `json:"payment_method" validate:"required"`
	SoldAt        *time.Time `json:"sold_at"`
}

func (s *saleService) Create(ctx context.Context, req *CreateSaleRequest) (*models.Sale, error) {
	tenantID, ok := tenancy.TenantIDFromContext(ctx)
	if !ok {
		return nil, errors.New("no tenant in context")
	}

	if err := common.ValidatePositiveFloat(req.Total, "total", 10000000); err != nil {
		return nil, err
	}
	if !models.ValidPaymentMethod(req.PaymentMethod) {
		return nil, fmt.Errorf("invalid payment method %q", req.PaymentMethod)
	}

	soldAt := time.Now()
	if req.SoldAt != nil {
		soldAt = *req.SoldAt
	}

	sale := &models.Sale{
		ID:            uuid.New(),
		TenantID:      tenantID,
		ClientID:      req.ClientID,
		Total:         req.Total,
		PaymentMethod: req.PaymentMethod,
		SoldAt:        soldAt,
	}

	if err := s.saleRepo.Create(ctx, sale); err != nil {
		return nil, err
	}

	// Every sale lands in the books as a paid income entry
	entry := &models.FinancialEntry{
		ID:          uuid.New(),
		TenantID:    tenantID,
		Description: fmt.Sprintf("Venda %s", sale.ID),
		Amount:      sale.Total,
		Type:        models.EntryIncome,
		Status:      models.EntryPaid,
		PaidAt:      &soldAt,
	}
	if err := s.financialRepo.Create(ctx, entry); err != nil {
		return nil, err
	}

	return sale, nil
}

func (s *saleService) GetByID(ctx context.Context, id uuid.UUID) (*models.Sale, error) {
	tenantID, ok := tenancy.TenantIDFromContext(ctx)
	if !ok {
		return nil, errors.New("no tenant in context")
	}

	sale, err := s.saleRepo.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if !tenancy.Validate(tenantID, sale) {
		return nil, tenancy.ErrTenantMismatch
	}
	return sale, nil
}

func (s *saleService) Delete(ctx context.Context, id uuid.UUID) error {
	tenantID, ok := tenancy.TenantIDFromContext(ctx)
	if !ok {
		return errors.New("no tenant in context")
	}
	return s.saleRepo.Delete(ctx, tenantID, id)
}

func (s *saleService) List(ctx context.Context, limit, offset int) ([]*models.Sale, error) {
	tenantID, ok := tenancy.TenantIDFromContext(ctx)
	if !ok {
		return nil, errors.New("no tenant in context")
	}

	limit, offset = common.ValidatePaginationParams(limit, offset)

	sales, err := s.saleRepo.List(ctx, tenantID, limit, offset)
	if err != nil {
		return nil, err
	}
	if !tenancy.ValidateAll(tenantID, sales) {
		return nil, tenancy.ErrTenantMismatch
	}
	return sales, nil
}

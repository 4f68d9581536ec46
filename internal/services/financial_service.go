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

type FinancialService interface {
	Create(ctx context.Context, req *CreateFinancialEntryRequest) (*models.FinancialEntry, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.FinancialEntry, error)
	MarkPaid(ctx context.Context, id uuid.UUID) (*models.FinancialEntry, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, entryType, status *string, limit, offset int) ([]*models.FinancialEntry, error)
}

type financialService struct {
	financialRepo repositories.FinancialRepository
}

func NewFinancialService(financialRepo repositories.FinancialRepository) FinancialService {
	return &financialService{financialRepo: financialRepo}
}

type CreateFinancialEntryRequest struct {
	Description string     `json:"description" validate:"required"`
	Amount      float64    `json:"amount" validate:"required"`
	Type        string     `json:"type" validate:"required"`
	DueDate     *time.Time `json:"due_date"`
}

func (s *financialService) Create(ctx context.Context, req *CreateFinancialEntryRequest) (*models.FinancialEntry, error) {
	tenantID, ok := tenancy.TenantIDFromContext(ctx)
	if !ok {
		return nil, errors.New("no tenant in context")
	}

	if err := common.ValidateRequiredString(req.Description, "description"); err != nil {
		return nil, err
	}
	if err := common.ValidatePositiveFloat(req.Amount, "amount", 10000000); err != nil {
		return nil, err
	}
	if !models.ValidEntryType(req.Type) {
		return nil, fmt.Errorf("type must be %s or %s", models.EntryIncome, models.EntryExpense)
	}

	entry := &models.FinancialEntry{
		ID:          uuid.New(),
		TenantID:    tenantID,
		Description: req.Description,
		Amount:      req.Amount,
		Type:        req.Type,
		Status:      models.EntryPending,
		DueDate:     req.DueDate,
	}

	if err := s.financialRepo.Create(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *financialService) GetByID(ctx context.Context, id uuid.UUID) (*models.FinancialEntry, error) {
	tenantID, ok := tenancy.TenantIDFromContext(ctx)
	if !ok {
		return nil, errors.New("no tenant in context")
	}

	entry, err := s.financialRepo.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if !tenancy.Validate(tenantID, entry) {
		return nil, tenancy.ErrTenantMismatch
	}
	return entry, nil
}

func (s *financialService) MarkPaid(ctx context.Context, id uuid.UUID) (*models.FinancialEntry, error) {
	tenantID, ok := tenancy.TenantIDFromContext(ctx)
	if !ok {
		return nil, errors.New("no tenant in context")
	}

	entry, err := s.financialRepo.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if entry.Status == models.EntryPaid {
		return entry, nil
	}

	now := time.Now()
	entry.Status = models.EntryPaid
	entry.PaidAt = &now
	if err := s.financialRepo.Update(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *financialService) Delete(ctx context.Context, id uuid.UUID) error {
	tenantID, ok := tenancy.TenantIDFromContext(ctx)
	if !ok {
		return errors.New("no tenant in context")
	}
	return s.financialRepo.Delete(ctx, tenantID, id)
}

func (s *financialService) List(ctx context.Context, entryType, status *string, limit, offset int) ([]*models.FinancialEntry, error) {
	tenantID, ok := tenancy.TenantIDFromContext(ctx)
	if !ok {
		return nil, errors.New("no tenant in context")
	}

	if entryType != nil && !models.ValidEntryType(*entryType) {
		return nil, fmt.Errorf("invalid entry type %q", *entryType)
	}
	if status != nil && !models.ValidEntryStatus(*status) {
		return nil, fmt.Errorf("invalid entry status %q", *status)
	}

	limit, offset = common.ValidatePaginationParams(limit, offset)

	entries, err := s.financialRepo.List(ctx, tenantID, entryType, status, limit, offset)
	if err != nil {
		return nil, err
	}
	if !tenancy.ValidateAll(tenantID, entries) {
		return nil, tenancy.ErrTenantMismatch
	}
	return entries, nil
}

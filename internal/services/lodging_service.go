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

var ErrLodgingOverlap = errors.New("pet already has a booking in this period")

type LodgingService interface {
	Create(ctx context.Context, req *CreateLodgingRequest) (*models.Lodging, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Lodging, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*models.Lodging, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit, offset int) ([]*models.Lodging, error)
}

type lodgingService struct {
	lodgingRepo repositories.LodgingRepository
	petRepo     repositories.PetRepository
}

func NewLodgingService(lodgingRepo repositories.LodgingRepository, petRepo repositories.PetRepository) LodgingService {
	return &lodgingService{lodgingRepo: lodgingRepo, petRepo: petRepo}
}

type CreateLodgingRequest struct {
	PetID     uuid.UUID `json:"pet_id" validate:"required"`
	CheckIn   time.Time `json:"check_in" validate:"required"`
	CheckOut  time.Time `json:"check_out" validate:"required"`
	DailyRate float64   `json:"daily_rate" validate:"required"`
	Notes     *string   `json:"notes"`
}

func (s *lodgingService) Create(ctx context.Context, req *CreateLodgingRequest) (*models.Lodging, error) {
	tenantID, ok := tenancy.TenantIDFromContext(ctx)
	if !ok {
		return nil, errors.New("no tenant in context")
	}

	if req.CheckIn.IsZero() || req.CheckOut.IsZero() {
		return nil, errors.New("check_in and check_out are required")
	}
	if !req.CheckOut.After(req.CheckIn) {
		return nil, errors.New("check_out must be after check_in")
	}
	if err := common.ValidatePositiveFloat(req.DailyRate, "daily_rate", 100000); err != nil {
		return nil, err
	}

	pet, err := s.petRepo.GetByID(ctx, tenantID, req.PetID)
	if err != nil {
		return nil, errors.New("pet not found")
	}
	if !tenancy.Validate(tenantID, pet) {
		return nil, tenancy.ErrTenantMismatch
	}

	overlap, err := s.lodgingRepo.HasOverlap(ctx, tenantID, req.PetID, req.CheckIn, req.CheckOut, nil)
	if err != nil {
		return nil, err
	}
	if overlap {
		return nil, ErrLodgingOverlap
	}

	lodging := &models.Lodging{
		ID:        uuid.New(),
		TenantID:  tenantID,
		PetID:     req.PetID,
		CheckIn:   req.CheckIn,
		CheckOut:  req.CheckOut,
		DailyRate: req.DailyRate,
		Status:    models.LodgingReserved,
		Notes:     req.Notes,
	}

	if err := s.lodgingRepo.Create(ctx, lodging); err != nil {
		return nil, err
	}
	return lodging, nil
}

func (s *lodgingService) GetByID(ctx context.Context, id uuid.UUID) (*models.Lodging, error) {
	tenantID, ok := tenancy.TenantIDFromContext(ctx)
	if !ok {
		return nil, errors.New("no tenant in context")
	}

	lodging, err := s.lodgingRepo.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if !tenancy.Validate(tenantID, lodging) {
		return nil, tenancy.ErrTenantMismatch
	}
	return lodging, nil
}

func (s *lodgingService) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*models.Lodging, error) {
	if !models.ValidLodgingStatus(status) {
		return nil, fmt.Errorf("invalid lodging status %q", status)
	}

	tenantID, ok := tenancy.TenantIDFromContext(ctx)
	if !ok {
		return nil, errors.New("no tenant in context")
	}

	existing, err := s.lodgingRepo.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if !tenancy.Validate(tenantID, existing) {
		return nil, tenancy.ErrTenantMismatch
	}

	existing.Status = status
	if err := s.lodgingRepo.Update(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

func (s *lodgingService) Delete(ctx context.Context, id uuid.UUID) error {
	tenantID, ok := tenancy.TenantIDFromContext(ctx)
	if !ok {
		return errors.New("no tenant in context")
	}
	return s.lodgingRepo.Delete(ctx, tenantID, id)
}

func (s *lodgingService) List(ctx context.Context, limit, offset int) ([]*models.Lodging, error) {
	tenantID, ok := tenancy.TenantIDFromContext(ctx)
	if !ok {
		return nil, errors.New("no tenant in context")
	}

	limit, offset = common.ValidatePaginationParams(limit, offset)

	lodgings, err := s.lodgingRepo.List(ctx, tenantID, limit, offset)
	if err != nil {
		return nil, err
	}
	if !tenancy.ValidateAll(tenantID, lodgings) {
		return nil, tenancy.ErrTenantMismatch
	}
	return lodgings, nil
}

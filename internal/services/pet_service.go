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

type PetService interface {
	Create(ctx context.Context, req *CreatePetRequest) (*models.Pet, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Pet, error)
	Update(ctx context.Context, req *UpdatePetRequest) (*models.Pet, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filter *models.PetSearchFilter) ([]*models.Pet, error)
}

type petService struct {
	petRepo    repositories.PetRepository
	clientRepo repositories.ClientRepository
}

func NewPetService(petRepo repositories.PetRepository, clientRepo repositories.ClientRepository) PetService {
	return &petService{petRepo: petRepo, clientRepo: clientRepo}
}

type CreatePetRequest struct {
	ClientID  uuid.UUID  `json:"client_id" validate:"required"`
	Name      string     `json:"name" validate:"required"`
	Species   string     `json:"species" validate:"required"`
	Breed     *string    `json:"breed"`
	BirthDate *time.Time `json:"birth_date"`
	WeightKg  *float64   `json:"weight_kg"`
	Notes     *string    `json:"notes"`
}

type UpdatePetRequest struct {
	ID        uuid.UUID
	ClientID  *uuid.UUID `json:"client_id"`
	Name      *string    `json:"name"`
	Species   *string    `json:"species"`
	Breed     *string    `json:"breed"`
	BirthDate *time.Time `json:"birth_date"`
	WeightKg  *float64   `json:"weight_kg"`
	Notes     *string    `json:"notes"`
}

func (s *petService) Create(ctx context.Context, req *CreatePetRequest) (*models.Pet, error) {
	tenantID, ok := tenancy.TenantIDFromContext(ctx)
	if !ok {
		return nil, errors.New("no tenant in context")
	}

	if err := common.ValidateRequiredString(req.Name, "name"); err != nil {
		return nil, err
	}
	if err := common.ValidateRequiredString(req.Species, "species"); err != nil {
		return nil, err
	}
	if req.WeightKg != nil {
		if err := common.ValidatePositiveFloat(*req.WeightKg, "weight_kg", 500); err != nil {
			return nil, err
		}
	}

	// The tutor must exist and belong to this tenant
	client, err := s.clientRepo.GetByID(ctx, tenantID, req.ClientID)
	if err != nil {
		return nil, errors.New("client not found")
	}
	if !tenancy.Validate(tenantID, client) {
		return nil, tenancy.ErrTenantMismatch
	}

	pet := &models.Pet{
		ID:        uuid.New(),
		TenantID:  tenantID,
		ClientID:  req.ClientID,
		Name:      req.Name,
		Species:   req.Species,
		Breed:     req.Breed,
		BirthDate: req.BirthDate,
		WeightKg:  req.WeightKg,
		Notes:     req.Notes,
	}

	if err := s.petRepo.Create(ctx, pet); err != nil {
		return nil, err
	}
	return pet, nil
}

func (s *petService) GetByID(ctx context.Context, id uuid.UUID) (*models.Pet, error) {
	tenantID, ok := tenancy.TenantIDFromContext(ctx)
	if !ok {
		return nil, errors.New("no tenant in context")
	}

	pet, err := s.petRepo.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if !tenancy.Validate(tenantID, pet) {
		return nil, tenancy.ErrTenantMismatch
	}
	return pet, nil
}

func (s *petService) Update(ctx context.Context, req *UpdatePetRequest) (*models.Pet, error) {
	tenantID, ok := tenancy.TenantIDFromContext(ctx)
	if !ok {
		return nil, errors.New("no tenant in context")
	}

	existing, err := s.petRepo.GetByID(ctx, tenantID, req.ID)
	if err != nil {
		return nil, err
	}
	if !tenancy.Validate(tenantID, existing) {
		return nil, tenancy.ErrTenantMismatch
	}

	if req.ClientID != nil {
		existing.ClientID = *req.ClientID
	}
	if req.Name != nil {
		existing.Name = *req.Name
	}
	if req.Species != nil {
		existing.Species = *req.Species
	}
	if req.Breed != nil {
		existing.Breed = req.Breed
	}
	if req.BirthDate != nil {
		existing.BirthDate = req.BirthDate
	}
	if req.WeightKg != nil {
		existing.WeightKg = req.WeightKg
	}
	if req.Notes != nil {
		existing.Notes = req.Notes
	}

	if err := s.petRepo.Update(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

func (s *petService) Delete(ctx context.Context, id uuid.UUID) error {
	tenantID, ok := tenancy.TenantIDFromContext(ctx)
	if !ok {
		return errors.New("no tenant in context")
	}
	return s.petRepo.Delete(ctx, tenantID, id)
}

func (s *petService) List(ctx context.Context, filter *models.PetSearchFilter) ([]*models.Pet, error) {
	tenantID, ok := tenancy.TenantIDFromContext(ctx)
	if !ok {
		return nil, errors.New("no tenant in context")
	}

	filter.Limit, filter.Offset = common.ValidatePaginationParams(filter.Limit, filter.Offset)
	filter.Query = common.SanitizeSearchQuery(filter.Query)

	pets, err := s.petRepo.List(ctx, tenantID, filter)
	if err != nil {
		return nil, err
	}

	// Safety net: never hand out rows owned by another tenant
	if !tenancy.ValidateAll(tenantID, pets) {
		return nil, tenancy.ErrTenantMismatch
	}
	return pets, nil
}

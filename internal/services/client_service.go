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

type ClientService interface {
	Create(ctx context.Context, req *CreateClientRequest) (*models.Client, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Client, error)
	Update(ctx context.Context, req *UpdateClientRequest) (*models.Client, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, search string, limit, offset int) ([]*models.Client, error)
}

type clientService struct {
	clientRepo repositories.ClientRepository
}

func NewClientService(clientRepo repositories.ClientRepository) ClientService {
	return &clientService{clientRepo: clientRepo}
}

type CreateClientRequest struct {
	Name    string  `json:"name" validate:"required"`
	Email   *string `json:"email"`
	Phone   *string `json:"phone"`
	Address *string `json:"address"`
}

type UpdateClientRequest struct {
	ID      uuid.UUID
	Name    *string `json:"name"`
	Email   *string `json:"email"`
	Phone   *string `json:"phone"`
	Address *string `json:"address"`
}

func (s *clientService) Create(ctx context.Context, req *CreateClientRequest) (*models.Client, error) {
	tenantID, ok := tenancy.TenantIDFromContext(ctx)
	if !ok {
		return nil, errors.New("no tenant in context")
	}

	if err := common.ValidateRequiredString(req.Name, "name"); err != nil {
		return nil, err
	}

	client := &models.Client{
		ID:       uuid.New(),
		TenantID: tenantID,
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Address:  req.Address,
	}

	if err := s.clientRepo.Create(ctx, client); err != nil {
		return nil, err
	}
	return client, nil
}

func (s *clientService) GetByID(ctx context.Context, id uuid.UUID) (*models.Client, error) {
	tenantID, ok := tenancy.TenantIDFromContext(ctx)
	if !ok {
		return nil, errors.New("no tenant in context")
	}

	client, err := s.clientRepo.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if !tenancy.Validate(tenantID, client) {
		return nil, tenancy.ErrTenantMismatch
	}
	return client, nil
}

func (s *clientService) Update(ctx context.Context, req *UpdateClientRequest) (*models.Client, error) {
	tenantID, ok := tenancy.TenantIDFromContext(ctx)
	if !ok {
		return nil, errors.New("no tenant in context")
	}

	existing, err := s.clientRepo.GetByID(ctx, tenantID, req.ID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if err := common.ValidateRequiredString(*req.Name, "name"); err != nil {
			return nil, err
		}
		existing.Name = *req.Name
	}
	if req.Email != nil {
		existing.Email = req.Email
	}
	if req.Phone != nil {
		existing.Phone = req.Phone
	}
	if req.Address != nil {
		existing.Address = req.Address
	}

	if err := s.clientRepo.Update(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

func (s *clientService) Delete(ctx context.Context, id uuid.UUID) error {
	tenantID, ok := tenancy.TenantIDFromContext(ctx)
	if !ok {
		return errors.New("no tenant in context")
	}
	return s.clientRepo.Delete(ctx, tenantID, id)
}

func (s *clientService) List(ctx context.Context, search string, limit, offset int) ([]*models.Client, error) {
	tenantID, ok := tenancy.TenantIDFromContext(ctx)
	if !ok {
		return nil, errors.New("no tenant in context")
	}

	limit, offset = common.ValidatePaginationParams(limit, offset)
	search = common.SanitizeSearchQuery(search)

	var (
		clients []*models.Client
		err     error
	)
	if search != "" {
		clients, err = s.clientRepo.Search(ctx, tenantID, search, limit, offset)
	} else {
		clients, err = s.clientRepo.List(ctx, tenantID, limit, offset)
	}
	if err != nil {
		return nil, err
	}
	if !tenancy.ValidateAll(tenantID, clients) {
		return nil, tenancy.ErrTenantMismatch
	}
	return clients, nil
}

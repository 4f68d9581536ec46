package services

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"petshop2/internal/caching"
	"petshop2/internal/models"
	"petshop2/internal/repositories"

	"github.com/google/uuid"
)

const tenantCacheTTL = 5 * time.Minute

var subdomainPattern = regexp.MustCompile(`^[a-z0-9]([a-z0-9-]{1,61}[a-z0-9])?$`)

// Subdomains that can never be claimed by a tenant.
var reservedSubdomains = map[string]bool{
	"www": true, "api": true, "app": true, "admin": true, "static": true,
}

// TenantService manages tenant lifecycle. It also implements
// tenancy.Directory for request resolution, serving lookups from the redis
// cache in front of Postgres.
type TenantService interface {
	Register(ctx context.Context, req *RegisterTenantRequest) (*models.Tenant, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Tenant, error)
	GetBySubdomain(ctx context.Context, subdomain string) (*models.Tenant, error)
	Update(ctx context.Context, req *UpdateTenantRequest) (*models.Tenant, error)
	UpdateConfig(ctx context.Context, id uuid.UUID, cfg *models.TenantConfig) (*models.Tenant, error)
	UpdateLogo(ctx context.Context, id uuid.UUID, logoKey string) (*models.Tenant, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit, offset int) ([]*models.Tenant, error)
}

type tenantService struct {
	tenantRepo repositories.TenantRepository
	cacheSvc   caching.CacheService
}

func NewTenantService(tenantRepo repositories.TenantRepository, cacheSvc caching.CacheService) TenantService {
	return &tenantService{tenantRepo: tenantRepo, cacheSvc: cacheSvc}
}

type RegisterTenantRequest struct {
	Name      string `json:"name" validate:"required"`
	Subdomain string `json:"subdomain" validate:"required"`
	Plan      string `json:"plan"`
}

type UpdateTenantRequest struct {
	ID        uuid.UUID
	Name      string `json:"name" validate:"required"`
	Subdomain string `json:"subdomain" validate:"required"`
	Status    string `json:"status" validate:"required"`
	Plan      string `json:"plan"`
}

// ValidateSubdomain checks the subdomain format and reserved names.
func ValidateSubdomain(subdomain string) error {
	if !subdomainPattern.MatchString(subdomain) {
		return errors.New("subdomain must be lowercase letters, digits and hyphens, 2-63 characters")
	}
	if reservedSubdomains[subdomain] {
		return errors.New("subdomain is reserved")
	}
	return nil
}

func (s *tenantService) Register(ctx context.Context, req *RegisterTenantRequest) (*models.Tenant, error) {
	if req.Name == "" || req.Subdomain == "" {
		return nil, errors.New("name and subdomain are required")
	}
	subdomain := strings.ToLower(strings.TrimSpace(req.Subdomain))
	if err := ValidateSubdomain(subdomain); err != nil {
		return nil, err
	}

	if existing, err := s.tenantRepo.GetBySubdomain(ctx, subdomain); err == nil && existing != nil {
		return nil, errors.New("subdomain already taken")
	}

	plan := req.Plan
	if plan == "" {
		plan = models.PlanBasic
	}

	tenant := &models.Tenant{
		ID:        uuid.New(),
		Name:      req.Name,
		Subdomain: subdomain,
		Status:    models.TenantStatusActive,
		Plan:      plan,
	}

	if err := s.tenantRepo.Create(ctx, tenant); err != nil {
		return nil, err
	}

	return tenant, nil
}

func (s *tenantService) GetByID(ctx context.Context, id uuid.UUID) (*models.Tenant, error) {
	if cached, err := s.cacheSvc.GetTenant(ctx, id); err == nil && cached != nil {
		return cached, nil
	}

	tenant, err := s.tenantRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	_ = s.cacheSvc.SetTenant(ctx, tenant, tenantCacheTTL)
	return tenant, nil
}

func (s *tenantService) GetBySubdomain(ctx context.Context, subdomain string) (*models.Tenant, error) {
	if subdomain == "" {
		return nil, errors.New("subdomain is required")
	}

	if cached, err := s.cacheSvc.GetTenantBySubdomain(ctx, subdomain); err == nil && cached != nil {
		return cached, nil
	}

	tenant, err := s.tenantRepo.GetBySubdomain(ctx, subdomain)
	if err != nil {
		return nil, err
	}
	_ = s.cacheSvc.SetTenant(ctx, tenant, tenantCacheTTL)
	return tenant, nil
}

func (s *tenantService) Update(ctx context.Context, req *UpdateTenantRequest) (*models.Tenant, error) {
	existing, err := s.tenantRepo.GetByID(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	stale := *existing

	existing.Name = req.Name
	existing.Subdomain = strings.ToLower(strings.TrimSpace(req.Subdomain))
	existing.Status = req.Status
	if req.Plan != "" {
		existing.Plan = req.Plan
	}
	if err := ValidateSubdomain(existing.Subdomain); err != nil {
		return nil, err
	}

	if err := s.tenantRepo.Update(ctx, existing); err != nil {
		return nil, err
	}

	// Drop both the old and new cache entries; the subdomain index may have moved
	_ = s.cacheSvc.DeleteTenant(ctx, &stale)
	_ = s.cacheSvc.DeleteTenant(ctx, existing)
	return existing, nil
}

func (s *tenantService) UpdateConfig(ctx context.Context, id uuid.UUID, cfg *models.TenantConfig) (*models.Tenant, error) {
	existing, err := s.tenantRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if cfg.Name != "" {
		existing.Name = cfg.Name
	}
	if cfg.ThemeColor != nil {
		existing.ThemeColor = cfg.ThemeColor
	}

	if err := s.tenantRepo.Update(ctx, existing); err != nil {
		return nil, err
	}
	_ = s.cacheSvc.DeleteTenant(ctx, existing)
	return existing, nil
}

func (s *tenantService) UpdateLogo(ctx context.Context, id uuid.UUID, logoKey string) (*models.Tenant, error) {
	existing, err := s.tenantRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	existing.LogoKey = &logoKey
	if err := s.tenantRepo.Update(ctx, existing); err != nil {
		return nil, err
	}
	_ = s.cacheSvc.DeleteTenant(ctx, existing)
	return existing, nil
}

func (s *tenantService) Delete(ctx context.Context, id uuid.UUID) error {
	existing, err := s.tenantRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.tenantRepo.Delete(ctx, id); err != nil {
		return err
	}
	_ = s.cacheSvc.DeleteTenant(ctx, existing)
	return s.cacheSvc.InvalidateTenantCache(ctx, id)
}

func (s *tenantService) List(ctx context.Context, limit, offset int) ([]*models.Tenant, error) {
	if limit <= 0 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}
	return s.tenantRepo.List(ctx, limit, offset)
}

package tenancy

import (
	"context"
	"sync"
	"time"

	"petshop2/internal/models"

	"github.com/google/uuid"
)

// fakeCache is an in-memory caching.CacheService for tests.
type fakeCache struct {
	mu      sync.Mutex
	strings map[string]string
	tenants map[uuid.UUID]*models.Tenant
	bySub   map[string]uuid.UUID
}

func newFakeCache() *fakeCache {
	return &fakeCache{
		strings: make(map[string]string),
		tenants: make(map[uuid.UUID]*models.Tenant),
		bySub:   make(map[string]uuid.UUID),
	}
}

func (f *fakeCache) GetTenant(ctx context.Context, tenantID uuid.UUID) (*models.Tenant, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.tenants[tenantID], nil
}

func (f *fakeCache) GetTenantBySubdomain(ctx context.Context, subdomain string) (*models.Tenant, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if id, ok := f.bySub[subdomain]; ok {
		return f.tenants[id], nil
	}
	return nil, nil
}

func (f *fakeCache) SetTenant(ctx context.Context, tenant *models.Tenant, ttl time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tenants[tenant.ID] = tenant
	f.bySub[tenant.Subdomain] = tenant.ID
	return nil
}

func (f *fakeCache) DeleteTenant(ctx context.Context, tenant *models.Tenant) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.tenants, tenant.ID)
	delete(f.bySub, tenant.Subdomain)
	return nil
}

func (f *fakeCache) GetReportSummary(ctx context.Context, tenantID uuid.UUID) (map[string]interface{}, error) {
	return nil, nil
}

func (f *fakeCache) SetReportSummary(ctx context.Context, tenantID uuid.UUID, summary map[string]interface{}, ttl time.Duration) error {
	return nil
}

func (f *fakeCache) InvalidateTenantCache(ctx context.Context, tenantID uuid.UUID) error {
	return nil
}

func (f *fakeCache) IsRateLimited(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	return false, nil
}

func (f *fakeCache) IncrementRateLimit(ctx context.Context, key string, window time.Duration) error {
	return nil
}

func (f *fakeCache) SetString(ctx context.Context, key string, value string, ttl time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.strings[key] = value
	return nil
}

func (f *fakeCache) GetString(ctx context.Context, key string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.strings[key], nil
}

func (f *fakeCache) Delete(ctx context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.strings, key)
	return nil
}

func activeTenant(subdomain string) *models.Tenant {
	return &models.Tenant{
		ID:        uuid.New(),
		Name:      "Pet Shop " + subdomain,
		Subdomain: subdomain,
		Status:    models.TenantStatusActive,
		Plan:      models.PlanBasic,
	}
}

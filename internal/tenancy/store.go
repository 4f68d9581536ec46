package tenancy

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"petshop2/internal/caching"
	"petshop2/internal/models"
)

// Well-known session keys, mirroring the dashboard's storage layout:
// the tenant identifier (subdomain) and the hydrated tenant object are
// persisted separately and both cleared on logout.
const (
	sessionTenantIDKey = "petshop:session:%s:tenant_id"
	sessionTenantKey   = "petshop:session:%s:tenant"
)

// Store persists the active tenant per session. Populated on login, read as
// a resolution fallback when the hostname carries no subdomain, cleared on
// logout.
type Store struct {
	cache caching.CacheService
	ttl   time.Duration
}

func NewStore(cache caching.CacheService, ttl time.Duration) *Store {
	return &Store{cache: cache, ttl: ttl}
}

// SetActive records tenant as the session's active tenant.
func (s *Store) SetActive(ctx context.Context, sessionID string, tenant *models.Tenant) error {
	data, err := json.Marshal(tenant)
	if err != nil {
		return err
	}
	if err := s.cache.SetString(ctx, fmt.Sprintf(sessionTenantIDKey, sessionID), tenant.Subdomain, s.ttl); err != nil {
		return err
	}
	return s.cache.SetString(ctx, fmt.Sprintf(sessionTenantKey, sessionID), string(data), s.ttl)
}

// ActiveSubdomain returns the session's persisted tenant subdomain, or ""
// when none is stored.
func (s *Store) ActiveSubdomain(ctx context.Context, sessionID string) (string, error) {
	return s.cache.GetString(ctx, fmt.Sprintf(sessionTenantIDKey, sessionID))
}

// ActiveTenant returns the session's persisted hydrated tenant, or nil when
// none is stored.
func (s *Store) ActiveTenant(ctx context.Context, sessionID string) (*models.Tenant, error) {
	data, err := s.cache.GetString(ctx, fmt.Sprintf(sessionTenantKey, sessionID))
	if err != nil || data == "" {
		return nil, err
	}

	var tenant models.Tenant
	if err := json.Unmarshal([]byte(data), &tenant); err != nil {
		return nil, err
	}
	return &tenant, nil
}

// Clear removes the session's tenant state. Called on logout; a subsequent
// resolution with a bare hostname yields no tenant.
func (s *Store) Clear(ctx context.Context, sessionID string) error {
	if err := s.cache.Delete(ctx, fmt.Sprintf(sessionTenantIDKey, sessionID)); err != nil {
		return err
	}
	return s.cache.Delete(ctx, fmt.Sprintf(sessionTenantKey, sessionID))
}

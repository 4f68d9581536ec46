package tenancy

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"petshop2/internal/common"
	"petshop2/internal/models"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDirectory struct {
	byID  map[uuid.UUID]*models.Tenant
	bySub map[string]*models.Tenant
}

func newFakeDirectory(tenants ...*models.Tenant) *fakeDirectory {
	d := &fakeDirectory{
		byID:  make(map[uuid.UUID]*models.Tenant),
		bySub: make(map[string]*models.Tenant),
	}
	for _, t := range tenants {
		d.byID[t.ID] = t
		d.bySub[t.Subdomain] = t
	}
	return d
}

func (d *fakeDirectory) GetByID(ctx context.Context, id uuid.UUID) (*models.Tenant, error) {
	return d.byID[id], nil
}

func (d *fakeDirectory) GetBySubdomain(ctx context.Context, subdomain string) (*models.Tenant, error) {
	return d.bySub[subdomain], nil
}

// runMiddleware sends a request through the tenancy middleware and returns
// the recorder plus the tenant the downstream handler observed.
func runMiddleware(t *testing.T, dir Directory, store *Store, mutate func(*http.Request)) (*httptest.ResponseRecorder, *models.Tenant) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if mutate != nil {
		mutate(req)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var seen *models.Tenant
	handler := Middleware(dir, NewResolver(store))(func(c echo.Context) error {
		seen, _ = TenantFromContext(c.Request().Context())
		return c.NoContent(http.StatusOK)
	})

	require.NoError(t, handler(c))
	return rec, seen
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var resp common.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp.Error.Code
}

func TestMiddleware_ResolvesFromHeader(t *testing.T) {
	tenant := activeTenant("loja")
	dir := newFakeDirectory(tenant)

	rec, seen := runMiddleware(t, dir, nil, func(req *http.Request) {
		req.Host = "localhost"
		req.Header.Set(TenantHeader, tenant.ID.String())
	})

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, seen)
	assert.Equal(t, tenant.ID, seen.ID)
}

func TestMiddleware_ResolvesFromHeaderSubdomain(t *testing.T) {
	tenant := activeTenant("loja")
	dir := newFakeDirectory(tenant)

	rec, seen := runMiddleware(t, dir, nil, func(req *http.Request) {
		req.Host = "localhost"
		req.Header.Set(TenantHeader, "loja")
	})

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, seen)
	assert.Equal(t, tenant.ID, seen.ID)
}

func TestMiddleware_UnknownHeaderTenant(t *testing.T) {
	dir := newFakeDirectory()

	rec, _ := runMiddleware(t, dir, nil, func(req *http.Request) {
		req.Host = "localhost"
		req.Header.Set(TenantHeader, uuid.NewString())
	})

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, common.CodeTenantNotFound, errorCode(t, rec))
}

func TestMiddleware_ResolvesFromHost(t *testing.T) {
	tenant := activeTenant("loja")
	dir := newFakeDirectory(tenant)

	rec, seen := runMiddleware(t, dir, nil, func(req *http.Request) {
		req.Host = "loja.petshop.app"
	})

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, seen)
	assert.Equal(t, tenant.ID, seen.ID)
}

func TestMiddleware_UnknownSubdomain(t *testing.T) {
	dir := newFakeDirectory()

	rec, _ := runMiddleware(t, dir, nil, func(req *http.Request) {
		req.Host = "fantasma.petshop.app"
	})

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, common.CodeTenantNotFound, errorCode(t, rec))
}

func TestMiddleware_ResolvesFromClaim(t *testing.T) {
	tenant := activeTenant("loja")
	dir := newFakeDirectory(tenant)

	rec, seen := runMiddleware(t, dir, nil, func(req *http.Request) {
		req.Host = "localhost"
		ctx := context.WithValue(req.Context(), common.TenantIDKey, tenant.ID)
		*req = *req.WithContext(ctx)
	})

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, seen)
	assert.Equal(t, tenant.ID, seen.ID)
}

func TestMiddleware_ResolvesFromStore(t *testing.T) {
	tenant := activeTenant("loja")
	dir := newFakeDirectory(tenant)

	userID := uuid.New()
	store := NewStore(newFakeCache(), time.Hour)
	require.NoError(t, store.SetActive(context.Background(), userID.String(), tenant))

	rec, seen := runMiddleware(t, dir, store, func(req *http.Request) {
		req.Host = "localhost"
		ctx := context.WithValue(req.Context(), common.UserIDKey, userID)
		*req = *req.WithContext(ctx)
	})

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, seen)
	assert.Equal(t, tenant.ID, seen.ID)
}

func TestMiddleware_NoTenantResolved(t *testing.T) {
	dir := newFakeDirectory()

	rec, _ := runMiddleware(t, dir, nil, func(req *http.Request) {
		req.Host = "localhost"
	})

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, common.CodeUnauthorized, errorCode(t, rec))
}

func TestMiddleware_InactiveTenant(t *testing.T) {
	tenant := activeTenant("loja")
	tenant.Status = models.TenantStatusSuspended
	dir := newFakeDirectory(tenant)

	rec, _ := runMiddleware(t, dir, nil, func(req *http.Request) {
		req.Host = "loja.petshop.app"
	})

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, common.CodeTenantInactive, errorCode(t, rec))
}

func TestMiddleware_ClaimMismatch(t *testing.T) {
	tenant := activeTenant("loja")
	other := activeTenant("outra")
	dir := newFakeDirectory(tenant, other)

	// Token was minted for "outra" but the request targets "loja"
	rec, _ := runMiddleware(t, dir, nil, func(req *http.Request) {
		req.Host = "loja.petshop.app"
		ctx := context.WithValue(req.Context(), common.TenantIDKey, other.ID)
		*req = *req.WithContext(ctx)
	})

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, common.CodeTenantMismatch, errorCode(t, rec))
}

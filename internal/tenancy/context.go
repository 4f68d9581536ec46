package tenancy

import (
	"context"

	"github.com/google/uuid"

	"petshop2/internal/common"
	"petshop2/internal/models"
)

// WithTenant returns a context carrying both the tenant ID and the hydrated
// tenant object.
func WithTenant(ctx context.Context, tenant *models.Tenant) context.Context {
	ctx = context.WithValue(ctx, common.TenantIDKey, tenant.ID)
	return context.WithValue(ctx, common.TenantKey, tenant)
}

// TenantFromContext returns the hydrated tenant, when the resolution
// middleware has run.
func TenantFromContext(ctx context.Context) (*models.Tenant, bool) {
	tenant, ok := ctx.Value(common.TenantKey).(*models.Tenant)
	return tenant, ok
}

// TenantIDFromContext returns the active tenant ID.
func TenantIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	return common.GetTenantIDFromContext(ctx)
}

package tenancy

import (
	"context"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"petshop2/internal/common"
	"petshop2/internal/models"
)

// TenantHeader carries an explicit tenant override (ID or subdomain).
const TenantHeader = "X-Tenant-ID"

// Directory looks up tenants during request resolution. Implemented by the
// tenant service (cache in front of Postgres).
type Directory interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Tenant, error)
	GetBySubdomain(ctx context.Context, subdomain string) (*models.Tenant, error)
}

// Middleware resolves the active tenant for each request and injects it into
// the request context. Resolution order: explicit X-Tenant-ID header, Host
// subdomain, token claim, persisted session value — the host and session
// steps run through resolver. Unknown tenants get 404, non-active tenants
// 403, and a token claim disagreeing with the resolved tenant 403
// TENANT_MISMATCH.
func Middleware(dir Directory, resolver *Resolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()

			var tenant *models.Tenant
			var err error

			if h := c.Request().Header.Get(TenantHeader); h != "" {
				if id, perr := uuid.Parse(h); perr == nil {
					tenant, err = dir.GetByID(ctx, id)
				} else {
					tenant, err = dir.GetBySubdomain(ctx, h)
				}
				if err != nil || tenant == nil {
					return common.SendTenantNotFound(c)
				}
			}

			if tenant == nil {
				if sub, _ := resolver.Resolve(ctx, c.Request().Host, ""); sub != "" {
					tenant, err = dir.GetBySubdomain(ctx, sub)
					if err != nil || tenant == nil {
						return common.SendTenantNotFound(c)
					}
				}
			}

			if tenant == nil {
				if claimID, ok := common.GetTenantIDFromContext(ctx); ok && claimID != uuid.Nil {
					tenant, err = dir.GetByID(ctx, claimID)
					if err != nil || tenant == nil {
						return common.SendTenantNotFound(c)
					}
				}
			}

			// Session fallback is best effort; an unreadable session just
			// means no tenant resolved
			if tenant == nil {
				if userID, ok := common.GetUserIDFromContext(ctx); ok {
					if sub, rerr := resolver.Resolve(ctx, "", userID.String()); rerr == nil && sub != "" {
						tenant, _ = dir.GetBySubdomain(ctx, sub)
					}
				}
			}

			if tenant == nil {
				return common.SendUnauthorizedError(c)
			}
			if !tenant.Active() {
				return common.SendTenantInactive(c)
			}

			// A token minted for one tenant cannot act on another.
			if claimID, ok := common.GetTenantIDFromContext(ctx); ok && claimID != uuid.Nil && claimID != tenant.ID {
				return common.SendTenantMismatch(c)
			}

			c.SetRequest(c.Request().WithContext(WithTenant(ctx, tenant)))
			return next(c)
		}
	}
}

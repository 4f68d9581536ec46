package middleware

import (
	"context"
	"net/http"

	"petshop2/internal/common"
	"petshop2/internal/models"
	"petshop2/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// UserDirectory looks the requesting user up for role checks. Implemented by
// the user repository.
type UserDirectory interface {
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.User, error)
}

// RequireAdmin lets only admin users through. The role is read from storage
// on every request, so a demotion takes effect immediately rather than when
// the token expires.
func RequireAdmin(users UserDirectory) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()

			userID, ok := common.GetUserIDFromContext(ctx)
			if !ok {
				return common.SendUnauthorizedError(c)
			}
			tenantID, ok := common.GetTenantIDFromContext(ctx)
			if !ok {
				return common.SendUnauthorizedError(c)
			}

			user, err := users.GetByID(ctx, tenantID, userID)
			if err != nil || user == nil {
				return common.SendUnauthorizedError(c)
			}
			if user.Role != services.RoleAdmin {
				return echo.NewHTTPError(http.StatusForbidden, "Acesso restrito a administradores")
			}

			return next(c)
		}
	}
}

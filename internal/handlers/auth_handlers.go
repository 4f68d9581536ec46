package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"petshop2/internal/common"
	"petshop2/internal/services"
	"petshop2/internal/tenancy"

	"github.com/labstack/echo/v4"
)

const (
	loginRateLimit  = 5
	loginRateWindow = time.Minute
)

type AuthHandlers struct {
	userService services.UserService
	authService services.AuthService
	tenantStore *tenancy.Store
	rateLimiter RateLimiter
}

// RateLimiter is the slice of the cache service login throttling needs.
type RateLimiter interface {
	IsRateLimited(ctx context.Context, key string, limit int, window time.Duration) (bool, error)
	IncrementRateLimit(ctx context.Context, key string, window time.Duration) error
}

func NewAuthHandlers(userService services.UserService, authService services.AuthService, tenantStore *tenancy.Store, rateLimiter RateLimiter) *AuthHandlers {
	return &AuthHandlers{
		userService: userService,
		authService: authService,
		tenantStore: tenantStore,
		rateLimiter: rateLimiter,
	}
}

// Signup handles POST /auth/signup. The tenant comes from the request context
// (subdomain or X-Tenant-ID), never from the body.
func (h *AuthHandlers) Signup(c echo.Context) error {
	ctx := c.Request().Context()

	var req services.SignupRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Formato de requisição inválido")
	}

	user, err := h.userService.Signup(ctx, &req)
	if err != nil {
		if errors.Is(err, services.ErrEmailTaken) {
			return common.SendClientError(c, "E-mail já cadastrado")
		}
		return common.SendClientError(c, err.Error())
	}

	return c.JSON(http.StatusCreated, user)
}

// Login handles POST /auth/login.
func (h *AuthHandlers) Login(c echo.Context) error {
	ctx := c.Request().Context()

	tenant, ok := tenancy.TenantFromContext(ctx)
	if !ok {
		return common.SendTenantNotFound(c)
	}

	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Formato de requisição inválido")
	}

	rateKey := tenant.ID.String() + ":" + req.Email
	if limited, err := h.rateLimiter.IsRateLimited(ctx, rateKey, loginRateLimit, loginRateWindow); err == nil && limited {
		return c.JSON(http.StatusTooManyRequests, common.CreateErrorResponse(common.CodeClient, "Muitas tentativas de login. Tente novamente em instantes", nil))
	}

	user, err := h.userService.Authenticate(ctx, tenant.ID, req.Email, req.Password)
	if err != nil {
		if rlErr := h.rateLimiter.IncrementRateLimit(ctx, rateKey, loginRateWindow); rlErr != nil {
			log.Printf("WARN: rate limit increment failed: %v", rlErr)
		}
		return c.JSON(http.StatusUnauthorized, common.CreateErrorResponse(common.CodeUnauthorized, "E-mail ou senha inválidos", nil))
	}

	tokens, err := h.authService.GenerateTokens(ctx, user.ID, tenant.ID)
	if err != nil {
		return common.SendServerError(c, "Falha ao gerar tokens")
	}

	// Persist the active tenant so later requests without a subdomain still
	// resolve; cleared again on logout.
	if err := h.tenantStore.SetActive(ctx, user.ID.String(), tenant); err != nil {
		log.Printf("WARN: failed to persist active tenant for user %s: %v", user.ID, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"user":   user,
		"tenant": tenant,
		"tokens": tokens,
	})
}

// Refresh handles POST /auth/refresh.
func (h *AuthHandlers) Refresh(c echo.Context) error {
	ctx := c.Request().Context()

	var req struct {
		RefreshToken string `json:"refresh_token"`
	}
	if err := c.Bind(&req); err != nil || req.RefreshToken == "" {
		return common.SendClientError(c, "refresh_token é obrigatório")
	}

	tokens, err := h.authService.RefreshTokens(ctx, req.RefreshToken)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, common.CreateErrorResponse(common.CodeUnauthorized, "Token de atualização inválido ou expirado", nil))
	}

	return c.JSON(http.StatusOK, tokens)
}

// Logout handles POST /auth/logout. Revokes the refresh token and clears the
// session's persisted tenant.
func (h *AuthHandlers) Logout(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	var req struct {
		RefreshToken string `json:"refresh_token"`
	}
	if err := c.Bind(&req); err == nil && req.RefreshToken != "" {
		if err := h.authService.RevokeRefreshToken(ctx, req.RefreshToken); err != nil {
			log.Printf("WARN: refresh token revocation failed for user %s: %v", userID, err)
		}
	}
	if err := h.authService.RevokeUserTokens(ctx, userID); err != nil {
		log.Printf("WARN: token revocation failed for user %s: %v", userID, err)
	}

	if err := h.tenantStore.Clear(ctx, userID.String()); err != nil {
		return common.SendServerError(c, "Falha ao encerrar a sessão")
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "Sessão encerrada"})
}

// Me handles GET /auth/me.
func (h *AuthHandlers) Me(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	user, err := h.userService.GetByID(ctx, userID)
	if err != nil {
		return sendServiceError(c, "Usuário", err)
	}

	tenant, _ := tenancy.TenantFromContext(ctx)
	return c.JSON(http.StatusOK, map[string]interface{}{
		"user":   user,
		"tenant": tenant,
	})
}

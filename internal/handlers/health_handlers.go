package handlers

import (
	"net/http"
	"runtime"
	"time"

	"petshop2/internal/caching"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
)

type HealthHandlers struct {
	pool     *pgxpool.Pool
	cacheSvc caching.CacheService
}

func NewHealthHandlers(pool *pgxpool.Pool, cacheSvc caching.CacheService) *HealthHandlers {
	return &HealthHandlers{pool: pool, cacheSvc: cacheSvc}
}

// Health handles GET /health. Liveness only.
func (h *HealthHandlers) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// Ready handles GET /health/ready: the service is ready once Postgres and
// redis both answer.
func (h *HealthHandlers) Ready(c echo.Context) error {
	ctx := c.Request().Context()

	if err := h.pool.Ping(ctx); err != nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "not_ready", "reason": "database"})
	}
	if _, err := h.cacheSvc.GetString(ctx, "petshop:health:probe"); err != nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "not_ready", "reason": "redis"})
	}

	return c.JSON(http.StatusOK, map[string]string{"status": "ready"})
}

// Detailed handles GET /health/detailed with per-dependency status.
func (h *HealthHandlers) Detailed(c echo.Context) error {
	ctx := c.Request().Context()

	services := map[string]string{"database": "ok", "redis": "ok"}
	status := "ok"
	code := http.StatusOK

	if err := h.pool.Ping(ctx); err != nil {
		services["database"] = "unreachable"
		status = "degraded"
		code = http.StatusServiceUnavailable
	}
	if _, err := h.cacheSvc.GetString(ctx, "petshop:health:probe"); err != nil {
		services["redis"] = "unreachable"
		status = "degraded"
		code = http.StatusServiceUnavailable
	}

	return c.JSON(code, map[string]interface{}{
		"status":     status,
		"timestamp":  time.Now().UTC().Format(time.RFC3339),
		"services":   services,
		"goroutines": runtime.NumGoroutine(),
	})
}

package handlers

import (
	"errors"
	"strconv"
	"time"

	"petshop2/internal/common"
	"petshop2/internal/tenancy"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/labstack/echo/v4"
)

func parsePagination(c echo.Context) (limit, offset int) {
	limit = 50
	offset = 0
	if limitParam := c.QueryParam("limit"); limitParam != "" {
		if l, err := strconv.Atoi(limitParam); err == nil && l > 0 {
			limit = l
		}
	}
	if offsetParam := c.QueryParam("offset"); offsetParam != "" {
		if o, err := strconv.Atoi(offsetParam); err == nil && o >= 0 {
			offset = o
		}
	}
	return limit, offset
}

func parseUUIDParam(c echo.Context, name string) (uuid.UUID, error) {
	id, err := common.ValidateUUID(c.Param(name), name)
	if err != nil {
		return uuid.Nil, common.SendValidationError(c, name, "UUID inválido")
	}
	return id, nil
}

// parseDateQuery reads an optional YYYY-MM-DD query parameter.
func parseDateQuery(c echo.Context, name string) (*time.Time, error) {
	v := c.QueryParam(name)
	if v == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return nil, common.SendValidationError(c, name, "data deve estar no formato AAAA-MM-DD")
	}
	return &t, nil
}

// sendServiceError maps service-layer failures onto the error envelope.
func sendServiceError(c echo.Context, resource string, err error) error {
	switch {
	case errors.Is(err, tenancy.ErrTenantMismatch):
		return common.SendTenantMismatch(c)
	case errors.Is(err, pgx.ErrNoRows):
		return common.SendNotFoundError(c, resource)
	default:
		return common.SendServerError(c, err.Error())
	}
}

package handlers

import (
	"errors"
	"net/http"

	"petshop2/internal/common"
	"petshop2/internal/services"

	"github.com/labstack/echo/v4"
)

type LodgingHandlers struct {
	lodgingService services.LodgingService
}

func NewLodgingHandlers(lodgingService services.LodgingService) *LodgingHandlers {
	return &LodgingHandlers{lodgingService: lodgingService}
}

// CreateLodging handles POST /lodgings
func (h *LodgingHandlers) CreateLodging(c echo.Context) error {
	var req services.CreateLodgingRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Formato de requisição inválido")
	}

	lodging, err := h.lodgingService.Create(c.Request().Context(), &req)
	if err != nil {
		if errors.Is(err, services.ErrLodgingOverlap) {
			return c.JSON(http.StatusConflict, common.CreateErrorResponse(common.CodeClient, "O pet já possui uma hospedagem neste período", nil))
		}
		return sendServiceError(c, "Hospedagem", err)
	}
	return c.JSON(http.StatusCreated, lodging)
}

// GetLodgingByID handles GET /lodgings/:id
func (h *LodgingHandlers) GetLodgingByID(c echo.Context) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	lodging, err := h.lodgingService.GetByID(c.Request().Context(), id)
	if err != nil {
		return sendServiceError(c, "Hospedagem", err)
	}
	return c.JSON(http.StatusOK, lodging)
}

// UpdateLodgingStatus handles PATCH /lodgings/:id/status
func (h *LodgingHandlers) UpdateLodgingStatus(c echo.Context) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := c.Bind(&req); err != nil || req.Status == "" {
		return common.SendValidationError(c, "status", "status é obrigatório")
	}

	lodging, err := h.lodgingService.UpdateStatus(c.Request().Context(), id, req.Status)
	if err != nil {
		return sendServiceError(c, "Hospedagem", err)
	}
	return c.JSON(http.StatusOK, lodging)
}

// DeleteLodging handles DELETE /lodgings/:id
func (h *LodgingHandlers) DeleteLodging(c echo.Context) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.lodgingService.Delete(c.Request().Context(), id); err != nil {
		return sendServiceError(c, "Hospedagem", err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Hospedagem removida"})
}

// ListLodgings handles GET /lodgings
func (h *LodgingHandlers) ListLodgings(c echo.Context) error {
	limit, offset := parsePagination(c)

	lodgings, err := h.lodgingService.List(c.Request().Context(), limit, offset)
	if err != nil {
		return sendServiceError(c, "Hospedagem", err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"lodgings": lodgings,
		"limit":    limit,
		"offset":   offset,
	})
}

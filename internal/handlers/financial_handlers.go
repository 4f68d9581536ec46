package handlers

import (
	"net/http"

	"petshop2/internal/common"
	"petshop2/internal/services"

	"github.com/labstack/echo/v4"
)

type FinancialHandlers struct {
	financialService services.FinancialService
}

func NewFinancialHandlers(financialService services.FinancialService) *FinancialHandlers {
	return &FinancialHandlers{financialService: financialService}
}

// CreateEntry handles POST /financial
func (h *FinancialHandlers) CreateEntry(c echo.Context) error {
	var req services.CreateFinancialEntryRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Formato de requisição inválido")
	}

	entry, err := h.financialService.Create(c.Request().Context(), &req)
	if err != nil {
		return sendServiceError(c, "Lançamento", err)
	}
	return c.JSON(http.StatusCreated, entry)
}

// GetEntryByID handles GET /financial/:id
func (h *FinancialHandlers) GetEntryByID(c echo.Context) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	entry, err := h.financialService.GetByID(c.Request().Context(), id)
	if err != nil {
		return sendServiceError(c, "Lançamento", err)
	}
	return c.JSON(http.StatusOK, entry)
}

// MarkEntryPaid handles PATCH /financial/:id/pay
func (h *FinancialHandlers) MarkEntryPaid(c echo.Context) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	entry, err := h.financialService.MarkPaid(c.Request().Context(), id)
	if err != nil {
		return sendServiceError(c, "Lançamento", err)
	}
	return c.JSON(http.StatusOK, entry)
}

// DeleteEntry handles DELETE /financial/:id
func (h *FinancialHandlers) DeleteEntry(c echo.Context) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.financialService.Delete(c.Request().Context(), id); err != nil {
		return sendServiceError(c, "Lançamento", err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Lançamento removido"})
}

// ListEntries handles GET /financial
func (h *FinancialHandlers) ListEntries(c echo.Context) error {
	limit, offset := parsePagination(c)

	var entryType, status *string
	if v := c.QueryParam("type"); v != "" {
		entryType = &v
	}
	if v := c.QueryParam("status"); v != "" {
		status = &v
	}

	entries, err := h.financialService.List(c.Request().Context(), entryType, status, limit, offset)
	if err != nil {
		return sendServiceError(c, "Lançamento", err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"entries": entries,
		"limit":   limit,
		"offset":  offset,
	})
}

package handlers

import (
	"net/http"

	"petshop2/internal/common"
	"petshop2/internal/services"

	"github.com/labstack/echo/v4"
)

type SaleHandlers struct {
	saleService services.SaleService
}

func NewSaleHandlers(saleService services.SaleService) *SaleHandlers {
	return &SaleHandlers{saleService: saleService}
}

// CreateSale handles POST /sales
func (h *SaleHandlers) CreateSale(c echo.Context) error {
	var req services.CreateSaleRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Formato de requisição inválido")
	}

	sale, err := h.saleService.Create(c.Request().Context(), &req)
	if err != nil {
		return sendServiceError(c, "Venda", err)
	}
	return c.JSON(http.StatusCreated, sale)
}

// GetSaleByID handles GET /sales/:id
func (h *SaleHandlers) GetSaleByID(c echo.Context) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	sale, err := h.saleService.GetByID(c.Request().Context(), id)
	if err != nil {
		return sendServiceError(c, "Venda", err)
	}
	return c.JSON(http.StatusOK, sale)
}

// DeleteSale handles DELETE /sales/:id
func (h *SaleHandlers) DeleteSale(c echo.Context) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.saleService.Delete(c.Request().Context(), id); err != nil {
		return sendServiceError(c, "Venda", err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Venda removida"})
}

// ListSales handles GET /sales
func (h *SaleHandlers) ListSales(c echo.Context) error {
	limit, offset := parsePagination(c)

	sales, err := h.saleService.List(c.Request().Context(), limit, offset)
	if err != nil {
		return sendServiceError(c, "Venda", err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"sales":  sales,
		"limit":  limit,
		"offset": offset,
	})
}

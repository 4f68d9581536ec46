package handlers

import (
	"net/http"

	"petshop2/internal/common"
	"petshop2/internal/services"

	"github.com/labstack/echo/v4"
)

type PromotionHandlers struct {
	promoService services.PromotionService
}

func NewPromotionHandlers(promoService services.PromotionService) *PromotionHandlers {
	return &PromotionHandlers{promoService: promoService}
}

// CreatePromotion handles POST /promotions
func (h *PromotionHandlers) CreatePromotion(c echo.Context) error {
	var req services.CreatePromotionRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Formato de requisição inválido")
	}

	promo, err := h.promoService.Create(c.Request().Context(), &req)
	if err != nil {
		return sendServiceError(c, "Promoção", err)
	}
	return c.JSON(http.StatusCreated, promo)
}

// GetPromotionByID handles GET /promotions/:id
func (h *PromotionHandlers) GetPromotionByID(c echo.Context) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	promo, err := h.promoService.GetByID(c.Request().Context(), id)
	if err != nil {
		return sendServiceError(c, "Promoção", err)
	}
	return c.JSON(http.StatusOK, promo)
}

// UpdatePromotion handles PUT /promotions/:id
func (h *PromotionHandlers) UpdatePromotion(c echo.Context) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	var req services.UpdatePromotionRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Formato de requisição inválido")
	}
	req.ID = id

	promo, err := h.promoService.Update(c.Request().Context(), &req)
	if err != nil {
		return sendServiceError(c, "Promoção", err)
	}
	return c.JSON(http.StatusOK, promo)
}

// DeletePromotion handles DELETE /promotions/:id
func (h *PromotionHandlers) DeletePromotion(c echo.Context) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.promoService.Delete(c.Request().Context(), id); err != nil {
		return sendServiceError(c, "Promoção", err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Promoção removida"})
}

// ListPromotions handles GET /promotions
func (h *PromotionHandlers) ListPromotions(c echo.Context) error {
	limit, offset := parsePagination(c)
	onlyActive := c.QueryParam("active") == "true"

	promos, err := h.promoService.List(c.Request().Context(), onlyActive, limit, offset)
	if err != nil {
		return sendServiceError(c, "Promoção", err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"promotions": promos,
		"limit":      limit,
		"offset":     offset,
	})
}

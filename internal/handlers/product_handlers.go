package handlers

import (
	"net/http"

	"petshop2/internal/common"
	"petshop2/internal/services"

	"github.com/labstack/echo/v4"
)

type ProductHandlers struct {
	productService services.ProductService
}

func NewProductHandlers(productService services.ProductService) *ProductHandlers {
	return &ProductHandlers{productService: productService}
}

// CreateProduct handles POST /products
func (h *ProductHandlers) CreateProduct(c echo.Context) error {
	var req services.CreateProductRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Formato de requisição inválido")
	}

	product, err := h.productService.Create(c.Request().Context(), &req)
	if err != nil {
		return sendServiceError(c, "Produto", err)
	}
	return c.JSON(http.StatusCreated, product)
}

// GetProductByID handles GET /products/:id
func (h *ProductHandlers) GetProductByID(c echo.Context) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	product, err := h.productService.GetByID(c.Request().Context(), id)
	if err != nil {
		return sendServiceError(c, "Produto", err)
	}
	return c.JSON(http.StatusOK, product)
}

// UpdateProduct handles PUT /products/:id
func (h *ProductHandlers) UpdateProduct(c echo.Context) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	var req services.UpdateProductRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Formato de requisição inválido")
	}
	req.ID = id

	product, err := h.productService.Update(c.Request().Context(), &req)
	if err != nil {
		return sendServiceError(c, "Produto", err)
	}
	return c.JSON(http.StatusOK, product)
}

// AdjustProductStock handles PATCH /products/:id/stock
func (h *ProductHandlers) AdjustProductStock(c echo.Context) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	var req struct {
		Delta int `json:"delta"`
	}
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Formato de requisição inválido")
	}
	if req.Delta == 0 {
		return common.SendValidationError(c, "delta", "delta não pode ser zero")
	}

	product, err := h.productService.AdjustStock(c.Request().Context(), id, req.Delta)
	if err != nil {
		return sendServiceError(c, "Produto", err)
	}
	return c.JSON(http.StatusOK, product)
}

// DeleteProduct handles DELETE /products/:id
func (h *ProductHandlers) DeleteProduct(c echo.Context) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.productService.Delete(c.Request().Context(), id); err != nil {
		return sendServiceError(c, "Produto", err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Produto removido"})
}

// ListProducts handles GET /products
func (h *ProductHandlers) ListProducts(c echo.Context) error {
	limit, offset := parsePagination(c)

	products, err := h.productService.List(c.Request().Context(), limit, offset)
	if err != nil {
		return sendServiceError(c, "Produto", err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"products": products,
		"limit":    limit,
		"offset":   offset,
	})
}

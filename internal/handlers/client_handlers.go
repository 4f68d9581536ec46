package handlers

import (
	"net/http"

	"petshop2/internal/common"
	"petshop2/internal/services"

	"github.com/labstack/echo/v4"
)

type ClientHandlers struct {
	clientService services.ClientService
}

func NewClientHandlers(clientService services.ClientService) *ClientHandlers {
	return &ClientHandlers{clientService: clientService}
}

// CreateClient handles POST /clients
func (h *ClientHandlers) CreateClient(c echo.Context) error {
	var req services.CreateClientRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Formato de requisição inválido")
	}

	client, err := h.clientService.Create(c.Request().Context(), &req)
	if err != nil {
		return sendServiceError(c, "Tutor", err)
	}
	return c.JSON(http.StatusCreated, client)
}

// GetClientByID handles GET /clients/:id
func (h *ClientHandlers) GetClientByID(c echo.Context) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	client, err := h.clientService.GetByID(c.Request().Context(), id)
	if err != nil {
		return sendServiceError(c, "Tutor", err)
	}
	return c.JSON(http.StatusOK, client)
}

// UpdateClient handles PUT /clients/:id
func (h *ClientHandlers) UpdateClient(c echo.Context) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	var req services.UpdateClientRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Formato de requisição inválido")
	}
	req.ID = id

	client, err := h.clientService.Update(c.Request().Context(), &req)
	if err != nil {
		return sendServiceError(c, "Tutor", err)
	}
	return c.JSON(http.StatusOK, client)
}

// DeleteClient handles DELETE /clients/:id
func (h *ClientHandlers) DeleteClient(c echo.Context) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.clientService.Delete(c.Request().Context(), id); err != nil {
		return sendServiceError(c, "Tutor", err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Tutor removido"})
}

// ListClients handles GET /clients
func (h *ClientHandlers) ListClients(c echo.Context) error {
	limit, offset := parsePagination(c)
	search := c.QueryParam("q")

	clients, err := h.clientService.List(c.Request().Context(), search, limit, offset)
	if err != nil {
		return sendServiceError(c, "Tutor", err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"clients": clients,
		"limit":   limit,
		"offset":  offset,
	})
}

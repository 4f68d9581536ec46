package handlers

import (
	"net/http"

	"petshop2/internal/common"
	"petshop2/internal/models"
	"petshop2/internal/services"

	"github.com/labstack/echo/v4"
)

type PetHandlers struct {
	petService services.PetService
}

func NewPetHandlers(petService services.PetService) *PetHandlers {
	return &PetHandlers{petService: petService}
}

// CreatePet handles POST /pets
func (h *PetHandlers) CreatePet(c echo.Context) error {
	var req services.CreatePetRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Formato de requisição inválido")
	}

	pet, err := h.petService.Create(c.Request().Context(), &req)
	if err != nil {
		return sendServiceError(c, "Pet", err)
	}
	return c.JSON(http.StatusCreated, pet)
}

// GetPetByID handles GET /pets/:id
func (h *PetHandlers) GetPetByID(c echo.Context) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	pet, err := h.petService.GetByID(c.Request().Context(), id)
	if err != nil {
		return sendServiceError(c, "Pet", err)
	}
	return c.JSON(http.StatusOK, pet)
}

// UpdatePet handles PUT /pets/:id
func (h *PetHandlers) UpdatePet(c echo.Context) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	var req services.UpdatePetRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Formato de requisição inválido")
	}
	req.ID = id

	pet, err := h.petService.Update(c.Request().Context(), &req)
	if err != nil {
		return sendServiceError(c, "Pet", err)
	}
	return c.JSON(http.StatusOK, pet)
}

// DeletePet handles DELETE /pets/:id
func (h *PetHandlers) DeletePet(c echo.Context) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.petService.Delete(c.Request().Context(), id); err != nil {
		return sendServiceError(c, "Pet", err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Pet removido"})
}

// ListPets handles GET /pets
func (h *PetHandlers) ListPets(c echo.Context) error {
	limit, offset := parsePagination(c)

	filter := &models.PetSearchFilter{
		Query:  c.QueryParam("q"),
		Limit:  limit,
		Offset: offset,
	}
	if clientIDStr := c.QueryParam("client_id"); clientIDStr != "" {
		clientID, err := common.ValidateUUID(clientIDStr, "client_id")
		if err != nil {
			return common.SendValidationError(c, "client_id", "UUID inválido")
		}
		filter.ClientID = &clientID
	}
	if species := c.QueryParam("species"); species != "" {
		filter.Species = &species
	}

	pets, err := h.petService.List(c.Request().Context(), filter)
	if err != nil {
		return sendServiceError(c, "Pet", err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"pets":   pets,
		"limit":  limit,
		"offset": offset,
	})
}

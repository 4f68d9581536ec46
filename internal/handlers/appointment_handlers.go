package handlers

import (
	"net/http"

	"petshop2/internal/common"
	"petshop2/internal/services"

	"github.com/labstack/echo/v4"
)

type AppointmentHandlers struct {
	apptService services.AppointmentService
}

func NewAppointmentHandlers(apptService services.AppointmentService) *AppointmentHandlers {
	return &AppointmentHandlers{apptService: apptService}
}

// CreateAppointment handles POST /appointments
func (h *AppointmentHandlers) CreateAppointment(c echo.Context) error {
	var req services.CreateAppointmentRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Formato de requisição inválido")
	}

	appt, err := h.apptService.Create(c.Request().Context(), &req)
	if err != nil {
		return sendServiceError(c, "Agendamento", err)
	}
	return c.JSON(http.StatusCreated, appt)
}

// GetAppointmentByID handles GET /appointments/:id
func (h *AppointmentHandlers) GetAppointmentByID(c echo.Context) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	appt, err := h.apptService.GetByID(c.Request().Context(), id)
	if err != nil {
		return sendServiceError(c, "Agendamento", err)
	}
	return c.JSON(http.StatusOK, appt)
}

// UpdateAppointment handles PUT /appointments/:id
func (h *AppointmentHandlers) UpdateAppointment(c echo.Context) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	var req services.UpdateAppointmentRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Formato de requisição inválido")
	}
	req.ID = id

	appt, err := h.apptService.Update(c.Request().Context(), &req)
	if err != nil {
		return sendServiceError(c, "Agendamento", err)
	}
	return c.JSON(http.StatusOK, appt)
}

// UpdateAppointmentStatus handles PATCH /appointments/:id/status
func (h *AppointmentHandlers) UpdateAppointmentStatus(c echo.Context) error {
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

	appt, err := h.apptService.UpdateStatus(c.Request().Context(), id, req.Status)
	if err != nil {
		return sendServiceError(c, "Agendamento", err)
	}
	return c.JSON(http.StatusOK, appt)
}

// DeleteAppointment handles DELETE /appointments/:id
func (h *AppointmentHandlers) DeleteAppointment(c echo.Context) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.apptService.Delete(c.Request().Context(), id); err != nil {
		return sendServiceError(c, "Agendamento", err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Agendamento removido"})
}

// ListAppointments handles GET /appointments
func (h *AppointmentHandlers) ListAppointments(c echo.Context) error {
	limit, offset := parsePagination(c)

	from, err := parseDateQuery(c, "from")
	if err != nil {
		return err
	}
	to, err := parseDateQuery(c, "to")
	if err != nil {
		return err
	}

	appts, err := h.apptService.List(c.Request().Context(), from, to, limit, offset)
	if err != nil {
		return sendServiceError(c, "Agendamento", err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"appointments": appts,
		"limit":        limit,
		"offset":       offset,
	})
}

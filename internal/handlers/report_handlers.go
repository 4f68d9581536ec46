package handlers

import (
	"net/http"
	"time"

	"petshop2/internal/services"

	"github.com/labstack/echo/v4"
)

type ReportHandlers struct {
	reportService services.ReportService
}

func NewReportHandlers(reportService services.ReportService) *ReportHandlers {
	return &ReportHandlers{reportService: reportService}
}

// Summary handles GET /reports/summary. Defaults to the current month when no
// window is given.
func (h *ReportHandlers) Summary(c echo.Context) error {
	from, err := parseDateQuery(c, "from")
	if err != nil {
		return err
	}
	to, err := parseDateQuery(c, "to")
	if err != nil {
		return err
	}

	now := time.Now()
	if from == nil {
		monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		from = &monthStart
	}
	if to == nil {
		monthEnd := from.AddDate(0, 1, 0)
		to = &monthEnd
	}

	summary, err := h.reportService.Summary(c.Request().Context(), *from, *to)
	if err != nil {
		return sendServiceError(c, "Relatório", err)
	}
	return c.JSON(http.StatusOK, summary)
}

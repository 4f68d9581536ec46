package models

import (
	"time"

	"github.com/google/uuid"
)

// ReportSummary holds the dashboard aggregates for one tenant over a period.
type ReportSummary struct {
	TenantID              uuid.UUID `json:"tenant_id"`
	From                  time.Time `json:"from"`
	To                    time.Time `json:"to"`
	SalesTotal            float64   `json:"sales_total"`
	Income                float64   `json:"income"`
	Expenses              float64   `json:"expenses"`
	Balance               float64   `json:"balance"`
	ScheduledAppointments int       `json:"scheduled_appointments"`
	DoneAppointments      int       `json:"done_appointments"`
	ActiveLodgings        int       `json:"active_lodgings"`
	GeneratedAt           time.Time `json:"generated_at"`
}

// ToCache flattens the summary into the generic map the report cache stores.
func (r *ReportSummary) ToCache() map[string]interface{} {
	return map[string]interface{}{
		"tenant_id":              r.TenantID.String(),
		"from":                   r.From.Format(time.RFC3339),
		"to":                     r.To.Format(time.RFC3339),
		"sales_total":            r.SalesTotal,
		"income":                 r.Income,
		"expenses":               r.Expenses,
		"balance":                r.Balance,
		"scheduled_appointments": float64(r.ScheduledAppointments),
		"done_appointments":      float64(r.DoneAppointments),
		"active_lodgings":        float64(r.ActiveLodgings),
		"generated_at":           r.GeneratedAt.Format(time.RFC3339),
	}
}

// ReportSummaryFromCache rebuilds a summary from a cached map. Returns nil if
// required fields are missing or malformed, which callers treat as a miss.
func ReportSummaryFromCache(m map[string]interface{}) *ReportSummary {
	tenantStr, ok := m["tenant_id"].(string)
	if !ok {
		return nil
	}
	tenantID, err := uuid.Parse(tenantStr)
	if err != nil {
		return nil
	}
	from, ok := cacheTime(m, "from")
	if !ok {
		return nil
	}
	to, ok := cacheTime(m, "to")
	if !ok {
		return nil
	}
	generatedAt, _ := cacheTime(m, "generated_at")

	return &ReportSummary{
		TenantID:              tenantID,
		From:                  from,
		To:                    to,
		SalesTotal:            cacheFloat(m, "sales_total"),
		Income:                cacheFloat(m, "income"),
		Expenses:              cacheFloat(m, "expenses"),
		Balance:               cacheFloat(m, "balance"),
		ScheduledAppointments: int(cacheFloat(m, "scheduled_appointments")),
		DoneAppointments:      int(cacheFloat(m, "done_appointments")),
		ActiveLodgings:        int(cacheFloat(m, "active_lodgings")),
		GeneratedAt:           generatedAt,
	}
}

func cacheTime(m map[string]interface{}, key string) (time.Time, bool) {
	s, ok := m[key].(string)
	if !ok {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func cacheFloat(m map[string]interface{}, key string) float64 {
	f, _ := m[key].(float64)
	return f
}

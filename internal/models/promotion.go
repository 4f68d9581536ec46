package models

import (
	"time"

	"github.com/google/uuid"
)

type Promotion struct {
	ID              uuid.UUID `json:"id" db:"id"`
	TenantID        uuid.UUID `json:"tenant_id" db:"tenant_id"`
	Title           string    `json:"title" db:"title"`
	DiscountPercent float64   `json:"discount_percent" db:"discount_percent"`
	StartsAt        time.Time `json:"starts_at" db:"starts_at"`
	EndsAt          time.Time `json:"ends_at" db:"ends_at"`
	Active          bool      `json:"active" db:"active"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time `json:"updated_at" db:"updated_at"`
}

func (p *Promotion) TenantOwner() (uuid.UUID, bool) {
	return p.TenantID, p.TenantID != uuid.Nil
}

// Current reports whether the promotion is active and inside its validity
// window at t.
func (p *Promotion) Current(t time.Time) bool {
	return p.Active && !t.Before(p.StartsAt) && t.Before(p.EndsAt)
}

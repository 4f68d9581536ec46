package models

import (
	"time"

	"github.com/google/uuid"
)

// Tenant statuses. Only active tenants may serve requests.
const (
	TenantStatusActive    = "active"
	TenantStatusInactive  = "inactive"
	TenantStatusSuspended = "suspended"
)

// Plan tiers.
const (
	PlanBasic   = "basic"
	PlanPro     = "pro"
	PlanPremium = "premium"
)

type Tenant struct {
	ID         uuid.UUID `json:"id" db:"id"`
	Name       string    `json:"name" db:"name"`
	Subdomain  string    `json:"subdomain" db:"subdomain"`
	Status     string    `json:"status" db:"status"`
	Plan       string    `json:"plan" db:"plan"`
	LogoKey    *string   `json:"logo_key,omitempty" db:"logo_key"`
	ThemeColor *string   `json:"theme_color,omitempty" db:"theme_color"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" db:"updated_at"`
}

// Active reports whether the tenant may serve requests.
func (t *Tenant) Active() bool {
	return t.Status == TenantStatusActive
}

// TenantConfig is the tenant-editable settings subset exposed on
// /tenants/config.
type TenantConfig struct {
	Name       string  `json:"name"`
	ThemeColor *string `json:"theme_color,omitempty"`
	LogoURL    *string `json:"logo_url,omitempty"`
}

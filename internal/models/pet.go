package models

import (
	"time"

	"github.com/google/uuid"
)

type Pet struct {
	ID        uuid.UUID  `json:"id" db:"id"`
	TenantID  uuid.UUID  `json:"tenant_id" db:"tenant_id"`
	ClientID  uuid.UUID  `json:"client_id" db:"client_id"`
	Name      string     `json:"name" db:"name"`
	Species   string     `json:"species" db:"species"`
	Breed     *string    `json:"breed" db:"breed"`
	BirthDate *time.Time `json:"birth_date" db:"birth_date"`
	WeightKg  *float64   `json:"weight_kg" db:"weight_kg"`
	Notes     *string    `json:"notes" db:"notes"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt time.Time  `json:"updated_at" db:"updated_at"`
}

func (p *Pet) TenantOwner() (uuid.UUID, bool) {
	return p.TenantID, p.TenantID != uuid.Nil
}

// PetSearchFilter holds search and filter criteria for pet listings
type PetSearchFilter struct {
	Query    string     `json:"query,omitempty"`
	ClientID *uuid.UUID `json:"client_id,omitempty"`
	Species  *string    `json:"species,omitempty"`
	Limit    int        `json:"limit,omitempty"`
	Offset   int        `json:"offset,omitempty"`
}

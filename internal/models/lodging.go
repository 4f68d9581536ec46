package models

import (
	"time"

	"github.com/google/uuid"
)

// Lodging (hotelzinho) statuses.
const (
	LodgingReserved  = "reservado"
	LodgingCheckedIn = "hospedado"
	LodgingDone      = "finalizado"
	LodgingCancelled = "cancelado"
)

// Lodging is a hotel booking for a pet.
type Lodging struct {
	ID        uuid.UUID `json:"id" db:"id"`
	TenantID  uuid.UUID `json:"tenant_id" db:"tenant_id"`
	PetID     uuid.UUID `json:"pet_id" db:"pet_id"`
	CheckIn   time.Time `json:"check_in" db:"check_in"`
	CheckOut  time.Time `json:"check_out" db:"check_out"`
	DailyRate float64   `json:"daily_rate" db:"daily_rate"`
	Status    string    `json:"status" db:"status"`
	Notes     *string   `json:"notes" db:"notes"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

func (l *Lodging) TenantOwner() (uuid.UUID, bool) {
	return l.TenantID, l.TenantID != uuid.Nil
}

// ValidLodgingStatus reports whether s is a known lodging status.
func ValidLodgingStatus(s string) bool {
	switch s {
	case LodgingReserved, LodgingCheckedIn, LodgingDone, LodgingCancelled:
		return true
	}
	return false
}

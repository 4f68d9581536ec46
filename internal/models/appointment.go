package models

import (
	"time"

	"github.com/google/uuid"
)

// Appointment statuses.
const (
	AppointmentScheduled = "agendado"
	AppointmentDone      = "concluido"
	AppointmentCancelled = "cancelado"
)

type Appointment struct {
	ID          uuid.UUID `json:"id" db:"id"`
	TenantID    uuid.UUID `json:"tenant_id" db:"tenant_id"`
	PetID       uuid.UUID `json:"pet_id" db:"pet_id"`
	ServiceName string    `json:"service_name" db:"service_name"`
	ScheduledAt time.Time `json:"scheduled_at" db:"scheduled_at"`
	Status      string    `json:"status" db:"status"`
	Price       float64   `json:"price" db:"price"`
	Notes       *string   `json:"notes" db:"notes"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

func (a *Appointment) TenantOwner() (uuid.UUID, bool) {
	return a.TenantID, a.TenantID != uuid.Nil
}

// ValidAppointmentStatus reports whether s is a known appointment status.
func ValidAppointmentStatus(s string) bool {
	return s == AppointmentScheduled || s == AppointmentDone || s == AppointmentCancelled
}

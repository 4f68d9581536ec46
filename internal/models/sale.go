package models

import (
	"time"

	"github.com/google/uuid"
)

// Payment methods accepted at the counter.
const (
	PaymentCash   = "dinheiro"
	PaymentCard   = "cartao"
	PaymentPix    = "pix"
	PaymentCredit = "crediario"
)

type Sale struct {
	ID            uuid.UUID  `json:"id" db:"id"`
	TenantID      uuid.UUID  `json:"tenant_id" db:"tenant_id"`
	ClientID      *uuid.UUID `json:"client_id" db:"client_id"`
	Total         float64    `json:"total" db:"total"`
	PaymentMethod string     `json:"payment_method" db:"payment_method"`
	SoldAt        time.Time  `json:"sold_at" db:"sold_at"`
	CreatedAt     time.Time  `json:"created_at" db:"created_at"`
}

func (s *Sale) TenantOwner() (uuid.UUID, bool) {
	return s.TenantID, s.TenantID != uuid.Nil
}

// ValidPaymentMethod reports whether m is an accepted payment method.
func ValidPaymentMethod(m string) bool {
	switch m {
	case PaymentCash, PaymentCard, PaymentPix, PaymentCredit:
		return true
	}
	return false
}

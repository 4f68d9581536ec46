package models

import (
	"time"

	"github.com/google/uuid"
)

// Financial entry types and statuses.
const (
	EntryIncome  = "receita"
	EntryExpense = "despesa"

	EntryPending = "pendente"
	EntryPaid    = "pago"
	EntryOverdue = "vencido"
)

type FinancialEntry struct {
	ID          uuid.UUID  `json:"id" db:"id"`
	TenantID    uuid.UUID  `json:"tenant_id" db:"tenant_id"`
	Description string     `json:"description" db:"description"`
	Amount      float64    `json:"amount" db:"amount"`
	Type        string     `json:"type" db:"type"`
	Status      string     `json:"status" db:"status"`
	DueDate     *time.Time `json:"due_date" db:"due_date"`
	PaidAt      *time.Time `json:"paid_at" db:"paid_at"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" db:"updated_at"`
}

func (f *FinancialEntry) TenantOwner() (uuid.UUID, bool) {
	return f.TenantID, f.TenantID != uuid.Nil
}

// ValidEntryType reports whether t is receita or despesa.
func ValidEntryType(t string) bool {
	return t == EntryIncome || t == EntryExpense
}

// ValidEntryStatus reports whether s is a known financial entry status.
func ValidEntryStatus(s string) bool {
	return s == EntryPending || s == EntryPaid || s == EntryOverdue
}

package models

import (
	"time"

	"github.com/google/uuid"
)

// Client is a pet tutor (the shop's human customer).
type Client struct {
	ID        uuid.UUID `json:"id" db:"id"`
	TenantID  uuid.UUID `json:"tenant_id" db:"tenant_id"`
	Name      string    `json:"name" db:"name"`
	Email     *string   `json:"email" db:"email"`
	Phone     *string   `json:"phone" db:"phone"`
	Address   *string   `json:"address" db:"address"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

func (c *Client) TenantOwner() (uuid.UUID, bool) {
	return c.TenantID, c.TenantID != uuid.Nil
}

package entity

import (
	"github.com/google/uuid"
)

type Client struct {
	Base
	TenantID uuid.UUID `db:"tenant_id"`
	Name     string    `db:"name"`
	Phone    string    `db:"phone"`
	Email    *string   `db:"email"`
}

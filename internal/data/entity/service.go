package entity

import (
	"github.com/google/uuid"
)

type Service struct {
	Base
	TenantID        uuid.UUID `db:"tenant_id"`
	Name            string    `db:"name"`
	DurationMinutes int       `db:"duration_minutes"`
	Price           float64   `db:"price"`
	IsActive        bool      `db:"is_active"`
}

package entity

import (
	"time"

	"github.com/google/uuid"
)

// BusinessHours holds one weekday's opening window for a tenant.
// OpenTime and CloseTime are wall-clock "HH:MM" strings in the tenant's
// timezone. A disabled row means the business is closed that day.
type BusinessHours struct {
	BaseSimple
	TenantID  uuid.UUID    `db:"tenant_id"`
	Weekday   time.Weekday `db:"weekday"`
	Enabled   bool         `db:"enabled"`
	OpenTime  string       `db:"open_time"`
	CloseTime string       `db:"close_time"`
}

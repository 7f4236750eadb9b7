package entity

import (
	"time"

	"github.com/google/uuid"
)

const (
	RoleOwner = "owner"
	RoleStaff = "staff"
)

// StaffSession maps an opaque session token to a tenant, a staff member
// and a role. Issuing sessions (login) is outside this service; the
// middleware only resolves them.
type StaffSession struct {
	BaseSimple
	Token     string    `db:"token"`
	TenantID  uuid.UUID `db:"tenant_id"`
	StaffID   uuid.UUID `db:"staff_id"`
	Role      string    `db:"role"`
	ExpiresAt time.Time `db:"expires_at"`
}

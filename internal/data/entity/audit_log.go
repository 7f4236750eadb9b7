package entity

import (
	"github.com/google/uuid"
)

type AuditLog struct {
	BaseSimple
	TenantID   uuid.UUID  `db:"tenant_id"`
	ActorID    *uuid.UUID `db:"actor_id"`
	Action     string     `db:"action"`
	EntityType string     `db:"entity_type"`
	EntityID   uuid.UUID  `db:"entity_id"`
	Details    []byte     `db:"details"`
}

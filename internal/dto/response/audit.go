package response

import (
	"encoding/json"
	"time"

	"salon-booking/internal/data/entity"
)

type AuditLogResponse struct {
	ID         string          `json:"id"`
	ActorID    *string         `json:"actor_id,omitempty"`
	Action     string          `json:"action"`
	EntityType string          `json:"entity_type"`
	EntityID   string          `json:"entity_id"`
	Details    json.RawMessage `json:"details"`
	CreatedAt  time.Time       `json:"created_at"`
}

func AuditLogToResponse(log *entity.AuditLog) AuditLogResponse {
	var actorID *string
	if log.ActorID != nil {
		id := log.ActorID.String()
		actorID = &id
	}

	return AuditLogResponse{
		ID:         log.ID.String(),
		ActorID:    actorID,
		Action:     log.Action,
		EntityType: log.EntityType,
		EntityID:   log.EntityID.String(),
		Details:    json.RawMessage(log.Details),
		CreatedAt:  log.CreatedAt,
	}
}

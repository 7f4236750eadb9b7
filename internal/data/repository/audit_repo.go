package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"salon-booking/internal/data/entity"
	"salon-booking/pkg/database"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AuditRepository records who did what to which entity. Callers treat it
// as fire-and-forget: a failed audit write must never fail the scheduling
// operation that triggered it.
type AuditRepository interface {
	Record(ctx context.Context, tenantID uuid.UUID, actorID *uuid.UUID, action, entityType string, entityID uuid.UUID, details map[string]any) error
	ListRecent(ctx context.Context, tenantID uuid.UUID, limit int) ([]*entity.AuditLog, error)
}

type auditRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewAuditRepository(db database.PgxIface, log *zap.Logger) AuditRepository {
	return &auditRepository{
		db:  db,
		log: log.With(zap.String("repository", "audit")),
	}
}

func (r *auditRepository) Record(ctx context.Context, tenantID uuid.UUID, actorID *uuid.UUID, action, entityType string, entityID uuid.UUID, details map[string]any) error {
	raw, err := json.Marshal(details)
	if err != nil {
		return fmt.Errorf("marshal audit details: %w", err)
	}

	query := `
		INSERT INTO audit_logs (id, tenant_id, actor_id, action, entity_type, entity_id, details, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err = r.db.Exec(ctx, query,
		uuid.New(),
		tenantID,
		actorID,
		action,
		entityType,
		entityID,
		raw,
		time.Now(),
	)
	if err != nil {
		r.log.Error("Failed to record audit entry",
			zap.Error(err),
			zap.String("action", action),
			zap.String("entity_id", entityID.String()),
		)
		return fmt.Errorf("record audit entry: %w", err)
	}

	return nil
}

func (r *auditRepository) ListRecent(ctx context.Context, tenantID uuid.UUID, limit int) ([]*entity.AuditLog, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	query := `
		SELECT id, tenant_id, actor_id, action, entity_type, entity_id, details, created_at
		FROM audit_logs
		WHERE tenant_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	rows, err := r.db.Query(ctx, query, tenantID, limit)
	if err != nil {
		r.log.Error("Failed to list audit entries", zap.Error(err))
		return nil, fmt.Errorf("list audit entries: %w", err)
	}
	defer rows.Close()

	var entries []*entity.AuditLog
	for rows.Next() {
		var e entity.AuditLog
		err := rows.Scan(&e.ID, &e.TenantID, &e.ActorID, &e.Action, &e.EntityType, &e.EntityID, &e.Details, &e.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan audit row: %w", err)
		}
		entries = append(entries, &e)
	}

	return entries, rows.Err()
}

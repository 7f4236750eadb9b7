package repository

import (
	"context"
	"errors"
	"fmt"

	"salon-booking/internal/data/entity"
	"salon-booking/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// SessionRepository resolves staff session tokens to a tenant and role.
// Session issuance (login) is an external collaborator.
type SessionRepository interface {
	FindValidSession(ctx context.Context, token string) (*entity.StaffSession, error)
}

type sessionRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewSessionRepository(db database.PgxIface, log *zap.Logger) SessionRepository {
	return &sessionRepository{
		db:  db,
		log: log.With(zap.String("repository", "session")),
	}
}

func (r *sessionRepository) FindValidSession(ctx context.Context, token string) (*entity.StaffSession, error) {
	query := `
		SELECT id, token, tenant_id, staff_id, role, expires_at, created_at
		FROM staff_sessions
		WHERE token = $1 AND expires_at > NOW()
	`

	var session entity.StaffSession
	err := r.db.QueryRow(ctx, query, token).Scan(
		&session.ID,
		&session.Token,
		&session.TenantID,
		&session.StaffID,
		&session.Role,
		&session.ExpiresAt,
		&session.CreatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find session", zap.Error(err))
		return nil, fmt.Errorf("find valid session: %w", err)
	}

	return &session, nil
}

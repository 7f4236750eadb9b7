package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"salon-booking/internal/data/entity"
	"salon-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type BusinessHoursRepository interface {
	FindByTenantAndWeekday(ctx context.Context, tenantID uuid.UUID, weekday time.Weekday) (*entity.BusinessHours, error)
	FindByTenant(ctx context.Context, tenantID uuid.UUID) ([]*entity.BusinessHours, error)
}

type businessHoursRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewBusinessHoursRepository(db database.PgxIface, log *zap.Logger) BusinessHoursRepository {
	return &businessHoursRepository{
		db:  db,
		log: log.With(zap.String("repository", "business_hours")),
	}
}

func (r *businessHoursRepository) FindByTenantAndWeekday(ctx context.Context, tenantID uuid.UUID, weekday time.Weekday) (*entity.BusinessHours, error) {
	query := `
		SELECT id, tenant_id, weekday, enabled, open_time, close_time, created_at
		FROM business_hours
		WHERE tenant_id = $1 AND weekday = $2
	`

	var hours entity.BusinessHours
	err := r.db.QueryRow(ctx, query, tenantID, int(weekday)).Scan(
		&hours.ID,
		&hours.TenantID,
		&hours.Weekday,
		&hours.Enabled,
		&hours.OpenTime,
		&hours.CloseTime,
		&hours.CreatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		// Missing row means closed that day, not a failure.
		return nil, ErrNotFound
	}
	if err != nil {
		r.log.Error("Failed to find business hours",
			zap.Error(err),
			zap.String("tenant_id", tenantID.String()),
			zap.Int("weekday", int(weekday)),
		)
		return nil, fmt.Errorf("find business hours for weekday %d: %w", int(weekday), err)
	}

	return &hours, nil
}

func (r *businessHoursRepository) FindByTenant(ctx context.Context, tenantID uuid.UUID) ([]*entity.BusinessHours, error) {
	query := `
		SELECT id, tenant_id, weekday, enabled, open_time, close_time, created_at
		FROM business_hours
		WHERE tenant_id = $1
		ORDER BY weekday
	`

	rows, err := r.db.Query(ctx, query, tenantID)
	if err != nil {
		r.log.Error("Failed to find business hours by tenant",
			zap.Error(err),
			zap.String("tenant_id", tenantID.String()),
		)
		return nil, fmt.Errorf("find business hours by tenant %s: %w", tenantID.String(), err)
	}
	defer rows.Close()

	var all []*entity.BusinessHours
	for rows.Next() {
		var hours entity.BusinessHours
		err := rows.Scan(
			&hours.ID,
			&hours.TenantID,
			&hours.Weekday,
			&hours.Enabled,
			&hours.OpenTime,
			&hours.CloseTime,
			&hours.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan business hours row: %w", err)
		}
		all = append(all, &hours)
	}

	return all, rows.Err()
}

package repository

import (
	"context"
	"errors"
	"fmt"

	"salon-booking/internal/data/entity"
	"salon-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// ServiceRepository is the read-only view of the tenant's service
// catalog. Catalog management lives elsewhere; the scheduling core only
// consumes durations and prices.
type ServiceRepository interface {
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*entity.Service, error)
	FindActiveByTenant(ctx context.Context, tenantID uuid.UUID) ([]*entity.Service, error)
}

type serviceRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewServiceRepository(db database.PgxIface, log *zap.Logger) ServiceRepository {
	return &serviceRepository{
		db:  db,
		log: log.With(zap.String("repository", "service")),
	}
}

const serviceColumns = `id, tenant_id, name, duration_minutes, price, is_active, created_at, updated_at`

func scanService(row pgx.Row) (*entity.Service, error) {
	var svc entity.Service
	err := row.Scan(
		&svc.ID,
		&svc.TenantID,
		&svc.Name,
		&svc.DurationMinutes,
		&svc.Price,
		&svc.IsActive,
		&svc.CreatedAt,
		&svc.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &svc, nil
}

func (r *serviceRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*entity.Service, error) {
	query := `SELECT ` + serviceColumns + ` FROM services WHERE id = $1 AND tenant_id = $2`

	svc, err := scanService(r.db.QueryRow(ctx, query, id, tenantID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		r.log.Error("Failed to find service by ID",
			zap.Error(err),
			zap.String("service_id", id.String()),
		)
		return nil, fmt.Errorf("find service by ID %s: %w", id.String(), err)
	}

	return svc, nil
}

func (r *serviceRepository) FindActiveByTenant(ctx context.Context, tenantID uuid.UUID) ([]*entity.Service, error) {
	query := `SELECT ` + serviceColumns + ` FROM services WHERE tenant_id = $1 AND is_active ORDER BY name`

	rows, err := r.db.Query(ctx, query, tenantID)
	if err != nil {
		r.log.Error("Failed to find active services",
			zap.Error(err),
			zap.String("tenant_id", tenantID.String()),
		)
		return nil, fmt.Errorf("find active services: %w", err)
	}
	defer rows.Close()

	var services []*entity.Service
	for rows.Next() {
		svc, err := scanService(rows)
		if err != nil {
			return nil, fmt.Errorf("scan service row: %w", err)
		}
		services = append(services, svc)
	}

	return services, rows.Err()
}

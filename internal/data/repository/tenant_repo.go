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

type TenantRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Tenant, error)
	FindBySlug(ctx context.Context, slug string) (*entity.Tenant, error)
}

type tenantRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewTenantRepository(db database.PgxIface, log *zap.Logger) TenantRepository {
	return &tenantRepository{
		db:  db,
		log: log.With(zap.String("repository", "tenant")),
	}
}

const tenantColumns = `id, name, slug, timezone, logo_url, primary_color, created_at, updated_at`

func scanTenant(row pgx.Row) (*entity.Tenant, error) {
	var t entity.Tenant
	err := row.Scan(
		&t.ID,
		&t.Name,
		&t.Slug,
		&t.Timezone,
		&t.LogoURL,
		&t.PrimaryColor,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *tenantRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Tenant, error) {
	query := `SELECT ` + tenantColumns + ` FROM tenants WHERE id = $1`

	tenant, err := scanTenant(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		r.log.Error("Failed to find tenant by ID",
			zap.Error(err),
			zap.String("tenant_id", id.String()),
		)
		return nil, fmt.Errorf("find tenant by ID %s: %w", id.String(), err)
	}

	return tenant, nil
}

func (r *tenantRepository) FindBySlug(ctx context.Context, slug string) (*entity.Tenant, error) {
	query := `SELECT ` + tenantColumns + ` FROM tenants WHERE slug = $1`

	tenant, err := scanTenant(r.db.QueryRow(ctx, query, slug))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		r.log.Error("Failed to find tenant by slug",
			zap.Error(err),
			zap.String("slug", slug),
		)
		return nil, fmt.Errorf("find tenant by slug %s: %w", slug, err)
	}

	return tenant, nil
}

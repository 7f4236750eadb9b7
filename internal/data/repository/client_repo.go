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

type ClientRepository interface {
	Create(ctx context.Context, client *entity.Client) error
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*entity.Client, error)
	// FindByPhone matches the public booking flow's client by phone
	// number within the tenant. ErrNotFound means a new client record
	// should be created.
	FindByPhone(ctx context.Context, tenantID uuid.UUID, phone string) (*entity.Client, error)
}

type clientRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewClientRepository(db database.PgxIface, log *zap.Logger) ClientRepository {
	return &clientRepository{
		db:  db,
		log: log.With(zap.String("repository", "client")),
	}
}

const clientColumns = `id, tenant_id, name, phone, email, created_at, updated_at`

func scanClient(row pgx.Row) (*entity.Client, error) {
	var c entity.Client
	err := row.Scan(
		&c.ID,
		&c.TenantID,
		&c.Name,
		&c.Phone,
		&c.Email,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *clientRepository) Create(ctx context.Context, client *entity.Client) error {
	query := `
		INSERT INTO clients (id, tenant_id, name, phone, email, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.Exec(ctx, query,
		client.ID,
		client.TenantID,
		client.Name,
		client.Phone,
		client.Email,
		client.CreatedAt,
		client.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create client",
			zap.Error(err),
			zap.String("tenant_id", client.TenantID.String()),
		)
		return fmt.Errorf("create client: %w", err)
	}

	return nil
}

func (r *clientRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*entity.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE id = $1 AND tenant_id = $2`

	client, err := scanClient(r.db.QueryRow(ctx, query, id, tenantID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		r.log.Error("Failed to find client by ID",
			zap.Error(err),
			zap.String("client_id", id.String()),
		)
		return nil, fmt.Errorf("find client by ID %s: %w", id.String(), err)
	}

	return client, nil
}

func (r *clientRepository) FindByPhone(ctx context.Context, tenantID uuid.UUID, phone string) (*entity.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE tenant_id = $1 AND phone = $2`

	client, err := scanClient(r.db.QueryRow(ctx, query, tenantID, phone))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		r.log.Error("Failed to find client by phone",
			zap.Error(err),
			zap.String("tenant_id", tenantID.String()),
		)
		return nil, fmt.Errorf("find client by phone: %w", err)
	}

	return client, nil
}

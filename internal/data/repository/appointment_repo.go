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
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

type AppointmentRepository interface {
	// CreateWithServices is the authoritative booking write: the
	// appointment insert and all service snapshot rows commit in one
	// transaction. The exclusion constraint on (tenant_id, time range)
	// re-checks overlap at commit time; a violation maps to ErrSlotTaken.
	CreateWithServices(ctx context.Context, appt *entity.Appointment, services []*entity.AppointmentService) error

	// ReplaceServices atomically rewrites the appointment row and its
	// full service set: either all old rows are removed and all new ones
	// inserted, or nothing changes.
	ReplaceServices(ctx context.Context, appt *entity.Appointment, services []*entity.AppointmentService) error

	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*entity.Appointment, error)
	FindByToken(ctx context.Context, token string) (*entity.Appointment, error)
	FindByTenantAndRange(ctx context.Context, tenantID uuid.UUID, from, to time.Time, limit, offset int) ([]*entity.Appointment, error)
	CountByTenantAndRange(ctx context.Context, tenantID uuid.UUID, from, to time.Time) (int64, error)
	FindServices(ctx context.Context, appointmentID uuid.UUID) ([]*entity.AppointmentService, error)

	// FindBookedSlots projects occupied intervals for a tenant within
	// [from, to). Cancelled and no-show appointments are excluded.
	FindBookedSlots(ctx context.Context, tenantID uuid.UUID, from, to time.Time) ([]entity.BookedSlot, error)

	UpdateStatus(ctx context.Context, tenantID, id uuid.UUID, status entity.AppointmentStatus, confirmedAt *time.Time) error
	Delete(ctx context.Context, tenantID, id uuid.UUID) error

	// Reminder watcher queries, cross-tenant.
	FindStartingBetween(ctx context.Context, from, to time.Time) ([]*entity.Appointment, error)
	MarkReminderSent(ctx context.Context, id uuid.UUID, at time.Time) error
}

type appointmentRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewAppointmentRepository(db database.PgxIface, log *zap.Logger) AppointmentRepository {
	return &appointmentRepository{
		db:  db,
		log: log.With(zap.String("repository", "appointment")),
	}
}

const appointmentColumns = `
	id, reference, tenant_id, client_id, specialist_id, cabin_id,
	start_time, end_time, status, total_price,
	confirmation_token, confirmed_at, reminder_sent_at, notes,
	created_at, updated_at
`

func scanAppointment(row pgx.Row) (*entity.Appointment, error) {
	var appt entity.Appointment
	err := row.Scan(
		&appt.ID,
		&appt.Reference,
		&appt.TenantID,
		&appt.ClientID,
		&appt.SpecialistID,
		&appt.CabinID,
		&appt.StartTime,
		&appt.EndTime,
		&appt.Status,
		&appt.TotalPrice,
		&appt.ConfirmationToken,
		&appt.ConfirmedAt,
		&appt.ReminderSentAt,
		&appt.Notes,
		&appt.CreatedAt,
		&appt.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &appt, nil
}

// isOverlapViolation reports whether err is the Postgres exclusion
// constraint violation (SQLSTATE 23P01) raised when the new time range
// intersects an existing occupied appointment.
func isOverlapViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23P01"
}

func (r *appointmentRepository) CreateWithServices(ctx context.Context, appt *entity.Appointment, services []*entity.AppointmentService) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin booking tx: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	_, err = tx.Exec(ctx, `
		INSERT INTO appointments
			(id, reference, tenant_id, client_id, specialist_id, cabin_id,
			 start_time, end_time, status, total_price,
			 confirmation_token, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`,
		appt.ID,
		appt.Reference,
		appt.TenantID,
		appt.ClientID,
		appt.SpecialistID,
		appt.CabinID,
		appt.StartTime,
		appt.EndTime,
		appt.Status,
		appt.TotalPrice,
		appt.ConfirmationToken,
		appt.Notes,
		appt.CreatedAt,
		appt.UpdatedAt,
	)
	if err != nil {
		if isOverlapViolation(err) {
			return ErrSlotTaken
		}
		r.log.Error("Failed to insert appointment",
			zap.Error(err),
			zap.String("reference", appt.Reference),
			zap.String("tenant_id", appt.TenantID.String()),
		)
		return fmt.Errorf("insert appointment %s: %w", appt.Reference, err)
	}

	for _, svc := range services {
		_, err = tx.Exec(ctx, `
			INSERT INTO appointment_services (id, appointment_id, service_id, price_at_time, created_at)
			VALUES ($1, $2, $3, $4, $5)
		`, svc.ID, svc.AppointmentID, svc.ServiceID, svc.PriceAtTime, svc.CreatedAt)
		if err != nil {
			r.log.Error("Failed to insert appointment service",
				zap.Error(err),
				zap.String("appointment_id", appt.ID.String()),
				zap.String("service_id", svc.ServiceID.String()),
			)
			return fmt.Errorf("insert appointment service: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		if isOverlapViolation(err) {
			return ErrSlotTaken
		}
		return fmt.Errorf("commit booking tx: %w", err)
	}

	return nil
}

func (r *appointmentRepository) ReplaceServices(ctx context.Context, appt *entity.Appointment, services []*entity.AppointmentService) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin replace tx: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	// Updating start/end re-fires the exclusion constraint, so moving an
	// appointment onto an occupied interval fails here too.
	result, err := tx.Exec(ctx, `
		UPDATE appointments
		SET client_id = $3, specialist_id = $4, cabin_id = $5,
		    start_time = $6, end_time = $7, total_price = $8,
		    notes = $9, updated_at = $10
		WHERE id = $1 AND tenant_id = $2
	`,
		appt.ID,
		appt.TenantID,
		appt.ClientID,
		appt.SpecialistID,
		appt.CabinID,
		appt.StartTime,
		appt.EndTime,
		appt.TotalPrice,
		appt.Notes,
		appt.UpdatedAt,
	)
	if err != nil {
		if isOverlapViolation(err) {
			return ErrSlotTaken
		}
		r.log.Error("Failed to update appointment",
			zap.Error(err),
			zap.String("appointment_id", appt.ID.String()),
		)
		return fmt.Errorf("update appointment %s: %w", appt.ID.String(), err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}

	if _, err := tx.Exec(ctx, `DELETE FROM appointment_services WHERE appointment_id = $1`, appt.ID); err != nil {
		return fmt.Errorf("clear appointment services %s: %w", appt.ID.String(), err)
	}

	for _, svc := range services {
		_, err = tx.Exec(ctx, `
			INSERT INTO appointment_services (id, appointment_id, service_id, price_at_time, created_at)
			VALUES ($1, $2, $3, $4, $5)
		`, svc.ID, svc.AppointmentID, svc.ServiceID, svc.PriceAtTime, svc.CreatedAt)
		if err != nil {
			return fmt.Errorf("insert appointment service: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		if isOverlapViolation(err) {
			return ErrSlotTaken
		}
		return fmt.Errorf("commit replace tx: %w", err)
	}

	return nil
}

func (r *appointmentRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*entity.Appointment, error) {
	query := `SELECT ` + appointmentColumns + ` FROM appointments WHERE id = $1 AND tenant_id = $2`

	appt, err := scanAppointment(r.db.QueryRow(ctx, query, id, tenantID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		r.log.Error("Failed to find appointment by ID",
			zap.Error(err),
			zap.String("appointment_id", id.String()),
		)
		return nil, fmt.Errorf("find appointment by ID %s: %w", id.String(), err)
	}

	return appt, nil
}

func (r *appointmentRepository) FindByToken(ctx context.Context, token string) (*entity.Appointment, error) {
	query := `SELECT ` + appointmentColumns + ` FROM appointments WHERE confirmation_token = $1`

	appt, err := scanAppointment(r.db.QueryRow(ctx, query, token))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		// Token value stays out of the log; it is a secret.
		r.log.Error("Failed to find appointment by token", zap.Error(err))
		return nil, fmt.Errorf("find appointment by token: %w", err)
	}

	return appt, nil
}

func (r *appointmentRepository) FindByTenantAndRange(ctx context.Context, tenantID uuid.UUID, from, to time.Time, limit, offset int) ([]*entity.Appointment, error) {
	query := `
		SELECT ` + appointmentColumns + `
		FROM appointments
		WHERE tenant_id = $1 AND start_time >= $2 AND start_time < $3
		ORDER BY start_time
		LIMIT $4 OFFSET $5
	`

	rows, err := r.db.Query(ctx, query, tenantID, from, to, limit, offset)
	if err != nil {
		r.log.Error("Failed to find appointments by range",
			zap.Error(err),
			zap.String("tenant_id", tenantID.String()),
		)
		return nil, fmt.Errorf("find appointments by range: %w", err)
	}
	defer rows.Close()

	var appts []*entity.Appointment
	for rows.Next() {
		appt, err := scanAppointment(rows)
		if err != nil {
			r.log.Error("Failed to scan appointment row", zap.Error(err))
			return nil, fmt.Errorf("scan appointment row: %w", err)
		}
		appts = append(appts, appt)
	}

	return appts, rows.Err()
}

func (r *appointmentRepository) CountByTenantAndRange(ctx context.Context, tenantID uuid.UUID, from, to time.Time) (int64, error) {
	query := `SELECT COUNT(*) FROM appointments WHERE tenant_id = $1 AND start_time >= $2 AND start_time < $3`

	var count int64
	err := r.db.QueryRow(ctx, query, tenantID, from, to).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count appointments",
			zap.Error(err),
			zap.String("tenant_id", tenantID.String()),
		)
		return 0, fmt.Errorf("count appointments: %w", err)
	}

	return count, nil
}

func (r *appointmentRepository) FindServices(ctx context.Context, appointmentID uuid.UUID) ([]*entity.AppointmentService, error) {
	query := `
		SELECT id, appointment_id, service_id, price_at_time, created_at
		FROM appointment_services
		WHERE appointment_id = $1
		ORDER BY created_at
	`

	rows, err := r.db.Query(ctx, query, appointmentID)
	if err != nil {
		r.log.Error("Failed to find appointment services",
			zap.Error(err),
			zap.String("appointment_id", appointmentID.String()),
		)
		return nil, fmt.Errorf("find appointment services %s: %w", appointmentID.String(), err)
	}
	defer rows.Close()

	var services []*entity.AppointmentService
	for rows.Next() {
		var svc entity.AppointmentService
		err := rows.Scan(&svc.ID, &svc.AppointmentID, &svc.ServiceID, &svc.PriceAtTime, &svc.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan appointment service row: %w", err)
		}
		services = append(services, &svc)
	}

	return services, rows.Err()
}

func (r *appointmentRepository) FindBookedSlots(ctx context.Context, tenantID uuid.UUID, from, to time.Time) ([]entity.BookedSlot, error) {
	// Same occupancy predicate as the exclusion constraint: cancelled and
	// no-show rows release the slot.
	query := `
		SELECT start_time, end_time
		FROM appointments
		WHERE tenant_id = $1
			AND status NOT IN ('cancelled', 'no_show')
			AND start_time < $3
			AND end_time > $2
		ORDER BY start_time
	`

	rows, err := r.db.Query(ctx, query, tenantID, from, to)
	if err != nil {
		r.log.Error("Failed to find booked slots",
			zap.Error(err),
			zap.String("tenant_id", tenantID.String()),
		)
		return nil, fmt.Errorf("find booked slots: %w", err)
	}
	defer rows.Close()

	var slots []entity.BookedSlot
	for rows.Next() {
		var slot entity.BookedSlot
		if err := rows.Scan(&slot.StartTime, &slot.EndTime); err != nil {
			return nil, fmt.Errorf("scan booked slot row: %w", err)
		}
		slots = append(slots, slot)
	}

	return slots, rows.Err()
}

func (r *appointmentRepository) UpdateStatus(ctx context.Context, tenantID, id uuid.UUID, status entity.AppointmentStatus, confirmedAt *time.Time) error {
	query := `
		UPDATE appointments
		SET status = $3,
		    confirmed_at = COALESCE($4, confirmed_at),
		    updated_at = NOW()
		WHERE id = $1 AND tenant_id = $2
	`

	result, err := r.db.Exec(ctx, query, id, tenantID, status, confirmedAt)
	if err != nil {
		r.log.Error("Failed to update appointment status",
			zap.Error(err),
			zap.String("appointment_id", id.String()),
			zap.String("status", string(status)),
		)
		return fmt.Errorf("update appointment %s status to %s: %w", id.String(), string(status), err)
	}

	if result.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *appointmentRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	// Hard delete; appointment_services rows go with it via FK cascade.
	query := `DELETE FROM appointments WHERE id = $1 AND tenant_id = $2`

	result, err := r.db.Exec(ctx, query, id, tenantID)
	if err != nil {
		r.log.Error("Failed to delete appointment",
			zap.Error(err),
			zap.String("appointment_id", id.String()),
		)
		return fmt.Errorf("delete appointment %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return ErrNotFound
	}

	r.log.Info("Appointment deleted", zap.String("appointment_id", id.String()))
	return nil
}

func (r *appointmentRepository) FindStartingBetween(ctx context.Context, from, to time.Time) ([]*entity.Appointment, error) {
	query := `
		SELECT ` + appointmentColumns + `
		FROM appointments
		WHERE status IN ('pending', 'confirmed')
			AND start_time >= $1
			AND start_time < $2
		ORDER BY start_time
	`

	rows, err := r.db.Query(ctx, query, from, to)
	if err != nil {
		r.log.Error("Failed to find upcoming appointments", zap.Error(err))
		return nil, fmt.Errorf("find upcoming appointments: %w", err)
	}
	defer rows.Close()

	var appts []*entity.Appointment
	for rows.Next() {
		appt, err := scanAppointment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan appointment row: %w", err)
		}
		appts = append(appts, appt)
	}

	return appts, rows.Err()
}

func (r *appointmentRepository) MarkReminderSent(ctx context.Context, id uuid.UUID, at time.Time) error {
	query := `UPDATE appointments SET reminder_sent_at = $2 WHERE id = $1 AND reminder_sent_at IS NULL`

	if _, err := r.db.Exec(ctx, query, id, at); err != nil {
		r.log.Error("Failed to mark reminder sent",
			zap.Error(err),
			zap.String("appointment_id", id.String()),
		)
		return fmt.Errorf("mark reminder sent %s: %w", id.String(), err)
	}

	return nil
}

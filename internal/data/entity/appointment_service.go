package entity

import (
	"github.com/google/uuid"
)

// AppointmentService snapshots a service selection onto an appointment.
// PriceAtTime is copied from the catalog when the row is inserted and is
// never recomputed, so later catalog price changes do not alter the
// appointment total.
type AppointmentService struct {
	BaseSimple
	AppointmentID uuid.UUID `db:"appointment_id"`
	ServiceID     uuid.UUID `db:"service_id"`
	PriceAtTime   float64   `db:"price_at_time"`
}

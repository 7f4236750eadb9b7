package entity

import (
	"time"

	"github.com/google/uuid"
)

type AppointmentStatus string

const (
	AppointmentStatusPending   AppointmentStatus = "pending"
	AppointmentStatusConfirmed AppointmentStatus = "confirmed"
	AppointmentStatusInRoom    AppointmentStatus = "in_room"
	AppointmentStatusCompleted AppointmentStatus = "completed"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
	AppointmentStatusNoShow    AppointmentStatus = "no_show"
)

// IsTerminal reports whether no further lifecycle transition is allowed.
func (s AppointmentStatus) IsTerminal() bool {
	switch s {
	case AppointmentStatusCompleted, AppointmentStatusCancelled, AppointmentStatusNoShow:
		return true
	}
	return false
}

// OccupiesSlot reports whether the appointment still blocks its time
// interval. Cancelled and no-show appointments release the slot.
func (s AppointmentStatus) OccupiesSlot() bool {
	switch s {
	case AppointmentStatusCancelled, AppointmentStatusNoShow:
		return false
	}
	return true
}

type Appointment struct {
	Base
	Reference         string            `db:"reference"`
	TenantID          uuid.UUID         `db:"tenant_id"`
	ClientID          uuid.UUID         `db:"client_id"`
	SpecialistID      *uuid.UUID        `db:"specialist_id"`
	CabinID           *uuid.UUID        `db:"cabin_id"`
	StartTime         time.Time         `db:"start_time"`
	EndTime           time.Time         `db:"end_time"`
	Status            AppointmentStatus `db:"status"`
	TotalPrice        float64           `db:"total_price"`
	ConfirmationToken string            `db:"confirmation_token"`
	ConfirmedAt       *time.Time        `db:"confirmed_at"`
	ReminderSentAt    *time.Time        `db:"reminder_sent_at"`
	Notes             string            `db:"notes"`
}

// BookedSlot is the interval projection used by the conflict filter.
// Derived, never persisted.
type BookedSlot struct {
	StartTime time.Time
	EndTime   time.Time
}

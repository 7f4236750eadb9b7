// Package queue defines the domain events published for downstream
// notification and analytics consumers.
package queue

const (
	QueueAppointmentCreated = "appointment.created"
	QueueAppointmentStatus  = "appointment.status_changed"
	QueueReminderDue        = "appointment.reminder.due"
)

// AppointmentCreatedEvent is published when a booking commits, whether it
// came from the staff form or the public flow.
type AppointmentCreatedEvent struct {
	AppointmentID string   `json:"appointment_id"`
	Reference     string   `json:"reference"`
	TenantID      string   `json:"tenant_id"`
	ClientName    string   `json:"client_name"`
	ServiceNames  []string `json:"services"`
	StartTime     string   `json:"start_time"`
	EndTime       string   `json:"end_time"`
	TotalPrice    float64  `json:"total_price"`
	Source        string   `json:"source"` // "staff" or "public"
	CreatedAt     string   `json:"created_at"`
}

// AppointmentStatusEvent is published on every lifecycle transition.
type AppointmentStatusEvent struct {
	AppointmentID string `json:"appointment_id"`
	TenantID      string `json:"tenant_id"`
	OldStatus     string `json:"old_status"`
	NewStatus     string `json:"new_status"`
	Actor         string `json:"actor"` // "staff" or "client"
	ChangedAt     string `json:"changed_at"`
}

// ReminderDueEvent is raised by the reminder watcher when an appointment
// crosses one of the alert thresholds.
type ReminderDueEvent struct {
	AppointmentID    string `json:"appointment_id"`
	TenantID         string `json:"tenant_id"`
	ThresholdMinutes int    `json:"threshold_minutes"`
	StartTime        string `json:"start_time"`
	RaisedAt         string `json:"raised_at"`
}

package response

import (
	"time"

	"salon-booking/internal/data/entity"
)

type AppointmentServiceResponse struct {
	ServiceID   string  `json:"service_id"`
	ServiceName string  `json:"service_name,omitempty"`
	PriceAtTime float64 `json:"price_at_time"`
}

type AppointmentResponse struct {
	ID           string                       `json:"id"`
	Reference    string                       `json:"reference"`
	ClientID     string                       `json:"client_id"`
	ClientName   string                       `json:"client_name,omitempty"`
	SpecialistID *string                      `json:"specialist_id,omitempty"`
	CabinID      *string                      `json:"cabin_id,omitempty"`
	StartTime    time.Time                    `json:"start_time"`
	EndTime      time.Time                    `json:"end_time"`
	Status       entity.AppointmentStatus     `json:"status"`
	TotalPrice   float64                      `json:"total_price"`
	Services     []AppointmentServiceResponse `json:"services"`
	ConfirmedAt  *time.Time                   `json:"confirmed_at,omitempty"`
	Notes        string                       `json:"notes,omitempty"`
	CreatedAt    time.Time                    `json:"created_at"`
	UpdatedAt    time.Time                    `json:"updated_at"`
}

type StatusChangeResponse struct {
	ID        string                   `json:"id"`
	Status    entity.AppointmentStatus `json:"status"`
	UpdatedAt time.Time                `json:"updated_at"`
}

// AppointmentToResponse maps the entity plus its service snapshots.
// Timestamps go out in UTC; the wire contract is ISO-8601 UTC.
func AppointmentToResponse(appt *entity.Appointment, services []AppointmentServiceResponse, clientName string) AppointmentResponse {
	var specialistID, cabinID *string
	if appt.SpecialistID != nil {
		s := appt.SpecialistID.String()
		specialistID = &s
	}
	if appt.CabinID != nil {
		c := appt.CabinID.String()
		cabinID = &c
	}

	return AppointmentResponse{
		ID:           appt.ID.String(),
		Reference:    appt.Reference,
		ClientID:     appt.ClientID.String(),
		ClientName:   clientName,
		SpecialistID: specialistID,
		CabinID:      cabinID,
		StartTime:    appt.StartTime.UTC(),
		EndTime:      appt.EndTime.UTC(),
		Status:       appt.Status,
		TotalPrice:   appt.TotalPrice,
		Services:     services,
		ConfirmedAt:  appt.ConfirmedAt,
		Notes:        appt.Notes,
		CreatedAt:    appt.CreatedAt,
		UpdatedAt:    appt.UpdatedAt,
	}
}

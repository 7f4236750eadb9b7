package response

import (
	"time"

	"salon-booking/internal/data/entity"
)

type ServiceResponse struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	DurationMinutes int     `json:"duration_minutes"`
	Price           float64 `json:"price"`
}

type BusinessHoursResponse struct {
	Weekday   int    `json:"weekday"`
	Enabled   bool   `json:"enabled"`
	OpenTime  string `json:"open_time,omitempty"`
	CloseTime string `json:"close_time,omitempty"`
}

// BookingInfoResponse is the public projection behind a tenant slug:
// branding, opening hours and the bookable catalog. No internal IDs
// beyond what the booking form needs.
type BookingInfoResponse struct {
	TenantID     string                  `json:"tenant_id"`
	Name         string                  `json:"name"`
	LogoURL      string                  `json:"logo_url,omitempty"`
	PrimaryColor string                  `json:"primary_color,omitempty"`
	Timezone     string                  `json:"timezone"`
	Hours        []BusinessHoursResponse `json:"business_hours"`
	Services     []ServiceResponse       `json:"services"`
}

// BookingCreatedResponse confirms a public booking.
type BookingCreatedResponse struct {
	Reference   string    `json:"reference"`
	ServiceName string    `json:"service_name"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	Price       float64   `json:"price"`
}

// PublicAppointmentView is the read-only projection returned for a valid
// confirmation token.
type PublicAppointmentView struct {
	ClientName   string                   `json:"client_name"`
	ServiceNames []string                 `json:"services"`
	SpecialistID *string                  `json:"specialist_id,omitempty"`
	StartTime    time.Time                `json:"start_time"`
	EndTime      time.Time                `json:"end_time"`
	Status       entity.AppointmentStatus `json:"status"`
	TenantName   string                   `json:"tenant_name"`
	LogoURL      string                   `json:"logo_url,omitempty"`
	PrimaryColor string                   `json:"primary_color,omitempty"`
}

// RespondResponse reports the outcome of a token response. An idempotent
// replay sets AlreadyResponded and echoes the status reached the first
// time; it is not an error.
type RespondResponse struct {
	Success          bool                     `json:"success"`
	AlreadyResponded bool                     `json:"already_responded"`
	Status           entity.AppointmentStatus `json:"status"`
}

func ServiceToResponse(svc *entity.Service) ServiceResponse {
	return ServiceResponse{
		ID:              svc.ID.String(),
		Name:            svc.Name,
		DurationMinutes: svc.DurationMinutes,
		Price:           svc.Price,
	}
}

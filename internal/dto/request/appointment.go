package request

// CreateAppointmentRequest is the staff booking form. StartTime is an
// ISO-8601 timestamp in UTC; end time is always derived from the service
// durations, never supplied.
type CreateAppointmentRequest struct {
	ClientID     string   `json:"client_id" validate:"required,uuid4"`
	ServiceIDs   []string `json:"service_ids" validate:"required,min=1,dive,uuid4"`
	SpecialistID *string  `json:"specialist_id,omitempty" validate:"omitempty,uuid4"`
	CabinID      *string  `json:"cabin_id,omitempty" validate:"omitempty,uuid4"`
	StartTime    string   `json:"start_time" validate:"required"`
	Notes        string   `json:"notes" validate:"max=2000"`
}

// UpdateAppointmentRequest replaces the appointment's service set and
// scheduling fields. The service set swap is atomic server-side.
type UpdateAppointmentRequest struct {
	ClientID     string   `json:"client_id" validate:"required,uuid4"`
	ServiceIDs   []string `json:"service_ids" validate:"required,min=1,dive,uuid4"`
	SpecialistID *string  `json:"specialist_id,omitempty" validate:"omitempty,uuid4"`
	CabinID      *string  `json:"cabin_id,omitempty" validate:"omitempty,uuid4"`
	StartTime    string   `json:"start_time" validate:"required"`
	Notes        string   `json:"notes" validate:"max=2000"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending confirmed in_room completed cancelled no_show"`
}

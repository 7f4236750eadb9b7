package request

// CreateBookingRequest is the public booking form reached through a
// tenant slug. The client is matched by phone or created on the fly.
type CreateBookingRequest struct {
	ClientName  string  `json:"client_name" validate:"required,min=2,max=120"`
	ClientPhone string  `json:"client_phone" validate:"required,min=6,max=30"`
	ClientEmail *string `json:"client_email,omitempty" validate:"omitempty,email"`
	ServiceID   string  `json:"service_id" validate:"required,uuid4"`
	StartTime   string  `json:"start_time" validate:"required"`
	ReceiptURL  *string `json:"receipt_url,omitempty" validate:"omitempty,url"`
}

// RespondRequest carries the token holder's answer to a booking link.
type RespondRequest struct {
	Response string `json:"response" validate:"required,oneof=confirm cancel"`
}

package adaptor

import (
	"salon-booking/internal/usecase"

	"go.uber.org/zap"
)

type Handler struct {
	Availability *AvailabilityHandler
	Appointment  *AppointmentHandler
	Public       *PublicHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Availability: NewAvailabilityHandler(service.Availability, log),
		Appointment:  NewAppointmentHandler(service.Appointment, log),
		Public:       NewPublicHandler(service.Public, log),
	}
}

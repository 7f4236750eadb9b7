package wire

import (
	"salon-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wirePublic(r chi.Router, publicHandler *adaptor.PublicHandler) {
	// ==================== PUBLIC BOOKING PAGE ====================
	r.Route("/api/public/booking/{slug}", func(r chi.Router) {
		// GET /api/public/booking/{slug} - branding, hours and catalog
		r.Get("/", publicHandler.GetBookingInfo)

		// GET /api/public/booking/{slug}/slots - free slots for a service/date
		r.Get("/slots", publicHandler.GetSlots)

		// GET /api/public/booking/{slug}/booked - occupied intervals
		r.Get("/booked", publicHandler.GetBookedSlots)

		// POST /api/public/booking/{slug} - create a booking
		r.Post("/", publicHandler.CreateBooking)
	})

	// ==================== CONFIRMATION LINKS ====================
	r.Route("/api/public/appointments/{token}", func(r chi.Router) {
		// GET /api/public/appointments/{token} - read-only view
		r.Get("/", publicHandler.GetAppointmentByToken)

		// POST /api/public/appointments/{token}/respond - confirm or cancel
		r.Post("/respond", publicHandler.RespondAppointment)
	})
}

package wire

import (
	"salon-booking/internal/adaptor"
	"salon-booking/internal/data/repository"
	"salon-booking/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireStaff(
	r chi.Router,
	appointmentHandler *adaptor.AppointmentHandler,
	availabilityHandler *adaptor.AvailabilityHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	// ==================== STAFF ROUTES (require session) ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, log))

		// GET /api/availability - free slots for a service/date
		r.Get("/api/availability", availabilityHandler.GetAvailability)

		// GET /api/booked-slots - occupied intervals for a date
		r.Get("/api/booked-slots", availabilityHandler.GetBookedSlots)

		// GET /api/audit-log - recent audit entries (owner only)
		r.With(middleware.Owner(log)).Get("/api/audit-log", appointmentHandler.GetAuditLog)

		r.Route("/api/appointments", func(r chi.Router) {
			// POST /api/appointments - create appointment
			r.Post("/", appointmentHandler.CreateAppointment)

			// GET /api/appointments?date - day agenda, paginated
			r.Get("/", appointmentHandler.GetAppointments)

			// GET /api/appointments/{id} - appointment detail
			r.Get("/{id}", appointmentHandler.GetAppointmentByID)

			// PUT /api/appointments/{id} - edit appointment
			r.Put("/{id}", appointmentHandler.UpdateAppointment)

			// PUT /api/appointments/{id}/status - lifecycle transition
			r.Put("/{id}/status", appointmentHandler.UpdateStatus)

			// DELETE /api/appointments/{id} - hard delete (owner only)
			r.With(middleware.Owner(log)).Delete("/{id}", appointmentHandler.DeleteAppointment)
		})
	})
}

package adaptor

import (
	"net/http"

	"salon-booking/internal/usecase"
	"salon-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AvailabilityHandler struct {
	service usecase.AvailabilityService
	log     *zap.Logger
}

func NewAvailabilityHandler(service usecase.AvailabilityService, log *zap.Logger) *AvailabilityHandler {
	return &AvailabilityHandler{
		service: service,
		log:     log.With(zap.String("handler", "availability")),
	}
}

// GetAvailability handles GET /api/availability?service_id&date (staff)
func (h *AvailabilityHandler) GetAvailability(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := utils.GetTenantIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	query := r.URL.Query()
	date := query.Get("date")
	if date == "" {
		utils.ResponseBadRequest(w, "date query parameter is required", nil)
		return
	}

	serviceID, err := uuid.Parse(query.Get("service_id"))
	if err != nil {
		utils.ResponseBadRequest(w, "service_id query parameter must be a valid UUID", nil)
		return
	}

	availability, err := h.service.GetAvailability(r.Context(), tenantID, date, serviceID)
	if err != nil {
		handleServiceError(w, h.log, err, "get availability")
		return
	}

	utils.ResponseSuccess(w, "success", availability)
}

// GetBookedSlots handles GET /api/booked-slots?date (staff)
func (h *AvailabilityHandler) GetBookedSlots(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := utils.GetTenantIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	date := r.URL.Query().Get("date")
	if date == "" {
		utils.ResponseBadRequest(w, "date query parameter is required", nil)
		return
	}

	slots, err := h.service.GetBookedSlots(r.Context(), tenantID, date)
	if err != nil {
		handleServiceError(w, h.log, err, "get booked slots")
		return
	}

	utils.ResponseSuccess(w, "success", slots)
}

package adaptor

import (
	"encoding/json"
	"net/http"

	"salon-booking/internal/dto/request"
	"salon-booking/internal/usecase"
	"salon-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type PublicHandler struct {
	service usecase.PublicService
	log     *zap.Logger
}

func NewPublicHandler(service usecase.PublicService, log *zap.Logger) *PublicHandler {
	return &PublicHandler{
		service: service,
		log:     log.With(zap.String("handler", "public")),
	}
}

// GetBookingInfo handles GET /api/public/booking/{slug}
func (h *PublicHandler) GetBookingInfo(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	info, err := h.service.GetBookingInfo(r.Context(), slug)
	if err != nil {
		handleServiceError(w, h.log, err, "get booking info")
		return
	}

	utils.ResponseSuccess(w, "success", info)
}

// GetSlots handles GET /api/public/booking/{slug}/slots?service_id&date
func (h *PublicHandler) GetSlots(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

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

	availability, err := h.service.GetAvailability(r.Context(), slug, date, serviceID)
	if err != nil {
		handleServiceError(w, h.log, err, "get public availability")
		return
	}

	utils.ResponseSuccess(w, "success", availability)
}

// GetBookedSlots handles GET /api/public/booking/{slug}/booked?date
func (h *PublicHandler) GetBookedSlots(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	date := r.URL.Query().Get("date")
	if date == "" {
		utils.ResponseBadRequest(w, "date query parameter is required", nil)
		return
	}

	slots, err := h.service.GetBookedSlots(r.Context(), slug, date)
	if err != nil {
		handleServiceError(w, h.log, err, "get public booked slots")
		return
	}

	utils.ResponseSuccess(w, "success", slots)
}

// CreateBooking handles POST /api/public/booking/{slug}
func (h *PublicHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	var req request.CreateBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	booking, err := h.service.CreateBooking(r.Context(), slug, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create public booking")
		return
	}

	utils.ResponseCreated(w, "success", booking)
}

// GetAppointmentByToken handles GET /api/public/appointments/{token}
func (h *PublicHandler) GetAppointmentByToken(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")

	view, err := h.service.GetAppointmentByToken(r.Context(), token)
	if err != nil {
		handleServiceError(w, h.log, err, "get appointment by token")
		return
	}

	utils.ResponseSuccess(w, "success", view)
}

// RespondAppointment handles POST /api/public/appointments/{token}/respond
func (h *PublicHandler) RespondAppointment(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")

	var req request.RespondRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	result, err := h.service.RespondAppointment(r.Context(), token, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "respond appointment")
		return
	}

	utils.ResponseSuccess(w, "success", result)
}

package adaptor

import (
	"encoding/json"
	"net/http"

	"salon-booking/internal/dto/request"
	"salon-booking/internal/usecase"
	"salon-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type AppointmentHandler struct {
	service usecase.AppointmentService
	log     *zap.Logger
}

func NewAppointmentHandler(service usecase.AppointmentService, log *zap.Logger) *AppointmentHandler {
	return &AppointmentHandler{
		service: service,
		log:     log.With(zap.String("handler", "appointment")),
	}
}

// CreateAppointment handles POST /api/appointments (staff)
func (h *AppointmentHandler) CreateAppointment(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := utils.GetTenantIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}
	staffID, ok := utils.GetStaffIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.CreateAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	appointment, err := h.service.CreateAppointment(r.Context(), tenantID, staffID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create appointment")
		return
	}

	utils.ResponseCreated(w, "success", appointment)
}

// GetAppointments handles GET /api/appointments?date&page&per_page (staff)
func (h *AppointmentHandler) GetAppointments(w http.ResponseWriter, r *http.Request) {
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

	page := &request.PaginatedRequest{
		Page:    utils.ParseInt(query.Get("page"), 1),
		PerPage: utils.ParseInt(query.Get("per_page"), 10),
	}

	appointments, err := h.service.GetAppointments(r.Context(), tenantID, date, page)
	if err != nil {
		handleServiceError(w, h.log, err, "get appointments")
		return
	}

	utils.ResponseSuccess(w, "success", appointments)
}

// GetAppointmentByID handles GET /api/appointments/{id} (staff)
func (h *AppointmentHandler) GetAppointmentByID(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := utils.GetTenantIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	appointmentID := chi.URLParam(r, "id")

	appointment, err := h.service.GetAppointmentByID(r.Context(), tenantID, appointmentID)
	if err != nil {
		handleServiceError(w, h.log, err, "get appointment")
		return
	}

	utils.ResponseSuccess(w, "success", appointment)
}

// UpdateAppointment handles PUT /api/appointments/{id} (staff)
func (h *AppointmentHandler) UpdateAppointment(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := utils.GetTenantIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	appointmentID := chi.URLParam(r, "id")

	var req request.UpdateAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	appointment, err := h.service.UpdateAppointment(r.Context(), tenantID, appointmentID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update appointment")
		return
	}

	utils.ResponseSuccess(w, "success", appointment)
}

// UpdateStatus handles PUT /api/appointments/{id}/status (staff)
func (h *AppointmentHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := utils.GetTenantIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	appointmentID := chi.URLParam(r, "id")

	var req request.UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	status, err := h.service.UpdateStatus(r.Context(), tenantID, appointmentID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update status")
		return
	}

	utils.ResponseSuccess(w, "success", status)
}

// GetAuditLog handles GET /api/audit-log?limit (owner only)
func (h *AppointmentHandler) GetAuditLog(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := utils.GetTenantIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	limit := utils.ParseInt(r.URL.Query().Get("limit"), 50)

	entries, err := h.service.GetAuditLog(r.Context(), tenantID, limit)
	if err != nil {
		handleServiceError(w, h.log, err, "get audit log")
		return
	}

	utils.ResponseSuccess(w, "success", entries)
}

// DeleteAppointment handles DELETE /api/appointments/{id} (owner only)
func (h *AppointmentHandler) DeleteAppointment(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := utils.GetTenantIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}
	staffID, ok := utils.GetStaffIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}
	role, _ := utils.GetRoleFromContext(r.Context())

	appointmentID := chi.URLParam(r, "id")

	if err := h.service.DeleteAppointment(r.Context(), tenantID, staffID, role, appointmentID); err != nil {
		handleServiceError(w, h.log, err, "delete appointment")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}

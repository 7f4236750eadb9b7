package usecase

import (
	"context"
	"fmt"
	"time"

	"salon-booking/internal/data/entity"
	"salon-booking/internal/data/repository"
	"salon-booking/internal/dto/request"
	"salon-booking/internal/dto/response"
	"salon-booking/internal/queue"
	"salon-booking/internal/scheduling"
	"salon-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AppointmentService interface {
	CreateAppointment(ctx context.Context, tenantID, staffID uuid.UUID, req *request.CreateAppointmentRequest) (*response.AppointmentResponse, error)
	GetAppointments(ctx context.Context, tenantID uuid.UUID, date string, page *request.PaginatedRequest) (*response.PaginatedResponse[response.AppointmentResponse], error)
	GetAppointmentByID(ctx context.Context, tenantID uuid.UUID, appointmentID string) (*response.AppointmentResponse, error)
	UpdateAppointment(ctx context.Context, tenantID uuid.UUID, appointmentID string, req *request.UpdateAppointmentRequest) (*response.AppointmentResponse, error)
	UpdateStatus(ctx context.Context, tenantID uuid.UUID, appointmentID string, req *request.UpdateStatusRequest) (*response.StatusChangeResponse, error)
	DeleteAppointment(ctx context.Context, tenantID, staffID uuid.UUID, role, appointmentID string) error
	GetAuditLog(ctx context.Context, tenantID uuid.UUID, limit int) ([]response.AuditLogResponse, error)
}

type appointmentService struct {
	repo      *repository.Repository
	publisher *queue.Publisher
	log       *zap.Logger
	now       func() time.Time
}

func NewAppointmentService(repo *repository.Repository, publisher *queue.Publisher, log *zap.Logger) AppointmentService {
	return &appointmentService{
		repo:      repo,
		publisher: publisher,
		log:       log.With(zap.String("service", "appointment")),
		now:       time.Now,
	}
}

func (s *appointmentService) CreateAppointment(ctx context.Context, tenantID, staffID uuid.UUID, req *request.CreateAppointmentRequest) (*response.AppointmentResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create appointment validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	clientID, err := uuid.Parse(req.ClientID)
	if err != nil {
		return nil, fmt.Errorf("invalid client ID format %s: %w", req.ClientID, err)
	}

	client, err := s.repo.Client.FindByID(ctx, tenantID, clientID)
	if err != nil {
		return nil, fmt.Errorf("client %s: %w", req.ClientID, err)
	}

	services, err := s.loadServices(ctx, tenantID, req.ServiceIDs)
	if err != nil {
		return nil, err
	}

	startTime, err := time.Parse(time.RFC3339, req.StartTime)
	if err != nil {
		return nil, fmt.Errorf("invalid start time %q: %w", req.StartTime, err)
	}
	startTime = startTime.UTC()

	specialistID, cabinID, err := parseResourceIDs(req.SpecialistID, req.CabinID)
	if err != nil {
		return nil, err
	}

	token, err := utils.GenerateConfirmationToken()
	if err != nil {
		return nil, err
	}

	now := s.now()
	appt := &entity.Appointment{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Reference:         utils.GenerateBookingReference(),
		TenantID:          tenantID,
		ClientID:          client.ID,
		SpecialistID:      specialistID,
		CabinID:           cabinID,
		StartTime:         startTime,
		EndTime:           startTime.Add(totalDuration(services)),
		Status:            entity.AppointmentStatusPending,
		TotalPrice:        totalPrice(services),
		ConfirmationToken: token,
		Notes:             req.Notes,
	}

	snapshots := serviceSnapshots(appt.ID, services, now)

	if err := s.repo.Appointment.CreateWithServices(ctx, appt, snapshots); err != nil {
		// ErrSlotTaken passes through untouched; the caller must re-query
		// availability and pick again.
		return nil, err
	}

	s.log.Info("Appointment created",
		zap.String("appointment_id", appt.ID.String()),
		zap.String("reference", appt.Reference),
		zap.String("tenant_id", tenantID.String()),
		zap.Int("service_count", len(services)),
		zap.Float64("total_price", appt.TotalPrice),
	)

	s.audit(ctx, tenantID, &staffID, "appointment.create", appt.ID, map[string]any{
		"reference":  appt.Reference,
		"client_id":  client.ID.String(),
		"start_time": appt.StartTime.Format(time.RFC3339),
	})
	s.publishCreated(ctx, appt, client.Name, services, "staff")

	return s.buildResponse(appt, client.Name, services), nil
}

func (s *appointmentService) GetAppointments(ctx context.Context, tenantID uuid.UUID, date string, page *request.PaginatedRequest) (*response.PaginatedResponse[response.AppointmentResponse], error) {
	tenant, err := s.repo.Tenant.FindByID(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("tenant %s: %w", tenantID.String(), err)
	}

	loc := tenant.Location()
	day, err := time.ParseInLocation("2006-01-02", date, loc)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q: %w", date, err)
	}
	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, loc)
	dayEnd := dayStart.AddDate(0, 0, 1)

	appts, err := s.repo.Appointment.FindByTenantAndRange(ctx, tenantID, dayStart, dayEnd, page.Limit(), page.Offset())
	if err != nil {
		return nil, fmt.Errorf("get appointments: %w", err)
	}

	total, err := s.repo.Appointment.CountByTenantAndRange(ctx, tenantID, dayStart, dayEnd)
	if err != nil {
		return nil, fmt.Errorf("count appointments: %w", err)
	}

	items := make([]response.AppointmentResponse, len(appts))
	for i, appt := range appts {
		items[i] = *s.hydrate(ctx, appt)
	}

	return response.NewPaginatedResponse(items, page.Page, page.PerPage, total), nil
}

func (s *appointmentService) GetAppointmentByID(ctx context.Context, tenantID uuid.UUID, appointmentID string) (*response.AppointmentResponse, error) {
	id, err := uuid.Parse(appointmentID)
	if err != nil {
		return nil, fmt.Errorf("invalid appointment ID format %s: %w", appointmentID, err)
	}

	appt, err := s.repo.Appointment.FindByID(ctx, tenantID, id)
	if err != nil {
		return nil, fmt.Errorf("appointment %s: %w", appointmentID, err)
	}

	return s.hydrate(ctx, appt), nil
}

func (s *appointmentService) UpdateAppointment(ctx context.Context, tenantID uuid.UUID, appointmentID string, req *request.UpdateAppointmentRequest) (*response.AppointmentResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update appointment validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	id, err := uuid.Parse(appointmentID)
	if err != nil {
		return nil, fmt.Errorf("invalid appointment ID format %s: %w", appointmentID, err)
	}

	appt, err := s.repo.Appointment.FindByID(ctx, tenantID, id)
	if err != nil {
		return nil, fmt.Errorf("appointment %s: %w", appointmentID, err)
	}

	if appt.Status.IsTerminal() {
		return nil, fmt.Errorf("cannot edit %s appointment", appt.Status)
	}

	clientID, err := uuid.Parse(req.ClientID)
	if err != nil {
		return nil, fmt.Errorf("invalid client ID format %s: %w", req.ClientID, err)
	}
	client, err := s.repo.Client.FindByID(ctx, tenantID, clientID)
	if err != nil {
		return nil, fmt.Errorf("client %s: %w", req.ClientID, err)
	}

	services, err := s.loadServices(ctx, tenantID, req.ServiceIDs)
	if err != nil {
		return nil, err
	}

	startTime, err := time.Parse(time.RFC3339, req.StartTime)
	if err != nil {
		return nil, fmt.Errorf("invalid start time %q: %w", req.StartTime, err)
	}
	startTime = startTime.UTC()

	specialistID, cabinID, err := parseResourceIDs(req.SpecialistID, req.CabinID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	appt.ClientID = client.ID
	appt.SpecialistID = specialistID
	appt.CabinID = cabinID
	appt.StartTime = startTime
	appt.EndTime = startTime.Add(totalDuration(services))
	appt.TotalPrice = totalPrice(services)
	appt.Notes = req.Notes
	appt.UpdatedAt = now

	snapshots := serviceSnapshots(appt.ID, services, now)

	// Service set replacement is all-or-nothing inside the repository
	// transaction; a failure leaves the old set intact.
	if err := s.repo.Appointment.ReplaceServices(ctx, appt, snapshots); err != nil {
		return nil, err
	}

	s.log.Info("Appointment updated",
		zap.String("appointment_id", appt.ID.String()),
		zap.Int("service_count", len(services)),
	)

	return s.buildResponse(appt, client.Name, services), nil
}

func (s *appointmentService) UpdateStatus(ctx context.Context, tenantID uuid.UUID, appointmentID string, req *request.UpdateStatusRequest) (*response.StatusChangeResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	id, err := uuid.Parse(appointmentID)
	if err != nil {
		return nil, fmt.Errorf("invalid appointment ID format %s: %w", appointmentID, err)
	}

	appt, err := s.repo.Appointment.FindByID(ctx, tenantID, id)
	if err != nil {
		return nil, fmt.Errorf("appointment %s: %w", appointmentID, err)
	}

	target := entity.AppointmentStatus(req.Status)
	if !scheduling.CanTransition(appt.Status, target, scheduling.ActorStaff) {
		return nil, fmt.Errorf("cannot transition appointment from %s to %s", appt.Status, target)
	}

	if err := s.repo.Appointment.UpdateStatus(ctx, tenantID, id, target, nil); err != nil {
		return nil, fmt.Errorf("update status: %w", err)
	}

	s.log.Info("Appointment status changed",
		zap.String("appointment_id", appointmentID),
		zap.String("from", string(appt.Status)),
		zap.String("to", string(target)),
	)

	s.publishStatus(ctx, appt, target, "staff")

	return &response.StatusChangeResponse{
		ID:        appointmentID,
		Status:    target,
		UpdatedAt: s.now(),
	}, nil
}

func (s *appointmentService) DeleteAppointment(ctx context.Context, tenantID, staffID uuid.UUID, role, appointmentID string) error {
	// Hard delete is owner-gated; it is not a lifecycle transition.
	if role != entity.RoleOwner {
		return repository.ErrForbidden
	}

	id, err := uuid.Parse(appointmentID)
	if err != nil {
		return fmt.Errorf("invalid appointment ID format %s: %w", appointmentID, err)
	}

	appt, err := s.repo.Appointment.FindByID(ctx, tenantID, id)
	if err != nil {
		return fmt.Errorf("appointment %s: %w", appointmentID, err)
	}

	if err := s.repo.Appointment.Delete(ctx, tenantID, id); err != nil {
		return fmt.Errorf("delete appointment %s: %w", appointmentID, err)
	}

	s.audit(ctx, tenantID, &staffID, "appointment.delete", id, map[string]any{
		"reference":  appt.Reference,
		"start_time": appt.StartTime.Format(time.RFC3339),
		"status":     string(appt.Status),
	})

	return nil
}

// GetAuditLog returns the tenant's most recent audit entries, newest
// first.
func (s *appointmentService) GetAuditLog(ctx context.Context, tenantID uuid.UUID, limit int) ([]response.AuditLogResponse, error) {
	entries, err := s.repo.Audit.ListRecent(ctx, tenantID, limit)
	if err != nil {
		return nil, fmt.Errorf("list audit log: %w", err)
	}

	items := make([]response.AuditLogResponse, len(entries))
	for i, entry := range entries {
		items[i] = response.AuditLogToResponse(entry)
	}
	return items, nil
}

// ==================== HELPER METHODS ====================

// loadServices fetches the selected services in request order, enforcing
// tenant scope and active status.
func (s *appointmentService) loadServices(ctx context.Context, tenantID uuid.UUID, serviceIDs []string) ([]*entity.Service, error) {
	services := make([]*entity.Service, 0, len(serviceIDs))
	for _, idStr := range serviceIDs {
		serviceID, err := uuid.Parse(idStr)
		if err != nil {
			return nil, fmt.Errorf("invalid service ID format %s: %w", idStr, err)
		}

		svc, err := s.repo.Service.FindByID(ctx, tenantID, serviceID)
		if err != nil {
			return nil, fmt.Errorf("service %s: %w", idStr, err)
		}
		if !svc.IsActive {
			return nil, fmt.Errorf("service %s: %w", idStr, repository.ErrNotFound)
		}
		services = append(services, svc)
	}
	return services, nil
}

func serviceSnapshots(appointmentID uuid.UUID, services []*entity.Service, now time.Time) []*entity.AppointmentService {
	snapshots := make([]*entity.AppointmentService, len(services))
	for i, svc := range services {
		snapshots[i] = &entity.AppointmentService{
			BaseSimple: entity.BaseSimple{
				ID:        uuid.New(),
				CreatedAt: now,
			},
			AppointmentID: appointmentID,
			ServiceID:     svc.ID,
			PriceAtTime:   svc.Price,
		}
	}
	return snapshots
}

func parseResourceIDs(specialist, cabin *string) (*uuid.UUID, *uuid.UUID, error) {
	var specialistID, cabinID *uuid.UUID
	if specialist != nil {
		id, err := uuid.Parse(*specialist)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid specialist ID format %s: %w", *specialist, err)
		}
		specialistID = &id
	}
	if cabin != nil {
		id, err := uuid.Parse(*cabin)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid cabin ID format %s: %w", *cabin, err)
		}
		cabinID = &id
	}
	return specialistID, cabinID, nil
}

func (s *appointmentService) buildResponse(appt *entity.Appointment, clientName string, services []*entity.Service) *response.AppointmentResponse {
	svcResponses := make([]response.AppointmentServiceResponse, len(services))
	for i, svc := range services {
		svcResponses[i] = response.AppointmentServiceResponse{
			ServiceID:   svc.ID.String(),
			ServiceName: svc.Name,
			PriceAtTime: svc.Price,
		}
	}

	resp := response.AppointmentToResponse(appt, svcResponses, clientName)
	return &resp
}

// hydrate builds a response from a stored appointment, resolving the
// client name and the service snapshots.
func (s *appointmentService) hydrate(ctx context.Context, appt *entity.Appointment) *response.AppointmentResponse {
	var clientName string
	client, _ := s.repo.Client.FindByID(ctx, appt.TenantID, appt.ClientID)
	if client != nil {
		clientName = client.Name
	}

	var svcResponses []response.AppointmentServiceResponse
	snapshots, _ := s.repo.Appointment.FindServices(ctx, appt.ID)
	for _, snap := range snapshots {
		item := response.AppointmentServiceResponse{
			ServiceID:   snap.ServiceID.String(),
			PriceAtTime: snap.PriceAtTime,
		}
		if svc, err := s.repo.Service.FindByID(ctx, appt.TenantID, snap.ServiceID); err == nil {
			item.ServiceName = svc.Name
		}
		svcResponses = append(svcResponses, item)
	}

	resp := response.AppointmentToResponse(appt, svcResponses, clientName)
	return &resp
}

func (s *appointmentService) audit(ctx context.Context, tenantID uuid.UUID, actorID *uuid.UUID, action string, entityID uuid.UUID, details map[string]any) {
	// Fire-and-forget: audit failures never fail the operation.
	if err := s.repo.Audit.Record(ctx, tenantID, actorID, action, "appointment", entityID, details); err != nil {
		s.log.Warn("Audit record failed", zap.Error(err), zap.String("action", action))
	}
}

func (s *appointmentService) publishCreated(ctx context.Context, appt *entity.Appointment, clientName string, services []*entity.Service, source string) {
	names := make([]string, len(services))
	for i, svc := range services {
		names[i] = svc.Name
	}

	_ = s.publisher.Publish(ctx, queue.QueueAppointmentCreated, queue.AppointmentCreatedEvent{
		AppointmentID: appt.ID.String(),
		Reference:     appt.Reference,
		TenantID:      appt.TenantID.String(),
		ClientName:    clientName,
		ServiceNames:  names,
		StartTime:     appt.StartTime.UTC().Format(time.RFC3339),
		EndTime:       appt.EndTime.UTC().Format(time.RFC3339),
		TotalPrice:    appt.TotalPrice,
		Source:        source,
		CreatedAt:     appt.CreatedAt.UTC().Format(time.RFC3339),
	})
}

func (s *appointmentService) publishStatus(ctx context.Context, appt *entity.Appointment, newStatus entity.AppointmentStatus, actor string) {
	_ = s.publisher.Publish(ctx, queue.QueueAppointmentStatus, queue.AppointmentStatusEvent{
		AppointmentID: appt.ID.String(),
		TenantID:      appt.TenantID.String(),
		OldStatus:     string(appt.Status),
		NewStatus:     string(newStatus),
		Actor:         actor,
		ChangedAt:     s.now().UTC().Format(time.RFC3339),
	})
}

package usecase

import (
	"context"
	"encoding/json"
	"errors"
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
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type PublicService interface {
	// GetBookingInfo resolves a tenant slug to the public booking page
	// payload: branding, opening hours and the active service catalog.
	GetBookingInfo(ctx context.Context, slug string) (*response.BookingInfoResponse, error)

	GetAvailability(ctx context.Context, slug, date string, serviceID uuid.UUID) (*response.AvailabilityResponse, error)
	GetBookedSlots(ctx context.Context, slug, date string) ([]response.BookedSlotResponse, error)

	CreateBooking(ctx context.Context, slug string, req *request.CreateBookingRequest) (*response.BookingCreatedResponse, error)

	GetAppointmentByToken(ctx context.Context, token string) (*response.PublicAppointmentView, error)
	RespondAppointment(ctx context.Context, token string, req *request.RespondRequest) (*response.RespondResponse, error)
}

type publicService struct {
	repo         *repository.Repository
	availability AvailabilityService
	redis        *redis.Client
	publisher    *queue.Publisher
	config       *utils.Config
	log          *zap.Logger
	now          func() time.Time
}

func NewPublicService(repo *repository.Repository, availability AvailabilityService, redisClient *redis.Client, publisher *queue.Publisher, config *utils.Config, log *zap.Logger) PublicService {
	return &publicService{
		repo:         repo,
		availability: availability,
		redis:        redisClient,
		publisher:    publisher,
		config:       config,
		log:          log.With(zap.String("service", "public")),
		now:          time.Now,
	}
}

func bookingInfoCacheKey(slug string) string {
	return "booking_info:" + slug
}

func (s *publicService) GetBookingInfo(ctx context.Context, slug string) (*response.BookingInfoResponse, error) {
	if s.redis != nil {
		cached, err := s.redis.Get(ctx, bookingInfoCacheKey(slug)).Result()
		if err == nil {
			var resp response.BookingInfoResponse
			if err := json.Unmarshal([]byte(cached), &resp); err == nil {
				return &resp, nil
			}
		} else if !errors.Is(err, redis.Nil) {
			s.log.Warn("Booking info cache read failed", zap.Error(err), zap.String("slug", slug))
		}
	}

	tenant, err := s.repo.Tenant.FindBySlug(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("tenant %s: %w", slug, err)
	}

	hours, err := s.repo.BusinessHours.FindByTenant(ctx, tenant.ID)
	if err != nil {
		return nil, fmt.Errorf("business hours: %w", err)
	}

	services, err := s.repo.Service.FindActiveByTenant(ctx, tenant.ID)
	if err != nil {
		return nil, fmt.Errorf("services: %w", err)
	}

	resp := &response.BookingInfoResponse{
		TenantID:     tenant.ID.String(),
		Name:         tenant.Name,
		LogoURL:      tenant.LogoURL,
		PrimaryColor: tenant.PrimaryColor,
		Timezone:     tenant.Timezone,
		Hours:        make([]response.BusinessHoursResponse, 0, len(hours)),
		Services:     make([]response.ServiceResponse, 0, len(services)),
	}
	for _, h := range hours {
		item := response.BusinessHoursResponse{
			Weekday: int(h.Weekday),
			Enabled: h.Enabled,
		}
		if h.Enabled {
			item.OpenTime = h.OpenTime
			item.CloseTime = h.CloseTime
		}
		resp.Hours = append(resp.Hours, item)
	}
	for _, svc := range services {
		resp.Services = append(resp.Services, response.ServiceToResponse(svc))
	}

	if s.redis != nil {
		if payload, err := json.Marshal(resp); err == nil {
			ttl := time.Duration(s.config.Redis.TTLSecs) * time.Second
			if err := s.redis.Set(ctx, bookingInfoCacheKey(slug), payload, ttl).Err(); err != nil {
				s.log.Warn("Booking info cache write failed", zap.Error(err), zap.String("slug", slug))
			}
		}
	}

	return resp, nil
}

func (s *publicService) GetAvailability(ctx context.Context, slug, date string, serviceID uuid.UUID) (*response.AvailabilityResponse, error) {
	tenant, err := s.repo.Tenant.FindBySlug(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("tenant %s: %w", slug, err)
	}
	return s.availability.GetAvailability(ctx, tenant.ID, date, serviceID)
}

func (s *publicService) GetBookedSlots(ctx context.Context, slug, date string) ([]response.BookedSlotResponse, error) {
	tenant, err := s.repo.Tenant.FindBySlug(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("tenant %s: %w", slug, err)
	}
	return s.availability.GetBookedSlots(ctx, tenant.ID, date)
}

func (s *publicService) CreateBooking(ctx context.Context, slug string, req *request.CreateBookingRequest) (*response.BookingCreatedResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create booking validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	tenant, err := s.repo.Tenant.FindBySlug(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("tenant %s: %w", slug, err)
	}

	serviceID, err := uuid.Parse(req.ServiceID)
	if err != nil {
		return nil, fmt.Errorf("invalid service ID format %s: %w", req.ServiceID, err)
	}
	svc, err := s.repo.Service.FindByID(ctx, tenant.ID, serviceID)
	if err != nil {
		return nil, fmt.Errorf("service %s: %w", req.ServiceID, err)
	}
	if !svc.IsActive {
		return nil, fmt.Errorf("service %s: %w", req.ServiceID, repository.ErrNotFound)
	}

	startTime, err := time.Parse(time.RFC3339, req.StartTime)
	if err != nil {
		return nil, fmt.Errorf("invalid start time %q: %w", req.StartTime, err)
	}
	startTime = startTime.UTC()

	lead := time.Duration(s.config.Booking.LeadMinutes) * time.Minute
	if !startTime.After(s.now().Add(lead)) {
		return nil, repository.ErrSlotTaken
	}

	client, err := s.resolveClient(ctx, tenant.ID, req)
	if err != nil {
		return nil, err
	}

	token, err := utils.GenerateConfirmationToken()
	if err != nil {
		return nil, err
	}

	notes := ""
	if req.ReceiptURL != nil {
		notes = "Receipt: " + *req.ReceiptURL
	}

	now := s.now()
	appt := &entity.Appointment{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Reference:         utils.GenerateBookingReference(),
		TenantID:          tenant.ID,
		ClientID:          client.ID,
		StartTime:         startTime,
		EndTime:           startTime.Add(time.Duration(svc.DurationMinutes) * time.Minute),
		Status:            entity.AppointmentStatusPending,
		TotalPrice:        svc.Price,
		ConfirmationToken: token,
		Notes:             notes,
	}

	snapshots := serviceSnapshots(appt.ID, []*entity.Service{svc}, now)

	if err := s.repo.Appointment.CreateWithServices(ctx, appt, snapshots); err != nil {
		return nil, err
	}

	s.log.Info("Public booking created",
		zap.String("appointment_id", appt.ID.String()),
		zap.String("reference", appt.Reference),
		zap.String("tenant_id", tenant.ID.String()),
		zap.String("service", svc.Name),
	)

	if err := s.repo.Audit.Record(ctx, tenant.ID, nil, "booking.create", "appointment", appt.ID, map[string]any{
		"reference": appt.Reference,
		"client_id": client.ID.String(),
		"source":    "public",
	}); err != nil {
		s.log.Warn("Audit record failed", zap.Error(err))
	}

	names := []string{svc.Name}
	_ = s.publisher.Publish(ctx, queue.QueueAppointmentCreated, queue.AppointmentCreatedEvent{
		AppointmentID: appt.ID.String(),
		Reference:     appt.Reference,
		TenantID:      tenant.ID.String(),
		ClientName:    client.Name,
		ServiceNames:  names,
		StartTime:     appt.StartTime.Format(time.RFC3339),
		EndTime:       appt.EndTime.Format(time.RFC3339),
		TotalPrice:    appt.TotalPrice,
		Source:        "public",
		CreatedAt:     appt.CreatedAt.UTC().Format(time.RFC3339),
	})

	return &response.BookingCreatedResponse{
		Reference:   appt.Reference,
		ServiceName: svc.Name,
		StartTime:   appt.StartTime,
		EndTime:     appt.EndTime,
		Price:       appt.TotalPrice,
	}, nil
}

// resolveClient matches an existing client by phone within the tenant, or
// creates a new record from the booking form.
func (s *publicService) resolveClient(ctx context.Context, tenantID uuid.UUID, req *request.CreateBookingRequest) (*entity.Client, error) {
	client, err := s.repo.Client.FindByPhone(ctx, tenantID, req.ClientPhone)
	if err == nil {
		return client, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("find client: %w", err)
	}

	now := s.now()
	client = &entity.Client{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		TenantID: tenantID,
		Name:     req.ClientName,
		Phone:    req.ClientPhone,
		Email:    req.ClientEmail,
	}
	if err := s.repo.Client.Create(ctx, client); err != nil {
		return nil, fmt.Errorf("create client: %w", err)
	}

	s.log.Info("Client created from public booking",
		zap.String("client_id", client.ID.String()),
		zap.String("tenant_id", tenantID.String()),
	)
	return client, nil
}

func (s *publicService) GetAppointmentByToken(ctx context.Context, token string) (*response.PublicAppointmentView, error) {
	appt, err := s.repo.Appointment.FindByToken(ctx, token)
	if err != nil {
		return nil, err
	}

	tenant, err := s.repo.Tenant.FindByID(ctx, appt.TenantID)
	if err != nil {
		return nil, fmt.Errorf("tenant: %w", err)
	}

	var clientName string
	if client, err := s.repo.Client.FindByID(ctx, appt.TenantID, appt.ClientID); err == nil {
		clientName = client.Name
	}

	var serviceNames []string
	snapshots, _ := s.repo.Appointment.FindServices(ctx, appt.ID)
	for _, snap := range snapshots {
		if svc, err := s.repo.Service.FindByID(ctx, appt.TenantID, snap.ServiceID); err == nil {
			serviceNames = append(serviceNames, svc.Name)
		}
	}

	var specialistID *string
	if appt.SpecialistID != nil {
		id := appt.SpecialistID.String()
		specialistID = &id
	}

	return &response.PublicAppointmentView{
		ClientName:   clientName,
		ServiceNames: serviceNames,
		SpecialistID: specialistID,
		StartTime:    appt.StartTime.UTC(),
		EndTime:      appt.EndTime.UTC(),
		Status:       appt.Status,
		TenantName:   tenant.Name,
		LogoURL:      tenant.LogoURL,
		PrimaryColor: tenant.PrimaryColor,
	}, nil
}

func (s *publicService) RespondAppointment(ctx context.Context, token string, req *request.RespondRequest) (*response.RespondResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	appt, err := s.repo.Appointment.FindByToken(ctx, token)
	if err != nil {
		return nil, err
	}

	target := entity.AppointmentStatusConfirmed
	if req.Response == "cancel" {
		target = entity.AppointmentStatusCancelled
	}

	// Replays and responses to an already-decided appointment report the
	// reached status instead of failing; the link stays shareable.
	if appt.Status == target {
		return &response.RespondResponse{
			Success:          true,
			AlreadyResponded: true,
			Status:           appt.Status,
		}, nil
	}
	if !scheduling.CanTransition(appt.Status, target, scheduling.ActorClient) {
		return &response.RespondResponse{
			Success:          false,
			AlreadyResponded: true,
			Status:           appt.Status,
		}, nil
	}

	// Both token responses stamp confirmed_at: it records when the
	// client answered, not which answer they gave.
	respondedAt := s.now().UTC()

	if err := s.repo.Appointment.UpdateStatus(ctx, appt.TenantID, appt.ID, target, &respondedAt); err != nil {
		return nil, fmt.Errorf("update status: %w", err)
	}

	s.log.Info("Client responded to booking",
		zap.String("appointment_id", appt.ID.String()),
		zap.String("response", req.Response),
	)

	_ = s.publisher.Publish(ctx, queue.QueueAppointmentStatus, queue.AppointmentStatusEvent{
		AppointmentID: appt.ID.String(),
		TenantID:      appt.TenantID.String(),
		OldStatus:     string(appt.Status),
		NewStatus:     string(target),
		Actor:         "client",
		ChangedAt:     s.now().UTC().Format(time.RFC3339),
	})

	return &response.RespondResponse{
		Success: true,
		Status:  target,
	}, nil
}

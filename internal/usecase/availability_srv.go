package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"salon-booking/internal/data/entity"
	"salon-booking/internal/data/repository"
	"salon-booking/internal/dto/response"
	"salon-booking/internal/scheduling"
	"salon-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AvailabilityService interface {
	// GetAvailability returns the free slot starts for a (tenant, date,
	// service) triple. A closed day and a fully booked day both yield an
	// empty slot list; callers distinguish them via IsDayClosed.
	GetAvailability(ctx context.Context, tenantID uuid.UUID, date string, serviceID uuid.UUID) (*response.AvailabilityResponse, error)

	// GetBookedSlots returns the occupied intervals for a date.
	GetBookedSlots(ctx context.Context, tenantID uuid.UUID, date string) ([]response.BookedSlotResponse, error)
}

type availabilityService struct {
	repo   *repository.Repository
	config *utils.Config
	log    *zap.Logger
	now    func() time.Time
}

func NewAvailabilityService(repo *repository.Repository, config *utils.Config, log *zap.Logger) AvailabilityService {
	return &availabilityService{
		repo:   repo,
		config: config,
		log:    log.With(zap.String("service", "availability")),
		now:    time.Now,
	}
}

func (s *availabilityService) GetAvailability(ctx context.Context, tenantID uuid.UUID, date string, serviceID uuid.UUID) (*response.AvailabilityResponse, error) {
	tenant, err := s.repo.Tenant.FindByID(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("tenant %s: %w", tenantID.String(), err)
	}

	svc, err := s.repo.Service.FindByID(ctx, tenantID, serviceID)
	if err != nil {
		return nil, fmt.Errorf("service %s: %w", serviceID.String(), err)
	}
	if !svc.IsActive {
		return nil, fmt.Errorf("service %s: %w", serviceID.String(), repository.ErrNotFound)
	}

	loc := tenant.Location()
	day, err := time.ParseInLocation("2006-01-02", date, loc)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q: %w", date, err)
	}

	resp := &response.AvailabilityResponse{Date: date, Slots: []response.SlotResponse{}}

	hours, err := s.repo.BusinessHours.FindByTenantAndWeekday(ctx, tenantID, day.Weekday())
	if errors.Is(err, repository.ErrNotFound) {
		resp.IsDayClosed = true
		return resp, nil
	}
	if err != nil {
		return nil, fmt.Errorf("business hours: %w", err)
	}
	if !hours.Enabled {
		resp.IsDayClosed = true
		return resp, nil
	}

	open, close, err := scheduling.WindowOn(day, hours.OpenTime, hours.CloseTime, loc)
	if err != nil {
		return nil, fmt.Errorf("business hours window: %w", err)
	}

	duration := time.Duration(svc.DurationMinutes) * time.Minute
	granularity := time.Duration(s.config.Booking.GranularityMinutes) * time.Minute

	candidates := scheduling.GenerateSlots(open, close, duration, granularity)

	booked, err := s.bookedIntervals(ctx, tenantID, day, loc)
	if err != nil {
		return nil, err
	}

	free := scheduling.FilterConflicts(candidates, duration, booked)

	// The lead-time filter only applies when the requested date is today
	// in the tenant's timezone.
	now := s.now().In(loc)
	if sameDay(day, now) {
		lead := time.Duration(s.config.Booking.LeadMinutes) * time.Minute
		free = scheduling.FilterLeadTime(free, now, lead)
	}

	for _, t := range free {
		resp.Slots = append(resp.Slots, response.SlotResponse{
			StartTime: t.UTC(),
			EndTime:   t.Add(duration).UTC(),
		})
	}

	s.log.Debug("Availability computed",
		zap.String("tenant_id", tenantID.String()),
		zap.String("date", date),
		zap.Int("candidates", len(candidates)),
		zap.Int("free", len(resp.Slots)),
	)

	return resp, nil
}

func (s *availabilityService) GetBookedSlots(ctx context.Context, tenantID uuid.UUID, date string) ([]response.BookedSlotResponse, error) {
	tenant, err := s.repo.Tenant.FindByID(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("tenant %s: %w", tenantID.String(), err)
	}

	loc := tenant.Location()
	day, err := time.ParseInLocation("2006-01-02", date, loc)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q: %w", date, err)
	}

	booked, err := s.bookedIntervals(ctx, tenantID, day, loc)
	if err != nil {
		return nil, err
	}

	slots := make([]response.BookedSlotResponse, len(booked))
	for i, b := range booked {
		slots[i] = response.BookedSlotResponse{
			StartTime: b.Start.UTC(),
			EndTime:   b.End.UTC(),
		}
	}

	return slots, nil
}

func (s *availabilityService) bookedIntervals(ctx context.Context, tenantID uuid.UUID, day time.Time, loc *time.Location) ([]scheduling.Interval, error) {
	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, loc)
	dayEnd := dayStart.AddDate(0, 0, 1)

	booked, err := s.repo.Appointment.FindBookedSlots(ctx, tenantID, dayStart, dayEnd)
	if err != nil {
		return nil, fmt.Errorf("booked slots: %w", err)
	}

	intervals := make([]scheduling.Interval, len(booked))
	for i, b := range booked {
		intervals[i] = scheduling.Interval{Start: b.StartTime, End: b.EndTime}
	}
	return intervals, nil
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// totalDuration and totalPrice sum the snapshots for a service selection.
func totalDuration(services []*entity.Service) time.Duration {
	var minutes int
	for _, svc := range services {
		minutes += svc.DurationMinutes
	}
	return time.Duration(minutes) * time.Minute
}

func totalPrice(services []*entity.Service) float64 {
	var sum float64
	for _, svc := range services {
		sum += svc.Price
	}
	return sum
}

package usecase

import (
	"context"
	"sync"
	"time"

	"salon-booking/internal/data/entity"
	"salon-booking/internal/data/repository"
	"salon-booking/internal/queue"
	"salon-booking/internal/scheduling"
	"salon-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// In-memory repository fakes. They honor the same error contracts as
// the pgx implementations, including the overlap rejection that the
// exclusion constraint performs in production.

type fakeTenantRepo struct {
	tenants map[uuid.UUID]*entity.Tenant
}

func (f *fakeTenantRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Tenant, error) {
	if t, ok := f.tenants[id]; ok {
		return t, nil
	}
	return nil, repository.ErrNotFound
}

func (f *fakeTenantRepo) FindBySlug(ctx context.Context, slug string) (*entity.Tenant, error) {
	for _, t := range f.tenants {
		if t.Slug == slug {
			return t, nil
		}
	}
	return nil, repository.ErrNotFound
}

type fakeHoursRepo struct {
	hours map[time.Weekday]*entity.BusinessHours
}

func (f *fakeHoursRepo) FindByTenantAndWeekday(ctx context.Context, tenantID uuid.UUID, weekday time.Weekday) (*entity.BusinessHours, error) {
	if h, ok := f.hours[weekday]; ok {
		return h, nil
	}
	return nil, repository.ErrNotFound
}

func (f *fakeHoursRepo) FindByTenant(ctx context.Context, tenantID uuid.UUID) ([]*entity.BusinessHours, error) {
	out := make([]*entity.BusinessHours, 0, len(f.hours))
	for _, h := range f.hours {
		out = append(out, h)
	}
	return out, nil
}

type fakeServiceRepo struct {
	services map[uuid.UUID]*entity.Service
}

func (f *fakeServiceRepo) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*entity.Service, error) {
	if s, ok := f.services[id]; ok && s.TenantID == tenantID {
		return s, nil
	}
	return nil, repository.ErrNotFound
}

func (f *fakeServiceRepo) FindActiveByTenant(ctx context.Context, tenantID uuid.UUID) ([]*entity.Service, error) {
	var out []*entity.Service
	for _, s := range f.services {
		if s.TenantID == tenantID && s.IsActive {
			out = append(out, s)
		}
	}
	return out, nil
}

type fakeClientRepo struct {
	clients map[uuid.UUID]*entity.Client
}

func (f *fakeClientRepo) Create(ctx context.Context, client *entity.Client) error {
	f.clients[client.ID] = client
	return nil
}

func (f *fakeClientRepo) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*entity.Client, error) {
	if c, ok := f.clients[id]; ok && c.TenantID == tenantID {
		return c, nil
	}
	return nil, repository.ErrNotFound
}

func (f *fakeClientRepo) FindByPhone(ctx context.Context, tenantID uuid.UUID, phone string) (*entity.Client, error) {
	for _, c := range f.clients {
		if c.TenantID == tenantID && c.Phone == phone {
			return c, nil
		}
	}
	return nil, repository.ErrNotFound
}

type fakeAppointmentRepo struct {
	mu           sync.Mutex
	appointments map[uuid.UUID]*entity.Appointment
	services     map[uuid.UUID][]*entity.AppointmentService
}

func newFakeAppointmentRepo() *fakeAppointmentRepo {
	return &fakeAppointmentRepo{
		appointments: make(map[uuid.UUID]*entity.Appointment),
		services:     make(map[uuid.UUID][]*entity.AppointmentService),
	}
}

func (f *fakeAppointmentRepo) overlaps(appt *entity.Appointment) bool {
	candidate := scheduling.Interval{Start: appt.StartTime, End: appt.EndTime}
	for _, other := range f.appointments {
		if other.ID == appt.ID || other.TenantID != appt.TenantID || !other.Status.OccupiesSlot() {
			continue
		}
		if candidate.Overlaps(scheduling.Interval{Start: other.StartTime, End: other.EndTime}) {
			return true
		}
	}
	return false
}

func (f *fakeAppointmentRepo) CreateWithServices(ctx context.Context, appt *entity.Appointment, services []*entity.AppointmentService) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.overlaps(appt) {
		return repository.ErrSlotTaken
	}
	clone := *appt
	f.appointments[appt.ID] = &clone
	f.services[appt.ID] = services
	return nil
}

func (f *fakeAppointmentRepo) ReplaceServices(ctx context.Context, appt *entity.Appointment, services []*entity.AppointmentService) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	stored, ok := f.appointments[appt.ID]
	if !ok || stored.TenantID != appt.TenantID {
		return repository.ErrNotFound
	}
	if f.overlaps(appt) {
		return repository.ErrSlotTaken
	}
	clone := *appt
	f.appointments[appt.ID] = &clone
	f.services[appt.ID] = services
	return nil
}

func (f *fakeAppointmentRepo) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*entity.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if a, ok := f.appointments[id]; ok && a.TenantID == tenantID {
		clone := *a
		return &clone, nil
	}
	return nil, repository.ErrNotFound
}

func (f *fakeAppointmentRepo) FindByToken(ctx context.Context, token string) (*entity.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, a := range f.appointments {
		if a.ConfirmationToken == token {
			clone := *a
			return &clone, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeAppointmentRepo) FindByTenantAndRange(ctx context.Context, tenantID uuid.UUID, from, to time.Time, limit, offset int) ([]*entity.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.Appointment
	for _, a := range f.appointments {
		if a.TenantID == tenantID && a.StartTime.Before(to) && !a.StartTime.Before(from) {
			clone := *a
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (f *fakeAppointmentRepo) CountByTenantAndRange(ctx context.Context, tenantID uuid.UUID, from, to time.Time) (int64, error) {
	appts, _ := f.FindByTenantAndRange(ctx, tenantID, from, to, 0, 0)
	return int64(len(appts)), nil
}

func (f *fakeAppointmentRepo) FindServices(ctx context.Context, appointmentID uuid.UUID) ([]*entity.AppointmentService, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.services[appointmentID], nil
}

func (f *fakeAppointmentRepo) FindBookedSlots(ctx context.Context, tenantID uuid.UUID, from, to time.Time) ([]entity.BookedSlot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []entity.BookedSlot
	for _, a := range f.appointments {
		if a.TenantID != tenantID || !a.Status.OccupiesSlot() {
			continue
		}
		if a.StartTime.Before(to) && a.EndTime.After(from) {
			out = append(out, entity.BookedSlot{StartTime: a.StartTime, EndTime: a.EndTime})
		}
	}
	return out, nil
}

func (f *fakeAppointmentRepo) UpdateStatus(ctx context.Context, tenantID, id uuid.UUID, status entity.AppointmentStatus, confirmedAt *time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.appointments[id]
	if !ok || a.TenantID != tenantID {
		return repository.ErrNotFound
	}
	a.Status = status
	if confirmedAt != nil {
		a.ConfirmedAt = confirmedAt
	}
	a.UpdatedAt = time.Now()
	return nil
}

func (f *fakeAppointmentRepo) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.appointments[id]
	if !ok || a.TenantID != tenantID {
		return repository.ErrNotFound
	}
	delete(f.appointments, id)
	delete(f.services, id)
	return nil
}

func (f *fakeAppointmentRepo) FindStartingBetween(ctx context.Context, from, to time.Time) ([]*entity.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.Appointment
	for _, a := range f.appointments {
		if a.Status != entity.AppointmentStatusPending && a.Status != entity.AppointmentStatusConfirmed {
			continue
		}
		if !a.StartTime.Before(from) && a.StartTime.Before(to) {
			clone := *a
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (f *fakeAppointmentRepo) MarkReminderSent(ctx context.Context, id uuid.UUID, at time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if a, ok := f.appointments[id]; ok && a.ReminderSentAt == nil {
		a.ReminderSentAt = &at
	}
	return nil
}

type fakeSessionRepo struct{}

func (f *fakeSessionRepo) FindValidSession(ctx context.Context, token string) (*entity.StaffSession, error) {
	return nil, nil
}

type fakeAuditRepo struct {
	mu      sync.Mutex
	records []string
	entries []*entity.AuditLog
}

func (f *fakeAuditRepo) Record(ctx context.Context, tenantID uuid.UUID, actorID *uuid.UUID, action, entityType string, entityID uuid.UUID, details map[string]any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.records = append(f.records, action)
	f.entries = append(f.entries, &entity.AuditLog{
		BaseSimple: entity.BaseSimple{ID: uuid.New(), CreatedAt: time.Now()},
		TenantID:   tenantID,
		ActorID:    actorID,
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		Details:    []byte("{}"),
	})
	return nil
}

func (f *fakeAuditRepo) ListRecent(ctx context.Context, tenantID uuid.UUID, limit int) ([]*entity.AuditLog, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.AuditLog
	// Newest first, like the ORDER BY created_at DESC in the pgx repo.
	for i := len(f.entries) - 1; i >= 0 && len(out) < limit; i-- {
		if f.entries[i].TenantID == tenantID {
			out = append(out, f.entries[i])
		}
	}
	return out, nil
}

// testFixture is a fully wired in-memory environment.
type testFixture struct {
	repo     *repository.Repository
	tenant   *entity.Tenant
	service  *entity.Service
	client   *entity.Client
	appts    *fakeAppointmentRepo
	audit    *fakeAuditRepo
	config   *utils.Config
	nowValue time.Time
}

func newTestFixture() *testFixture {
	tenantID := uuid.New()
	tenant := &entity.Tenant{
		Base:     entity.Base{ID: tenantID},
		Slug:     "bella-spa",
		Name:     "Bella Spa",
		Timezone: "UTC",
	}

	svc := &entity.Service{
		Base:            entity.Base{ID: uuid.New()},
		TenantID:        tenantID,
		Name:            "Deep Tissue Massage",
		DurationMinutes: 60,
		Price:           850,
		IsActive:        true,
	}

	client := &entity.Client{
		Base:     entity.Base{ID: uuid.New()},
		TenantID: tenantID,
		Name:     "Laura Mendez",
		Phone:    "5512345678",
	}

	hours := make(map[time.Weekday]*entity.BusinessHours)
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		hours[wd] = &entity.BusinessHours{
			TenantID:  tenantID,
			Weekday:   wd,
			Enabled:   wd != time.Sunday,
			OpenTime:  "09:00",
			CloseTime: "17:00",
		}
	}

	appts := newFakeAppointmentRepo()
	audit := &fakeAuditRepo{}

	repo := &repository.Repository{
		Tenant:        &fakeTenantRepo{tenants: map[uuid.UUID]*entity.Tenant{tenantID: tenant}},
		BusinessHours: &fakeHoursRepo{hours: hours},
		Service:       &fakeServiceRepo{services: map[uuid.UUID]*entity.Service{svc.ID: svc}},
		Client:        &fakeClientRepo{clients: map[uuid.UUID]*entity.Client{client.ID: client}},
		Appointment:   appts,
		Session:       &fakeSessionRepo{},
		Audit:         audit,
	}

	return &testFixture{
		repo:    repo,
		tenant:  tenant,
		service: svc,
		client:  client,
		appts:   appts,
		audit:   audit,
		config: &utils.Config{
			Booking: utils.BookingConfig{GranularityMinutes: 30, LeadMinutes: 30},
			Redis:   utils.RedisConfig{TTLSecs: 300},
		},
		// A Tuesday morning.
		nowValue: time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC),
	}
}

func (f *testFixture) publisher() *queue.Publisher {
	return queue.NewPublisher("", zap.NewNop())
}

func (f *testFixture) fixedNow() time.Time {
	return f.nowValue
}

package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"salon-booking/internal/data/entity"
	"salon-booking/internal/data/repository"
	"salon-booking/internal/dto/request"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func newPublicService(f *testFixture) *publicService {
	availability := NewAvailabilityService(f.repo, f.config, zap.NewNop()).(*availabilityService)
	availability.now = f.fixedNow

	svc := NewPublicService(f.repo, availability, nil, f.publisher(), f.config, zap.NewNop()).(*publicService)
	svc.now = f.fixedNow
	return svc
}

func TestGetBookingInfo(t *testing.T) {
	f := newTestFixture()
	svc := newPublicService(f)
	ctx := context.Background()

	info, err := svc.GetBookingInfo(ctx, "bella-spa")
	if err != nil {
		t.Fatalf("GetBookingInfo: %v", err)
	}

	if info.Name != "Bella Spa" {
		t.Errorf("name = %s, want Bella Spa", info.Name)
	}
	if len(info.Services) != 1 {
		t.Errorf("expected 1 active service, got %d", len(info.Services))
	}
	if len(info.Hours) != 7 {
		t.Errorf("expected 7 weekday rows, got %d", len(info.Hours))
	}

	if _, err := svc.GetBookingInfo(ctx, "no-such-salon"); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("expected ErrNotFound for unknown slug, got %v", err)
	}
}

func TestCreateBooking(t *testing.T) {
	f := newTestFixture()
	svc := newPublicService(f)
	ctx := context.Background()

	t.Run("new client is created", func(t *testing.T) {
		booking, err := svc.CreateBooking(ctx, "bella-spa", &request.CreateBookingRequest{
			ClientName:  "Sofia Reyes",
			ClientPhone: "5598765432",
			ServiceID:   f.service.ID.String(),
			StartTime:   "2026-09-02T12:00:00Z",
		})
		if err != nil {
			t.Fatalf("CreateBooking: %v", err)
		}
		if booking.Reference == "" {
			t.Error("reference should be generated")
		}
		if booking.ServiceName != f.service.Name {
			t.Errorf("service name = %s, want %s", booking.ServiceName, f.service.Name)
		}

		created, err := f.repo.Client.FindByPhone(ctx, f.tenant.ID, "5598765432")
		if err != nil {
			t.Fatalf("new client should exist: %v", err)
		}
		if created.Name != "Sofia Reyes" {
			t.Errorf("client name = %s", created.Name)
		}

		if len(f.audit.records) != 1 || f.audit.records[0] != "booking.create" {
			t.Errorf("audit records = %v, want one booking.create", f.audit.records)
		}
	})

	t.Run("existing client is matched by phone", func(t *testing.T) {
		_, err := svc.CreateBooking(ctx, "bella-spa", &request.CreateBookingRequest{
			ClientName:  "Different Spelling",
			ClientPhone: f.client.Phone,
			ServiceID:   f.service.ID.String(),
			StartTime:   "2026-09-02T15:00:00Z",
		})
		if err != nil {
			t.Fatalf("CreateBooking: %v", err)
		}
		// No second record for the same phone.
		matched, err := f.repo.Client.FindByPhone(ctx, f.tenant.ID, f.client.Phone)
		if err != nil {
			t.Fatalf("find client: %v", err)
		}
		if matched.ID != f.client.ID {
			t.Error("existing client should be reused, not duplicated")
		}
	})

	t.Run("taken slot is rejected", func(t *testing.T) {
		_, err := svc.CreateBooking(ctx, "bella-spa", &request.CreateBookingRequest{
			ClientName:  "Sofia Reyes",
			ClientPhone: "5598765432",
			ServiceID:   f.service.ID.String(),
			StartTime:   "2026-09-02T12:30:00Z",
		})
		if !errors.Is(err, repository.ErrSlotTaken) {
			t.Fatalf("expected ErrSlotTaken, got %v", err)
		}
	})

	t.Run("slot inside lead window is rejected", func(t *testing.T) {
		// Fixture now is 08:00; 08:15 is within the 30 minute lead.
		_, err := svc.CreateBooking(ctx, "bella-spa", &request.CreateBookingRequest{
			ClientName:  "Sofia Reyes",
			ClientPhone: "5598765432",
			ServiceID:   f.service.ID.String(),
			StartTime:   "2026-09-01T08:15:00Z",
		})
		if !errors.Is(err, repository.ErrSlotTaken) {
			t.Fatalf("expected ErrSlotTaken for lead violation, got %v", err)
		}
	})
}

func seedTokenAppointment(f *testFixture, token string, status entity.AppointmentStatus) *entity.Appointment {
	appt := &entity.Appointment{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: f.nowValue,
			UpdatedAt: f.nowValue,
		},
		Reference:         "APPT-TEST-" + token,
		TenantID:          f.tenant.ID,
		ClientID:          f.client.ID,
		StartTime:         f.nowValue.Add(24 * time.Hour),
		EndTime:           f.nowValue.Add(25 * time.Hour),
		Status:            status,
		ConfirmationToken: token,
	}
	f.appts.appointments[appt.ID] = appt
	return appt
}

func TestGetAppointmentByToken(t *testing.T) {
	f := newTestFixture()
	svc := newPublicService(f)
	ctx := context.Background()

	seedTokenAppointment(f, "tok-view", entity.AppointmentStatusPending)

	view, err := svc.GetAppointmentByToken(ctx, "tok-view")
	if err != nil {
		t.Fatalf("GetAppointmentByToken: %v", err)
	}
	if view.ClientName != f.client.Name {
		t.Errorf("client name = %s, want %s", view.ClientName, f.client.Name)
	}
	if view.TenantName != f.tenant.Name {
		t.Errorf("tenant name = %s, want %s", view.TenantName, f.tenant.Name)
	}
	if view.Status != entity.AppointmentStatusPending {
		t.Errorf("status = %s, want pending", view.Status)
	}

	if _, err := svc.GetAppointmentByToken(ctx, "tok-unknown"); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("expected ErrNotFound for unknown token, got %v", err)
	}
}

func TestRespondAppointment(t *testing.T) {
	f := newTestFixture()
	svc := newPublicService(f)
	ctx := context.Background()

	t.Run("confirm stamps confirmed_at", func(t *testing.T) {
		appt := seedTokenAppointment(f, "tok-confirm", entity.AppointmentStatusPending)

		result, err := svc.RespondAppointment(ctx, "tok-confirm", &request.RespondRequest{Response: "confirm"})
		if err != nil {
			t.Fatalf("RespondAppointment: %v", err)
		}
		if !result.Success || result.AlreadyResponded {
			t.Errorf("unexpected result %+v", result)
		}
		if result.Status != entity.AppointmentStatusConfirmed {
			t.Errorf("status = %s, want confirmed", result.Status)
		}

		stored := f.appts.appointments[appt.ID]
		if stored.ConfirmedAt == nil {
			t.Error("confirmed_at should be stamped")
		}
	})

	t.Run("replay is idempotent", func(t *testing.T) {
		result, err := svc.RespondAppointment(ctx, "tok-confirm", &request.RespondRequest{Response: "confirm"})
		if err != nil {
			t.Fatalf("RespondAppointment replay: %v", err)
		}
		if !result.AlreadyResponded {
			t.Error("replay should report AlreadyResponded")
		}
		if result.Status != entity.AppointmentStatusConfirmed {
			t.Errorf("status = %s, want confirmed", result.Status)
		}
	})

	t.Run("cancel after confirm", func(t *testing.T) {
		result, err := svc.RespondAppointment(ctx, "tok-confirm", &request.RespondRequest{Response: "cancel"})
		if err != nil {
			t.Fatalf("RespondAppointment: %v", err)
		}
		if !result.Success || result.Status != entity.AppointmentStatusCancelled {
			t.Errorf("unexpected result %+v", result)
		}
	})

	t.Run("cancel stamps confirmed_at", func(t *testing.T) {
		appt := seedTokenAppointment(f, "tok-cancel", entity.AppointmentStatusPending)

		result, err := svc.RespondAppointment(ctx, "tok-cancel", &request.RespondRequest{Response: "cancel"})
		if err != nil {
			t.Fatalf("RespondAppointment: %v", err)
		}
		if !result.Success || result.Status != entity.AppointmentStatusCancelled {
			t.Errorf("unexpected result %+v", result)
		}

		// The stamp records when the client answered, whichever answer
		// they gave.
		stored := f.appts.appointments[appt.ID]
		if stored.ConfirmedAt == nil {
			t.Error("token cancel should stamp confirmed_at")
		}
	})

	t.Run("respond on a completed appointment reports current status", func(t *testing.T) {
		seedTokenAppointment(f, "tok-done", entity.AppointmentStatusCompleted)

		result, err := svc.RespondAppointment(ctx, "tok-done", &request.RespondRequest{Response: "confirm"})
		if err != nil {
			t.Fatalf("RespondAppointment: %v", err)
		}
		if result.Success {
			t.Error("confirming a completed appointment should not succeed")
		}
		if !result.AlreadyResponded || result.Status != entity.AppointmentStatusCompleted {
			t.Errorf("unexpected result %+v", result)
		}
	})

	t.Run("unknown token", func(t *testing.T) {
		_, err := svc.RespondAppointment(ctx, "tok-nope", &request.RespondRequest{Response: "confirm"})
		if !errors.Is(err, repository.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})
}

package usecase

import (
	"context"
	"testing"
	"time"

	"salon-booking/internal/data/entity"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func newWatcher(f *testFixture) *ReminderWatcher {
	w := NewReminderWatcher(f.repo, f.publisher(), time.Minute, zap.NewNop())
	w.now = f.fixedNow
	return w
}

func seedUpcoming(f *testFixture, minutesOut int, status entity.AppointmentStatus) *entity.Appointment {
	start := f.nowValue.Add(time.Duration(minutesOut) * time.Minute)
	appt := &entity.Appointment{
		Base:              entity.Base{ID: uuid.New()},
		TenantID:          f.tenant.ID,
		ClientID:          f.client.ID,
		StartTime:         start,
		EndTime:           start.Add(time.Hour),
		Status:            status,
		ConfirmationToken: "tok-" + uuid.NewString(),
	}
	f.appts.appointments[appt.ID] = appt
	return appt
}

func TestReminderWatcherThresholds(t *testing.T) {
	tests := []struct {
		name          string
		minutesOut    int
		wantThreshold int
		wantAlert     bool
	}{
		{"just inside sixty", 59, 60, true},
		{"exactly thirty", 30, 30, true},
		{"inside fifteen", 10, 15, true},
		{"outside all thresholds", 90, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newTestFixture()
			w := newWatcher(f)
			appt := seedUpcoming(f, tt.minutesOut, entity.AppointmentStatusConfirmed)

			w.Scan(context.Background())

			stored := f.appts.appointments[appt.ID]
			if tt.wantAlert && stored.ReminderSentAt == nil {
				t.Fatal("expected reminder to be marked sent")
			}
			if !tt.wantAlert && stored.ReminderSentAt != nil {
				t.Fatal("expected no reminder outside the thresholds")
			}

			if tt.wantAlert {
				key := reminderKey{appointmentID: appt.ID, threshold: tt.wantThreshold}
				if _, ok := w.seen[key]; !ok {
					t.Errorf("threshold %d should be recorded as seen", tt.wantThreshold)
				}
			}
		})
	}
}

func TestReminderWatcherAtMostOnce(t *testing.T) {
	f := newTestFixture()
	w := newWatcher(f)
	appt := seedUpcoming(f, 45, entity.AppointmentStatusPending)
	ctx := context.Background()

	w.Scan(ctx)
	firstSeen := len(w.seen)
	if firstSeen == 0 {
		t.Fatal("first scan should record the crossed threshold")
	}

	// Same clock, second scan: no new alerts.
	w.Scan(ctx)
	if len(w.seen) != firstSeen {
		t.Errorf("repeat scan added seen entries: %d -> %d", firstSeen, len(w.seen))
	}

	// Clock advances past the 30 mark: one more alert, for 30 only.
	f.nowValue = f.nowValue.Add(20 * time.Minute)
	w.Scan(ctx)

	if _, ok := w.seen[reminderKey{appointmentID: appt.ID, threshold: 30}]; !ok {
		t.Error("crossing 30 should alert after the 60 alert")
	}
	if _, ok := w.seen[reminderKey{appointmentID: appt.ID, threshold: 15}]; ok {
		t.Error("15 has not been crossed yet")
	}
}

func TestReminderWatcherLateStartup(t *testing.T) {
	// A watcher starting 20 minutes before an appointment has missed the
	// 60 and 30 marks; it must raise exactly one alert, for 15... unless
	// the appointment sits between 15 and 30, where 30 is the tightest
	// crossed mark.
	f := newTestFixture()
	w := newWatcher(f)
	appt := seedUpcoming(f, 20, entity.AppointmentStatusConfirmed)

	w.Scan(context.Background())

	if _, ok := w.seen[reminderKey{appointmentID: appt.ID, threshold: 30}]; !ok {
		t.Error("30 is the tightest crossed threshold at 20 minutes out")
	}
	// 60 is marked seen too so it never fires late.
	if _, ok := w.seen[reminderKey{appointmentID: appt.ID, threshold: 60}]; !ok {
		t.Error("wider thresholds should be marked seen")
	}
	if _, ok := w.seen[reminderKey{appointmentID: appt.ID, threshold: 15}]; ok {
		t.Error("15 has not been crossed and should stay pending")
	}
}

func TestReminderWatcherSkipsTerminal(t *testing.T) {
	f := newTestFixture()
	w := newWatcher(f)
	appt := seedUpcoming(f, 25, entity.AppointmentStatusCancelled)

	w.Scan(context.Background())

	if f.appts.appointments[appt.ID].ReminderSentAt != nil {
		t.Error("cancelled appointments should not get reminders")
	}
	if len(w.seen) != 0 {
		t.Errorf("no thresholds should be recorded, got %d", len(w.seen))
	}
}

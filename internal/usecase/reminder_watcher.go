package usecase

import (
	"context"
	"time"

	"salon-booking/internal/data/entity"
	"salon-booking/internal/data/repository"
	"salon-booking/internal/queue"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// reminderThresholds are the minutes-before-start marks that raise an
// alert, widest first so a late scan picks the tightest applicable one.
var reminderThresholds = []int{60, 30, 15}

type reminderKey struct {
	appointmentID uuid.UUID
	threshold     int
}

// ReminderWatcher polls for pending and confirmed appointments
// approaching their start time and raises at most one alert per
// (appointment, threshold) pair. Threshold matching is crossing-based:
// a tick that lands past a mark still alerts, just late.
type ReminderWatcher struct {
	repo      *repository.Repository
	publisher *queue.Publisher
	interval  time.Duration
	log       *zap.Logger
	now       func() time.Time
	seen      map[reminderKey]struct{}
}

func NewReminderWatcher(repo *repository.Repository, publisher *queue.Publisher, interval time.Duration, log *zap.Logger) *ReminderWatcher {
	return &ReminderWatcher{
		repo:      repo,
		publisher: publisher,
		interval:  interval,
		log:       log.With(zap.String("service", "reminder_watcher")),
		now:       time.Now,
		seen:      make(map[reminderKey]struct{}),
	}
}

// Run blocks until ctx is cancelled, scanning once per interval.
func (w *ReminderWatcher) Run(ctx context.Context) {
	w.log.Info("Reminder watcher started", zap.Duration("interval", w.interval))

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.log.Info("Reminder watcher stopped")
			return
		case <-ticker.C:
			w.Scan(ctx)
		}
	}
}

// Scan runs one reminder pass. Exported so the lifecycle can be driven
// directly in tests and on demand.
func (w *ReminderWatcher) Scan(ctx context.Context) {
	now := w.now()
	horizon := now.Add(time.Duration(reminderThresholds[0]+1) * time.Minute)

	appts, err := w.repo.Appointment.FindStartingBetween(ctx, now, horizon)
	if err != nil {
		w.log.Error("Reminder scan failed", zap.Error(err))
		return
	}

	for _, appt := range appts {
		w.process(ctx, appt, now)
	}

	w.evict(now)
}

func (w *ReminderWatcher) process(ctx context.Context, appt *entity.Appointment, now time.Time) {
	minutesUntil := int(appt.StartTime.Sub(now).Minutes())
	if minutesUntil < 0 {
		return
	}

	threshold, ok := w.match(appt.ID, minutesUntil)
	if !ok {
		return
	}

	w.log.Info("Reminder due",
		zap.String("appointment_id", appt.ID.String()),
		zap.Int("threshold_minutes", threshold),
		zap.Int("minutes_until", minutesUntil),
	)

	err := w.publisher.Publish(ctx, queue.QueueReminderDue, queue.ReminderDueEvent{
		AppointmentID:    appt.ID.String(),
		TenantID:         appt.TenantID.String(),
		ThresholdMinutes: threshold,
		StartTime:        appt.StartTime.UTC().Format(time.RFC3339),
		RaisedAt:         now.UTC().Format(time.RFC3339),
	})
	if err != nil {
		w.log.Warn("Reminder publish failed", zap.Error(err), zap.String("appointment_id", appt.ID.String()))
	}

	if err := w.repo.Appointment.MarkReminderSent(ctx, appt.ID, now); err != nil {
		w.log.Warn("Mark reminder sent failed", zap.Error(err), zap.String("appointment_id", appt.ID.String()))
	}
}

// match picks the tightest crossed threshold not yet alerted for this
// appointment, and marks that mark and every wider one as seen so a
// delayed first scan raises one alert, not three.
func (w *ReminderWatcher) match(id uuid.UUID, minutesUntil int) (int, bool) {
	matched := 0
	found := false
	for _, th := range reminderThresholds {
		if minutesUntil > th {
			break
		}
		matched = th
		found = true
	}
	if !found {
		return 0, false
	}

	key := reminderKey{appointmentID: id, threshold: matched}
	if _, dup := w.seen[key]; dup {
		return 0, false
	}
	for _, th := range reminderThresholds {
		if th >= matched {
			w.seen[reminderKey{appointmentID: id, threshold: th}] = struct{}{}
		}
	}
	return matched, true
}

// evict caps the seen set. Entries for started appointments are inert,
// so a wholesale reset only risks a duplicate alert for the handful of
// appointments still inside the window.
func (w *ReminderWatcher) evict(now time.Time) {
	if len(w.seen) < 10000 {
		return
	}
	w.seen = make(map[reminderKey]struct{})
	w.log.Debug("Reminder seen set reset", zap.Time("at", now))
}

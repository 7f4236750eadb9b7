package scheduling

import (
	"testing"
	"time"
)

func mustTime(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse(time.RFC3339, value)
	if err != nil {
		t.Fatalf("parse time %q: %v", value, err)
	}
	return parsed
}

func TestGenerateSlots(t *testing.T) {
	open := mustTime(t, "2026-09-01T09:00:00Z")
	close := mustTime(t, "2026-09-01T17:00:00Z")

	t.Run("sixty minute service on thirty minute grid", func(t *testing.T) {
		slots := GenerateSlots(open, close, 60*time.Minute, 30*time.Minute)

		// 09:00 through 16:00 inclusive, every 30 minutes.
		if len(slots) != 15 {
			t.Fatalf("expected 15 slots, got %d", len(slots))
		}
		if !slots[0].Equal(open) {
			t.Errorf("first slot = %v, want %v", slots[0], open)
		}
		last := mustTime(t, "2026-09-01T16:00:00Z")
		if !slots[len(slots)-1].Equal(last) {
			t.Errorf("last slot = %v, want %v", slots[len(slots)-1], last)
		}
	})

	t.Run("service ending exactly at close is kept", func(t *testing.T) {
		slots := GenerateSlots(open, close, 8*time.Hour, 30*time.Minute)
		if len(slots) != 1 {
			t.Fatalf("expected exactly the opening slot, got %d", len(slots))
		}
	})

	t.Run("service longer than the day yields nothing", func(t *testing.T) {
		slots := GenerateSlots(open, close, 9*time.Hour, 30*time.Minute)
		if len(slots) != 0 {
			t.Fatalf("expected no slots, got %d", len(slots))
		}
	})
}

func TestIntervalOverlaps(t *testing.T) {
	a := Interval{
		Start: mustTime(t, "2026-09-01T10:00:00Z"),
		End:   mustTime(t, "2026-09-01T11:00:00Z"),
	}

	tests := []struct {
		name  string
		start string
		end   string
		want  bool
	}{
		{"identical", "2026-09-01T10:00:00Z", "2026-09-01T11:00:00Z", true},
		{"contained", "2026-09-01T10:15:00Z", "2026-09-01T10:45:00Z", true},
		{"straddles start", "2026-09-01T09:30:00Z", "2026-09-01T10:30:00Z", true},
		{"straddles end", "2026-09-01T10:30:00Z", "2026-09-01T11:30:00Z", true},
		{"touches end boundary", "2026-09-01T11:00:00Z", "2026-09-01T12:00:00Z", false},
		{"touches start boundary", "2026-09-01T09:00:00Z", "2026-09-01T10:00:00Z", false},
		{"fully before", "2026-09-01T08:00:00Z", "2026-09-01T09:00:00Z", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := Interval{Start: mustTime(t, tt.start), End: mustTime(t, tt.end)}
			if got := a.Overlaps(b); got != tt.want {
				t.Errorf("Overlaps = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFilterConflicts(t *testing.T) {
	open := mustTime(t, "2026-09-01T09:00:00Z")
	close := mustTime(t, "2026-09-01T17:00:00Z")
	duration := 60 * time.Minute

	candidates := GenerateSlots(open, close, duration, 30*time.Minute)

	booked := []Interval{{
		Start: mustTime(t, "2026-09-01T10:00:00Z"),
		End:   mustTime(t, "2026-09-01T11:00:00Z"),
	}}

	free := FilterConflicts(candidates, duration, booked)

	kept := make(map[string]bool, len(free))
	for _, slot := range free {
		kept[slot.Format("15:04")] = true
	}

	// 09:00 ends exactly when the booking starts; boundary touch is fine.
	if !kept["09:00"] {
		t.Error("09:00 should survive, it ends at the booking start")
	}
	// 09:30-10:30 straddles the booking start.
	if kept["09:30"] {
		t.Error("09:30 should be filtered, it overlaps the booking")
	}
	if kept["10:00"] || kept["10:30"] {
		t.Error("slots inside the booked hour should be filtered")
	}
	// 11:00 starts exactly when the booking ends.
	if !kept["11:00"] {
		t.Error("11:00 should survive, it starts at the booking end")
	}

	if len(free) != 12 {
		t.Errorf("expected 12 free slots, got %d", len(free))
	}
}

func TestFilterLeadTime(t *testing.T) {
	now := mustTime(t, "2026-09-01T09:45:00Z")
	lead := 30 * time.Minute

	candidates := []time.Time{
		mustTime(t, "2026-09-01T09:30:00Z"), // already past
		mustTime(t, "2026-09-01T10:00:00Z"), // 15 min out
		mustTime(t, "2026-09-01T10:15:00Z"), // exactly at the lead boundary
		mustTime(t, "2026-09-01T10:30:00Z"), // 45 min out
	}

	free := FilterLeadTime(candidates, now, lead)

	if len(free) != 1 {
		t.Fatalf("expected 1 slot, got %d", len(free))
	}
	want := mustTime(t, "2026-09-01T10:30:00Z")
	if !free[0].Equal(want) {
		t.Errorf("kept slot = %v, want %v", free[0], want)
	}
}

func TestWindowOn(t *testing.T) {
	loc, err := time.LoadLocation("America/Mexico_City")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}

	day := time.Date(2026, 9, 1, 0, 0, 0, 0, loc)

	open, close, err := WindowOn(day, "09:00", "18:30", loc)
	if err != nil {
		t.Fatalf("WindowOn: %v", err)
	}

	if open.Hour() != 9 || open.Minute() != 0 {
		t.Errorf("open = %v, want 09:00 wall clock", open)
	}
	if close.Hour() != 18 || close.Minute() != 30 {
		t.Errorf("close = %v, want 18:30 wall clock", close)
	}
	if open.Location() != loc {
		t.Errorf("open location = %v, want %v", open.Location(), loc)
	}

	if _, _, err := WindowOn(day, "9am", "18:30", loc); err == nil {
		t.Error("expected error for malformed open time")
	}
}

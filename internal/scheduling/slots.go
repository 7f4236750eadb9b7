// Package scheduling holds the pure slot math and the appointment
// lifecycle rules. Nothing here touches the database or the clock; all
// inputs arrive as arguments so the behavior is fully testable.
package scheduling

import (
	"fmt"
	"time"
)

// Interval is a half-open time range [Start, End).
type Interval struct {
	Start time.Time
	End   time.Time
}

// Overlaps reports whether two half-open intervals intersect. Touching
// boundaries (one ends exactly when the other starts) do not overlap.
func (i Interval) Overlaps(other Interval) bool {
	return i.Start.Before(other.End) && other.Start.Before(i.End)
}

// WindowOn resolves "HH:MM" wall-clock open/close strings onto a calendar
// date in the given location. The date's own clock fields are ignored.
func WindowOn(date time.Time, openHM, closeHM string, loc *time.Location) (time.Time, time.Time, error) {
	open, err := atWallClock(date, openHM, loc)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("parse open time %q: %w", openHM, err)
	}
	close, err := atWallClock(date, closeHM, loc)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("parse close time %q: %w", closeHM, err)
	}
	return open, close, nil
}

func atWallClock(date time.Time, hm string, loc *time.Location) (time.Time, error) {
	t, err := time.Parse("15:04", hm)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(date.Year(), date.Month(), date.Day(), t.Hour(), t.Minute(), 0, 0, loc), nil
}

// GenerateSlots returns candidate start times t within [open, close) such
// that t+duration <= close. Candidates step by granularity, not by
// duration, so slots start on fixed boundaries regardless of service
// length. Returns nil when open >= close or the duration does not fit
// the window.
func GenerateSlots(open, close time.Time, duration, granularity time.Duration) []time.Time {
	if duration <= 0 || granularity <= 0 {
		return nil
	}
	if !close.After(open) {
		return nil
	}

	var slots []time.Time
	for t := open; !t.Add(duration).After(close); t = t.Add(granularity) {
		slots = append(slots, t)
	}
	return slots
}

// FilterConflicts drops candidates whose [t, t+duration) interval
// overlaps any booked interval, preserving order. Half-open semantics: a
// slot ending exactly when a booking starts survives.
func FilterConflicts(candidates []time.Time, duration time.Duration, booked []Interval) []time.Time {
	if len(booked) == 0 {
		return candidates
	}

	var free []time.Time
	for _, t := range candidates {
		slot := Interval{Start: t, End: t.Add(duration)}
		conflict := false
		for _, b := range booked {
			if slot.Overlaps(b) {
				conflict = true
				break
			}
		}
		if !conflict {
			free = append(free, t)
		}
	}
	return free
}

// FilterLeadTime drops candidates starting at or before now+lead. Only
// applied when the requested date is today in the tenant's timezone: a
// slot 29 minutes out is rejected, one 31 minutes out is kept.
func FilterLeadTime(candidates []time.Time, now time.Time, lead time.Duration) []time.Time {
	cutoff := now.Add(lead)

	var kept []time.Time
	for _, t := range candidates {
		if t.After(cutoff) {
			kept = append(kept, t)
		}
	}
	return kept
}

package scheduling

import (
	"testing"

	"salon-booking/internal/data/entity"
)

func TestCanTransitionStaff(t *testing.T) {
	tests := []struct {
		name string
		from entity.AppointmentStatus
		to   entity.AppointmentStatus
		want bool
	}{
		{"pending to confirmed", entity.AppointmentStatusPending, entity.AppointmentStatusConfirmed, true},
		{"pending to cancelled", entity.AppointmentStatusPending, entity.AppointmentStatusCancelled, true},
		{"pending to no show", entity.AppointmentStatusPending, entity.AppointmentStatusNoShow, true},
		{"confirmed to in room", entity.AppointmentStatusConfirmed, entity.AppointmentStatusInRoom, true},
		{"confirmed to cancelled", entity.AppointmentStatusConfirmed, entity.AppointmentStatusCancelled, true},
		{"confirmed to no show", entity.AppointmentStatusConfirmed, entity.AppointmentStatusNoShow, true},
		{"in room to completed", entity.AppointmentStatusInRoom, entity.AppointmentStatusCompleted, true},
		{"pending to in room for walk-ins", entity.AppointmentStatusPending, entity.AppointmentStatusInRoom, true},
		{"confirmed to completed", entity.AppointmentStatusConfirmed, entity.AppointmentStatusCompleted, true},
		{"pending to completed skips the flow", entity.AppointmentStatusPending, entity.AppointmentStatusCompleted, false},
		{"in room to cancelled", entity.AppointmentStatusInRoom, entity.AppointmentStatusCancelled, false},
		{"in room to no show", entity.AppointmentStatusInRoom, entity.AppointmentStatusNoShow, false},
		{"completed is terminal", entity.AppointmentStatusCompleted, entity.AppointmentStatusCancelled, false},
		{"cancelled is terminal", entity.AppointmentStatusCancelled, entity.AppointmentStatusConfirmed, false},
		{"no show is terminal", entity.AppointmentStatusNoShow, entity.AppointmentStatusConfirmed, false},
		{"no self transition", entity.AppointmentStatusConfirmed, entity.AppointmentStatusConfirmed, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanTransition(tt.from, tt.to, ActorStaff); got != tt.want {
				t.Errorf("CanTransition(%s, %s, staff) = %v, want %v", tt.from, tt.to, got, tt.want)
			}
		})
	}
}

func TestCanTransitionClient(t *testing.T) {
	tests := []struct {
		name string
		from entity.AppointmentStatus
		to   entity.AppointmentStatus
		want bool
	}{
		{"pending to confirmed", entity.AppointmentStatusPending, entity.AppointmentStatusConfirmed, true},
		{"pending to cancelled", entity.AppointmentStatusPending, entity.AppointmentStatusCancelled, true},
		{"confirmed to cancelled", entity.AppointmentStatusConfirmed, entity.AppointmentStatusCancelled, true},
		{"client cannot start service", entity.AppointmentStatusConfirmed, entity.AppointmentStatusInRoom, false},
		{"client cannot complete", entity.AppointmentStatusInRoom, entity.AppointmentStatusCompleted, false},
		{"client cannot mark no show", entity.AppointmentStatusPending, entity.AppointmentStatusNoShow, false},
		{"cancelled is terminal", entity.AppointmentStatusCancelled, entity.AppointmentStatusConfirmed, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanTransition(tt.from, tt.to, ActorClient); got != tt.want {
				t.Errorf("CanTransition(%s, %s, client) = %v, want %v", tt.from, tt.to, got, tt.want)
			}
		})
	}
}

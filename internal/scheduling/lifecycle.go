package scheduling

import (
	"salon-booking/internal/data/entity"
)

// Actor identifies who is driving a lifecycle transition.
type Actor int

const (
	// ActorStaff is an authenticated staff member.
	ActorStaff Actor = iota
	// ActorClient is the unauthenticated holder of a confirmation token.
	// Clients may only confirm or cancel.
	ActorClient
)

type transition struct {
	from entity.AppointmentStatus
	to   entity.AppointmentStatus
}

// staffTransitions is the full transition table; clientTransitions is the
// subset a confirmation token may trigger.
var staffTransitions = map[transition]bool{
	{entity.AppointmentStatusPending, entity.AppointmentStatusConfirmed}:   true,
	{entity.AppointmentStatusPending, entity.AppointmentStatusCancelled}:   true,
	{entity.AppointmentStatusPending, entity.AppointmentStatusInRoom}:      true,
	{entity.AppointmentStatusPending, entity.AppointmentStatusNoShow}:      true,
	{entity.AppointmentStatusConfirmed, entity.AppointmentStatusCancelled}: true,
	{entity.AppointmentStatusConfirmed, entity.AppointmentStatusInRoom}:    true,
	{entity.AppointmentStatusConfirmed, entity.AppointmentStatusCompleted}: true,
	{entity.AppointmentStatusConfirmed, entity.AppointmentStatusNoShow}:    true,
	{entity.AppointmentStatusInRoom, entity.AppointmentStatusCompleted}:    true,
}

var clientTransitions = map[transition]bool{
	{entity.AppointmentStatusPending, entity.AppointmentStatusConfirmed}:   true,
	{entity.AppointmentStatusPending, entity.AppointmentStatusCancelled}:   true,
	{entity.AppointmentStatusConfirmed, entity.AppointmentStatusCancelled}: true,
}

// CanTransition reports whether actor may move an appointment from one
// status to another. Terminal statuses (completed, cancelled, no_show)
// admit no outgoing transition for anyone.
func CanTransition(from, to entity.AppointmentStatus, actor Actor) bool {
	t := transition{from: from, to: to}
	if actor == ActorClient {
		return clientTransitions[t]
	}
	return staffTransitions[t]
}

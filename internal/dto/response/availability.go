package response

import "time"

type SlotResponse struct {
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
}

// AvailabilityResponse distinguishes a closed day from a fully booked
// one: callers must check IsDayClosed, not the emptiness of Slots.
type AvailabilityResponse struct {
	Date        string         `json:"date"`
	IsDayClosed bool           `json:"is_day_closed"`
	Slots       []SlotResponse `json:"slots"`
}

type BookedSlotResponse struct {
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
}

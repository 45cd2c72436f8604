package scheduling

import "time"

type AvailabilityInput struct {
	BarberID   uint
	ServiceIDs []uint
	Date       time.Time
}

type Slot struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// Reason distinguishes the kinds of empty availability so callers can tell
// "pick another day" from "pick a shorter combination of services".
type Reason string

const (
	ReasonOK               Reason = "ok"
	ReasonNoShiftToday     Reason = "no_shift_today"
	ReasonInsufficientTime Reason = "insufficient_remaining_time"
	ReasonFullyBooked      Reason = "fully_booked"
)

// DayAvailability is always recomputed at query time, never persisted.
type DayAvailability struct {
	Slots  []Slot `json:"slots"`
	Reason Reason `json:"reason"`
}

package scheduling

import (
	"time"

	"github.com/chamosbarber/booking-engine/internal/models"
)

// ShiftWindow resolves a shift's "15:04" local times against a concrete
// date in the shop's location.
func ShiftWindow(shift models.Shift, date time.Time, loc *time.Location) Interval {
	return Interval{
		Start: atClock(shift.StartTime, date, loc),
		End:   atClock(shift.EndTime, date, loc),
	}
}

func atClock(hm string, date time.Time, loc *time.Location) time.Time {
	t, _ := time.Parse("15:04", hm)
	return time.Date(
		date.Year(), date.Month(), date.Day(),
		t.Hour(), t.Minute(), 0, 0,
		loc,
	)
}

// WithinAnyShift reports whether the interval lies entirely inside one of
// the barber's active shifts for that weekday.
func WithinAnyShift(shifts []models.Shift, iv Interval, loc *time.Location) bool {
	for _, sh := range shifts {
		if !sh.Active || sh.StartTime == "" || sh.EndTime == "" {
			continue
		}
		if ShiftWindow(sh, iv.Start, loc).Contains(iv) {
			return true
		}
	}
	return false
}

// BlockedFor keeps the blocks applicable to one barber: barber-specific
// entries plus shop-wide ones (nil barber id).
func BlockedFor(blocks []models.BlockedInterval, barberID uint) []Interval {
	var out []Interval
	for _, b := range blocks {
		if b.BarberID != nil && *b.BarberID != barberID {
			continue
		}
		out = append(out, Interval{Start: b.StartTime, End: b.EndTime})
	}
	return out
}

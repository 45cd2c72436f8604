package scheduling

import (
	"sort"
	"time"
)

// MaxFreeGap returns the longest contiguous free stretch inside window
// once the busy intervals are subtracted. Used to tell "no remaining
// stretch fits the selected services" apart from plainly full days.
func MaxFreeGap(window Interval, busy []Interval) time.Duration {
	clipped := make([]Interval, 0, len(busy))
	for _, iv := range busy {
		if !iv.Overlaps(window) {
			continue
		}
		c := iv
		if c.Start.Before(window.Start) {
			c.Start = window.Start
		}
		if c.End.After(window.End) {
			c.End = window.End
		}
		clipped = append(clipped, c)
	}

	sort.Slice(clipped, func(i, j int) bool {
		return clipped[i].Start.Before(clipped[j].Start)
	})

	var max time.Duration
	cursor := window.Start

	for _, iv := range clipped {
		if iv.Start.After(cursor) {
			if gap := iv.Start.Sub(cursor); gap > max {
				max = gap
			}
		}
		if iv.End.After(cursor) {
			cursor = iv.End
		}
	}

	if gap := window.End.Sub(cursor); gap > max {
		max = gap
	}

	return max
}

package scheduling_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	scheduling "github.com/chamosbarber/booking-engine/internal/domain/scheduling"
)

func TestMaxFreeGap(t *testing.T) {
	window := iv(9, 0, 19, 0)

	t.Run("empty day", func(t *testing.T) {
		assert.Equal(t, 10*time.Hour, scheduling.MaxFreeGap(window, nil))
	})

	t.Run("single booking splits the window", func(t *testing.T) {
		busy := []scheduling.Interval{iv(12, 0, 13, 0)}
		// maior lado: 13:00 → 19:00
		assert.Equal(t, 6*time.Hour, scheduling.MaxFreeGap(window, busy))
	})

	t.Run("unsorted and overlapping busy intervals", func(t *testing.T) {
		busy := []scheduling.Interval{
			iv(15, 0, 16, 0),
			iv(9, 0, 11, 0),
			iv(10, 30, 12, 0),
		}
		// livre: 12:00–15:00 e 16:00–19:00
		assert.Equal(t, 3*time.Hour, scheduling.MaxFreeGap(window, busy))
	})

	t.Run("busy outside the window is ignored", func(t *testing.T) {
		busy := []scheduling.Interval{iv(7, 0, 8, 0), iv(20, 0, 21, 0)}
		assert.Equal(t, 10*time.Hour, scheduling.MaxFreeGap(window, busy))
	})

	t.Run("busy clipped at the edges", func(t *testing.T) {
		busy := []scheduling.Interval{iv(8, 0, 10, 0), iv(18, 0, 20, 0)}
		assert.Equal(t, 8*time.Hour, scheduling.MaxFreeGap(window, busy))
	})

	t.Run("fully covered window", func(t *testing.T) {
		busy := []scheduling.Interval{iv(9, 0, 19, 0)}
		assert.Equal(t, time.Duration(0), scheduling.MaxFreeGap(window, busy))
	})
}

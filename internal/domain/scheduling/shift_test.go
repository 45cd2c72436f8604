package scheduling_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	scheduling "github.com/chamosbarber/booking-engine/internal/domain/scheduling"
	"github.com/chamosbarber/booking-engine/internal/models"
)

func TestShiftWindow(t *testing.T) {
	loc, err := time.LoadLocation("America/Caracas")
	require.NoError(t, err)

	date := time.Date(2026, 9, 7, 0, 0, 0, 0, loc)
	shift := models.Shift{StartTime: "09:00", EndTime: "19:00", Active: true}

	window := scheduling.ShiftWindow(shift, date, loc)

	assert.Equal(t, time.Date(2026, 9, 7, 9, 0, 0, 0, loc), window.Start)
	assert.Equal(t, time.Date(2026, 9, 7, 19, 0, 0, 0, loc), window.End)
}

func TestWithinAnyShift(t *testing.T) {
	shifts := []models.Shift{
		{StartTime: "09:00", EndTime: "13:00", Active: true},
		{StartTime: "15:00", EndTime: "19:00", Active: true},
		{StartTime: "06:00", EndTime: "08:00", Active: false},
	}

	t.Run("inside morning shift", func(t *testing.T) {
		assert.True(t, scheduling.WithinAnyShift(shifts, iv(9, 0, 9, 35), time.UTC))
	})

	t.Run("ends exactly at shift end", func(t *testing.T) {
		assert.True(t, scheduling.WithinAnyShift(shifts, iv(18, 25, 19, 0), time.UTC))
	})

	t.Run("spills past shift end", func(t *testing.T) {
		assert.False(t, scheduling.WithinAnyShift(shifts, iv(12, 45, 13, 20), time.UTC))
	})

	t.Run("falls in the gap between shifts", func(t *testing.T) {
		assert.False(t, scheduling.WithinAnyShift(shifts, iv(13, 30, 14, 5), time.UTC))
	})

	t.Run("inactive shift does not count", func(t *testing.T) {
		assert.False(t, scheduling.WithinAnyShift(shifts, iv(6, 30, 7, 0), time.UTC))
	})
}

func TestBlockedFor(t *testing.T) {
	barberA := uint(1)
	barberB := uint(2)

	blocks := []models.BlockedInterval{
		{BarberID: &barberA, StartTime: at(12, 0), EndTime: at(13, 0), Kind: models.BlockKindLunch},
		{BarberID: &barberB, StartTime: at(14, 0), EndTime: at(15, 0), Kind: models.BlockKindBreak},
		{BarberID: nil, StartTime: at(17, 0), EndTime: at(18, 0), Kind: models.BlockKindHoliday},
	}

	got := scheduling.BlockedFor(blocks, barberA)

	// o bloqueio da loja inteira (barber nil) também se aplica
	require.Len(t, got, 2)
	assert.Equal(t, at(12, 0), got[0].Start)
	assert.Equal(t, at(17, 0), got[1].Start)
}

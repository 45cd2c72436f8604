package booking

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListAppointments(t *testing.T) {
	loc := caracas(t)
	repo := newFakeRepo()
	commit := newCommitUC(repo, mondayAt(loc, 7, 0))

	book := func(date, tm, phone string) {
		in := baseInput()
		in.Date = date
		in.Time = tm
		in.CustomerPhone = phone
		_, err := commit.Execute(context.Background(), in)
		require.NoError(t, err)
	}

	book("2026-09-07", "11:00", "0414 123 4567")
	book("2026-09-07", "09:00", "0424 765 4321")
	book("2026-09-14", "10:00", "0414 123 4567")

	t.Run("by date, ordered by start", func(t *testing.T) {
		uc := NewListAppointmentsByDate(repo)
		got, err := uc.Execute(context.Background(), 1, mondayAt(loc, 0, 0))
		require.NoError(t, err)

		require.Len(t, got, 2)
		assert.True(t, got[0].StartTime.Equal(mondayAt(loc, 9, 0)))
		assert.True(t, got[1].StartTime.Equal(mondayAt(loc, 11, 0)))
		assert.Equal(t, "Luis", got[0].CustomerName)
		assert.Equal(t, []string{"Corte clásico"}, got[0].ServiceNames)
	})

	t.Run("by month includes every monday", func(t *testing.T) {
		uc := NewListAppointmentsByMonth(repo)
		got, err := uc.Execute(context.Background(), 1, 2026, 9)
		require.NoError(t, err)

		assert.Len(t, got, 3)
	})

	t.Run("other barber sees nothing", func(t *testing.T) {
		uc := NewListAppointmentsByDate(repo)
		got, err := uc.Execute(context.Background(), 2, mondayAt(loc, 0, 0))
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}

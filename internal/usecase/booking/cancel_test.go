package booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/chamosbarber/booking-engine/internal/domain/scheduling"
	"github.com/chamosbarber/booking-engine/internal/httperr"
	"github.com/chamosbarber/booking-engine/internal/models"
)

func bookOne(t *testing.T, repo *fakeRepo) *models.Appointment {
	t.Helper()
	loc := caracas(t)

	uc := newCommitUC(repo, mondayAt(loc, 7, 0))
	ap, err := uc.Execute(context.Background(), baseInput())
	require.NoError(t, err)
	return ap
}

func TestCancelAppointment(t *testing.T) {
	t.Run("confirmed is cancelled and interval released", func(t *testing.T) {
		repo := newFakeRepo()
		ap := bookOne(t, repo)

		uc := NewCancelAppointment(repo, nil, nil)
		got, err := uc.Execute(context.Background(), 1, ap.BarberID, ap.ID)
		require.NoError(t, err)

		assert.Equal(t, string(domain.StatusCancelled), got.Status)
		require.NotNil(t, got.CancelledAt)

		// o intervalo volta a aceitar reservas
		loc := caracas(t)
		commit := newCommitUC(repo, mondayAt(loc, 7, 0))
		_, err = commit.Execute(context.Background(), baseInput())
		require.NoError(t, err)
	})

	t.Run("completed cannot be cancelled", func(t *testing.T) {
		repo := newFakeRepo()
		ap := bookOne(t, repo)

		complete := NewCompleteAppointment(repo, nil)
		_, err := complete.Execute(context.Background(), 1, ap.BarberID, ap.ID)
		require.NoError(t, err)

		cancel := NewCancelAppointment(repo, nil, nil)
		_, err = cancel.Execute(context.Background(), 1, ap.BarberID, ap.ID)
		assert.True(t, httperr.IsBusiness(err, "invalid_state"))
	})

	t.Run("wrong barber", func(t *testing.T) {
		repo := newFakeRepo()
		ap := bookOne(t, repo)

		uc := NewCancelAppointment(repo, nil, nil)
		_, err := uc.Execute(context.Background(), 1, ap.BarberID+1, ap.ID)
		assert.True(t, httperr.IsBusiness(err, "appointment_not_found"))
	})
}

func TestCancelByReference(t *testing.T) {
	t.Run("matching phone cancels", func(t *testing.T) {
		repo := newFakeRepo()
		ap := bookOne(t, repo)

		uc := NewCancelByReference(repo, nil, nil)

		// formato diferente, mesmo telefone depois de normalizar
		got, err := uc.Execute(context.Background(), ap.Reference, "+58 414 123 4567")
		require.NoError(t, err)
		assert.Equal(t, string(domain.StatusCancelled), got.Status)
	})

	t.Run("wrong phone is rejected", func(t *testing.T) {
		repo := newFakeRepo()
		ap := bookOne(t, repo)

		uc := NewCancelByReference(repo, nil, nil)
		_, err := uc.Execute(context.Background(), ap.Reference, "0424 999 9999")
		assert.True(t, httperr.IsBusiness(err, "appointment_not_found"))
	})

	t.Run("unknown reference", func(t *testing.T) {
		repo := newFakeRepo()
		bookOne(t, repo)

		uc := NewCancelByReference(repo, nil, nil)
		_, err := uc.Execute(context.Background(), "missing-ref", "0414 123 4567")
		assert.True(t, httperr.IsBusiness(err, "appointment_not_found"))
	})
}

func TestCompleteAndNoShow(t *testing.T) {
	t.Run("complete", func(t *testing.T) {
		repo := newFakeRepo()
		ap := bookOne(t, repo)

		uc := NewCompleteAppointment(repo, nil)
		got, err := uc.Execute(context.Background(), 1, ap.BarberID, ap.ID)
		require.NoError(t, err)

		assert.Equal(t, string(domain.StatusCompleted), got.Status)
		require.NotNil(t, got.CompletedAt)
	})

	t.Run("no show", func(t *testing.T) {
		repo := newFakeRepo()
		ap := bookOne(t, repo)

		uc := NewMarkNoShow(repo, nil)
		got, err := uc.Execute(context.Background(), 1, ap.BarberID, ap.ID)
		require.NoError(t, err)

		assert.Equal(t, string(domain.StatusNoShow), got.Status)
	})

	t.Run("cancelled cannot be completed", func(t *testing.T) {
		repo := newFakeRepo()
		ap := bookOne(t, repo)

		cancel := NewCancelAppointment(repo, nil, nil)
		_, err := cancel.Execute(context.Background(), 1, ap.BarberID, ap.ID)
		require.NoError(t, err)

		complete := NewCompleteAppointment(repo, nil)
		_, err = complete.Execute(context.Background(), 1, ap.BarberID, ap.ID)
		assert.True(t, httperr.IsBusiness(err, "invalid_state"))
	})
}

func TestLookupAppointmentsByPhone(t *testing.T) {
	t.Run("returns upcoming bookings", func(t *testing.T) {
		repo := newFakeRepo()
		ap := bookOne(t, repo)

		loc := caracas(t)
		uc := NewLookupAppointmentsByPhone(repo)
		uc.now = func() time.Time { return mondayAt(loc, 7, 0) }

		got, err := uc.Execute(context.Background(), "0414 123 4567")
		require.NoError(t, err)

		require.Len(t, got, 1)
		assert.Equal(t, ap.Reference, got[0].Reference)
	})

	t.Run("invalid phone", func(t *testing.T) {
		repo := newFakeRepo()

		uc := NewLookupAppointmentsByPhone(repo)
		_, err := uc.Execute(context.Background(), "12")
		assert.True(t, httperr.IsBusiness(err, "invalid_phone"))
	})
}

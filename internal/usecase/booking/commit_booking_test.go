package booking

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/chamosbarber/booking-engine/internal/domain/scheduling"
	"github.com/chamosbarber/booking-engine/internal/httperr"
	"github.com/chamosbarber/booking-engine/internal/models"
)

func newCommitUC(repo *fakeRepo, now time.Time) *CommitBooking {
	uc := NewCommitBooking(repo, nil, nil, testConfig())
	uc.now = func() time.Time { return now }
	return uc
}

func baseInput() CommitBookingInput {
	return CommitBookingInput{
		BarberID:      1,
		ServiceIDs:    []uint{1}, // 35min / 1000
		CustomerName:  "Luis",
		CustomerPhone: "0414 123 4567",
		Date:          "2026-09-07",
		Time:          "10:00",
	}
}

func TestCommitBooking_Success(t *testing.T) {
	loc := caracas(t)
	repo := newFakeRepo()
	uc := newCommitUC(repo, mondayAt(loc, 7, 0))

	ap, err := uc.Execute(context.Background(), baseInput())
	require.NoError(t, err)

	// pending é promovido a confirmed dentro do insert atômico
	assert.Equal(t, string(domain.StatusConfirmed), ap.Status)
	assert.NotEmpty(t, ap.Reference)

	assert.True(t, ap.StartTime.Equal(mondayAt(loc, 10, 0)))
	assert.True(t, ap.EndTime.Equal(mondayAt(loc, 10, 35)))

	// duração e preço congelados do catálogo no momento da reserva
	assert.Equal(t, 35, ap.DurationMin)
	assert.Equal(t, int64(1000), ap.PriceCents)
	require.Len(t, ap.Services, 1)
	assert.Equal(t, "Corte clásico", ap.Services[0].Name)

	require.Len(t, repo.appointments, 1)
	require.Len(t, repo.customers, 1)
	assert.Equal(t, "+584141234567", repo.customers[0].Phone)
}

func TestCommitBooking_OverlapRejectedBackToBackAllowed(t *testing.T) {
	loc := caracas(t)
	repo := newFakeRepo()
	confirmedAppointment(repo, 1, mondayAt(loc, 10, 0), mondayAt(loc, 10, 35))

	uc := newCommitUC(repo, mondayAt(loc, 7, 0))

	overlap := baseInput()
	overlap.ServiceIDs = []uint{3} // 30min
	overlap.Time = "10:15"

	_, err := uc.Execute(context.Background(), overlap)
	assert.True(t, httperr.IsBusiness(err, "slot_no_longer_available"))

	backToBack := overlap
	backToBack.Time = "10:35"

	ap, err := uc.Execute(context.Background(), backToBack)
	require.NoError(t, err)
	assert.True(t, ap.StartTime.Equal(mondayAt(loc, 10, 35)))
	assert.True(t, ap.EndTime.Equal(mondayAt(loc, 11, 5)))
}

func TestCommitBooking_BlockedDayRejected(t *testing.T) {
	loc := caracas(t)
	repo := newFakeRepo()

	barberID := uint(1)
	repo.blocks = append(repo.blocks, models.BlockedInterval{
		ID:        1,
		BarberID:  &barberID,
		StartTime: mondayAt(loc, 0, 0),
		EndTime:   mondayAt(loc, 0, 0).Add(24 * time.Hour),
		Kind:      models.BlockKindHoliday,
	})

	uc := newCommitUC(repo, mondayAt(loc, 7, 0))

	_, err := uc.Execute(context.Background(), baseInput())
	assert.True(t, httperr.IsBusiness(err, "slot_no_longer_available"))
}

func TestCommitBooking_TooSoon(t *testing.T) {
	loc := caracas(t)
	repo := newFakeRepo()

	// 09:45 + 30min de antecedência: 10:00 já é tarde demais pra reservar
	uc := newCommitUC(repo, mondayAt(loc, 9, 45))

	_, err := uc.Execute(context.Background(), baseInput())
	assert.True(t, httperr.IsBusiness(err, "too_soon"))
}

func TestCommitBooking_OutsideWorkingHours(t *testing.T) {
	loc := caracas(t)
	repo := newFakeRepo()
	uc := newCommitUC(repo, mondayAt(loc, 7, 0))

	t.Run("spills past shift end", func(t *testing.T) {
		in := baseInput()
		in.Time = "18:30" // terminaria 19:05
		_, err := uc.Execute(context.Background(), in)
		assert.True(t, httperr.IsBusiness(err, "outside_working_hours"))
	})

	t.Run("day without shift", func(t *testing.T) {
		in := baseInput()
		in.Date = "2026-09-08" // terça, sem turno cadastrado
		_, err := uc.Execute(context.Background(), in)
		assert.True(t, httperr.IsBusiness(err, "outside_working_hours"))
	})

	t.Run("last fitting start is allowed", func(t *testing.T) {
		in := baseInput()
		in.Time = "18:25" // termina exatamente 19:00
		ap, err := uc.Execute(context.Background(), in)
		require.NoError(t, err)
		assert.True(t, ap.EndTime.Equal(mondayAt(loc, 19, 0)))
	})
}

func TestCommitBooking_UnknownService(t *testing.T) {
	loc := caracas(t)
	repo := newFakeRepo()
	uc := newCommitUC(repo, mondayAt(loc, 7, 0))

	in := baseInput()
	in.ServiceIDs = []uint{99}

	_, err := uc.Execute(context.Background(), in)
	assert.True(t, httperr.IsBusiness(err, "unknown_service"))
}

func TestCommitBooking_BarberNotReceivingBookings(t *testing.T) {
	loc := caracas(t)
	repo := newFakeRepo()
	uc := newCommitUC(repo, mondayAt(loc, 7, 0))

	// toggle do próprio barbeiro desligado; admin flag segue ativo
	b := repo.barbers[1]
	b.Available = false
	repo.barbers[1] = b

	_, err := uc.Execute(context.Background(), baseInput())
	assert.True(t, httperr.IsBusiness(err, "barber_unavailable"))
	assert.Empty(t, repo.appointments)

	// religado, a mesma reserva passa
	b.Available = true
	repo.barbers[1] = b

	_, err = uc.Execute(context.Background(), baseInput())
	assert.NoError(t, err)
}

func TestCommitBooking_InvalidPhone(t *testing.T) {
	loc := caracas(t)
	repo := newFakeRepo()
	uc := newCommitUC(repo, mondayAt(loc, 7, 0))

	in := baseInput()
	in.CustomerPhone = "123"

	_, err := uc.Execute(context.Background(), in)
	assert.True(t, httperr.IsBusiness(err, "invalid_phone"))
}

func TestCommitBooking_ActiveLimitPerPhone(t *testing.T) {
	loc := caracas(t)
	repo := newFakeRepo()
	uc := newCommitUC(repo, mondayAt(loc, 7, 0))

	times := []string{"09:00", "10:00", "11:00", "13:00", "14:00"}
	for _, tm := range times {
		in := baseInput()
		in.Time = tm
		_, err := uc.Execute(context.Background(), in)
		require.NoError(t, err)
	}

	in := baseInput()
	in.Time = "15:00"
	_, err := uc.Execute(context.Background(), in)
	assert.True(t, httperr.IsBusiness(err, "booking_limit_reached"))

	// outro telefone segue livre
	other := baseInput()
	other.Time = "15:00"
	other.CustomerPhone = "0424 765 4321"
	_, err = uc.Execute(context.Background(), other)
	require.NoError(t, err)
}

func TestCommitBooking_ConcurrentIdenticalSlot(t *testing.T) {
	loc := caracas(t)
	repo := newFakeRepo()
	uc := newCommitUC(repo, mondayAt(loc, 7, 0))

	const workers = 2
	errs := make([]error, workers)
	phones := []string{"0414 111 1111", "0424 222 2222"}

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			in := baseInput()
			in.CustomerPhone = phones[i]
			_, errs[i] = uc.Execute(context.Background(), in)
		}(i)
	}
	wg.Wait()

	var ok, conflicts int
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case httperr.IsBusiness(err, "slot_no_longer_available"):
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}

	assert.Equal(t, 1, ok, "exatamente uma das duas reservas ganha o slot")
	assert.Equal(t, 1, conflicts)
	require.Len(t, repo.appointments, 1)
	assert.Equal(t, string(domain.StatusConfirmed), repo.appointments[0].Status)
}

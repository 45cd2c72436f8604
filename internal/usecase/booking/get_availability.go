package booking

import (
	"context"
	"time"

	"github.com/chamosbarber/booking-engine/internal/cache"
	"github.com/chamosbarber/booking-engine/internal/config"
	domain "github.com/chamosbarber/booking-engine/internal/domain/scheduling"
	"github.com/chamosbarber/booking-engine/internal/models"
	"github.com/chamosbarber/booking-engine/internal/timezone"
)

type GetAvailability struct {
	repo  domain.Repository
	cache *cache.AvailabilityCache
	cfg   *config.Config
	now   func() time.Time
}

func NewGetAvailability(
	repo domain.Repository,
	availCache *cache.AvailabilityCache,
	cfg *config.Config,
) *GetAvailability {
	return &GetAvailability{
		repo:  repo,
		cache: availCache,
		cfg:   cfg,
		now:   time.Now,
	}
}

func (uc *GetAvailability) Execute(
	ctx context.Context,
	in domain.AvailabilityInput,
) (domain.DayAvailability, error) {

	empty := domain.DayAvailability{Slots: []domain.Slot{}}

	shop, err := uc.repo.GetShop(ctx)
	if err != nil {
		return empty, err
	}

	// --------------------------------------------------
	// 1️⃣ Duração agregada dos serviços selecionados
	// --------------------------------------------------
	services, err := uc.repo.ServicesByID(ctx, in.ServiceIDs)
	if err != nil {
		return empty, err
	}

	sel, err := domain.ResolveSelection(in.ServiceIDs, services)
	if err != nil {
		return empty, err
	}

	loc := timezone.Location(shop.Timezone)
	day := in.Date.In(loc).Format("2006-01-02")

	if cached, ok := uc.cache.Get(ctx, in.BarberID, day, sel.DurationMin); ok {
		return *cached, nil
	}

	// --------------------------------------------------
	// 2️⃣ Turnos do dia
	// --------------------------------------------------
	weekday := int(in.Date.In(loc).Weekday())

	shifts, err := uc.repo.ShiftsFor(ctx, in.BarberID, weekday)
	if err != nil {
		return empty, err
	}

	shifts = activeShifts(shifts)
	if len(shifts) == 0 {
		out := domain.DayAvailability{
			Slots:  []domain.Slot{},
			Reason: domain.ReasonNoShiftToday,
		}
		uc.cache.Put(ctx, in.BarberID, day, sel.DurationMin, out)
		return out, nil
	}

	// --------------------------------------------------
	// 3️⃣ Bloqueios + agendamentos existentes
	// --------------------------------------------------
	dayStart := time.Date(
		in.Date.In(loc).Year(), in.Date.In(loc).Month(), in.Date.In(loc).Day(),
		0, 0, 0, 0,
		loc,
	)
	dayEnd := dayStart.Add(24 * time.Hour)

	blocks, err := uc.repo.BlockedIntervalsFor(ctx, in.BarberID, dayStart, dayEnd)
	if err != nil {
		return empty, err
	}
	blocked := domain.BlockedFor(blocks, in.BarberID)

	appointments, err := uc.repo.AppointmentsFor(ctx, in.BarberID, dayStart, dayEnd)
	if err != nil {
		return empty, err
	}

	booked := make([]domain.Interval, 0, len(appointments))
	for _, ap := range appointments {
		booked = append(booked, domain.Interval{Start: ap.StartTime, End: ap.EndTime})
	}

	// --------------------------------------------------
	// 4️⃣ Antecedência mínima (nunca ofertar o passado)
	// --------------------------------------------------
	minAdvance := shop.MinAdvanceMinutes
	if minAdvance <= 0 {
		minAdvance = uc.cfg.MinAdvanceMinutes
	}
	earliest := uc.now().In(loc).Add(time.Duration(minAdvance) * time.Minute)

	step := time.Duration(shop.SlotGranularityMinutes) * time.Minute
	if step <= 0 {
		step = time.Duration(uc.cfg.SlotGranularityMinutes) * time.Minute
	}

	// --------------------------------------------------
	// 5️⃣ Geração de candidatos por turno
	// --------------------------------------------------
	duration := sel.Duration()
	busy := append(append([]domain.Interval{}, blocked...), booked...)

	var slots []domain.Slot
	var maxGap time.Duration

	for _, sh := range shifts {
		window := domain.ShiftWindow(sh, dayStart, loc)

		if gap := domain.MaxFreeGap(clipToEarliest(window, earliest), busy); gap > maxGap {
			maxGap = gap
		}

		for _, cur := range candidateStarts(window, duration, step) {

			candidate := domain.NewInterval(cur, duration)

			if cur.Before(earliest) {
				continue
			}

			if overlapsAny(candidate, blocked) || overlapsAny(candidate, booked) {
				continue
			}

			slots = append(slots, domain.Slot{
				Start: cur.Format("15:04"),
				End:   candidate.End.Format("15:04"),
			})
		}
	}

	out := domain.DayAvailability{Slots: slots, Reason: domain.ReasonOK}
	if len(slots) == 0 {
		out.Slots = []domain.Slot{}

		// Sobrou tempo livre, só que nenhum trecho cabe a seleção:
		// esse dia não está cheio, a combinação é que é longa demais.
		if maxGap > 0 && maxGap < duration {
			out.Reason = domain.ReasonInsufficientTime
		} else {
			out.Reason = domain.ReasonFullyBooked
		}
	}

	uc.cache.Put(ctx, in.BarberID, day, sel.DurationMin, out)
	return out, nil
}

func activeShifts(shifts []models.Shift) []models.Shift {
	out := shifts[:0]
	for _, sh := range shifts {
		if sh.Active && sh.StartTime != "" && sh.EndTime != "" {
			out = append(out, sh)
		}
	}
	return out
}

// candidateStarts walks the shift at granularity steps and always offers
// the last start that still fits (shift end minus duration), even when the
// grid overshoots it. A 09:00–19:00 shift with a 35min selection and 15min
// steps ends at 18:25, not 18:15.
func candidateStarts(window domain.Interval, duration, step time.Duration) []time.Time {
	last := window.End.Add(-duration)
	if last.Before(window.Start) {
		return nil
	}

	var out []time.Time
	for cur := window.Start; !cur.After(last); cur = cur.Add(step) {
		out = append(out, cur)
	}

	if len(out) == 0 || !out[len(out)-1].Equal(last) {
		out = append(out, last)
	}

	return out
}

func overlapsAny(iv domain.Interval, others []domain.Interval) bool {
	for _, o := range others {
		if iv.Overlaps(o) {
			return true
		}
	}
	return false
}

func clipToEarliest(window domain.Interval, earliest time.Time) domain.Interval {
	if earliest.After(window.Start) {
		window.Start = earliest
	}
	if window.Start.After(window.End) {
		window.Start = window.End
	}
	return window
}

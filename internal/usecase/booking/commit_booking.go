package booking

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/chamosbarber/booking-engine/internal/audit"
	"github.com/chamosbarber/booking-engine/internal/cache"
	"github.com/chamosbarber/booking-engine/internal/config"
	domain "github.com/chamosbarber/booking-engine/internal/domain/scheduling"
	"github.com/chamosbarber/booking-engine/internal/httperr"
	"github.com/chamosbarber/booking-engine/internal/models"
	"github.com/chamosbarber/booking-engine/internal/timezone"
	"github.com/chamosbarber/booking-engine/internal/validators"
)

// ======================================================
// INPUT
// ======================================================

type CommitBookingInput struct {
	BarberID   uint
	ServiceIDs []uint

	CustomerName  string
	CustomerPhone string
	CustomerEmail string

	Date  string
	Time  string
	Notes string
}

// ======================================================
// USE CASE
// ======================================================

// CommitBooking closes the race between the availability query and the
// actual booking: everything is re-validated against current state and
// the ledger insert is one atomic check-then-insert per barber. Losing
// that race is a normal outcome (slot_no_longer_available), not a fault.
type CommitBooking struct {
	repo  domain.Repository
	cache *cache.AvailabilityCache
	audit *audit.Dispatcher
	cfg   *config.Config
	now   func() time.Time
}

func NewCommitBooking(
	repo domain.Repository,
	availCache *cache.AvailabilityCache,
	auditDispatcher *audit.Dispatcher,
	cfg *config.Config,
) *CommitBooking {
	return &CommitBooking{
		repo:  repo,
		cache: availCache,
		audit: auditDispatcher,
		cfg:   cfg,
		now:   time.Now,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CommitBooking) Execute(
	ctx context.Context,
	in CommitBookingInput,
) (*models.Appointment, error) {

	shop, err := uc.repo.GetShop(ctx)
	if err != nil {
		return nil, err
	}

	loc := timezone.Location(shop.Timezone)

	// --------------------------------------------------
	// 1️⃣ Data / hora no timezone da barbearia
	// --------------------------------------------------
	start, err := time.ParseInLocation(
		"2006-01-02 15:04",
		in.Date+" "+in.Time,
		loc,
	)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date_or_time")
	}

	// --------------------------------------------------
	// 2️⃣ Antecedência mínima
	// --------------------------------------------------
	minAdvance := shop.MinAdvanceMinutes
	if minAdvance <= 0 {
		minAdvance = uc.cfg.MinAdvanceMinutes
	}

	now := uc.now().In(loc)
	if start.Before(now.Add(time.Duration(minAdvance) * time.Minute)) {
		return nil, httperr.ErrBusiness("too_soon")
	}

	// --------------------------------------------------
	// 3️⃣ Duração e preço recomputados do catálogo atual
	// --------------------------------------------------
	services, err := uc.repo.ServicesByID(ctx, in.ServiceIDs)
	if err != nil {
		return nil, err
	}

	sel, err := domain.ResolveSelection(in.ServiceIDs, services)
	if err != nil {
		return nil, err
	}

	candidate := domain.NewInterval(start, sel.Duration())

	// --------------------------------------------------
	// 4️⃣ Barbeiro ativo e recebendo reservas
	// --------------------------------------------------
	barber, err := uc.repo.GetBarber(ctx, in.BarberID)
	if err != nil {
		return nil, httperr.ErrBusiness("barber_not_found")
	}

	// toggle do próprio barbeiro, separado do flag admin
	if !barber.Available {
		return nil, httperr.ErrBusiness("barber_unavailable")
	}

	// --------------------------------------------------
	// 5️⃣ Turno do dia
	// --------------------------------------------------
	shifts, err := uc.repo.ShiftsFor(ctx, barber.ID, int(start.Weekday()))
	if err != nil {
		return nil, err
	}

	if !domain.WithinAnyShift(shifts, candidate, loc) {
		return nil, httperr.ErrBusiness("outside_working_hours")
	}

	// --------------------------------------------------
	// 6️⃣ Bloqueios (feriados, pausas, manutenção)
	// --------------------------------------------------
	blocks, err := uc.repo.BlockedIntervalsFor(
		ctx,
		barber.ID,
		candidate.Start,
		candidate.End,
	)
	if err != nil {
		return nil, err
	}

	for _, block := range domain.BlockedFor(blocks, barber.ID) {
		if candidate.Overlaps(block) {
			return nil, httperr.ErrBusiness("slot_no_longer_available")
		}
	}

	// --------------------------------------------------
	// 7️⃣ Limite de citas ativas por telefone
	// --------------------------------------------------
	phone := validators.NormalizePhone(in.CustomerPhone, "")
	if !validators.IsValidPhone(phone) {
		return nil, httperr.ErrBusiness("invalid_phone")
	}

	maxActive := uc.cfg.MaxActiveAppointments
	if maxActive > 0 {
		active, err := uc.repo.CountActiveForPhone(ctx, phone, now)
		if err != nil {
			return nil, err
		}
		if active >= int64(maxActive) {
			return nil, httperr.ErrBusiness("booking_limit_reached")
		}
	}

	// --------------------------------------------------
	// 8️⃣ Cliente (get or create)
	// --------------------------------------------------
	customer, err := uc.repo.GetOrCreateCustomer(
		ctx,
		in.CustomerName,
		phone,
		in.CustomerEmail,
	)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 9️⃣ Inserção atômica no ledger (pending → confirmed)
	// --------------------------------------------------
	ap := &models.Appointment{
		Reference:   uuid.NewString(),
		BarberID:    barber.ID,
		CustomerID:  customer.ID,
		StartTime:   candidate.Start,
		EndTime:     candidate.End,
		DurationMin: sel.DurationMin,
		PriceCents:  sel.PriceCents,
		Status:      string(domain.StatusPending),
		Notes:       in.Notes,
		Services:    frozenServices(sel),
	}

	if err := uc.repo.Insert(ctx, ap); err != nil {
		if httperr.IsBusiness(err, "overlap_conflict") {
			return nil, httperr.ErrBusiness("slot_no_longer_available")
		}
		return nil, err
	}

	// --------------------------------------------------
	// 🔟 Auditoria + invalidação do cache
	// --------------------------------------------------
	uc.cache.Invalidate(ctx, barber.ID, candidate.Start.Format("2006-01-02"))

	uc.audit.Dispatch(audit.Event{
		ShopID:   shop.ID,
		Action:   "appointment_created",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return ap, nil
}

func frozenServices(sel domain.Selection) []models.AppointmentService {
	out := make([]models.AppointmentService, 0, len(sel.Services))
	for i, svc := range sel.Services {
		out = append(out, models.AppointmentService{
			ServiceID:   svc.ID,
			Position:    i,
			Name:        svc.Name,
			DurationMin: svc.DurationMin,
			PriceCents:  svc.PriceCents,
		})
	}
	return out
}

package booking

import (
	"context"

	"github.com/chamosbarber/booking-engine/internal/audit"
	"github.com/chamosbarber/booking-engine/internal/cache"
	domain "github.com/chamosbarber/booking-engine/internal/domain/scheduling"
	"github.com/chamosbarber/booking-engine/internal/httperr"
	"github.com/chamosbarber/booking-engine/internal/models"
	"github.com/chamosbarber/booking-engine/internal/timezone"
	"github.com/chamosbarber/booking-engine/internal/validators"
)

type CancelAppointment struct {
	repo  domain.Repository
	cache *cache.AvailabilityCache
	audit *audit.Dispatcher
}

func NewCancelAppointment(
	repo domain.Repository,
	availCache *cache.AvailabilityCache,
	auditDispatcher *audit.Dispatcher,
) *CancelAppointment {
	return &CancelAppointment{
		repo:  repo,
		cache: availCache,
		audit: auditDispatcher,
	}
}

// Execute cancels an appointment from the admin agenda. Cancellation
// releases the interval back to availability.
func (uc *CancelAppointment) Execute(
	ctx context.Context,
	userID uint,
	barberID uint,
	appointmentID uint,
) (*models.Appointment, error) {

	shop, err := uc.repo.GetShop(ctx)
	if err != nil {
		return nil, err
	}

	ap, err := uc.repo.GetForBarber(ctx, appointmentID, barberID)
	if err != nil {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}

	now := timezone.NowIn(shop.Timezone)
	if err := domain.Cancel(ap, now); err != nil {
		return nil, err
	}

	if err := uc.repo.Update(ctx, ap); err != nil {
		return nil, err
	}

	loc := timezone.Location(shop.Timezone)
	uc.cache.Invalidate(ctx, ap.BarberID, ap.StartTime.In(loc).Format("2006-01-02"))

	uc.audit.Dispatch(audit.Event{
		ShopID:   shop.ID,
		UserID:   &userID,
		Action:   "appointment_cancelled",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return ap, nil
}

// CancelByReference is the public path: customers cancel their own
// booking with the reference code plus the phone it was made with.
type CancelByReference struct {
	repo  domain.Repository
	cache *cache.AvailabilityCache
	audit *audit.Dispatcher
}

func NewCancelByReference(
	repo domain.Repository,
	availCache *cache.AvailabilityCache,
	auditDispatcher *audit.Dispatcher,
) *CancelByReference {
	return &CancelByReference{
		repo:  repo,
		cache: availCache,
		audit: auditDispatcher,
	}
}

func (uc *CancelByReference) Execute(
	ctx context.Context,
	reference string,
	phone string,
) (*models.Appointment, error) {

	shop, err := uc.repo.GetShop(ctx)
	if err != nil {
		return nil, err
	}

	ap, err := uc.repo.GetByReference(ctx, reference)
	if err != nil {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}

	if ap.Customer.Phone != validators.NormalizePhone(phone, "") {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}

	now := timezone.NowIn(shop.Timezone)
	if err := domain.Cancel(ap, now); err != nil {
		return nil, err
	}

	if err := uc.repo.Update(ctx, ap); err != nil {
		return nil, err
	}

	loc := timezone.Location(shop.Timezone)
	uc.cache.Invalidate(ctx, ap.BarberID, ap.StartTime.In(loc).Format("2006-01-02"))

	uc.audit.Dispatch(audit.Event{
		ShopID:   shop.ID,
		Action:   "appointment_cancelled_by_customer",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return ap, nil
}

package booking

import (
	"context"
	"time"

	domain "github.com/chamosbarber/booking-engine/internal/domain/scheduling"
	"github.com/chamosbarber/booking-engine/internal/httperr"
	"github.com/chamosbarber/booking-engine/internal/models"
	"github.com/chamosbarber/booking-engine/internal/timezone"
	"github.com/chamosbarber/booking-engine/internal/validators"
)

// LookupAppointmentsByPhone lets a customer consult their upcoming
// bookings without any login, identified by phone only.
type LookupAppointmentsByPhone struct {
	repo domain.Repository
	now  func() time.Time
}

func NewLookupAppointmentsByPhone(
	repo domain.Repository,
) *LookupAppointmentsByPhone {
	return &LookupAppointmentsByPhone{repo: repo, now: time.Now}
}

func (uc *LookupAppointmentsByPhone) Execute(
	ctx context.Context,
	phone string,
) ([]models.Appointment, error) {

	normalized := validators.NormalizePhone(phone, "")
	if !validators.IsValidPhone(normalized) {
		return nil, httperr.ErrBusiness("invalid_phone")
	}

	shop, err := uc.repo.GetShop(ctx)
	if err != nil {
		return nil, err
	}

	now := uc.now().In(timezone.Location(shop.Timezone))

	return uc.repo.ListAppointmentsByPhone(ctx, normalized, now)
}

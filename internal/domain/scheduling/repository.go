package scheduling

import (
	"context"
	"time"

	"github.com/chamosbarber/booking-engine/internal/models"
)

// The engine holds no state of its own: everything is read through these
// injected stores, and the ledger Insert is the sole mutation point.

type ServiceCatalog interface {
	ServicesByID(
		ctx context.Context,
		ids []uint,
	) ([]models.Service, error)
}

type CalendarStore interface {
	ShiftsFor(
		ctx context.Context,
		barberID uint,
		weekday int,
	) ([]models.Shift, error)

	BlockedIntervalsFor(
		ctx context.Context,
		barberID uint,
		from time.Time,
		to time.Time,
	) ([]models.BlockedInterval, error)
}

type AppointmentLedger interface {
	// AppointmentsFor returns pending and confirmed appointments whose
	// start falls in [from, to), ordered by start.
	AppointmentsFor(
		ctx context.Context,
		barberID uint,
		from time.Time,
		to time.Time,
	) ([]models.Appointment, error)

	// Insert is the atomic check-then-insert: it must fail with
	// overlap_conflict when the interval intersects any pending or
	// confirmed appointment for the same barber, serialized per barber.
	Insert(
		ctx context.Context,
		ap *models.Appointment,
	) error

	GetByReference(
		ctx context.Context,
		reference string,
	) (*models.Appointment, error)

	GetForBarber(
		ctx context.Context,
		appointmentID uint,
		barberID uint,
	) (*models.Appointment, error)

	Update(
		ctx context.Context,
		ap *models.Appointment,
	) error

	CountActiveForPhone(
		ctx context.Context,
		phone string,
		after time.Time,
	) (int64, error)
}

// Repository aggregates the stores plus the lookups the booking flows
// need around them.
type Repository interface {
	ServiceCatalog
	CalendarStore
	AppointmentLedger

	GetShop(ctx context.Context) (*models.Shop, error)

	GetBarber(
		ctx context.Context,
		barberID uint,
	) (*models.Barber, error)

	GetOrCreateCustomer(
		ctx context.Context,
		name string,
		phone string,
		email string,
	) (*models.Customer, error)

	ListAppointmentsForPeriod(
		ctx context.Context,
		barberID uint,
		from time.Time,
		to time.Time,
	) ([]models.Appointment, error)

	ListAppointmentsByPhone(
		ctx context.Context,
		phone string,
		after time.Time,
	) ([]models.Appointment, error)
}

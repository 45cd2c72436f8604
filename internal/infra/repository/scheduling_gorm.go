package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/chamosbarber/booking-engine/internal/domain/scheduling"
	"github.com/chamosbarber/booking-engine/internal/httperr"
	"github.com/chamosbarber/booking-engine/internal/models"
)

type SchedulingGormRepository struct {
	db *gorm.DB
}

func NewSchedulingGormRepository(db *gorm.DB) *SchedulingGormRepository {
	return &SchedulingGormRepository{db: db}
}

// --------------------------------------------------
// Shop
// --------------------------------------------------

func (r *SchedulingGormRepository) GetShop(
	ctx context.Context,
) (*models.Shop, error) {

	var shop models.Shop
	if err := r.db.WithContext(ctx).First(&shop).Error; err != nil {
		return nil, err
	}
	return &shop, nil
}

// --------------------------------------------------
// Barber
// --------------------------------------------------

func (r *SchedulingGormRepository) GetBarber(
	ctx context.Context,
	barberID uint,
) (*models.Barber, error) {

	var barber models.Barber
	if err := r.db.WithContext(ctx).
		Where("id = ? AND active = true", barberID).
		First(&barber).Error; err != nil {
		return nil, err
	}
	return &barber, nil
}

// --------------------------------------------------
// Service Catalog
// --------------------------------------------------

func (r *SchedulingGormRepository) ServicesByID(
	ctx context.Context,
	ids []uint,
) ([]models.Service, error) {

	var services []models.Service
	if err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&services).Error; err != nil {
		return nil, httperr.ErrStorage(err)
	}
	return services, nil
}

// --------------------------------------------------
// Calendar Store
// --------------------------------------------------

func (r *SchedulingGormRepository) ShiftsFor(
	ctx context.Context,
	barberID uint,
	weekday int,
) ([]models.Shift, error) {

	var shifts []models.Shift
	if err := r.db.WithContext(ctx).
		Where("barber_id = ? AND weekday = ? AND active = true", barberID, weekday).
		Order("start_time ASC").
		Find(&shifts).Error; err != nil {
		return nil, httperr.ErrStorage(err)
	}
	return shifts, nil
}

func (r *SchedulingGormRepository) BlockedIntervalsFor(
	ctx context.Context,
	barberID uint,
	from time.Time,
	to time.Time,
) ([]models.BlockedInterval, error) {

	var blocks []models.BlockedInterval
	if err := r.db.WithContext(ctx).
		Where(
			"(barber_id = ? OR barber_id IS NULL) AND start_time < ? AND end_time > ?",
			barberID, to, from,
		).
		Order("start_time ASC").
		Find(&blocks).Error; err != nil {
		return nil, httperr.ErrStorage(err)
	}
	return blocks, nil
}

// --------------------------------------------------
// Appointment Ledger
// --------------------------------------------------

func (r *SchedulingGormRepository) AppointmentsFor(
	ctx context.Context,
	barberID uint,
	from time.Time,
	to time.Time,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Select("id", "start_time", "end_time", "status").
		Where(
			"barber_id = ? AND status IN ? AND start_time >= ? AND start_time < ?",
			barberID, activeStatuses(), from, to,
		).
		Order("start_time ASC").
		Find(&apps).Error; err != nil {
		return nil, httperr.ErrStorage(err)
	}
	return apps, nil
}

// Insert is the atomic check-then-insert. The barber row lock is the
// per-barber serialization point: two commits for the same barber queue
// behind it, so the overlap count and the create cannot interleave.
// A pending appointment is promoted to confirmed inside the same
// transaction; there is no separate confirmation round trip.
func (r *SchedulingGormRepository) Insert(
	ctx context.Context,
	ap *models.Appointment,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		var barber models.Barber
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", ap.BarberID).
			First(&barber).Error; err != nil {
			return err
		}

		var count int64
		if err := tx.
			Model(&models.Appointment{}).
			Where(
				"barber_id = ? AND status IN ? AND start_time < ? AND end_time > ?",
				ap.BarberID,
				activeStatuses(),
				ap.EndTime,
				ap.StartTime,
			).
			Count(&count).Error; err != nil {
			return httperr.ErrStorage(err)
		}

		if count > 0 {
			return httperr.ErrBusiness("overlap_conflict")
		}

		if ap.Status == string(domain.StatusPending) || ap.Status == "" {
			ap.Status = string(domain.StatusConfirmed)
		}

		if err := tx.Create(ap).Error; err != nil {
			return httperr.ErrStorage(err)
		}
		return nil
	})
}

func (r *SchedulingGormRepository) GetByReference(
	ctx context.Context,
	reference string,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Services").
		Preload("Customer").
		Where("reference = ?", reference).
		First(&ap).Error; err != nil {
		return nil, err
	}
	return &ap, nil
}

func (r *SchedulingGormRepository) GetForBarber(
	ctx context.Context,
	appointmentID uint,
	barberID uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Where("id = ? AND barber_id = ?", appointmentID, barberID).
		First(&ap).Error; err != nil {
		return nil, err
	}
	return &ap, nil
}

func (r *SchedulingGormRepository) Update(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return httperr.ErrStorage(r.db.WithContext(ctx).Save(ap).Error)
}

func (r *SchedulingGormRepository) CountActiveForPhone(
	ctx context.Context,
	phone string,
	after time.Time,
) (int64, error) {

	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Joins("JOIN customers ON customers.id = appointments.customer_id").
		Where(
			"customers.phone = ? AND appointments.status IN ? AND appointments.start_time >= ?",
			phone, activeStatuses(), after,
		).
		Count(&count).Error

	return count, httperr.ErrStorage(err)
}

// --------------------------------------------------
// Customer
// --------------------------------------------------

func (r *SchedulingGormRepository) GetOrCreateCustomer(
	ctx context.Context,
	name string,
	phone string,
	email string,
) (*models.Customer, error) {

	var customer models.Customer
	err := r.db.WithContext(ctx).
		Where("phone = ?", phone).
		First(&customer).Error

	if err == nil {
		return &customer, nil
	}

	customer = models.Customer{
		Name:  name,
		Phone: phone,
		Email: email,
	}

	if err := r.db.WithContext(ctx).Create(&customer).Error; err != nil {
		return nil, httperr.ErrStorage(err)
	}

	return &customer, nil
}

// --------------------------------------------------
// Listings
// --------------------------------------------------

func (r *SchedulingGormRepository) ListAppointmentsForPeriod(
	ctx context.Context,
	barberID uint,
	from time.Time,
	to time.Time,
) ([]models.Appointment, error) {

	var apps []models.Appointment

	err := r.db.WithContext(ctx).
		Preload("Customer").
		Preload("Services").
		Where(
			"barber_id = ? AND start_time >= ? AND start_time < ?",
			barberID,
			from,
			to,
		).
		Order("start_time ASC").
		Find(&apps).Error

	if err != nil {
		return nil, httperr.ErrStorage(err)
	}

	return apps, nil
}

func (r *SchedulingGormRepository) ListAppointmentsByPhone(
	ctx context.Context,
	phone string,
	after time.Time,
) ([]models.Appointment, error) {

	var apps []models.Appointment

	err := r.db.WithContext(ctx).
		Preload("Barber").
		Preload("Services").
		Joins("JOIN customers ON customers.id = appointments.customer_id").
		Where(
			"customers.phone = ? AND appointments.start_time >= ?",
			phone, after,
		).
		Order("appointments.start_time ASC").
		Find(&apps).Error

	if err != nil {
		return nil, httperr.ErrStorage(err)
	}

	return apps, nil
}

func activeStatuses() []string {
	statuses := domain.ActiveStatuses()
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}

// Compile-time check
var _ domain.Repository = (*SchedulingGormRepository)(nil)

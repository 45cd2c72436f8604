package booking

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	domain "github.com/chamosbarber/booking-engine/internal/domain/scheduling"
	"github.com/chamosbarber/booking-engine/internal/httperr"
	"github.com/chamosbarber/booking-engine/internal/models"
)

// fakeRepo é um ledger em memória com a mesma semântica do repositório
// gorm: Insert é o único ponto de mutação e serializa por mutex, como o
// lock de linha do barbeiro em produção.
type fakeRepo struct {
	mu sync.Mutex

	shop     models.Shop
	barbers  map[uint]models.Barber
	services []models.Service
	shifts   []models.Shift
	blocks   []models.BlockedInterval

	customers    []models.Customer
	appointments []models.Appointment
	nextID       uint
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		shop: models.Shop{
			ID:                     1,
			Name:                   "Chamos Barber",
			Slug:                   "chamos-barber",
			Timezone:               "America/Caracas",
			MinAdvanceMinutes:      30,
			SlotGranularityMinutes: 15,
		},
		barbers: map[uint]models.Barber{
			1: {ID: 1, ShopID: 1, Name: "Adonis", Slug: "adonis", Active: true, Available: true},
		},
		services: []models.Service{
			{ID: 1, ShopID: 1, Name: "Corte clásico", DurationMin: 35, PriceCents: 1000, Active: true},
			{ID: 2, ShopID: 1, Name: "Barba", DurationMin: 20, PriceCents: 600, Active: true},
			{ID: 3, ShopID: 1, Name: "Corte rápido", DurationMin: 30, PriceCents: 800, Active: true},
		},
		shifts: []models.Shift{
			{ID: 1, BarberID: 1, Weekday: 1, StartTime: "09:00", EndTime: "19:00", Active: true},
		},
		nextID: 1,
	}
}

func (r *fakeRepo) GetShop(_ context.Context) (*models.Shop, error) {
	shop := r.shop
	return &shop, nil
}

func (r *fakeRepo) GetBarber(_ context.Context, barberID uint) (*models.Barber, error) {
	b, ok := r.barbers[barberID]
	if !ok || !b.Active {
		return nil, errors.New("barber not found")
	}
	return &b, nil
}

func (r *fakeRepo) ServicesByID(_ context.Context, ids []uint) ([]models.Service, error) {
	want := make(map[uint]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}

	var out []models.Service
	for _, svc := range r.services {
		if want[svc.ID] {
			out = append(out, svc)
		}
	}
	return out, nil
}

func (r *fakeRepo) ShiftsFor(_ context.Context, barberID uint, weekday int) ([]models.Shift, error) {
	var out []models.Shift
	for _, sh := range r.shifts {
		if sh.BarberID == barberID && sh.Weekday == weekday && sh.Active {
			out = append(out, sh)
		}
	}
	return out, nil
}

func (r *fakeRepo) BlockedIntervalsFor(_ context.Context, barberID uint, from, to time.Time) ([]models.BlockedInterval, error) {
	var out []models.BlockedInterval
	for _, b := range r.blocks {
		if b.BarberID != nil && *b.BarberID != barberID {
			continue
		}
		if b.StartTime.Before(to) && b.EndTime.After(from) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *fakeRepo) AppointmentsFor(_ context.Context, barberID uint, from, to time.Time) ([]models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []models.Appointment
	for _, ap := range r.appointments {
		if ap.BarberID != barberID || !domain.Status(ap.Status).Active() {
			continue
		}
		if !ap.StartTime.Before(from) && ap.StartTime.Before(to) {
			out = append(out, ap)
		}
	}

	sort.Slice(out, func(i, j int) bool { return out[i].StartTime.Before(out[j].StartTime) })
	return out, nil
}

func (r *fakeRepo) Insert(_ context.Context, ap *models.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	candidate := domain.Interval{Start: ap.StartTime, End: ap.EndTime}
	for _, other := range r.appointments {
		if other.BarberID != ap.BarberID || !domain.Status(other.Status).Active() {
			continue
		}
		if candidate.Overlaps(domain.Interval{Start: other.StartTime, End: other.EndTime}) {
			return httperr.ErrBusiness("overlap_conflict")
		}
	}

	if ap.Status == string(domain.StatusPending) || ap.Status == "" {
		ap.Status = string(domain.StatusConfirmed)
	}

	ap.ID = r.nextID
	r.nextID++
	r.appointments = append(r.appointments, *ap)
	return nil
}

func (r *fakeRepo) GetByReference(_ context.Context, reference string) (*models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, ap := range r.appointments {
		if ap.Reference == reference {
			out := ap
			out.Customer = r.customerByID(ap.CustomerID)
			return &out, nil
		}
	}
	return nil, errors.New("appointment not found")
}

func (r *fakeRepo) GetForBarber(_ context.Context, appointmentID, barberID uint) (*models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, ap := range r.appointments {
		if ap.ID == appointmentID && ap.BarberID == barberID {
			out := ap
			return &out, nil
		}
	}
	return nil, errors.New("appointment not found")
}

func (r *fakeRepo) Update(_ context.Context, ap *models.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.appointments {
		if r.appointments[i].ID == ap.ID {
			r.appointments[i] = *ap
			return nil
		}
	}
	return errors.New("appointment not found")
}

func (r *fakeRepo) CountActiveForPhone(_ context.Context, phone string, after time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var count int64
	for _, ap := range r.appointments {
		if !domain.Status(ap.Status).Active() || ap.StartTime.Before(after) {
			continue
		}
		if r.customerByID(ap.CustomerID).Phone == phone {
			count++
		}
	}
	return count, nil
}

func (r *fakeRepo) GetOrCreateCustomer(_ context.Context, name, phone, email string) (*models.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, c := range r.customers {
		if c.Phone == phone {
			out := c
			return &out, nil
		}
	}

	customer := models.Customer{
		ID:    uint(len(r.customers) + 1),
		Name:  name,
		Phone: phone,
		Email: email,
	}
	r.customers = append(r.customers, customer)
	return &customer, nil
}

func (r *fakeRepo) ListAppointmentsForPeriod(_ context.Context, barberID uint, from, to time.Time) ([]models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []models.Appointment
	for _, ap := range r.appointments {
		if ap.BarberID != barberID {
			continue
		}
		if !ap.StartTime.Before(from) && ap.StartTime.Before(to) {
			ap.Customer = r.customerByID(ap.CustomerID)
			out = append(out, ap)
		}
	}

	sort.Slice(out, func(i, j int) bool { return out[i].StartTime.Before(out[j].StartTime) })
	return out, nil
}

func (r *fakeRepo) ListAppointmentsByPhone(_ context.Context, phone string, after time.Time) ([]models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []models.Appointment
	for _, ap := range r.appointments {
		if ap.StartTime.Before(after) {
			continue
		}
		if r.customerByID(ap.CustomerID).Phone == phone {
			out = append(out, ap)
		}
	}

	sort.Slice(out, func(i, j int) bool { return out[i].StartTime.Before(out[j].StartTime) })
	return out, nil
}

func (r *fakeRepo) customerByID(id uint) models.Customer {
	for _, c := range r.customers {
		if c.ID == id {
			return c
		}
	}
	return models.Customer{}
}

var _ domain.Repository = (*fakeRepo)(nil)

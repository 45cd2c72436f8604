package scheduling

import (
	"time"

	"github.com/chamosbarber/booking-engine/internal/httperr"
	"github.com/chamosbarber/booking-engine/internal/models"
)

// ===============================
// Service selection aggregation
// ===============================

// Selection is the resolved multi-service choice. The aggregated duration
// is booked as one indivisible interval, no gaps between services.
type Selection struct {
	Services    []models.Service
	DurationMin int
	PriceCents  int64
}

func (s Selection) Duration() time.Duration {
	return time.Duration(s.DurationMin) * time.Minute
}

// ResolveSelection validates the requested service ids against the catalog
// rows and aggregates duration and price. The rows must come from the
// catalog in request order.
func ResolveSelection(ids []uint, found []models.Service) (Selection, error) {
	if len(ids) == 0 {
		return Selection{}, httperr.ErrBusiness("invalid_service_selection")
	}

	byID := make(map[uint]models.Service, len(found))
	for _, svc := range found {
		byID[svc.ID] = svc
	}

	sel := Selection{Services: make([]models.Service, 0, len(ids))}
	for _, id := range ids {
		svc, ok := byID[id]
		if !ok || !svc.Active {
			return Selection{}, httperr.ErrBusiness("unknown_service")
		}
		sel.Services = append(sel.Services, svc)
		sel.DurationMin += svc.DurationMin
		sel.PriceCents += svc.PriceCents
	}

	if sel.DurationMin <= 0 {
		return Selection{}, httperr.ErrBusiness("invalid_service_selection")
	}

	return sel, nil
}

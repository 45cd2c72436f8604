package jobs

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	"github.com/chamosbarber/booking-engine/internal/cache"
	"github.com/chamosbarber/booking-engine/internal/config"
	domain "github.com/chamosbarber/booking-engine/internal/domain/scheduling"
	"github.com/chamosbarber/booking-engine/internal/models"
	"github.com/chamosbarber/booking-engine/internal/timezone"
)

// Sweeper keeps the ledger tidy in the background: pending holds that
// were never confirmed are released, and confirmed appointments whose day
// ended without completion are flagged as no-shows.
type Sweeper struct {
	db    *gorm.DB
	cache *cache.AvailabilityCache
	cfg   *config.Config
	cron  *cron.Cron
}

func NewSweeper(db *gorm.DB, availCache *cache.AvailabilityCache, cfg *config.Config) *Sweeper {
	return &Sweeper{
		db:    db,
		cache: availCache,
		cfg:   cfg,
		cron:  cron.New(),
	}
}

func (s *Sweeper) Start() {
	// Holds expire quickly; no-show marking only needs a nightly pass.
	s.cron.AddFunc("*/5 * * * *", s.ExpirePendingHolds)
	s.cron.AddFunc("0 3 * * *", s.MarkOverdueNoShows)

	s.cron.Start()
	log.Println("appointment sweeper started")
}

func (s *Sweeper) Stop() {
	s.cron.Stop()
}

// ExpirePendingHolds cancels pending appointments older than the hold
// TTL, releasing their intervals back to availability.
func (s *Sweeper) ExpirePendingHolds() {
	cutoff := time.Now().Add(-time.Duration(s.cfg.PendingHoldMinutes) * time.Minute)

	var stale []models.Appointment
	if err := s.db.
		Where("status = ? AND created_at < ?", string(domain.StatusPending), cutoff).
		Find(&stale).Error; err != nil {
		log.Printf("sweeper: failed to list stale holds: %v", err)
		return
	}

	now := timezone.Now()
	for _, ap := range stale {
		ap := ap
		if err := domain.Cancel(&ap, now); err != nil {
			continue
		}
		if err := s.db.Save(&ap).Error; err != nil {
			log.Printf("sweeper: failed to expire hold %d: %v", ap.ID, err)
			continue
		}

		s.cache.Invalidate(
			context.Background(),
			ap.BarberID,
			ap.StartTime.Format("2006-01-02"),
		)
	}

	if len(stale) > 0 {
		log.Printf("sweeper: expired %d pending holds", len(stale))
	}
}

// MarkOverdueNoShows flags confirmed appointments that ended before
// today without being completed or cancelled.
func (s *Sweeper) MarkOverdueNoShows() {
	now := timezone.Now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	result := s.db.
		Model(&models.Appointment{}).
		Where("status = ? AND end_time < ?", string(domain.StatusConfirmed), dayStart).
		Updates(map[string]any{
			"status":     string(domain.StatusNoShow),
			"no_show_at": now,
		})

	if result.Error != nil {
		log.Printf("sweeper: failed to mark no-shows: %v", result.Error)
		return
	}

	if result.RowsAffected > 0 {
		log.Printf("sweeper: marked %d no-shows", result.RowsAffected)
	}
}

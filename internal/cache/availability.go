package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/chamosbarber/booking-engine/internal/config"
	"github.com/chamosbarber/booking-engine/internal/domain/scheduling"
)

// AvailabilityCache memoizes computed day availability. Entries are keyed
// by a per-barber/day version counter: any booking mutation bumps the
// version, so older entries simply stop being addressed and expire by TTL.
// Stale reads are acceptable; the commit path always re-validates.
type AvailabilityCache struct {
	client *redis.Client
	ttl    time.Duration
}

func New(cfg *config.Config) *AvailabilityCache {
	if cfg.RedisAddr == "" {
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPass,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Printf("redis unavailable, availability cache disabled: %v", err)
		return nil
	}

	return &AvailabilityCache{
		client: client,
		ttl:    time.Duration(cfg.AvailabilityCacheTTL) * time.Second,
	}
}

func (c *AvailabilityCache) Get(
	ctx context.Context,
	barberID uint,
	day string,
	durationMin int,
) (*scheduling.DayAvailability, bool) {

	if c == nil {
		return nil, false
	}

	key, err := c.entryKey(ctx, barberID, day, durationMin)
	if err != nil {
		return nil, false
	}

	raw, err := c.client.Get(ctx, key).Result()
	if err != nil {
		return nil, false
	}

	var availability scheduling.DayAvailability
	if err := json.Unmarshal([]byte(raw), &availability); err != nil {
		return nil, false
	}

	return &availability, true
}

func (c *AvailabilityCache) Put(
	ctx context.Context,
	barberID uint,
	day string,
	durationMin int,
	availability scheduling.DayAvailability,
) {
	if c == nil {
		return
	}

	key, err := c.entryKey(ctx, barberID, day, durationMin)
	if err != nil {
		return
	}

	raw, err := json.Marshal(availability)
	if err != nil {
		return
	}

	if err := c.client.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		log.Printf("availability cache set failed: %v", err)
	}
}

// Invalidate bumps the barber/day version after a commit or cancel.
func (c *AvailabilityCache) Invalidate(ctx context.Context, barberID uint, day string) {
	if c == nil {
		return
	}

	if err := c.client.Incr(ctx, c.versionKey(barberID, day)).Err(); err != nil {
		log.Printf("availability cache invalidate failed: %v", err)
	}
}

func (c *AvailabilityCache) versionKey(barberID uint, day string) string {
	return fmt.Sprintf("avail:ver:%d:%s", barberID, day)
}

func (c *AvailabilityCache) entryKey(
	ctx context.Context,
	barberID uint,
	day string,
	durationMin int,
) (string, error) {

	ver, err := c.client.Get(ctx, c.versionKey(barberID, day)).Result()
	if err == redis.Nil {
		ver = "0"
	} else if err != nil {
		return "", err
	}

	return fmt.Sprintf("avail:%d:%s:%d:v%s", barberID, day, durationMin, ver), nil
}

package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Roster caches the serialized today-roster response in redis. Every
// successful check-in or check-out invalidates the day's entry, so the
// store stays the source of truth. All methods are safe on a nil
// receiver; a nil cache means caching is off.
type Roster struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRoster(rdb *redis.Client, ttl time.Duration) *Roster {
	if rdb == nil {
		return nil
	}
	return &Roster{rdb: rdb, ttl: ttl}
}

func key(date string) string { return "roster:" + date }

func (c *Roster) Get(ctx context.Context, date string) ([]byte, bool) {
	if c == nil {
		return nil, false
	}
	b, err := c.rdb.Get(ctx, key(date)).Bytes()
	if err != nil {
		return nil, false
	}
	return b, true
}

func (c *Roster) Set(ctx context.Context, date string, payload []byte) {
	if c == nil {
		return
	}
	_ = c.rdb.Set(ctx, key(date), payload, c.ttl).Err()
}

func (c *Roster) Invalidate(ctx context.Context, date string) {
	if c == nil {
		return
	}
	_ = c.rdb.Del(ctx, key(date)).Err()
}

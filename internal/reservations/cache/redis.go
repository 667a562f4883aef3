package cache

import (
	"context"
	"encoding/json"
	"time"

	"reservationmanager/pkg/logger"
	"reservationmanager/pkg/model"

	"github.com/go-redis/redis/v8"
)

const keyPrefix = "reservation:"

type redisCache struct {
	client *redis.Client
	ttl    time.Duration
	log    *logger.Logger
}

// NewRedis returns a Redis-backed cache. Every failure is advisory: errors
// are logged and reported as a miss, because a cache problem must never turn
// into an incorrect response.
func NewRedis(client *redis.Client, ttl time.Duration, log *logger.Logger) ReservationCache {
	return &redisCache{
		client: client,
		ttl:    ttl,
		log:    log,
	}
}

func (c *redisCache) Get(ctx context.Context, id string) (*model.Reservation, bool) {
	data, err := c.client.Get(ctx, keyPrefix+id).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.log.Warn("Reservation cache read failed", "id", id, "error", err)
		}
		return nil, false
	}

	var reservation model.Reservation
	if err := json.Unmarshal(data, &reservation); err != nil {
		c.log.Warn("Reservation cache entry corrupt, evicting", "id", id, "error", err)
		c.Evict(ctx, id)
		return nil, false
	}

	return &reservation, true
}

func (c *redisCache) Put(ctx context.Context, reservation *model.Reservation) {
	if reservation == nil || reservation.ID == "" {
		return
	}

	data, err := json.Marshal(reservation)
	if err != nil {
		c.log.Warn("Failed to encode reservation for cache", "id", reservation.ID, "error", err)
		return
	}

	if err := c.client.Set(ctx, keyPrefix+reservation.ID, data, c.ttl).Err(); err != nil {
		c.log.Warn("Reservation cache write failed", "id", reservation.ID, "error", err)
	}
}

func (c *redisCache) Evict(ctx context.Context, id string) {
	if err := c.client.Del(ctx, keyPrefix+id).Err(); err != nil {
		c.log.Warn("Reservation cache eviction failed", "id", id, "error", err)
	}
}

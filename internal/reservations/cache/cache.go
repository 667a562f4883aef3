package cache

import (
	"context"
	"sync"

	"reservationmanager/pkg/model"
)

// ReservationCache is a derived, invalidateable view of the reservation store
// keyed by id. It is never authoritative: validation always re-reads the
// store inside its transaction, so staleness here is tolerated.
type ReservationCache interface {
	Get(ctx context.Context, id string) (*model.Reservation, bool)
	Put(ctx context.Context, reservation *model.Reservation)
	Evict(ctx context.Context, id string)
}

type memoryCache struct {
	mu      sync.RWMutex
	entries map[string]model.Reservation
}

// NewMemory returns an in-process cache backed by a map. Suitable for
// single-node deployments and tests.
func NewMemory() ReservationCache {
	return &memoryCache{
		entries: make(map[string]model.Reservation),
	}
}

func (c *memoryCache) Get(_ context.Context, id string) (*model.Reservation, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[id]
	if !ok {
		return nil, false
	}
	// Copy out so callers cannot mutate the cached value.
	copied := entry
	return &copied, true
}

func (c *memoryCache) Put(_ context.Context, reservation *model.Reservation) {
	if reservation == nil || reservation.ID == "" {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[reservation.ID] = *reservation
}

func (c *memoryCache) Evict(_ context.Context, id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, id)
}

package cache

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"agromarket/internal/dispatch"
	"agromarket/internal/metrics"
	"agromarket/internal/repository"
)

type PickupLister interface {
	ListActive(ctx context.Context) ([]*repository.Pickup, error)
}

// PickupCache holds the active (non-terminal) pickups. The dispatch service
// writes through after every commit, so a cache hit is as fresh as the
// database row it mirrors.
type PickupCache struct {
	mu    sync.RWMutex
	cache map[int64]*repository.Pickup
	repo  PickupLister
}

func NewPickupCache(repo PickupLister) *PickupCache {
	return &PickupCache{
		cache: make(map[int64]*repository.Pickup),
		repo:  repo,
	}
}

func (c *PickupCache) LoadInitialData(ctx context.Context) error {
	pickups, err := c.repo.ListActive(ctx)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for _, pickup := range pickups {
		pickupCopy := *pickup
		c.cache[pickup.ID] = &pickupCopy
	}
	metrics.PickupCacheItems.Set(float64(len(c.cache)))
	zap.L().Info("pickup cache loaded", zap.Int("items", len(c.cache)))
	return nil
}

func (c *PickupCache) Get(pickupID int64) (*repository.Pickup, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	pickup, found := c.cache[pickupID]
	if !found {
		return nil, false
	}
	pickupCopy := *pickup
	return &pickupCopy, true
}

// Set stores an active pickup and evicts a terminal one.
func (c *PickupCache) Set(pickup *repository.Pickup) {
	if dispatch.PickupStatus(pickup.Status).IsTerminal() {
		c.Delete(pickup.ID)
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	pickupCopy := *pickup
	c.cache[pickup.ID] = &pickupCopy
	metrics.PickupCacheItems.Set(float64(len(c.cache)))
}

func (c *PickupCache) Delete(pickupID int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.cache, pickupID)
	metrics.PickupCacheItems.Set(float64(len(c.cache)))
}

func (c *PickupCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.cache)
}

package cache

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agromarket/internal/repository"
)

type stubLister struct {
	pickups []*repository.Pickup
	err     error
}

func (s *stubLister) ListActive(context.Context) ([]*repository.Pickup, error) {
	return s.pickups, s.err
}

func TestPickupCache_LoadInitialData(t *testing.T) {
	t.Parallel()

	t.Run("success", func(t *testing.T) {
		t.Parallel()
		cache := NewPickupCache(&stubLister{pickups: []*repository.Pickup{
			{ID: 1, Status: "pending"},
			{ID: 2, Status: "assigned"},
		}})

		require.NoError(t, cache.LoadInitialData(context.Background()))

		assert.Equal(t, 2, cache.Len())
		pickup, found := cache.Get(1)
		require.True(t, found)
		assert.Equal(t, "pending", pickup.Status)
	})

	t.Run("repo error", func(t *testing.T) {
		t.Parallel()
		dbErr := errors.New("connection refused")
		cache := NewPickupCache(&stubLister{err: dbErr})

		assert.ErrorIs(t, cache.LoadInitialData(context.Background()), dbErr)
		assert.Zero(t, cache.Len())
	})
}

func TestPickupCache_SetEvictsTerminal(t *testing.T) {
	t.Parallel()
	cache := NewPickupCache(&stubLister{})

	cache.Set(&repository.Pickup{ID: 1, Status: "assigned"})
	assert.Equal(t, 1, cache.Len())

	cache.Set(&repository.Pickup{ID: 1, Status: "completed"})
	_, found := cache.Get(1)
	assert.False(t, found)
	assert.Zero(t, cache.Len())

	// a terminal pickup never enters the cache in the first place
	cache.Set(&repository.Pickup{ID: 2, Status: "cancelled"})
	assert.Zero(t, cache.Len())
}

func TestPickupCache_GetReturnsCopy(t *testing.T) {
	t.Parallel()
	cache := NewPickupCache(&stubLister{})
	cache.Set(&repository.Pickup{ID: 1, Status: "pending", PickupLocation: "North Market"})

	first, found := cache.Get(1)
	require.True(t, found)
	first.Status = "mutated"

	second, found := cache.Get(1)
	require.True(t, found)
	assert.Equal(t, "pending", second.Status)
}

func TestPickupCache_ConcurrentAccess(t *testing.T) {
	t.Parallel()
	cache := NewPickupCache(&stubLister{})

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int64) {
			defer wg.Done()
			for j := int64(0); j < 100; j++ {
				cache.Set(&repository.Pickup{ID: n*100 + j, Status: "pending"})
				cache.Get(n*100 + j)
				cache.Delete(n*100 + j)
			}
		}(int64(i))
	}
	wg.Wait()

	assert.Zero(t, cache.Len())
}

package dispatch

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agromarket/internal/repository"
)

func TestAvailabilityTracker(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	driverID := int64(7)

	setup := func(legacy bool) (*fakeStore, *AvailabilityTracker) {
		store := newFakeStore()
		pickups := &fakePickups{store: store}
		drivers := &fakeDrivers{store: store}
		return store, NewAvailabilityTracker(pickups, drivers, legacy)
	}

	t.Run("mark assigned sets busy", func(t *testing.T) {
		t.Parallel()
		store, tracker := setup(false)
		store.drivers[7] = &repository.DriverDetails{UserID: 7, AvailabilityStatus: string(DriverAvailable)}

		require.NoError(t, tracker.MarkAssignedTx(ctx, nil, 7))

		assert.Equal(t, string(DriverBusy), store.drivers[7].AvailabilityStatus)
	})

	t.Run("reevaluate releases at zero active", func(t *testing.T) {
		t.Parallel()
		store, tracker := setup(false)
		driver := &repository.DriverDetails{UserID: 7, AvailabilityStatus: string(DriverBusy)}
		store.drivers[7] = driver
		store.pickups[1] = &repository.Pickup{ID: 1, AssignedTo: &driverID, Status: string(StatusCompleted)}

		require.NoError(t, tracker.ReevaluateTx(ctx, nil, driver))

		assert.Equal(t, string(DriverAvailable), store.drivers[7].AvailabilityStatus)
		assert.Equal(t, string(DriverAvailable), driver.AvailabilityStatus)
	})

	t.Run("reevaluate keeps busy with active pickups", func(t *testing.T) {
		t.Parallel()
		store, tracker := setup(false)
		driver := &repository.DriverDetails{UserID: 7, AvailabilityStatus: string(DriverBusy)}
		store.drivers[7] = driver
		store.pickups[1] = &repository.Pickup{ID: 1, AssignedTo: &driverID, Status: string(StatusInTransit)}

		require.NoError(t, tracker.ReevaluateTx(ctx, nil, driver))

		assert.Equal(t, string(DriverBusy), store.drivers[7].AvailabilityStatus)
	})

	t.Run("offline override untouched", func(t *testing.T) {
		t.Parallel()
		store, tracker := setup(false)
		driver := &repository.DriverDetails{UserID: 7, AvailabilityStatus: string(DriverOffline)}
		store.drivers[7] = driver

		require.NoError(t, tracker.ReevaluateTx(ctx, nil, driver))

		assert.Equal(t, string(DriverOffline), store.drivers[7].AvailabilityStatus)
	})

	t.Run("legacy mode never reverts", func(t *testing.T) {
		t.Parallel()
		store, tracker := setup(true)
		driver := &repository.DriverDetails{UserID: 7, AvailabilityStatus: string(DriverBusy)}
		store.drivers[7] = driver

		require.NoError(t, tracker.ReevaluateTx(ctx, nil, driver))

		assert.Equal(t, string(DriverBusy), store.drivers[7].AvailabilityStatus)
	})
}

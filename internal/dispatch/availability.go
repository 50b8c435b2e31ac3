package dispatch

import (
	"context"
	"fmt"

	"agromarket/internal/db"
	"agromarket/internal/repository"
)

// AvailabilityTracker derives and mutates a driver's availability as part of
// a lifecycle transaction. It never commits on its own; every method runs
// against the caller's Tx.
type AvailabilityTracker struct {
	pickups PickupRepository
	drivers DriverRepository

	// legacy preserves the old back office behavior of leaving a driver
	// busy after their last active assignment ends.
	legacy bool
}

func NewAvailabilityTracker(pickups PickupRepository, drivers DriverRepository, legacy bool) *AvailabilityTracker {
	return &AvailabilityTracker{pickups: pickups, drivers: drivers, legacy: legacy}
}

// MarkAssignedTx puts the driver into busy. Called on every assignment,
// including overbooking a driver who already carries active pickups.
func (t *AvailabilityTracker) MarkAssignedTx(ctx context.Context, tx db.Tx, driverID int64) error {
	if err := t.drivers.SetAvailabilityTx(ctx, tx, driverID, string(DriverBusy)); err != nil {
		return fmt.Errorf("failed to mark driver %d busy: %w", driverID, err)
	}
	return nil
}

// ReevaluateTx recomputes availability after an assignment ended. The active
// count floors at zero by construction (it is counted, not decremented). A
// driver only moves busy -> available; a manual offline override is left
// alone, and in legacy mode the status is never reverted at all.
func (t *AvailabilityTracker) ReevaluateTx(ctx context.Context, tx db.Tx, driver *repository.DriverDetails) error {
	if t.legacy {
		return nil
	}
	if DriverAvailability(driver.AvailabilityStatus) != DriverBusy {
		return nil
	}

	active, err := t.pickups.CountActiveByDriverTx(ctx, tx, driver.UserID)
	if err != nil {
		return err
	}
	if active > 0 {
		return nil
	}

	if err := t.drivers.SetAvailabilityTx(ctx, tx, driver.UserID, string(DriverAvailable)); err != nil {
		return fmt.Errorf("failed to release driver %d: %w", driver.UserID, err)
	}
	driver.AvailabilityStatus = string(DriverAvailable)
	return nil
}

package dispatch

import "fmt"

// PickupStatus is the closed set of pickup lifecycle states. Persisted values
// use exactly these strings; anything else coming in from the outside is a
// validation error, never coerced.
type PickupStatus string

const (
	StatusPending   PickupStatus = "pending"
	StatusScheduled PickupStatus = "scheduled"
	StatusAssigned  PickupStatus = "assigned"
	StatusInTransit PickupStatus = "in_transit"
	StatusCompleted PickupStatus = "completed"
	StatusCancelled PickupStatus = "cancelled"
)

var pickupTransitions = map[PickupStatus][]PickupStatus{
	StatusPending:   {StatusScheduled, StatusAssigned, StatusCancelled},
	StatusScheduled: {StatusAssigned, StatusCancelled},
	StatusAssigned:  {StatusInTransit, StatusCancelled, StatusPending},
	StatusInTransit: {StatusCompleted, StatusCancelled},
	StatusCompleted: nil,
	StatusCancelled: nil,
}

func ParsePickupStatus(s string) (PickupStatus, error) {
	status := PickupStatus(s)
	if _, ok := pickupTransitions[status]; !ok {
		return "", fmt.Errorf("%w: unknown pickup status %q", ErrValidation, s)
	}
	return status, nil
}

func (s PickupStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// CanTransition reports whether the edge from -> to exists in the lifecycle
// graph. Same-state transitions are legal no-ops handled by the caller.
func CanTransition(from, to PickupStatus) bool {
	if from == to {
		return true
	}
	for _, next := range pickupTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// IsAssignable reports whether a driver may be attached to a pickup in this
// state.
func (s PickupStatus) IsAssignable() bool {
	return s == StatusPending || s == StatusScheduled
}

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusCompleted  OrderStatus = "completed"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

type DriverAvailability string

const (
	DriverAvailable DriverAvailability = "available"
	DriverBusy      DriverAvailability = "busy"
	DriverOffline   DriverAvailability = "offline"
)

func ParseDriverAvailability(s string) (DriverAvailability, error) {
	switch status := DriverAvailability(s); status {
	case DriverAvailable, DriverBusy, DriverOffline:
		return status, nil
	default:
		return "", fmt.Errorf("%w: unknown driver availability %q", ErrValidation, s)
	}
}

package dispatch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePickupStatus(t *testing.T) {
	t.Parallel()

	for _, valid := range []string{"pending", "scheduled", "assigned", "in_transit", "completed", "cancelled"} {
		status, err := ParsePickupStatus(valid)
		require.NoError(t, err, valid)
		assert.Equal(t, valid, string(status))
	}

	for _, invalid := range []string{"", "Pending", "done", "in-transit", "ASSIGNED"} {
		_, err := ParsePickupStatus(invalid)
		assert.ErrorIs(t, err, ErrValidation, "%q should not parse", invalid)
	}
}

func TestCanTransition(t *testing.T) {
	t.Parallel()

	allowed := map[PickupStatus][]PickupStatus{
		StatusPending:   {StatusScheduled, StatusAssigned, StatusCancelled},
		StatusScheduled: {StatusAssigned, StatusCancelled},
		StatusAssigned:  {StatusInTransit, StatusCancelled, StatusPending},
		StatusInTransit: {StatusCompleted, StatusCancelled},
		StatusCompleted: nil,
		StatusCancelled: nil,
	}

	all := []PickupStatus{StatusPending, StatusScheduled, StatusAssigned, StatusInTransit, StatusCompleted, StatusCancelled}

	for from, targets := range allowed {
		legal := map[PickupStatus]bool{from: true}
		for _, to := range targets {
			legal[to] = true
		}
		for _, to := range all {
			assert.Equal(t, legal[to], CanTransition(from, to), "%s -> %s", from, to)
		}
	}
}

func TestIsTerminal(t *testing.T) {
	t.Parallel()

	assert.True(t, StatusCompleted.IsTerminal())
	assert.True(t, StatusCancelled.IsTerminal())
	for _, s := range []PickupStatus{StatusPending, StatusScheduled, StatusAssigned, StatusInTransit} {
		assert.False(t, s.IsTerminal(), string(s))
	}
}

func TestIsAssignable(t *testing.T) {
	t.Parallel()

	assert.True(t, StatusPending.IsAssignable())
	assert.True(t, StatusScheduled.IsAssignable())
	for _, s := range []PickupStatus{StatusAssigned, StatusInTransit, StatusCompleted, StatusCancelled} {
		assert.False(t, s.IsAssignable(), string(s))
	}
}

func TestParseDriverAvailability(t *testing.T) {
	t.Parallel()

	for _, valid := range []string{"available", "busy", "offline"} {
		status, err := ParseDriverAvailability(valid)
		require.NoError(t, err)
		assert.Equal(t, valid, string(status))
	}

	_, err := ParseDriverAvailability("on_break")
	assert.ErrorIs(t, err, ErrValidation)
}

package status_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"snackshop-admin/internal/models"
	"snackshop-admin/internal/status"
)

func pendingOrder() models.Order {
	return models.Order{
		ID:          7,
		OrderNumber: "SO-1001",
		Status:      models.OrderPending,
		StatusHistory: []models.StatusHistory{
			{OrderID: 7, Status: models.OrderPending, Note: "Order has been created"},
		},
	}
}

func TestTransitionForwardChain(t *testing.T) {
	now := time.Date(2025, 4, 14, 10, 0, 0, 0, time.UTC)
	order := pendingOrder()

	for _, next := range []models.OrderStatus{
		models.OrderProcessing,
		models.OrderShipping,
		models.OrderCompleted,
	} {
		updated, err := status.Transition(order, next, now)
		require.NoError(t, err)
		assert.Equal(t, next, updated.Status)
		order = updated
	}

	require.Len(t, order.StatusHistory, 4)
	assert.Equal(t, models.OrderCompleted, order.StatusHistory[3].Status)
}

func TestTransitionSkippingStateRejected(t *testing.T) {
	order := pendingOrder()

	updated, err := status.Transition(order, models.OrderShipping, time.Now())

	var invalid *status.InvalidTransitionError
	require.True(t, errors.As(err, &invalid))
	assert.Equal(t, models.OrderPending, invalid.From)
	assert.Equal(t, models.OrderShipping, invalid.To)
	assert.Equal(t, order, updated, "order must come back unchanged")
}

func TestTransitionCancelFromAnyNonTerminal(t *testing.T) {
	now := time.Now()
	for _, from := range []models.OrderStatus{
		models.OrderPending,
		models.OrderProcessing,
		models.OrderShipping,
	} {
		order := pendingOrder()
		order.Status = from

		updated, err := status.Transition(order, models.OrderCancelled, now)
		require.NoError(t, err, "cancel from %s", from)
		assert.Equal(t, models.OrderCancelled, updated.Status)
		require.Len(t, updated.StatusHistory, 2)
		assert.Equal(t, models.OrderCancelled, updated.StatusHistory[1].Status)
		assert.Equal(t, now, updated.StatusHistory[1].RecordedAt)
	}
}

func TestTerminalStatesRejectEverything(t *testing.T) {
	targets := []models.OrderStatus{
		models.OrderPending,
		models.OrderProcessing,
		models.OrderShipping,
	}
	for _, terminal := range []models.OrderStatus{models.OrderCompleted, models.OrderCancelled} {
		order := pendingOrder()
		order.Status = terminal

		for _, to := range targets {
			_, err := status.Transition(order, to, time.Now())
			var invalid *status.InvalidTransitionError
			require.True(t, errors.As(err, &invalid), "%s -> %s must be rejected", terminal, to)
		}
	}
}

func TestSameStateResubmissionIsNoOp(t *testing.T) {
	order := pendingOrder()
	order.Status = models.OrderShipping

	updated, err := status.Transition(order, models.OrderShipping, time.Now())
	require.NoError(t, err)
	assert.Equal(t, order, updated)
	assert.Len(t, updated.StatusHistory, len(order.StatusHistory), "no new history entry")
}

func TestTransitionDoesNotMutateInput(t *testing.T) {
	order := pendingOrder()

	updated, err := status.Transition(order, models.OrderProcessing, time.Now())
	require.NoError(t, err)

	assert.Equal(t, models.OrderPending, order.Status)
	assert.Len(t, order.StatusHistory, 1)
	require.Len(t, updated.StatusHistory, 2)
	assert.Equal(t, "Order is being prepared", updated.StatusHistory[1].Note)
}

func TestTerminalAndKnown(t *testing.T) {
	assert.True(t, status.Terminal(models.OrderCompleted))
	assert.True(t, status.Terminal(models.OrderCancelled))
	assert.False(t, status.Terminal(models.OrderShipping))

	assert.True(t, status.Known(models.OrderPending))
	assert.False(t, status.Known(models.OrderStatus("refunded")))
}

func TestDisplayMapping(t *testing.T) {
	cases := map[models.OrderStatus]status.Display{
		models.OrderPending:    {Label: "awaiting processing", Color: "gold"},
		models.OrderProcessing: {Label: "in progress", Color: "blue"},
		models.OrderShipping:   {Label: "out for delivery", Color: "cyan"},
		models.OrderCompleted:  {Label: "done", Color: "green"},
		models.OrderCancelled:  {Label: "cancelled", Color: "red"},
	}
	for s, want := range cases {
		assert.Equal(t, want, status.DisplayFor(s))
	}

	// Unknown statuses render like pending instead of blank.
	assert.Equal(t, cases[models.OrderPending], status.DisplayFor("bogus"))
}

// Package status implements the order status state machine: a linear
// pending -> processing -> shipping -> completed progression with a
// cancellation branch reachable from any non-terminal state.
package status

import (
	"fmt"
	"time"

	"snackshop-admin/internal/models"
)

// InvalidTransitionError reports a requested status that is not reachable
// from the order's current status. The order is left untouched.
type InvalidTransitionError struct {
	From models.OrderStatus
	To   models.OrderStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid order status transition from %q to %q", e.From, e.To)
}

// transitions lists the statuses reachable from each status. Completed and
// cancelled are terminal and deliberately absent.
var transitions = map[models.OrderStatus][]models.OrderStatus{
	models.OrderPending:    {models.OrderProcessing, models.OrderCancelled},
	models.OrderProcessing: {models.OrderShipping, models.OrderCancelled},
	models.OrderShipping:   {models.OrderCompleted, models.OrderCancelled},
}

// Known reports whether s is one of the five order statuses.
func Known(s models.OrderStatus) bool {
	switch s {
	case models.OrderPending, models.OrderProcessing, models.OrderShipping,
		models.OrderCompleted, models.OrderCancelled:
		return true
	}
	return false
}

// Terminal reports whether no further transitions are permitted out of s.
func Terminal(s models.OrderStatus) bool {
	return s == models.OrderCompleted || s == models.OrderCancelled
}

// CanTransition reports whether an order in status from may move to status to.
func CanTransition(from, to models.OrderStatus) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Transition returns a copy of order moved to the requested status with a
// new history entry appended. The input order is never mutated.
//
// Resubmitting the current status is a no-op: the order comes back unchanged
// with no extra history entry, so duplicate submissions are harmless.
func Transition(order models.Order, to models.OrderStatus, now time.Time) (models.Order, error) {
	if to == order.Status {
		return order, nil
	}
	if !CanTransition(order.Status, to) {
		return order, &InvalidTransitionError{From: order.Status, To: to}
	}

	updated := order
	updated.Status = to

	history := make([]models.StatusHistory, len(order.StatusHistory), len(order.StatusHistory)+1)
	copy(history, order.StatusHistory)
	updated.StatusHistory = append(history, models.StatusHistory{
		OrderID:    order.ID,
		Status:     to,
		Note:       HistoryNote(to),
		RecordedAt: now,
	})
	return updated, nil
}

package status

import "snackshop-admin/internal/models"

// Display is the fixed label/color pair a status renders with.
type Display struct {
	Label string `json:"label"`
	Color string `json:"color"`
}

var displays = map[models.OrderStatus]Display{
	models.OrderPending:    {Label: "awaiting processing", Color: "gold"},
	models.OrderProcessing: {Label: "in progress", Color: "blue"},
	models.OrderShipping:   {Label: "out for delivery", Color: "cyan"},
	models.OrderCompleted:  {Label: "done", Color: "green"},
	models.OrderCancelled:  {Label: "cancelled", Color: "red"},
}

var historyNotes = map[models.OrderStatus]string{
	models.OrderPending:    "Order has been created",
	models.OrderProcessing: "Order is being prepared",
	models.OrderShipping:   "Order is out for delivery",
	models.OrderCompleted:  "Order has been completed",
	models.OrderCancelled:  "Order has been cancelled",
}

// DisplayFor returns the render pair for s. Unknown statuses fall back to
// the pending display so a bad record never breaks a screen.
func DisplayFor(s models.OrderStatus) Display {
	if d, ok := displays[s]; ok {
		return d
	}
	return displays[models.OrderPending]
}

// HistoryNote is the human-readable text recorded with a transition into s.
func HistoryNote(s models.OrderStatus) string {
	if note, ok := historyNotes[s]; ok {
		return note
	}
	return "Order status has been updated"
}

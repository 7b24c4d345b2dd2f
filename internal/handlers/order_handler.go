package handlers

import (
	"errors"
	"net/http"
	"time"

	"snackshop-admin/internal/middlewares"
	"snackshop-admin/internal/models"
	"snackshop-admin/internal/repository"
	"snackshop-admin/internal/services"
	"snackshop-admin/internal/status"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type OrderHandler struct {
	orderService services.OrderService
}

func NewOrderHandler(orderService services.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

func (h *OrderHandler) List(c *gin.Context) {
	filter := repository.OrderFilter{
		Status: models.OrderStatus(c.Query("status")),
		Search: c.Query("search"),
	}
	if filter.Status != "" && !status.Known(filter.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown status filter"})
		return
	}
	var ok bool
	if filter.From, ok = queryDate(c, "from"); !ok {
		return
	}
	if filter.To, ok = queryDate(c, "to"); !ok {
		return
	}
	if !filter.To.IsZero() {
		// Make the upper bound inclusive of the whole day.
		filter.To = filter.To.AddDate(0, 0, 1).Add(-time.Second)
	}

	orders, err := h.orderService.ListOrders(filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load orders"})
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (h *OrderHandler) Get(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	order, err := h.orderService.GetOrderByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load order"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"order":   order,
		"display": status.DisplayFor(order.Status),
	})
}

func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	success := false
	defer func() { middlewares.RecordOrderOperation("update_status", success) }()

	id, ok := paramID(c)
	if !ok {
		return
	}

	var req struct {
		Status models.OrderStatus `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Status is required"})
		return
	}

	order, err := h.orderService.UpdateStatus(id, req.Status)
	if err != nil {
		var invalid *status.InvalidTransitionError
		switch {
		case errors.As(err, &invalid):
			c.JSON(http.StatusConflict, gin.H{
				"error": invalid.Error(),
				"from":  invalid.From,
				"to":    invalid.To,
			})
		case errors.Is(err, services.ErrUnknownStatus):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, gorm.ErrRecordNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update order status"})
		}
		return
	}

	success = true
	c.JSON(http.StatusOK, gin.H{
		"order":   order,
		"display": status.DisplayFor(order.Status),
	})
}

// Statuses lists every status with its render pair so the client never
// hardcodes labels or colors.
func (h *OrderHandler) Statuses(c *gin.Context) {
	all := []models.OrderStatus{
		models.OrderPending,
		models.OrderProcessing,
		models.OrderShipping,
		models.OrderCompleted,
		models.OrderCancelled,
	}
	out := make([]gin.H, 0, len(all))
	for _, s := range all {
		display := status.DisplayFor(s)
		out = append(out, gin.H{
			"status":   s,
			"label":    display.Label,
			"color":    display.Color,
			"terminal": status.Terminal(s),
		})
	}
	c.JSON(http.StatusOK, out)
}

func queryDate(c *gin.Context, name string) (time.Time, bool) {
	raw := c.Query(name)
	if raw == "" {
		return time.Time{}, true
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name + " date, expected YYYY-MM-DD"})
		return time.Time{}, false
	}
	return t, true
}

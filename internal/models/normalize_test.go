package models_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"snackshop-admin/internal/models"
)

func TestNormalizeOrderResolvesFallbacks(t *testing.T) {
	created := time.Date(2025, 4, 12, 9, 0, 0, 0, time.UTC)
	raw := models.RawOrder{
		OrderNumber: "SO-1001",
		Status:      "PROCESSING",
		ShippingFee: 15000,
		FinalTotal:  95000,
		CreatedAt:   created,
		Items: []models.RawOrderItem{
			{ProductID: 1, ProductName: "Chocolate cookies", Price: 25000, Quantity: 2},
			{ProductID: 2, ProductName: "Cola", Price: 12000, Quantity: 0}, // dropped
			{ProductID: 3, ProductName: "French fries", Price: 15000, Quantity: 2},
		},
	}

	order := raw.Normalize()

	assert.Equal(t, models.OrderProcessing, order.Status, "status is case-insensitive")
	require.Len(t, order.Items, 2, "zero-quantity lines are dropped")
	assert.InDelta(t, 50000, order.Items[0].TotalPrice, 0.001)
	assert.InDelta(t, 95000, order.Items[0].TotalPrice+order.Items[1].TotalPrice+order.ShippingFee, 0.001)
	assert.InDelta(t, 95000, order.Total, 0.001, "missing total rebuilt from items plus shipping")
	assert.InDelta(t, 95000, order.EffectiveTotal(), 0.001)

	assert.Equal(t, "Walk-in customer", order.CustomerName)
	assert.Equal(t, "COD", order.PaymentMethod)

	require.Len(t, order.StatusHistory, 1, "intake seeds the history")
	assert.Equal(t, models.OrderProcessing, order.StatusHistory[0].Status)
	assert.Equal(t, created, order.StatusHistory[0].RecordedAt)
}

func TestNormalizeOrderUnknownStatusBecomesPending(t *testing.T) {
	order := models.RawOrder{Status: "refunded"}.Normalize()
	assert.Equal(t, models.OrderPending, order.Status)

	order = models.RawOrder{}.Normalize()
	assert.Equal(t, models.OrderPending, order.Status)
}

func TestNormalizeOrderKeepsExplicitTotal(t *testing.T) {
	raw := models.RawOrder{
		Total: 180000,
		Items: []models.RawOrderItem{
			{ProductID: 1, Price: 50000, Quantity: 3},
		},
	}
	order := raw.Normalize()
	assert.InDelta(t, 180000, order.Total, 0.001, "wire total wins when present")
	assert.InDelta(t, 180000, order.EffectiveTotal(), 0.001, "no final total, raw total used")
}

func TestEffectiveTotalPrefersFinalTotal(t *testing.T) {
	order := models.Order{Total: 100000, FinalTotal: 90000}
	assert.InDelta(t, 90000, order.EffectiveTotal(), 0.001)

	order.FinalTotal = 0
	assert.InDelta(t, 100000, order.EffectiveTotal(), 0.001)
}

func TestNormalizeProductClampsDiscountAndStock(t *testing.T) {
	over := 150.0
	p := models.RawProduct{Name: "Donut", Price: 22000, DiscountPercent: &over, Stock: -4}.Normalize()
	assert.Equal(t, 100.0, p.DiscountPercent)
	assert.Equal(t, 0, p.Stock)
	assert.False(t, p.Active())

	p = models.RawProduct{Name: "Donut", Price: 22000, Stock: 25}.Normalize()
	assert.Zero(t, p.DiscountPercent, "absent discount means none")
	assert.True(t, p.Active())
}

func TestEffectivePrice(t *testing.T) {
	p := models.Product{Price: 25000, DiscountPercent: 20}
	assert.InDelta(t, 20000, p.EffectivePrice(), 0.001)

	p.DiscountPercent = 0
	assert.InDelta(t, 25000, p.EffectivePrice(), 0.001)
}

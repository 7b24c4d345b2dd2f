package models

import (
	"strings"
	"time"
)

// RawOrder is the wire shape the checkout system emits. Several fields are
// optional or duplicated on the wire (final_total vs total, missing contact
// fields); Normalize resolves every fallback here, in one place, so the rest
// of the codebase only ever sees strict Order values.
type RawOrder struct {
	OrderNumber     string         `json:"order_number"`
	CustomerID      *uint          `json:"customer_id"`
	CustomerName    string         `json:"customer_name"`
	CustomerPhone   string         `json:"phone_number"`
	CustomerEmail   string         `json:"email"`
	ShippingAddress string         `json:"shipping_address"`
	Status          string         `json:"status"`
	Total           float64        `json:"total"`
	FinalTotal      float64        `json:"final_total"`
	ShippingFee     float64        `json:"shipping_fee"`
	PaymentMethod   string         `json:"payment_method"`
	Notes           string         `json:"notes"`
	CreatedAt       time.Time      `json:"created_at"`
	Items           []RawOrderItem `json:"items"`
}

type RawOrderItem struct {
	ProductID   uint    `json:"product_id"`
	ProductName string  `json:"product_name"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity"`
}

// Normalize maps a raw checkout order into the strict Order type.
// Fallback policy:
//   - status is lowercased; anything unrecognized becomes pending
//   - item totals are always recomputed as price x quantity
//   - a zero total is rebuilt from the item totals plus shipping fee
//   - missing contact fields become placeholders instead of empty strings
//   - an absent history gets a single creation entry at the order timestamp
func (raw RawOrder) Normalize() Order {
	createdAt := raw.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	items := make([]OrderItem, 0, len(raw.Items))
	itemsTotal := 0.0
	for _, it := range raw.Items {
		if it.Quantity <= 0 {
			continue
		}
		total := it.Price * float64(it.Quantity)
		itemsTotal += total
		items = append(items, OrderItem{
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			UnitPrice:   it.Price,
			Quantity:    it.Quantity,
			TotalPrice:  total,
		})
	}

	total := raw.Total
	if total == 0 {
		total = itemsTotal + raw.ShippingFee
	}

	status := normalizeStatus(raw.Status)

	name := raw.CustomerName
	if name == "" {
		name = "Walk-in customer"
	}

	payment := raw.PaymentMethod
	if payment == "" {
		payment = "COD"
	}

	order := Order{
		OrderNumber:     raw.OrderNumber,
		CustomerID:      raw.CustomerID,
		CustomerName:    name,
		CustomerPhone:   raw.CustomerPhone,
		CustomerEmail:   raw.CustomerEmail,
		ShippingAddress: raw.ShippingAddress,
		Status:          status,
		Total:           total,
		ShippingFee:     raw.ShippingFee,
		FinalTotal:      raw.FinalTotal,
		PaymentMethod:   payment,
		Notes:           raw.Notes,
		Items:           items,
		CreatedAt:       createdAt,
	}
	order.StatusHistory = []StatusHistory{{
		Status:     status,
		Note:       "Order has been created",
		RecordedAt: createdAt,
	}}
	return order
}

func normalizeStatus(s string) OrderStatus {
	switch OrderStatus(strings.ToLower(strings.TrimSpace(s))) {
	case OrderProcessing:
		return OrderProcessing
	case OrderShipping:
		return OrderShipping
	case OrderCompleted:
		return OrderCompleted
	case OrderCancelled:
		return OrderCancelled
	default:
		return OrderPending
	}
}

// RawProduct is the wire shape of catalog records coming from imports.
type RawProduct struct {
	Name            string   `json:"name"`
	Description     string   `json:"description"`
	Price           float64  `json:"price"`
	DiscountPercent *float64 `json:"discount"` // optional on the wire
	Stock           int      `json:"stock"`
	CategoryID      uint     `json:"category_id"`
	ImageURL        string   `json:"image"`
}

// Normalize maps a raw product into the strict Product type, clamping the
// optional discount into [0,100] and negative stock to zero.
func (raw RawProduct) Normalize() Product {
	discount := 0.0
	if raw.DiscountPercent != nil {
		discount = *raw.DiscountPercent
	}
	if discount < 0 {
		discount = 0
	}
	if discount > 100 {
		discount = 100
	}

	stock := raw.Stock
	if stock < 0 {
		stock = 0
	}

	return Product{
		Name:            raw.Name,
		Description:     raw.Description,
		Price:           raw.Price,
		DiscountPercent: discount,
		Stock:           stock,
		CategoryID:      raw.CategoryID,
		ImageURL:        raw.ImageURL,
	}
}

package models

import (
	"time"

	"gorm.io/gorm"
)

type Order struct {
	ID              uint            `json:"id" gorm:"primaryKey"`
	OrderNumber     string          `json:"order_number" gorm:"unique;not null"`
	CustomerID      *uint           `json:"customer_id" gorm:"index"`
	CustomerName    string          `json:"customer_name" gorm:"not null"`
	CustomerPhone   string          `json:"customer_phone"`
	CustomerEmail   string          `json:"customer_email"`
	ShippingAddress string          `json:"shipping_address"`
	Status          OrderStatus     `json:"status" gorm:"type:varchar(20);default:'pending'"`
	Total           float64         `json:"total" gorm:"not null"`
	ShippingFee     float64         `json:"shipping_fee"`
	FinalTotal      float64         `json:"final_total"` // resolved once at the intake boundary
	PaymentMethod   string          `json:"payment_method"`
	Notes           string          `json:"notes" gorm:"type:text"`
	Items           []OrderItem     `json:"items" gorm:"foreignKey:OrderID"`
	StatusHistory   []StatusHistory `json:"status_history" gorm:"foreignKey:OrderID"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
	DeletedAt       gorm.DeletedAt  `json:"deleted_at" gorm:"index"`
}

// EffectiveTotal is the amount an order contributes to sales figures.
// FinalTotal wins when the checkout computed one; the raw total is the
// fallback. Screens must never re-derive this.
func (o *Order) EffectiveTotal() float64 {
	if o.FinalTotal > 0 {
		return o.FinalTotal
	}
	return o.Total
}

type OrderStatus string

const (
	OrderPending    OrderStatus = "pending"
	OrderProcessing OrderStatus = "processing"
	OrderShipping   OrderStatus = "shipping"
	OrderCompleted  OrderStatus = "completed"
	OrderCancelled  OrderStatus = "cancelled"
)

// StatusHistory is the append-only transition log of an order. Entries are
// never updated or removed; the latest entry's status mirrors Order.Status.
type StatusHistory struct {
	ID         uint        `json:"id" gorm:"primaryKey"`
	OrderID    uint        `json:"order_id" gorm:"not null;index"`
	Status     OrderStatus `json:"status" gorm:"type:varchar(20);not null"`
	Note       string      `json:"note"`
	RecordedAt time.Time   `json:"recorded_at" gorm:"not null"`
	CreatedAt  time.Time   `json:"created_at"`
}

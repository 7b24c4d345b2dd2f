package models

import (
	"time"

	"gorm.io/gorm"
)

type Product struct {
	ID              uint           `json:"id" gorm:"primaryKey"`
	Name            string         `json:"name" gorm:"not null"`
	Description     string         `json:"description" gorm:"type:text"`
	Price           float64        `json:"price" gorm:"not null"`
	DiscountPercent float64        `json:"discount_percent" gorm:"default:0"` // 0-100
	Stock           int            `json:"stock" gorm:"not null;default:0"`
	CategoryID      uint           `json:"category_id" gorm:"not null"`
	Category        Category       `json:"category" gorm:"foreignKey:CategoryID"`
	ImageURL        string         `json:"image_url"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `json:"deleted_at" gorm:"index"`
}

// EffectivePrice applies the discount percentage to the list price.
func (p *Product) EffectivePrice() float64 {
	return p.Price * (1 - p.DiscountPercent/100)
}

// Active reports whether the product is sellable. Availability is derived
// from stock, not stored as a separate flag.
func (p *Product) Active() bool {
	return p.Stock > 0
}

// OutOfStockLevel is the stock count at which a product counts as out of
// stock. The low-stock threshold itself is configuration, not a constant,
// so every screen reads the same value.
const OutOfStockLevel = 0

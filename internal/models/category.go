package models

import (
	"time"
)

type Category struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Code      string    `json:"code" gorm:"unique;not null"`
	Label     string    `json:"label" gorm:"not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// The catalog uses a small fixed category set; reporting never creates
// categories dynamically.
const (
	CategoryPastry  = "pastry"
	CategorySavory  = "savory"
	CategoryDrinks  = "drinks"
	CategoryBread   = "bread"
	CategoryOther   = "other"
)

// DefaultCategories is the set seeded on first start.
func DefaultCategories() []Category {
	return []Category{
		{Code: CategoryPastry, Label: "Pastries"},
		{Code: CategorySavory, Label: "Savory Snacks"},
		{Code: CategoryDrinks, Label: "Drinks"},
		{Code: CategoryBread, Label: "Bread"},
		{Code: CategoryOther, Label: "Other"},
	}
}

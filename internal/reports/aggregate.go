// Package reports turns raw order and product collections into the shapes
// the dashboard charts render. Every function is pure: no I/O, inputs are
// never mutated, and empty input yields a zeroed result instead of an error.
package reports

import (
	"math"
	"sort"
	"time"

	"snackshop-admin/internal/models"
)

type Summary struct {
	TotalSales           float64 `json:"total_sales"`
	TotalOrders          int     `json:"total_orders"`
	AverageOrderValue    float64 `json:"average_order_value"`
	ComparisonPercentage float64 `json:"comparison_percentage"`
}

// Summarize totals the effective sales of orders. prior is the equivalent
// order set for the preceding period and drives ComparisonPercentage; pass
// nil when no baseline exists and the comparison reports 0.
func Summarize(orders, prior []models.Order) Summary {
	s := Summary{TotalOrders: len(orders)}
	for i := range orders {
		s.TotalSales += orders[i].EffectiveTotal()
	}
	if s.TotalOrders > 0 {
		s.AverageOrderValue = s.TotalSales / float64(s.TotalOrders)
	}

	priorSales := 0.0
	for i := range prior {
		priorSales += prior[i].EffectiveTotal()
	}
	if priorSales > 0 {
		s.ComparisonPercentage = roundPercent((s.TotalSales - priorSales) / priorSales * 100)
	}
	return s
}

type DailyBucket struct {
	Date   string  `json:"date"` // YYYY-MM-DD in the report time zone
	Sales  float64 `json:"sales"`
	Orders int     `json:"orders"`
}

// DailySeries groups orders by calendar day of their creation timestamp,
// interpreted in loc. Days with no orders are simply absent. The result is
// sorted ascending by date with one bucket per day.
func DailySeries(orders []models.Order, loc *time.Location) []DailyBucket {
	byDay := make(map[string]*DailyBucket)
	for i := range orders {
		day := orders[i].CreatedAt.In(loc).Format("2006-01-02")
		bucket, ok := byDay[day]
		if !ok {
			bucket = &DailyBucket{Date: day}
			byDay[day] = bucket
		}
		bucket.Sales += orders[i].EffectiveTotal()
		bucket.Orders++
	}

	series := make([]DailyBucket, 0, len(byDay))
	for _, bucket := range byDay {
		series = append(series, *bucket)
	}
	sort.Slice(series, func(i, j int) bool { return series[i].Date < series[j].Date })
	return series
}

// MonthlySeries is DailySeries at month granularity, for the long-range
// dashboard chart. Keys are YYYY-MM in loc, sorted ascending.
func MonthlySeries(orders []models.Order, loc *time.Location) []DailyBucket {
	byMonth := make(map[string]*DailyBucket)
	for i := range orders {
		month := orders[i].CreatedAt.In(loc).Format("2006-01")
		bucket, ok := byMonth[month]
		if !ok {
			bucket = &DailyBucket{Date: month}
			byMonth[month] = bucket
		}
		bucket.Sales += orders[i].EffectiveTotal()
		bucket.Orders++
	}

	series := make([]DailyBucket, 0, len(byMonth))
	for _, bucket := range byMonth {
		series = append(series, *bucket)
	}
	sort.Slice(series, func(i, j int) bool { return series[i].Date < series[j].Date })
	return series
}

type CategorySales struct {
	Category   string  `json:"category"`
	Sales      float64 `json:"sales"`
	Percentage float64 `json:"percentage"`
}

// CategoryBreakdown joins each order item to its product's category and
// totals sales per category. Items whose product is missing from
// productsByID (deleted since the order was placed) are skipped; a stale
// reference never aborts the report. Results are sorted by sales descending,
// ties by category name.
func CategoryBreakdown(orders []models.Order, productsByID map[uint]models.Product) []CategorySales {
	byCategory := make(map[string]float64)
	total := 0.0
	for i := range orders {
		for _, item := range orders[i].Items {
			product, ok := productsByID[item.ProductID]
			if !ok {
				continue
			}
			label := product.Category.Label
			if label == "" {
				label = product.Category.Code
			}
			byCategory[label] += item.TotalPrice
			total += item.TotalPrice
		}
	}

	breakdown := make([]CategorySales, 0, len(byCategory))
	for category, sales := range byCategory {
		entry := CategorySales{Category: category, Sales: sales}
		if total > 0 {
			entry.Percentage = roundPercent(sales / total * 100)
		}
		breakdown = append(breakdown, entry)
	}
	sort.Slice(breakdown, func(i, j int) bool {
		if breakdown[i].Sales != breakdown[j].Sales {
			return breakdown[i].Sales > breakdown[j].Sales
		}
		return breakdown[i].Category < breakdown[j].Category
	})
	return breakdown
}

type LowStockProduct struct {
	ProductID uint   `json:"product_id"`
	Name      string `json:"name"`
	Stock     int    `json:"stock"`
	Category  string `json:"category"`
}

// LowStock filters products at or below threshold, sorted by stock
// ascending, ties by name so the listing is deterministic.
func LowStock(products []models.Product, threshold int) []LowStockProduct {
	low := make([]LowStockProduct, 0)
	for i := range products {
		if products[i].Stock > threshold {
			continue
		}
		low = append(low, LowStockProduct{
			ProductID: products[i].ID,
			Name:      products[i].Name,
			Stock:     products[i].Stock,
			Category:  products[i].Category.Label,
		})
	}
	sort.Slice(low, func(i, j int) bool {
		if low[i].Stock != low[j].Stock {
			return low[i].Stock < low[j].Stock
		}
		return low[i].Name < low[j].Name
	})
	return low
}

type ProductRevenue struct {
	ProductID uint    `json:"product_id"`
	Name      string  `json:"name"`
	Revenue   float64 `json:"revenue"`
	Quantity  int     `json:"quantity"`
}

// TopProducts sums revenue per product across all order items and returns
// the best limit sellers: revenue descending, ties by quantity descending,
// then name ascending.
func TopProducts(orders []models.Order, limit int) []ProductRevenue {
	byProduct := make(map[uint]*ProductRevenue)
	for i := range orders {
		for _, item := range orders[i].Items {
			entry, ok := byProduct[item.ProductID]
			if !ok {
				entry = &ProductRevenue{ProductID: item.ProductID, Name: item.ProductName}
				byProduct[item.ProductID] = entry
			}
			entry.Revenue += item.TotalPrice
			entry.Quantity += item.Quantity
		}
	}

	top := make([]ProductRevenue, 0, len(byProduct))
	for _, entry := range byProduct {
		top = append(top, *entry)
	}
	sort.Slice(top, func(i, j int) bool {
		if top[i].Revenue != top[j].Revenue {
			return top[i].Revenue > top[j].Revenue
		}
		if top[i].Quantity != top[j].Quantity {
			return top[i].Quantity > top[j].Quantity
		}
		return top[i].Name < top[j].Name
	})
	if limit > 0 && len(top) > limit {
		top = top[:limit]
	}
	return top
}

type CustomerSpend struct {
	Name   string  `json:"name"`
	Orders int     `json:"orders"`
	Spent  float64 `json:"spent"`
}

// TopCustomers ranks customers by effective spend across orders: spent
// descending, ties by order count descending, then name. Orders without a
// customer reference group under the contact name snapshot.
func TopCustomers(orders []models.Order, limit int) []CustomerSpend {
	type key struct {
		id   uint
		name string
	}
	byCustomer := make(map[key]*CustomerSpend)
	for i := range orders {
		k := key{name: orders[i].CustomerName}
		if orders[i].CustomerID != nil {
			k.id = *orders[i].CustomerID
		}
		entry, ok := byCustomer[k]
		if !ok {
			entry = &CustomerSpend{Name: orders[i].CustomerName}
			byCustomer[k] = entry
		}
		entry.Orders++
		entry.Spent += orders[i].EffectiveTotal()
	}

	top := make([]CustomerSpend, 0, len(byCustomer))
	for _, entry := range byCustomer {
		top = append(top, *entry)
	}
	sort.Slice(top, func(i, j int) bool {
		if top[i].Spent != top[j].Spent {
			return top[i].Spent > top[j].Spent
		}
		if top[i].Orders != top[j].Orders {
			return top[i].Orders > top[j].Orders
		}
		return top[i].Name < top[j].Name
	})
	if limit > 0 && len(top) > limit {
		top = top[:limit]
	}
	return top
}

type GrowthPoint struct {
	Month     string `json:"month"` // YYYY-MM
	Customers int    `json:"customers"`
}

// CustomerGrowth returns the cumulative customer count per signup month,
// sorted ascending. Months with no signups are absent.
func CustomerGrowth(customers []models.Customer, loc *time.Location) []GrowthPoint {
	byMonth := make(map[string]int)
	for i := range customers {
		byMonth[customers[i].CreatedAt.In(loc).Format("2006-01")]++
	}

	growth := make([]GrowthPoint, 0, len(byMonth))
	for month, count := range byMonth {
		growth = append(growth, GrowthPoint{Month: month, Customers: count})
	}
	sort.Slice(growth, func(i, j int) bool { return growth[i].Month < growth[j].Month })

	running := 0
	for i := range growth {
		running += growth[i].Customers
		growth[i].Customers = running
	}
	return growth
}

type ProductOverview struct {
	TotalProducts      int `json:"total_products"`
	LowStockProducts   int `json:"low_stock_products"`
	OutOfStockProducts int `json:"out_of_stock_products"`
	NewProducts        int `json:"new_products"`
}

// Overview counts the catalog against the low-stock threshold. Products
// added after newSince count as new.
func Overview(products []models.Product, threshold int, newSince time.Time) ProductOverview {
	o := ProductOverview{TotalProducts: len(products)}
	for i := range products {
		if products[i].Stock == models.OutOfStockLevel {
			o.OutOfStockProducts++
		} else if products[i].Stock <= threshold {
			o.LowStockProducts++
		}
		if products[i].CreatedAt.After(newSince) {
			o.NewProducts++
		}
	}
	return o
}

// roundPercent keeps percentages at one decimal place, matching the
// dashboard's display precision.
func roundPercent(p float64) float64 {
	return math.Round(p*10) / 10
}

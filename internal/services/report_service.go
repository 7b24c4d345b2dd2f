package services

import (
	"fmt"
	"log"
	"time"

	"snackshop-admin/internal/models"
	"snackshop-admin/internal/reports"
	"snackshop-admin/internal/repository"
)

// ReportCache holds rendered reports between requests. A nil cache is
// valid; reports are then rebuilt on every call.
type ReportCache interface {
	SetReport(key string, report interface{}, ttl time.Duration) error
	GetReport(key string, dest interface{}) error
	InvalidateReports() error
}

type SalesReport struct {
	Summary         reports.Summary          `json:"summary"`
	DailySales      []reports.DailyBucket    `json:"daily_sales"`
	TopProducts     []reports.ProductRevenue `json:"top_products"`
	SalesByCategory []reports.CategorySales  `json:"sales_by_category"`
}

type ProductReport struct {
	Summary    reports.ProductOverview   `json:"summary"`
	TopSelling []reports.ProductRevenue  `json:"top_selling"`
	LowStock   []reports.LowStockProduct `json:"low_stock"`
}

type CustomerSummary struct {
	TotalCustomers       int     `json:"total_customers"`
	NewCustomers         int     `json:"new_customers"`
	ReturningCustomers   int     `json:"returning_customers"`
	AveragePurchaseValue float64 `json:"average_purchase_value"`
}

type CustomerReport struct {
	Summary        CustomerSummary         `json:"summary"`
	TopCustomers   []reports.CustomerSpend `json:"top_customers"`
	CustomerGrowth []reports.GrowthPoint   `json:"customer_growth"`
}

type DashboardStats struct {
	TotalSales     float64 `json:"total_sales"`
	TotalOrders    int     `json:"total_orders"`
	TotalProducts  int64   `json:"total_products"`
	TotalCustomers int64   `json:"total_customers"`
}

type DashboardData struct {
	Stats        DashboardStats            `json:"stats"`
	RecentOrders []models.Order            `json:"recent_orders"`
	LowStock     []reports.LowStockProduct `json:"low_stock"`
	MonthlySales []reports.DailyBucket     `json:"monthly_sales"`
}

const (
	topProductsLimit  = 5
	topCustomersLimit = 5
	recentOrdersLimit = 5
	newWindowDays     = 30
)

type ReportService interface {
	SalesReport(from, to time.Time) (*SalesReport, error)
	ProductReport(topSellingSince time.Time) (*ProductReport, error)
	CustomerReport() (*CustomerReport, error)
	Dashboard() (*DashboardData, error)
}

type reportService struct {
	orderRepo         repository.OrderRepository
	productRepo       repository.ProductRepository
	customerRepo      repository.CustomerRepository
	cache             ReportCache
	cacheTTL          time.Duration
	lowStockThreshold int
	timezone          *time.Location
}

func NewReportService(orderRepo repository.OrderRepository, productRepo repository.ProductRepository, customerRepo repository.CustomerRepository, cache ReportCache, cacheTTL time.Duration, lowStockThreshold int, timezone *time.Location) ReportService {
	return &reportService{
		orderRepo:         orderRepo,
		productRepo:       productRepo,
		customerRepo:      customerRepo,
		cache:             cache,
		cacheTTL:          cacheTTL,
		lowStockThreshold: lowStockThreshold,
		timezone:          timezone,
	}
}

// SalesReport aggregates the orders of [from, to]. Cancelled orders never
// count towards sales. The comparison baseline is the period of equal
// length immediately before from.
func (s *reportService) SalesReport(from, to time.Time) (*SalesReport, error) {
	cacheKey := fmt.Sprintf("sales:%s:%s", from.Format("2006-01-02"), to.Format("2006-01-02"))
	var cached SalesReport
	if s.cacheGet(cacheKey, &cached) {
		return &cached, nil
	}

	orders, err := s.orderRepo.GetByDateRange(from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to load orders: %w", err)
	}
	orders = excludeCancelled(orders)

	priorFrom := from.Add(-to.Sub(from))
	prior, err := s.orderRepo.GetByDateRange(priorFrom, from)
	if err != nil {
		return nil, fmt.Errorf("failed to load baseline orders: %w", err)
	}
	prior = excludeCancelled(prior)

	productsByID, err := s.productsByID(orders)
	if err != nil {
		return nil, err
	}

	report := &SalesReport{
		Summary:         reports.Summarize(orders, prior),
		DailySales:      reports.DailySeries(orders, s.timezone),
		TopProducts:     reports.TopProducts(orders, topProductsLimit),
		SalesByCategory: reports.CategoryBreakdown(orders, productsByID),
	}
	s.cacheSet(cacheKey, report)
	return report, nil
}

// ProductReport covers the whole catalog; topSellingSince bounds the window
// the best-seller ranking is computed over.
func (s *reportService) ProductReport(topSellingSince time.Time) (*ProductReport, error) {
	cacheKey := fmt.Sprintf("products:%s", topSellingSince.Format("2006-01-02"))
	var cached ProductReport
	if s.cacheGet(cacheKey, &cached) {
		return &cached, nil
	}

	products, err := s.productRepo.GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to load products: %w", err)
	}

	orders, err := s.orderRepo.GetByDateRange(topSellingSince, time.Now())
	if err != nil {
		return nil, fmt.Errorf("failed to load orders: %w", err)
	}
	orders = excludeCancelled(orders)

	newSince := time.Now().AddDate(0, 0, -newWindowDays)
	report := &ProductReport{
		Summary:    reports.Overview(products, s.lowStockThreshold, newSince),
		TopSelling: reports.TopProducts(orders, topProductsLimit),
		LowStock:   reports.LowStock(products, s.lowStockThreshold),
	}
	s.cacheSet(cacheKey, report)
	return report, nil
}

func (s *reportService) CustomerReport() (*CustomerReport, error) {
	cacheKey := "customers"
	var cached CustomerReport
	if s.cacheGet(cacheKey, &cached) {
		return &cached, nil
	}

	customers, err := s.customerRepo.GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to load customers: %w", err)
	}

	orders, err := s.orderRepo.GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to load orders: %w", err)
	}
	orders = excludeCancelled(orders)

	summary := CustomerSummary{TotalCustomers: len(customers)}
	newSince := time.Now().AddDate(0, 0, -newWindowDays)
	for i := range customers {
		if customers[i].CreatedAt.After(newSince) {
			summary.NewCustomers++
		}
	}

	ordersPerCustomer := make(map[uint]int)
	for i := range orders {
		if orders[i].CustomerID != nil {
			ordersPerCustomer[*orders[i].CustomerID]++
		}
	}
	for _, count := range ordersPerCustomer {
		if count >= 2 {
			summary.ReturningCustomers++
		}
	}
	summary.AveragePurchaseValue = reports.Summarize(orders, nil).AverageOrderValue

	report := &CustomerReport{
		Summary:        summary,
		TopCustomers:   reports.TopCustomers(orders, topCustomersLimit),
		CustomerGrowth: reports.CustomerGrowth(customers, s.timezone),
	}
	s.cacheSet(cacheKey, report)
	return report, nil
}

func (s *reportService) Dashboard() (*DashboardData, error) {
	cacheKey := "dashboard"
	var cached DashboardData
	if s.cacheGet(cacheKey, &cached) {
		return &cached, nil
	}

	orders, err := s.orderRepo.GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to load orders: %w", err)
	}
	sold := excludeCancelled(orders)

	productCount, err := s.productRepo.Count()
	if err != nil {
		return nil, fmt.Errorf("failed to count products: %w", err)
	}
	customerCount, err := s.customerRepo.Count()
	if err != nil {
		return nil, fmt.Errorf("failed to count customers: %w", err)
	}

	recent, err := s.orderRepo.GetRecent(recentOrdersLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to load recent orders: %w", err)
	}

	lowStock, err := s.productRepo.GetBelowStock(s.lowStockThreshold)
	if err != nil {
		return nil, fmt.Errorf("failed to load low stock products: %w", err)
	}

	summary := reports.Summarize(sold, nil)
	data := &DashboardData{
		Stats: DashboardStats{
			TotalSales:     summary.TotalSales,
			TotalOrders:    summary.TotalOrders,
			TotalProducts:  productCount,
			TotalCustomers: customerCount,
		},
		RecentOrders: recent,
		LowStock:     reports.LowStock(lowStock, s.lowStockThreshold),
		MonthlySales: reports.MonthlySeries(sold, s.timezone),
	}
	s.cacheSet(cacheKey, data)
	return data, nil
}

func (s *reportService) productsByID(orders []models.Order) (map[uint]models.Product, error) {
	idSet := make(map[uint]struct{})
	for i := range orders {
		for _, item := range orders[i].Items {
			idSet[item.ProductID] = struct{}{}
		}
	}
	ids := make([]uint, 0, len(idSet))
	for id := range idSet {
		ids = append(ids, id)
	}

	products, err := s.productRepo.GetByIDs(ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load products for breakdown: %w", err)
	}
	byID := make(map[uint]models.Product, len(products))
	for i := range products {
		byID[products[i].ID] = products[i]
	}
	return byID, nil
}

func (s *reportService) cacheGet(key string, dest interface{}) bool {
	if s.cache == nil {
		return false
	}
	return s.cache.GetReport(key, dest) == nil
}

func (s *reportService) cacheSet(key string, report interface{}) {
	if s.cache == nil {
		return
	}
	if err := s.cache.SetReport(key, report, s.cacheTTL); err != nil {
		log.Printf("Failed to cache report %s: %v", key, err)
	}
}

func excludeCancelled(orders []models.Order) []models.Order {
	kept := make([]models.Order, 0, len(orders))
	for i := range orders {
		if orders[i].Status != models.OrderCancelled {
			kept = append(kept, orders[i])
		}
	}
	return kept
}

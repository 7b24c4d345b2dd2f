package services

import (
	"errors"
	"fmt"
	"log"

	"snackshop-admin/internal/models"
	"snackshop-admin/internal/reports"
	"snackshop-admin/internal/repository"
)

var ErrInvalidDiscount = errors.New("discount must be between 0 and 100")

type ProductService interface {
	CreateProduct(product *models.Product) error
	GetProductByID(id uint) (*models.Product, error)
	ListProducts(filter repository.ProductFilter) ([]models.Product, error)
	UpdateProduct(product *models.Product) error
	DeleteProduct(id uint) error
	GetCategories() ([]models.Category, error)
	GetLowStock() ([]reports.LowStockProduct, error)
}

type productService struct {
	productRepo       repository.ProductRepository
	categoryRepo      repository.CategoryRepository
	cache             ReportCache
	lowStockThreshold int
}

func NewProductService(productRepo repository.ProductRepository, categoryRepo repository.CategoryRepository, cache ReportCache, lowStockThreshold int) ProductService {
	return &productService{
		productRepo:       productRepo,
		categoryRepo:      categoryRepo,
		cache:             cache,
		lowStockThreshold: lowStockThreshold,
	}
}

func (s *productService) CreateProduct(product *models.Product) error {
	if err := s.validate(product); err != nil {
		return err
	}
	if err := s.productRepo.Create(product); err != nil {
		return err
	}
	s.invalidateReports()
	return nil
}

func (s *productService) GetProductByID(id uint) (*models.Product, error) {
	return s.productRepo.GetByID(id)
}

func (s *productService) ListProducts(filter repository.ProductFilter) ([]models.Product, error) {
	return s.productRepo.List(filter)
}

func (s *productService) UpdateProduct(product *models.Product) error {
	if err := s.validate(product); err != nil {
		return err
	}
	if err := s.productRepo.Update(product); err != nil {
		return err
	}
	s.invalidateReports()
	return nil
}

func (s *productService) DeleteProduct(id uint) error {
	if err := s.productRepo.Delete(id); err != nil {
		return err
	}
	s.invalidateReports()
	return nil
}

func (s *productService) GetCategories() ([]models.Category, error) {
	return s.categoryRepo.GetAll()
}

func (s *productService) GetLowStock() ([]reports.LowStockProduct, error) {
	products, err := s.productRepo.GetBelowStock(s.lowStockThreshold)
	if err != nil {
		return nil, err
	}
	return reports.LowStock(products, s.lowStockThreshold), nil
}

func (s *productService) validate(product *models.Product) error {
	if product.DiscountPercent < 0 || product.DiscountPercent > 100 {
		return ErrInvalidDiscount
	}
	if product.Stock < 0 {
		return errors.New("stock must not be negative")
	}
	if _, err := s.categoryRepo.GetByID(product.CategoryID); err != nil {
		return fmt.Errorf("unknown category %d: %w", product.CategoryID, err)
	}
	return nil
}

// Catalog changes feed the product report, so cached reports go stale.
func (s *productService) invalidateReports() {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateReports(); err != nil {
		log.Printf("Failed to invalidate report cache: %v", err)
	}
}

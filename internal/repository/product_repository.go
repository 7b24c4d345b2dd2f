package repository

import (
	"snackshop-admin/internal/models"

	"gorm.io/gorm"
)

// ProductFilter narrows product listings. Zero values mean "no constraint".
type ProductFilter struct {
	Search     string
	CategoryID uint
}

type ProductRepository interface {
	Create(product *models.Product) error
	GetByID(id uint) (*models.Product, error)
	List(filter ProductFilter) ([]models.Product, error)
	GetBelowStock(threshold int) ([]models.Product, error)
	GetByIDs(ids []uint) ([]models.Product, error)
	Update(product *models.Product) error
	Delete(id uint) error
	Count() (int64, error)
	GetAll() ([]models.Product, error)
}

type productRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) Create(product *models.Product) error {
	return r.db.Create(product).Error
}

func (r *productRepository) GetByID(id uint) (*models.Product, error) {
	var product models.Product
	err := r.db.Preload("Category").First(&product, id).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) List(filter ProductFilter) ([]models.Product, error) {
	query := r.db.Preload("Category").Order("name ASC")
	if filter.Search != "" {
		query = query.Where("name ILIKE ?", "%"+filter.Search+"%")
	}
	if filter.CategoryID != 0 {
		query = query.Where("category_id = ?", filter.CategoryID)
	}

	var products []models.Product
	err := query.Find(&products).Error
	return products, err
}

func (r *productRepository) GetBelowStock(threshold int) ([]models.Product, error) {
	var products []models.Product
	err := r.db.Preload("Category").
		Where("stock <= ?", threshold).
		Find(&products).Error
	return products, err
}

func (r *productRepository) GetByIDs(ids []uint) ([]models.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var products []models.Product
	err := r.db.Preload("Category").Where("id IN ?", ids).Find(&products).Error
	return products, err
}

func (r *productRepository) Update(product *models.Product) error {
	return r.db.Save(product).Error
}

func (r *productRepository) Delete(id uint) error {
	return r.db.Delete(&models.Product{}, id).Error
}

func (r *productRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Product{}).Count(&count).Error
	return count, err
}

func (r *productRepository) GetAll() ([]models.Product, error) {
	var products []models.Product
	err := r.db.Preload("Category").Find(&products).Error
	return products, err
}

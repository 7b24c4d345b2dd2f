package repository

import (
	"snackshop-admin/internal/models"

	"gorm.io/gorm"
)

type CategoryRepository interface {
	GetByID(id uint) (*models.Category, error)
	GetByCode(code string) (*models.Category, error)
	GetAll() ([]models.Category, error)
}

type categoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) GetByID(id uint) (*models.Category, error) {
	var category models.Category
	err := r.db.First(&category, id).Error
	if err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepository) GetByCode(code string) (*models.Category, error) {
	var category models.Category
	err := r.db.Where("code = ?", code).First(&category).Error
	if err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepository) GetAll() ([]models.Category, error) {
	var categories []models.Category
	err := r.db.Order("id ASC").Find(&categories).Error
	return categories, err
}

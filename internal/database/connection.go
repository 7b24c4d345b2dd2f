package database

import (
	"fmt"
	"log"

	"snackshop-admin/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func Initialize(databaseURL string) (*gorm.DB, error) {
	// Configure GORM
	config := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	}

	// Connect to database
	db, err := gorm.Open(postgres.Open(databaseURL), config)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Auto migrate all models
	if err := autoMigrate(db); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	log.Println("Database connected and migrated successfully")
	return db, nil
}

func autoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Product{},
		&models.Customer{},
		&models.Order{},
		&models.OrderItem{},
		&models.StatusHistory{},
	)
}

// Seed inserts the fixed category set and the bootstrap admin account when
// they are missing. Safe to run on every start.
func Seed(db *gorm.DB, adminUsername, adminPassword string) error {
	for _, category := range models.DefaultCategories() {
		err := db.Where(models.Category{Code: category.Code}).
			FirstOrCreate(&category).Error
		if err != nil {
			return fmt.Errorf("failed to seed category %s: %w", category.Code, err)
		}
	}

	var count int64
	if err := db.Model(&models.User{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count users: %w", err)
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}
	admin := &models.User{
		Username:     adminUsername,
		Email:        adminUsername + "@snackshop.local",
		PasswordHash: string(hash),
		DisplayName:  "Administrator",
		Role:         string(models.RoleAdmin),
		IsActive:     true,
	}
	if err := db.Create(admin).Error; err != nil {
		return fmt.Errorf("failed to seed admin user: %w", err)
	}
	log.Printf("Seeded admin account %q", adminUsername)
	return nil
}

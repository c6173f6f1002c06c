package db

import (
	"fmt"                         // Error wrapping
	"user_orders/internal/domain" // Importing domain models

	"gorm.io/gorm" // GORM ORM library
)

// Migrate performs automatic migration for the database schema
func Migrate(db *gorm.DB) error {
	// AutoMigrate will create tables, missing foreign keys, constraints, columns and indexes
	if err := db.AutoMigrate(&domain.User{}, &domain.Order{}); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	return nil
}

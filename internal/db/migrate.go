package db

import (
	"fmt"                            // Error wrapping
	"sales_insights/internal/domain" // Importing domain models

	"github.com/sirupsen/logrus" // Logrus for structured logging
	"gorm.io/driver/mysql"       // MySQL driver for GORM
	"gorm.io/gorm"               // GORM ORM library
)

// Open opens a MySQL connection through GORM
func Open(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{}) // Open a connection to the database
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return db, nil
}

// Migrate creates or updates the transactions table
func Migrate(db *gorm.DB) error {
	// AutoMigrate will create tables, missing columns and indexes
	if err := db.AutoMigrate(&domain.Transaction{}); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	logrus.Info("Migration completed.") // Log successful migration
	return nil
}

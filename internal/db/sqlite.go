package db

import (
	"fmt"

	"github.com/glebarez/sqlite"
	"github.com/rogerio-castellano/inventory-console/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// OpenSQLite opens (creating if needed) the SQLite file at path and makes sure
// the products table exists. verbose turns on GORM's SQL trace.
func OpenSQLite(path string, verbose bool) (*gorm.DB, error) {
	level := logger.Silent
	if verbose {
		level = logger.Info
	}

	gdb, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger:         logger.Default.LogMode(level),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}

	if err := gdb.AutoMigrate(&models.Product{}); err != nil {
		CloseGorm(gdb)
		return nil, fmt.Errorf("create products table: %w", err)
	}
	return gdb, nil
}

// CloseGorm closes the connection pool underneath a *gorm.DB.
func CloseGorm(gdb *gorm.DB) error {
	sqlDB, err := gdb.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

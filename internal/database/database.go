package database

import (
	"fmt"

	"todo-list-api/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// MemoryPath opens a private in-process database.
const MemoryPath = ":memory:"

// Open opens (creating if needed) the SQLite database at path and runs migrations.
// Using glebarez/sqlite which is a pure Go implementation (no CGO required)
func Open(path string, level logger.LogLevel) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(level),
	})
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	if path == MemoryPath {
		// every pooled connection to :memory: would see its own empty database
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("database handle: %w", err)
		}
		sqlDB.SetMaxOpenConns(1)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate creates or updates the tables used by the storage adapters.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.StoredSnapshot{}); err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}
	return nil
}

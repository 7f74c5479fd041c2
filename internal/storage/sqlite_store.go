package storage

import (
	"errors"
	"fmt"

	"todo-list-api/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SQLiteStore persists one snapshot per storage key in the snapshots table.
type SQLiteStore struct {
	db  *gorm.DB
	key string
}

// NewSQLiteStore returns a store reading and writing the row for key.
// The snapshots table must already be migrated.
func NewSQLiteStore(db *gorm.DB, key string) *SQLiteStore {
	return &SQLiteStore{db: db, key: key}
}

// Key returns the storage key this store reads and writes.
func (s *SQLiteStore) Key() string { return s.key }

// LoadData returns the stored snapshot, or nil if nothing was saved under the key yet.
func (s *SQLiteStore) LoadData() (*models.Snapshot, error) {
	var row models.StoredSnapshot
	err := s.db.Where("storage_key = ?", s.key).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load snapshot %q: %w", s.key, err)
	}
	return Decode([]byte(row.Data))
}

// SaveData replaces the stored snapshot for the key.
func (s *SQLiteStore) SaveData(snap models.Snapshot) error {
	data, err := Encode(snap)
	if err != nil {
		return err
	}
	row := models.StoredSnapshot{
		Key:     s.key,
		Data:    string(data),
		Version: models.SnapshotVersion,
	}
	err = s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "storage_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"data", "version", "updated_at"}),
	}).Create(&row).Error
	if err != nil {
		return fmt.Errorf("save snapshot %q: %w", s.key, err)
	}
	return nil
}

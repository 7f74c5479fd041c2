package storage

import (
	"sync/atomic"

	"todo-list-api/internal/kv"
	"todo-list-api/internal/models"
)

// MemoryStore keeps encoded snapshots in an in-process key-value store.
// Several MemoryStores may share one kv.Store to simulate reloading the app.
type MemoryStore struct {
	items kv.Store[string, []byte]
	key   string
	saves atomic.Int64
}

// NewMemoryStore returns a MemoryStore backed by a fresh goroutine-safe map.
func NewMemoryStore(key string) *MemoryStore {
	return NewMemoryStoreOn(kv.NewMapStore[string, []byte](kv.Options{ConcurrencySafe: true}), key)
}

// NewMemoryStoreOn returns a MemoryStore using items for storage.
func NewMemoryStoreOn(items kv.Store[string, []byte], key string) *MemoryStore {
	return &MemoryStore{items: items, key: key}
}

// LoadData returns the stored snapshot, or nil if nothing was saved under the key yet.
func (s *MemoryStore) LoadData() (*models.Snapshot, error) {
	data, ok := s.items.Get(s.key)
	if !ok {
		return nil, nil
	}
	return Decode(data)
}

// SaveData replaces the stored snapshot for the key.
func (s *MemoryStore) SaveData(snap models.Snapshot) error {
	data, err := Encode(snap)
	if err != nil {
		return err
	}
	s.items.Set(s.key, data)
	s.saves.Add(1)
	return nil
}

// Saves returns how many times SaveData succeeded.
func (s *MemoryStore) Saves() int {
	return int(s.saves.Load())
}

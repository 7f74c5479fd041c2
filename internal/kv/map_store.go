package kv

import "sync"

// MapStore is a map-backed Store with optional concurrency safety.
type MapStore[K comparable, V any] struct {
	// If muPtr is nil, the store is NOT goroutine-safe.
	muPtr *sync.RWMutex

	items map[K]V
}

// Options controls construction of a MapStore.
type Options struct {
	// ConcurrencySafe controls whether operations are guarded by a RWMutex.
	ConcurrencySafe bool
}

// NewMapStore constructs an empty MapStore with the given options.
func NewMapStore[K comparable, V any](opts Options) *MapStore[K, V] {
	var mu *sync.RWMutex
	if opts.ConcurrencySafe {
		mu = &sync.RWMutex{}
	}
	return &MapStore[K, V]{
		muPtr: mu,
		items: make(map[K]V),
	}
}

func (s *MapStore[K, V]) lockR() func() {
	if s.muPtr == nil {
		return func() {}
	}
	s.muPtr.RLock()
	return s.muPtr.RUnlock
}

func (s *MapStore[K, V]) lockW() func() {
	if s.muPtr == nil {
		return func() {}
	}
	s.muPtr.Lock()
	return s.muPtr.Unlock
}

// Get implements Store.Get.
func (s *MapStore[K, V]) Get(key K) (V, bool) {
	unlock := s.lockR()
	defer unlock()
	v, ok := s.items[key]
	return v, ok
}

// Set implements Store.Set.
func (s *MapStore[K, V]) Set(key K, value V) {
	unlock := s.lockW()
	defer unlock()
	s.items[key] = value
}

// Delete implements Store.Delete.
func (s *MapStore[K, V]) Delete(key K) {
	unlock := s.lockW()
	defer unlock()
	delete(s.items, key)
}

// Has implements Store.Has.
func (s *MapStore[K, V]) Has(key K) bool {
	unlock := s.lockR()
	defer unlock()
	_, ok := s.items[key]
	return ok
}

// Len implements Store.Len.
func (s *MapStore[K, V]) Len() int {
	unlock := s.lockR()
	defer unlock()
	return len(s.items)
}

// Clear implements Store.Clear.
func (s *MapStore[K, V]) Clear() {
	unlock := s.lockW()
	defer unlock()
	s.items = make(map[K]V)
}

// Ensure MapStore implements Store at compile time.
var _ Store[any, any] = (*MapStore[any, any])(nil)

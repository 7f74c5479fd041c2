package kv

// Store defines a minimal key-value API in the spirit of browser local storage.
// Implementations may or may not be goroutine-safe depending on configuration.
type Store[K comparable, V any] interface {
	// Get returns the value and whether it was present.
	Get(key K) (V, bool)

	// Set stores the value, replacing any prior value.
	Set(key K, value V)

	// Delete removes a key if present.
	Delete(key K)

	// Has reports whether a key is present.
	Has(key K) bool

	// Len returns the number of stored keys.
	Len() int

	// Clear removes all entries.
	Clear()
}

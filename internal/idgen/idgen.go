package idgen

import "github.com/google/uuid"

// Func produces a new unique identifier.
type Func func() string

// Generate returns a random (version 4) UUID in canonical lowercase form.
// It panics if the system random source is unavailable.
func Generate() string {
	return uuid.New().String()
}

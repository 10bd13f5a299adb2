package ids

import "github.com/google/uuid"

// IDs generates identifiers that can be mocked for testing
type IDs interface {
	// NewID returns a fresh unique identifier
	NewID() string
}

// UUIDs implements IDs with random (version 4) UUIDs
type UUIDs struct{}

// New creates a new UUIDs
func New() *UUIDs {
	return &UUIDs{}
}

// NewID returns a new random UUID string
func (g *UUIDs) NewID() string {
	return uuid.NewString()
}

// Valid reports whether s parses as a UUID
func Valid(s string) bool {
	return uuid.Validate(s) == nil
}

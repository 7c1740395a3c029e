package overlay

import "github.com/google/uuid"

// IDGenerator produces identifiers for handles shown without WithID.
type IDGenerator func() string

// NewID returns a random (version 4) UUID string.
func NewID() string {
	return uuid.NewString()
}

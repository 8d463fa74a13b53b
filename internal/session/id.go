package session

import "github.com/google/uuid"

// IDGenerator produces a unique opaque session identifier on each call.
// Collisions are treated as negligible, not impossible; the store's
// primary-key constraint is the actual uniqueness backstop.
type IDGenerator func() string

// NewID generates a random UUID session identifier.
func NewID() string {
	return uuid.NewString()
}

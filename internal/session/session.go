package session

import (
	"context"
	"errors"
	"time"
)

// Session represents one authenticated login.
// A row exists in the store if and only if the session has not been
// terminated; termination is physical deletion, there is no soft-delete.
type Session struct {
	SessionID      string    // opaque unique identifier, primary key
	UserID         string    // owning principal, immutable after creation
	SessionData    string    // optional opaque payload
	LoginTimestamp time.Time // refreshed on creation and every successful extend
}

// Patch carries the fields Update may change. Nil fields are left untouched.
// UserID is deliberately absent: it is immutable after creation.
type Patch struct {
	LoginTimestamp *time.Time
	SessionData    *string
}

var (
	// ErrNotFound is returned by Update when no row matches the id.
	ErrNotFound = errors.New("session: not found")

	// ErrDuplicateID is returned by Create when the id is already taken.
	ErrDuplicateID = errors.New("session: duplicate session id")
)

// Reader is the read-only capability of a session store.
type Reader interface {
	// FindByID returns (nil, nil) when no session matches the id.
	// Absence is not an error; the engine decides what it means.
	FindByID(ctx context.Context, sessionID string) (*Session, error)
}

// Writer is the mutating capability of a session store.
type Writer interface {
	// Create persists a new session. It fails with ErrDuplicateID if
	// the id is taken and rejects sessions missing sessionID, userID,
	// or loginTimestamp.
	Create(ctx context.Context, s Session) error

	// Update applies the non-nil fields of patch to the matching row.
	// It fails with ErrNotFound if no row matches.
	Update(ctx context.Context, sessionID string, patch Patch) error

	// Delete removes the row if present. Deleting an absent id is a
	// no-op, not an error.
	Delete(ctx context.Context, sessionID string) error
}

// Store is the full persistence contract backing the lifecycle engine.
type Store interface {
	Reader
	Writer
}

// validateForCreate enforces the Create precondition shared by all backends.
func validateForCreate(s Session) error {
	if s.SessionID == "" {
		return errors.New("session: missing session_id")
	}
	if s.UserID == "" {
		return errors.New("session: missing user_id")
	}
	if s.LoginTimestamp.IsZero() {
		return errors.New("session: missing login_timestamp")
	}
	return nil
}

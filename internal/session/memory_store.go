package session

import (
	"context"
	"fmt"
	"sync"
)

// MemoryStore is a map-backed Store. It exists for tests and local runs;
// production deployments use Postgres or Redis.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]Session
}

// NewMemoryStore creates an empty in-memory session store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]Session)}
}

func (m *MemoryStore) Create(_ context.Context, s Session) error {
	if err := validateForCreate(s); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.sessions[s.SessionID]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateID, s.SessionID)
	}
	m.sessions[s.SessionID] = s
	return nil
}

func (m *MemoryStore) FindByID(_ context.Context, sessionID string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.sessions[sessionID]
	if !ok {
		return nil, nil // not found
	}
	return &s, nil
}

func (m *MemoryStore) Update(_ context.Context, sessionID string, patch Patch) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[sessionID]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, sessionID)
	}

	if patch.LoginTimestamp != nil {
		s.LoginTimestamp = *patch.LoginTimestamp
	}
	if patch.SessionData != nil {
		s.SessionData = *patch.SessionData
	}
	m.sessions[sessionID] = s
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.sessions, sessionID)
	return nil
}

// Len reports the number of stored sessions.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

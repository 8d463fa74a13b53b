package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// redisSession is the stored JSON shape of a session.
type redisSession struct {
	SessionID      string    `json:"session_id"`
	UserID         string    `json:"user_id"`
	SessionData    string    `json:"session_data,omitempty"`
	LoginTimestamp time.Time `json:"login_timestamp"`
}

// RedisStore keeps sessions as JSON values under session:<id>.
//
// Keys carry a retention TTL well past the expiry window so that rows
// outlive the window until terminated; whether a session is ACTIVE or
// EXPIRED is the engine's decision, never the TTL's. The TTL only stops
// abandoned sessions from accumulating forever in a store with no
// background sweeper.
type RedisStore struct {
	client    *redis.Client
	prefix    string
	retention time.Duration
}

// NewRedisStore creates a Redis-backed session store.
func NewRedisStore(client *redis.Client, retention time.Duration) *RedisStore {
	return &RedisStore{
		client:    client,
		prefix:    "session:",
		retention: retention,
	}
}

func (r *RedisStore) key(sessionID string) string {
	return r.prefix + sessionID
}

func (r *RedisStore) Create(ctx context.Context, s Session) error {
	if err := validateForCreate(s); err != nil {
		return err
	}

	data, err := json.Marshal(redisSession(s))
	if err != nil {
		return fmt.Errorf("session: failed to marshal: %w", err)
	}

	ok, err := r.client.SetNX(ctx, r.key(s.SessionID), data, r.retention).Result()
	if err != nil {
		return fmt.Errorf("session: create failed: %w", err)
	}
	if !ok {
		return fmt.Errorf("%w: %s", ErrDuplicateID, s.SessionID)
	}
	return nil
}

func (r *RedisStore) FindByID(ctx context.Context, sessionID string) (*Session, error) {
	val, err := r.client.Get(ctx, r.key(sessionID)).Result()
	if err == redis.Nil {
		return nil, nil // not found
	}
	if err != nil {
		return nil, fmt.Errorf("session: lookup failed: %w", err)
	}

	var stored redisSession
	if err := json.Unmarshal([]byte(val), &stored); err != nil {
		return nil, fmt.Errorf("session: failed to unmarshal: %w", err)
	}

	s := Session(stored)
	return &s, nil
}

func (r *RedisStore) Update(ctx context.Context, sessionID string, patch Patch) error {
	found, err := r.FindByID(ctx, sessionID)
	if err != nil {
		return err
	}
	if found == nil {
		return fmt.Errorf("%w: %s", ErrNotFound, sessionID)
	}

	if patch.LoginTimestamp != nil {
		found.LoginTimestamp = *patch.LoginTimestamp
	}
	if patch.SessionData != nil {
		found.SessionData = *patch.SessionData
	}

	data, err := json.Marshal(redisSession(*found))
	if err != nil {
		return fmt.Errorf("session: failed to marshal: %w", err)
	}

	// SetXX writes only if the key still exists. A delete landing
	// between the read above and this write must not be undone: a
	// terminated session stays terminated.
	ok, err := r.client.SetXX(ctx, r.key(sessionID), data, redis.KeepTTL).Result()
	if err != nil {
		return fmt.Errorf("session: update failed: %w", err)
	}
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, sessionID)
	}
	return nil
}

func (r *RedisStore) Delete(ctx context.Context, sessionID string) error {
	if err := r.client.Del(ctx, r.key(sessionID)).Err(); err != nil {
		return fmt.Errorf("session: delete failed: %w", err)
	}
	return nil
}

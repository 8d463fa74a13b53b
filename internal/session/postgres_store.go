package session

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"
)

// PostgresStore persists sessions in the sessions table. Every statement
// binds its arguments; session ids and payloads never reach the SQL text.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore creates a Postgres-backed session store over an
// already-opened connection pool.
func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (p *PostgresStore) Create(ctx context.Context, s Session) error {
	if err := validateForCreate(s); err != nil {
		return err
	}

	_, err := p.db.ExecContext(ctx,
		`INSERT INTO sessions (session_id, user_id, session_data, login_timestamp)
		 VALUES ($1, $2, $3, $4)`,
		s.SessionID, s.UserID, s.SessionData, s.LoginTimestamp,
	)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return fmt.Errorf("%w: %s", ErrDuplicateID, s.SessionID)
		}
		return fmt.Errorf("session: create failed: %w", err)
	}
	return nil
}

func (p *PostgresStore) FindByID(ctx context.Context, sessionID string) (*Session, error) {
	var s Session
	err := p.db.QueryRowContext(ctx,
		`SELECT session_id, user_id, session_data, login_timestamp
		 FROM sessions
		 WHERE session_id = $1`,
		sessionID,
	).Scan(&s.SessionID, &s.UserID, &s.SessionData, &s.LoginTimestamp)

	if err == sql.ErrNoRows {
		return nil, nil // not found
	}
	if err != nil {
		return nil, fmt.Errorf("session: lookup failed: %w", err)
	}
	return &s, nil
}

func (p *PostgresStore) Update(ctx context.Context, sessionID string, patch Patch) error {
	set := ""
	args := []any{sessionID}

	if patch.LoginTimestamp != nil {
		args = append(args, *patch.LoginTimestamp)
		set = fmt.Sprintf("login_timestamp = $%d", len(args))
	}
	if patch.SessionData != nil {
		args = append(args, *patch.SessionData)
		if set != "" {
			set += ", "
		}
		set += fmt.Sprintf("session_data = $%d", len(args))
	}
	if set == "" {
		// Empty patch: nothing to write.
		return nil
	}

	res, err := p.db.ExecContext(ctx,
		"UPDATE sessions SET "+set+" WHERE session_id = $1",
		args...,
	)
	if err != nil {
		return fmt.Errorf("session: update failed: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("session: update failed: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, sessionID)
	}
	return nil
}

func (p *PostgresStore) Delete(ctx context.Context, sessionID string) error {
	// Deleting an absent row is a no-op by contract; the affected row
	// count is not inspected.
	_, err := p.db.ExecContext(ctx,
		`DELETE FROM sessions WHERE session_id = $1`,
		sessionID,
	)
	if err != nil {
		return fmt.Errorf("session: delete failed: %w", err)
	}
	return nil
}

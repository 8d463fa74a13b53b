package db

import (
	"context"
	"database/sql"
)

const sessionsMigration = `
CREATE TABLE IF NOT EXISTS sessions (
    session_id text PRIMARY KEY,
    user_id text NOT NULL,
    session_data text NOT NULL DEFAULT '',
    login_timestamp timestamptz NOT NULL
);

CREATE INDEX IF NOT EXISTS sessions_user_id_idx
ON sessions (user_id);
`

func RunSessionsMigration(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, sessionsMigration)
	return err
}

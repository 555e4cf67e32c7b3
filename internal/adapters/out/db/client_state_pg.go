// internal/adapters/out/db/client_state_pg.go
package db

import (
	"context"
	"database/sql"
	"errors"
	"strings"
)

// ClientStatePG implements cart.Storage on a single Postgres table.
//
// Schema:
//
//	CREATE TABLE IF NOT EXISTS client_state (
//	    key        TEXT PRIMARY KEY,
//	    value      BYTEA NOT NULL,
//	    updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
//	);
type ClientStatePG struct {
	DB *sql.DB
}

func NewClientStatePG(db *sql.DB) *ClientStatePG {
	return &ClientStatePG{DB: db}
}

// Get returns (nil, nil) if the key has no row (nil policy).
func (r *ClientStatePG) Get(ctx context.Context, key string) ([]byte, error) {
	if r == nil || r.DB == nil {
		return nil, errors.New("client_state_pg: db is nil")
	}
	k := strings.TrimSpace(key)
	if k == "" {
		return nil, errors.New("client_state_pg: key is empty")
	}

	const q = `SELECT value FROM client_state WHERE key = $1`

	var value []byte
	err := r.DB.QueryRowContext(ctx, q, k).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return value, nil
}

func (r *ClientStatePG) Set(ctx context.Context, key string, value []byte) error {
	if r == nil || r.DB == nil {
		return errors.New("client_state_pg: db is nil")
	}
	k := strings.TrimSpace(key)
	if k == "" {
		return errors.New("client_state_pg: key is empty")
	}

	const q = `
INSERT INTO client_state (key, value, updated_at)
VALUES ($1, $2, now())
ON CONFLICT (key) DO UPDATE
SET value = EXCLUDED.value, updated_at = now()`

	_, err := r.DB.ExecContext(ctx, q, k, value)
	return err
}

// Delete is idempotent; deleting a missing key succeeds.
func (r *ClientStatePG) Delete(ctx context.Context, key string) error {
	if r == nil || r.DB == nil {
		return errors.New("client_state_pg: db is nil")
	}
	k := strings.TrimSpace(key)
	if k == "" {
		return errors.New("client_state_pg: key is empty")
	}

	const q = `DELETE FROM client_state WHERE key = $1`

	_, err := r.DB.ExecContext(ctx, q, k)
	return err
}

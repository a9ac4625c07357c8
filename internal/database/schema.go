package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// EnsureKVTable creates the key-value table used by the pattern store.
func (db *DB) EnsureKVTable(ctx context.Context, table string) error {
	query := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			key        TEXT PRIMARY KEY,
			value      BYTEA NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`, pgx.Identifier{table}.Sanitize())

	if _, err := db.pool.Exec(ctx, query); err != nil {
		return fmt.Errorf("failed to create table %s: %w", table, err)
	}
	return nil
}

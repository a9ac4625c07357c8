package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/yourusername/nogg-truth/internal/database"
)

// PostgresStore keeps values in a key/value table.
type PostgresStore struct {
	db    *database.DB
	table string
}

// NewPostgresStore ensures the table exists.
func NewPostgresStore(ctx context.Context, db *database.DB, table string) (*PostgresStore, error) {
	if err := db.EnsureKVTable(ctx, table); err != nil {
		return nil, err
	}
	return &PostgresStore{db: db, table: pgx.Identifier{table}.Sanitize()}, nil
}

type querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func (p *PostgresStore) get(ctx context.Context, q querier, key string) ([]byte, error) {
	query := fmt.Sprintf(`SELECT value FROM %s WHERE key = $1`, p.table)

	var value []byte
	err := q.QueryRow(ctx, query, key).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrKeyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get %s: %w", key, err)
	}
	return value, nil
}

// Get reads the value of key.
func (p *PostgresStore) Get(ctx context.Context, key string) ([]byte, error) {
	return p.get(ctx, p.db.GetPool(), key)
}

func (p *PostgresStore) upsertQuery() string {
	return fmt.Sprintf(`
		INSERT INTO %s (key, value, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (key) DO UPDATE SET
			value = EXCLUDED.value,
			updated_at = NOW()
	`, p.table)
}

// Set upserts the value of key.
func (p *PostgresStore) Set(ctx context.Context, key string, value []byte) error {
	if _, err := p.db.GetPool().Exec(ctx, p.upsertQuery(), key, value); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}
	return nil
}

// Delete removes key.
func (p *PostgresStore) Delete(ctx context.Context, key string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE key = $1`, p.table)
	if _, err := p.db.GetPool().Exec(ctx, query, key); err != nil {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}

// Update runs fn inside a transaction holding an advisory lock on key, so
// concurrent writers from other processes queue behind each other.
func (p *PostgresStore) Update(ctx context.Context, key string, fn UpdateFunc) error {
	return p.db.WithTransaction(ctx, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, key); err != nil {
			return fmt.Errorf("failed to lock %s: %w", key, err)
		}

		current, err := p.get(ctx, tx, key)
		exists := err == nil
		if err != nil && !errors.Is(err, ErrKeyNotFound) {
			return err
		}

		next, err := fn(current, exists)
		if err != nil {
			return err
		}

		if _, err := tx.Exec(ctx, p.upsertQuery(), key, next); err != nil {
			return fmt.Errorf("failed to set %s: %w", key, err)
		}
		return nil
	})
}

// Ping checks database connectivity.
func (p *PostgresStore) Ping(ctx context.Context) error {
	return p.db.Ping(ctx)
}

// Close closes the connection pool.
func (p *PostgresStore) Close() error {
	p.db.Close()
	return nil
}

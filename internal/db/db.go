// Package db provides PostgreSQL storage for the remote documents record.
package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// DB holds the pool behind the documents table.
type DB struct {
	pool *pgxpool.Pool
}

// maxConns is small: the editor writes one record per debounce window.
const maxConns = 4

// Connect opens a pool and pings it once.
func Connect(ctx context.Context, databaseURL string) (*DB, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	cfg.MaxConns = maxConns
	cfg.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{pool: pool}, nil
}

// Close closes the connection pool
func (db *DB) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
}

// Schema creates the tables this package uses. It is safe to run repeatedly.
const Schema = `
CREATE TABLE IF NOT EXISTS user_documents (
	user_id           TEXT PRIMARY KEY,
	resume_data       JSONB NOT NULL,
	cover_letter_data JSONB NOT NULL,
	updated_at        TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

// EnsureSchema creates missing tables.
func (db *DB) EnsureSchema(ctx context.Context) error {
	if _, err := db.pool.Exec(ctx, Schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

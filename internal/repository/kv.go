package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ibraflix/internal/storage"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const createKVTable = `
CREATE TABLE IF NOT EXISTS kv_store (
	key        TEXT PRIMARY KEY,
	value      BYTEA NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
)`

// KVRepository is a storage.Adapter backed by a single Postgres table.
type KVRepository interface {
	storage.Adapter
	Migrate(ctx context.Context) error
}

type kvRepository struct {
	db *pgxpool.Pool
}

func NewKVRepository(db *pgxpool.Pool) KVRepository {
	return &kvRepository{db: db}
}

func (r *kvRepository) Migrate(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, createKVTable); err != nil {
		return fmt.Errorf("failed to create kv_store table: %w", err)
	}
	return nil
}

func (r *kvRepository) Read(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := r.db.QueryRow(ctx, "SELECT value FROM kv_store WHERE key = $1", key).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return value, nil
}

func (r *kvRepository) Write(ctx context.Context, key string, value []byte) error {
	query := `
	INSERT INTO kv_store (key, value, updated_at)
	VALUES ($1, $2, $3)
	ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at
	`
	if _, err := r.db.Exec(ctx, query, key, value, time.Now()); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

func (r *kvRepository) Clear(ctx context.Context, key string) error {
	if _, err := r.db.Exec(ctx, "DELETE FROM kv_store WHERE key = $1", key); err != nil {
		return fmt.Errorf("failed to clear %s: %w", key, err)
	}
	return nil
}

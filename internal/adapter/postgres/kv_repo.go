package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"weightlog/internal/domain"
)

var _ domain.Store = (*DB)(nil)

// Get returns the blob stored under key.
func (d *DB) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var blob []byte
	err := d.sql.QueryRowContext(ctx, "SELECT value FROM kv_store WHERE key = $1;", key).Scan(&blob)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return blob, true, nil
}

// Set upserts blob under key.
func (d *DB) Set(ctx context.Context, key string, blob []byte) error {
	_, err := d.sql.ExecContext(ctx,
		"INSERT INTO kv_store(key, value, updated_at) VALUES($1, $2, $3) ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at;",
		key, blob, time.Now().UTC(),
	)
	return err
}

// Clear removes every row from the store.
func (d *DB) Clear(ctx context.Context) error {
	_, err := d.sql.ExecContext(ctx, "DELETE FROM kv_store;")
	return err
}

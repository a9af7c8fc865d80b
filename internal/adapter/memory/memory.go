// Package memory implements an in-memory store for development and testing.
package memory

import (
	"context"
	"sync"

	"weightlog/internal/domain"
)

// DB implements an in-memory key-value store.
type DB struct {
	mu   sync.Mutex
	data map[string][]byte
}

// New creates a new in-memory store.
func New() *DB {
	return &DB{data: make(map[string][]byte)}
}

// Ensure interfaces are met.
var _ domain.Store = (*DB)(nil)

// Get returns a copy of the blob stored under key.
func (db *DB) Get(ctx context.Context, key string) ([]byte, bool, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	b, ok := db.data[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), b...), true, nil
}

// Set stores a copy of blob under key.
func (db *DB) Set(ctx context.Context, key string, blob []byte) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	db.data[key] = append([]byte(nil), blob...)
	return nil
}

// Clear removes every key.
func (db *DB) Clear(ctx context.Context) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	db.data = make(map[string][]byte)
	return nil
}

// Len returns the number of stored keys.
func (db *DB) Len() int {
	db.mu.Lock()
	defer db.mu.Unlock()
	return len(db.data)
}

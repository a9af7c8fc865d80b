// Package redisstore implements the key-value store on Redis. All keys live
// under a prefix so Clear only touches this application's data.
package redisstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"weightlog/internal/domain"
)

// DefaultPrefix namespaces keys when none is configured.
const DefaultPrefix = "weightlog:"

// Store keeps blobs as plain Redis strings under prefix+key.
type Store struct {
	rdb    *redis.Client
	prefix string
}

var _ domain.Store = (*Store)(nil)

// Options configures Open.
type Options struct {
	Addr     string
	Password string
	DB       int
	Prefix   string
}

// Open connects to Redis and pings it.
func Open(opts Options) (*Store, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return New(rdb, opts.Prefix), nil
}

// New wraps an existing client.
func New(rdb *redis.Client, prefix string) *Store {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &Store{rdb: rdb, prefix: prefix}
}

// Close closes the client.
func (s *Store) Close() error {
	return s.rdb.Close()
}

// Get returns the blob stored under key.
func (s *Store) Get(ctx context.Context, key string) ([]byte, bool, error) {
	b, err := s.rdb.Get(ctx, s.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return b, true, nil
}

// Set stores blob under key without expiry.
func (s *Store) Set(ctx context.Context, key string, blob []byte) error {
	return s.rdb.Set(ctx, s.prefix+key, blob, 0).Err()
}

// Clear deletes every key under the prefix.
func (s *Store) Clear(ctx context.Context) error {
	iter := s.rdb.Scan(ctx, 0, s.prefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		if err := s.rdb.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}

package domain

import "context"

// DefaultLogKey is the key the entry log blob is stored under.
const DefaultLogKey = "weightData"

// Store is the port for key-value persistence of serialized blobs.
type Store interface {
	// Get returns the blob stored under key. ok is false when nothing is
	// stored there.
	Get(ctx context.Context, key string) (blob []byte, ok bool, err error)
	Set(ctx context.Context, key string, blob []byte) error
	// Clear removes every key the store holds.
	Clear(ctx context.Context) error
}

package ports

import "context"

// KeyValueStore persists small JSON documents under string keys.
// Get reports ok=false for a missing key rather than an error.
type KeyValueStore interface {
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}

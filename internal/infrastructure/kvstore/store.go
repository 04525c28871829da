package kvstore

import (
	"context"
	"errors"
)

var (
	// ErrKeyNotFound indicates the key has never been written (or was reset).
	ErrKeyNotFound = errors.New("key not found")
	// ErrStoreUnavailable indicates the backing medium cannot be reached.
	ErrStoreUnavailable = errors.New("store unavailable")
)

// UpdateFunc transforms the current value of a key into its replacement.
// current is nil when the key is absent.
type UpdateFunc func(current []byte) ([]byte, error)

// Store is the key-value persistence contract: one opaque blob per key,
// every write replaces the whole value. Implementations must make Update a
// read-modify-write that cannot silently lose a concurrent writer's change.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, keys ...string) error
	Update(ctx context.Context, key string, fn UpdateFunc) error
	Ping(ctx context.Context) error
	Close() error
}

// Package store persists pattern outcome history behind a pluggable key-value backend.
package store

import (
	"context"
	"errors"
)

// Storage errors
var (
	ErrKeyNotFound     = errors.New("key not found")
	ErrPersistence     = errors.New("pattern store unavailable")
	ErrCorruptDocument = errors.New("pattern document is corrupt")
	ErrConflict        = errors.New("concurrent update conflict")
)

// KVStore is a flat string-keyed byte store. Get returns ErrKeyNotFound for a
// missing key; Delete of a missing key is not an error.
type KVStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// UpdateFunc computes the new value of a key from its current value.
// Returning an error aborts the update and leaves the stored value untouched.
type UpdateFunc func(current []byte, exists bool) ([]byte, error)

// AtomicUpdater is implemented by backends that can run a read-modify-write
// without losing concurrent updates to the same key.
type AtomicUpdater interface {
	Update(ctx context.Context, key string, fn UpdateFunc) error
}

// Backend is a KVStore with connection lifecycle.
type Backend interface {
	KVStore
	AtomicUpdater
	Ping(ctx context.Context) error
	Close() error
}

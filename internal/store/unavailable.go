package store

import (
	"context"
	"fmt"
)

// UnavailableStore stands in for a backend that could not be opened. Every
// operation fails with ErrPersistence, so lookups degrade to unknown patterns
// while scoring keeps working.
type UnavailableStore struct {
	cause error
}

// NewUnavailableStore returns a backend that reports cause on every call.
func NewUnavailableStore(cause error) *UnavailableStore {
	return &UnavailableStore{cause: cause}
}

func (u *UnavailableStore) err() error {
	return fmt.Errorf("%w: %w", ErrPersistence, u.cause)
}

// Get implements KVStore.
func (u *UnavailableStore) Get(context.Context, string) ([]byte, error) {
	return nil, u.err()
}

// Set implements KVStore.
func (u *UnavailableStore) Set(context.Context, string, []byte) error {
	return u.err()
}

// Delete implements KVStore.
func (u *UnavailableStore) Delete(context.Context, string) error {
	return u.err()
}

// Update implements AtomicUpdater.
func (u *UnavailableStore) Update(context.Context, string, UpdateFunc) error {
	return u.err()
}

// Ping reports the open failure.
func (u *UnavailableStore) Ping(context.Context) error {
	return u.err()
}

// Close is a no-op.
func (u *UnavailableStore) Close() error {
	return nil
}

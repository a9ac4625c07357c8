package store

import (
	"context"
	"sync"

	cache "github.com/patrickmn/go-cache"
)

// MemoryStore keeps values in process memory. Contents are lost on exit.
type MemoryStore struct {
	cache *cache.Cache
	mu    sync.Mutex
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		cache: cache.New(cache.NoExpiration, 0),
	}
}

// Get returns a copy of the stored value.
func (m *MemoryStore) Get(ctx context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.get(key)
}

func (m *MemoryStore) get(key string) ([]byte, error) {
	item, found := m.cache.Get(key)
	if !found {
		return nil, ErrKeyNotFound
	}
	value, ok := item.([]byte)
	if !ok {
		return nil, ErrCorruptDocument
	}
	return append([]byte(nil), value...), nil
}

// Set stores a copy of value.
func (m *MemoryStore) Set(ctx context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cache.Set(key, append([]byte(nil), value...), cache.NoExpiration)
	return nil
}

// Delete removes key.
func (m *MemoryStore) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cache.Delete(key)
	return nil
}

// Update runs fn under the store lock.
func (m *MemoryStore) Update(ctx context.Context, key string, fn UpdateFunc) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	current, err := m.get(key)
	exists := err == nil
	if err != nil && err != ErrKeyNotFound {
		return err
	}

	next, err := fn(current, exists)
	if err != nil {
		return err
	}
	m.cache.Set(key, append([]byte(nil), next...), cache.NoExpiration)
	return nil
}

// Ping always succeeds.
func (m *MemoryStore) Ping(ctx context.Context) error {
	return nil
}

// Close flushes all values.
func (m *MemoryStore) Close() error {
	m.cache.Flush()
	return nil
}

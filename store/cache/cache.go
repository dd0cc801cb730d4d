// Package cache provides a small key/value cache for serialized computation
// results, keyed by a digest of the request. A Redis-backed implementation
// is used in deployment; the in-memory one serves tests and single-process
// runs.
package cache

import (
	"context"
	"sync"
)

// Cache stores serialized results. Implementations must be safe for
// concurrent use. A failed lookup is reported via the bool, never an error:
// caching is best-effort and callers always recompute on a miss.
type Cache interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key, value string) error
}

// Memory is a mutex-guarded map cache.
type Memory struct {
	mu   sync.RWMutex
	data map[string]string
}

func NewMemory() *Memory {
	return &Memory{data: make(map[string]string)}
}

func (m *Memory) Get(_ context.Context, key string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	val, ok := m.data[key]
	return val, ok
}

func (m *Memory) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

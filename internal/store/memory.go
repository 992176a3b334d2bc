// internal/store/memory.go
//
// In-memory implementation of the Store interface.
// This is the default cache for upstream puzzle payloads when no
// PUZZLE_CACHE_DSN is configured.
//
// Characteristics:
//   - Stores raw payloads keyed by date (YYYY-MM-DD) in a map.
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - State is lost when the process restarts.

package store

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
)

// ErrNotFound is returned by Get when no payload is cached for a date.
var ErrNotFound = errors.New("store: not found")

// Store defines the persistence interface for upstream puzzle payloads.
// Implementations may be backed by memory (this file) or SQLite (sqlite.go).
type Store interface {
	// Put persists or replaces the payload for date.
	Put(ctx context.Context, date string, payload json.RawMessage) error

	// Get retrieves the payload for date.
	// Returns ErrNotFound if nothing is cached.
	Get(ctx context.Context, date string) (json.RawMessage, error)

	// Close releases underlying resources.
	Close() error
}

// memory is an in-memory map-based Store implementation.
type memory struct {
	mu       sync.RWMutex               // guards payloads map
	payloads map[string]json.RawMessage // keyed by date
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return &memory{payloads: make(map[string]json.RawMessage)}
}

// Put stores a private copy of payload.
func (m *memory) Put(ctx context.Context, date string, payload json.RawMessage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.payloads[date] = append(json.RawMessage(nil), payload...)
	return nil
}

// Get looks up a payload by date and returns a copy.
func (m *memory) Get(ctx context.Context, date string) (json.RawMessage, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if p, ok := m.payloads[date]; ok {
		return append(json.RawMessage(nil), p...), nil
	}
	return nil, ErrNotFound
}

func (m *memory) Close() error { return nil }

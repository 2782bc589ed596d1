// Package memstore provides an in-memory Pantry backend. It mirrors
// the SQLite backend's semantics without touching disk; tests and
// ephemeral runs use it in place of a data directory.
package memstore

import (
	"sort"
	"strings"
	"sync"

	"github.com/platewise/recipebox/pkg/types"
)

// Compile-time interface check.
var _ types.Pantry = (*Backend)(nil)

// Backend is an in-memory key-value store. Safe for concurrent access.
// Detach discards all records.
type Backend struct {
	mu       sync.RWMutex
	attached bool
	records  map[string][]byte
}

// NewBackend creates an empty in-memory backend.
func NewBackend() *Backend {
	return &Backend{}
}

// Attach initializes the backend. The config's DataDir is ignored.
// Returns ErrAlreadyAttached if already attached.
func (b *Backend) Attach(config types.Config) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.attached {
		return types.ErrAlreadyAttached
	}
	if err := config.Validate(); err != nil {
		return err
	}

	b.records = make(map[string][]byte)
	b.attached = true
	return nil
}

// Detach discards all records. Idempotent.
func (b *Backend) Detach() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.records = nil
	b.attached = false
	return nil
}

// Get returns a copy of the payload stored under key.
func (b *Backend) Get(key string) ([]byte, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return nil, types.ErrDetached
	}
	if key == "" {
		return nil, types.ErrInvalidKey
	}

	value, ok := b.records[key]
	if !ok {
		return nil, types.ErrKeyNotFound
	}
	out := make([]byte, len(value))
	copy(out, value)
	return out, nil
}

// Put stores a copy of the payload under key.
func (b *Backend) Put(key string, value []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return types.ErrDetached
	}
	if key == "" {
		return types.ErrInvalidKey
	}

	stored := make([]byte, len(value))
	copy(stored, value)
	b.records[key] = stored
	return nil
}

// Delete removes the key. Deleting an absent key is not an error.
func (b *Backend) Delete(key string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return types.ErrDetached
	}
	if key == "" {
		return types.ErrInvalidKey
	}

	delete(b.records, key)
	return nil
}

// Exists reports whether the key currently holds a value.
func (b *Backend) Exists(key string) (bool, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return false, types.ErrDetached
	}
	if key == "" {
		return false, types.ErrInvalidKey
	}

	_, ok := b.records[key]
	return ok, nil
}

// Keys returns all keys with the given prefix, sorted.
func (b *Backend) Keys(prefix string) ([]string, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return nil, types.ErrDetached
	}

	var keys []string
	for key := range b.records {
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	return keys, nil
}

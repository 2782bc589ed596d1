// Package pantry implements the local persistent store facade. It
// wraps a Pantry backend with JSON encoding, companion timestamps for
// drafts, and same-process change notification. Storage and codec
// failures are absorbed here: operations log and return false instead
// of propagating, so a corrupt record can never crash a read path.
package pantry

import (
	"encoding/json"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/platewise/recipebox/pkg/types"
)

// Store is the key-value facade every component reads and writes
// through. Safe for concurrent use.
type Store struct {
	backend types.Pantry
	log     *zap.Logger

	mu   sync.Mutex
	subs map[string]map[int]chan struct{}
	next int
}

// NewStore wraps an attached backend. The logger may be zap.NewNop().
func NewStore(backend types.Pantry, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{
		backend: backend,
		log:     log,
		subs:    make(map[string]map[int]chan struct{}),
	}
}

// Save serializes value to JSON and stores it under key. Draft keys
// get a companion timestamp record. Subscribers of the key are
// notified. Returns false (after logging) on any encode or storage
// failure; never panics or propagates.
func (s *Store) Save(key string, value any) bool {
	data, err := json.Marshal(value)
	if err != nil {
		s.log.Warn("failed to encode value", zap.String("key", key), zap.Error(err))
		return false
	}
	if err := s.backend.Put(key, data); err != nil {
		s.log.Warn("failed to write key", zap.String("key", key), zap.Error(err))
		return false
	}
	if types.IsDraftKey(key) {
		stamp := time.Now().UTC().Format(time.RFC3339)
		stampData, _ := json.Marshal(stamp)
		if err := s.backend.Put(types.TimestampKey(key), stampData); err != nil {
			s.log.Warn("failed to write companion timestamp", zap.String("key", key), zap.Error(err))
		}
	}
	s.notify(key)
	return true
}

// Load reads the record under key and decodes it into dest. Returns
// false when the key is absent, the backend fails, or the payload does
// not decode; dest is left untouched so the caller's zero value serves
// as the default.
func (s *Store) Load(key string, dest any) bool {
	data, err := s.backend.Get(key)
	if err != nil {
		if !errors.Is(err, types.ErrKeyNotFound) {
			s.log.Warn("failed to read key", zap.String("key", key), zap.Error(err))
		}
		return false
	}
	if err := json.Unmarshal(data, dest); err != nil {
		s.log.Warn("malformed stored value", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

// LoadRaw returns the stored bytes without decoding. The change
// observer uses it to compare values across polls.
func (s *Store) LoadRaw(key string) ([]byte, bool) {
	data, err := s.backend.Get(key)
	if err != nil {
		if !errors.Is(err, types.ErrKeyNotFound) {
			s.log.Warn("failed to read key", zap.String("key", key), zap.Error(err))
		}
		return nil, false
	}
	return data, true
}

// Remove deletes the record and, for draft keys, its companion
// timestamp. Removing an absent key succeeds. Returns false only on
// backend failure.
func (s *Store) Remove(key string) bool {
	if err := s.backend.Delete(key); err != nil {
		s.log.Warn("failed to delete key", zap.String("key", key), zap.Error(err))
		return false
	}
	if types.IsDraftKey(key) {
		if err := s.backend.Delete(types.TimestampKey(key)); err != nil {
			s.log.Warn("failed to delete companion timestamp", zap.String("key", key), zap.Error(err))
		}
	}
	s.notify(key)
	return true
}

// Exists reports whether key holds a value. Backend failures read as
// absent.
func (s *Store) Exists(key string) bool {
	ok, err := s.backend.Exists(key)
	if err != nil {
		s.log.Warn("failed to check key", zap.String("key", key), zap.Error(err))
		return false
	}
	return ok
}

// Keys lists stored keys by prefix. Backend failures read as empty.
func (s *Store) Keys(prefix string) []string {
	keys, err := s.backend.Keys(prefix)
	if err != nil {
		s.log.Warn("failed to list keys", zap.String("prefix", prefix), zap.Error(err))
		return nil
	}
	return keys
}

// SavedAt returns the companion timestamp recorded by the last Save of
// a draft key. The second return is false when no timestamp exists or
// it does not parse.
func (s *Store) SavedAt(key string) (time.Time, bool) {
	data, err := s.backend.Get(types.TimestampKey(key))
	if err != nil {
		return time.Time{}, false
	}
	var stamp string
	if err := json.Unmarshal(data, &stamp); err != nil {
		s.log.Warn("malformed companion timestamp", zap.String("key", key), zap.Error(err))
		return time.Time{}, false
	}
	at, err := time.Parse(time.RFC3339, stamp)
	if err != nil {
		s.log.Warn("malformed companion timestamp", zap.String("key", key), zap.Error(err))
		return time.Time{}, false
	}
	return at, true
}

// Subscribe registers for same-process change notification on key.
// The channel receives a coalesced signal after every Save or Remove
// of that key; the caller re-reads the current value. The returned
// cancel function releases the subscription.
func (s *Store) Subscribe(key string) (<-chan struct{}, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ch := make(chan struct{}, 1)
	id := s.next
	s.next++

	if s.subs[key] == nil {
		s.subs[key] = make(map[int]chan struct{})
	}
	s.subs[key][id] = ch

	cancel := func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if set, ok := s.subs[key]; ok {
			delete(set, id)
			if len(set) == 0 {
				delete(s.subs, key)
			}
		}
	}
	return ch, cancel
}

// notify signals every subscriber of key without blocking. A full
// channel means a signal is already pending; the subscriber re-reads
// once, which covers both writes.
func (s *Store) notify(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, ch := range s.subs[key] {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

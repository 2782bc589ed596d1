// Package favorites maintains the favorites set: denormalized recipe
// snapshots keyed by recipe id, persisted as one record. The whole set
// lives under a single last-write-wins key, so every read-modify-write
// runs under one mutex, and Toggle additionally dedupes overlapping
// invocations per recipe id so a double-toggle cannot lose an update.
package favorites

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/platewise/recipebox/internal/pantry"
	"github.com/platewise/recipebox/pkg/types"
)

// Reconciler owns the favorites set. Safe for concurrent use.
type Reconciler struct {
	store  *pantry.Store
	log    *zap.Logger
	mu     sync.Mutex
	flight singleflight.Group
}

// NewReconciler creates a reconciler over the store.
func NewReconciler(store *pantry.Store, log *zap.Logger) *Reconciler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Reconciler{store: store, log: log}
}

// List returns the current favorites. Two on-disk shapes are accepted:
// the current bare sequence, and the legacy object with an items
// field. Anything else reads as empty.
func (r *Reconciler) List() []types.FavoriteEntry {
	return r.load()
}

// Count returns the number of favorited recipes.
func (r *Reconciler) Count() int {
	return len(r.load())
}

// IsFavorited reports membership by recipe id.
func (r *Reconciler) IsFavorited(recipeID string) bool {
	for _, entry := range r.load() {
		if entry.ID == recipeID {
			return true
		}
	}
	return false
}

// Add snapshots the recipe into the set, defaulting every optional
// display field. Returns false when an entry with the same id already
// exists, when the recipe has no id, or when the write fails.
func (r *Reconciler) Add(recipe types.Recipe) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.addLocked(recipe)
}

// Remove filters the entry out by id and writes the set back. Always
// returns true: removing an absent id is not an error.
func (r *Reconciler) Remove(recipeID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.removeLocked(recipeID)
	return true
}

// Toggle flips membership for the recipe and returns the new state
// (true = now favorited). Overlapping toggles for the same recipe id
// share a single flight, so rapid repeated invocations converge on one
// well-defined result instead of racing the read-modify-write.
func (r *Reconciler) Toggle(recipe types.Recipe) (bool, error) {
	if recipe.ID == "" {
		return false, fmt.Errorf("%w: recipe id required", types.ErrInvalidInput)
	}

	result, err, _ := r.flight.Do(recipe.ID, func() (any, error) {
		r.mu.Lock()
		defer r.mu.Unlock()

		if r.containsLocked(recipe.ID) {
			r.removeLocked(recipe.ID)
			return false, nil
		}
		if !r.addLocked(recipe) {
			return false, fmt.Errorf("adding favorite %s failed", recipe.ID)
		}
		return true, nil
	})
	if err != nil {
		return false, err
	}
	return result.(bool), nil
}

func (r *Reconciler) addLocked(recipe types.Recipe) bool {
	if recipe.ID == "" {
		r.log.Warn("refusing to favorite recipe without id")
		return false
	}

	entries := r.load()
	for _, entry := range entries {
		if entry.ID == recipe.ID {
			return false
		}
	}

	entries = append(entries, types.NewFavoriteEntry(recipe, time.Now()))
	return r.store.Save(types.KeyFavorites, entries)
}

func (r *Reconciler) removeLocked(recipeID string) {
	entries := r.load()
	kept := entries[:0]
	for _, entry := range entries {
		if entry.ID != recipeID {
			kept = append(kept, entry)
		}
	}
	r.store.Save(types.KeyFavorites, kept)
}

func (r *Reconciler) containsLocked(recipeID string) bool {
	for _, entry := range r.load() {
		if entry.ID == recipeID {
			return true
		}
	}
	return false
}

// load reads and normalizes the stored set. Decode failures and the
// empty store both yield an empty slice, never nil.
func (r *Reconciler) load() []types.FavoriteEntry {
	data, ok := r.store.LoadRaw(types.KeyFavorites)
	if !ok {
		return []types.FavoriteEntry{}
	}

	var entries []types.FavoriteEntry
	if err := json.Unmarshal(data, &entries); err == nil {
		if entries == nil {
			return []types.FavoriteEntry{}
		}
		return entries
	}

	// Legacy shape: {"items": [...]}.
	var legacy struct {
		Items []types.FavoriteEntry `json:"items"`
	}
	if err := json.Unmarshal(data, &legacy); err == nil && legacy.Items != nil {
		return legacy.Items
	}

	r.log.Warn("malformed favorites record, treating as empty")
	return []types.FavoriteEntry{}
}

// Package drafts persists unsubmitted form snapshots. Each draft lives
// under its own prefixed key with a companion timestamp record, so
// "saved two minutes ago" displays survive restarts. Draft ids are the
// new-recipe form ("create"), a recipe id for edits, or the reserved
// profile id.
package drafts

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/platewise/recipebox/internal/pantry"
	"github.com/platewise/recipebox/pkg/types"
)

// Entry is one draft in a listing.
type Entry struct {
	ID      string    `json:"id"`
	SavedAt time.Time `json:"saved_at"`
}

// Keeper owns the draft records.
type Keeper struct {
	store *pantry.Store
	log   *zap.Logger
}

// NewKeeper creates a keeper over the store.
func NewKeeper(store *pantry.Store, log *zap.Logger) *Keeper {
	if log == nil {
		log = zap.NewNop()
	}
	return &Keeper{store: store, log: log}
}

// Save snapshots the payload under the draft id, stamping it with the
// current time.
func (k *Keeper) Save(draftID string, payload any) error {
	if draftID == "" {
		return fmt.Errorf("%w: draft id required", types.ErrInvalidInput)
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encoding draft payload: %w", err)
	}
	draft := types.Draft{
		SavedAt: time.Now().UTC().Format(time.RFC3339),
		Payload: raw,
	}
	if !k.store.Save(types.DraftKey(draftID), draft) {
		return fmt.Errorf("persisting draft %s failed", draftID)
	}
	return nil
}

// Load decodes the draft payload into dest and returns when it was
// saved. Returns false when no draft exists or the record does not
// decode.
func (k *Keeper) Load(draftID string, dest any) (time.Time, bool) {
	draft, ok := k.get(draftID)
	if !ok {
		return time.Time{}, false
	}
	if dest != nil {
		if err := json.Unmarshal(draft.Payload, dest); err != nil {
			k.log.Warn("malformed draft payload", zap.String("draft_id", draftID), zap.Error(err))
			return time.Time{}, false
		}
	}
	savedAt, err := time.Parse(time.RFC3339, draft.SavedAt)
	if err != nil {
		savedAt = time.Time{}
	}
	return savedAt, true
}

// Raw returns the stored payload bytes without decoding.
func (k *Keeper) Raw(draftID string) (json.RawMessage, bool) {
	draft, ok := k.get(draftID)
	if !ok {
		return nil, false
	}
	return draft.Payload, true
}

// Discard removes the draft and its companion timestamp. Discarding an
// absent draft succeeds.
func (k *Keeper) Discard(draftID string) bool {
	return k.store.Remove(types.DraftKey(draftID))
}

// List returns all drafts, newest first.
func (k *Keeper) List() []Entry {
	var entries []Entry
	for _, key := range k.store.Keys(types.DraftKeyPrefix) {
		if !types.IsDraftKey(key) {
			continue // companion timestamp records share the prefix
		}
		id := types.DraftID(key)
		entry := Entry{ID: id}
		if at, ok := k.Load(id, nil); ok {
			entry.SavedAt = at
		}
		entries = append(entries, entry)
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].SavedAt.After(entries[j].SavedAt)
	})
	return entries
}

// Age returns how long ago the draft was saved.
func (k *Keeper) Age(draftID string) (time.Duration, bool) {
	if at, ok := k.store.SavedAt(types.DraftKey(draftID)); ok {
		return time.Since(at), true
	}
	// The companion record may be missing; fall back to the draft body.
	at, ok := k.Load(draftID, nil)
	if !ok || at.IsZero() {
		return 0, false
	}
	return time.Since(at), true
}

func (k *Keeper) get(draftID string) (types.Draft, bool) {
	var draft types.Draft
	if !k.store.Load(types.DraftKey(draftID), &draft) {
		return types.Draft{}, false
	}
	return draft, true
}

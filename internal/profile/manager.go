// Package profile manages the singleton user profile record. The
// profile is created with defaults on first read, mutated only through
// explicit saves, and never deleted; cancelling an edit discards the
// pending draft so the next read reflects the last saved state.
package profile

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/platewise/recipebox/internal/pantry"
	"github.com/platewise/recipebox/pkg/types"
)

// Manager owns the user_profile record.
type Manager struct {
	store *pantry.Store
	log   *zap.Logger
}

// NewManager creates a manager over the store.
func NewManager(store *pantry.Store, log *zap.Logger) *Manager {
	if log == nil {
		log = zap.NewNop()
	}
	return &Manager{store: store, log: log}
}

// Get returns the saved profile, or the default profile when none has
// been saved yet (or the record does not decode).
func (m *Manager) Get() types.UserProfile {
	var profile types.UserProfile
	if !m.store.Load(types.KeyUserProfile, &profile) {
		return types.DefaultProfile()
	}
	if profile.Username == "" {
		profile.Username = types.DefaultUsername
	}
	return profile
}

// Save validates and persists the profile.
func (m *Manager) Save(profile types.UserProfile) error {
	if err := types.Validate(profile); err != nil {
		return err
	}
	if !m.store.Save(types.KeyUserProfile, profile) {
		return fmt.Errorf("persisting profile failed")
	}
	return nil
}

// Reset discards the pending profile edit draft. The saved record is
// untouched, so the next Get returns the last saved state.
func (m *Manager) Reset() {
	m.store.Remove(types.DraftKey(types.DraftIDProfile))
}

// UserIdentifier resolves the identifier recorded on reviews: an
// explicitly configured name wins, then the profile username, then
// the anonymous fallback.
func (m *Manager) UserIdentifier(configured string) string {
	if configured != "" {
		return configured
	}
	if username := m.Get().Username; username != "" {
		return username
	}
	return "anonymous"
}

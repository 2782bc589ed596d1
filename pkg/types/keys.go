package types

import "strings"

// Reserved singleton keys. Each holds exactly one JSON document.
const (
	// KeyUserProfile holds the UserProfile document.
	KeyUserProfile = "user_profile"

	// KeyFavorites holds the saved favorites list.
	KeyFavorites = "user_favorites"

	// KeyReviews holds the map of recipe id to local review list.
	KeyReviews = "recipe_reviews"

	// KeyRecipeCache holds the locally cached recipe summaries.
	KeyRecipeCache = "recipe_cache"
)

// Draft key construction.
const (
	// DraftKeyPrefix prefixes every per-form draft key.
	DraftKeyPrefix = "recipe_draft_"

	// TimestampSuffix is appended to a draft key to form its companion
	// timestamp key.
	TimestampSuffix = "_recipe_draft_timestamp"
)

// Well-known draft identifiers.
const (
	// DraftIDCreate identifies the new-recipe form draft.
	DraftIDCreate = "create"

	// DraftIDProfile identifies the profile form draft.
	DraftIDProfile = "profile"
)

// DraftKey returns the storage key for the draft with the given id.
func DraftKey(id string) string {
	return DraftKeyPrefix + id
}

// TimestampKey returns the companion timestamp key for a draft key.
func TimestampKey(draftKey string) string {
	return draftKey + TimestampSuffix
}

// IsDraftKey reports whether key names a draft payload. Companion
// timestamp keys are not draft keys.
func IsDraftKey(key string) bool {
	return strings.HasPrefix(key, DraftKeyPrefix) && !strings.HasSuffix(key, TimestampSuffix)
}

// DraftID extracts the draft identifier from a draft key. Returns ""
// if key is not a draft key.
func DraftID(key string) string {
	if !IsDraftKey(key) {
		return ""
	}
	return strings.TrimPrefix(key, DraftKeyPrefix)
}

// IsSingletonKey reports whether key is one of the reserved singleton
// document keys.
func IsSingletonKey(key string) bool {
	switch key {
	case KeyUserProfile, KeyFavorites, KeyReviews, KeyRecipeCache:
		return true
	}
	return false
}

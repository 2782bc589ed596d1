package types

import "testing"

func TestDraftKey(t *testing.T) {
	if got := DraftKey("create"); got != "recipe_draft_create" {
		t.Errorf("expected recipe_draft_create, got %q", got)
	}
	if got := DraftKey("r42"); got != "recipe_draft_r42" {
		t.Errorf("expected recipe_draft_r42, got %q", got)
	}
}

func TestTimestampKey(t *testing.T) {
	key := DraftKey("create")
	want := "recipe_draft_create_recipe_draft_timestamp"
	if got := TimestampKey(key); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestIsDraftKey(t *testing.T) {
	tests := []struct {
		key  string
		want bool
	}{
		{"recipe_draft_create", true},
		{"recipe_draft_r1", true},
		{"recipe_draft_create_recipe_draft_timestamp", false},
		{"user_profile", false},
		{"user_favorites", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := IsDraftKey(tt.key); got != tt.want {
			t.Errorf("IsDraftKey(%q): expected %v, got %v", tt.key, tt.want, got)
		}
	}
}

func TestDraftID(t *testing.T) {
	tests := []struct {
		key  string
		want string
	}{
		{"recipe_draft_create", "create"},
		{"recipe_draft_r1", "r1"},
		{"recipe_draft_r1_recipe_draft_timestamp", ""},
		{"user_profile", ""},
	}

	for _, tt := range tests {
		if got := DraftID(tt.key); got != tt.want {
			t.Errorf("DraftID(%q): expected %q, got %q", tt.key, tt.want, got)
		}
	}
}

func TestIsSingletonKey(t *testing.T) {
	for _, key := range []string{KeyUserProfile, KeyFavorites, KeyReviews, KeyRecipeCache} {
		if !IsSingletonKey(key) {
			t.Errorf("expected %q to be a singleton key", key)
		}
	}
	for _, key := range []string{"recipe_draft_create", "other", ""} {
		if IsSingletonKey(key) {
			t.Errorf("expected %q to not be a singleton key", key)
		}
	}
}

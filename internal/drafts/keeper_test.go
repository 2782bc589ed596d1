package drafts

import (
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/platewise/recipebox/internal/memstore"
	"github.com/platewise/recipebox/internal/pantry"
	"github.com/platewise/recipebox/pkg/types"
)

func newFixture(t *testing.T) (*Keeper, *pantry.Store) {
	t.Helper()
	backend := memstore.NewBackend()
	if err := backend.Attach(types.Config{Backend: types.BackendMemory}); err != nil {
		t.Fatalf("attach failed: %v", err)
	}
	t.Cleanup(func() { _ = backend.Detach() })
	store := pantry.NewStore(backend, zap.NewNop())
	return NewKeeper(store, zap.NewNop()), store
}

type recipeForm struct {
	Name     string `json:"name"`
	Servings int    `json:"servings"`
}

func TestSaveLoadRoundTrip(t *testing.T) {
	k, _ := newFixture(t)

	form := recipeForm{Name: "Soto in progress", Servings: 4}
	if err := k.Save("create", form); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	var got recipeForm
	savedAt, ok := k.Load("create", &got)
	if !ok {
		t.Fatal("expected draft present")
	}
	if got != form {
		t.Fatalf("expected %+v, got %+v", form, got)
	}
	if time.Since(savedAt) > time.Minute {
		t.Fatalf("unexpected saved_at: %v", savedAt)
	}
}

func TestSaveRequiresID(t *testing.T) {
	k, _ := newFixture(t)

	if err := k.Save("", recipeForm{}); !errors.Is(err, types.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestLoadMissingDraft(t *testing.T) {
	k, _ := newFixture(t)

	var got recipeForm
	if _, ok := k.Load("nope", &got); ok {
		t.Fatal("expected no draft")
	}
}

func TestDiscardIdempotent(t *testing.T) {
	k, store := newFixture(t)

	if err := k.Save("r1", recipeForm{Name: "edit"}); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if !k.Discard("r1") {
		t.Fatal("discard failed")
	}
	if !k.Discard("r1") {
		t.Fatal("discarding an absent draft must succeed")
	}
	if store.Exists(types.DraftKey("r1")) {
		t.Fatal("expected draft removed")
	}
	if store.Exists(types.TimestampKey(types.DraftKey("r1"))) {
		t.Fatal("expected companion timestamp removed")
	}
}

func TestListNewestFirst(t *testing.T) {
	k, store := newFixture(t)

	// Backdate one draft by writing its record directly.
	old := types.Draft{
		SavedAt: time.Now().Add(-time.Hour).UTC().Format(time.RFC3339),
		Payload: []byte(`{"name":"old"}`),
	}
	store.Save(types.DraftKey("old"), old)
	if err := k.Save("new", recipeForm{Name: "new"}); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	entries := k.List()
	if len(entries) != 2 {
		t.Fatalf("expected 2 drafts, got %d", len(entries))
	}
	if entries[0].ID != "new" || entries[1].ID != "old" {
		t.Fatalf("expected newest first, got %+v", entries)
	}
}

func TestListSkipsCompanionRecords(t *testing.T) {
	k, _ := newFixture(t)

	if err := k.Save("create", recipeForm{Name: "x"}); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	entries := k.List()
	if len(entries) != 1 {
		t.Fatalf("companion timestamp leaked into listing: %+v", entries)
	}
}

func TestAge(t *testing.T) {
	k, _ := newFixture(t)

	if _, ok := k.Age("create"); ok {
		t.Fatal("expected no age for missing draft")
	}
	if err := k.Save("create", recipeForm{Name: "x"}); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	age, ok := k.Age("create")
	if !ok {
		t.Fatal("expected age for saved draft")
	}
	if age < 0 || age > time.Minute {
		t.Fatalf("unexpected age: %v", age)
	}
}

func TestRaw(t *testing.T) {
	k, _ := newFixture(t)

	if err := k.Save("create", recipeForm{Name: "x", Servings: 2}); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	raw, ok := k.Raw("create")
	if !ok {
		t.Fatal("expected raw payload")
	}
	if string(raw) != `{"name":"x","servings":2}` {
		t.Fatalf("unexpected raw payload: %s", raw)
	}
}

package integration

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/platewise/recipebox/pkg/types"
)

func TestCreateDraftLifecycle(t *testing.T) {
	// Drafts are purely local; no service needed to save one.
	env := NewTestEnv(t)

	saved := env.MustRunPantry("recipes", "create",
		"--name", "Tamarind Cooler",
		"--category", "drink",
		"--servings", "2",
		"--draft")
	assert.Contains(t, saved.Stdout, "Draft saved")

	list := env.MustRunPantry("draft", "list")
	assert.Contains(t, list.Stdout, "create")
	assert.Contains(t, list.Stdout, "Tamarind Cooler")
	assert.Contains(t, list.Stdout, "Total: 1 draft(s)")

	show := env.MustRunPantry("draft", "show", "create")
	assert.Contains(t, show.Stdout, "Draft: create")
	assert.Contains(t, show.Stdout, "Tamarind Cooler")

	// Submitting the draft needs the service back.
	fake := newFakeService(t)
	env.APIURL = fake.URL()

	submitted := env.MustRunPantry("recipes", "create", "--from-draft")
	id := extractAfter(t, submitted.Stdout, "Created recipe: ")

	stored, ok := fake.getRecipe(id)
	require.True(t, ok)
	assert.Equal(t, "Tamarind Cooler", stored.Name)

	// Submission discards the draft.
	list = env.MustRunPantry("draft", "list")
	assert.Contains(t, list.Stdout, "No drafts saved.")
}

func TestCreateFromDraftMissing(t *testing.T) {
	env := NewTestEnv(t)
	fake := newFakeService(t)
	env.APIURL = fake.URL()

	result := env.RunPantry("recipes", "create", "--from-draft")
	assert.Equal(t, 1, result.ExitCode)
	assert.Contains(t, result.Stderr, "no create draft stored")
}

func TestUpdateDraftPerRecipe(t *testing.T) {
	env := NewTestEnv(t)
	fake := newFakeService(t)
	env.APIURL = fake.URL()

	seeded := fake.addRecipe(types.Recipe{Name: "Dal Tadka", Category: "food", Difficulty: "easy", Servings: 4})

	saved := env.MustRunPantry("recipes", "update", seeded.ID,
		"--name", "Dal Tadka (mild)",
		"--servings", "6",
		"--draft")
	assert.Contains(t, saved.Stdout, "Draft saved for "+seeded.ID)

	// The edit is held locally, not submitted.
	stored, _ := fake.getRecipe(seeded.ID)
	assert.Equal(t, "Dal Tadka", stored.Name)

	show := env.MustRunPantry("draft", "show", seeded.ID)
	assert.Contains(t, show.Stdout, "Dal Tadka (mild)")

	submitted := env.MustRunPantry("recipes", "update", seeded.ID, "--from-draft")
	assert.Contains(t, submitted.Stdout, "Updated "+seeded.ID)

	stored, _ = fake.getRecipe(seeded.ID)
	assert.Equal(t, "Dal Tadka (mild)", stored.Name)
	assert.Equal(t, 6, stored.Servings)

	list := env.MustRunPantry("draft", "list")
	assert.Contains(t, list.Stdout, "No drafts saved.")
}

func TestUpdateFromDraftMissing(t *testing.T) {
	env := NewTestEnv(t)
	fake := newFakeService(t)
	env.APIURL = fake.URL()

	seeded := fake.addRecipe(types.Recipe{Name: "Kheer", Category: "food", Difficulty: "easy", Servings: 4})

	result := env.RunPantry("recipes", "update", seeded.ID, "--from-draft")
	assert.Equal(t, 1, result.ExitCode)
	assert.Contains(t, result.Stderr, "no draft stored for recipe")
}

func TestDraftDiscard(t *testing.T) {
	env := NewTestEnv(t)

	env.MustRunPantry("recipes", "create", "--name", "Scrap", "--draft")

	discarded := env.MustRunPantry("draft", "discard", "create")
	assert.Contains(t, discarded.Stdout, "Discarded draft create")

	list := env.MustRunPantry("draft", "list")
	assert.Contains(t, list.Stdout, "No drafts saved.")

	fake := newFakeService(t)
	env.APIURL = fake.URL()
	result := env.RunPantry("recipes", "create", "--from-draft")
	assert.Equal(t, 1, result.ExitCode)
}

func TestDraftShowMissing(t *testing.T) {
	env := NewTestEnv(t)

	result := env.RunPantry("draft", "show", "nope")
	assert.Equal(t, 1, result.ExitCode)
	assert.Contains(t, result.Stderr, `no draft "nope"`)
}

func TestDraftShowJSON(t *testing.T) {
	env := NewTestEnv(t)

	env.MustRunPantry("recipes", "create",
		"--name", "Gajar Halwa",
		"--category", "food",
		"--servings", "4",
		"--draft")

	result := env.MustRunPantry("draft", "show", "create", "--json")
	draft := ParseJSON[types.Recipe](t, result.Stdout)
	assert.Equal(t, "Gajar Halwa", draft.Name)
	assert.Equal(t, 4, draft.Servings)
}

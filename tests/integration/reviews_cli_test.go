package integration

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/platewise/recipebox/pkg/types"
)

func TestReviewAddRemote(t *testing.T) {
	env := NewTestEnv(t)
	fake := newFakeService(t)
	env.APIURL = fake.URL()

	seeded := fake.addRecipe(types.Recipe{Name: "Dal Tadka", Category: "food", Difficulty: "easy", Servings: 4})

	result := env.MustRunPantry("review", "add", seeded.ID,
		"--rating", "5", "--comment", "Weeknight staple.")
	id := extractAfter(t, result.Stdout, "Created review: ")
	require.NotEmpty(t, id)

	stored := fake.reviewsFor(seeded.ID)
	require.Len(t, stored, 1)
	assert.Equal(t, 5, stored[0].Rating)
	assert.Equal(t, "Weeknight staple.", stored[0].Comment)
	assert.Equal(t, "chef", stored[0].User, "the default profile username signs reviews")
	assert.Equal(t, "Dal Tadka", stored[0].RecipeName)
}

func TestReviewUserFromConfig(t *testing.T) {
	env := NewTestEnv(t)
	fake := newFakeService(t)
	env.APIURL = fake.URL()
	env.AppendConfig("user:\n  name: marisol\n")

	seeded := fake.addRecipe(types.Recipe{Name: "Kheer", Category: "food", Difficulty: "easy", Servings: 4})
	env.MustRunPantry("review", "add", seeded.ID, "--rating", "4")

	stored := fake.reviewsFor(seeded.ID)
	require.Len(t, stored, 1)
	assert.Equal(t, "marisol", stored[0].User)
}

func TestReviewUserFromProfile(t *testing.T) {
	env := NewTestEnv(t)
	fake := newFakeService(t)
	env.APIURL = fake.URL()

	env.MustRunPantry("profile", "set", "--username", "priya")

	seeded := fake.addRecipe(types.Recipe{Name: "Idli", Category: "food", Difficulty: "medium", Servings: 4})
	env.MustRunPantry("review", "add", seeded.ID, "--rating", "3")

	stored := fake.reviewsFor(seeded.ID)
	require.Len(t, stored, 1)
	assert.Equal(t, "priya", stored[0].User)
}

func TestReviewAddOffline(t *testing.T) {
	env := NewTestEnv(t)
	fake := newFakeService(t)
	env.APIURL = fake.URL()

	seeded := fake.addRecipe(types.Recipe{Name: "Masala Chai", Category: "drink", Difficulty: "easy", Servings: 2})
	env.MustRunPantry("recipes", "get", seeded.ID)

	// Service gone; the cached recipe still accepts a review.
	env.APIURL = ""

	result := env.MustRunPantry("review", "add", seeded.ID,
		"--rating", "4", "--comment", "Still good cold.")
	assert.Contains(t, result.Stdout, "Service unreachable; review saved locally")

	list := env.MustRunPantry("review", "list", seeded.ID)
	assert.Contains(t, list.Stdout, "4/5")
	assert.Contains(t, list.Stdout, "Still good cold.")
	assert.Contains(t, list.Stdout, "(service unreachable; showing reviews saved on this device)")

	assert.Empty(t, fake.reviewsFor(seeded.ID), "the offline review must not reach the service")
}

func TestReviewListRemoteWins(t *testing.T) {
	env := NewTestEnv(t)
	fake := newFakeService(t)
	env.APIURL = fake.URL()

	seeded := fake.addRecipe(types.Recipe{Name: "Biryani", Category: "food", Difficulty: "hard", Servings: 6})
	env.MustRunPantry("recipes", "get", seeded.ID)

	// One locally saved review while unreachable.
	env.APIURL = ""
	env.MustRunPantry("review", "add", seeded.ID, "--rating", "2", "--comment", "From this device")

	// Two server-side reviews; the reachable listing shows only these.
	env.APIURL = fake.URL()
	fake.addReview(types.Review{RecipeID: seeded.ID, User: "ravi", Rating: 5, Comment: "Perfect crust"})
	fake.addReview(types.Review{RecipeID: seeded.ID, User: "mina", Rating: 4, Comment: "Rich"})

	list := env.MustRunPantry("review", "list", seeded.ID)
	assert.Contains(t, list.Stdout, "Total: 2 review(s)")
	assert.Contains(t, list.Stdout, "ravi")
	assert.NotContains(t, list.Stdout, "From this device")
	assert.NotContains(t, list.Stdout, "service unreachable")
}

func TestReviewListEmpty(t *testing.T) {
	env := NewTestEnv(t)
	fake := newFakeService(t)
	env.APIURL = fake.URL()

	seeded := fake.addRecipe(types.Recipe{Name: "Lassi", Category: "drink", Difficulty: "easy", Servings: 1})

	result := env.MustRunPantry("review", "list", seeded.ID)
	assert.Contains(t, result.Stdout, "No reviews found.")
}

func TestReviewUpdateAndDelete(t *testing.T) {
	env := NewTestEnv(t)
	fake := newFakeService(t)
	env.APIURL = fake.URL()

	seeded := fake.addRecipe(types.Recipe{Name: "Egg Curry", Category: "food", Difficulty: "easy", Servings: 2})
	review := fake.addReview(types.Review{RecipeID: seeded.ID, User: "chef", Rating: 5, Comment: "Great"})

	result := env.MustRunPantry("review", "update", review.ID,
		"--rating", "2", "--comment", "Too salty on a second try")
	assert.Contains(t, result.Stdout, "Updated "+review.ID)

	stored, ok := fake.getReview(review.ID)
	require.True(t, ok)
	assert.Equal(t, 2, stored.Rating)
	assert.Equal(t, "Too salty on a second try", stored.Comment)

	deleted := env.MustRunPantry("review", "delete", review.ID)
	assert.Contains(t, deleted.Stdout, "Deleted "+review.ID)

	gone := env.RunPantry("review", "update", review.ID, "--rating", "1")
	assert.Equal(t, 1, gone.ExitCode)
	assert.Contains(t, gone.Stderr, "Review not found")
}

func TestReviewRatingValidation(t *testing.T) {
	env := NewTestEnv(t)
	fake := newFakeService(t)
	env.APIURL = fake.URL()

	seeded := fake.addRecipe(types.Recipe{Name: "Fish Molee", Category: "food", Difficulty: "medium", Servings: 4})

	tooHigh := env.RunPantry("review", "add", seeded.ID, "--rating", "9")
	assert.Equal(t, 1, tooHigh.ExitCode)
	assert.Contains(t, tooHigh.Stderr, "create review")
	assert.Empty(t, fake.reviewsFor(seeded.ID))

	missing := env.RunPantry("review", "add", seeded.ID)
	assert.Equal(t, 1, missing.ExitCode, "the rating flag is required")
}

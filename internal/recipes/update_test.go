package recipes

import (
	"testing"

	"github.com/platewise/recipebox/pkg/types"
)

func TestUpdateApplyKeepsUnsetFields(t *testing.T) {
	base := types.Recipe{
		ID:            "r1",
		Name:          "Old",
		Description:   "desc",
		Category:      types.CategoryDrink,
		Difficulty:    types.DifficultyHard,
		PrepTime:      10,
		CookTime:      20,
		Servings:      2,
		AverageRating: 4.5,
		ReviewCount:   7,
		Ingredients:   []types.Ingredient{{Name: "tea", Quantity: "1"}},
	}

	merged := RecipeUpdate{Name: ptr("New"), PrepTime: ptr(0)}.apply(base)

	if merged.Name != "New" {
		t.Errorf("expected name overridden, got %q", merged.Name)
	}
	if merged.PrepTime != 0 {
		t.Errorf("expected prep time set to 0, got %d", merged.PrepTime)
	}
	if merged.Description != "desc" || merged.Category != types.CategoryDrink {
		t.Errorf("expected unset fields kept, got %+v", merged)
	}
	if merged.AverageRating != 4.5 || merged.ReviewCount != 7 {
		t.Errorf("expected server-owned fields kept, got %+v", merged)
	}
	if len(merged.Ingredients) != 1 {
		t.Errorf("expected ingredients kept, got %+v", merged.Ingredients)
	}
}

func TestUpdateApplyClearsListWithEmptySlice(t *testing.T) {
	base := types.Recipe{
		ID:    "r1",
		Steps: []types.Step{{StepNumber: 1, Instruction: "boil"}},
	}

	merged := RecipeUpdate{Steps: []types.Step{}}.apply(base)
	if len(merged.Steps) != 0 {
		t.Fatalf("expected steps cleared, got %+v", merged.Steps)
	}

	unchanged := RecipeUpdate{Name: ptr("x")}.apply(base)
	if len(unchanged.Steps) != 1 {
		t.Fatalf("expected nil slice to keep steps, got %+v", unchanged.Steps)
	}
}

func TestUpdateFields(t *testing.T) {
	fields := RecipeUpdate{
		Name:     ptr("Soto"),
		Servings: ptr(6),
		Ingredients: []types.Ingredient{
			{Name: "beef", Quantity: "500g"},
		},
	}.fields()

	if len(fields) != 3 {
		t.Fatalf("expected 3 fields, got %v", fields)
	}
	if fields["name"] != "Soto" || fields["servings"] != 6 {
		t.Fatalf("unexpected fields: %v", fields)
	}
	if _, ok := fields["ingredients"]; !ok {
		t.Fatal("expected ingredients present")
	}
	if _, ok := fields["description"]; ok {
		t.Fatal("unset fields must be absent")
	}
}

func TestUpdateIsEmpty(t *testing.T) {
	if !(RecipeUpdate{}).IsEmpty() {
		t.Fatal("zero update must be empty")
	}
	if (RecipeUpdate{Image: ptr("")}).IsEmpty() {
		t.Fatal("set pointer must count even when pointing at zero value")
	}
	if (RecipeUpdate{Steps: []types.Step{}}).IsEmpty() {
		t.Fatal("non-nil empty slice must count as set")
	}
}

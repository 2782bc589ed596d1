package recipes

import "github.com/platewise/recipebox/pkg/types"

// RecipeUpdate carries the fields of an edit. Nil pointers and nil
// slices mean "leave unchanged"; an empty non-nil slice clears the
// list. Server-owned fields (ratings, counters, timestamps) cannot be
// edited from here.
type RecipeUpdate struct {
	Name        *string
	Description *string
	Category    *string
	Difficulty  *string
	PrepTime    *int
	CookTime    *int
	Servings    *int
	Image       *string
	Ingredients []types.Ingredient
	Steps       []types.Step
}

// IsEmpty reports whether the update sets no field at all.
func (u RecipeUpdate) IsEmpty() bool {
	return u.Name == nil && u.Description == nil && u.Category == nil &&
		u.Difficulty == nil && u.PrepTime == nil && u.CookTime == nil &&
		u.Servings == nil && u.Image == nil &&
		u.Ingredients == nil && u.Steps == nil
}

// apply overlays the set fields onto base and returns the merged
// document. Unset fields keep base's values, which is what makes the
// pre-fetch before a PUT preserve them.
func (u RecipeUpdate) apply(base types.Recipe) types.Recipe {
	merged := base
	if u.Name != nil {
		merged.Name = *u.Name
	}
	if u.Description != nil {
		merged.Description = *u.Description
	}
	if u.Category != nil {
		merged.Category = *u.Category
	}
	if u.Difficulty != nil {
		merged.Difficulty = *u.Difficulty
	}
	if u.PrepTime != nil {
		merged.PrepTime = *u.PrepTime
	}
	if u.CookTime != nil {
		merged.CookTime = *u.CookTime
	}
	if u.Servings != nil {
		merged.Servings = *u.Servings
	}
	if u.Image != nil {
		merged.Image = *u.Image
	}
	if u.Ingredients != nil {
		merged.Ingredients = u.Ingredients
	}
	if u.Steps != nil {
		merged.Steps = u.Steps
	}
	return merged
}

// fields returns the wire map for PATCH, holding only the set fields
// under their JSON names.
func (u RecipeUpdate) fields() map[string]any {
	out := map[string]any{}
	if u.Name != nil {
		out["name"] = *u.Name
	}
	if u.Description != nil {
		out["description"] = *u.Description
	}
	if u.Category != nil {
		out["category"] = *u.Category
	}
	if u.Difficulty != nil {
		out["difficulty"] = *u.Difficulty
	}
	if u.PrepTime != nil {
		out["prep_time"] = *u.PrepTime
	}
	if u.CookTime != nil {
		out["cook_time"] = *u.CookTime
	}
	if u.Servings != nil {
		out["servings"] = *u.Servings
	}
	if u.Image != nil {
		out["image"] = *u.Image
	}
	if u.Ingredients != nil {
		out["ingredients"] = u.Ingredients
	}
	if u.Steps != nil {
		out["steps"] = u.Steps
	}
	return out
}

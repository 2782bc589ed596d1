package types

import "strings"

// Recipe categories.
const (
	CategoryFood  = "food"
	CategoryDrink = "drink"
)

// validCategories is the set of recognized category values.
var validCategories = map[string]bool{
	CategoryFood:  true,
	CategoryDrink: true,
}

// Recipe difficulties.
const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

// validDifficulties is the set of recognized difficulty values.
var validDifficulties = map[string]bool{
	DifficultyEasy:   true,
	DifficultyMedium: true,
	DifficultyHard:   true,
}

// Defaults applied by Normalize when a field is absent or invalid.
const (
	DefaultRecipeName = "Untitled Recipe"
	DefaultServings   = 4
	DefaultQuantity   = "1"
)

// ValidCategory reports whether category is a recognized value.
func ValidCategory(category string) bool {
	return validCategories[category]
}

// ValidDifficulty reports whether difficulty is a recognized value.
func ValidDifficulty(difficulty string) bool {
	return validDifficulties[difficulty]
}

// Ingredient is one entry in a recipe's ingredient list.
type Ingredient struct {
	ID       string `json:"id,omitempty"`
	Name     string `json:"name" validate:"required"`
	Quantity string `json:"quantity"` // Free text, e.g. "2 cups".
}

// Step is one entry in a recipe's ordered instruction list.
type Step struct {
	ID          string `json:"id,omitempty"`
	StepNumber  int    `json:"step_number"` // 1-based, contiguous.
	Instruction string `json:"instruction"`
}

// Recipe is the central domain entity. The remote API is the source of
// truth for recipes; local copies are cache entries or snapshots.
type Recipe struct {
	ID            string       `json:"id,omitempty"`
	Name          string       `json:"name" validate:"required"`
	Description   string       `json:"description,omitempty"`
	Category      string       `json:"category" validate:"omitempty,oneof=food drink"`
	Difficulty    string       `json:"difficulty" validate:"omitempty,oneof=easy medium hard"`
	PrepTime      int          `json:"prep_time" validate:"min=0"` // Minutes.
	CookTime      int          `json:"cook_time" validate:"min=0"` // Minutes.
	Servings      int          `json:"servings" validate:"min=1"`
	Image         string       `json:"image,omitempty"` // Opaque reference (URL or data URI).
	Ingredients   []Ingredient `json:"ingredients"`
	Steps         []Step       `json:"steps"`
	AverageRating float64      `json:"average_rating,omitempty"`
	ReviewCount   int          `json:"review_count,omitempty"`
	CreatedAt     string       `json:"created_at,omitempty"`
	UpdatedAt     string       `json:"updated_at,omitempty"`
}

// Normalize rewrites the recipe in place so every invariant holds:
// ingredients and steps are non-nil sequences, numeric fields are ≥0
// (servings ≥1), the name is non-empty, and category/difficulty are
// recognized values. Ingredients with empty names are dropped; an
// empty quantity becomes DefaultQuantity. Steps with empty
// instructions are dropped and the survivors renumbered 1..n.
func (r *Recipe) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	if r.Name == "" {
		r.Name = DefaultRecipeName
	}
	if !validCategories[r.Category] {
		r.Category = CategoryFood
	}
	if !validDifficulties[r.Difficulty] {
		r.Difficulty = DifficultyEasy
	}
	if r.PrepTime < 0 {
		r.PrepTime = 0
	}
	if r.CookTime < 0 {
		r.CookTime = 0
	}
	if r.Servings < 1 {
		r.Servings = DefaultServings
	}
	if r.AverageRating < 0 {
		r.AverageRating = 0
	}
	if r.ReviewCount < 0 {
		r.ReviewCount = 0
	}

	ingredients := make([]Ingredient, 0, len(r.Ingredients))
	for _, ing := range r.Ingredients {
		ing.Name = strings.TrimSpace(ing.Name)
		if ing.Name == "" {
			continue
		}
		ing.Quantity = strings.TrimSpace(ing.Quantity)
		if ing.Quantity == "" {
			ing.Quantity = DefaultQuantity
		}
		ingredients = append(ingredients, ing)
	}
	r.Ingredients = ingredients

	steps := make([]Step, 0, len(r.Steps))
	for _, step := range r.Steps {
		step.Instruction = strings.TrimSpace(step.Instruction)
		if step.Instruction == "" {
			continue
		}
		steps = append(steps, step)
	}
	r.Steps = steps
	r.RenumberSteps()
}

// RenumberSteps rewrites step numbers to the contiguous sequence 1..n
// in current order. Called after any step removal.
func (r *Recipe) RenumberSteps() {
	for i := range r.Steps {
		r.Steps[i].StepNumber = i + 1
	}
}

// TotalTime returns prep plus cook time in minutes.
func (r *Recipe) TotalTime() int {
	return r.PrepTime + r.CookTime
}

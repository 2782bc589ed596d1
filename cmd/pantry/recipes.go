// Recipes command group for the pantry CLI, plus the recipe field
// flags shared by create, update, and patch.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/platewise/recipebox/internal/recipes"
	"github.com/platewise/recipebox/pkg/types"
)

var recipesCmd = &cobra.Command{
	Use:   "recipes",
	Short: "Browse and edit recipes",
}

func init() {
	recipesCmd.AddCommand(recipesListCmd)
	recipesCmd.AddCommand(recipesGetCmd)
	recipesCmd.AddCommand(recipesCreateCmd)
	recipesCmd.AddCommand(recipesUpdateCmd)
	recipesCmd.AddCommand(recipesPatchCmd)
	recipesCmd.AddCommand(recipesDeleteCmd)
}

// recipeFlags holds the recipe field flags shared by the editing
// commands. Each command binds its own instance.
type recipeFlags struct {
	name        string
	description string
	category    string
	difficulty  string
	prepTime    int
	cookTime    int
	servings    int
	image       string
	ingredients []string
	steps       []string
}

// addRecipeFlags registers the recipe field flags on cmd, bound to f.
func addRecipeFlags(cmd *cobra.Command, f *recipeFlags) {
	cmd.Flags().StringVar(&f.name, "name", "", "recipe name")
	cmd.Flags().StringVar(&f.description, "description", "", "recipe description")
	cmd.Flags().StringVar(&f.category, "category", "", "category (food, drink)")
	cmd.Flags().StringVar(&f.difficulty, "difficulty", "", "difficulty (easy, medium, hard)")
	cmd.Flags().IntVar(&f.prepTime, "prep", 0, "preparation time in minutes")
	cmd.Flags().IntVar(&f.cookTime, "cook", 0, "cooking time in minutes")
	cmd.Flags().IntVar(&f.servings, "servings", 0, "number of servings")
	cmd.Flags().StringVar(&f.image, "image", "", "image reference (URL or data URI)")
	cmd.Flags().StringArrayVar(&f.ingredients, "ingredient", nil, `ingredient as "name=quantity" (repeatable)`)
	cmd.Flags().StringArrayVar(&f.steps, "step", nil, "step instruction (repeatable, in order)")
}

// document assembles a full recipe from the field flags.
func (f *recipeFlags) document() types.Recipe {
	return types.Recipe{
		Name:        f.name,
		Description: f.description,
		Category:    f.category,
		Difficulty:  f.difficulty,
		PrepTime:    f.prepTime,
		CookTime:    f.cookTime,
		Servings:    f.servings,
		Image:       f.image,
		Ingredients: parseIngredients(f.ingredients),
		Steps:       parseSteps(f.steps),
	}
}

// changes builds an edit holding only the flags the user actually set.
func (f *recipeFlags) changes(cmd *cobra.Command) recipes.RecipeUpdate {
	var u recipes.RecipeUpdate
	flags := cmd.Flags()
	if flags.Changed("name") {
		u.Name = &f.name
	}
	if flags.Changed("description") {
		u.Description = &f.description
	}
	if flags.Changed("category") {
		u.Category = &f.category
	}
	if flags.Changed("difficulty") {
		u.Difficulty = &f.difficulty
	}
	if flags.Changed("prep") {
		u.PrepTime = &f.prepTime
	}
	if flags.Changed("cook") {
		u.CookTime = &f.cookTime
	}
	if flags.Changed("servings") {
		u.Servings = &f.servings
	}
	if flags.Changed("image") {
		u.Image = &f.image
	}
	if flags.Changed("ingredient") {
		u.Ingredients = parseIngredients(f.ingredients)
	}
	if flags.Changed("step") {
		u.Steps = parseSteps(f.steps)
	}
	return u
}

// parseIngredients converts "name=quantity" pairs. The quantity may be
// omitted; normalization fills the default.
func parseIngredients(pairs []string) []types.Ingredient {
	out := make([]types.Ingredient, 0, len(pairs))
	for _, pair := range pairs {
		name, quantity, _ := strings.Cut(pair, "=")
		out = append(out, types.Ingredient{Name: name, Quantity: quantity})
	}
	return out
}

// parseSteps numbers the given instructions in order.
func parseSteps(instructions []string) []types.Step {
	out := make([]types.Step, 0, len(instructions))
	for i, instruction := range instructions {
		out = append(out, types.Step{StepNumber: i + 1, Instruction: instruction})
	}
	return out
}

// readRecipeFile loads a full recipe document from a JSON file.
func readRecipeFile(path string) (types.Recipe, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return types.Recipe{}, fmt.Errorf("read recipe file: %w", err)
	}
	var recipe types.Recipe
	if err := json.Unmarshal(data, &recipe); err != nil {
		return types.Recipe{}, fmt.Errorf("parse recipe file: %w", err)
	}
	return recipe, nil
}

// replaceWith marks every editable field as set, so a --file document
// replaces the record wholesale.
func replaceWith(r types.Recipe) recipes.RecipeUpdate {
	u := recipes.RecipeUpdate{
		Name:        &r.Name,
		Description: &r.Description,
		Category:    &r.Category,
		Difficulty:  &r.Difficulty,
		PrepTime:    &r.PrepTime,
		CookTime:    &r.CookTime,
		Servings:    &r.Servings,
		Image:       &r.Image,
		Ingredients: r.Ingredients,
		Steps:       r.Steps,
	}
	if u.Ingredients == nil {
		u.Ingredients = []types.Ingredient{}
	}
	if u.Steps == nil {
		u.Steps = []types.Step{}
	}
	return u
}

// shortID truncates a UUID for table display.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

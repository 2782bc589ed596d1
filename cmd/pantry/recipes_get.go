// Recipes get command displays one recipe with full details.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/platewise/recipebox/internal/recipes"
	"github.com/platewise/recipebox/pkg/types"
)

var getOffline bool

var recipesGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Display a recipe with full details",
	Long: `Get fetches a recipe from the service. When the service is
unreachable the most recently fetched copy is served from the local
cache instead.

Example:
  pantry recipes get 0198a4b2
  pantry recipes get 0198a4b2 --offline
  pantry recipes get 0198a4b2 --json`,
	Args: cobra.ExactArgs(1),
	RunE: runRecipesGet,
}

func init() {
	recipesGetCmd.Flags().BoolVar(&getOffline, "offline", false, "read from the local cache only")
}

func runRecipesGet(cmd *cobra.Command, args []string) error {
	id := args[0]

	box, err := openBox()
	if err != nil {
		return err
	}
	defer box.Close()

	var result recipes.GetResult
	if getOffline {
		cached, ok := box.Recipes.Cached(id)
		if !ok {
			return fmt.Errorf("recipe %q not in the local cache", id)
		}
		result = recipes.GetResult{Recipe: cached, Source: types.SourceLocal}
	} else {
		result, err = box.Recipes.Get(cmd.Context(), id)
		if err != nil {
			return remoteErrorf(err, "get recipe %q: %w", id, err)
		}
	}

	if flagJSON {
		return printJSON(result)
	}
	printRecipeDetail(result.Recipe, result.Source)
	return nil
}

// printRecipeDetail prints one recipe in a human-readable layout.
func printRecipeDetail(r types.Recipe, source types.Source) {
	fmt.Printf("ID:          %s\n", r.ID)
	fmt.Printf("Name:        %s\n", r.Name)
	if r.Description != "" {
		fmt.Printf("Description: %s\n", r.Description)
	}
	fmt.Printf("Category:    %s\n", r.Category)
	fmt.Printf("Difficulty:  %s\n", r.Difficulty)
	fmt.Printf("Time:        %dm prep + %dm cook\n", r.PrepTime, r.CookTime)
	fmt.Printf("Servings:    %d\n", r.Servings)
	if r.ReviewCount > 0 {
		fmt.Printf("Rating:      %.1f (%d reviews)\n", r.AverageRating, r.ReviewCount)
	}

	if len(r.Ingredients) > 0 {
		fmt.Println("\nIngredients:")
		for _, ing := range r.Ingredients {
			fmt.Printf("  - %s %s\n", ing.Quantity, ing.Name)
		}
	}

	if len(r.Steps) > 0 {
		fmt.Println("\nSteps:")
		for _, step := range r.Steps {
			fmt.Printf("  %d. %s\n", step.StepNumber, step.Instruction)
		}
	}

	if source == types.SourceLocal {
		fmt.Println("\n(served from the local cache)")
	}
}

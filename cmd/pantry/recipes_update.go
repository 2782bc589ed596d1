// Recipes update command replaces a recipe with PUT semantics.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/platewise/recipebox/internal/recipes"
	"github.com/platewise/recipebox/pkg/types"
)

var (
	updateFlags     recipeFlags
	updateFile      string
	updateAsDraft   bool
	updateFromDraft bool
)

var recipesUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a recipe (full replace)",
	Long: `Update edits a recipe with replace semantics: the current record is
fetched first, the given fields are overlaid, and the full document is
sent back, so fields you do not mention keep their values. A JSON file
given with --file replaces the record wholesale. With --draft the edit
is saved locally under the recipe's draft instead and can be submitted
later with --from-draft.

Example:
  pantry recipes update 0198a4b2 --name "Dal Tadka (mild)"
  pantry recipes update 0198a4b2 --file dal.json
  pantry recipes update 0198a4b2 --servings 6 --draft
  pantry recipes update 0198a4b2 --from-draft`,
	Args: cobra.ExactArgs(1),
	RunE: runRecipesUpdate,
}

func init() {
	addRecipeFlags(recipesUpdateCmd, &updateFlags)
	recipesUpdateCmd.Flags().StringVar(&updateFile, "file", "", "read the full recipe document from a JSON file")
	recipesUpdateCmd.Flags().BoolVar(&updateAsDraft, "draft", false, "save the edit locally as a draft instead of submitting")
	recipesUpdateCmd.Flags().BoolVar(&updateFromDraft, "from-draft", false, "submit the draft stored for this recipe")
}

func runRecipesUpdate(cmd *cobra.Command, args []string) error {
	id := args[0]

	box, err := openBox()
	if err != nil {
		return err
	}
	defer box.Close()

	if updateAsDraft {
		recipe := updateFlags.document()
		if updateFile != "" {
			recipe, err = readRecipeFile(updateFile)
			if err != nil {
				return err
			}
		}
		recipe.ID = id
		if err := box.Drafts.Save(id, recipe); err != nil {
			return sysErrorf("save draft: %w", err)
		}
		fmt.Printf("Draft saved for %s\n", id)
		return nil
	}

	var edit recipes.RecipeUpdate
	switch {
	case updateFromDraft:
		var recipe types.Recipe
		if _, ok := box.Drafts.Load(id, &recipe); !ok {
			return fmt.Errorf("no draft stored for recipe %q", id)
		}
		edit = replaceWith(recipe)
	case updateFile != "":
		recipe, err := readRecipeFile(updateFile)
		if err != nil {
			return err
		}
		edit = replaceWith(recipe)
	default:
		edit = updateFlags.changes(cmd)
	}

	updated, err := box.Recipes.Replace(cmd.Context(), id, edit)
	if err != nil {
		return remoteErrorf(err, "update recipe %q: %w", id, err)
	}

	if updateFromDraft {
		box.Drafts.Discard(id)
	}

	if flagJSON {
		return printJSON(updated)
	}
	fmt.Printf("Updated %s\n", id)
	return nil
}

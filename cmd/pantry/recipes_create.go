// Recipes create command submits a new recipe.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/platewise/recipebox/pkg/types"
)

var (
	createFlags     recipeFlags
	createFile      string
	createAsDraft   bool
	createFromDraft bool
)

var recipesCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a new recipe",
	Long: `Create submits a new recipe to the service. The recipe comes from
field flags or a JSON file. With --draft it is saved locally instead
and can be submitted later with --from-draft.

Example:
  pantry recipes create --name "Dal Tadka" --category food --servings 4 \
    --ingredient "red lentils=1 cup" --step "Rinse the lentils"
  pantry recipes create --file dal.json
  pantry recipes create --name "Dal Tadka" --draft
  pantry recipes create --from-draft`,
	Args: cobra.NoArgs,
	RunE: runRecipesCreate,
}

func init() {
	addRecipeFlags(recipesCreateCmd, &createFlags)
	recipesCreateCmd.Flags().StringVar(&createFile, "file", "", "read the recipe from a JSON file")
	recipesCreateCmd.Flags().BoolVar(&createAsDraft, "draft", false, "save locally as the create draft instead of submitting")
	recipesCreateCmd.Flags().BoolVar(&createFromDraft, "from-draft", false, "submit the stored create draft")
}

func runRecipesCreate(cmd *cobra.Command, args []string) error {
	box, err := openBox()
	if err != nil {
		return err
	}
	defer box.Close()

	var recipe types.Recipe
	switch {
	case createFromDraft:
		if _, ok := box.Drafts.Load(types.DraftIDCreate, &recipe); !ok {
			return fmt.Errorf("no create draft stored")
		}
	case createFile != "":
		recipe, err = readRecipeFile(createFile)
		if err != nil {
			return err
		}
	default:
		recipe = createFlags.document()
	}

	if createAsDraft {
		if err := box.Drafts.Save(types.DraftIDCreate, recipe); err != nil {
			return sysErrorf("save draft: %w", err)
		}
		fmt.Println("Draft saved")
		return nil
	}

	created, err := box.Recipes.Create(cmd.Context(), recipe)
	if err != nil {
		return remoteErrorf(err, "create recipe: %w", err)
	}

	// A submitted draft is no longer pending.
	if createFromDraft {
		box.Drafts.Discard(types.DraftIDCreate)
	}

	if flagJSON {
		return printJSON(created)
	}
	fmt.Printf("Created recipe: %s\n", created.ID)
	return nil
}

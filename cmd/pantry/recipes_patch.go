// Recipes patch command sends a partial update.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var patchFlags recipeFlags

var recipesPatchCmd = &cobra.Command{
	Use:   "patch <id>",
	Short: "Update individual recipe fields",
	Long: `Patch sends only the given fields to the service; everything else is
left to the server's current record.

Example:
  pantry recipes patch 0198a4b2 --servings 6
  pantry recipes patch 0198a4b2 --difficulty hard --cook 45`,
	Args: cobra.ExactArgs(1),
	RunE: runRecipesPatch,
}

func init() {
	addRecipeFlags(recipesPatchCmd, &patchFlags)
}

func runRecipesPatch(cmd *cobra.Command, args []string) error {
	id := args[0]

	box, err := openBox()
	if err != nil {
		return err
	}
	defer box.Close()

	updated, err := box.Recipes.Patch(cmd.Context(), id, patchFlags.changes(cmd))
	if err != nil {
		return remoteErrorf(err, "patch recipe %q: %w", id, err)
	}

	if flagJSON {
		return printJSON(updated)
	}
	fmt.Printf("Updated %s\n", id)
	return nil
}

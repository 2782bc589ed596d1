// Recipes delete command removes a recipe from the service.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var recipesDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a recipe",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id := args[0]

		box, err := openBox()
		if err != nil {
			return err
		}
		defer box.Close()

		if err := box.Recipes.Delete(cmd.Context(), id); err != nil {
			return remoteErrorf(err, "delete recipe %q: %w", id, err)
		}

		fmt.Printf("Deleted %s\n", id)
		return nil
	},
}

// Favorites commands for the pantry CLI.
package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/platewise/recipebox/pkg/recipebox"
	"github.com/platewise/recipebox/pkg/types"
)

var favCmd = &cobra.Command{
	Use:   "fav",
	Short: "Manage favorite recipes",
}

var favListCmd = &cobra.Command{
	Use:   "list",
	Short: "List favorite recipes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		box, err := openBox()
		if err != nil {
			return err
		}
		defer box.Close()

		entries := box.Favorites.List()
		if flagJSON {
			return printJSON(entries)
		}
		printFavoriteTable(entries)
		return nil
	},
}

var favAddCmd = &cobra.Command{
	Use:   "add <recipe-id>",
	Short: "Add a recipe to favorites",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id := args[0]

		box, err := openBox()
		if err != nil {
			return err
		}
		defer box.Close()

		recipe, err := favoriteSubject(cmd, box, id)
		if err != nil {
			return err
		}

		if !box.Favorites.Add(recipe) {
			fmt.Printf("%s is already a favorite\n", id)
			return nil
		}
		fmt.Printf("Added %s to favorites\n", id)
		return nil
	},
}

var favRemoveCmd = &cobra.Command{
	Use:   "remove <recipe-id>",
	Short: "Remove a recipe from favorites",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id := args[0]

		box, err := openBox()
		if err != nil {
			return err
		}
		defer box.Close()

		box.Favorites.Remove(id)
		fmt.Printf("Removed %s from favorites\n", id)
		return nil
	},
}

var favToggleCmd = &cobra.Command{
	Use:   "toggle <recipe-id>",
	Short: "Toggle a recipe's favorite membership",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id := args[0]

		box, err := openBox()
		if err != nil {
			return err
		}
		defer box.Close()

		recipe, err := favoriteSubject(cmd, box, id)
		if err != nil {
			return err
		}

		favorited, err := box.Favorites.Toggle(recipe)
		if err != nil {
			return fmt.Errorf("toggle favorite: %w", err)
		}
		if favorited {
			fmt.Printf("Added %s to favorites\n", id)
		} else {
			fmt.Printf("Removed %s from favorites\n", id)
		}
		return nil
	},
}

var favCheckCmd = &cobra.Command{
	Use:   "check <recipe-id>",
	Short: "Check whether a recipe is a favorite",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id := args[0]

		box, err := openBox()
		if err != nil {
			return err
		}
		defer box.Close()

		fmt.Println(box.Favorites.IsFavorited(id))
		return nil
	},
}

func init() {
	favCmd.AddCommand(favListCmd)
	favCmd.AddCommand(favAddCmd)
	favCmd.AddCommand(favRemoveCmd)
	favCmd.AddCommand(favToggleCmd)
	favCmd.AddCommand(favCheckCmd)
}

// favoriteSubject resolves the recipe for add/toggle: remote fetch with
// cache fallback. A recipe already in the set can still be toggled off
// by id alone when both paths fail.
func favoriteSubject(cmd *cobra.Command, box *recipebox.Box, id string) (types.Recipe, error) {
	result, err := box.Recipes.Get(cmd.Context(), id)
	if err == nil {
		return result.Recipe, nil
	}
	if box.Favorites.IsFavorited(id) {
		return types.Recipe{ID: id}, nil
	}
	return types.Recipe{}, remoteErrorf(err, "get recipe %q: %w", id, err)
}

// printFavoriteTable prints the favorites set in a human-readable table.
func printFavoriteTable(entries []types.FavoriteEntry) {
	if len(entries) == 0 {
		fmt.Println("No favorites yet.")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tCATEGORY\tDIFFICULTY\tRATING\tADDED")
	fmt.Fprintln(w, "--\t----\t--------\t----------\t------\t-----")
	for _, e := range entries {
		added := e.AddedAt
		if t, err := time.Parse(time.RFC3339, e.AddedAt); err == nil {
			added = t.Format("2006-01-02")
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%.1f\t%s\n",
			shortID(e.ID),
			truncate(e.Name, 40),
			e.Category,
			e.Difficulty,
			e.AverageRating,
			added,
		)
	}
	w.Flush()

	fmt.Printf("\nTotal: %d favorite(s)\n", len(entries))
}

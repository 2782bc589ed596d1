// Recipes list command queries the remote listing.
package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/platewise/recipebox/internal/api"
)

var (
	listPage       int
	listLimit      int
	listCategory   string
	listDifficulty string
	listSearch     string
	listSortBy     string
	listOrder      string
)

var recipesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recipes from the service",
	Long: `List fetches one page of recipes from the remote service.

Example:
  pantry recipes list
  pantry recipes list --category drink --difficulty easy
  pantry recipes list --search curry --sort-by name --order asc
  pantry recipes list --page 2 --limit 50 --json`,
	Args: cobra.NoArgs,
	RunE: runRecipesList,
}

func init() {
	recipesListCmd.Flags().IntVar(&listPage, "page", 0, "page number")
	recipesListCmd.Flags().IntVar(&listLimit, "limit", 0, "results per page")
	recipesListCmd.Flags().StringVar(&listCategory, "category", "", "filter by category (food, drink)")
	recipesListCmd.Flags().StringVar(&listDifficulty, "difficulty", "", "filter by difficulty (easy, medium, hard)")
	recipesListCmd.Flags().StringVar(&listSearch, "search", "", "search term")
	recipesListCmd.Flags().StringVar(&listSortBy, "sort-by", "", "sort field")
	recipesListCmd.Flags().StringVar(&listOrder, "order", "", "sort order (asc, desc)")
}

func runRecipesList(cmd *cobra.Command, args []string) error {
	box, err := openBox()
	if err != nil {
		return err
	}
	defer box.Close()

	page, err := box.Recipes.List(cmd.Context(), api.ListOptions{
		Page:       listPage,
		Limit:      listLimit,
		Category:   listCategory,
		Difficulty: listDifficulty,
		Search:     listSearch,
		SortBy:     listSortBy,
		Order:      listOrder,
	})
	if err != nil {
		return remoteErrorf(err, "list recipes: %w", err)
	}

	if flagJSON {
		return printJSON(page)
	}
	printRecipePage(page)
	return nil
}

// printRecipePage prints one listing page in a human-readable table.
func printRecipePage(page api.RecipePage) {
	if len(page.Recipes) == 0 {
		fmt.Println("No recipes found.")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tCATEGORY\tDIFFICULTY\tTIME\tRATING")
	fmt.Fprintln(w, "--\t----\t--------\t----------\t----\t------")
	for _, r := range page.Recipes {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%dm\t%.1f\n",
			shortID(r.ID),
			truncate(r.Name, 40),
			r.Category,
			r.Difficulty,
			r.TotalTime(),
			r.AverageRating,
		)
	}
	w.Flush()

	fmt.Printf("\nPage %d of %d (%d recipes total)\n",
		page.Pagination.Page, page.Pagination.TotalPages, page.Pagination.Total)
}

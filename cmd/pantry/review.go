// Review commands for the pantry CLI.
package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/platewise/recipebox/internal/reviews"
	"github.com/platewise/recipebox/pkg/types"
)

var reviewCmd = &cobra.Command{
	Use:   "review",
	Short: "Manage recipe reviews",
}

var reviewListCmd = &cobra.Command{
	Use:   "list <recipe-id>",
	Short: "List the reviews of a recipe",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		box, err := openBox()
		if err != nil {
			return err
		}
		defer box.Close()

		result := box.Reviews.List(cmd.Context(), args[0])
		if flagJSON {
			return printJSON(result)
		}
		printReviewTable(result)
		return nil
	},
}

var (
	reviewAddRating  int
	reviewAddComment string
)

var reviewAddCmd = &cobra.Command{
	Use:   "add <recipe-id>",
	Short: "Review a recipe",
	Long: `Add creates a review for a recipe. When the service is unreachable
the review is kept locally and shows up in this device's listing.

Example:
  pantry review add 0198a4b2 --rating 5 --comment "Weeknight staple."`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id := args[0]

		box, err := openBox()
		if err != nil {
			return err
		}
		defer box.Close()

		subject, err := box.Recipes.Get(cmd.Context(), id)
		if err != nil {
			return remoteErrorf(err, "get recipe %q: %w", id, err)
		}

		created, err := box.Reviews.Create(cmd.Context(), subject.Recipe, types.ReviewInput{
			Rating:  reviewAddRating,
			Comment: reviewAddComment,
			User:    reviewUser(box),
		})
		if err != nil {
			return fmt.Errorf("create review: %w", err)
		}

		if flagJSON {
			return printJSON(created)
		}
		if created.Offline {
			fmt.Println("Service unreachable; review saved locally")
		} else {
			fmt.Printf("Created review: %s\n", created.Review.ID)
		}
		return nil
	},
}

var (
	reviewUpdateRating  int
	reviewUpdateComment string
)

var reviewUpdateCmd = &cobra.Command{
	Use:   "update <review-id>",
	Short: "Update a review",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id := args[0]

		box, err := openBox()
		if err != nil {
			return err
		}
		defer box.Close()

		updated, err := box.Reviews.Update(cmd.Context(), id, types.ReviewInput{
			Rating:  reviewUpdateRating,
			Comment: reviewUpdateComment,
		})
		if err != nil {
			return remoteErrorf(err, "update review %q: %w", id, err)
		}

		if flagJSON {
			return printJSON(updated)
		}
		fmt.Printf("Updated %s\n", id)
		return nil
	},
}

var reviewDeleteCmd = &cobra.Command{
	Use:   "delete <review-id>",
	Short: "Delete a review",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id := args[0]

		box, err := openBox()
		if err != nil {
			return err
		}
		defer box.Close()

		if err := box.Reviews.Delete(cmd.Context(), id); err != nil {
			return remoteErrorf(err, "delete review %q: %w", id, err)
		}

		fmt.Printf("Deleted %s\n", id)
		return nil
	},
}

func init() {
	reviewAddCmd.Flags().IntVar(&reviewAddRating, "rating", 0, "rating from 1 to 5 (required)")
	reviewAddCmd.Flags().StringVar(&reviewAddComment, "comment", "", "review text")
	_ = reviewAddCmd.MarkFlagRequired("rating")

	reviewUpdateCmd.Flags().IntVar(&reviewUpdateRating, "rating", 0, "rating from 1 to 5 (required)")
	reviewUpdateCmd.Flags().StringVar(&reviewUpdateComment, "comment", "", "review text")
	_ = reviewUpdateCmd.MarkFlagRequired("rating")

	reviewCmd.AddCommand(reviewListCmd)
	reviewCmd.AddCommand(reviewAddCmd)
	reviewCmd.AddCommand(reviewUpdateCmd)
	reviewCmd.AddCommand(reviewDeleteCmd)
}

// printReviewTable prints a review listing in a human-readable table.
func printReviewTable(result reviews.ListResult) {
	if len(result.Reviews) == 0 {
		fmt.Println("No reviews found.")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tRATING\tUSER\tCOMMENT\tDATE")
	fmt.Fprintln(w, "--\t------\t----\t-------\t----")
	for _, review := range result.Reviews {
		date := review.CreatedAt
		if t, err := time.Parse(time.RFC3339, review.CreatedAt); err == nil {
			date = t.Format("2006-01-02")
		}
		fmt.Fprintf(w, "%s\t%d/5\t%s\t%s\t%s\n",
			shortID(review.ID),
			review.Rating,
			review.User,
			truncate(review.Comment, 50),
			date,
		)
	}
	w.Flush()

	fmt.Printf("\nTotal: %d review(s)\n", len(result.Reviews))
	if result.Source == types.SourceLocal {
		fmt.Println("(service unreachable; showing reviews saved on this device)")
	}
}

// Draft commands for the pantry CLI.
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cast"
	"github.com/spf13/cobra"

	"github.com/platewise/recipebox/pkg/recipebox"
)

var draftCmd = &cobra.Command{
	Use:   "draft",
	Short: "Manage locally saved drafts",
	Long: `Drafts are unsubmitted edits saved on this device: the create form
("create"), per-recipe edits (the recipe id), and pending profile
changes ("profile").`,
}

var draftListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved drafts, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		box, err := openBox()
		if err != nil {
			return err
		}
		defer box.Close()

		entries := box.Drafts.List()
		if flagJSON {
			return printJSON(entries)
		}

		if len(entries) == 0 {
			fmt.Println("No drafts saved.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tSAVED\tAGE\tSUMMARY")
		fmt.Fprintln(w, "--\t-----\t---\t-------")
		now := time.Now()
		for _, entry := range entries {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
				entry.ID,
				entry.SavedAt.Local().Format("2006-01-02 15:04"),
				now.Sub(entry.SavedAt).Round(time.Second),
				truncate(draftSummary(box, entry.ID), 40),
			)
		}
		w.Flush()

		fmt.Printf("\nTotal: %d draft(s)\n", len(entries))
		return nil
	},
}

var draftShowCmd = &cobra.Command{
	Use:   "show <draft-id>",
	Short: "Display a draft's payload",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id := args[0]

		box, err := openBox()
		if err != nil {
			return err
		}
		defer box.Close()

		raw, ok := box.Drafts.Raw(id)
		if !ok {
			return fmt.Errorf("no draft %q", id)
		}

		var pretty bytes.Buffer
		if err := json.Indent(&pretty, raw, "", "  "); err != nil {
			pretty.Write(raw)
		}

		if flagJSON {
			fmt.Println(pretty.String())
			return nil
		}

		fmt.Printf("Draft: %s\n", id)
		if age, ok := box.Drafts.Age(id); ok {
			fmt.Printf("Saved: %s ago\n", age.Round(time.Second))
		}
		fmt.Println(pretty.String())
		return nil
	},
}

var draftDiscardCmd = &cobra.Command{
	Use:   "discard <draft-id>",
	Short: "Discard a draft",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id := args[0]

		box, err := openBox()
		if err != nil {
			return err
		}
		defer box.Close()

		box.Drafts.Discard(id)
		fmt.Printf("Discarded draft %s\n", id)
		return nil
	},
}

func init() {
	draftCmd.AddCommand(draftListCmd)
	draftCmd.AddCommand(draftShowCmd)
	draftCmd.AddCommand(draftDiscardCmd)
}

// draftSummary extracts a display name from a draft payload. Payloads
// are loosely typed (recipe forms, profile edits), so read the likely
// fields tolerantly.
func draftSummary(box *recipebox.Box, id string) string {
	raw, ok := box.Drafts.Raw(id)
	if !ok {
		return ""
	}

	var payload map[string]any
	if err := json.Unmarshal(raw, &payload); err != nil {
		return ""
	}

	if name := cast.ToString(payload["name"]); name != "" {
		return name
	}
	return cast.ToString(payload["username"])
}

// Watch command streams change-observer snapshots.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
)

// watchLine is one emitted observation. Store values are JSON
// documents, so they embed as-is instead of base64.
type watchLine struct {
	Key   string          `json:"key"`
	Value json.RawMessage `json:"value"`
	At    time.Time       `json:"at"`
}

var watchCmd = &cobra.Command{
	Use:   "watch <key>",
	Short: "Stream changes to a store key",
	Long: `Watch emits the key's current value immediately and then one JSON
line per detected change, until interrupted. Writes from other
processes are picked up through file notifications, with a poll as
backstop.

Example:
  pantry watch user_favorites
  pantry watch recipe_draft_create`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		key := args[0]

		box, err := openBox()
		if err != nil {
			return err
		}
		defer box.Close()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		enc := json.NewEncoder(os.Stdout)
		for snapshot := range box.Observer.Watch(ctx, key) {
			line := watchLine{Key: snapshot.Key, At: snapshot.At}
			switch {
			case snapshot.Value == nil:
				// Key absent; value stays null.
			case json.Valid(snapshot.Value):
				line.Value = json.RawMessage(snapshot.Value)
			default:
				quoted, _ := json.Marshal(string(snapshot.Value))
				line.Value = quoted
			}
			if err := enc.Encode(line); err != nil {
				return fmt.Errorf("encode snapshot: %w", err)
			}
		}
		return nil
	},
}

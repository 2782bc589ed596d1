// Init command for the pantry CLI.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize pantry storage",
	Long:  "Create the configuration and data directories, write a default config.yaml, and initialize the storage backend.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Config dir and default config.yaml already exist here:
		// PersistentPreRunE bootstraps them on every invocation. Attach
		// the backend once so the data directory and schema exist too.
		box, err := openBox()
		if err != nil {
			return err
		}
		defer box.Close()

		configDir, err := resolveConfigDir()
		if err != nil {
			return sysErrorf("resolve config dir: %w", err)
		}
		dataDir, err := resolveDataDir()
		if err != nil {
			return sysErrorf("resolve data dir: %w", err)
		}

		fmt.Println("Pantry initialized successfully")
		fmt.Println("  config:", configDir)
		fmt.Println("  data:  ", dataDir)
		return nil
	},
}

// Root command for the pantry CLI.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/platewise/recipebox/internal/paths"
	"github.com/platewise/recipebox/pkg/recipebox"
)

// Exit codes: 0 success, 1 user error, 2 system error.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// Global flag values.
var (
	flagConfigDir string
	flagDataDir   string
	flagAPIURL    string
	flagJSON      bool
	flagVerbose   bool
)

// cfg and logger are initialized by PersistentPreRunE so all
// subcommands can use them.
var (
	cfg    *viper.Viper
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "pantry",
	Short: "Pantry is an offline-first recipe client",
	Long: `Pantry manages recipes, favorites, reviews, and a user profile against
a remote recipe service, with a durable local store used as fallback
and cache. Reads degrade to local data when the service is down.`,
	Version:       recipebox.Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		configDir, err := resolveConfigDir()
		if err != nil {
			return sysErrorf("resolve config dir: %w", err)
		}

		cfg, err = loadConfig(configDir)
		if err != nil {
			return sysErrorf("load config: %w", err)
		}

		logger, err = buildLogger()
		if err != nil {
			return sysErrorf("build logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfigDir, "config-dir", "", "configuration directory (default: platform config dir)")
	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "data directory (default: platform data dir)")
	rootCmd.PersistentFlags().StringVar(&flagAPIURL, "api-url", "", "recipe service base URL (overrides config)")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "output as JSON")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(recipesCmd)
	rootCmd.AddCommand(favCmd)
	rootCmd.AddCommand(reviewCmd)
	rootCmd.AddCommand(profileCmd)
	rootCmd.AddCommand(draftCmd)
	rootCmd.AddCommand(watchCmd)
}

// buildLogger constructs the process logger. Production JSON output to
// stderr; --verbose lowers the level to Debug.
func buildLogger() (*zap.Logger, error) {
	zcfg := zap.NewProductionConfig()
	if flagVerbose {
		zcfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	log, err := zcfg.Build()
	if err != nil {
		return nil, fmt.Errorf("building zap logger: %w", err)
	}
	return log, nil
}

// resolveDataDir returns the data directory path following the
// precedence: --data-dir flag > config.yaml data_dir > RECIPEBOX_DATA_DIR
// env > platform default.
func resolveDataDir() (string, error) {
	return paths.ResolveDataDir(flagDataDir, cfg.GetString(cfgKeyDataDir))
}

// resolveConfigDir returns the configuration directory following the
// precedence: --config-dir flag > RECIPEBOX_CONFIG_DIR env > platform
// default.
func resolveConfigDir() (string, error) {
	return paths.ResolveConfigDir(flagConfigDir)
}

// Package commands implements the membuf CLI commands.
package commands

import (
	"github.com/spf13/cobra"

	"github.com/marmos91/membuf/internal/logger"
	"github.com/marmos91/membuf/pkg/config"
)

var (
	// Version information injected at build time.
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"

	// Global flags.
	cfgFile string
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "membuf",
	Short: "membuf - exclusively-owned byte buffers",
	Long: `membuf is a library and demo CLI for exclusively-owned byte buffers
with explicit copy and move semantics, backed by pluggable allocators
(heap, tiered pool, bounded arena).

Use "membuf [command] --help" for more information about a command.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and runs it.
// Called by main.main().
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $XDG_CONFIG_HOME/membuf/config.yaml)")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(demoCmd)
	rootCmd.AddCommand(serveCmd)
}

// loadConfig loads the configuration honoring the global --config flag
// and initializes the logger from it.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}

	err = logger.Init(logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	})
	if err != nil {
		return nil, err
	}

	return cfg, nil
}

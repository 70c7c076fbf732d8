package commands

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/marmos91/membuf/internal/cli/prompt"
	"github.com/marmos91/membuf/pkg/config"
)

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a configuration file",
	Long: `Initialize a membuf configuration file with default values.

By default, the configuration file is created at $XDG_CONFIG_HOME/membuf/config.yaml.
Use --config to specify a custom path.

Examples:
  # Initialize with default location
  membuf init

  # Initialize with custom path
  membuf init --config /etc/membuf/config.yaml

  # Overwrite an existing config without prompting
  membuf init --force`,
	RunE: runInit,
}

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite existing config file without prompting")
}

func runInit(cmd *cobra.Command, args []string) error {
	configPath := cfgFile
	if configPath == "" {
		configPath = config.GetDefaultConfigPath()
	}

	// Confirm before clobbering an existing file.
	if _, err := os.Stat(configPath); err == nil {
		ok, err := prompt.ConfirmWithForce(
			fmt.Sprintf("Config file %s exists, overwrite", configPath), initForce)
		if err != nil {
			if errors.Is(err, prompt.ErrAborted) {
				return nil
			}
			return err
		}
		if !ok {
			fmt.Println("Aborted.")
			return nil
		}
	}

	if err := config.InitConfigToPath(configPath, true); err != nil {
		return fmt.Errorf("failed to initialize config: %w", err)
	}

	fmt.Printf("Configuration file created at: %s\n", configPath)
	fmt.Println("\nNext steps:")
	fmt.Println("  1. Edit the configuration file to customize allocator sizes")
	fmt.Println("  2. Run the demos with: membuf demo move")
	fmt.Println("  3. Or start the stats server with: membuf serve")
	return nil
}

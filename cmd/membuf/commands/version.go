package commands

import (
	"os"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/marmos91/membuf/internal/cli/output"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		output.KeyValues(os.Stdout, [][2]string{
			{"Version:", Version},
			{"Commit:", Commit},
			{"Built:", Date},
			{"Go version:", runtime.Version()},
			{"OS/Arch:", runtime.GOOS + "/" + runtime.GOARCH},
		})
	},
}

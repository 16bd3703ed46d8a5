package cmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

// Overridable via -ldflags "-X github.com/jobradar/jobradar/cmd.version=...".
var version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the jobradar version",
	Run: func(_ *cobra.Command, _ []string) {
		fmt.Printf("%s %s (%s/%s)\n", app, version, runtime.GOOS, runtime.GOARCH)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/truai/governor/internal/govern"
)

func init() {
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print engine name and version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("%s %s\n", govern.EngineName, govern.EngineVersion)
	},
}

package cli

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "truai",
	Short: "Governance engine for AI assistant actions",
	Long:  "Decides whether an automated action runs autonomously, needs human approval, or is blocked; routes approved work to a cost-appropriate inference tier; watermarks produced artifacts; and keeps an append-only audit trail of every decision.",
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/truai/governor/internal/watermark"
)

func init() {
	rootCmd.AddCommand(artifactCmd)
	artifactCmd.AddCommand(artifactVerifyCmd)
}

var artifactCmd = &cobra.Command{
	Use:   "artifact",
	Short: "Forensic watermark operations",
}

var artifactVerifyCmd = &cobra.Command{
	Use:   "verify [path]",
	Short: "Scan an artifact for forensic markers",
	Long:  "Reads the artifact from the given file (or stdin when omitted) and\nreports every forensic identifier found, in order of first occurrence.\nExits 0 when at least one marker is present, 1 otherwise.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runArtifactVerify,
}

func runArtifactVerify(cmd *cobra.Command, args []string) error {
	var data []byte
	var err error
	if len(args) == 1 {
		data, err = os.ReadFile(args[0])
	} else {
		data, err = io.ReadAll(os.Stdin)
	}
	if err != nil {
		return fmt.Errorf("read artifact: %w", err)
	}

	result := watermark.Verify(string(data))
	if !result.Originated {
		fmt.Println("no forensic markers found")
		os.Exit(1)
	}

	for _, id := range result.ForensicIDs {
		fmt.Println(id)
	}
	return nil
}

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/truai/governor/internal/model"
	"github.com/truai/governor/internal/risk"
)

var classifyFlags struct {
	taskType   string
	scope      string
	target     string
	production bool
}

func init() {
	rootCmd.AddCommand(classifyCmd)
	classifyCmd.Flags().StringVar(&classifyFlags.taskType, "type", "", "task type tag (e.g. file_edit, deploy)")
	classifyCmd.Flags().StringVar(&classifyFlags.scope, "scope", "project", "blast radius: file, project, system, global")
	classifyCmd.Flags().StringVar(&classifyFlags.target, "target", "", "identifier of the thing being acted on")
	classifyCmd.Flags().BoolVar(&classifyFlags.production, "production", false, "target is production")
	classifyCmd.MarkFlagRequired("type")
}

var classifyCmd = &cobra.Command{
	Use:   "classify",
	Short: "Classify a task's risk level (dry-run)",
	Long:  "Runs the risk classifier against a task description without executing or logging anything. Prints the level, the rule that fired, and whether approval would be required.",
	RunE:  runClassify,
}

func runClassify(cmd *cobra.Command, args []string) error {
	task := &model.Task{
		Type:         classifyFlags.taskType,
		Scope:        model.Scope(classifyFlags.scope),
		Target:       classifyFlags.target,
		IsProduction: classifyFlags.production,
	}

	level, reason := risk.ClassifyWithReason(task, false)
	fmt.Printf("%s (%s)\n", level, reason)
	if risk.RequiresApproval(level) {
		fmt.Println("requires approval: yes")
	} else {
		fmt.Println("requires approval: no")
	}
	return nil
}

package cli

import (
	"github.com/spf13/cobra"

	"github.com/pablasso/metaflow/internal/hook"
	"github.com/pablasso/metaflow/internal/plan"
	"github.com/pablasso/metaflow/internal/workflow"
)

var hookCmd = &cobra.Command{
	Use:   "hook",
	Short: "Run as an assistant hook",
	Long:  `Hook handlers read the event payload from stdin and write hook JSON to stdout.`,
}

var hookPromptCmd = &cobra.Command{
	Use:   "prompt",
	Short: "Classify the submitted prompt and inject workflow guidance",
	Args:  cobra.NoArgs,
	RunE:  runHookPrompt,
}

var hookArchiveCmd = &cobra.Command{
	Use:   "archive",
	Short: "Archive completed plans and report what moved",
	Args:  cobra.NoArgs,
	RunE:  runHookArchive,
}

func init() {
	hookCmd.AddCommand(hookPromptCmd)
	hookCmd.AddCommand(hookArchiveCmd)
}

func runHookPrompt(cmd *cobra.Command, args []string) error {
	in, err := hook.ReadInput(cmd.InOrStdin())
	if err != nil {
		return &ExitError{Code: 1, Err: err}
	}
	if in.Prompt == "" {
		return nil
	}

	result := workflow.Classify(in.Prompt)
	logger.Debug("classified prompt", "task_type", result.TaskType, "workflow", result.Workflow)

	return hook.Write(cmd.OutOrStdout(), hook.UserPromptSubmit, workflow.RenderContext(result))
}

// runHookArchive never fails the hook. Errors are logged and produce an
// empty context.
func runHookArchive(cmd *cobra.Command, args []string) error {
	if err := hook.Write(cmd.OutOrStdout(), hook.PrePromptSubmit, archiveSummary(cmd)); err != nil {
		logger.Error("failed to write hook output", "error", err)
	}
	return nil
}

func archiveSummary(cmd *cobra.Command) string {
	cfg, err := loadConfig(cmd)
	if err != nil {
		logger.Error("archive skipped", "error", err)
		return ""
	}

	archiver := plan.NewArchiver(cfg.PlanLayout(), cfg.IndexRebuilder()).WithLogger(logger)
	if !cfg.Journal.Enabled {
		archiver = archiver.WithoutJournal()
	}

	result, err := archiver.Run(cmd.Context())
	if err != nil {
		logger.Error("archive failed", "error", err)
		return ""
	}
	return result.Summary()
}

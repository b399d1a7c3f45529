package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pablasso/metaflow/internal/tui/styles"
	"github.com/pablasso/metaflow/internal/workflow"
)

var classifyJSON bool

var classifyCmd = &cobra.Command{
	Use:   "classify <prompt...>",
	Short: "Show how a prompt would be classified",
	Long: `Classify a prompt the same way the prompt hook does and print the guidance
that would be injected. Arguments are joined with spaces.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runClassify,
}

func init() {
	classifyCmd.Flags().BoolVar(&classifyJSON, "json", false, "print the classification as JSON")
}

func runClassify(cmd *cobra.Command, args []string) error {
	result := workflow.Classify(strings.Join(args, " "))
	out := cmd.OutOrStdout()

	if classifyJSON {
		enc := json.NewEncoder(out)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "  ")
		if err := enc.Encode(result); err != nil {
			return fmt.Errorf("failed to encode classification: %w", err)
		}
		return nil
	}

	fmt.Fprintln(out, styles.TitleStyle.Render(fmt.Sprintf("%s → %s", result.TaskType, result.Workflow)))
	fmt.Fprintln(out, workflow.RenderContext(result))
	return nil
}

package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/pablasso/metaflow/internal/evidence"
)

var (
	evidenceCheck bool
	evidenceJSON  bool
)

var evidenceCmd = &cobra.Command{
	Use:   "evidence [file]",
	Short: "Validate evidence citations in a document",
	Long: `Check that factual claims in a document are backed by repository, web or
configuration citations. Reads stdin when no file is given. With --verbose,
each detected claim pattern is listed as a suggestion.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runEvidence,
}

func init() {
	evidenceCmd.Flags().BoolVar(&evidenceCheck, "check", false, "exit with status 1 when issues are found")
	evidenceCmd.Flags().BoolVar(&evidenceJSON, "json", false, "print the validation as JSON")
}

func runEvidence(cmd *cobra.Command, args []string) error {
	var data []byte
	var err error

	switch {
	case len(args) == 1:
		data, err = os.ReadFile(args[0])
		if err != nil {
			return &ExitError{Code: 2, Err: fmt.Errorf("failed to read file: %w", err)}
		}
	case isTerminal(cmd.InOrStdin()):
		fmt.Fprintln(cmd.ErrOrStderr(), "Usage: metaflow evidence [file.md] [--check] [--verbose] [--json]")
		fmt.Fprintln(cmd.ErrOrStderr(), "  pipe input via stdin or provide file path")
		return &ExitError{Code: 1}
	default:
		data, err = io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return &ExitError{Code: 2, Err: fmt.Errorf("failed to read stdin: %w", err)}
		}
	}

	v := evidence.Validate(string(data), evidence.Options{Verbose: verboseFlag})
	logger.Debug("validated evidence", "issues", len(v.Issues), "citations", v.Stats.TotalCitations)

	out := cmd.OutOrStdout()
	if evidenceJSON {
		enc := json.NewEncoder(out)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "  ")
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("failed to encode validation: %w", err)
		}
	} else {
		fmt.Fprintln(out, evidence.FormatReport(v))
	}

	if evidenceCheck && v.HasIssues {
		return &ExitError{Code: 1}
	}
	return nil
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

package cli

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/pablasso/metaflow/internal/config"
	"github.com/pablasso/metaflow/internal/version"
)

var (
	rootFlag    string
	configFlag  string
	verboseFlag bool

	logger = slog.Default()
)

var rootCmd = &cobra.Command{
	Use:   "metaflow",
	Short: "Workflow hooks for AI coding assistants",
	Long: `Metaflow classifies prompts into workflow categories and archives completed
plan documents. It is invoked by the assistant as a hook and also offers a few
commands for inspecting plans and classifications by hand.`,
	Version:           version.Version,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setupLogging,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&rootFlag, "root", "", "workflow root directory (default: resolved from the environment)")
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "settings file (default: <root>/metaflow.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "enable debug logging and verbose output")

	rootCmd.AddCommand(hookCmd)
	rootCmd.AddCommand(classifyCmd)
	rootCmd.AddCommand(plansCmd)
	rootCmd.AddCommand(evidenceCmd)
	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// ExitError carries a process exit code to main. Err, when set, is printed
// to stderr before exiting.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit status %d", e.Code)
	}
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// setupLogging routes structured logs to stderr, since stdout carries hook
// output.
func setupLogging(cmd *cobra.Command, args []string) error {
	logger = newLogger(cmd.ErrOrStderr(), verboseFlag)
	slog.SetDefault(logger)
	return nil
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(cmd.Context(), config.Options{Root: rootFlag, File: configFlag})
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	logger.Debug("loaded config", "root", cfg.Root, "file", cfg.File)
	return cfg, nil
}

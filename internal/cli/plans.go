package cli

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/pablasso/metaflow/internal/plan"
	"github.com/pablasso/metaflow/internal/tui"
	"github.com/pablasso/metaflow/internal/tui/styles"
)

var (
	plansInteractive bool
	plansHistory     bool
)

// runBrowser starts the interactive browser. Tests replace it.
var runBrowser = tui.Run

var plansCmd = &cobra.Command{
	Use:   "plans",
	Short: "List active and archived plans",
	Long: `List plan documents with their location, status and quality gate flag.
With --history, print the archive journal instead.`,
	Args:  cobra.NoArgs,
	RunE:  runPlans,
}

func init() {
	plansCmd.Flags().BoolVarP(&plansInteractive, "interactive", "i", false, "browse plans interactively")
	plansCmd.Flags().BoolVar(&plansHistory, "history", false, "show the archive journal")
}

func runPlans(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	layout := cfg.PlanLayout()

	if plansInteractive {
		return runBrowser(layout)
	}
	if plansHistory {
		return printHistory(cmd.OutOrStdout(), layout)
	}

	docs, err := plan.ListDocuments(layout)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(docs) == 0 {
		fmt.Fprintln(out, styles.SubtleStyle.Render("No plans found in "+layout.PlansPath()))
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "LOCATION\tNAME\tSTATUS\tGATES")
	for _, d := range docs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", d.Location, d.Name, orDash(d.Status), gates(d))
	}
	return w.Flush()
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func gates(d plan.Document) string {
	if d.QualityGatesPassed {
		return "passed"
	}
	if d.Status == plan.StatusCompleted {
		return "missing"
	}
	return "-"
}

func printHistory(out io.Writer, layout plan.Layout) error {
	events, err := plan.ReadJournal(layout.ArchivePath())
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to read archive journal: %w", err)
	}
	if len(events) == 0 {
		fmt.Fprintln(out, styles.SubtleStyle.Render("No archive history."))
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "WHEN\tEVENT\tDETAILS")
	for _, ev := range events {
		fmt.Fprintf(w, "%s\t%s\t%s\n", humanize.Time(ev.Timestamp), ev.Event, formatEventData(ev.Data))
	}
	return w.Flush()
}

// formatEventData renders event data as sorted key=value pairs.
func formatEventData(data map[string]any) string {
	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, len(keys))
	for i, k := range keys {
		v := data[k]
		if list, ok := v.([]any); ok {
			items := make([]string, len(list))
			for j, item := range list {
				items[j] = fmt.Sprint(item)
			}
			v = strings.Join(items, ",")
		}
		parts[i] = fmt.Sprintf("%s=%v", k, v)
	}
	return strings.Join(parts, " ")
}

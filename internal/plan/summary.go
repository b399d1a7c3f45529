package plan

import (
	"fmt"
	"strings"
)

// Summary renders the human-readable report injected into the assistant's
// context: warnings first, then archived plans, then updated references.
// Empty sections are omitted, so a run that did nothing yields "".
func (r *ArchiveResult) Summary() string {
	if r == nil {
		return ""
	}

	var sb strings.Builder

	if len(r.Warnings) > 0 {
		sb.WriteString("\n## Archive Warnings\n\n")
		for _, w := range r.Warnings {
			fmt.Fprintf(&sb, "- %s\n", w)
		}
		sb.WriteString("\n")
	}

	if len(r.Archived) > 0 {
		sb.WriteString("\n## Auto-Archived Plans\n\n")
		sb.WriteString("The following completed plans were automatically moved to archive:\n")
		fmt.Fprintf(&sb, "- %s\n\n", strings.Join(r.Archived, ", "))

		if len(r.UpdatedFiles) > 0 {
			sb.WriteString("References updated in:\n")
			for _, f := range r.UpdatedFiles {
				fmt.Fprintf(&sb, "- %s\n", f)
			}
		}
		if r.IndexRebuilt {
			sb.WriteString("Indexes have been updated.\n")
		}
	}

	return sb.String()
}

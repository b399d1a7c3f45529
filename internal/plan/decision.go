package plan

import "fmt"

// Decision is the outcome of applying the archive rule to one document.
type Decision struct {
	Archive bool
	Warning string
}

// Decide determines whether the named document should be archived.
//
// Only an exact "completed" status archives. A completed plan whose quality
// gates are not recorded as passed is still archived, but carries a warning
// so the missing confirmation gets a human look.
func Decide(fm Frontmatter, name string) Decision {
	status, ok := fm.Status()
	if !ok || status != StatusCompleted {
		return Decision{}
	}

	if !fm.QualityGatesPassed() {
		return Decision{
			Archive: true,
			Warning: fmt.Sprintf(
				"Warning: Plan '%s' has status=completed but quality_gates_passed is false/missing. "+
					"Archiving anyway, but this may indicate the workflow was not followed correctly.",
				name,
			),
		}
	}

	return Decision{Archive: true}
}

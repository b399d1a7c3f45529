package workflow

import "strings"

// Result is the classification of a single prompt.
type Result struct {
	TaskType    TaskType `json:"task_type"`
	Workflow    Name     `json:"workflow"`
	Instruction string   `json:"instruction"`
	Heading     string   `json:"heading"`
	Steps       []string `json:"steps"`
}

// Classify returns the classification of the first rule matching prompt, or
// the complex-task fallback. It always returns a result.
func Classify(prompt string) Result {
	for _, rule := range Rules {
		if rule.Matches(prompt) {
			return newResult(rule)
		}
	}
	return newResult(Fallback)
}

func newResult(rule Rule) Result {
	g := guidanceFor(rule.Workflow)
	return Result{
		TaskType:    rule.TaskType,
		Workflow:    rule.Workflow,
		Instruction: rule.Instruction,
		Heading:     g.Heading,
		Steps:       append([]string(nil), g.Steps...),
	}
}

// RequiresQualityGates reports whether the workflow executes changes and so
// must be followed by the quality gates.
func (r Result) RequiresQualityGates() bool {
	return r.Workflow != WorkflowInformationQuery
}

// RenderContext assembles the guidance text injected into the assistant's
// context for r.
func RenderContext(r Result) string {
	parts := []string{
		"\n## Meta-Workflow Assessment",
		"\n**Task Type:** " + string(r.TaskType),
		"**Required Workflow:** " + string(r.Workflow),
		"**Instruction:** " + r.Instruction,
		"\n**" + r.Heading + "**",
	}
	parts = append(parts, r.Steps...)

	if r.RequiresQualityGates() {
		parts = append(parts, qualityGatesReminder...)
	}

	return strings.Join(parts, "\n")
}

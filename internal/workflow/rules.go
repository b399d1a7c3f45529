// Package workflow classifies user prompts into workflow categories and
// renders the guidance injected for each category.
package workflow

import "regexp"

// TaskType is the category a prompt is classified into.
type TaskType string

const (
	TaskInformationQuery   TaskType = "information_query"
	TaskSimpleChange       TaskType = "simple_change"
	TaskFeatureDevelopment TaskType = "feature_development"
	TaskUIDesign           TaskType = "ui_design"
	TaskBugFix             TaskType = "bug_fix"
	TaskComplex            TaskType = "complex_task"
)

// Name identifies the guidance procedure selected for a task type.
type Name string

const (
	WorkflowInformationQuery Name = "information_query"
	WorkflowDirectExecution  Name = "direct_execution"
	WorkflowTDD              Name = "tdd"
	WorkflowUIIteration      Name = "ui_iteration"
	WorkflowBugFix           Name = "bug_fix"
	WorkflowMeta             Name = "meta"
)

// Rule maps a set of triggers to a classification. A rule matches when any
// of its patterns matches the prompt.
type Rule struct {
	TaskType    TaskType
	Workflow    Name
	Instruction string
	Patterns    []*regexp.Regexp
}

// Matches reports whether any trigger matches prompt.
func (r Rule) Matches(prompt string) bool {
	for _, p := range r.Patterns {
		if p.MatchString(prompt) {
			return true
		}
	}
	return false
}

// Word boundaries are spelled out against Unicode letters and digits, since
// \b only knows ASCII. Each one consumes the neighbouring character; rules
// are only ever tested for a match.
const (
	nonWord = `[^\p{L}\p{N}_]`
	// wordStart and wordEnd bound a term at either end.
	wordStart = `(?:^|` + nonWord + `)`
	wordEnd   = `(?:` + nonWord + `|$)`
	// wordGap separates two bounded terms on the same line.
	wordGap = `(?:[^\p{L}\p{N}_\n](?:.*[^\p{L}\p{N}_\n])?)`
	// nextWord requires the term to be followed directly by a word.
	nextWord = `[\p{L}\p{N}_]`
)

func patterns(exprs ...string) []*regexp.Regexp {
	compiled := make([]*regexp.Regexp, len(exprs))
	for i, expr := range exprs {
		compiled[i] = regexp.MustCompile(`(?i)` + expr)
	}
	return compiled
}

// term bounds expr on both sides.
func term(expr string) string {
	return wordStart + `(?:` + expr + `)` + wordEnd
}

// Rules is evaluated in order and the first match wins. Questions come
// first so that asking about a bug is not treated as a request to fix one.
var Rules = []Rule{
	{
		TaskType:    TaskInformationQuery,
		Workflow:    WorkflowInformationQuery,
		Instruction: "Direct response - no workflow needed",
		Patterns: patterns(
			term(`what|how|why|explain|describe|show me|tell me`),
			term(`which|where|when|who`),
			term(`meaning|definition|overview`),
			`\?\n?$`,
		),
	},
	{
		TaskType:    TaskSimpleChange,
		Workflow:    WorkflowDirectExecution,
		Instruction: "Execute directly, then run quality gates",
		Patterns: patterns(
			term(`(fix|correct) typo`),
			term(`change word`),
			term(`update text`),
			term(`(simple|quick) fix`),
		),
	},
	{
		TaskType:    TaskFeatureDevelopment,
		Workflow:    WorkflowTDD,
		Instruction: "Read .claude/workflows/tdd-workflow.md and follow it",
		Patterns: patterns(
			term(`add (a )?(new )?(feature|function|component|page|route)`),
			wordStart+`(create|build|implement) (a )?(new )?`+nextWord,
			wordStart+`form`+wordGap+`validation`+wordEnd,
			term(`(user )?interaction`),
			term(`navigation`),
		),
	},
	{
		TaskType:    TaskUIDesign,
		Workflow:    WorkflowUIIteration,
		Instruction: "Read .claude/workflows/ui-iteration-workflow.md and follow it",
		Patterns: patterns(
			term(`redesign|design|style|css|look|appearance|visual`),
			wordStart+`(hero|header|footer|layout|component)`+wordGap+`(redesign|update)`+wordEnd,
			term(`(make it|more )?(beautiful|pretty|nice|clean|modern)`),
		),
	},
	{
		TaskType:    TaskBugFix,
		Workflow:    WorkflowBugFix,
		Instruction: "Read .claude/workflows/bug-fix-workflow.md and follow it",
		Patterns: patterns(
			term(`bug|error|issue|problem|broken|not working|fail`),
			term(`debug|troubleshoot|fix`),
			term(`wrong|incorrect|unexpected`),
		),
	},
}

// Fallback is the classification for prompts no rule matches. Ambiguous
// requests get the most rigorous procedure.
var Fallback = Rule{
	TaskType:    TaskComplex,
	Workflow:    WorkflowMeta,
	Instruction: "Read .claude/workflows/meta-workflow.md and follow the full 5-step process",
}

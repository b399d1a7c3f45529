package workflow

// Guidance is the ordered step list shown for a workflow.
type Guidance struct {
	Heading string
	Steps   []string
}

var guidance = map[Name]Guidance{
	WorkflowTDD: {
		Heading: "TDD Workflow Steps:",
		Steps: []string{
			"1. Read CLAUDE.md at project root for full context",
			"2. Read .claude/workflows/tdd-workflow.md",
			"3. Write tests FIRST",
			"4. Confirm tests fail",
			"5. Write implementation",
			"6. Run tests until they pass",
			"7. Quality gates: typecheck, lint, build, test",
		},
	},
	WorkflowUIIteration: {
		Heading: "UI Iteration Workflow Steps:",
		Steps: []string{
			"1. Read CLAUDE.md at project root for full context",
			"2. Read .claude/workflows/ui-iteration-workflow.md",
			"3. Use frontend-design skill for aesthetic direction",
			"4. Implement initial version",
			"5. Take screenshot",
			"6. Iterate 2-3 times based on feedback",
			"7. Quality gates: typecheck, lint, build, test",
		},
	},
	WorkflowBugFix: {
		Heading: "Bug Fix Workflow Steps:",
		Steps: []string{
			"1. Read CLAUDE.md at project root for full context",
			"2. Read .claude/workflows/bug-fix-workflow.md",
			"3. Reproduce the bug",
			"4. Explore code to find root cause",
			"5. Create fix plan",
			"6. Implement fix",
			"7. Add regression test",
			"8. Quality gates: typecheck, lint, build, test",
		},
	},
	WorkflowMeta: {
		Heading: "Full Meta-Workflow Required:",
		Steps: []string{
			"1. Read CLAUDE.md at project root for full context",
			"2. Read .claude/workflows/meta-workflow.md",
			"3. Follow all 7 steps:",
			"   - Step 1: Plan Approach",
			"   - Step 2: Explore (if needed)",
			"   - Step 3: Plan Solution",
			"   - Step 3.5: Plan Scrutiny (if plan created)",
			"   - Step 4: Execute",
			"   - Step 5: Quality Gates (NEVER SKIP - loop until pass)",
			"   - Step 6: Implementation Scrutiny (if non-trivial)",
			"   - Step 7: Plan Completion (Two-Stage Confirmation)",
			"",
			"**CRITICAL - All Subagents Must Read CLAUDE.md and Skills Index:**",
			"- When launching subagents in Step 3.5 (Plan Scrutiny), instruct each to:",
			"  1. First read CLAUDE.md",
			"  2. Then review .claude/skills/index.md to discover available skills",
			"  3. Then perform review (invoking skills as needed)",
			"- When launching subagents in Step 6 (Implementation Scrutiny), instruct each to:",
			"  1. First read CLAUDE.md",
			"  2. Then review .claude/skills/index.md to discover available skills",
			"  3. Then perform review (invoking skills as needed)",
			"",
			"**CRITICAL - Step 7 Two-Stage Confirmation:**",
			"- Stage 1: Ask user \"Do you agree the work is complete, or are there changes/problems?\"",
			"- Stage 2: Run quality gates (typecheck, lint, build, test)",
			"- ONLY set status: completed and quality_gates_passed: true after BOTH stages pass",
		},
	},
	WorkflowDirectExecution: {
		Heading: "Direct Execution:",
		Steps: []string{
			"1. Read CLAUDE.md at project root for full context",
			"2. Make the change directly",
			"3. Run quality gates from CLAUDE.md or package.json",
			"4. Done",
		},
	},
	WorkflowInformationQuery: {
		Heading: "Information Query:",
		Steps: []string{
			"Provide a direct response without workflow execution.",
		},
	},
}

// qualityGatesReminder closes the guidance of every workflow that executes changes.
var qualityGatesReminder = []string{
	"\n**IMPORTANT - Quality Gates (Step 5):**",
	"After execution, ALWAYS run quality gates defined in CLAUDE.md.",
	"\n1. Read CLAUDE.md and find the Quality Gates section",
	"2. If not defined, look for common scripts in package.json:",
	"   - Type checks: typecheck, check, validate",
	"   - Linting: lint, lint:fix",
	"   - Build: build, compile",
	"   - Tests: test, test:e2e, test:unit, test:all",
	"\nNever skip quality gates.",
}

// guidanceFor returns the guidance for name. Unknown workflows fall back to
// the information query guidance.
func guidanceFor(name Name) Guidance {
	if g, ok := guidance[name]; ok {
		return g
	}
	return guidance[WorkflowInformationQuery]
}

package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pablasso/metaflow/internal/hook"
	"github.com/pablasso/metaflow/internal/testutil"
)

func decodeHookOutput(t *testing.T, out string) hook.Output {
	t.Helper()
	var decoded hook.Output
	if err := json.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("output is not hook JSON: %v\n%s", err, out)
	}
	return decoded
}

func TestHookPrompt(t *testing.T) {
	t.Run("classifies the prompt", func(t *testing.T) {
		out, _, err := execute(t, `{"prompt":"the submit button is broken","session_id":"s1"}`, "hook", "prompt")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		got := decodeHookOutput(t, out).HookSpecificOutput
		if got.HookEventName != "UserPromptSubmit" {
			t.Errorf("event = %q", got.HookEventName)
		}
		if !strings.Contains(got.AdditionalContext, "**Task Type:** bug_fix") {
			t.Errorf("unexpected context %q", got.AdditionalContext)
		}
	})

	t.Run("empty prompt produces no output", func(t *testing.T) {
		for _, input := range []string{`{}`, `{"prompt":""}`} {
			out, _, err := execute(t, input, "hook", "prompt")
			if err != nil {
				t.Fatalf("unexpected error for %s: %v", input, err)
			}
			if out != "" {
				t.Errorf("expected no output for %s, got %q", input, out)
			}
		}
	})

	t.Run("malformed input exits 1", func(t *testing.T) {
		out, _, err := execute(t, `{"prompt": "unterminated`, "hook", "prompt")
		if code := exitCode(t, err); code != 1 {
			t.Errorf("exit code = %d, want 1", code)
		}
		if !strings.HasPrefix(err.Error(), "Invalid JSON input: ") {
			t.Errorf("unexpected error %q", err.Error())
		}
		if out != "" {
			t.Errorf("expected no stdout, got %q", out)
		}
	})

	t.Run("trailing data after the object exits 1", func(t *testing.T) {
		out, _, err := execute(t, `{"prompt":"fix typo"}}`, "hook", "prompt")
		if code := exitCode(t, err); code != 1 {
			t.Errorf("exit code = %d, want 1", code)
		}
		if out != "" {
			t.Errorf("expected no stdout, got %q", out)
		}
	})
}

func TestHookArchive(t *testing.T) {
	t.Run("archives completed plans", func(t *testing.T) {
		root := t.TempDir()
		testutil.WriteFile(t, root, "plans/active/done.md", "---\nstatus: completed\nquality_gates_passed: true\n---\n")
		testutil.WriteFile(t, root, "plans/active/wip.md", "---\nstatus: in_progress\n---\n")
		testutil.WriteFile(t, root, "notes.md", "see plans/active/done.md\n")

		out, _, err := execute(t, "", "hook", "archive", "--root", root)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		got := decodeHookOutput(t, out).HookSpecificOutput
		if got.HookEventName != "PrePromptSubmit" {
			t.Errorf("event = %q", got.HookEventName)
		}
		for _, want := range []string{
			"## Auto-Archived Plans",
			"- done.md",
			"References updated in:\n- notes.md",
			"Warning: Failed to update indexes",
		} {
			if !strings.Contains(got.AdditionalContext, want) {
				t.Errorf("context missing %q:\n%s", want, got.AdditionalContext)
			}
		}

		if _, err := os.Stat(filepath.Join(root, "plans", "archive", "done.md")); err != nil {
			t.Errorf("expected done.md in archive: %v", err)
		}
		if _, err := os.Stat(filepath.Join(root, "plans", "active", "wip.md")); err != nil {
			t.Errorf("expected wip.md to stay active: %v", err)
		}
		data, _ := os.ReadFile(filepath.Join(root, "notes.md"))
		if string(data) != "see plans/archive/done.md\n" {
			t.Errorf("reference not rewritten: %q", data)
		}
	})

	t.Run("nothing to archive yields empty context", func(t *testing.T) {
		out, _, err := execute(t, "", "hook", "archive", "--root", t.TempDir())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if ctx := decodeHookOutput(t, out).HookSpecificOutput.AdditionalContext; ctx != "" {
			t.Errorf("expected empty context, got %q", ctx)
		}
	})

	t.Run("config errors never fail the hook", func(t *testing.T) {
		root := t.TempDir()
		testutil.WriteFile(t, root, "metaflow.yaml", "plans: [")

		out, stderr, err := execute(t, "", "hook", "archive", "--root", root)
		if err != nil {
			t.Fatalf("archive hook must exit 0, got %v", err)
		}
		if ctx := decodeHookOutput(t, out).HookSpecificOutput.AdditionalContext; ctx != "" {
			t.Errorf("expected empty context, got %q", ctx)
		}
		if !strings.Contains(stderr, "archive skipped") {
			t.Errorf("expected the failure on stderr, got %q", stderr)
		}
	})
}

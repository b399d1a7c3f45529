package plan

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/pablasso/metaflow/internal/testutil"
)

func writeScript(t *testing.T, path, body string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("failed to create script dir: %v", err)
	}
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+body), 0755); err != nil {
		t.Fatalf("failed to write script: %v", err)
	}
}

func TestScriptRebuilder_RunsInRoot(t *testing.T) {
	root := testutil.ResolvedTempDir(t)
	writeScript(t, filepath.Join(root, "bin", "update-indexes.sh"), "pwd > rebuilt.txt\n")

	if err := NewScriptRebuilder(DefaultIndexScript).Rebuild(context.Background(), root); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := strings.TrimSpace(readTestFile(t, filepath.Join(root, "rebuilt.txt")))
	if got != root {
		t.Errorf("script ran in %q, want %q", got, root)
	}
}

func TestScriptRebuilder_AbsoluteScript(t *testing.T) {
	root := t.TempDir()
	script := filepath.Join(t.TempDir(), "rebuild.sh")
	writeScript(t, script, "touch done.txt\n")

	if err := NewScriptRebuilder(script).Rebuild(context.Background(), root); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := os.Stat(filepath.Join(root, "done.txt")); err != nil {
		t.Errorf("expected marker in root: %v", err)
	}
}

func TestScriptRebuilder_Failures(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		timeout time.Duration
		wantErr string
	}{
		{name: "non-zero exit", body: "echo 'index broke' >&2\nexit 3\n", wantErr: "index broke"},
		{name: "silent failure", body: "exit 1\n", wantErr: "exit status 1"},
		{name: "timeout", body: "exec sleep 5\n", timeout: 50 * time.Millisecond, wantErr: "timed out"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			writeScript(t, filepath.Join(root, DefaultIndexScript), tt.body)

			rb := NewScriptRebuilder(DefaultIndexScript)
			if tt.timeout > 0 {
				rb.Timeout = tt.timeout
			}
			err := rb.Rebuild(context.Background(), root)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q should contain %q", err.Error(), tt.wantErr)
			}
		})
	}
}

func TestScriptRebuilder_MissingScript(t *testing.T) {
	err := NewScriptRebuilder(DefaultIndexScript).Rebuild(context.Background(), t.TempDir())
	if err == nil {
		t.Fatal("expected error for missing script")
	}
	if !strings.Contains(err.Error(), "index script not found") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestScriptRebuilder_UsesCommandContext(t *testing.T) {
	root := t.TempDir()
	writeScript(t, filepath.Join(root, DefaultIndexScript), "exit 1\n")

	var gotName string
	original := CommandContext
	CommandContext = func(ctx context.Context, name string, args ...string) *exec.Cmd {
		gotName = name
		return testutil.MockCommandFunc("ok")(ctx, name, args...)
	}
	defer func() { CommandContext = original }()

	if err := NewScriptRebuilder(DefaultIndexScript).Rebuild(context.Background(), root); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotName != filepath.Join(root, DefaultIndexScript) {
		t.Errorf("command = %q, want script path", gotName)
	}
}

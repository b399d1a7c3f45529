package plan

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// CommandContext is the function used to create exec.Cmd instances.
// It can be replaced in tests to mock command execution.
var CommandContext = exec.CommandContext

// DefaultIndexScript is the index regeneration script, relative to the root.
const DefaultIndexScript = "bin/update-indexes.sh"

// DefaultIndexTimeout bounds a single index rebuild.
const DefaultIndexTimeout = 2 * time.Minute

// IndexRebuilder regenerates derived index files after plans move.
type IndexRebuilder interface {
	Rebuild(ctx context.Context, root string) error
}

// ScriptRebuilder runs an external executable with the root as working
// directory and no arguments.
type ScriptRebuilder struct {
	// Script is absolute or relative to the root.
	Script  string
	Timeout time.Duration
}

// NewScriptRebuilder creates a rebuilder for script with the default timeout.
func NewScriptRebuilder(script string) *ScriptRebuilder {
	return &ScriptRebuilder{Script: script, Timeout: DefaultIndexTimeout}
}

// Rebuild runs the script to completion. Its combined output is only
// surfaced through the returned error.
func (s *ScriptRebuilder) Rebuild(ctx context.Context, root string) error {
	script := s.Script
	if script == "" {
		script = DefaultIndexScript
	}
	if !filepath.IsAbs(script) {
		script = filepath.Join(root, script)
	}

	if _, err := os.Stat(script); err != nil {
		return fmt.Errorf("index script not found: %w", err)
	}

	if s.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.Timeout)
		defer cancel()
	}

	cmd := CommandContext(ctx, script)
	cmd.Dir = root
	// Grandchildren holding the output pipes must not stall a timed-out run.
	cmd.WaitDelay = time.Second
	output, err := cmd.CombinedOutput()
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return fmt.Errorf("index rebuild timed out after %s", s.Timeout)
		}
		if msg := strings.TrimSpace(string(output)); msg != "" {
			return fmt.Errorf("index rebuild failed: %w: %s", err, msg)
		}
		return fmt.Errorf("index rebuild failed: %w", err)
	}
	return nil
}

package git

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// CommandContext is used to create commands. Tests replace it to avoid
// depending on a git binary.
var CommandContext = exec.CommandContext

// TopLevel returns the root of the work tree containing dir.
// If dir is empty, uses the current working directory.
func TopLevel(ctx context.Context, dir string) (string, error) {
	cmd := CommandContext(ctx, "git", "rev-parse", "--show-toplevel")
	if dir != "" {
		cmd.Dir = dir
	}

	output, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("failed to find git toplevel: %w", err)
	}

	top := strings.TrimSpace(string(output))
	if top == "" {
		return "", fmt.Errorf("failed to find git toplevel: empty output")
	}
	return top, nil
}

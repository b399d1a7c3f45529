package plan

import (
	"strings"
	"testing"
)

func TestDecide(t *testing.T) {
	tests := []struct {
		name        string
		header      string
		wantArchive bool
		wantWarning bool
	}{
		{name: "no status", header: "owner: sam", wantArchive: false},
		{name: "in progress", header: "status: in_progress", wantArchive: false},
		{name: "status is case sensitive", header: "status: Completed", wantArchive: false},
		{name: "status must match exactly", header: "status: completed!", wantArchive: false},
		{name: "in progress with gates", header: "status: draft\nquality_gates_passed: true", wantArchive: false},
		{name: "completed with gates true", header: "status: completed\nquality_gates_passed: true", wantArchive: true},
		{name: "completed with gates yes", header: "status: completed\nquality_gates_passed: Yes", wantArchive: true},
		{name: "completed with gates 1", header: "status: completed\nquality_gates_passed: 1", wantArchive: true},
		{name: "completed with gates false", header: "status: completed\nquality_gates_passed: false", wantArchive: true, wantWarning: true},
		{name: "completed with gates no", header: "status: completed\nquality_gates_passed: no", wantArchive: true, wantWarning: true},
		{name: "completed with gates 0", header: "status: completed\nquality_gates_passed: 0", wantArchive: true, wantWarning: true},
		{name: "completed without gates", header: "status: completed", wantArchive: true, wantWarning: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fm := ParseFrontmatter([]byte("---\n" + tt.header + "\n---\n"))
			got := Decide(fm, "my-plan.md")

			if got.Archive != tt.wantArchive {
				t.Errorf("Archive = %v, want %v", got.Archive, tt.wantArchive)
			}
			if (got.Warning != "") != tt.wantWarning {
				t.Errorf("Warning = %q, wantWarning %v", got.Warning, tt.wantWarning)
			}
			if tt.wantWarning && !strings.Contains(got.Warning, "'my-plan.md'") {
				t.Errorf("warning should name the document, got %q", got.Warning)
			}
		})
	}
}

func TestDecide_EmptyFrontmatter(t *testing.T) {
	got := Decide(Frontmatter{}, "x.md")
	if got.Archive || got.Warning != "" {
		t.Errorf("expected no archive and no warning, got %+v", got)
	}
}

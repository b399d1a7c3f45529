package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/pablasso/metaflow/internal/plan"
	"github.com/pablasso/metaflow/internal/testutil"
)

func newTestModel(t *testing.T) Model {
	t.Helper()
	root := t.TempDir()
	testutil.WriteFile(t, root, "plans/active/alpha.md", "---\nstatus: in_progress\n---\n# Alpha\n")
	return NewModel(plan.DefaultLayout(root))
}

func resize(t *testing.T, m Model, width, height int) Model {
	t.Helper()
	updated, _ := m.Update(tea.WindowSizeMsg{Width: width, Height: height})
	return updated.(Model)
}

func TestModel_View_TerminalTooSmall(t *testing.T) {
	tests := []struct {
		name        string
		width       int
		height      int
		expectSmall bool
	}{
		{"exactly minimum size", MinTerminalWidth, MinTerminalHeight, false},
		{"width too small", MinTerminalWidth - 1, MinTerminalHeight, true},
		{"height too small", MinTerminalWidth, MinTerminalHeight - 1, true},
		{"both dimensions too small", MinTerminalWidth - 10, MinTerminalHeight - 5, true},
		{"larger than minimum", 100, 50, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := resize(t, newTestModel(t), tt.width, tt.height)
			view := m.View()

			if tt.expectSmall {
				for _, want := range []string{"Terminal too small", "Minimum:", "Current:"} {
					if !strings.Contains(view, want) {
						t.Errorf("expected view to contain %q", want)
					}
				}
				return
			}
			if strings.Contains(view, "Terminal too small") {
				t.Error("did not expect view to contain 'Terminal too small'")
			}
			if !strings.Contains(view, "alpha.md") {
				t.Errorf("expected plan list, got:\n%s", view)
			}
		})
	}
}

func TestModel_renderTerminalTooSmall_ShowsDimensions(t *testing.T) {
	m := newTestModel(t)
	m.width = 50
	m.height = 8

	view := m.renderTerminalTooSmall()

	if !strings.Contains(view, "60x10") {
		t.Error("expected minimum dimensions 60x10 to be shown")
	}
	if !strings.Contains(view, "50x8") {
		t.Error("expected current dimensions 50x8 to be shown")
	}
}

func TestModel_ForwardsKeys(t *testing.T) {
	m := resize(t, newTestModel(t), 80, 20)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
}

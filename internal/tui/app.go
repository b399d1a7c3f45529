// Package tui implements the interactive plan browser.
package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/pablasso/metaflow/internal/plan"
	"github.com/pablasso/metaflow/internal/tui/styles"
	"github.com/pablasso/metaflow/internal/tui/views"
)

// Minimum terminal dimensions for the browser layout.
const (
	MinTerminalWidth  = 60
	MinTerminalHeight = 10
)

// Model is the root Bubble Tea model of the plan browser.
type Model struct {
	width  int
	height int
	plans  views.PlanListModel
}

// Run starts the plan browser for layout and blocks until it exits.
func Run(layout plan.Layout) error {
	p := tea.NewProgram(
		NewModel(layout),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to run plan browser: %w", err)
	}
	return nil
}

// NewModel creates the browser model for layout.
func NewModel(layout plan.Layout) Model {
	return Model{plans: views.NewPlanListModel(layout)}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return m.plans.Init()
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = size.Width
		m.height = size.Height
	}

	var cmd tea.Cmd
	m.plans, cmd = m.plans.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	if m.width < MinTerminalWidth || m.height < MinTerminalHeight {
		return m.renderTerminalTooSmall()
	}
	return m.plans.View()
}

func (m Model) renderTerminalTooSmall() string {
	msg := lipgloss.JoinVertical(lipgloss.Center,
		styles.ErrorStyle.Render("Terminal too small"),
		styles.SubtleStyle.Render(fmt.Sprintf("Minimum: %dx%d", MinTerminalWidth, MinTerminalHeight)),
		styles.SubtleStyle.Render(fmt.Sprintf("Current: %dx%d", m.width, m.height)),
	)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, msg)
}

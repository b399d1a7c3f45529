// Package views contains the bubbletea models rendered by the plan browser.
package views

import (
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/pablasso/metaflow/internal/plan"
	"github.com/pablasso/metaflow/internal/tui/components"
	"github.com/pablasso/metaflow/internal/tui/styles"
)

const minListWidth = 28

// PlanListModel lists active and archived plans and previews the one under
// the cursor.
type PlanListModel struct {
	layout  plan.Layout
	docs    []plan.Document
	cursor  int
	preview components.Preview
	err     error
	width   int
	height  int

	readFile func(string) ([]byte, error)
}

// NewPlanListModel creates a PlanListModel and loads the plans in layout.
func NewPlanListModel(layout plan.Layout) PlanListModel {
	m := PlanListModel{
		layout:   layout,
		preview:  components.NewPreview(1, 0),
		readFile: os.ReadFile,
	}
	m.reload()
	return m
}

func (m *PlanListModel) reload() {
	var selected string
	if m.cursor < len(m.docs) {
		selected = m.docs[m.cursor].Path
	}

	m.docs, m.err = plan.ListDocuments(m.layout)
	m.cursor = 0
	for i, d := range m.docs {
		if d.Path == selected {
			m.cursor = i
			break
		}
	}
	m.loadPreview()
}

func (m *PlanListModel) loadPreview() {
	if len(m.docs) == 0 {
		m.preview.SetContent("")
		return
	}
	data, err := m.readFile(m.docs[m.cursor].Path)
	if err != nil {
		m.preview.SetContent(styles.ErrorStyle.Render(fmt.Sprintf("failed to read plan: %v", err)))
		return
	}
	m.preview.SetContent(string(data))
}

// Init implements tea.Model.
func (m PlanListModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m PlanListModel) Update(msg tea.Msg) (PlanListModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.MouseMsg:
		var cmd tea.Cmd
		m.preview, cmd = m.preview.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
				m.loadPreview()
			}
		case "down", "j":
			if m.cursor < len(m.docs)-1 {
				m.cursor++
				m.loadPreview()
			}
		case "r":
			m.reload()
		case "home", "g":
			m.preview.GotoTop()
		case "end", "G":
			m.preview.GotoBottom()
		case "pgup", "pgdown", "ctrl+u", "ctrl+d", " ", "b", "f":
			var cmd tea.Cmd
			m.preview, cmd = m.preview.Update(msg)
			return m, cmd
		}
	}
	return m, nil
}

// View implements tea.Model.
func (m PlanListModel) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	title := styles.TitleStyle.Render("Plans") + "  " +
		styles.SubtleStyle.Render(m.layout.PlansPath())

	var body string
	switch {
	case m.err != nil:
		body = styles.ErrorStyle.Render(fmt.Sprintf("Failed to list plans: %v", m.err))
	case len(m.docs) == 0:
		body = styles.SubtleStyle.Render("No plans found in " + m.layout.ActivePath())
	default:
		list := lipgloss.NewStyle().
			Width(m.listWidth()).
			Height(m.bodyHeight()).
			MaxHeight(m.bodyHeight()).
			Render(m.renderList())
		body = lipgloss.JoinHorizontal(lipgloss.Top, list, styles.PaneStyle.Render(m.preview.View()))
	}

	keys := []components.KeyHelp{
		{Key: "↑↓", Desc: "Navigate"},
		{Key: "pgup/pgdn", Desc: "Scroll"},
		{Key: "r", Desc: "Reload"},
		{Key: "q", Desc: "Quit"},
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		lipgloss.NewStyle().Height(m.bodyHeight()).MaxHeight(m.bodyHeight()).Render(body),
		components.NewStatusBar().Render(m.width, keys),
	)
}

func (m PlanListModel) renderList() string {
	// Keep the cursor visible when the list is taller than the pane.
	start := 0
	if h := m.bodyHeight(); h > 0 && m.cursor >= h {
		start = m.cursor - h + 1
	}

	var lines []string
	for i := start; i < len(m.docs); i++ {
		lines = append(lines, m.formatLine(i, m.docs[i]))
	}
	return strings.Join(lines, "\n")
}

func (m PlanListModel) formatLine(index int, d plan.Document) string {
	indicator := "○"
	if index == m.cursor {
		indicator = "●"
	}

	status := d.Status
	if status == "" {
		status = "-"
	}

	line := fmt.Sprintf("%s %-7s %s [%s]", indicator, d.Location, d.Name, status)

	switch {
	case index == m.cursor:
		return styles.SelectedStyle.Render(line)
	case d.Location == plan.LocationArchive:
		return styles.SubtleStyle.Render(line)
	case d.Status == plan.StatusCompleted && !d.QualityGatesPassed:
		return styles.WarningStyle.Render(line)
	case d.Status == plan.StatusCompleted:
		return styles.SuccessStyle.Render(line)
	}
	return line
}

func (m PlanListModel) listWidth() int {
	return max(minListWidth, m.width/3)
}

// bodyHeight is the space left after the title and status bar rows.
func (m PlanListModel) bodyHeight() int {
	return max(0, m.height-2)
}

// SetSize updates the model dimensions.
func (m *PlanListModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	// The preview pane border and padding take two columns.
	m.preview.SetSize(max(1, width-m.listWidth()-2), m.bodyHeight())
}

// Documents returns the listed plan documents.
func (m PlanListModel) Documents() []plan.Document {
	return m.docs
}

// Cursor returns the current cursor position.
func (m PlanListModel) Cursor() int {
	return m.cursor
}

// Selected returns the document under the cursor.
func (m PlanListModel) Selected() (plan.Document, bool) {
	if m.cursor >= len(m.docs) {
		return plan.Document{}, false
	}
	return m.docs[m.cursor], true
}

// PreviewOffset returns the first visible preview line.
func (m PlanListModel) PreviewOffset() int {
	return m.preview.YOffset()
}

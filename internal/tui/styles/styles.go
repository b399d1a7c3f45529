// Package styles defines shared lipgloss styles for the plan browser and
// operator commands.
package styles

import "github.com/charmbracelet/lipgloss"

var (
	// Colors
	primaryColor   = lipgloss.Color("#5FAFAF") // Teal accent
	secondaryColor = lipgloss.Color("#666666") // Gray for secondary text
	successColor   = lipgloss.Color("#87AF87") // Muted sage for archived plans
	warningColor   = lipgloss.Color("#D7AF5F") // Amber for missing quality gates
	errorColor     = lipgloss.Color("#AF5F5F") // Muted terracotta for errors

	// TitleStyle for headers
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor)

	// SubtleStyle for hints and archived entries
	SubtleStyle = lipgloss.NewStyle().
			Foreground(secondaryColor)

	// SelectedStyle for the entry under the cursor
	SelectedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor)

	// StatusBarStyle for the bottom key help
	StatusBarStyle = lipgloss.NewStyle().
			Foreground(secondaryColor)

	// PaneStyle frames the preview
	PaneStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(secondaryColor).
			PaddingLeft(1)

	// SuccessStyle for completed plans with passing gates
	SuccessStyle = lipgloss.NewStyle().
			Foreground(successColor)

	// WarningStyle for completed plans without passing gates
	WarningStyle = lipgloss.NewStyle().
			Foreground(warningColor)

	// ErrorStyle for error messages
	ErrorStyle = lipgloss.NewStyle().
			Foreground(errorColor)
)

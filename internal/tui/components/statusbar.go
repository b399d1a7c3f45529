package components

import (
	"strings"

	"github.com/pablasso/metaflow/internal/tui/styles"
)

// KeyHelp describes one key binding shown in the status bar.
type KeyHelp struct {
	Key  string
	Desc string
}

func (k KeyHelp) String() string {
	if k.Desc == "" {
		return k.Key
	}
	return k.Key + " " + k.Desc
}

// StatusBar renders a bottom help bar showing contextual key bindings.
type StatusBar struct {
	Separator string
}

// NewStatusBar creates a StatusBar with the default separator.
func NewStatusBar() StatusBar {
	return StatusBar{Separator: "  |  "}
}

// Render returns the status bar for the given width. Bindings are joined
// with the separator and the bar is padded to fill the width.
func (s StatusBar) Render(width int, keys []KeyHelp) string {
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k.String()
	}
	return styles.StatusBarStyle.Width(width).Render(strings.Join(parts, s.Separator))
}

package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Preview shows a scrollable document with a 1-column scrollbar on the
// right. Width includes the scrollbar column.
type Preview struct {
	viewport viewport.Model
	lines    int
	width    int
	height   int
}

// NewPreview creates an empty preview with the given dimensions.
func NewPreview(width, height int) Preview {
	p := Preview{viewport: viewport.New(0, 0)}
	p.SetSize(width, height)
	return p
}

// SetSize updates the preview dimensions and clamps the scroll offset.
func (p *Preview) SetSize(width, height int) {
	if width < 1 {
		width = 1
	}
	if height < 0 {
		height = 0
	}
	p.width = width
	p.height = height
	p.viewport.Width = width - 1
	p.viewport.Height = height
	p.viewport.SetYOffset(p.viewport.YOffset)
}

// SetContent replaces the document and scrolls back to the top.
func (p *Preview) SetContent(content string) {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	p.lines = strings.Count(content, "\n") + 1
	p.viewport.SetContent(content)
	p.viewport.GotoTop()
}

// Update forwards scroll keys and mouse wheel events to the viewport.
func (p Preview) Update(msg tea.Msg) (Preview, tea.Cmd) {
	var cmd tea.Cmd
	p.viewport, cmd = p.viewport.Update(msg)
	return p, cmd
}

// YOffset returns the index of the first visible line.
func (p Preview) YOffset() int {
	return p.viewport.YOffset
}

// GotoTop scrolls to the first line.
func (p *Preview) GotoTop() {
	p.viewport.GotoTop()
}

// GotoBottom scrolls to the last page.
func (p *Preview) GotoBottom() {
	p.viewport.GotoBottom()
}

// View renders the visible lines next to the scrollbar.
func (p Preview) View() string {
	if p.height == 0 {
		return ""
	}
	content := lipgloss.NewStyle().
		Width(p.viewport.Width).
		MaxWidth(p.viewport.Width).
		Height(p.height).
		MaxHeight(p.height).
		Render(p.viewport.View())
	return lipgloss.JoinHorizontal(lipgloss.Top, content, RenderScrollbar(p.height, p.lines, p.viewport.YOffset))
}

// RenderScrollbar renders a vertical scrollbar of viewHeight rows. It is a
// blank gutter while the content fits; otherwise a track with a thumb sized
// to the visible fraction.
func RenderScrollbar(viewHeight, contentHeight, yOffset int) string {
	if viewHeight <= 0 {
		return ""
	}

	rows := make([]string, viewHeight)
	if contentHeight <= viewHeight {
		for i := range rows {
			rows[i] = " "
		}
		return strings.Join(rows, "\n")
	}

	thumbSize := max(1, viewHeight*viewHeight/contentHeight)
	thumbMaxTop := viewHeight - thumbSize
	thumbTop := yOffset * thumbMaxTop / (contentHeight - viewHeight)
	thumbTop = min(max(thumbTop, 0), thumbMaxTop)

	for i := range rows {
		if i >= thumbTop && i < thumbTop+thumbSize {
			rows[i] = "█"
		} else {
			rows[i] = "│"
		}
	}
	return strings.Join(rows, "\n")
}

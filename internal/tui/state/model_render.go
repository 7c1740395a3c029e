package state

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/cristianoliveira/tmux-overlay/internal/tui/render"
)

// View renders the header, the event feed with overlays composited on top,
// and the footer.
func (m *Model) View() string {
	width := m.uiState.GetWidth()
	height := m.uiState.BodyHeight()

	body := m.uiState.GetViewport().View()
	if len(m.feed) == 0 {
		body = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Render("No overlay events yet")
	}
	body = render.Composite(body, m.host.Layers(), width, height)

	var s strings.Builder
	s.WriteString(render.Header(width, m.manager.ActiveCounts()))
	s.WriteString("\n")
	s.WriteString(body)
	s.WriteString("\n")
	s.WriteString(render.Footer(m.footer()))
	return s.String()
}

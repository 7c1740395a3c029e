package state

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/cristianoliveira/tmux-overlay/internal/overlay"
)

// DialogAnsweredMsg is sent when a dialog's completion resolves.
type DialogAnsweredMsg struct {
	ID string
	// Answered is false when the dialog closed without a value, e.g. by esc.
	Answered bool
	Yes      bool
}

// hostReadyMsg is returned by the command that marks the host ready.
type hostReadyMsg struct{}

// awaitDialog waits for h off the event loop and reports the answer.
func awaitDialog(h overlay.Handle) tea.Cmd {
	return func() tea.Msg {
		res, err := h.Wait(context.Background())
		if err != nil || res == nil {
			return DialogAnsweredMsg{ID: h.ID()}
		}
		yes, _ := res.(bool)
		return DialogAnsweredMsg{ID: h.ID(), Answered: true, Yes: yes}
	}
}

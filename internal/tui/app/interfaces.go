// Package app provides TUI application adapters for command wiring.
package app

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/cristianoliveira/tmux-overlay/internal/tui/host"
)

// ProgramRunner defines the interface for running a bubbletea program.
// This abstraction allows for easier testing and swapping of implementations.
type ProgramRunner interface {
	// Run starts the program with the given model, attaching h to it for
	// the program's lifetime.
	Run(model tea.Model, h *host.Host) error
}

// DefaultProgramRunner is the default implementation of ProgramRunner
// that wraps tea.NewProgram with standard options.
type DefaultProgramRunner struct{}

// NewDefaultProgramRunner creates a new DefaultProgramRunner.
func NewDefaultProgramRunner() *DefaultProgramRunner {
	return &DefaultProgramRunner{}
}

// Run starts a bubbletea program on the alternate screen. When it returns
// the host is unready and detached, so overlays shown afterwards are deferred
// instead of reaching a dead program.
func (r *DefaultProgramRunner) Run(model tea.Model, h *host.Host) error {
	p := tea.NewProgram(model, tea.WithAltScreen())
	h.Attach(p)
	defer func() {
		h.SetReady(false)
		h.Attach(nil)
	}()

	_, err := p.Run()
	return err
}

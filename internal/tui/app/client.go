package app

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/cristianoliveira/tmux-overlay/internal/colors"
	"github.com/cristianoliveira/tmux-overlay/internal/errors"
	"github.com/cristianoliveira/tmux-overlay/internal/overlay"
	"github.com/cristianoliveira/tmux-overlay/internal/tui/host"
	"github.com/cristianoliveira/tmux-overlay/internal/tui/state"
)

// Model defines the narrow TUI model surface used by command wiring.
type Model interface {
	tea.Model
	ErrorHandler() *errors.TUIHandler
}

// Client defines dependencies needed by the tui command.
type Client interface {
	CreateModel(manager *overlay.Manager, h *host.Host) (Model, error)
	RunProgram(model Model, h *host.Host) error
}

// DefaultClient is the default adapter-based implementation used by CLI wiring.
type DefaultClient struct {
	programRunner ProgramRunner
}

// NewDefaultClient creates a default TUI client adapter.
// If programRunner is nil, a DefaultProgramRunner will be used.
func NewDefaultClient(programRunner ProgramRunner) *DefaultClient {
	if programRunner == nil {
		programRunner = NewDefaultProgramRunner()
	}
	return &DefaultClient{programRunner: programRunner}
}

// CreateModel builds the demo model over manager and h.
func (d *DefaultClient) CreateModel(manager *overlay.Manager, h *host.Host) (Model, error) {
	return state.NewModel(manager, h)
}

// RunProgram starts the bubbletea program using the configured ProgramRunner.
func (d *DefaultClient) RunProgram(model Model, h *host.Host) error {
	err := d.programRunner.Run(model, h)
	if err != nil {
		colors.Error(fmt.Sprintf("Error running TUI: %v", err))
		return err
	}
	return nil
}

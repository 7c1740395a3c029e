// Package errors routes user-facing messages to the console or to the TUI.
package errors

import (
	"errors"
	"sync"

	"github.com/cristianoliveira/tmux-overlay/internal/colors"
	"github.com/cristianoliveira/tmux-overlay/internal/overlay"
)

// ErrorHandler receives user-facing messages. The CLI prints them; the TUI
// shows them as toasts.
type ErrorHandler interface {
	Error(msg string)
	Warning(msg string)
	Info(msg string)
	Success(msg string)
}

// ColorOutput is the console the CLIHandler writes to.
type ColorOutput interface {
	Error(msgs ...string)
	Warning(msgs ...string)
	Info(msgs ...string)
	Success(msgs ...string)
}

// ColorsOutput adapts the colors package to ColorOutput.
type ColorsOutput struct{}

var _ ColorOutput = ColorsOutput{}

func (ColorsOutput) Error(msgs ...string)   { colors.Error(msgs...) }
func (ColorsOutput) Warning(msgs ...string) { colors.Warning(msgs...) }
func (ColorsOutput) Info(msgs ...string)    { colors.Info(msgs...) }
func (ColorsOutput) Success(msgs ...string) { colors.Success(msgs...) }

// CLIHandler prints messages with the colors package.
type CLIHandler struct {
	out        ColorOutput
	mu         sync.Mutex
	inHandling bool
}

var _ ErrorHandler = (*CLIHandler)(nil)

func NewCLIHandler(out ColorOutput) *CLIHandler {
	return &CLIHandler{out: out}
}

// NewDefaultCLIHandler returns a CLIHandler writing through ColorsOutput.
func NewDefaultCLIHandler() *CLIHandler {
	return NewCLIHandler(ColorsOutput{})
}

// Error prints msg. An Error raised while printing another one is printed
// directly instead of re-entering the handler.
func (h *CLIHandler) Error(msg string) {
	h.mu.Lock()
	if h.inHandling {
		h.mu.Unlock()
		h.out.Error(msg)
		return
	}
	h.inHandling = true
	h.mu.Unlock()

	defer func() {
		h.mu.Lock()
		h.inHandling = false
		h.mu.Unlock()
	}()
	h.out.Error(msg)
}

func (h *CLIHandler) Warning(msg string) { h.out.Warning(msg) }
func (h *CLIHandler) Info(msg string)    { h.out.Info(msg) }
func (h *CLIHandler) Success(msg string) { h.out.Success(msg) }

// Describe turns overlay errors into messages a user can act on. Other
// errors are returned verbatim.
func Describe(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, overlay.ErrDuplicateID):
		return "an overlay with that id is already open"
	case errors.Is(err, overlay.ErrNotInitialized):
		return "overlays are not attached to a screen yet"
	case errors.Is(err, overlay.ErrHostUnavailable):
		return "the screen is not ready to show overlays"
	case errors.Is(err, overlay.ErrAlreadyInitialized):
		return "overlays are already attached to a screen"
	default:
		return err.Error()
	}
}

// Report sends err to h as an error message. A nil err is ignored.
func Report(h ErrorHandler, err error) {
	if err == nil || h == nil {
		return
	}
	h.Error(Describe(err))
}

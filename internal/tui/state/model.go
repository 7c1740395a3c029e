package state

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/cristianoliveira/tmux-overlay/internal/errors"
	"github.com/cristianoliveira/tmux-overlay/internal/overlay"
	"github.com/cristianoliveira/tmux-overlay/internal/tui/host"
	"github.com/cristianoliveira/tmux-overlay/internal/tui/render"
)

const (
	headerFooterLines     = 2
	defaultViewportWidth  = 80
	defaultViewportHeight = 22
	maxFeedLines          = 500

	// BannerTag groups the banners the b key toggles.
	BannerTag = "status"
)

// Model is the demo host screen: an event feed with overlays drawn on top.
type Model struct {
	uiState      *UIState
	keys         keyMap
	manager      *overlay.Manager
	host         *host.Host
	errorHandler *errors.TUIHandler

	feed   []string
	dialog overlay.Handle
	shown  int
	now    func() time.Time
}

// NewModel creates the model for an initialized manager attached to h. The
// model owns neither: the caller disposes the manager after the program ends.
func NewModel(manager *overlay.Manager, h *host.Host) (*Model, error) {
	if manager == nil || h == nil {
		return nil, fmt.Errorf("tui model: manager and host are required")
	}
	if !manager.IsInitialized() {
		return nil, fmt.Errorf("tui model: %w", overlay.ErrNotInitialized)
	}
	m := &Model{
		uiState: NewUIState(),
		keys:    defaultKeyMap(),
		manager: manager,
		host:    h,
		now:     time.Now,
	}
	m.errorHandler = errors.NewTUIHandler(errors.ToastNotifier(manager))
	return m, nil
}

// ErrorHandler returns the handler whose messages surface as toasts.
func (m *Model) ErrorHandler() *errors.TUIHandler {
	return m.errorHandler
}

// Init marks the host ready once the program runs, flushing any overlay
// shown before it started.
func (m *Model) Init() tea.Cmd {
	return func() tea.Msg {
		m.host.SetReady(true)
		return hostReadyMsg{}
	}
}

// Update handles messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	case tea.WindowSizeMsg:
		return m.handleWindowSizeMsg(msg)
	case host.EventMsg:
		m.appendEvent(msg.Event)
		return m, nil
	case DialogAnsweredMsg:
		return m.handleDialogAnswered(msg)
	case host.LayersChangedMsg, host.ReadyMsg, hostReadyMsg:
		// the layer set lives in the host; receiving the message re-renders
		return m, nil
	}
	return m, nil
}

func (m *Model) appendEvent(ev overlay.Event) {
	line := fmt.Sprintf("%s  %-9s %s", ev.At.Format("15:04:05.000"), ev.Type, ev.Handle)
	if ev.Type == overlay.EventDismissed {
		line += "  reason=" + ev.Reason.String()
		if ev.Result != nil {
			line += fmt.Sprintf(" result=%v", ev.Result)
		}
	}
	m.feed = append(m.feed, line)
	if len(m.feed) > maxFeedLines {
		m.feed = append([]string(nil), m.feed[len(m.feed)-maxFeedLines:]...)
	}
	m.updateViewportContent()
}

func (m *Model) updateViewportContent() {
	vp := m.uiState.GetViewport()
	vp.SetContent(strings.Join(m.feed, "\n"))
	vp.GotoBottom()
}

// modal reports whether a dialog is waiting for an answer.
func (m *Model) modal() bool {
	return !m.dialog.IsZero() && m.manager.Dialogs().IsOpen(m.dialog.ID())
}

// Feed returns the event lines shown in the body.
func (m *Model) Feed() []string {
	return append([]string(nil), m.feed...)
}

// Status returns the footer status line.
func (m *Model) Status() string {
	return m.uiState.GetStatus()
}

func (m *Model) footer() render.FooterState {
	return render.FooterState{
		Width:  m.uiState.GetWidth(),
		Status: m.uiState.GetStatus(),
		Modal:  m.modal(),
	}
}

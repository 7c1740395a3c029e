package state

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/cristianoliveira/tmux-overlay/internal/errors"
	"github.com/cristianoliveira/tmux-overlay/internal/overlay"
	"github.com/cristianoliveira/tmux-overlay/internal/tui/host"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestModel(t *testing.T, ready bool) (*Model, *overlay.Manager, *host.Host) {
	t.Helper()
	h := host.New()
	if ready {
		h.SetReady(true)
	}
	mgr := overlay.NewManager()
	require.NoError(t, mgr.Init(h))
	t.Cleanup(mgr.Dispose)
	m, err := NewModel(mgr, h)
	require.NoError(t, err)
	return m, mgr, h
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(t *testing.T, m *Model, msg tea.KeyMsg) tea.Cmd {
	t.Helper()
	next, cmd := m.Update(msg)
	require.Same(t, m, next)
	return cmd
}

func TestNewModelRequiresInitializedManager(t *testing.T) {
	_, err := NewModel(nil, host.New())
	require.Error(t, err)

	_, err = NewModel(overlay.NewManager(), host.New())
	require.ErrorIs(t, err, overlay.ErrNotInitialized)
}

func TestInitMarksHostReadyAndFlushes(t *testing.T) {
	m, mgr, h := newTestModel(t, false)

	_, err := mgr.ShowToast("queued before start")
	require.NoError(t, err)
	require.Empty(t, h.Layers())

	msg := m.Init()()
	require.Equal(t, hostReadyMsg{}, msg)
	require.True(t, h.IsReady())
	require.Len(t, h.Layers(), 1)
}

func TestToastKey(t *testing.T) {
	m, mgr, h := newTestModel(t, true)

	press(t, m, runes("t"))
	press(t, m, runes("t"))

	require.Equal(t, 2, mgr.Toasts().ActiveCount())
	require.Len(t, h.Layers(), 2)
	view := ansi.Strip(m.View())
	assert.Contains(t, view, "Toast #1")
	assert.Contains(t, view, "Toast #2")
	assert.Contains(t, view, "toasts 2")
}

func TestDialogAnsweredYes(t *testing.T) {
	m, mgr, _ := newTestModel(t, true)

	cmd := press(t, m, runes("d"))
	require.NotNil(t, cmd)
	require.True(t, m.modal())
	assert.Contains(t, ansi.Strip(m.View()), "Keep the changes")

	press(t, m, runes("y"))
	require.Equal(t, 0, mgr.Dialogs().ActiveCount())

	answer, ok := cmd().(DialogAnsweredMsg)
	require.True(t, ok)
	require.True(t, answer.Answered)
	require.True(t, answer.Yes)

	press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m.Update(answer)
	require.Equal(t, "dialog "+answer.ID+": yes", m.Status())
	require.False(t, m.modal())
	assert.Contains(t, ansi.Strip(m.View()), "dialog "+answer.ID+": yes")
}

func TestDialogAnsweredNo(t *testing.T) {
	m, _, _ := newTestModel(t, true)

	cmd := press(t, m, runes("d"))
	press(t, m, runes("n"))

	answer := cmd().(DialogAnsweredMsg)
	require.True(t, answer.Answered)
	require.False(t, answer.Yes)
	m.Update(answer)
	require.True(t, strings.HasSuffix(m.Status(), ": no"))
}

func TestEscCancelsDialog(t *testing.T) {
	m, mgr, _ := newTestModel(t, true)

	cmd := press(t, m, runes("d"))
	press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	require.Equal(t, 0, mgr.Dialogs().ActiveCount())

	answer := cmd().(DialogAnsweredMsg)
	require.False(t, answer.Answered)
	m.Update(answer)
	require.True(t, strings.HasSuffix(m.Status(), ": cancelled"))
}

func TestDialogIsModal(t *testing.T) {
	m, mgr, _ := newTestModel(t, true)

	press(t, m, runes("d"))
	press(t, m, runes("t"))
	press(t, m, runes("c"))

	require.Equal(t, 0, mgr.Toasts().ActiveCount())
	require.Equal(t, 1, mgr.Dialogs().ActiveCount())
	assert.Contains(t, ansi.Strip(m.View()), "y: yes")
}

func TestBannerToggles(t *testing.T) {
	m, mgr, h := newTestModel(t, true)

	press(t, m, runes("b"))
	require.Len(t, mgr.GetByTag(BannerTag), 1)

	// banners ignore the barrier
	press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	require.Len(t, mgr.GetByTag(BannerTag), 1)
	require.Equal(t, "nothing to dismiss", m.Status())

	press(t, m, runes("b"))
	require.Empty(t, mgr.GetByTag(BannerTag))
	require.Empty(t, h.Layers())
}

func TestSheetAndCloseAll(t *testing.T) {
	m, mgr, _ := newTestModel(t, true)

	press(t, m, runes("t"))
	press(t, m, runes("s"))
	require.Equal(t, 1, mgr.Sheets().ActiveCount())
	assert.Contains(t, ansi.Strip(m.View()), "Details")

	press(t, m, runes("c"))
	require.Equal(t, 0, mgr.ActiveCount())
	require.Equal(t, "closed 2 overlays", m.Status())
}

func TestErrorKeyRaisesStickyToast(t *testing.T) {
	m, mgr, _ := newTestModel(t, true)

	press(t, m, runes("e"))
	toasts := mgr.GetByTag(errors.MessageTag)
	require.Len(t, toasts, 1)
	latest, ok := m.ErrorHandler().GetLatest()
	require.True(t, ok)
	require.Equal(t, errors.MessageTypeError, latest.Type)

	press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	require.Empty(t, mgr.GetByTag(errors.MessageTag))
}

func TestQuit(t *testing.T) {
	m, _, _ := newTestModel(t, true)
	cmd := press(t, m, runes("q"))
	require.NotNil(t, cmd)
	require.Equal(t, tea.QuitMsg{}, cmd())

	cmd = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	require.Equal(t, tea.QuitMsg{}, cmd())
}

func TestEventFeed(t *testing.T) {
	h := host.New()
	h.SetReady(true)
	var events []overlay.Event
	mgr := overlay.NewManager()
	require.NoError(t, mgr.Init(h, overlay.WithControllerOptions(
		overlay.WithObserver(overlay.ObserverFunc(func(ev overlay.Event) { events = append(events, ev) })),
	)))
	defer mgr.Dispose()
	m, err := NewModel(mgr, h)
	require.NoError(t, err)

	assert.Contains(t, ansi.Strip(m.View()), "No overlay events yet")

	toast, err := mgr.ShowToast("hi", overlay.WithID("t1"))
	require.NoError(t, err)
	mgr.Close(toast, "ok")
	for _, ev := range events {
		m.Update(host.EventMsg{Event: ev})
	}

	feed := m.Feed()
	require.Len(t, feed, 3)
	assert.Contains(t, feed[0], "shown")
	assert.Contains(t, feed[0], "toast/t1")
	assert.Contains(t, feed[2], "reason=manual result=ok")
	assert.Contains(t, ansi.Strip(m.View()), "toast/t1")
}

func TestWindowResize(t *testing.T) {
	m, _, _ := newTestModel(t, true)

	m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	require.Equal(t, 100, m.uiState.GetWidth())
	require.Equal(t, 28, m.uiState.GetViewport().Height)
	lines := strings.Split(m.View(), "\n")
	require.Len(t, lines, 30)

	m.Update(tea.WindowSizeMsg{Width: 0, Height: 1})
	require.Equal(t, defaultViewportWidth, m.uiState.GetWidth())
	require.Equal(t, defaultViewportHeight, m.uiState.BodyHeight())
}

func TestUnknownMessagesAreIgnored(t *testing.T) {
	m, _, _ := newTestModel(t, true)
	next, cmd := m.Update(host.LayersChangedMsg{Count: 1})
	require.Same(t, m, next)
	require.Nil(t, cmd)
	_, cmd = m.Update(time.Now())
	require.Nil(t, cmd)
}

package state

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/cristianoliveira/tmux-overlay/internal/overlay"
	"github.com/cristianoliveira/tmux-overlay/internal/tui/render"
)

// handleKeyMsg processes keyboard input. While a dialog is open only the
// answer keys, esc and quit are live.
func (m *Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		return m, tea.Quit
	}
	if key.Matches(msg, m.keys.Dismiss) {
		m.handleDismiss()
		return m, nil
	}
	if m.modal() {
		return m.handleConfirmation(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Dialog):
		return m, m.showDialog()
	case key.Matches(msg, m.keys.Toast):
		m.showToast()
	case key.Matches(msg, m.keys.Banner):
		m.toggleBanner()
	case key.Matches(msg, m.keys.Sheet):
		m.showSheet()
	case key.Matches(msg, m.keys.Error):
		m.errorHandler.Error("Simulated failure: press esc to dismiss")
	case key.Matches(msg, m.keys.CloseAll):
		n := m.manager.CloseAll(nil)
		m.uiState.SetStatus(fmt.Sprintf("closed %d overlays", n))
	}
	return m, nil
}

// handleConfirmation answers the open dialog.
func (m *Model) handleConfirmation(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Yes):
		m.manager.Close(m.dialog, true)
	case key.Matches(msg, m.keys.No):
		m.manager.Close(m.dialog, false)
	}
	return m, nil
}

// handleDismiss taps the barrier of the topmost dismissible overlay.
func (m *Model) handleDismiss() {
	if !m.host.DismissTopmost() {
		m.uiState.SetStatus("nothing to dismiss")
	}
}

func (m *Model) showDialog() tea.Cmd {
	h, err := m.manager.ShowDialog("Keep the changes made in this session?", overlay.WithStyle(render.Style{
		Title: "Confirm",
		Hint:  "y: yes  n: no  esc: cancel",
	}))
	if err != nil {
		m.errorHandler.Error(fmt.Sprintf("Failed to show dialog: %v", err))
		return nil
	}
	m.dialog = h
	return awaitDialog(h)
}

func (m *Model) showToast() {
	m.shown++
	_, err := m.manager.ShowToast(fmt.Sprintf("Toast #%d", m.shown), overlay.WithStyle(render.AccentSuccess))
	if err != nil {
		m.errorHandler.Error(fmt.Sprintf("Failed to show toast: %v", err))
	}
}

// toggleBanner closes the status banner when one is open, else shows one.
func (m *Model) toggleBanner() {
	if n := m.manager.CloseByTag(BannerTag, nil); n > 0 {
		return
	}
	_, err := m.manager.ShowBanner("Connection lost: retrying in the background",
		overlay.WithTag(BannerTag),
		overlay.WithDismissible(false))
	if err != nil {
		m.errorHandler.Error(fmt.Sprintf("Failed to show banner: %v", err))
	}
}

func (m *Model) showSheet() {
	counts := m.manager.ActiveCounts()
	body := fmt.Sprintf("Open overlays\ndialogs %d  banners %d  toasts %d\nesc closes this sheet",
		counts[overlay.CategoryDialog], counts[overlay.CategoryBanner], counts[overlay.CategoryToast])
	if _, err := m.manager.ShowSheet(body, overlay.WithStyle(render.Style{Title: "Details"})); err != nil {
		m.errorHandler.Error(fmt.Sprintf("Failed to show sheet: %v", err))
	}
}

func (m *Model) handleDialogAnswered(msg DialogAnsweredMsg) (tea.Model, tea.Cmd) {
	answer := "cancelled"
	if msg.Answered {
		answer = "no"
		if msg.Yes {
			answer = "yes"
		}
	}
	m.uiState.SetStatus(fmt.Sprintf("dialog %s: %s", msg.ID, answer))
	if m.dialog.ID() == msg.ID {
		m.dialog = overlay.Handle{}
	}
	return m, nil
}

// handleWindowSizeMsg handles window resize events.
func (m *Model) handleWindowSizeMsg(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.uiState.SetWidth(msg.Width)
	m.uiState.SetHeight(msg.Height)
	m.uiState.UpdateViewportSize()
	m.updateViewportContent()
	return m, nil
}

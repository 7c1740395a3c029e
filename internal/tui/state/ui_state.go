package state

import (
	"github.com/charmbracelet/bubbles/viewport"
)

// UIState manages the screen size and the viewport showing the event feed.
type UIState struct {
	viewport viewport.Model
	width    int
	height   int
	status   string
}

// NewUIState creates a new UIState instance with default values.
func NewUIState() *UIState {
	return &UIState{
		viewport: viewport.New(defaultViewportWidth, defaultViewportHeight),
		width:    defaultViewportWidth,
		height:   defaultViewportHeight + headerFooterLines,
	}
}

// GetViewport returns the current viewport model.
func (u *UIState) GetViewport() *viewport.Model {
	return &u.viewport
}

// GetWidth returns the current width of the UI.
func (u *UIState) GetWidth() int {
	return u.width
}

// SetWidth updates the width of the UI.
func (u *UIState) SetWidth(width int) {
	u.width = width
	if width <= 0 {
		u.width = defaultViewportWidth
	}
}

// GetHeight returns the current height of the UI.
func (u *UIState) GetHeight() int {
	return u.height
}

// SetHeight updates the height of the UI.
func (u *UIState) SetHeight(height int) {
	u.height = height
	if height <= headerFooterLines {
		u.height = defaultViewportHeight + headerFooterLines
	}
}

// BodyHeight is the number of rows between header and footer.
func (u *UIState) BodyHeight() int {
	return u.height - headerFooterLines
}

// UpdateViewportSize resizes the viewport to the body area, keeping content.
func (u *UIState) UpdateViewportSize() {
	u.viewport.Width = u.width
	u.viewport.Height = u.BodyHeight()
}

// GetStatus returns the footer status line.
func (u *UIState) GetStatus() string {
	return u.status
}

// SetStatus updates the footer status line.
func (u *UIState) SetStatus(status string) {
	u.status = status
}

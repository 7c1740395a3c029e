package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/cristianoliveira/tmux-overlay/internal/overlay"
)

// Anchor is where a layer is placed on screen.
type Anchor string

const (
	AnchorCenter      Anchor = "center"
	AnchorTop         Anchor = "top"
	AnchorBottom      Anchor = "bottom"
	AnchorTopRight    Anchor = "top-right"
	AnchorBottomRight Anchor = "bottom-right"
)

// Accent names understood in Style.Accent (and as a bare string style).
const (
	AccentInfo    = "info"
	AccentSuccess = "success"
	AccentWarning = "warning"
	AccentError   = "error"
)

// Style is the presentation data callers attach with overlay.WithStyle. Zero
// fields fall back to the defaults of the layer's category.
type Style struct {
	Anchor Anchor
	// Width of the box including its border. Zero uses the category default,
	// negative spans the whole screen.
	Width  int
	Accent string
	Title  string
	// Hint is a dimmed line under the content, e.g. the keys a dialog accepts.
	Hint    string
	MarginX int
	MarginY int
}

var accentColors = map[string]lipgloss.Color{
	AccentInfo:    lipgloss.Color("12"),
	AccentSuccess: lipgloss.Color("10"),
	AccentWarning: lipgloss.Color("11"),
	AccentError:   lipgloss.Color("9"),
}

var categoryDefaults = map[overlay.Category]Style{
	overlay.CategoryDialog: {Anchor: AnchorCenter, Width: 50, Accent: AccentInfo},
	overlay.CategoryBanner: {Anchor: AnchorTop, Width: -1, Accent: AccentWarning},
	overlay.CategoryToast:  {Anchor: AnchorBottomRight, Width: 36, Accent: AccentInfo, MarginX: 1, MarginY: 1},
	overlay.CategorySheet:  {Anchor: AnchorBottom, Width: -1, Accent: AccentInfo},
}

// StyleOf resolves the style of l. Layer.Style may be a Style, a *Style or
// an accent name; anything else is ignored.
func StyleOf(l overlay.Layer) Style {
	s := categoryDefaults[l.Category]
	var given Style
	switch v := l.Style.(type) {
	case Style:
		given = v
	case *Style:
		if v != nil {
			given = *v
		}
	case string:
		given.Accent = strings.ToLower(v)
	}

	if given.Anchor != "" {
		s.Anchor = given.Anchor
	}
	if given.Width != 0 {
		s.Width = given.Width
	}
	if _, ok := accentColors[given.Accent]; ok {
		s.Accent = given.Accent
	}
	if given.Title != "" {
		s.Title = given.Title
	}
	if given.Hint != "" {
		s.Hint = given.Hint
	}
	if given.MarginX > 0 {
		s.MarginX = given.MarginX
	}
	if given.MarginY > 0 {
		s.MarginY = given.MarginY
	}
	if s.Anchor == "" {
		s.Anchor = AnchorCenter
	}
	return s
}

func (s Style) color() lipgloss.Color {
	if c, ok := accentColors[s.Accent]; ok {
		return c
	}
	return accentColors[AccentInfo]
}

// boxWidth returns the outer width of the box on a screen of termWidth.
func (s Style) boxWidth(termWidth int) int {
	w := s.Width
	if w < 0 || w > termWidth-2*s.MarginX {
		w = termWidth - 2*s.MarginX
	}
	if w < 4 {
		w = 4
	}
	return w
}

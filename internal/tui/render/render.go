// Package render draws overlay layers with lipgloss and composites them over
// the base screen.
package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/cristianoliveira/tmux-overlay/internal/colors"
	"github.com/cristianoliveira/tmux-overlay/internal/overlay"
)

// segmentReset ends any style an overlay or base segment left open.
const segmentReset = "\x1b[0m"

var dimColor = lipgloss.Color("241")

// FooterState defines the inputs needed to render footer help text.
type FooterState struct {
	Width  int
	Status string
	// Modal is set while a dialog waits for an answer.
	Modal bool
}

// Header renders the title line with the open overlay count per category.
func Header(width int, counts map[overlay.Category]int) string {
	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ansiColorNumber(colors.Blue)))

	parts := []string{"tmux-overlay"}
	for _, c := range overlay.Categories() {
		parts = append(parts, fmt.Sprintf("%ss %d", c, counts[c]))
	}
	return headerStyle.Render(truncate(strings.Join(parts, "  "), width))
}

// Footer renders the key help, or the status line when one is set.
func Footer(state FooterState) string {
	helpStyle := lipgloss.NewStyle().Foreground(dimColor)

	var help []string
	if state.Modal {
		help = append(help, "y: yes", "n: no", "esc: cancel")
	} else {
		help = append(help,
			"d: dialog",
			"t: toast",
			"b: banner",
			"s: sheet",
			"e: error",
			"esc: dismiss",
			"c: close all",
		)
	}
	help = append(help, "q: quit")

	line := strings.Join(help, "  |  ")
	if state.Status != "" {
		line = state.Status + "  " + line
	}
	return helpStyle.Render(truncate(line, state.Width))
}

// Box renders l as a standalone block for a screen termWidth columns wide.
func Box(l overlay.Layer, termWidth int) string {
	s := StyleOf(l)
	w := s.boxWidth(termWidth)
	accent := s.color()

	var body strings.Builder
	if s.Title != "" {
		body.WriteString(lipgloss.NewStyle().Bold(true).Foreground(accent).Render(s.Title))
		body.WriteString("\n")
	}
	body.WriteString(contentText(l.Content))
	if s.Hint != "" {
		body.WriteString("\n")
		body.WriteString(lipgloss.NewStyle().Foreground(dimColor).Render(s.Hint))
	}

	var box lipgloss.Style
	switch l.Category {
	case overlay.CategoryBanner:
		box = lipgloss.NewStyle().
			Width(w).
			Padding(0, 1).
			Bold(true).
			Background(accent).
			Foreground(lipgloss.Color("0"))
	case overlay.CategorySheet:
		box = lipgloss.NewStyle().
			Width(w).
			Padding(0, 1).
			Border(lipgloss.NormalBorder(), true, false, false, false).
			BorderForeground(accent)
	case overlay.CategoryDialog:
		box = lipgloss.NewStyle().
			Width(w-2).
			Padding(0, 1).
			Border(lipgloss.ThickBorder()).
			BorderForeground(accent)
	default:
		box = lipgloss.NewStyle().
			Width(w-2).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent)
	}
	return box.Render(body.String())
}

// Composite draws layers, bottom to top, over base and returns a screen of
// at least height lines. Layers sharing an edge anchor stack away from it.
func Composite(base string, layers []overlay.Layer, width, height int) string {
	lines := strings.Split(base, "\n")
	for len(lines) < height {
		lines = append(lines, "")
	}
	if len(layers) == 0 {
		return strings.Join(lines, "\n")
	}

	stacked := make(map[Anchor]int)
	for _, l := range layers {
		s := StyleOf(l)
		box := Box(l, width)
		boxLines := strings.Split(box, "\n")
		row, col := place(s, lipgloss.Width(box), len(boxLines), width, height, stacked[s.Anchor])
		if s.Anchor != AnchorCenter {
			stacked[s.Anchor] += len(boxLines)
		}
		for i, bl := range boxLines {
			r := row + i
			if r < 0 || r >= len(lines) {
				continue
			}
			lines[r] = compositeLine(lines[r], bl, col, width)
		}
	}
	return strings.Join(lines, "\n")
}

// place returns the top-left cell of a boxWidth x boxHeight block. offset is
// the height already taken by earlier layers at the same anchor.
func place(s Style, boxWidth, boxHeight, width, height, offset int) (row, col int) {
	switch s.Anchor {
	case AnchorTopRight, AnchorBottomRight:
		col = width - boxWidth - s.MarginX
	default:
		col = (width - boxWidth) / 2
	}
	switch s.Anchor {
	case AnchorTop, AnchorTopRight:
		row = s.MarginY + offset
	case AnchorBottom, AnchorBottomRight:
		row = height - boxHeight - s.MarginY - offset
	default:
		row = (height - boxHeight) / 2
	}
	return max(row, 0), max(col, 0)
}

// compositeLine writes over onto base starting at column col, keeping what
// base shows on both sides. Widths are measured in cells, ignoring escapes.
func compositeLine(base, over string, col, termWidth int) string {
	if w := ansi.StringWidth(base); w < col {
		base += strings.Repeat(" ", col-w)
	}
	before := ansi.Truncate(base, col, "")
	end := col + ansi.StringWidth(over)

	var b strings.Builder
	b.WriteString(before)
	b.WriteString(segmentReset)
	b.WriteString(over)
	b.WriteString(segmentReset)
	if ansi.StringWidth(base) > end {
		b.WriteString(ansi.TruncateLeft(base, end, ""))
	}

	line := b.String()
	if termWidth > 0 && ansi.StringWidth(line) > termWidth {
		line = ansi.Truncate(line, termWidth, "")
	}
	return line
}

func contentText(content any) string {
	switch v := content.(type) {
	case nil:
		return ""
	case string:
		return v
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}

func truncate(s string, width int) string {
	if width <= 0 {
		return s
	}
	return ansi.Truncate(s, width, "…")
}

// ansiColorNumber extracts the color number from an ANSI escape sequence.
// Example: "\033[0;34m" -> "34"
func ansiColorNumber(seq string) string {
	if len(seq) < 2 {
		return ""
	}
	lastSemicolon := strings.LastIndex(seq, ";")
	if lastSemicolon == -1 {
		return ""
	}
	return seq[lastSemicolon+1 : len(seq)-1]
}

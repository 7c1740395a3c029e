package format

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/x/ansi"
	"github.com/cristianoliveira/tmux-overlay/internal/colors"
	"github.com/cristianoliveira/tmux-overlay/internal/journal"
	"github.com/dustin/go-humanize"
)

// TableConfig holds configuration for table formatting.
type TableConfig struct {
	// ShowHeaders determines whether to show column headers.
	ShowHeaders bool

	// HeaderColor is the color to use for headers.
	HeaderColor string
}

// DefaultTableConfig returns a default table configuration.
func DefaultTableConfig() *TableConfig {
	return &TableConfig{
		ShowHeaders: true,
		HeaderColor: colors.Blue,
	}
}

// TableColumn represents a column in a table.
type TableColumn struct {
	// Name is the column name displayed in the header.
	Name string

	// Width is the column width in cells.
	Width int

	// Alignment is the text alignment (left, right, center).
	Alignment string

	// Extractor extracts the value from an entry.
	Extractor func(journal.Entry) string
}

// TableFormatter formats entries in fixed-width columns.
type TableFormatter struct {
	config  *TableConfig
	columns []TableColumn
	now     func() time.Time
}

// NewTableFormatter creates a TableFormatter with the default columns.
func NewTableFormatter(now func() time.Time) *TableFormatter {
	f := &TableFormatter{config: DefaultTableConfig(), now: now}
	f.columns = []TableColumn{
		{Name: "SEQ", Width: 6, Alignment: "right", Extractor: func(e journal.Entry) string { return fmt.Sprintf("%d", e.Seq) }},
		{Name: "WHEN", Width: 16, Extractor: func(e journal.Entry) string { return relTime(e.At, f.now()) }},
		{Name: "CATEGORY", Width: 8, Extractor: func(e journal.Entry) string { return e.Category }},
		{Name: "EVENT", Width: 9, Extractor: func(e journal.Entry) string { return e.Event }},
		{Name: "ID", Width: 12, Extractor: func(e journal.Entry) string { return ShortID(e.OverlayID) }},
		{Name: "TAG", Width: 10, Extractor: func(e journal.Entry) string { return orDash(e.Tag) }},
		{Name: "REASON", Width: 12, Extractor: func(e journal.Entry) string { return orDash(e.Reason) }},
		{Name: "RESULT", Width: 16, Extractor: resultText},
	}
	return f
}

// WithColumns adds custom columns to the formatter.
func (f *TableFormatter) WithColumns(columns ...TableColumn) *TableFormatter {
	f.columns = append(f.columns, columns...)
	return f
}

// FormatEntries formats entries in table format. No entries print nothing.
func (f *TableFormatter) FormatEntries(entries []journal.Entry, writer io.Writer) error {
	if len(entries) == 0 {
		return nil
	}
	if f.config.ShowHeaders {
		names := make([]string, len(f.columns))
		widths := make([]int, len(f.columns))
		for i, col := range f.columns {
			names[i] = col.Name
			widths[i] = col.Width
		}
		if err := f.writeHeader(writer, names, widths); err != nil {
			return err
		}
	}
	for _, e := range entries {
		cells := make([]string, len(f.columns))
		for i, col := range f.columns {
			cells[i] = formatString(col.Extractor(e), col.Width, col.Alignment)
		}
		if err := writeRow(writer, cells); err != nil {
			return err
		}
	}
	return nil
}

// FormatCounts formats counts in table format.
func (f *TableFormatter) FormatCounts(counts []journal.Count, writer io.Writer) error {
	widths := []int{8, 9, 8}
	if f.config.ShowHeaders {
		if err := f.writeHeader(writer, []string{"CATEGORY", "EVENT", "COUNT"}, widths); err != nil {
			return err
		}
	}
	total := 0
	for _, c := range counts {
		total += c.N
		if err := writeRow(writer, []string{
			formatString(c.Category, widths[0], "left"),
			formatString(c.Event, widths[1], "left"),
			formatString(humanize.Comma(int64(c.N)), widths[2], "right"),
		}); err != nil {
			return err
		}
	}
	return writeRow(writer, []string{
		formatString("total", widths[0], "left"),
		formatString("", widths[1], "left"),
		formatString(humanize.Comma(int64(total)), widths[2], "right"),
	})
}

// writeHeader writes the colored header line and its separator.
func (f *TableFormatter) writeHeader(writer io.Writer, names []string, widths []int) error {
	headers := make([]string, len(names))
	separators := make([]string, len(names))
	for i := range names {
		headers[i] = formatString(names[i], widths[i], "left")
		separators[i] = makeSeparator(widths[i])
	}
	reset := colors.Reset
	if _, err := fmt.Fprintf(writer, "%s%s%s\n", f.config.HeaderColor, strings.Join(headers, "  "), reset); err != nil {
		return err
	}
	_, err := fmt.Fprintf(writer, "%s%s%s\n", f.config.HeaderColor, strings.Join(separators, "  "), reset)
	return err
}

func writeRow(writer io.Writer, cells []string) error {
	_, err := fmt.Fprintln(writer, strings.TrimRight(strings.Join(cells, "  "), " "))
	return err
}

// formatString pads or truncates s to width cells with the given alignment.
func formatString(s string, width int, alignment string) string {
	w := ansi.StringWidth(s)
	if w > width {
		return truncateString(s, width)
	}
	pad := width - w
	switch alignment {
	case "right":
		return strings.Repeat(" ", pad) + s
	case "center":
		left := pad / 2
		return strings.Repeat(" ", left) + s + strings.Repeat(" ", pad-left)
	default:
		return s + strings.Repeat(" ", pad)
	}
}

// truncateString cuts s to width cells, ending in "..." when there is room.
func truncateString(s string, width int) string {
	if width < 3 {
		return ansi.Truncate(s, width, "")
	}
	return ansi.Truncate(s, width, "...")
}

// makeSeparator creates a separator line of the specified width.
func makeSeparator(width int) string {
	return strings.Repeat("-", width)
}

// Package format renders journal entries for CLI commands.
package format

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/cristianoliveira/tmux-overlay/internal/journal"
)

// Formatter defines the interface for output formatters.
type Formatter interface {
	// FormatEntries writes entries in the order given.
	FormatEntries(entries []journal.Entry, writer io.Writer) error

	// FormatCounts writes per-category event counts followed by a total.
	FormatCounts(counts []journal.Count, writer io.Writer) error
}

// FormatterType represents the type of formatter to use.
type FormatterType string

const (
	// FormatterTypeSimple prints one sentence per event.
	FormatterTypeSimple FormatterType = "simple"

	// FormatterTypeTable prints events in aligned columns with headers.
	FormatterTypeTable FormatterType = "table"

	// FormatterTypeJSON prints an indented JSON document.
	FormatterTypeJSON FormatterType = "json"
)

// ParseFormatterType accepts simple, table or json in any case.
func ParseFormatterType(name string) (FormatterType, error) {
	switch t := FormatterType(strings.ToLower(strings.TrimSpace(name))); t {
	case FormatterTypeSimple, FormatterTypeTable, FormatterTypeJSON:
		return t, nil
	default:
		return "", fmt.Errorf("unknown format %q: must be one of simple, table, json", name)
	}
}

// NewFormatter creates a formatter of the given type. Relative times are
// computed against now; a nil now means time.Now.
func NewFormatter(formatterType FormatterType, now func() time.Time) Formatter {
	if now == nil {
		now = time.Now
	}
	switch formatterType {
	case FormatterTypeSimple:
		return NewSimpleFormatter(now)
	case FormatterTypeJSON:
		return NewJSONFormatter()
	default:
		return NewTableFormatter(now)
	}
}

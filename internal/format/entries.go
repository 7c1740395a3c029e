package format

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/cristianoliveira/tmux-overlay/internal/journal"
	"github.com/dustin/go-humanize"
)

// ShortID shortens generated UUIDs to their first group. Other ids are
// returned unchanged.
func ShortID(id string) string {
	if len(id) == 36 && strings.Count(id, "-") == 4 {
		return id[:8]
	}
	return id
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func resultText(e journal.Entry) string {
	if !e.HasResult {
		return "-"
	}
	return e.Result
}

func relTime(at, now time.Time) string {
	if now.Sub(at) < time.Second {
		return "now"
	}
	return humanize.RelTime(at, now, "ago", "from now")
}

// SimpleFormatter prints one line per event:
//
//	[5 minutes ago] toast/1a2b3c4d[status] dismissed (timeout) => yes
type SimpleFormatter struct {
	now func() time.Time
}

// NewSimpleFormatter creates a new SimpleFormatter.
func NewSimpleFormatter(now func() time.Time) *SimpleFormatter {
	return &SimpleFormatter{now: now}
}

// FormatEntries formats entries in simple format.
func (f *SimpleFormatter) FormatEntries(entries []journal.Entry, writer io.Writer) error {
	now := f.now()
	for _, e := range entries {
		var b strings.Builder
		fmt.Fprintf(&b, "[%s] %s/%s", relTime(e.At, now), e.Category, ShortID(e.OverlayID))
		if e.Tag != "" {
			fmt.Fprintf(&b, "[%s]", e.Tag)
		}
		b.WriteString(" " + e.Event)
		if e.Reason != "" {
			fmt.Fprintf(&b, " (%s)", e.Reason)
		}
		if e.HasResult {
			b.WriteString(" => " + e.Result)
		}
		if _, err := fmt.Fprintln(writer, b.String()); err != nil {
			return err
		}
	}
	return nil
}

// FormatCounts formats counts as "category event: n" lines.
func (f *SimpleFormatter) FormatCounts(counts []journal.Count, writer io.Writer) error {
	total := 0
	for _, c := range counts {
		total += c.N
		if _, err := fmt.Fprintf(writer, "%s %s: %s\n", c.Category, c.Event, humanize.Comma(int64(c.N))); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(writer, "total: %s\n", humanize.Comma(int64(total)))
	return err
}

// JSONFormatter prints entries and counts as indented JSON.
type JSONFormatter struct{}

// NewJSONFormatter creates a new JSONFormatter.
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

type entryJSON struct {
	Seq      int64     `json:"seq"`
	ID       string    `json:"id"`
	Tag      string    `json:"tag,omitempty"`
	Category string    `json:"category"`
	Event    string    `json:"event"`
	Reason   string    `json:"reason,omitempty"`
	Result   *string   `json:"result,omitempty"`
	At       time.Time `json:"at"`
}

// FormatEntries writes entries as a JSON array. Entries dismissed without a
// value have no result field.
func (f *JSONFormatter) FormatEntries(entries []journal.Entry, writer io.Writer) error {
	out := make([]entryJSON, 0, len(entries))
	for _, e := range entries {
		row := entryJSON{
			Seq:      e.Seq,
			ID:       e.OverlayID,
			Tag:      e.Tag,
			Category: e.Category,
			Event:    e.Event,
			Reason:   e.Reason,
			At:       e.At.UTC(),
		}
		if e.HasResult {
			result := e.Result
			row.Result = &result
		}
		out = append(out, row)
	}
	return encode(writer, out)
}

// FormatCounts writes counts as {"category": {"event": n}, "total": n}.
func (f *JSONFormatter) FormatCounts(counts []journal.Count, writer io.Writer) error {
	byCategory := make(map[string]map[string]int)
	total := 0
	for _, c := range counts {
		if byCategory[c.Category] == nil {
			byCategory[c.Category] = make(map[string]int)
		}
		byCategory[c.Category][c.Event] = c.N
		total += c.N
	}
	return encode(writer, struct {
		Categories map[string]map[string]int `json:"categories"`
		Total      int                       `json:"total"`
	}{byCategory, total})
}

func encode(writer io.Writer, v any) error {
	enc := json.NewEncoder(writer)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

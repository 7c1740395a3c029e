package format

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/cristianoliveira/tmux-overlay/internal/journal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func fixedNow() time.Time { return testNow }

func sampleEntries() []journal.Entry {
	return []journal.Entry{
		{
			Seq:       3,
			OverlayID: "0b7d3c9e-8f21-4a57-9d1c-3e5f7a2b6c40",
			Category:  "dialog",
			Event:     "dismissed",
			Reason:    "closed",
			Result:    "true",
			HasResult: true,
			At:        testNow.Add(-2 * time.Hour),
		},
		{
			Seq:       2,
			OverlayID: "status",
			Tag:       "status",
			Category:  "banner",
			Event:     "shown",
			At:        testNow,
		},
	}
}

func sampleCounts() []journal.Count {
	return []journal.Count{
		{Category: "dialog", Event: "dismissed", N: 1200},
		{Category: "toast", Event: "shown", N: 3},
	}
}

func TestParseFormatterType(t *testing.T) {
	for _, name := range []string{"simple", "TABLE", " json "} {
		_, err := ParseFormatterType(name)
		assert.NoError(t, err, name)
	}
	_, err := ParseFormatterType("legacy")
	assert.ErrorContains(t, err, "unknown format")
}

func TestNewFormatter(t *testing.T) {
	assert.IsType(t, &SimpleFormatter{}, NewFormatter(FormatterTypeSimple, fixedNow))
	assert.IsType(t, &TableFormatter{}, NewFormatter(FormatterTypeTable, fixedNow))
	assert.IsType(t, &JSONFormatter{}, NewFormatter(FormatterTypeJSON, nil))
	assert.IsType(t, &TableFormatter{}, NewFormatter("bogus", nil))
}

func TestShortID(t *testing.T) {
	assert.Equal(t, "0b7d3c9e", ShortID("0b7d3c9e-8f21-4a57-9d1c-3e5f7a2b6c40"))
	assert.Equal(t, "status", ShortID("status"))
}

func TestSimpleFormatterEntries(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewSimpleFormatter(fixedNow).FormatEntries(sampleEntries(), &buf))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "[2 hours ago] dialog/0b7d3c9e dismissed (closed) => true", lines[0])
	assert.Equal(t, "[now] banner/status[status] shown", lines[1])
}

func TestSimpleFormatterCounts(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewSimpleFormatter(fixedNow).FormatCounts(sampleCounts(), &buf))
	assert.Equal(t, "dialog dismissed: 1,200\ntoast shown: 3\ntotal: 1,203\n", buf.String())
}

func TestTableFormatterEntries(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewTableFormatter(fixedNow).FormatEntries(sampleEntries(), &buf))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 4)
	assert.Contains(t, lines[0], "SEQ")
	assert.Contains(t, lines[0], "RESULT")
	assert.Contains(t, lines[1], "------")
	assert.Contains(t, lines[2], "2 hours ago")
	assert.Contains(t, lines[2], "0b7d3c9e")
	assert.Contains(t, lines[2], "true")
	assert.Contains(t, lines[3], "banner")
	assert.True(t, strings.HasSuffix(lines[3], "-"), "missing result prints a dash: %q", lines[3])
}

func TestTableFormatterEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewTableFormatter(fixedNow).FormatEntries(nil, &buf))
	assert.Empty(t, buf.String())
}

func TestTableFormatterWithCustomColumn(t *testing.T) {
	f := NewTableFormatter(fixedNow).WithColumns(TableColumn{
		Name:      "FULL ID",
		Width:     36,
		Extractor: func(e journal.Entry) string { return e.OverlayID },
	})
	var buf bytes.Buffer
	require.NoError(t, f.FormatEntries(sampleEntries()[:1], &buf))
	assert.Contains(t, buf.String(), "FULL ID")
	assert.Contains(t, buf.String(), "0b7d3c9e-8f21-4a57-9d1c-3e5f7a2b6c40")
}

func TestTableFormatterCounts(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewTableFormatter(fixedNow).FormatCounts(sampleCounts(), &buf))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 5)
	assert.Contains(t, lines[0], "COUNT")
	assert.Contains(t, lines[2], "1,200")
	assert.Contains(t, lines[4], "total")
	assert.Contains(t, lines[4], "1,203")
}

func TestJSONFormatterEntries(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewJSONFormatter().FormatEntries(sampleEntries(), &buf))

	var out []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	require.Len(t, out, 2)
	assert.Equal(t, "true", out[0]["result"])
	assert.Equal(t, "0b7d3c9e-8f21-4a57-9d1c-3e5f7a2b6c40", out[0]["id"])
	assert.NotContains(t, out[1], "result")
	assert.NotContains(t, out[1], "reason")
	assert.Equal(t, "2026-03-01T12:00:00Z", out[1]["at"])
}

func TestJSONFormatterCounts(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewJSONFormatter().FormatCounts(sampleCounts(), &buf))

	var out struct {
		Categories map[string]map[string]int `json:"categories"`
		Total      int                       `json:"total"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	assert.Equal(t, 1200, out.Categories["dialog"]["dismissed"])
	assert.Equal(t, 1203, out.Total)
}

func TestFormatString(t *testing.T) {
	assert.Equal(t, "ab  ", formatString("ab", 4, "left"))
	assert.Equal(t, "  ab", formatString("ab", 4, "right"))
	assert.Equal(t, " ab ", formatString("ab", 4, "center"))
	assert.Equal(t, "abc...", formatString("abcdefghij", 6, "left"))
	assert.Equal(t, "ab", formatString("abcdef", 2, "left"))
	assert.Equal(t, "é ", formatString("é", 2, "left"))
}

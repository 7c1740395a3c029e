package main

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/cristianoliveira/tmux-overlay/internal/journal"
	"github.com/cristianoliveira/tmux-overlay/internal/overlay"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func historyEntries() []journal.Entry {
	now := time.Now()
	return []journal.Entry{
		{Seq: 2, OverlayID: "confirm", Category: "dialog", Event: "dismissed", Reason: "closed", Result: "true", HasResult: true, At: now.Add(-3 * time.Hour)},
		{Seq: 1, OverlayID: "confirm", Category: "dialog", Event: "shown", At: now.Add(-4 * time.Hour)},
	}
}

func TestNewHistoryCmdPanicsWhenOpenerIsNil(t *testing.T) {
	require.PanicsWithValue(t, "NewHistoryCmd: journal dependency cannot be nil", func() {
		NewHistoryCmd(nil)
	})
}

func TestHistoryTable(t *testing.T) {
	j := &fakeJournal{entries: historyEntries()}

	out, err := execute(NewHistoryCmd(j.opener()))
	require.NoError(t, err)

	assert.Contains(t, out, "CATEGORY")
	assert.Contains(t, out, "3 hours ago")
	assert.Contains(t, out, "confirm")
	assert.Contains(t, out, "dismissed")
	assert.True(t, j.closed)
	assert.Equal(t, 50, j.filter.Limit)
}

func TestHistoryPassesFilters(t *testing.T) {
	j := &fakeJournal{}

	before := time.Now()
	_, err := execute(NewHistoryCmd(j.opener()),
		"--category", "toast", "--tag", "status", "--id", "abc",
		"--event", "dismissed", "--limit", "5", "--since", "1h")
	require.NoError(t, err)

	assert.Equal(t, "toast", j.filter.Category)
	assert.Equal(t, "status", j.filter.Tag)
	assert.Equal(t, "abc", j.filter.OverlayID)
	assert.Equal(t, "dismissed", j.filter.Event)
	assert.Equal(t, 5, j.filter.Limit)
	assert.WithinDuration(t, before.Add(-time.Hour), j.filter.Since, 5*time.Second)
}

func TestHistoryEmpty(t *testing.T) {
	j := &fakeJournal{}
	out, err := execute(NewHistoryCmd(j.opener()))
	require.NoError(t, err)
	assert.Equal(t, "No overlay events recorded\n", out)

	out, err = execute(NewHistoryCmd(j.opener()), "--format", "json")
	require.NoError(t, err)
	assert.JSONEq(t, "[]", out)
}

func TestHistoryJSON(t *testing.T) {
	j := &fakeJournal{entries: historyEntries()}
	out, err := execute(NewHistoryCmd(j.opener()), "--format", "json")
	require.NoError(t, err)

	var rows []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &rows))
	require.Len(t, rows, 2)
	assert.Equal(t, "true", rows[0]["result"])
	assert.NotContains(t, rows[1], "result")
}

func TestHistoryStats(t *testing.T) {
	j := &fakeJournal{counts: []journal.Count{
		{Category: "toast", Event: "shown", N: 1500},
		{Category: "toast", Event: "dismissed", N: 1499},
	}}
	out, err := execute(NewHistoryCmd(j.opener()), "--stats", "--format", "simple")
	require.NoError(t, err)

	assert.Equal(t, "toast shown: 1,500\ntoast dismissed: 1,499\ntotal: 2,999\n", out)
	assert.False(t, j.listed)
}

func TestHistoryRejectsBadFlags(t *testing.T) {
	j := &fakeJournal{}

	_, err := execute(NewHistoryCmd(j.opener()), "--format", "xml")
	assert.ErrorContains(t, err, "unknown format")

	_, err = execute(NewHistoryCmd(j.opener()), "--since", "yesterday")
	assert.ErrorContains(t, err, "invalid --since")

	_, err = execute(NewHistoryCmd(j.opener()), "--since", "-1h")
	assert.ErrorContains(t, err, "invalid --since")

	_, err = execute(NewHistoryCmd(j.opener()), "extra")
	assert.Error(t, err)

	assert.False(t, j.listed)
}

func TestHistoryPropagatesJournalErrors(t *testing.T) {
	j := &fakeJournal{err: journal.ErrInvalidFilter}
	_, err := execute(NewHistoryCmd(j.opener()))
	assert.ErrorIs(t, err, journal.ErrInvalidFilter)
	assert.True(t, j.closed)

	failing := func() (journalStore, error) { return nil, errors.New("locked") }
	_, err = execute(NewHistoryCmd(failing))
	assert.EqualError(t, err, "locked")
}

func TestHistoryReadsRealJournal(t *testing.T) {
	setupConfig(t, nil)
	rt, err := openRuntime(testContext(t))
	require.NoError(t, err)
	rt.host.SetReady(true)

	h, err := rt.manager.ShowToast("saved", overlay.WithTag("save"))
	require.NoError(t, err)
	require.True(t, rt.manager.Close(h, "ok"))
	require.NoError(t, rt.Close())

	out, err := execute(NewHistoryCmd(openJournalStore), "--tag", "save", "--format", "simple")
	require.NoError(t, err)
	assert.Contains(t, out, "toast/")
	assert.Contains(t, out, "[save] dismissed (manual) => ok")
	assert.Contains(t, out, "[save] shown")
}

package main

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/cristianoliveira/tmux-overlay/internal/config"
	"github.com/cristianoliveira/tmux-overlay/internal/journal"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

// testContext stands in for testing.T.Context (Go 1.24+): the returned
// context is canceled when the test's cleanup runs.
func testContext(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	return ctx
}

func setupConfig(t *testing.T, env map[string]string) string {
	t.Helper()
	tmp := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmp, "config"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(tmp, "state"))
	t.Setenv("HOME", tmp)
	for k, v := range env {
		t.Setenv(k, v)
	}
	config.Load()
	return tmp
}

func captureMainStderr(t *testing.T, fn func()) string {
	t.Helper()

	oldStderr := os.Stderr
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stderr = w
	defer func() { os.Stderr = oldStderr }()

	fn()

	require.NoError(t, w.Close())
	var buf bytes.Buffer
	_, err = io.Copy(&buf, r)
	require.NoError(t, err)
	require.NoError(t, r.Close())
	return buf.String()
}

// execute runs c with args, returning stdout and the error.
func execute(c *cobra.Command, args ...string) (string, error) {
	var out bytes.Buffer
	c.SetOut(&out)
	c.SetErr(io.Discard)
	c.SetArgs(args)
	c.SetContext(context.Background())
	err := c.Execute()
	return out.String(), err
}

type fakeJournal struct {
	entries []journal.Entry
	counts  []journal.Count
	pruned  int64
	err     error

	filter    journal.Filter
	olderThan time.Duration
	listed    bool
	closed    bool
}

func (f *fakeJournal) List(_ context.Context, filter journal.Filter) ([]journal.Entry, error) {
	f.listed = true
	f.filter = filter
	return f.entries, f.err
}

func (f *fakeJournal) Counts(context.Context) ([]journal.Count, error) {
	return f.counts, f.err
}

func (f *fakeJournal) Prune(_ context.Context, olderThan time.Duration) (int64, error) {
	f.olderThan = olderThan
	return f.pruned, f.err
}

func (f *fakeJournal) Close() error {
	f.closed = true
	return nil
}

func (f *fakeJournal) opener() journalOpener {
	return func() (journalStore, error) { return f, nil }
}

package main

import (
	"testing"

	"github.com/cristianoliveira/tmux-overlay/internal/version"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeVersionClient struct {
	version string
	date    string
}

func (f fakeVersionClient) Version() string   { return f.version }
func (f fakeVersionClient) BuildDate() string { return f.date }

func TestNewVersionCmdPanicsWhenClientIsNil(t *testing.T) {
	require.PanicsWithValue(t, "NewVersionCmd: client dependency cannot be nil", func() {
		NewVersionCmd(nil)
	})
}

func TestVersionCmdPrintsVersion(t *testing.T) {
	out, err := execute(NewVersionCmd(fakeVersionClient{version: "1.2.3"}))
	require.NoError(t, err)
	assert.Equal(t, "tmux-overlay version 1.2.3\n", out)
}

func TestVersionCmdPrintsBuildDate(t *testing.T) {
	out, err := execute(NewVersionCmd(fakeVersionClient{version: "1.2.3", date: "2026-03-01T12:00:00Z"}))
	require.NoError(t, err)
	assert.Equal(t, "tmux-overlay version 1.2.3\nbuilt 2026-03-01T12:00:00Z\n", out)
}

func TestVersionCmdRejectsArgs(t *testing.T) {
	_, err := execute(NewVersionCmd(fakeVersionClient{version: "1.2.3"}), "extra")
	assert.Error(t, err)
}

func TestBuildVersion(t *testing.T) {
	assert.Equal(t, version.String(), buildVersion{}.Version())
	assert.NotEqual(t, "unknown", buildVersion{}.BuildDate())
}

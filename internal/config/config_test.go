package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// isolate points every XDG dir at a temp dir and clears overrides.
func isolate(t *testing.T) string {
	t.Helper()
	tmp := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmp, "config"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(tmp, "state"))
	for _, env := range os.Environ() {
		name, _, _ := strings.Cut(env, "=")
		if strings.HasPrefix(name, EnvPrefix) {
			t.Setenv(name, "")
			require.NoError(t, os.Unsetenv(name))
		}
	}
	return tmp
}

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0755))
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	tmp := isolate(t)
	Load()

	require.Equal(t, "default", Get("missing", "default"))
	require.Equal(t, filepath.Join(tmp, "config", "tmux-overlay"), Get("config_dir", ""))
	require.Equal(t, filepath.Join(tmp, "state", "tmux-overlay"), Get("state_dir", ""))
	require.Equal(t, 4*time.Second, GetDuration("toast_duration", 0))
	require.Equal(t, time.Duration(0), GetDuration("banner_duration", time.Minute))
	require.Equal(t, 2*time.Second, GetDuration("transition_timeout", 0))
	require.False(t, GetBool("strict_host", true))
	require.True(t, GetBool("journal_enabled", false))
	require.Equal(t, 30, GetInt("journal_retention_days", 0))
}

func TestLoadCreatesSampleConfig(t *testing.T) {
	tmp := isolate(t)
	Load()

	data, err := os.ReadFile(filepath.Join(tmp, "config", "tmux-overlay", "config.toml"))
	require.NoError(t, err)
	require.Contains(t, string(data), "# tmux-overlay configuration")
	require.Contains(t, string(data), "toast_duration")
	require.Contains(t, string(data), "4s")
}

func TestLoadPrecedence(t *testing.T) {
	tmp := isolate(t)
	path := writeConfig(t, filepath.Join(tmp, "elsewhere"), `
toast_duration = "10s"
max_hooks = 3
hooks_failure_mode = "ignore"
strict_host = true
`)
	t.Setenv("TMUX_OVERLAY_CONFIG_PATH", path)
	t.Setenv("TMUX_OVERLAY_TOAST_DURATION", "1500ms")

	Load()

	require.Equal(t, 1500*time.Millisecond, GetDuration("toast_duration", 0), "env overrides file")
	require.Equal(t, 3, GetInt("max_hooks", 0))
	require.Equal(t, "ignore", Get("hooks_failure_mode", ""))
	require.True(t, GetBool("strict_host", false))
}

func TestLoadFallsBackOnInvalidValues(t *testing.T) {
	isolate(t)
	t.Setenv("TMUX_OVERLAY_TOAST_DURATION", "soon")
	t.Setenv("TMUX_OVERLAY_MAX_HOOKS", "-2")
	t.Setenv("TMUX_OVERLAY_HOOKS_FAILURE_MODE", "explode")
	t.Setenv("TMUX_OVERLAY_STRICT_HOST", "maybe")
	t.Setenv("TMUX_OVERLAY_QUIET", "yes")

	Load()

	require.Equal(t, "4s", Get("toast_duration", ""))
	require.Equal(t, "10", Get("max_hooks", ""))
	require.Equal(t, "warn", Get("hooks_failure_mode", ""))
	require.Equal(t, "false", Get("strict_host", ""))
	require.Equal(t, "true", Get("quiet", ""))
}

func TestHooksDirFollowsConfigDir(t *testing.T) {
	tmp := isolate(t)
	custom := filepath.Join(tmp, "custom")
	t.Setenv("TMUX_OVERLAY_CONFIG_DIR", custom)

	Load()

	require.Equal(t, filepath.Join(custom, "hooks"), Get("hooks_dir", ""))
}

func TestDurationValidator(t *testing.T) {
	v := DurationValidator()
	cases := map[string]string{
		"":      "4s",
		"250ms": "250ms",
		"3":     "3s",
		"1m":    "1m0s",
		"-1s":   "4s",
		"nope":  "4s",
	}
	for in, want := range cases {
		got, err := v("toast_duration", in, "4s")
		require.NoError(t, err)
		require.Equal(t, want, got, in)
	}
}

func TestSetOverridesKey(t *testing.T) {
	isolate(t)
	Load()
	Set("strict_host", "true")
	require.True(t, GetBool("strict_host", false))
}

func TestRegisterValidatorPanicsOnDuplicate(t *testing.T) {
	require.Panics(t, func() { RegisterValidator("toast_duration", BoolValidator()) })
}

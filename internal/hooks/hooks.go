// Package hooks runs user scripts when overlays are shown or dismissed.
//
// Scripts live in <hooks_dir>/<point>/ and run in name order. Only executable
// regular files are considered. Each script receives the overlay details as
// environment variables (OVERLAY_ID, OVERLAY_TAG, OVERLAY_CATEGORY,
// OVERLAY_REASON, OVERLAY_RESULT) plus HOOK_POINT and HOOK_TIMESTAMP.
package hooks

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/cristianoliveira/tmux-overlay/internal/config"
	"github.com/cristianoliveira/tmux-overlay/internal/overlay"
)

// Hook points.
const (
	PointPostShow    = "post-show"
	PointPostDismiss = "post-dismiss"
)

// Failure modes.
const (
	FailureIgnore = "ignore"
	FailureWarn   = "warn"
	FailureAbort  = "abort"
)

// Logger receives hook diagnostics and script output.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Info(string, ...any)  {}
func (nopLogger) Warn(string, ...any)  {}
func (nopLogger) Error(string, ...any) {}

// Options configures a Runner.
type Options struct {
	Dir     string
	Enabled bool
	// Disabled lists hook points switched off individually.
	Disabled    map[string]bool
	FailureMode string
	// Async starts every script without waiting for it.
	Async    bool
	Timeout  time.Duration
	MaxAsync int
	Logger   Logger
}

// OptionsFromConfig reads the hooks_* keys of the global configuration.
func OptionsFromConfig() Options {
	return Options{
		Dir:     config.Get("hooks_dir", ""),
		Enabled: config.GetBool("hooks_enabled", true),
		Disabled: map[string]bool{
			PointPostShow:    !config.GetBool("hooks_enabled_post_show", true),
			PointPostDismiss: !config.GetBool("hooks_enabled_post_dismiss", true),
		},
		FailureMode: config.Get("hooks_failure_mode", FailureWarn),
		Async:       config.GetBool("hooks_async", false),
		Timeout:     time.Duration(config.GetInt("hooks_async_timeout", 30)) * time.Second,
		MaxAsync:    config.GetInt("max_hooks", 10),
	}
}

// Runner executes hook scripts. It is safe for concurrent use.
type Runner struct {
	opts   Options
	binary string

	mu      sync.Mutex
	pending int
	wg      sync.WaitGroup
}

// NewRunner returns a Runner with defaults filled in for zero options.
func NewRunner(opts Options) *Runner {
	if opts.FailureMode == "" {
		opts.FailureMode = FailureWarn
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}
	if opts.MaxAsync <= 0 {
		opts.MaxAsync = 10
	}
	if opts.Logger == nil {
		opts.Logger = nopLogger{}
	}
	r := &Runner{opts: opts}
	if exe, err := os.Executable(); err == nil {
		r.binary = exe
	}
	return r
}

// Init creates the hooks directory.
func (r *Runner) Init() error {
	if r.opts.Dir == "" {
		return nil
	}
	if err := os.MkdirAll(r.opts.Dir, config.FileModeDir); err != nil {
		return fmt.Errorf("failed to create hooks directory %s: %w", r.opts.Dir, err)
	}
	return nil
}

func (r *Runner) enabled(point string) bool {
	return r.opts.Enabled && r.opts.Dir != "" && !r.opts.Disabled[point]
}

// Scripts returns the executable scripts of point in run order.
func (r *Runner) Scripts(point string) []string {
	dir := filepath.Join(r.opts.Dir, point)
	files, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	var scripts []string
	for _, f := range files {
		if f.IsDir() {
			continue
		}
		path := filepath.Join(dir, f.Name())
		info, err := os.Stat(path)
		if err != nil || !info.Mode().IsRegular() || info.Mode()&0111 == 0 {
			continue
		}
		scripts = append(scripts, path)
	}
	sort.Strings(scripts)
	return scripts
}

// Run executes the scripts of point. In sync mode it waits for each script
// and, under the abort failure mode, stops at and returns the first failure.
// Other failures are logged (warn) or dropped (ignore) and joined into the
// returned error. In async mode Run only starts the scripts.
func (r *Runner) Run(ctx context.Context, point string, env map[string]string) error {
	if !r.enabled(point) {
		return nil
	}
	scripts := r.Scripts(point)
	if len(scripts) == 0 {
		return nil
	}
	environ := r.environ(point, env)
	r.opts.Logger.Debug("running hooks", "point", point, "scripts", len(scripts), "async", r.opts.Async)

	var errs []error
	for _, script := range scripts {
		if r.opts.Async {
			r.start(script, environ)
			continue
		}
		if err := r.exec(ctx, script, environ); err != nil {
			if r.opts.FailureMode == FailureAbort {
				return err
			}
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (r *Runner) environ(point string, env map[string]string) []string {
	merged := os.Environ()
	merged = append(merged,
		"HOOK_POINT="+point,
		"HOOK_TIMESTAMP="+time.Now().Format(time.RFC3339),
		config.EnvPrefix+"HOOKS_FAILURE_MODE="+r.opts.FailureMode,
	)
	if r.binary != "" {
		merged = append(merged, config.EnvPrefix+"BINARY="+r.binary)
	}
	keys := make([]string, 0, len(env))
	for k := range env {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		merged = append(merged, k+"="+env[k])
	}
	return merged
}

func (r *Runner) exec(ctx context.Context, script string, environ []string) error {
	ctx, cancel := context.WithTimeout(ctx, r.opts.Timeout)
	defer cancel()

	name := filepath.Base(script)
	start := time.Now()
	cmd := exec.CommandContext(ctx, script)
	cmd.Env = environ
	// a killed script may leave children holding the output pipe
	cmd.WaitDelay = time.Second
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out

	err := cmd.Run()
	elapsed := time.Since(start)
	if output := strings.TrimSpace(out.String()); output != "" {
		r.opts.Logger.Debug("hook output", "hook", name, "output", output)
	}
	if err == nil {
		r.opts.Logger.Debug("hook completed", "hook", name, "duration", elapsed.String())
		return nil
	}
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		err = fmt.Errorf("timed out after %s: %w", r.opts.Timeout, err)
	}
	if r.opts.FailureMode != FailureIgnore {
		r.opts.Logger.Warn("hook failed", "hook", name, "error", err, "duration", elapsed.String())
	}
	return fmt.Errorf("hook %s failed: %w", name, err)
}

// start runs script in the background unless MaxAsync scripts are already
// running, in which case it is skipped.
func (r *Runner) start(script string, environ []string) {
	r.mu.Lock()
	if r.pending >= r.opts.MaxAsync {
		r.mu.Unlock()
		r.opts.Logger.Warn("too many async hooks pending, skipping", "hook", filepath.Base(script), "max", r.opts.MaxAsync)
		return
	}
	r.pending++
	r.wg.Add(1)
	r.mu.Unlock()

	go func() {
		defer func() {
			if rec := recover(); rec != nil {
				r.opts.Logger.Error("async hook panicked", "hook", filepath.Base(script), "panic", fmt.Sprint(rec))
			}
			r.mu.Lock()
			r.pending--
			r.mu.Unlock()
			r.wg.Done()
		}()
		_ = r.exec(context.Background(), script, environ)
	}()
}

// Pending returns the number of async scripts still running.
func (r *Runner) Pending() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pending
}

// Wait blocks until every background script and event dispatch has finished.
func (r *Runner) Wait() {
	r.wg.Wait()
}

// OnEvent runs post-show for EventShown and post-dismiss for EventDismissed.
// Scripts run on a background goroutine so the overlay caller never waits for
// them; Wait covers these runs too. Runs for different events are not
// ordered relative to each other.
func (r *Runner) OnEvent(ev overlay.Event) {
	var point string
	switch ev.Type {
	case overlay.EventShown:
		point = PointPostShow
	case overlay.EventDismissed:
		point = PointPostDismiss
	default:
		return
	}
	if !r.enabled(point) {
		return
	}
	env := EventEnv(ev)
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		if err := r.Run(context.Background(), point, env); err != nil && r.opts.FailureMode == FailureAbort {
			r.opts.Logger.Error("hooks aborted", "point", point, "id", ev.Handle.ID(), "error", err)
		}
	}()
}

// EventEnv returns the environment describing ev to a script.
func EventEnv(ev overlay.Event) map[string]string {
	env := map[string]string{
		"OVERLAY_ID":       ev.Handle.ID(),
		"OVERLAY_TAG":      ev.Handle.Tag(),
		"OVERLAY_CATEGORY": ev.Handle.Category().String(),
		"OVERLAY_EVENT":    ev.Type.String(),
	}
	if ev.Type == overlay.EventDismissed {
		env["OVERLAY_REASON"] = ev.Reason.String()
		if ev.Result != nil {
			env["OVERLAY_RESULT"] = fmt.Sprint(ev.Result)
		}
	}
	return env
}

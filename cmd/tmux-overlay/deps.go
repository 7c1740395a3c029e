package main

import (
	"context"
	"fmt"
	"time"

	"github.com/cristianoliveira/tmux-overlay/internal/config"
	"github.com/cristianoliveira/tmux-overlay/internal/hooks"
	"github.com/cristianoliveira/tmux-overlay/internal/journal"
	"github.com/cristianoliveira/tmux-overlay/internal/logging"
	"github.com/cristianoliveira/tmux-overlay/internal/overlay"
	"github.com/cristianoliveira/tmux-overlay/internal/tui/app"
	"github.com/cristianoliveira/tmux-overlay/internal/tui/host"
)

// runtime is everything one interactive session needs: a host for the
// program, the overlay manager bound to it and the observers that follow the
// overlays' lifecycle.
type runtime struct {
	logger  logging.Logger
	host    *host.Host
	hooks   *hooks.Runner
	journal *journal.Journal
	manager *overlay.Manager
}

type runtimeOpener func(ctx context.Context) (*runtime, error)

// openRuntime builds a runtime from the global configuration. The journal is
// optional: when it cannot be opened the session continues without it.
func openRuntime(ctx context.Context) (*runtime, error) {
	logger := logging.GetGlobal().With("component", "overlay")
	rt := &runtime{
		logger: logger,
		host:   host.New(),
	}

	hookOpts := hooks.OptionsFromConfig()
	hookOpts.Logger = logger.With("component", "hooks")
	rt.hooks = hooks.NewRunner(hookOpts)
	if err := rt.hooks.Init(); err != nil {
		logger.Warn("hooks unavailable", "error", err)
	}

	observers := []overlay.Observer{rt.host, rt.hooks}
	if config.GetBool("journal_enabled", true) {
		j, err := openJournal(ctx, logger.With("component", "journal"))
		if err != nil {
			logger.Warn("journal unavailable", "error", err)
		} else {
			rt.journal = j
			observers = append(observers, j)
		}
	}

	rt.manager = overlay.NewManager()
	if err := rt.manager.Init(rt.host, app.ManagerOptionsFromConfig(logger, observers...)...); err != nil {
		_ = rt.Close()
		return nil, err
	}
	return rt, nil
}

// openJournal opens the journal at its default path and drops entries past
// journal_retention_days.
func openJournal(ctx context.Context, logger logging.Logger) (*journal.Journal, error) {
	j, err := journal.Open(journal.DefaultPath(), journal.WithLogger(logger))
	if err != nil {
		return nil, err
	}
	days := config.GetInt("journal_retention_days", 30)
	if n, err := j.Prune(ctx, retention(days)); err != nil {
		logger.Warn("journal prune failed", "error", err)
	} else if n > 0 {
		logger.Debug("journal pruned", "removed", n, "days", days)
	}
	return j, nil
}

func retention(days int) time.Duration {
	return time.Duration(days) * 24 * time.Hour
}

// Close disposes the overlays, waits for their hooks and closes the journal.
func (rt *runtime) Close() error {
	if rt.manager != nil {
		rt.manager.Dispose()
	}
	if rt.hooks != nil {
		rt.hooks.Wait()
	}
	if rt.journal != nil {
		if err := rt.journal.Close(); err != nil {
			return fmt.Errorf("close journal: %w", err)
		}
	}
	return nil
}

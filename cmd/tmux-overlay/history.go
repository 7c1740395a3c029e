package main

import (
	"context"
	"fmt"
	"time"

	"github.com/cristianoliveira/tmux-overlay/cmd"
	"github.com/cristianoliveira/tmux-overlay/internal/format"
	"github.com/cristianoliveira/tmux-overlay/internal/journal"
	"github.com/cristianoliveira/tmux-overlay/internal/logging"
	"github.com/spf13/cobra"
)

// journalStore is the part of the journal the history and prune commands use.
type journalStore interface {
	List(ctx context.Context, f journal.Filter) ([]journal.Entry, error)
	Counts(ctx context.Context) ([]journal.Count, error)
	Prune(ctx context.Context, olderThan time.Duration) (int64, error)
	Close() error
}

type journalOpener func() (journalStore, error)

func openJournalStore() (journalStore, error) {
	return journal.Open(journal.DefaultPath(), journal.WithLogger(logging.GetGlobal()))
}

// withJournal opens the journal, runs fn and closes it again.
func withJournal(open journalOpener, fn func(j journalStore) error) error {
	j, err := open()
	if err != nil {
		return err
	}
	defer j.Close()
	return fn(j)
}

const historyCommandLong = `List recorded overlay lifecycle events, newest first.

USAGE:
    tmux-overlay history [OPTIONS]

OPTIONS:
    --category <name>   Only events of one category: dialog, banner, toast, sheet
    --tag <tag>         Only overlays with this tag
    --id <id>           Only the overlay with this id
    --event <event>     Only shown, visible or dismissed events
    --since <duration>  Only events newer than this (e.g. 30m, 24h)
    --limit <n>         Show at most n events (default 50, 0 for all)
    --format <format>   Output format: simple, table (default), json
    --stats             Show event counts per category instead
    -h, --help          Show this help`

// NewHistoryCmd creates the history command with explicit dependencies.
func NewHistoryCmd(open journalOpener) *cobra.Command {
	if open == nil {
		panic("NewHistoryCmd: journal dependency cannot be nil")
	}

	var (
		filter     journal.Filter
		since      string
		formatName string
		stats      bool
	)

	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Show recorded overlay events",
		Long:  historyCommandLong,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatterType, err := format.ParseFormatterType(formatName)
			if err != nil {
				return err
			}
			formatter := format.NewFormatter(formatterType, time.Now)
			f := filter
			if since != "" {
				d, err := time.ParseDuration(since)
				if err != nil || d <= 0 {
					return fmt.Errorf("invalid --since %q: must be a positive duration", since)
				}
				f.Since = time.Now().Add(-d)
			}

			return withJournal(open, func(j journalStore) error {
				if stats {
					counts, err := j.Counts(cmd.Context())
					if err != nil {
						return err
					}
					return formatter.FormatCounts(counts, cmd.OutOrStdout())
				}
				entries, err := j.List(cmd.Context(), f)
				if err != nil {
					return err
				}
				if len(entries) == 0 && formatterType != format.FormatterTypeJSON {
					fmt.Fprintln(cmd.OutOrStdout(), "No overlay events recorded")
					return nil
				}
				return formatter.FormatEntries(entries, cmd.OutOrStdout())
			})
		},
	}

	flags := historyCmd.Flags()
	flags.StringVar(&filter.Category, "category", "", "Only events of one category")
	flags.StringVar(&filter.Tag, "tag", "", "Only overlays with this tag")
	flags.StringVar(&filter.OverlayID, "id", "", "Only the overlay with this id")
	flags.StringVar(&filter.Event, "event", "", "Only shown, visible or dismissed events")
	flags.StringVar(&since, "since", "", "Only events newer than this duration")
	flags.IntVar(&filter.Limit, "limit", 50, "Show at most n events, 0 for all")
	flags.StringVar(&formatName, "format", string(format.FormatterTypeTable), "Output format: simple, table, json")
	flags.BoolVar(&stats, "stats", false, "Show event counts per category")

	return historyCmd
}

var historyCmd = NewHistoryCmd(openJournalStore)

func init() {
	cmd.RootCmd.AddCommand(historyCmd)
}

package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/cristianoliveira/tmux-overlay/cmd"
	"github.com/cristianoliveira/tmux-overlay/internal/config"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

// NewPruneCmd creates the prune command with explicit dependencies.
func NewPruneCmd(open journalOpener) *cobra.Command {
	if open == nil {
		panic("NewPruneCmd: journal dependency cannot be nil")
	}

	var (
		daysFlag      int
		olderThanFlag string
		allFlag       bool
	)

	pruneCmd := &cobra.Command{
		Use:   "prune",
		Short: "Remove old events from the journal",
		Long: `Remove old events from the journal.

Events older than the configured journal_retention_days are removed unless
--days or --older-than say otherwise. --all empties the journal.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			olderThan, err := pruneCutoff(cmd, daysFlag, olderThanFlag, allFlag)
			if err != nil {
				return err
			}

			return withJournal(open, func(j journalStore) error {
				n, err := j.Prune(cmd.Context(), olderThan)
				if err != nil {
					return fmt.Errorf("prune failed: %w", err)
				}
				if allFlag {
					fmt.Fprintf(cmd.OutOrStdout(), "Removed %s events\n", humanize.Comma(n))
				} else {
					fmt.Fprintf(cmd.OutOrStdout(), "Removed %s events older than %s\n", humanize.Comma(n), olderThan)
				}
				return nil
			})
		},
	}

	// Default days 0 means "use config value"
	pruneCmd.Flags().IntVar(&daysFlag, "days", 0, "Remove events older than N days (default: TMUX_OVERLAY_JOURNAL_RETENTION_DAYS config value)")
	pruneCmd.Flags().StringVar(&olderThanFlag, "older-than", "", "Remove events older than a duration (e.g. 12h)")
	pruneCmd.Flags().BoolVar(&allFlag, "all", false, "Remove every event")
	pruneCmd.MarkFlagsMutuallyExclusive("days", "older-than", "all")

	return pruneCmd
}

func pruneCutoff(cmd *cobra.Command, days int, olderThan string, all bool) (time.Duration, error) {
	switch {
	case all:
		return 0, nil
	case olderThan != "":
		d, err := time.ParseDuration(olderThan)
		if err != nil || d <= 0 {
			return 0, fmt.Errorf("invalid --older-than %q: must be a positive duration", olderThan)
		}
		return d, nil
	case cmd.Flags().Changed("days") && days <= 0:
		return 0, errors.New("days must be a positive integer")
	case days > 0:
		return retention(days), nil
	default:
		return retention(config.GetInt("journal_retention_days", 30)), nil
	}
}

var pruneCmd = NewPruneCmd(openJournalStore)

func init() {
	cmd.RootCmd.AddCommand(pruneCmd)
}

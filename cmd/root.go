package cmd

import (
	"fmt"
	"strings"

	"github.com/cristianoliveira/tmux-overlay/internal/version"
	"github.com/spf13/cobra"
)

// RootCmd represents the base command when called without any subcommands.
var RootCmd = &cobra.Command{
	Use:           "tmux-overlay",
	Short:         "Dialogs, banners, toasts and sheets layered over a terminal UI.",
	Long:          `Dialogs, banners, toasts and sheets layered over a terminal UI.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command. Subcommands register themselves on RootCmd
// from their package init.
func Execute() error {
	return RootCmd.Execute()
}

func init() {
	RootCmd.Version = version.String()

	RootCmd.CompletionOptions.HiddenDefaultCmd = true

	RootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		if cmd != RootCmd {
			fmt.Fprint(cmd.OutOrStdout(), cmd.UsageString())
			return
		}
		printHelpText(cmd)
	})
}

var commandOrder = []string{
	"tui",
	"history",
	"prune",
	"version",
}

func printHelpText(cmd *cobra.Command) {
	var cmdLines []string
	for _, name := range commandOrder {
		var found *cobra.Command
		for _, c := range cmd.Commands() {
			if c.Name() == name {
				found = c
				break
			}
		}
		if found == nil {
			continue
		}
		cmdLines = append(cmdLines, fmt.Sprintf("    %-16s %s", found.Name(), found.Short))
	}

	fmt.Fprintf(cmd.OutOrStdout(), `tmux-overlay v%s

Dialogs, banners, toasts and sheets layered over a terminal UI.

USAGE:
    tmux-overlay [COMMAND] [OPTIONS]

COMMANDS:
%s

OPTIONS:
    -h, --help      Show help message
`, version.String(), strings.Join(cmdLines, "\n"))
}

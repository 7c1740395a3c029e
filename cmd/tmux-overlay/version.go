package main

import (
	"fmt"

	"github.com/cristianoliveira/tmux-overlay/cmd"
	"github.com/cristianoliveira/tmux-overlay/internal/version"
	"github.com/spf13/cobra"
)

type versionClient interface {
	Version() string
	// BuildDate returns "" when the build time is unknown.
	BuildDate() string
}

type buildVersion struct{}

func (buildVersion) Version() string { return version.String() }

func (buildVersion) BuildDate() string {
	if d := version.Get().Date; d != "unknown" {
		return d
	}
	return ""
}

// NewVersionCmd creates the version command with explicit dependencies.
func NewVersionCmd(client versionClient) *cobra.Command {
	if client == nil {
		panic("NewVersionCmd: client dependency cannot be nil")
	}

	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  `Show the current version of tmux-overlay.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "tmux-overlay version %s\n", client.Version())
			if date := client.BuildDate(); date != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "built %s\n", date)
			}
			return nil
		},
	}
}

var versionCmd = NewVersionCmd(buildVersion{})

func init() {
	cmd.RootCmd.AddCommand(versionCmd)
}

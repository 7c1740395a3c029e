package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/cristianoliveira/tmux-overlay/cmd"
	"github.com/cristianoliveira/tmux-overlay/internal/tui/app"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

const (
	minTerminalWidth  = 40
	minTerminalHeight = 10
)

var (
	isTerminal = func() bool {
		return term.IsTerminal(int(os.Stdout.Fd()))
	}
	terminalSize = func() (int, int, error) {
		return term.GetSize(int(os.Stdout.Fd()))
	}
)

// NewTUICmd creates the tui command with explicit dependencies.
func NewTUICmd(client app.Client, open runtimeOpener) *cobra.Command {
	if client == nil {
		panic("NewTUICmd: client dependency cannot be nil")
	}
	if open == nil {
		panic("NewTUICmd: runtime dependency cannot be nil")
	}

	return &cobra.Command{
		Use:   "tui",
		Short: "Open the interactive overlay playground",
		Long: `Open the interactive overlay playground.

Keys show a dialog (d), a toast (t), a sheet (s), toggle the status banner (b)
or raise an error toast (e). Esc dismisses the topmost dismissible overlay and
c closes everything. Lifecycle events are listed as they happen.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !isTerminal() {
				return errors.New("tui requires an interactive terminal")
			}
			if w, h, err := terminalSize(); err == nil && (w < minTerminalWidth || h < minTerminalHeight) {
				return fmt.Errorf("terminal too small: %dx%d, need at least %dx%d", w, h, minTerminalWidth, minTerminalHeight)
			}

			rt, err := open(cmd.Context())
			if err != nil {
				return fmt.Errorf("tui: %w", err)
			}
			defer func() {
				if err := rt.Close(); err != nil {
					rt.logger.Warn("runtime close failed", "error", err)
				}
			}()

			model, err := client.CreateModel(rt.manager, rt.host)
			if err != nil {
				return fmt.Errorf("tui: create model: %w", err)
			}
			return client.RunProgram(model, rt.host)
		},
	}
}

var tuiCmd = NewTUICmd(app.NewDefaultClient(nil), openRuntime)

func init() {
	cmd.RootCmd.AddCommand(tuiCmd)
}

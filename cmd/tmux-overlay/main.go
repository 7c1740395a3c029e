package main

import (
	"os"

	"github.com/cristianoliveira/tmux-overlay/cmd"
	"github.com/cristianoliveira/tmux-overlay/internal/colors"
	"github.com/cristianoliveira/tmux-overlay/internal/config"
	"github.com/cristianoliveira/tmux-overlay/internal/errors"
	"github.com/cristianoliveira/tmux-overlay/internal/logging"
)

func main() {
	os.Exit(run(os.Args[1:], cmd.Execute))
}

// run loads configuration, sets up logging and runs execute, returning the
// process exit code.
func run(args []string, execute func() error) int {
	config.Load()
	if config.GetBool("debug", false) {
		colors.SetDebug(true)
	}
	if config.GetBool("quiet", false) {
		colors.SetQuiet(true)
	}
	// JSON lines on stderr would tear the alternate screen
	if len(args) > 0 && args[0] == "tui" {
		colors.DisableStructuredLogging()
	}

	if err := logging.InitGlobal(); err != nil {
		colors.Warning("logging disabled:", err.Error())
	}
	defer func() {
		_ = logging.ShutdownGlobal()
	}()

	colors.StructuredInfo("startup", "main", "started", nil, "", map[string]any{"args": args})
	if err := execute(); err != nil {
		colors.StructuredError("startup", "main", "failed", err, "", nil)
		errors.Report(errors.NewDefaultCLIHandler(), err)
		return 1
	}
	colors.StructuredInfo("startup", "main", "completed", nil, "", nil)
	return 0
}

package app

import (
	"github.com/cristianoliveira/tmux-overlay/internal/config"
	"github.com/cristianoliveira/tmux-overlay/internal/overlay"
)

var durationKeys = map[overlay.Category]string{
	overlay.CategoryDialog: "dialog_duration",
	overlay.CategoryBanner: "banner_duration",
	overlay.CategoryToast:  "toast_duration",
	overlay.CategorySheet:  "sheet_duration",
}

// ManagerOptionsFromConfig returns the overlay.Manager options described by
// the global configuration, with logger and observers attached to every
// category.
func ManagerOptionsFromConfig(logger overlay.Logger, observers ...overlay.Observer) []overlay.ManagerOption {
	common := []overlay.Option{
		overlay.WithLogger(logger),
		overlay.WithDefaultDismissible(config.GetBool("default_dismissible", true)),
		overlay.WithTransitionTimeout(config.GetDuration("transition_timeout", overlay.DefaultTransitionTimeout)),
	}
	enter := config.GetDuration("enter_transition", 0)
	exit := config.GetDuration("exit_transition", 0)
	if enter > 0 || exit > 0 {
		common = append(common, overlay.WithTransitions(overlay.TimedTransitions(enter, exit)))
	}
	if config.GetBool("strict_host", false) {
		common = append(common, overlay.WithStrictHost())
	}
	for _, o := range observers {
		common = append(common, overlay.WithObserver(o))
	}

	opts := []overlay.ManagerOption{overlay.WithControllerOptions(common...)}
	for _, c := range overlay.Categories() {
		d := config.GetDuration(durationKeys[c], 0)
		opts = append(opts, overlay.WithCategoryOptions(c, overlay.WithDefaultDuration(d)))
	}
	return opts
}

package overlay

import "time"

const (
	// DefaultTransitionTimeout bounds how long a controller waits for an
	// entrance or exit transition before moving on without it.
	DefaultTransitionTimeout = 2 * time.Second
)

// Option configures a Controller at Init.
type Option func(*settings)

type settings struct {
	logger             Logger
	ids                IDGenerator
	transitions        TransitionFactory
	defaultDuration    time.Duration
	defaultDismissible bool
	strictHost         bool
	transitionTimeout  time.Duration
	observers          []Observer
	now                func() time.Time
}

func defaultSettings() settings {
	return settings{
		logger:             noopLogger{},
		ids:                NewID,
		transitions:        ImmediateTransitions(),
		defaultDismissible: true,
		transitionTimeout:  DefaultTransitionTimeout,
		now:                time.Now,
	}
}

// WithLogger sets the logger used for lifecycle and teardown diagnostics.
func WithLogger(l Logger) Option {
	return func(s *settings) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithIDGenerator replaces NewID for overlays shown without WithID.
func WithIDGenerator(gen IDGenerator) Option {
	return func(s *settings) {
		if gen != nil {
			s.ids = gen
		}
	}
}

// WithTransitions sets the factory building each entry's Transition.
func WithTransitions(f TransitionFactory) Option {
	return func(s *settings) {
		if f != nil {
			s.transitions = f
		}
	}
}

// WithDefaultDuration sets the auto-dismiss duration used when Show is called
// without WithDuration. Zero disables auto-dismiss.
func WithDefaultDuration(d time.Duration) Option {
	return func(s *settings) {
		if d >= 0 {
			s.defaultDuration = d
		}
	}
}

// WithDefaultDismissible sets whether overlays accept barrier taps by default.
func WithDefaultDismissible(dismissible bool) Option {
	return func(s *settings) { s.defaultDismissible = dismissible }
}

// WithStrictHost makes Show fail with ErrHostUnavailable when the host is not
// ready instead of deferring the insertion.
func WithStrictHost() Option {
	return func(s *settings) { s.strictHost = true }
}

// WithTransitionTimeout bounds the wait for a transition phase.
func WithTransitionTimeout(d time.Duration) Option {
	return func(s *settings) {
		if d > 0 {
			s.transitionTimeout = d
		}
	}
}

// WithObserver subscribes o to lifecycle events.
func WithObserver(o Observer) Option {
	return func(s *settings) {
		if o != nil {
			s.observers = append(s.observers, o)
		}
	}
}

// WithClock replaces time.Now for OpenedAt and event timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *settings) {
		if now != nil {
			s.now = now
		}
	}
}

// ShowOption configures a single Show call.
type ShowOption func(*showOptions)

type showOptions struct {
	id          string
	tag         string
	dismissible *bool
	duration    *time.Duration
	style       any
}

// WithID supplies the overlay id instead of generating one.
func WithID(id string) ShowOption {
	return func(o *showOptions) { o.id = id }
}

// WithTag sets the grouping key used by CloseByTag and GetByTag.
func WithTag(tag string) ShowOption {
	return func(o *showOptions) { o.tag = tag }
}

// WithDismissible sets whether a barrier tap may close the overlay.
func WithDismissible(dismissible bool) ShowOption {
	return func(o *showOptions) { o.dismissible = &dismissible }
}

// WithDuration arms an auto-dismiss timer. Zero means "stay until closed".
func WithDuration(d time.Duration) ShowOption {
	return func(o *showOptions) {
		if d < 0 {
			d = 0
		}
		o.duration = &d
	}
}

// WithStyle attaches opaque presentation data for the renderer.
func WithStyle(style any) ShowOption {
	return func(o *showOptions) { o.style = style }
}

package overlay

import "time"

// Transition drives the entrance and exit visuals of one overlay. Each
// returned channel is closed when the phase finishes; a nil channel means the
// phase is immediate. A Transition is used for exactly one entry.
type Transition interface {
	Enter() <-chan struct{}
	Exit() <-chan struct{}
}

// TransitionFactory builds the Transition for a freshly inserted layer.
type TransitionFactory func(layer Layer) Transition

type immediate struct{}

func (immediate) Enter() <-chan struct{} { return nil }
func (immediate) Exit() <-chan struct{}  { return nil }

// ImmediateTransitions returns a factory whose transitions finish at once.
func ImmediateTransitions() TransitionFactory {
	return func(Layer) Transition { return immediate{} }
}

type timed struct {
	enter time.Duration
	exit  time.Duration
}

// TimedTransitions returns a factory whose entrance and exit phases last the
// given durations. Zero durations are immediate.
func TimedTransitions(enter, exit time.Duration) TransitionFactory {
	return func(Layer) Transition { return timed{enter: enter, exit: exit} }
}

func (t timed) Enter() <-chan struct{} { return after(t.enter) }
func (t timed) Exit() <-chan struct{}  { return after(t.exit) }

func after(d time.Duration) <-chan struct{} {
	if d <= 0 {
		return nil
	}
	ch := make(chan struct{})
	time.AfterFunc(d, func() { close(ch) })
	return ch
}

// finished reports whether a phase channel is nil or already closed.
func finished(ch <-chan struct{}) bool {
	if ch == nil {
		return true
	}
	select {
	case <-ch:
		return true
	default:
		return false
	}
}

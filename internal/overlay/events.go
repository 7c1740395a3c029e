package overlay

import "time"

// EventType names a lifecycle step.
type EventType int

const (
	// EventShown fires once an entry is registered.
	EventShown EventType = iota
	// EventVisible fires when the entrance transition completes.
	EventVisible
	// EventDismissed fires after teardown.
	EventDismissed
)

func (t EventType) String() string {
	switch t {
	case EventShown:
		return "shown"
	case EventVisible:
		return "visible"
	case EventDismissed:
		return "dismissed"
	default:
		return "unknown"
	}
}

// Reason records which path dismissed an overlay.
type Reason int

const (
	ReasonNone Reason = iota
	ReasonManual
	ReasonTag
	ReasonAll
	ReasonTimeout
	ReasonBarrier
	ReasonDispose
	ReasonHostError
)

var reasonNames = [...]string{
	ReasonNone:      "",
	ReasonManual:    "manual",
	ReasonTag:       "tag",
	ReasonAll:       "all",
	ReasonTimeout:   "timeout",
	ReasonBarrier:   "barrier",
	ReasonDispose:   "dispose",
	ReasonHostError: "host-error",
}

func (r Reason) String() string {
	if r >= 0 && int(r) < len(reasonNames) {
		return reasonNames[r]
	}
	return "unknown"
}

// Event describes one lifecycle step of one overlay.
type Event struct {
	Type   EventType
	Handle Handle
	Reason Reason
	Result any
	At     time.Time
}

// Observer receives lifecycle events. OnEvent is called outside the
// controller lock, possibly from timer goroutines.
type Observer interface {
	OnEvent(ev Event)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(ev Event)

// OnEvent calls f(ev).
func (f ObserverFunc) OnEvent(ev Event) { f(ev) }

package overlay

import "time"

// Token is whatever a ViewHost hands back from Insert. The controller only
// stores it and passes it to Remove.
type Token any

// Layer is the renderable a controller asks the host to insert. Content and
// Style are passed through untouched.
type Layer struct {
	ID          string
	Tag         string
	Category    Category
	Content     any
	Style       any
	Dismissible bool
	OpenedAt    time.Time
	// Dismiss closes the overlay with a nil result, as a tap outside its
	// content would, and reports whether this call closed it. It is nil when
	// the overlay is not dismissible.
	Dismiss func() bool
}

// ViewHost is the rendering surface overlays are inserted into.
type ViewHost interface {
	// IsReady reports whether a live surface exists right now.
	IsReady() bool
	// Insert places layer on the surface. It fails with ErrHostUnavailable
	// when the host is not ready.
	Insert(layer Layer) (Token, error)
	// Remove takes a layer off the surface. Removing twice is a no-op.
	Remove(token Token)
}

// ReadyNotifier is implemented by hosts that can tell when they become ready,
// so deferred insertions are flushed without an explicit HostReady call.
type ReadyNotifier interface {
	NotifyReady(fn func())
}

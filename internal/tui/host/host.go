// Package host adapts a running bubbletea program to overlay.ViewHost.
//
// The host keeps the inserted layers in z-order (last inserted on top). The
// model renders them in View; the host only tells the program that the layer
// set changed.
package host

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/cristianoliveira/tmux-overlay/internal/overlay"
)

// Sender is the part of *tea.Program the host needs.
type Sender interface {
	Send(msg tea.Msg)
}

// LayersChangedMsg is sent to the program after every insert or remove.
type LayersChangedMsg struct {
	Count int
}

// ReadyMsg is sent to the program when the host becomes ready.
type ReadyMsg struct{}

// EventMsg carries an overlay lifecycle event into the program.
type EventMsg struct {
	Event overlay.Event
}

type token uint64

type slot struct {
	token token
	layer overlay.Layer
}

// Host is safe for concurrent use. Controllers call it from timer goroutines
// as well as from the program's Update.
type Host struct {
	mu      sync.Mutex
	ready   bool
	sender  Sender
	next    token
	layers  []slot
	onReady []func()
}

// New returns a host that is not ready until SetReady(true).
func New() *Host {
	return &Host{}
}

// Attach sets the program notified of layer changes. Passing nil detaches.
func (h *Host) Attach(s Sender) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.sender = s
}

// SetReady flips readiness. Turning ready runs the NotifyReady callbacks, so
// controllers flush the overlays deferred while the program was not running.
func (h *Host) SetReady(ready bool) {
	h.mu.Lock()
	was := h.ready
	h.ready = ready
	callbacks := append([]func(){}, h.onReady...)
	sender := h.sender
	h.mu.Unlock()

	if !ready || was {
		return
	}
	for _, fn := range callbacks {
		fn()
	}
	notify(sender, ReadyMsg{})
}

// IsReady implements overlay.ViewHost.
func (h *Host) IsReady() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.ready
}

// NotifyReady implements overlay.ReadyNotifier.
func (h *Host) NotifyReady(fn func()) {
	if fn == nil {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onReady = append(h.onReady, fn)
}

// Insert implements overlay.ViewHost.
func (h *Host) Insert(layer overlay.Layer) (overlay.Token, error) {
	h.mu.Lock()
	if !h.ready {
		h.mu.Unlock()
		return nil, overlay.ErrHostUnavailable
	}
	h.next++
	t := h.next
	h.layers = append(h.layers, slot{token: t, layer: layer})
	n := len(h.layers)
	sender := h.sender
	h.mu.Unlock()

	notify(sender, LayersChangedMsg{Count: n})
	return t, nil
}

// Remove implements overlay.ViewHost. Unknown tokens are ignored.
func (h *Host) Remove(tok overlay.Token) {
	t, ok := tok.(token)
	if !ok {
		return
	}
	h.mu.Lock()
	idx := -1
	for i, s := range h.layers {
		if s.token == t {
			idx = i
			break
		}
	}
	if idx < 0 {
		h.mu.Unlock()
		return
	}
	h.layers = append(h.layers[:idx], h.layers[idx+1:]...)
	n := len(h.layers)
	sender := h.sender
	h.mu.Unlock()

	notify(sender, LayersChangedMsg{Count: n})
}

// Layers returns the inserted layers bottom to top.
func (h *Host) Layers() []overlay.Layer {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]overlay.Layer, len(h.layers))
	for i, s := range h.layers {
		out[i] = s.layer
	}
	return out
}

// Topmost returns the layer drawn last.
func (h *Host) Topmost() (overlay.Layer, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.layers) == 0 {
		return overlay.Layer{}, false
	}
	return h.layers[len(h.layers)-1].layer, true
}

// DismissTopmost performs a barrier tap on the highest dismissible layer that
// accepts it. A layer still on screen for its exit transition refuses the tap,
// which then falls through to the layer below. It reports whether a layer
// accepted it.
func (h *Host) DismissTopmost() bool {
	h.mu.Lock()
	var candidates []func() bool
	for i := len(h.layers) - 1; i >= 0; i-- {
		if l := h.layers[i].layer; l.Dismissible && l.Dismiss != nil {
			candidates = append(candidates, l.Dismiss)
		}
	}
	h.mu.Unlock()

	for _, dismiss := range candidates {
		if dismiss() {
			return true
		}
	}
	return false
}

// OnEvent forwards ev to the attached program, so a Host can be registered as
// an overlay observer.
func (h *Host) OnEvent(ev overlay.Event) {
	h.mu.Lock()
	sender := h.sender
	h.mu.Unlock()
	notify(sender, EventMsg{Event: ev})
}

// notify never blocks the caller: Program.Send waits for the event loop,
// which may be the caller itself.
func notify(s Sender, msg tea.Msg) {
	if s == nil {
		return
	}
	go s.Send(msg)
}

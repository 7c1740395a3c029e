package overlay

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// fakeHost is an in-memory ViewHost whose readiness tests can flip.
type fakeHost struct {
	mu        sync.Mutex
	ready     bool
	next      int
	layers    map[int]Layer
	removed   []int
	insertErr error
	onReady   []func()
}

func newFakeHost(ready bool) *fakeHost {
	return &fakeHost{ready: ready, layers: make(map[int]Layer)}
}

func (h *fakeHost) IsReady() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.ready
}

func (h *fakeHost) Insert(layer Layer) (Token, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.insertErr != nil {
		return nil, h.insertErr
	}
	if !h.ready {
		return nil, ErrHostUnavailable
	}
	h.next++
	h.layers[h.next] = layer
	return h.next, nil
}

func (h *fakeHost) Remove(token Token) {
	h.mu.Lock()
	defer h.mu.Unlock()
	id := token.(int)
	if _, ok := h.layers[id]; ok {
		delete(h.layers, id)
		h.removed = append(h.removed, id)
	}
}

func (h *fakeHost) NotifyReady(fn func()) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onReady = append(h.onReady, fn)
}

func (h *fakeHost) setReady(ready bool) {
	h.mu.Lock()
	h.ready = ready
	callbacks := append([]func(){}, h.onReady...)
	h.mu.Unlock()
	if !ready {
		return
	}
	for _, fn := range callbacks {
		fn()
	}
}

func (h *fakeHost) count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.layers)
}

func (h *fakeHost) layer(id string) (Layer, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, l := range h.layers {
		if l.ID == id {
			return l, true
		}
	}
	return Layer{}, false
}

func (h *fakeHost) removedCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.removed)
}

// recorder collects lifecycle events.
type recorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *recorder) OnEvent(ev Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
}

func (r *recorder) ofType(t EventType, id string) []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Event
	for _, ev := range r.events {
		if ev.Type == t && ev.Handle.ID() == id {
			out = append(out, ev)
		}
	}
	return out
}

// gatedTransition lets a test decide when each phase finishes.
type gatedTransition struct {
	enter chan struct{}
	exit  chan struct{}
}

func newGatedTransition() *gatedTransition {
	return &gatedTransition{enter: make(chan struct{}), exit: make(chan struct{})}
}

func (g *gatedTransition) Enter() <-chan struct{} { return g.enter }
func (g *gatedTransition) Exit() <-chan struct{}  { return g.exit }

// slowLogger stands in for a file-backed logger whose writes take a while.
type slowLogger struct {
	noopLogger
	delay time.Duration
}

func (l slowLogger) Debug(string, ...any) { time.Sleep(l.delay) }

// notReadyHost is never ready and fails the test if anything is inserted.
type notReadyHost struct {
	t *testing.T
}

func (h notReadyHost) IsReady() bool { return false }

func (h notReadyHost) Insert(layer Layer) (Token, error) {
	h.t.Errorf("insert of %s into a host that is not ready", layer.ID)
	return nil, ErrHostUnavailable
}

func (h notReadyHost) Remove(Token) {}

type panickyTransition struct{}

func (panickyTransition) Enter() <-chan struct{} { panic("enter exploded") }
func (panickyTransition) Exit() <-chan struct{}  { panic("exit exploded") }

func newTestController(t *testing.T, host ViewHost, opts ...Option) *Controller {
	t.Helper()
	c := NewController(CategoryToast)
	require.NoError(t, c.Init(host, opts...))
	t.Cleanup(c.Dispose)
	return c
}

var errBoom = errors.New("boom")

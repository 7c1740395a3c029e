package overlay

import (
	"errors"
	"fmt"
	"sync"
	"time"
)

const maxIDAttempts = 8

// Controller tracks the overlays of one Category. It is safe for concurrent
// use: timers and transitions complete on their own goroutines, so registry
// mutation and the per-entry dismiss guard are serialized by mu. Calls into
// the host, transitions and observers happen outside the lock.
//
// An entry leaves the registry the moment a close path wins its guard. Its
// layer stays on the host until the exit transition ends, tracked in exiting
// so Dispose can still sweep it.
type Controller struct {
	category Category

	mu          sync.Mutex
	host        ViewHost
	initialized bool
	generation  uint64
	cfg         settings
	reg         *registry
	exiting     map[*entry]struct{}
	pending     []*entry
	seq         uint64
}

// NewController returns an uninitialized controller for category.
func NewController(category Category) *Controller {
	return &Controller{
		category: category,
		cfg:      defaultSettings(),
		reg:      newRegistry(),
		exiting:  make(map[*entry]struct{}),
	}
}

// Category returns the category this controller manages.
func (c *Controller) Category() Category { return c.category }

// Init attaches the controller to host. If host implements ReadyNotifier the
// controller subscribes to it so deferred insertions flush automatically.
func (c *Controller) Init(host ViewHost, opts ...Option) error {
	if host == nil {
		return fmt.Errorf("init %s: %w", c.category, ErrNilHost)
	}
	cfg := defaultSettings()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	c.mu.Lock()
	if c.initialized {
		c.mu.Unlock()
		return fmt.Errorf("init %s: %w", c.category, ErrAlreadyInitialized)
	}
	c.host = host
	c.cfg = cfg
	c.initialized = true
	c.generation++
	gen := c.generation
	c.mu.Unlock()

	if notifier, ok := host.(ReadyNotifier); ok {
		notifier.NotifyReady(func() { c.hostReady(gen) })
	}
	cfg.logger.Debug("overlay controller initialized", "category", c.category.String())
	return nil
}

// IsInitialized reports whether Init succeeded and Dispose has not run since.
func (c *Controller) IsInitialized() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.initialized
}

// Show presents content and returns its handle. When the host is not ready
// the insertion is deferred until it is (unless WithStrictHost was given), so
// the handle may be returned before anything is on screen.
func (c *Controller) Show(content any, opts ...ShowOption) (Handle, error) {
	return c.show(content, false, opts)
}

// ShowAsync is Show, except the returned handle carries a completion that
// resolves with the result passed to whichever close path wins.
func (c *Controller) ShowAsync(content any, opts ...ShowOption) (Handle, error) {
	return c.show(content, true, opts)
}

func (c *Controller) show(content any, async bool, opts []ShowOption) (Handle, error) {
	var o showOptions
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	c.mu.Lock()
	if !c.initialized {
		c.mu.Unlock()
		return Handle{}, fmt.Errorf("show %s: %w", c.category, ErrNotInitialized)
	}
	id, err := c.resolveID(o.id)
	if err != nil {
		c.mu.Unlock()
		return Handle{}, err
	}
	cfg := c.cfg
	host := c.host

	dismissible := cfg.defaultDismissible
	if o.dismissible != nil {
		dismissible = *o.dismissible
	}
	duration := cfg.defaultDuration
	if o.duration != nil {
		duration = *o.duration
	}

	c.seq++
	h := Handle{id: id, tag: o.tag, category: c.category, openedAt: cfg.now()}
	if async {
		h.done = newCompletion()
	}
	e := &entry{seq: c.seq, handle: h, duration: duration, state: StateEntering}
	e.layer = Layer{
		ID:          id,
		Tag:         o.tag,
		Category:    c.category,
		Content:     content,
		Style:       o.style,
		Dismissible: dismissible,
		OpenedAt:    h.openedAt,
	}
	if dismissible {
		e.layer.Dismiss = func() bool { return c.dismissEntry(e, nil, ReasonBarrier) }
	}
	if err := c.reg.register(e); err != nil {
		c.mu.Unlock()
		return Handle{}, fmt.Errorf("show %s: %w", c.category, err)
	}
	c.mu.Unlock()

	if cfg.strictHost && !host.IsReady() {
		c.discard(e)
		return Handle{}, fmt.Errorf("show %s %s: %w", c.category, id, ErrHostUnavailable)
	}

	cfg.logger.Debug("overlay shown", "category", c.category.String(), "id", id, "tag", o.tag, "duration", duration.String())
	if cfg.strictHost || host.IsReady() {
		started, err := c.insert(e, !cfg.strictHost)
		if err != nil {
			c.discard(e)
			return Handle{}, fmt.Errorf("show %s %s: %w", c.category, id, err)
		}
		c.emit(cfg, Event{Type: EventShown, Handle: h, At: h.openedAt})
		if started {
			c.enter(e)
		}
		return h, nil
	}

	c.emit(cfg, Event{Type: EventShown, Handle: h, At: h.openedAt})
	c.deferInsert(e, true)
	return h, nil
}

// HostReady flushes insertions deferred while the host was unavailable. Hosts
// implementing ReadyNotifier trigger it themselves.
func (c *Controller) HostReady() {
	c.flush()
}

// Close dismisses the overlay behind h with result. It returns false when the
// overlay is already closed or closing.
func (c *Controller) Close(h Handle, result any) bool {
	if h.category != c.category {
		return false
	}
	return c.CloseByID(h.id, result)
}

// CloseByID dismisses the overlay with the given id.
func (c *Controller) CloseByID(id string, result any) bool {
	c.mu.Lock()
	e, ok := c.reg.lookup(id)
	c.mu.Unlock()
	if !ok {
		return false
	}
	return c.dismissEntry(e, result, ReasonManual)
}

// CloseByTag dismisses every overlay carrying tag and returns how many this
// call actually closed. Overlays that finish closing on another path between
// the snapshot and the dismissal are skipped.
func (c *Controller) CloseByTag(tag string, result any) int {
	c.mu.Lock()
	entries := c.reg.byTag(tag)
	c.mu.Unlock()
	return c.dismissAll(entries, result, ReasonTag)
}

// CloseAll dismisses every overlay of this controller.
func (c *Controller) CloseAll(result any) int {
	c.mu.Lock()
	entries := c.reg.all()
	c.mu.Unlock()
	return c.dismissAll(entries, result, ReasonAll)
}

func (c *Controller) dismissAll(entries []*entry, result any, reason Reason) int {
	closed := 0
	for _, e := range entries {
		if c.dismissEntry(e, result, reason) {
			closed++
		}
	}
	return closed
}

// IsOpen reports whether the overlay with id is registered and not closing.
func (c *Controller) IsOpen(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.reg.lookup(id)
	return ok && e.open()
}

// GetByID returns the handle of an open overlay.
func (c *Controller) GetByID(id string) (Handle, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.reg.lookup(id)
	if !ok || !e.open() {
		return Handle{}, false
	}
	return e.handle, true
}

// GetByTag returns the handles of the open overlays carrying tag, oldest first.
func (c *Controller) GetByTag(tag string) []Handle {
	c.mu.Lock()
	defer c.mu.Unlock()
	return openHandles(c.reg.byTag(tag))
}

// Handles returns the handles of all open overlays, oldest first.
func (c *Controller) Handles() []Handle {
	c.mu.Lock()
	defer c.mu.Unlock()
	return openHandles(c.reg.inCategory(c.category))
}

// ActiveCount returns the number of open overlays.
func (c *Controller) ActiveCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, e := range c.reg.entries {
		if e.open() {
			n++
		}
	}
	return n
}

// State returns the lifecycle state of a registered overlay. An overlay whose
// dismissal has started is no longer registered, even while its exit
// transition runs, so State reports false for it.
func (c *Controller) State(id string) (State, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.reg.lookup(id)
	if !ok {
		return StateDisposed, false
	}
	return e.state, true
}

// Dispose force-dismisses every overlay with a nil result, skipping exit
// transitions, and detaches the controller. Show fails with
// ErrNotInitialized until Init is called again.
func (c *Controller) Dispose() {
	c.mu.Lock()
	if !c.initialized {
		c.mu.Unlock()
		return
	}
	c.initialized = false
	entries := c.reg.all()
	for e := range c.exiting {
		entries = append(entries, e)
	}
	sortBySeq(entries)
	c.pending = nil
	cfg := c.cfg
	c.mu.Unlock()

	for _, e := range entries {
		c.forceDismiss(e)
	}

	c.mu.Lock()
	c.reg.clear()
	clear(c.exiting)
	c.mu.Unlock()
	cfg.logger.Debug("overlay controller disposed", "category", c.category.String(), "dismissed", len(entries))
}

// resolveID must be called with mu held.
func (c *Controller) resolveID(id string) (string, error) {
	if id != "" {
		if _, exists := c.reg.lookup(id); exists {
			return "", fmt.Errorf("show %s %s: %w", c.category, id, ErrDuplicateID)
		}
		return id, nil
	}
	for i := 0; i < maxIDAttempts; i++ {
		generated := c.cfg.ids()
		if generated == "" {
			continue
		}
		if _, exists := c.reg.lookup(generated); !exists {
			return generated, nil
		}
	}
	return "", fmt.Errorf("show %s: generated ids keep colliding: %w", c.category, ErrDuplicateID)
}

// current must be called with mu held.
func (c *Controller) current(e *entry) bool {
	cur, ok := c.reg.lookup(e.handle.id)
	return ok && cur == e
}

// insert hands e to the host. It reports whether the entrance should start.
// With deferOnUnavailable, an unready host queues e instead of failing.
func (c *Controller) insert(e *entry, deferOnUnavailable bool) (bool, error) {
	c.mu.Lock()
	if !e.open() || !c.current(e) {
		c.mu.Unlock()
		return false, nil
	}
	host := c.host
	cfg := c.cfg
	c.mu.Unlock()

	token, err := host.Insert(e.layer)
	if err != nil {
		if deferOnUnavailable && errors.Is(err, ErrHostUnavailable) {
			cfg.logger.Debug("overlay insert deferred", "category", c.category.String(), "id", e.handle.id)
			c.deferInsert(e, false)
			return false, nil
		}
		return false, err
	}
	tr := c.buildTransition(cfg, e)

	c.mu.Lock()
	if !e.open() || !c.current(e) {
		// closed while the host was inserting it
		c.mu.Unlock()
		c.removeToken(cfg, host, token, e.handle)
		return false, nil
	}
	e.token = token
	e.inserted = true
	e.transition = tr
	if e.duration > 0 {
		e.timer = time.AfterFunc(e.duration, func() {
			c.dismissEntry(e, nil, ReasonTimeout)
		})
	}
	c.mu.Unlock()
	return true, nil
}

func (c *Controller) buildTransition(cfg settings, e *entry) (tr Transition) {
	defer func() {
		if r := recover(); r != nil {
			cfg.logger.Error("overlay transition factory panicked", "category", c.category.String(), "id", e.handle.id, "panic", fmt.Sprint(r))
			tr = immediate{}
		}
	}()
	tr = cfg.transitions(e.layer)
	if tr == nil {
		tr = immediate{}
	}
	return tr
}

// deferInsert queues e for the next ready signal. With recheck, a host that
// turned ready in the meantime is flushed right away.
func (c *Controller) deferInsert(e *entry, recheck bool) {
	c.mu.Lock()
	if !e.open() || !c.current(e) {
		c.mu.Unlock()
		return
	}
	for _, p := range c.pending {
		if p == e {
			c.mu.Unlock()
			return
		}
	}
	c.pending = append(c.pending, e)
	host := c.host
	c.mu.Unlock()

	if recheck && host.IsReady() {
		c.flush()
	}
}

func (c *Controller) hostReady(gen uint64) {
	c.mu.Lock()
	stale := !c.initialized || c.generation != gen
	c.mu.Unlock()
	if stale {
		return
	}
	c.flush()
}

func (c *Controller) flush() {
	c.mu.Lock()
	if !c.initialized || len(c.pending) == 0 {
		c.mu.Unlock()
		return
	}
	host := c.host
	c.mu.Unlock()

	if !host.IsReady() {
		return
	}

	c.mu.Lock()
	queued := c.pending
	c.pending = nil
	cfg := c.cfg
	c.mu.Unlock()

	for _, e := range queued {
		started, err := c.insert(e, true)
		if err != nil {
			cfg.logger.Error("overlay insert failed", "category", c.category.String(), "id", e.handle.id, "error", err)
			c.dismissEntry(e, nil, ReasonHostError)
			continue
		}
		if started {
			c.enter(e)
		}
	}
}

func (c *Controller) dropPending(e *entry) {
	for i, p := range c.pending {
		if p == e {
			c.pending = append(c.pending[:i], c.pending[i+1:]...)
			return
		}
	}
}

// discard unregisters an entry that never made it onto the host.
func (c *Controller) discard(e *entry) {
	c.mu.Lock()
	if c.current(e) {
		c.reg.unregister(e.handle.id)
	}
	e.dismissing = true
	e.state = StateDisposed
	c.dropPending(e)
	c.mu.Unlock()
	if e.handle.done != nil {
		e.handle.done.resolve(nil)
	}
}

func (c *Controller) enter(e *entry) {
	c.mu.Lock()
	tr := e.transition
	cfg := c.cfg
	c.mu.Unlock()
	if tr == nil {
		c.markVisible(e)
		return
	}

	done := c.phase(cfg, e, "enter", tr.Enter)
	if finished(done) {
		c.markVisible(e)
		return
	}
	go func() {
		c.await(cfg, done, e, "enter")
		c.markVisible(e)
	}()
}

func (c *Controller) markVisible(e *entry) {
	c.mu.Lock()
	if e.state != StateEntering || !e.open() {
		c.mu.Unlock()
		return
	}
	e.state = StateVisible
	cfg := c.cfg
	c.mu.Unlock()
	c.emit(cfg, Event{Type: EventVisible, Handle: e.handle, At: cfg.now()})
}

// dismissEntry is the single dismiss routine every close path goes through.
// The dismissing flag, set under mu, makes sure only one caller wins. The
// winner unregisters the entry in the same critical section, so the id is
// free again and the completion resolves only after it is gone. The exit
// transition then only keeps the host layer alive.
func (c *Controller) dismissEntry(e *entry, result any, reason Reason) bool {
	c.mu.Lock()
	if !c.current(e) || !e.open() {
		c.mu.Unlock()
		return false
	}
	e.dismissing = true
	e.state = StateExiting
	e.reason = reason
	e.result = result
	if e.timer != nil {
		e.timer.Stop()
	}
	c.dropPending(e)
	c.reg.unregister(e.handle.id)
	c.exiting[e] = struct{}{}
	tr := e.transition
	inserted := e.inserted
	cfg := c.cfg
	c.mu.Unlock()

	cfg.logger.Debug("overlay dismissing", "category", c.category.String(), "id", e.handle.id, "reason", reason.String())
	if e.handle.done != nil {
		e.handle.done.resolve(result)
	}

	var done <-chan struct{}
	if inserted && tr != nil {
		done = c.phase(cfg, e, "exit", tr.Exit)
	}
	if finished(done) {
		c.teardown(e)
		return true
	}
	go func() {
		c.await(cfg, done, e, "exit")
		c.teardown(e)
	}()
	return true
}

// forceDismiss tears e down without waiting for its exit. An entry some close
// path already won keeps that path's reason and result.
func (c *Controller) forceDismiss(e *entry) {
	c.mu.Lock()
	if e.state == StateDisposed {
		c.mu.Unlock()
		return
	}
	if !e.dismissing {
		e.dismissing = true
		e.reason = ReasonDispose
		e.result = nil
		if e.timer != nil {
			e.timer.Stop()
		}
		if c.current(e) {
			c.reg.unregister(e.handle.id)
		}
	}
	e.state = StateExiting
	result := e.result
	c.mu.Unlock()

	if e.handle.done != nil {
		e.handle.done.resolve(result)
	}
	c.teardown(e)
}

// teardown takes e off the host and reports it dismissed. It runs at most
// once per entry; later calls (a slow exit racing Dispose) are no-ops.
func (c *Controller) teardown(e *entry) {
	c.mu.Lock()
	if e.state == StateDisposed {
		c.mu.Unlock()
		return
	}
	e.state = StateDisposed
	delete(c.exiting, e)
	token, inserted := e.token, e.inserted
	reason, result := e.reason, e.result
	host := c.host
	cfg := c.cfg
	c.mu.Unlock()

	if inserted {
		c.removeToken(cfg, host, token, e.handle)
	}
	c.emit(cfg, Event{Type: EventDismissed, Handle: e.handle, Reason: reason, Result: result, At: cfg.now()})
}

func (c *Controller) removeToken(cfg settings, host ViewHost, token Token, h Handle) {
	defer func() {
		if r := recover(); r != nil {
			cfg.logger.Error("overlay host remove panicked", "category", c.category.String(), "id", h.id, "panic", fmt.Sprint(r))
		}
	}()
	host.Remove(token)
}

// phase starts one transition phase. A panicking transition degrades to an
// immediate one.
func (c *Controller) phase(cfg settings, e *entry, name string, start func() <-chan struct{}) (done <-chan struct{}) {
	defer func() {
		if r := recover(); r != nil {
			cfg.logger.Error("overlay transition panicked", "category", c.category.String(), "id", e.handle.id, "phase", name, "panic", fmt.Sprint(r))
			done = nil
		}
	}()
	return start()
}

func (c *Controller) await(cfg settings, done <-chan struct{}, e *entry, name string) {
	timer := time.NewTimer(cfg.transitionTimeout)
	defer timer.Stop()
	select {
	case <-done:
	case <-timer.C:
		cfg.logger.Warn("overlay transition timed out", "category", c.category.String(), "id", e.handle.id, "phase", name, "timeout", cfg.transitionTimeout.String())
	}
}

func (c *Controller) emit(cfg settings, ev Event) {
	for _, o := range cfg.observers {
		c.notify(cfg, o, ev)
	}
}

func (c *Controller) notify(cfg settings, o Observer, ev Event) {
	defer func() {
		if r := recover(); r != nil {
			cfg.logger.Error("overlay observer panicked", "category", c.category.String(), "event", ev.Type.String(), "panic", fmt.Sprint(r))
		}
	}()
	o.OnEvent(ev)
}

func openHandles(entries []*entry) []Handle {
	out := make([]Handle, 0, len(entries))
	for _, e := range entries {
		if e.open() {
			out = append(out, e.handle)
		}
	}
	return out
}

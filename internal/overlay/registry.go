package overlay

import (
	"fmt"
	"sort"
	"time"
)

// State is the lifecycle phase of an entry.
type State int

const (
	StateEntering State = iota
	StateVisible
	StateExiting
	StateDisposed
)

func (s State) String() string {
	switch s {
	case StateEntering:
		return "entering"
	case StateVisible:
		return "visible"
	case StateExiting:
		return "exiting"
	case StateDisposed:
		return "disposed"
	default:
		return "unknown"
	}
}

// entry is the controller-private record of one overlay. seq, handle, layer
// and duration are fixed at creation; the rest is guarded by the owning
// controller's mutex. reason and result are those of the close path that won.
type entry struct {
	seq        uint64
	handle     Handle
	layer      Layer
	duration   time.Duration
	state      State
	token      Token
	inserted   bool
	timer      *time.Timer
	transition Transition
	dismissing bool
	reason     Reason
	result     any
}

func (e *entry) open() bool {
	return !e.dismissing && e.state != StateDisposed
}

// registry maps ids to entries with secondary tag and category indices.
// It is not safe for concurrent use; the controller serializes access.
type registry struct {
	entries    map[string]*entry
	byTagIdx   map[string]map[string]struct{}
	byCategory map[Category]map[string]struct{}
}

func newRegistry() *registry {
	return &registry{
		entries:    make(map[string]*entry),
		byTagIdx:   make(map[string]map[string]struct{}),
		byCategory: make(map[Category]map[string]struct{}),
	}
}

func (r *registry) register(e *entry) error {
	id := e.handle.id
	if _, exists := r.entries[id]; exists {
		return fmt.Errorf("register %s: %w", id, ErrDuplicateID)
	}
	r.entries[id] = e
	if tag := e.handle.tag; tag != "" {
		addIndex(r.byTagIdx, tag, id)
	}
	addIndex(r.byCategory, e.handle.category, id)
	return nil
}

func (r *registry) unregister(id string) (*entry, bool) {
	e, ok := r.entries[id]
	if !ok {
		return nil, false
	}
	delete(r.entries, id)
	if tag := e.handle.tag; tag != "" {
		removeIndex(r.byTagIdx, tag, id)
	}
	removeIndex(r.byCategory, e.handle.category, id)
	return e, true
}

func (r *registry) lookup(id string) (*entry, bool) {
	e, ok := r.entries[id]
	return e, ok
}

// byTag returns a snapshot of the entries carrying tag, oldest first.
func (r *registry) byTag(tag string) []*entry {
	return r.collect(r.byTagIdx[tag])
}

// inCategory returns a snapshot of the entries of category c, oldest first.
func (r *registry) inCategory(c Category) []*entry {
	return r.collect(r.byCategory[c])
}

// all returns a snapshot of every entry, oldest first.
func (r *registry) all() []*entry {
	out := make([]*entry, 0, len(r.entries))
	for _, e := range r.entries {
		out = append(out, e)
	}
	sortBySeq(out)
	return out
}

func (r *registry) count() int {
	return len(r.entries)
}

func (r *registry) clear() {
	r.entries = make(map[string]*entry)
	r.byTagIdx = make(map[string]map[string]struct{})
	r.byCategory = make(map[Category]map[string]struct{})
}

func (r *registry) collect(ids map[string]struct{}) []*entry {
	out := make([]*entry, 0, len(ids))
	for id := range ids {
		if e, ok := r.entries[id]; ok {
			out = append(out, e)
		}
	}
	sortBySeq(out)
	return out
}

func sortBySeq(entries []*entry) {
	sort.Slice(entries, func(i, j int) bool { return entries[i].seq < entries[j].seq })
}

func addIndex[K comparable](idx map[K]map[string]struct{}, key K, id string) {
	set, ok := idx[key]
	if !ok {
		set = make(map[string]struct{})
		idx[key] = set
	}
	set[id] = struct{}{}
}

func removeIndex[K comparable](idx map[K]map[string]struct{}, key K, id string) {
	set, ok := idx[key]
	if !ok {
		return
	}
	delete(set, id)
	if len(set) == 0 {
		delete(idx, key)
	}
}

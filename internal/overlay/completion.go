package overlay

import "sync"

// completion is a resolve-once cell. The first resolve wins; later calls are
// no-ops.
type completion struct {
	once  sync.Once
	done  chan struct{}
	value any
}

func newCompletion() *completion {
	return &completion{done: make(chan struct{})}
}

// resolve stores v and releases waiters. It reports whether this call was the
// one that resolved the cell.
func (c *completion) resolve(v any) bool {
	resolved := false
	c.once.Do(func() {
		c.value = v
		close(c.done)
		resolved = true
	})
	return resolved
}

// result returns the stored value once resolved.
func (c *completion) result() (any, bool) {
	select {
	case <-c.done:
		return c.value, true
	default:
		return nil, false
	}
}

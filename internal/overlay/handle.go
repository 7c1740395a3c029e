package overlay

import (
	"context"
	"fmt"
	"time"
)

// Handle identifies one presented overlay. It is a lookup key only and holds
// no controller state. Handles returned by ShowAsync additionally carry a
// completion that resolves with the value given to whichever close path wins.
type Handle struct {
	id       string
	tag      string
	category Category
	openedAt time.Time
	done     *completion
}

// ID returns the identifier, unique within the handle's controller.
func (h Handle) ID() string { return h.id }

// Tag returns the grouping key, or "" when the overlay has none.
func (h Handle) Tag() string { return h.tag }

// Category returns the category the overlay was shown in.
func (h Handle) Category() Category { return h.category }

// OpenedAt returns the time Show was called.
func (h Handle) OpenedAt() time.Time { return h.openedAt }

// IsZero reports whether h is the zero Handle.
func (h Handle) IsZero() bool { return h.id == "" }

// Equal compares handles by id.
func (h Handle) Equal(other Handle) bool { return h.id == other.id }

// IsAsync reports whether h carries a completion.
func (h Handle) IsAsync() bool { return h.done != nil }

// Done returns a channel closed when the completion resolves. It returns nil
// (blocks forever in a select) for handles without a completion.
func (h Handle) Done() <-chan struct{} {
	if h.done == nil {
		return nil
	}
	return h.done.done
}

// Result returns the resolved value and true, or nil and false while the
// overlay is still open or when h has no completion.
func (h Handle) Result() (any, bool) {
	if h.done == nil {
		return nil, false
	}
	return h.done.result()
}

// Wait blocks until the completion resolves or ctx is done.
func (h Handle) Wait(ctx context.Context) (any, error) {
	if h.done == nil {
		return nil, fmt.Errorf("wait %s %s: %w", h.category, h.id, ErrNotAsync)
	}
	select {
	case <-h.done.done:
		return h.done.value, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (h Handle) String() string {
	if h.tag == "" {
		return fmt.Sprintf("%s/%s", h.category, h.id)
	}
	return fmt.Sprintf("%s/%s[%s]", h.category, h.id, h.tag)
}

// Await waits for h and converts its result to T. A nil result (an overlay
// dismissed without a value) yields the zero T.
func Await[T any](ctx context.Context, h Handle) (T, error) {
	var zero T
	v, err := h.Wait(ctx)
	if err != nil {
		return zero, err
	}
	if v == nil {
		return zero, nil
	}
	typed, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("await %s %s: got %T: %w", h.category, h.id, v, ErrResultType)
	}
	return typed, nil
}

package overlay

import "errors"

var (
	// ErrNotInitialized indicates an operation on a controller that has no host,
	// either because Init was never called or because Dispose ran.
	ErrNotInitialized = errors.New("overlay controller not initialized")
	// ErrAlreadyInitialized indicates Init was called twice without Dispose.
	ErrAlreadyInitialized = errors.New("overlay controller already initialized")
	// ErrHostUnavailable indicates the view host cannot accept an insertion.
	ErrHostUnavailable = errors.New("overlay view host unavailable")
	// ErrDuplicateID indicates a caller-supplied id that is already active.
	ErrDuplicateID = errors.New("overlay id already active")
	// ErrNilHost indicates Init was called without a view host.
	ErrNilHost = errors.New("overlay view host is nil")
	// ErrNotAsync indicates a wait on a handle that has no completion slot.
	ErrNotAsync = errors.New("overlay handle has no completion")
	// ErrResultType indicates a completion value of an unexpected type.
	ErrResultType = errors.New("overlay result has unexpected type")
)

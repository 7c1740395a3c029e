package journal

import "errors"

var (
	// ErrInvalidFilter indicates a filter naming an unknown category or event.
	ErrInvalidFilter = errors.New("invalid journal filter")
	// ErrInvalidRetention indicates a negative prune age.
	ErrInvalidRetention = errors.New("invalid retention")
	// ErrClosed indicates use of a journal after Close.
	ErrClosed = errors.New("journal closed")
)

var validEvents = map[string]bool{
	"shown":     true,
	"visible":   true,
	"dismissed": true,
}

package metadata

import "github.com/cockroachdb/errors"

var (
	// ErrMalformed is returned for output that is not a usable XML document.
	ErrMalformed = errors.New("malformed metadata document")
	// ErrEmptyOutput is returned when an agent printed nothing.
	ErrEmptyOutput = errors.New("agent produced no metadata")
	// ErrOutputTooLarge is returned when agent output exceeds the capture limit.
	ErrOutputTooLarge = errors.New("agent metadata exceeds size limit")
	// ErrTimeout is returned when an agent does not finish within the extraction timeout.
	ErrTimeout = errors.New("agent metadata extraction timed out")
)

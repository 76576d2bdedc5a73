package slots

import "errors"

// Feed error definitions using sentinel errors pattern
var (
	// ErrRequestFailed marks transport-level failures (connect, timeout).
	ErrRequestFailed = errors.New("slot feed request failed")

	// ErrUnexpectedStatus marks non-200 responses from the feed.
	ErrUnexpectedStatus = errors.New("slot feed returned unexpected status")

	// ErrMalformedResponse marks bodies that do not decode as the
	// expected envelope.
	ErrMalformedResponse = errors.New("slot feed response malformed")
)

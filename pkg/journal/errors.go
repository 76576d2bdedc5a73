package journal

import "errors"

// ErrAttemptNotFound indicates no attempt matches the given UUID
var ErrAttemptNotFound = errors.New("booking attempt not found")

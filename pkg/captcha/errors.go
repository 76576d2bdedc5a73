package captcha

import "errors"

var (
	// ErrNotConfigured indicates a solver was requested without the
	// credentials it needs.
	ErrNotConfigured = errors.New("captcha solver not configured")

	// ErrServiceError is a terminal answer from the solving service.
	ErrServiceError = errors.New("captcha service error")

	// ErrTimeout means no solution arrived within the polling budget.
	ErrTimeout = errors.New("captcha solving timed out")
)

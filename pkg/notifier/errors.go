package notifier

import "errors"

// Notification error definitions using sentinel errors pattern
var (
	// ErrChannelMisconfigured marks a channel missing its credentials.
	ErrChannelMisconfigured = errors.New("notification channel misconfigured")

	// ErrDeliveryFailed marks a send the channel did not confirm.
	ErrDeliveryFailed = errors.New("notification delivery failed")
)

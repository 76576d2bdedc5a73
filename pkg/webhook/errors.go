package webhook

import "errors"

var (
	// ErrWebhookMisconfigured indicates the channel is enabled but has no URL.
	ErrWebhookMisconfigured = errors.New("webhook misconfigured")

	// ErrWebhookDelivery indicates all delivery attempts failed.
	ErrWebhookDelivery = errors.New("webhook delivery failed")
)

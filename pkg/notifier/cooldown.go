package notifier

import (
	"sync"
	"time"
)

// Cooldown throttles slot alerts to at most one per window, a
// token-bucket of one over wall-clock time. The bucket refills only
// when MarkDelivered records a confirmed send: an attempted send that
// fails leaves the window open, so the next cycle may try again.
type Cooldown struct {
	mu     sync.Mutex
	window time.Duration
	last   time.Time
}

// NewCooldown creates a cooldown with the given window. A zero or
// negative window disables throttling.
func NewCooldown(window time.Duration) *Cooldown {
	return &Cooldown{window: window}
}

// Ready reports whether the window has elapsed since the last
// confirmed delivery.
func (c *Cooldown) Ready() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.window <= 0 {
		return true
	}
	if c.last.IsZero() {
		return true
	}
	return time.Since(c.last) >= c.window
}

// MarkDelivered records a confirmed delivery and closes the window.
func (c *Cooldown) MarkDelivered() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.last = time.Now()
}

// Remaining returns how long until the next alert may go out. Zero
// means an alert is allowed now.
func (c *Cooldown) Remaining() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.window <= 0 || c.last.IsZero() {
		return 0
	}

	remaining := c.window - time.Since(c.last)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// LastDelivery returns the time of the last confirmed delivery, zero
// when nothing has been delivered yet.
func (c *Cooldown) LastDelivery() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.last
}

package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"visawatch/pkg/config"
	"visawatch/pkg/logger"

	"go.uber.org/zap"
)

// Client posts alerts to a generic team-chat style JSON webhook. It is
// the optional secondary channel next to Telegram.
type Client struct {
	url        string
	httpClient *http.Client
	maxRetries int
	retryDelay time.Duration
	enabled    bool
}

// Message is the body posted to the webhook.
type Message struct {
	Text   string `json:"text"`
	Source string `json:"source"`
	SentAt string `json:"sent_at"`
}

// NewClient creates a webhook client from configuration.
func NewClient(cfg *config.WebhookConfig) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10
	}
	maxRetries := cfg.MaxRetries
	if maxRetries < 0 {
		maxRetries = 3
	}
	retryDelay := cfg.RetryDelay
	if retryDelay <= 0 {
		retryDelay = 2
	}

	return &Client{
		url: cfg.URL,
		httpClient: &http.Client{
			Timeout: time.Duration(timeout) * time.Second,
		},
		maxRetries: maxRetries,
		retryDelay: time.Duration(retryDelay) * time.Second,
		enabled:    cfg.Enabled,
	}
}

// Name identifies the channel in logs and the journal.
func (c *Client) Name() string {
	return "webhook"
}

// SendMessage delivers one message, retrying transient failures. The
// retry wait honors context cancellation.
func (c *Client) SendMessage(ctx context.Context, text string) error {
	if !c.enabled {
		logger.Debug("Webhook notifications disabled")
		return nil
	}
	if c.url == "" {
		return fmt.Errorf("%w: url missing", ErrWebhookMisconfigured)
	}

	msg := &Message{
		Text:   text,
		Source: "visawatch",
		SentAt: time.Now().Format(time.RFC3339),
	}

	var lastError error

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(c.retryDelay):
			}
		}

		err := c.doSend(ctx, msg)
		if err == nil {
			if attempt > 0 {
				logger.Info("Webhook delivery succeeded after retry",
					zap.Int("attempt", attempt+1))
			}
			return nil
		}

		lastError = err
		if attempt < c.maxRetries {
			logger.Warn("Webhook delivery failed, will retry",
				zap.Duration("retry_delay", c.retryDelay),
				zap.Int("attempt", attempt+1),
				zap.Int("max_retries", c.maxRetries),
				zap.Error(err))
		}
	}

	return fmt.Errorf("%w after %d retries: %v", ErrWebhookDelivery, c.maxRetries, lastError)
}

// doSend performs one POST.
func (c *Client) doSend(ctx context.Context, msg *Message) error {
	jsonData, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.url, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("webhook returned %d: %s", resp.StatusCode, string(respBody))
	}

	return nil
}

// TestConnection posts a probe message.
func (c *Client) TestConnection(ctx context.Context) error {
	if !c.enabled {
		return fmt.Errorf("webhook notifications are disabled")
	}
	return c.SendMessage(ctx, "Slot monitor webhook test: configuration is working.")
}

package slots

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"visawatch/pkg/config"
	"visawatch/pkg/logger"

	"go.uber.org/zap"
)

// feedHeaders is the browser-identifying header set the feed expects.
// The endpoint serves the vendor's browser extension and rejects plain
// HTTP clients, so every request carries the extension's fingerprint.
var feedHeaders = map[string]string{
	"accept":             "*/*",
	"accept-language":    "en-US,en;q=0.9,ja;q=0.8,ar;q=0.7,es;q=0.6,zh-CN;q=0.5,zh;q=0.4,de;q=0.3",
	"extversion":         "4.6.5.1",
	"origin":             "chrome-extension://beepaenfejnphdgnkmccjcfiieihhogl",
	"priority":           "u=1, i",
	"sec-ch-ua":          `"Opera GX";v="120", "Not-A.Brand";v="8", "Chromium";v="135"`,
	"sec-ch-ua-mobile":   "?0",
	"sec-ch-ua-platform": `"macOS"`,
	"sec-fetch-dest":     "empty",
	"sec-fetch-mode":     "cors",
	"sec-fetch-site":     "cross-site",
	"user-agent":         "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/135.0.0.0 Safari/537.36 OPR/120.0.0.0",
}

// feedResponse is the vendor envelope. A missing slotDetails key decodes
// to nil, which downstream treats as zero slots rather than a failure.
type feedResponse struct {
	SlotDetails []SlotDetail `json:"slotDetails"`
}

// Client queries the slot availability feed.
type Client struct {
	cfg        *config.SlotsConfig
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewClient creates a feed client. The limiter spreads requests so the
// client never exceeds the configured budget per window even when the
// caller polls aggressively.
func NewClient(cfg *config.SlotsConfig) *Client {
	var limiter *rate.Limiter
	if cfg.RateLimit > 0 && cfg.RateWindow > 0 {
		window := time.Duration(cfg.RateWindow) * time.Second
		limiter = rate.NewLimiter(rate.Every(window/time.Duration(cfg.RateLimit)), cfg.RateLimit)
	}

	return &Client{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.Timeout) * time.Second,
		},
		limiter: limiter,
	}
}

// Fetch performs one feed query and returns the raw rows. Transport
// failures, non-200 statuses and undecodable bodies come back as
// sentinel-wrapped errors so the caller can degrade to an empty cycle.
func (c *Client) Fetch(ctx context.Context) ([]SlotDetail, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrRequestFailed, err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.Endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	for key, value := range feedHeaders {
		req.Header.Set(key, value)
	}
	req.Header.Set("x-api-key", c.cfg.APIKey)

	if c.cfg.Debug {
		logger.Debug("Querying slot feed", zap.String("endpoint", c.cfg.Endpoint))
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode)
	}

	var payload feedResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	return payload.SlotDetails, nil
}

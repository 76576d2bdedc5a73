package captcha

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"visawatch/pkg/config"
	"visawatch/pkg/logger"

	"go.uber.org/zap"
)

// Solver produces a g-recaptcha-response token for a page.
type Solver interface {
	SolveRecaptcha(ctx context.Context, siteKey, pageURL string) (string, error)
}

const (
	twoCaptchaSubmitURL = "http://2captcha.com/in.php"
	twoCaptchaResultURL = "http://2captcha.com/res.php"

	// notReady is the service's "keep polling" answer.
	notReady = "CAPCHA_NOT_READY"
)

// TwoCaptchaClient solves reCAPTCHA v2 through the paid 2captcha
// service: submit the site key, then poll until a worker answers.
type TwoCaptchaClient struct {
	apiKey     string
	submitURL  string
	resultURL  string
	httpClient *http.Client

	pollInterval time.Duration
	maxPolls     int
}

// apiResponse is the service envelope for both endpoints. On success
// Request carries the captcha id (submit) or the token (result).
type apiResponse struct {
	Status    int    `json:"status"`
	Request   string `json:"request"`
	ErrorText string `json:"error_text,omitempty"`
}

// NewTwoCaptchaClient creates a 2captcha client from configuration.
func NewTwoCaptchaClient(cfg *config.CaptchaConfig) *TwoCaptchaClient {
	pollInterval := time.Duration(cfg.PollInterval) * time.Second
	if pollInterval <= 0 {
		pollInterval = 10 * time.Second
	}
	maxPolls := cfg.MaxPolls
	if maxPolls <= 0 {
		maxPolls = 30
	}

	return &TwoCaptchaClient{
		apiKey:       cfg.APIKey,
		submitURL:    twoCaptchaSubmitURL,
		resultURL:    twoCaptchaResultURL,
		httpClient:   &http.Client{Timeout: 30 * time.Second},
		pollInterval: pollInterval,
		maxPolls:     maxPolls,
	}
}

// SolveRecaptcha submits the challenge and polls for the worker's
// answer. The returned string is the g-recaptcha-response token.
func (c *TwoCaptchaClient) SolveRecaptcha(ctx context.Context, siteKey, pageURL string) (string, error) {
	if c.apiKey == "" {
		return "", fmt.Errorf("%w: missing 2captcha api key", ErrNotConfigured)
	}

	captchaID, err := c.submit(ctx, siteKey, pageURL)
	if err != nil {
		return "", err
	}

	logger.Info("CAPTCHA submitted for solving",
		zap.String("captcha_id", captchaID),
		zap.Duration("poll_interval", c.pollInterval))

	return c.waitForSolution(ctx, captchaID)
}

func (c *TwoCaptchaClient) submit(ctx context.Context, siteKey, pageURL string) (string, error) {
	form := url.Values{}
	form.Set("key", c.apiKey)
	form.Set("method", "userrecaptcha")
	form.Set("googlekey", siteKey)
	form.Set("pageurl", pageURL)
	form.Set("json", "1")

	req, err := http.NewRequestWithContext(ctx, "POST", c.submitURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("failed to create submit request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	result, err := c.do(req)
	if err != nil {
		return "", fmt.Errorf("captcha submit failed: %w", err)
	}

	if result.Status != 1 {
		return "", fmt.Errorf("%w: submit rejected: %s", ErrServiceError, result.message())
	}
	return result.Request, nil
}

func (c *TwoCaptchaClient) waitForSolution(ctx context.Context, captchaID string) (string, error) {
	for poll := 0; poll < c.maxPolls; poll++ {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(c.pollInterval):
		}

		result, err := c.checkResult(ctx, captchaID)
		if err != nil {
			return "", err
		}

		if result.Status == 1 {
			logger.Info("CAPTCHA solved", zap.String("captcha_id", captchaID), zap.Int("polls", poll+1))
			return result.Request, nil
		}

		if result.Request != notReady {
			return "", fmt.Errorf("%w: %s", ErrServiceError, result.message())
		}

		logger.Debug("CAPTCHA not ready yet",
			zap.String("captcha_id", captchaID),
			zap.Int("poll", poll+1),
			zap.Int("max_polls", c.maxPolls))
	}

	return "", fmt.Errorf("%w after %d polls", ErrTimeout, c.maxPolls)
}

func (c *TwoCaptchaClient) checkResult(ctx context.Context, captchaID string) (*apiResponse, error) {
	params := url.Values{}
	params.Set("key", c.apiKey)
	params.Set("action", "get")
	params.Set("id", captchaID)
	params.Set("json", "1")

	req, err := http.NewRequestWithContext(ctx, "GET", c.resultURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create result request: %w", err)
	}

	result, err := c.do(req)
	if err != nil {
		return nil, fmt.Errorf("captcha result check failed: %w", err)
	}
	return result, nil
}

func (c *TwoCaptchaClient) do(req *http.Request) (*apiResponse, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("service returned status %d", resp.StatusCode)
	}

	var result apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return &result, nil
}

func (r *apiResponse) message() string {
	if r.ErrorText != "" {
		return r.ErrorText
	}
	return r.Request
}

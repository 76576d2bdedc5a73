package captcha

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"visawatch/pkg/config"
	"visawatch/pkg/logger"

	"go.uber.org/zap"
)

const witSpeechURL = "https://api.wit.ai/speech"

// WitClient transcribes reCAPTCHA audio challenges through the Wit.ai
// speech API.
type WitClient struct {
	apiKey     string
	endpoint   string
	httpClient *http.Client
}

// NewWitClient creates a Wit.ai speech client from configuration.
func NewWitClient(cfg *config.CaptchaConfig) *WitClient {
	return &WitClient{
		apiKey:     cfg.APIKey,
		endpoint:   witSpeechURL,
		httpClient: &http.Client{Timeout: 60 * time.Second},
	}
}

// RecognizeSpeech sends raw audio bytes and returns the transcript.
// contentType should match the audio encoding, e.g. "audio/wav".
func (c *WitClient) RecognizeSpeech(ctx context.Context, audio []byte, contentType string) (string, error) {
	if c.apiKey == "" {
		return "", fmt.Errorf("%w: missing wit.ai key", ErrNotConfigured)
	}
	if contentType == "" {
		contentType = "audio/wav"
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.endpoint, bytes.NewReader(audio))
	if err != nil {
		return "", fmt.Errorf("failed to create speech request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", contentType)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("speech request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read speech response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: speech api returned %d: %s",
			ErrServiceError, resp.StatusCode, string(body))
	}

	text, err := extractTranscript(body)
	if err != nil {
		return "", err
	}

	logger.Debug("Audio transcribed", zap.String("text", text))
	return text, nil
}

// extractTranscript handles both envelope generations: the current
// {"text": …} and the legacy {"_text": …}. The endpoint may also
// stream several JSON objects; the last complete one wins.
func extractTranscript(body []byte) (string, error) {
	type speechResponse struct {
		Text       string `json:"text"`
		LegacyText string `json:"_text"`
	}

	decoder := json.NewDecoder(bytes.NewReader(body))
	var last speechResponse
	seen := false
	for {
		var chunk speechResponse
		if err := decoder.Decode(&chunk); err != nil {
			break
		}
		last = chunk
		seen = true
	}
	if !seen {
		return "", fmt.Errorf("%w: unparseable speech response", ErrServiceError)
	}

	text := strings.TrimSpace(last.Text)
	if text == "" {
		text = strings.TrimSpace(last.LegacyText)
	}
	if text == "" {
		return "", fmt.Errorf("%w: empty transcript", ErrServiceError)
	}
	return text, nil
}

// NewSolver picks the token-solving service for the configured
// provider. A nil solver with nil error means CAPTCHA solving is
// switched off.
func NewSolver(cfg *config.CaptchaConfig) (Solver, error) {
	switch cfg.Provider {
	case "", "none":
		return nil, nil
	case "2captcha":
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("%w: 2captcha requires an api key", ErrNotConfigured)
		}
		return NewTwoCaptchaClient(cfg), nil
	case "witai":
		// Wit.ai only transcribes audio; there is no token service to
		// build here. Callers wire NewWitClient in as the booking bot's
		// audio transcriber instead.
		return nil, nil
	default:
		return nil, fmt.Errorf("%w: unknown provider %q", ErrNotConfigured, cfg.Provider)
	}
}

package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"visawatch/pkg/config"
	"visawatch/pkg/logger"

	"go.uber.org/zap"
)

// Notifier delivers one formatted message to a channel.
type Notifier interface {
	Name() string
	SendMessage(ctx context.Context, message string) error
}

// TelegramNotifier handles Telegram notifications
type TelegramNotifier struct {
	config     *config.TelegramConfig
	httpClient *http.Client
}

// TelegramMessage represents a message to be sent via Telegram
type TelegramMessage struct {
	ChatID    string `json:"chat_id"`
	Text      string `json:"text"`
	ParseMode string `json:"parse_mode,omitempty"`
}

// TelegramResponse represents Telegram API response
type TelegramResponse struct {
	OK          bool   `json:"ok"`
	Description string `json:"description,omitempty"`
	ErrorCode   int    `json:"error_code,omitempty"`
}

// NewTelegramNotifier creates a new Telegram notifier
func NewTelegramNotifier(cfg *config.TelegramConfig) *TelegramNotifier {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10
	}

	return &TelegramNotifier{
		config: cfg,
		httpClient: &http.Client{
			Timeout: time.Duration(timeout) * time.Second,
		},
	}
}

// Name identifies the channel in logs and the journal.
func (t *TelegramNotifier) Name() string {
	return "telegram"
}

// SendMessage sends an HTML-formatted message via Telegram. A nil
// return means the Bot API confirmed delivery; anything else must be
// treated as not delivered.
func (t *TelegramNotifier) SendMessage(ctx context.Context, message string) error {
	if !t.config.Enabled {
		logger.Debug("Telegram notifications disabled")
		return nil
	}

	if t.config.BotToken == "" || t.config.ChatID == "" {
		logger.Warn("Telegram bot token or chat ID not configured")
		return fmt.Errorf("%w: bot token or chat ID missing", ErrChannelMisconfigured)
	}

	telegramMsg := TelegramMessage{
		ChatID:    t.config.ChatID,
		Text:      message,
		ParseMode: "HTML",
	}

	return t.sendTelegramMessage(ctx, &telegramMsg)
}

// sendTelegramMessage sends message to Telegram API
func (t *TelegramNotifier) sendTelegramMessage(ctx context.Context, message *TelegramMessage) error {
	base := t.config.APIBase
	if base == "" {
		base = config.DefaultTelegramAPIBase
	}
	url := fmt.Sprintf("%s/bot%s/sendMessage", base, t.config.BotToken)

	jsonData, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	logger.Debug("Sending Telegram message",
		zap.String("chat_id", message.ChatID),
		zap.String("text", message.Text[:min(100, len(message.Text))]))

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDeliveryFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: status %d", ErrDeliveryFailed, resp.StatusCode)
	}

	var telegramResp TelegramResponse
	if err := json.NewDecoder(resp.Body).Decode(&telegramResp); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	if !telegramResp.OK {
		return fmt.Errorf("%w: %s (code: %d)", ErrDeliveryFailed, telegramResp.Description, telegramResp.ErrorCode)
	}

	logger.Info("Telegram message sent successfully")
	return nil
}

// ValidateConfig validates Telegram configuration
func (t *TelegramNotifier) ValidateConfig() error {
	if !t.config.Enabled {
		return nil
	}

	if t.config.BotToken == "" {
		return fmt.Errorf("%w: bot token is required when enabled", ErrChannelMisconfigured)
	}

	if t.config.ChatID == "" {
		return fmt.Errorf("%w: chat ID is required when enabled", ErrChannelMisconfigured)
	}

	return nil
}

// TestConnection sends a probe message through the bot
func (t *TelegramNotifier) TestConnection(ctx context.Context) error {
	if !t.config.Enabled {
		return fmt.Errorf("telegram notifications are disabled")
	}

	return t.SendMessage(ctx, FormatTestMessage())
}

// min returns the minimum of two integers
func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

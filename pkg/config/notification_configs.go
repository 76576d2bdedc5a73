package config

import "fmt"

// DefaultTelegramAPIBase is the production Bot API endpoint. Overridable
// so tests can point the notifier at a local fake.
const DefaultTelegramAPIBase = "https://api.telegram.org"

// TelegramConfig holds the primary alert channel settings.
type TelegramConfig struct {
	Enabled  bool   `json:"enabled" yaml:"enabled"`
	BotToken string `json:"bot_token" yaml:"bot_token"`
	ChatID   string `json:"chat_id" yaml:"chat_id"`
	APIBase  string `json:"api_base,omitempty" yaml:"api_base,omitempty"`
	Timeout  int    `json:"timeout" yaml:"timeout"`   // seconds
	Cooldown int    `json:"cooldown" yaml:"cooldown"` // seconds between slot alerts
}

// WebhookConfig holds the optional secondary channel, a generic JSON
// webhook in the team-chat style.
type WebhookConfig struct {
	Enabled    bool   `json:"enabled" yaml:"enabled"`
	URL        string `json:"url" yaml:"url"`
	Timeout    int    `json:"timeout" yaml:"timeout"`         // seconds
	MaxRetries int    `json:"max_retries" yaml:"max_retries"` // retries per delivery
	RetryDelay int    `json:"retry_delay" yaml:"retry_delay"` // seconds between retries
}

// NotificationsConfig groups the delivery channels.
type NotificationsConfig struct {
	Telegram *TelegramConfig `json:"telegram" yaml:"telegram"`
	Webhook  *WebhookConfig  `json:"webhook" yaml:"webhook"`
}

// NewTelegramConfig creates a Telegram configuration with default values populated from environment variables
func NewTelegramConfig() *TelegramConfig {
	return &TelegramConfig{
		Enabled:  getEnvBool("TELEGRAM_ENABLED", true),
		BotToken: getEnv("TELEGRAM_BOT_TOKEN", ""),
		ChatID:   getEnv("TELEGRAM_CHAT_ID", ""),
		APIBase:  getEnv("TELEGRAM_API_BASE", DefaultTelegramAPIBase),
		Timeout:  getEnvInt("TELEGRAM_TIMEOUT", 10),
		Cooldown: getEnvInt("TELEGRAM_COOLDOWN", 300),
	}
}

// NewWebhookConfig creates a webhook configuration with default values populated from environment variables
func NewWebhookConfig() *WebhookConfig {
	return &WebhookConfig{
		Enabled:    getEnvBool("WEBHOOK_ENABLED", false),
		URL:        getEnv("WEBHOOK_URL", ""),
		Timeout:    getEnvInt("WEBHOOK_TIMEOUT", 10),
		MaxRetries: getEnvInt("WEBHOOK_MAX_RETRIES", 3),
		RetryDelay: getEnvInt("WEBHOOK_RETRY_DELAY", 2),
	}
}

// NewNotificationsConfig groups fresh channel configurations.
func NewNotificationsConfig() *NotificationsConfig {
	return &NotificationsConfig{
		Telegram: NewTelegramConfig(),
		Webhook:  NewWebhookConfig(),
	}
}

// Validate validates the Telegram configuration
func (tc *TelegramConfig) Validate() error {
	if !tc.Enabled {
		return nil // skip validation if not enabled
	}

	if tc.BotToken == "" {
		return fmt.Errorf("%w: bot_token", ErrMissingRequired)
	}

	if tc.ChatID == "" {
		return fmt.Errorf("%w: chat_id", ErrMissingRequired)
	}

	if tc.APIBase == "" {
		tc.APIBase = DefaultTelegramAPIBase
	}

	if tc.Timeout <= 0 {
		tc.Timeout = 10
	}

	if tc.Cooldown < 0 {
		return fmt.Errorf("%w: cooldown must not be negative", ErrInvalidValue)
	}

	return nil
}

// Validate validates the webhook configuration
func (wc *WebhookConfig) Validate() error {
	if !wc.Enabled {
		return nil // skip validation if not enabled
	}

	if wc.URL == "" {
		return fmt.Errorf("%w: url", ErrMissingRequired)
	}

	if wc.Timeout <= 0 {
		wc.Timeout = 10
	}

	if wc.MaxRetries < 0 {
		wc.MaxRetries = 3
	}

	if wc.RetryDelay <= 0 {
		wc.RetryDelay = 2
	}

	return nil
}

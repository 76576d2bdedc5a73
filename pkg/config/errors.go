package config

import "errors"

// Configuration-related error definitions using sentinel errors pattern
var (
	// Generic errors
	ErrConfigNotFound = errors.New("configuration file not found")
	ErrInvalidFormat  = errors.New("invalid configuration file format")

	// Configuration validation errors
	ErrMissingRequired = errors.New("missing required configuration item")
	ErrInvalidValue    = errors.New("invalid configuration value")

	// Slot feed and monitor configuration errors
	ErrSlotsConfig   = errors.New("slots API configuration error")
	ErrMonitorConfig = errors.New("monitor configuration error")

	// Notification configuration errors
	ErrTelegramConfig = errors.New("telegram notification configuration error")
	ErrWebhookConfig  = errors.New("webhook notification configuration error")

	// Booking configuration errors
	ErrBookingConfig = errors.New("booking configuration error")
	ErrCaptchaConfig = errors.New("captcha configuration error")

	// Storage configuration errors
	ErrClickHouseConfig = errors.New("ClickHouse configuration error")
	ErrJournalConfig    = errors.New("journal configuration error")

	// Scheduler configuration errors
	ErrSchedulerConfig = errors.New("scheduler configuration error")
	ErrInvalidCron     = errors.New("invalid Cron expression")
)

package config

// Config is the root configuration structure
type Config struct {
	App           *AppConfig           `json:"app" yaml:"app"`
	Slots         *SlotsConfig         `json:"slots" yaml:"slots"`
	Monitor       *MonitorConfig       `json:"monitor" yaml:"monitor"`
	Notifications *NotificationsConfig `json:"notifications" yaml:"notifications"`
	Booking       *BookingConfig       `json:"booking" yaml:"booking"`
	ClickHouse    *ClickHouseConfig    `json:"clickhouse" yaml:"clickhouse"`
	Journal       *JournalConfig       `json:"journal" yaml:"journal"`
	Server        *ServerConfig        `json:"server" yaml:"server"`
	Scheduler     *SchedulerConfig     `json:"scheduler" yaml:"scheduler"`
	Runtime       *RuntimeConfig       `json:"runtime" yaml:"runtime"`
}

// getDefaultConfig builds a configuration with every section at its defaults
func getDefaultConfig() *Config {
	return &Config{
		App:           NewAppConfig(),
		Slots:         NewSlotsConfig(),
		Monitor:       NewMonitorConfig(),
		Notifications: NewNotificationsConfig(),
		Booking:       NewBookingConfig(),
		ClickHouse:    NewClickHouseConfig(),
		Journal:       NewJournalConfig(),
		Server:        NewServerConfig(),
		Scheduler:     NewSchedulerConfig(),
		Runtime:       NewRuntimeConfig(),
	}
}

// GetSlotsConfig returns the slots feed configuration
func (c *Config) GetSlotsConfig() *SlotsConfig {
	if c.Slots != nil {
		return c.Slots
	}
	return NewSlotsConfig()
}

// GetMonitorConfig returns the monitor configuration
func (c *Config) GetMonitorConfig() *MonitorConfig {
	if c.Monitor != nil {
		return c.Monitor
	}
	return NewMonitorConfig()
}

// GetTelegramConfig returns the Telegram channel configuration
func (c *Config) GetTelegramConfig() *TelegramConfig {
	if c.Notifications != nil && c.Notifications.Telegram != nil {
		return c.Notifications.Telegram
	}
	return NewTelegramConfig()
}

// GetWebhookConfig returns the webhook channel configuration
func (c *Config) GetWebhookConfig() *WebhookConfig {
	if c.Notifications != nil && c.Notifications.Webhook != nil {
		return c.Notifications.Webhook
	}
	return NewWebhookConfig()
}

// GetBookingConfig returns the booking bot configuration
func (c *Config) GetBookingConfig() *BookingConfig {
	if c.Booking != nil {
		return c.Booking
	}
	return NewBookingConfig()
}

// GetJournalConfig returns the journal configuration
func (c *Config) GetJournalConfig() *JournalConfig {
	if c.Journal != nil {
		return c.Journal
	}
	return NewJournalConfig()
}

// GetClickHouseConfig returns the check-history store configuration
func (c *Config) GetClickHouseConfig() *ClickHouseConfig {
	if c.ClickHouse != nil {
		return c.ClickHouse
	}
	return NewClickHouseConfig()
}

// GetServerConfig returns the HTTP server configuration
func (c *Config) GetServerConfig() *ServerConfig {
	if c.Server != nil {
		return c.Server
	}
	return NewServerConfig()
}

// GetSchedulerConfig returns the scheduler configuration
func (c *Config) GetSchedulerConfig() *SchedulerConfig {
	if c.Scheduler != nil {
		return c.Scheduler
	}
	return NewSchedulerConfig()
}

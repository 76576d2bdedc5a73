package config

import "fmt"

// Defaults for the checkvisaslots.com feed. The endpoint and key are the
// ones the official browser extension ships with.
const (
	DefaultSlotsEndpoint = "https://app.checkvisaslots.com/slots/v3"
	DefaultSlotsAPIKey   = "HZK5KL"
)

// SlotsConfig holds the settings for the slot availability feed.
type SlotsConfig struct {
	Endpoint    string `json:"endpoint" yaml:"endpoint"`
	APIKey      string `json:"api_key" yaml:"api_key"`
	Timeout     int    `json:"timeout" yaml:"timeout"`           // seconds
	RateLimit   int    `json:"rate_limit" yaml:"rate_limit"`     // max requests per window
	RateWindow  int    `json:"rate_window" yaml:"rate_window"`   // window length in seconds
	MaxSlotAge  int    `json:"max_slot_age" yaml:"max_slot_age"` // ignore reports older than this many minutes, 0 = keep all
	Debug       bool   `json:"debug" yaml:"debug"`
}

// MonitorConfig holds the polling loop settings.
type MonitorConfig struct {
	Interval        int      `json:"interval" yaml:"interval"`                   // seconds between checks
	DurationMinutes int      `json:"duration_minutes" yaml:"duration_minutes"`   // 0 = run until cancelled
	Cities          []string `json:"cities" yaml:"cities"`                       // consulate cities to watch
	ErrorRetryDelay int      `json:"error_retry_delay" yaml:"error_retry_delay"` // seconds to wait after an unexpected failure
	StartupNotice   bool     `json:"startup_notice" yaml:"startup_notice"`       // announce monitor start via notifiers
	BookOnSlot      bool     `json:"book_on_slot" yaml:"book_on_slot"`           // launch the booking bot when slots appear
}

// NewSlotsConfig creates a slots feed configuration with default values populated from environment variables
func NewSlotsConfig() *SlotsConfig {
	return &SlotsConfig{
		Endpoint:   getEnv("SLOTS_ENDPOINT", DefaultSlotsEndpoint),
		APIKey:     getEnv("SLOTS_API_KEY", DefaultSlotsAPIKey),
		Timeout:    getEnvInt("SLOTS_TIMEOUT", 30),
		RateLimit:  getEnvInt("SLOTS_RATE_LIMIT", 10),
		RateWindow: getEnvInt("SLOTS_RATE_WINDOW", 60),
		MaxSlotAge: getEnvInt("SLOTS_MAX_AGE_MINUTES", 0),
		Debug:      getEnvBool("SLOTS_DEBUG", false),
	}
}

// NewMonitorConfig creates a monitor configuration with default values populated from environment variables
func NewMonitorConfig() *MonitorConfig {
	cities := parseStringList(getEnv("MONITOR_CITIES", ""))
	if len(cities) == 0 {
		cities = []string{"CHENNAI", "HYDERABAD", "MUMBAI"}
	}

	return &MonitorConfig{
		Interval:        getEnvInt("MONITOR_INTERVAL", 30),
		DurationMinutes: getEnvInt("MONITOR_DURATION_MINUTES", 0),
		Cities:          cities,
		ErrorRetryDelay: getEnvInt("MONITOR_ERROR_RETRY_DELAY", 60),
		StartupNotice:   getEnvBool("MONITOR_STARTUP_NOTICE", true),
		BookOnSlot:      getEnvBool("MONITOR_BOOK_ON_SLOT", false),
	}
}

// Validate validates the slots feed configuration
func (sc *SlotsConfig) Validate() error {
	if sc.Endpoint == "" {
		return fmt.Errorf("%w: endpoint", ErrMissingRequired)
	}

	if sc.APIKey == "" {
		return fmt.Errorf("%w: api_key", ErrMissingRequired)
	}

	if sc.Timeout <= 0 {
		sc.Timeout = 30
	}

	if sc.RateLimit <= 0 {
		sc.RateLimit = 10
	}

	if sc.RateWindow <= 0 {
		sc.RateWindow = 60
	}

	if sc.MaxSlotAge < 0 {
		return fmt.Errorf("%w: max_slot_age must not be negative", ErrInvalidValue)
	}

	return nil
}

// Validate validates the monitor configuration
func (mc *MonitorConfig) Validate() error {
	if mc.Interval < 5 {
		return fmt.Errorf("%w: interval must be at least 5 seconds", ErrInvalidValue)
	}

	if mc.DurationMinutes < 0 {
		return fmt.Errorf("%w: duration_minutes must not be negative", ErrInvalidValue)
	}

	if len(mc.Cities) == 0 {
		return fmt.Errorf("%w: cities", ErrMissingRequired)
	}

	if mc.ErrorRetryDelay <= 0 {
		mc.ErrorRetryDelay = 60
	}

	return nil
}

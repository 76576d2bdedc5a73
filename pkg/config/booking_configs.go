package config

import "fmt"

// PortalConfig holds the credentials and location settings for the
// appointment portal.
type PortalConfig struct {
	Username      string `json:"username" yaml:"username"`
	Password      string `json:"password" yaml:"password"`
	CountryCode   string `json:"country_code" yaml:"country_code"`     // portal locale, e.g. "in"
	ConsularID    string `json:"consular_id" yaml:"consular_id"`       // facility id of the target consulate
	ApplicationID string `json:"application_id" yaml:"application_id"` // schedule id, optional
	BaseURL       string `json:"base_url,omitempty" yaml:"base_url,omitempty"`
}

// CaptchaConfig holds the CAPTCHA solving service settings. Provider
// "2captcha" solves image/reCAPTCHA challenges, "witai" transcribes the
// audio fallback. Empty provider disables solving.
type CaptchaConfig struct {
	Provider     string `json:"provider" yaml:"provider"`
	APIKey       string `json:"api_key" yaml:"api_key"`
	PollInterval int    `json:"poll_interval" yaml:"poll_interval"` // seconds between result polls
	MaxPolls     int    `json:"max_polls" yaml:"max_polls"`
}

// BookingConfig holds the browser booking bot settings.
type BookingConfig struct {
	Enabled      bool           `json:"enabled" yaml:"enabled"`
	Headless     bool           `json:"headless" yaml:"headless"`
	ChromePath   string         `json:"chrome_path,omitempty" yaml:"chrome_path,omitempty"`
	RetryTimeout int            `json:"retry_timeout" yaml:"retry_timeout"` // seconds between attempts
	MaxRetries   int            `json:"max_retries" yaml:"max_retries"`
	StepTimeout  int            `json:"step_timeout" yaml:"step_timeout"` // seconds per browser step
	Portal       *PortalConfig  `json:"portal" yaml:"portal"`
	Captcha      *CaptchaConfig `json:"captcha" yaml:"captcha"`
}

// NewPortalConfig creates a portal configuration with default values populated from environment variables
func NewPortalConfig() *PortalConfig {
	return &PortalConfig{
		Username:      getEnv("VISA_USERNAME", ""),
		Password:      getEnv("VISA_PASSWORD", ""),
		CountryCode:   getEnv("COUNTRY_CODE", "in"),
		ConsularID:    getEnv("CONSULAR_ID", "122"),
		ApplicationID: getEnv("APPLICATION_ID", ""),
	}
}

// NewCaptchaConfig creates a CAPTCHA configuration with default values populated from environment variables
func NewCaptchaConfig() *CaptchaConfig {
	provider := getEnv("CAPTCHA_PROVIDER", "")
	if provider == "" && getEnvBool("USE_2CAPTCHA", false) {
		provider = "2captcha"
	}

	return &CaptchaConfig{
		Provider:     provider,
		APIKey:       getEnv("CAPTCHA_API_KEY", ""),
		PollInterval: getEnvInt("CAPTCHA_POLL_INTERVAL", 10),
		MaxPolls:     getEnvInt("CAPTCHA_MAX_POLLS", 30),
	}
}

// NewBookingConfig creates a booking configuration with default values populated from environment variables
func NewBookingConfig() *BookingConfig {
	return &BookingConfig{
		Enabled:      getEnvBool("BOOKING_ENABLED", false),
		Headless:     getEnvBool("HEADLESS", true),
		ChromePath:   getEnv("CHROME_PATH", ""),
		RetryTimeout: getEnvInt("RETRY_TIMEOUT", 180),
		MaxRetries:   getEnvInt("MAX_RETRIES", 50),
		StepTimeout:  getEnvInt("BOOKING_STEP_TIMEOUT", 60),
		Portal:       NewPortalConfig(),
		Captcha:      NewCaptchaConfig(),
	}
}

// Validate validates the portal configuration
func (pc *PortalConfig) Validate() error {
	if pc.Username == "" {
		return fmt.Errorf("%w: username", ErrMissingRequired)
	}

	if pc.Password == "" {
		return fmt.Errorf("%w: password", ErrMissingRequired)
	}

	if pc.CountryCode == "" {
		pc.CountryCode = "in"
	}

	if pc.ConsularID == "" {
		return fmt.Errorf("%w: consular_id", ErrMissingRequired)
	}

	return nil
}

// Validate validates the CAPTCHA configuration
func (cc *CaptchaConfig) Validate() error {
	if cc.Provider == "" {
		return nil // solving disabled
	}

	validProviders := []string{"2captcha", "witai"}
	if !isValidValue(cc.Provider, validProviders) {
		return fmt.Errorf("%w: provider must be one of %v", ErrInvalidValue, validProviders)
	}

	if cc.APIKey == "" {
		return fmt.Errorf("%w: api_key", ErrMissingRequired)
	}

	if cc.PollInterval <= 0 {
		cc.PollInterval = 10
	}

	if cc.MaxPolls <= 0 {
		cc.MaxPolls = 30
	}

	return nil
}

// Validate validates the booking configuration
func (bc *BookingConfig) Validate() error {
	if !bc.Enabled {
		return nil // skip validation if not enabled
	}

	if bc.Portal == nil {
		return fmt.Errorf("%w: portal", ErrMissingRequired)
	}

	if err := bc.Portal.Validate(); err != nil {
		return err
	}

	if bc.Captcha != nil {
		if err := bc.Captcha.Validate(); err != nil {
			return fmt.Errorf("%w: %v", ErrCaptchaConfig, err)
		}
	}

	if bc.RetryTimeout <= 0 {
		bc.RetryTimeout = 180
	}

	if bc.MaxRetries <= 0 {
		bc.MaxRetries = 50
	}

	if bc.StepTimeout <= 0 {
		bc.StepTimeout = 60
	}

	return nil
}

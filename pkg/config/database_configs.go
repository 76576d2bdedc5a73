package config

// database_configs.go contains storage-related configurations
// ClickHouseConfig is defined in config.go, this file only contains storage-specific validation and extension methods

// Validate validates ClickHouse configuration
func (c *ClickHouseConfig) Validate() error {
	if !c.Enabled {
		return nil // skip validation if not enabled
	}

	if len(c.Hosts) == 0 {
		return ErrMissingRequired
	}

	if c.Port <= 0 || c.Port > 65535 {
		return ErrInvalidValue
	}

	if c.Database == "" {
		return ErrMissingRequired
	}

	if c.Protocol != "" && c.Protocol != "native" && c.Protocol != "http" {
		return ErrInvalidValue
	}

	return nil
}

// JournalConfig holds the local SQLite journal settings. The journal
// records booking attempts and delivered notifications.
type JournalConfig struct {
	Enabled bool   `json:"enabled" yaml:"enabled"`
	Path    string `json:"path" yaml:"path"`
}

// NewJournalConfig creates a journal configuration with default values populated from environment variables
func NewJournalConfig() *JournalConfig {
	return &JournalConfig{
		Enabled: getEnvBool("JOURNAL_ENABLED", true),
		Path:    getEnv("JOURNAL_PATH", "./data/visawatch.db"),
	}
}

// Validate validates journal configuration
func (jc *JournalConfig) Validate() error {
	if !jc.Enabled {
		return nil // skip validation if not enabled
	}

	if jc.Path == "" {
		return ErrMissingRequired
	}

	return nil
}

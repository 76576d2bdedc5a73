package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadConfig loads the configuration from the given path. An empty path
// falls back to the default search locations, and a missing file yields
// the built-in defaults. Environment variables are merged on top.
func LoadConfig(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = getDefaultConfigPath()
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return getDefaultConfig(), nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigNotFound, err)
	}

	config := &Config{}
	ext := filepath.Ext(configPath)

	switch ext {
	case ".json":
		if err := json.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("%w: JSON parsing failed: %v", ErrInvalidFormat, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("%w: YAML parsing failed: %v", ErrInvalidFormat, err)
		}
	default:
		return nil, fmt.Errorf("%w: unsupported config file format: %s", ErrInvalidFormat, ext)
	}

	mergeEnvVars(config)
	return config, nil
}

// SaveConfig writes the configuration to the given path
func SaveConfig(config *Config, configPath string) error {
	if configPath == "" {
		configPath = getDefaultConfigPath()
	}

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	ext := filepath.Ext(configPath)
	var data []byte
	var err error

	switch ext {
	case ".json":
		data, err = json.MarshalIndent(config, "", "  ")
	case ".yaml", ".yml":
		data, err = yaml.Marshal(config)
	default:
		return fmt.Errorf("%w: unsupported config file format: %s", ErrInvalidFormat, ext)
	}

	if err != nil {
		return fmt.Errorf("config serialization failed: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// getDefaultConfigPath searches the usual locations, preferring the
// working directory over the user and system config directories.
func getDefaultConfigPath() string {
	paths := []string{
		"./config.yaml",
		"./config.json",
	}

	if homeDir, err := os.UserHomeDir(); err == nil {
		paths = append(paths,
			filepath.Join(homeDir, ".visawatch", "config.yaml"),
			filepath.Join(homeDir, ".visawatch", "config.json"),
		)
	}

	paths = append(paths,
		"/etc/visawatch/config.yaml",
		"/etc/visawatch/config.json",
	)

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return "./config.yaml"
}

// mergeEnvVars merges environment variables into the configuration
func mergeEnvVars(config *Config) {
	mergeAppEnvVars(config)
	mergeSlotsEnvVars(config)
	mergeMonitorEnvVars(config)
	mergeTelegramEnvVars(config)
	mergeWebhookEnvVars(config)
	mergeBookingEnvVars(config)
	mergeClickHouseEnvVars(config)
	mergeJournalEnvVars(config)
	mergeServerEnvVars(config)
	mergeSchedulerEnvVars(config)
	mergeRuntimeEnvVars(config)
}

// mergeSlotsEnvVars merges slots feed environment variables
func mergeSlotsEnvVars(config *Config) {
	if config.Slots == nil {
		config.Slots = NewSlotsConfig()
		return
	}

	sc := config.Slots

	if endpoint := os.Getenv("SLOTS_ENDPOINT"); endpoint != "" {
		sc.Endpoint = endpoint
	}
	if apiKey := os.Getenv("SLOTS_API_KEY"); apiKey != "" {
		sc.APIKey = apiKey
	}
	if timeout := getEnvInt("SLOTS_TIMEOUT", 0); timeout != 0 {
		sc.Timeout = timeout
	}
	if limit := getEnvInt("SLOTS_RATE_LIMIT", 0); limit != 0 {
		sc.RateLimit = limit
	}
	if window := getEnvInt("SLOTS_RATE_WINDOW", 0); window != 0 {
		sc.RateWindow = window
	}
	if debug := os.Getenv("SLOTS_DEBUG"); debug != "" {
		sc.Debug = debug == "true" || debug == "1"
	}
}

// mergeMonitorEnvVars merges monitor environment variables
func mergeMonitorEnvVars(config *Config) {
	if config.Monitor == nil {
		config.Monitor = NewMonitorConfig()
		return
	}

	mc := config.Monitor

	if interval := getEnvInt("MONITOR_INTERVAL", 0); interval != 0 {
		mc.Interval = interval
	}
	if duration := getEnvInt("MONITOR_DURATION_MINUTES", 0); duration != 0 {
		mc.DurationMinutes = duration
	}
	if cities := os.Getenv("MONITOR_CITIES"); cities != "" {
		mc.Cities = parseStringList(cities)
	}
	if book := os.Getenv("MONITOR_BOOK_ON_SLOT"); book != "" {
		mc.BookOnSlot = book == "true" || book == "1"
	}
}

// mergeTelegramEnvVars merges Telegram environment variables
func mergeTelegramEnvVars(config *Config) {
	if config.Notifications == nil {
		config.Notifications = NewNotificationsConfig()
		return
	}
	if config.Notifications.Telegram == nil {
		config.Notifications.Telegram = NewTelegramConfig()
		return
	}

	tc := config.Notifications.Telegram

	if token := os.Getenv("TELEGRAM_BOT_TOKEN"); token != "" {
		tc.BotToken = token
	}
	if chatID := os.Getenv("TELEGRAM_CHAT_ID"); chatID != "" {
		tc.ChatID = chatID
	}
	if base := os.Getenv("TELEGRAM_API_BASE"); base != "" {
		tc.APIBase = base
	}
	if cooldown := getEnvInt("TELEGRAM_COOLDOWN", 0); cooldown != 0 {
		tc.Cooldown = cooldown
	}
	if enabled := os.Getenv("TELEGRAM_ENABLED"); enabled != "" {
		tc.Enabled = enabled == "true" || enabled == "1"
	}
}

// mergeWebhookEnvVars merges webhook environment variables
func mergeWebhookEnvVars(config *Config) {
	if config.Notifications == nil {
		config.Notifications = NewNotificationsConfig()
		return
	}
	if config.Notifications.Webhook == nil {
		config.Notifications.Webhook = NewWebhookConfig()
		return
	}

	wc := config.Notifications.Webhook

	if url := os.Getenv("WEBHOOK_URL"); url != "" {
		wc.URL = url
	}
	if retries := getEnvInt("WEBHOOK_MAX_RETRIES", 0); retries != 0 {
		wc.MaxRetries = retries
	}
	if delay := getEnvInt("WEBHOOK_RETRY_DELAY", 0); delay != 0 {
		wc.RetryDelay = delay
	}
	if enabled := os.Getenv("WEBHOOK_ENABLED"); enabled != "" {
		wc.Enabled = enabled == "true" || enabled == "1"
	}
}

// mergeBookingEnvVars merges booking environment variables
func mergeBookingEnvVars(config *Config) {
	if config.Booking == nil {
		config.Booking = NewBookingConfig()
		return
	}

	bc := config.Booking

	if enabled := os.Getenv("BOOKING_ENABLED"); enabled != "" {
		bc.Enabled = enabled == "true" || enabled == "1"
	}
	if headless := os.Getenv("HEADLESS"); headless != "" {
		bc.Headless = headless == "true" || headless == "1"
	}
	if path := os.Getenv("CHROME_PATH"); path != "" {
		bc.ChromePath = path
	}
	if timeout := getEnvInt("RETRY_TIMEOUT", 0); timeout != 0 {
		bc.RetryTimeout = timeout
	}
	if retries := getEnvInt("MAX_RETRIES", 0); retries != 0 {
		bc.MaxRetries = retries
	}

	if bc.Portal == nil {
		bc.Portal = NewPortalConfig()
	} else {
		if username := os.Getenv("VISA_USERNAME"); username != "" {
			bc.Portal.Username = username
		}
		if password := os.Getenv("VISA_PASSWORD"); password != "" {
			bc.Portal.Password = password
		}
		if country := os.Getenv("COUNTRY_CODE"); country != "" {
			bc.Portal.CountryCode = country
		}
		if consular := os.Getenv("CONSULAR_ID"); consular != "" {
			bc.Portal.ConsularID = consular
		}
		if appID := os.Getenv("APPLICATION_ID"); appID != "" {
			bc.Portal.ApplicationID = appID
		}
	}

	if bc.Captcha == nil {
		bc.Captcha = NewCaptchaConfig()
	} else {
		if provider := os.Getenv("CAPTCHA_PROVIDER"); provider != "" {
			bc.Captcha.Provider = provider
		}
		if apiKey := os.Getenv("CAPTCHA_API_KEY"); apiKey != "" {
			bc.Captcha.APIKey = apiKey
		}
	}
}

// mergeClickHouseEnvVars merges ClickHouse environment variables
func mergeClickHouseEnvVars(config *Config) {
	if config.ClickHouse == nil {
		config.ClickHouse = NewClickHouseConfig()
		return
	}

	if hostsEnv := os.Getenv("CLICKHOUSE_HOSTS"); hostsEnv != "" {
		config.ClickHouse.Hosts = parseHosts(hostsEnv)
	} else if host := os.Getenv("CLICKHOUSE_HOST"); host != "" {
		config.ClickHouse.Hosts = []string{host}
	}

	envMappings := map[string]interface{}{
		"CLICKHOUSE_PORT":     &config.ClickHouse.Port,
		"CLICKHOUSE_DATABASE": &config.ClickHouse.Database,
		"CLICKHOUSE_USERNAME": &config.ClickHouse.Username,
		"CLICKHOUSE_PASSWORD": &config.ClickHouse.Password,
		"CLICKHOUSE_PROTOCOL": &config.ClickHouse.Protocol,
	}

	for envKey, fieldPtr := range envMappings {
		if value := os.Getenv(envKey); value != "" {
			switch ptr := fieldPtr.(type) {
			case *int:
				if intVal := parseIntOrDefault(value, 0); intVal != 0 {
					*ptr = intVal
				}
			case *string:
				*ptr = value
			}
		}
	}

	if enabled := os.Getenv("CLICKHOUSE_ENABLED"); enabled != "" {
		config.ClickHouse.Enabled = enabled == "true" || enabled == "1"
	}
	if debug := os.Getenv("CLICKHOUSE_DEBUG"); debug != "" {
		config.ClickHouse.Debug = debug == "true" || debug == "1"
	}
}

// mergeJournalEnvVars merges journal environment variables
func mergeJournalEnvVars(config *Config) {
	if config.Journal == nil {
		config.Journal = NewJournalConfig()
		return
	}

	if path := os.Getenv("JOURNAL_PATH"); path != "" {
		config.Journal.Path = path
	}
	if enabled := os.Getenv("JOURNAL_ENABLED"); enabled != "" {
		config.Journal.Enabled = enabled == "true" || enabled == "1"
	}
}

// mergeServerEnvVars merges server environment variables
func mergeServerEnvVars(config *Config) {
	if config.Server == nil {
		config.Server = NewServerConfig()
		return
	}

	if port := getEnvInt("SERVER_PORT", 0); port != 0 {
		config.Server.Port = port
	}
	if address := os.Getenv("SERVER_ADDRESS"); address != "" {
		config.Server.Address = address
	}
}

// mergeSchedulerEnvVars merges scheduler environment variables
func mergeSchedulerEnvVars(config *Config) {
	if config.Scheduler == nil {
		config.Scheduler = NewSchedulerConfig()
		return
	}

	if enabled := os.Getenv("SCHEDULER_ENABLED"); enabled != "" {
		config.Scheduler.Enabled = enabled == "true" || enabled == "1"
	}
}

// mergeRuntimeEnvVars merges runtime environment variables
func mergeRuntimeEnvVars(config *Config) {
	if config.Runtime == nil {
		config.Runtime = NewRuntimeConfig()
		return
	}

	if maxTasks := getEnvInt("RUNTIME_MAX_CONCURRENT_TASKS", 0); maxTasks != 0 {
		config.Runtime.MaxConcurrentTasks = maxTasks
	}
	if timeout := getEnvInt("RUNTIME_TASK_TIMEOUT", 0); timeout != 0 {
		config.Runtime.TaskTimeout = timeout
	}
	if shutdownTimeout := getEnvInt("RUNTIME_GRACEFUL_SHUTDOWN_TIMEOUT", 0); shutdownTimeout != 0 {
		config.Runtime.GracefulShutdownTimeout = shutdownTimeout
	}
}

// mergeAppEnvVars merges application environment variables
func mergeAppEnvVars(config *Config) {
	if config.App == nil {
		config.App = NewAppConfig()
		return
	}

	if logLevel := os.Getenv("LOG_LEVEL"); logLevel != "" {
		config.App.LogLevel = logLevel
	}
	if logFile := os.Getenv("LOG_FILE"); logFile != "" {
		config.App.LogFile = logFile
	}
}

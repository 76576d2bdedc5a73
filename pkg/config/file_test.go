package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig("nonexistent.yaml")
	if err != nil {
		t.Fatalf("Failed to load default config: %v", err)
	}

	if cfg.Slots == nil {
		t.Fatal("Slots config should not be nil")
	}
	if cfg.Slots.Endpoint != DefaultSlotsEndpoint {
		t.Errorf("Expected endpoint %s, got %s", DefaultSlotsEndpoint, cfg.Slots.Endpoint)
	}
	if cfg.Monitor == nil {
		t.Fatal("Monitor config should not be nil")
	}
	if cfg.Monitor.Interval != 30 {
		t.Errorf("Expected default interval 30, got %d", cfg.Monitor.Interval)
	}
	if len(cfg.Monitor.Cities) != 3 {
		t.Errorf("Expected 3 default cities, got %v", cfg.Monitor.Cities)
	}
	if cfg.Notifications == nil || cfg.Notifications.Telegram == nil {
		t.Fatal("Telegram config should not be nil")
	}
	if cfg.Notifications.Telegram.Cooldown != 300 {
		t.Errorf("Expected default cooldown 300, got %d", cfg.Notifications.Telegram.Cooldown)
	}
	if cfg.App == nil {
		t.Fatal("App config should not be nil")
	}
}

func TestSaveAndLoadConfig(t *testing.T) {
	tempFile := filepath.Join(t.TempDir(), "test_config.yaml")

	originalConfig := &Config{
		Slots: &SlotsConfig{
			Endpoint:   "https://example.com/slots/v3",
			APIKey:     "TESTKEY",
			Timeout:    15,
			RateLimit:  5,
			RateWindow: 30,
		},
		Monitor: &MonitorConfig{
			Interval: 45,
			Cities:   []string{"CHENNAI", "KOLKATA"},
		},
		App: &AppConfig{
			LogLevel: "debug",
			LogFile:  "/tmp/test.log",
		},
	}

	if err := SaveConfig(originalConfig, tempFile); err != nil {
		t.Fatalf("Failed to save config: %v", err)
	}

	loadedConfig, err := LoadConfig(tempFile)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if loadedConfig.Slots.APIKey != originalConfig.Slots.APIKey {
		t.Errorf("Expected api key %s, got %s", originalConfig.Slots.APIKey, loadedConfig.Slots.APIKey)
	}
	if loadedConfig.Monitor.Interval != originalConfig.Monitor.Interval {
		t.Errorf("Expected interval %d, got %d", originalConfig.Monitor.Interval, loadedConfig.Monitor.Interval)
	}
	if len(loadedConfig.Monitor.Cities) != 2 {
		t.Errorf("Expected 2 cities, got %v", loadedConfig.Monitor.Cities)
	}
	if loadedConfig.App.LogLevel != originalConfig.App.LogLevel {
		t.Errorf("Expected log level %s, got %s", originalConfig.App.LogLevel, loadedConfig.App.LogLevel)
	}
}

func TestConfigWithEnvVars(t *testing.T) {
	os.Setenv("TELEGRAM_BOT_TOKEN", "123:env-token")
	os.Setenv("TELEGRAM_CHAT_ID", "-100200300")
	os.Setenv("MONITOR_INTERVAL", "12")
	os.Setenv("MONITOR_CITIES", "DELHI, KOLKATA")
	os.Setenv("LOG_LEVEL", "debug")
	defer func() {
		os.Unsetenv("TELEGRAM_BOT_TOKEN")
		os.Unsetenv("TELEGRAM_CHAT_ID")
		os.Unsetenv("MONITOR_INTERVAL")
		os.Unsetenv("MONITOR_CITIES")
		os.Unsetenv("LOG_LEVEL")
	}()

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.Notifications.Telegram.BotToken != "123:env-token" {
		t.Errorf("Expected bot token from env, got %s", cfg.Notifications.Telegram.BotToken)
	}
	if cfg.Monitor.Interval != 12 {
		t.Errorf("Expected interval 12, got %d", cfg.Monitor.Interval)
	}
	if len(cfg.Monitor.Cities) != 2 || cfg.Monitor.Cities[0] != "DELHI" {
		t.Errorf("Expected cities [DELHI KOLKATA], got %v", cfg.Monitor.Cities)
	}
	if cfg.App.LogLevel != "debug" {
		t.Errorf("Expected log level debug, got %s", cfg.App.LogLevel)
	}
}

func TestEnvOverridesFileValues(t *testing.T) {
	tempFile := filepath.Join(t.TempDir(), "config.yaml")
	yaml := `
slots:
  endpoint: https://example.com/slots/v3
  api_key: FILEKEY
monitor:
  interval: 20
  cities: [MUMBAI]
`
	if err := os.WriteFile(tempFile, []byte(yaml), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	os.Setenv("SLOTS_API_KEY", "ENVKEY")
	defer os.Unsetenv("SLOTS_API_KEY")

	cfg, err := LoadConfig(tempFile)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.Slots.APIKey != "ENVKEY" {
		t.Errorf("Expected env to override file, got %s", cfg.Slots.APIKey)
	}
	if cfg.Monitor.Interval != 20 {
		t.Errorf("Expected file interval 20, got %d", cfg.Monitor.Interval)
	}
}

func TestValidateConfigCollectsAllProblems(t *testing.T) {
	cfg := &Config{
		Slots: &SlotsConfig{
			Endpoint: "", // missing
			APIKey:   "K",
		},
		Monitor: &MonitorConfig{
			Interval: 1, // below minimum
			Cities:   []string{"CHENNAI"},
		},
		Notifications: &NotificationsConfig{
			Telegram: &TelegramConfig{
				Enabled: true, // missing token and chat id
			},
		},
	}

	err := cfg.ValidateConfig()
	if err == nil {
		t.Fatal("Expected validation error, got nil")
	}

	if !errors.Is(err, ErrSlotsConfig) {
		t.Errorf("Expected slots problem in %v", err)
	}
	if !errors.Is(err, ErrMonitorConfig) {
		t.Errorf("Expected monitor problem in %v", err)
	}
	if !errors.Is(err, ErrTelegramConfig) {
		t.Errorf("Expected telegram problem in %v", err)
	}
}

func TestValidateScheduledJob(t *testing.T) {
	tests := []struct {
		name    string
		job     ScheduledJob
		wantErr error
	}{
		{
			name: "valid check job",
			job: ScheduledJob{
				Name: "morning-check",
				Task: "slot_check",
				Cron: "*/5 8-12 * * *",
			},
			wantErr: nil,
		},
		{
			name: "unknown task",
			job: ScheduledJob{
				Name: "mystery",
				Task: "mine_bitcoin",
				Cron: "* * * * *",
			},
			wantErr: ErrInvalidValue,
		},
		{
			name: "bad cron",
			job: ScheduledJob{
				Name: "broken",
				Task: "daily_summary",
				Cron: "not a cron",
			},
			wantErr: ErrInvalidCron,
		},
		{
			name:    "missing name",
			job:     ScheduledJob{Task: "slot_check", Cron: "* * * * *"},
			wantErr: ErrMissingRequired,
		},
		{
			name: "valid booking job",
			job: ScheduledJob{
				Name:   "early-bird",
				Task:   "booking",
				Cron:   "0 6 * * *",
				Config: JobConfig{Consulate: "Chennai", TargetDate: "2026-09-15"},
			},
			wantErr: nil,
		},
		{
			name: "booking without consulate",
			job: ScheduledJob{
				Name: "aimless",
				Task: "booking",
				Cron: "0 6 * * *",
			},
			wantErr: ErrMissingRequired,
		},
		{
			name: "booking with bad target date",
			job: ScheduledJob{
				Name:   "off-by-format",
				Task:   "booking",
				Cron:   "0 6 * * *",
				Config: JobConfig{Consulate: "Chennai", TargetDate: "15/09/2026"},
			},
			wantErr: ErrInvalidValue,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.job.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("Expected no error, got %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestBookingConfigValidation(t *testing.T) {
	bc := &BookingConfig{
		Enabled: true,
		Portal: &PortalConfig{
			Username:   "user@example.com",
			Password:   "secret",
			ConsularID: "122",
		},
		Captcha: &CaptchaConfig{Provider: "2captcha", APIKey: "abc"},
	}

	if err := bc.Validate(); err != nil {
		t.Fatalf("Expected valid booking config, got %v", err)
	}
	if bc.RetryTimeout != 180 {
		t.Errorf("Expected retry timeout defaulted to 180, got %d", bc.RetryTimeout)
	}
	if bc.MaxRetries != 50 {
		t.Errorf("Expected max retries defaulted to 50, got %d", bc.MaxRetries)
	}

	bc.Portal.Password = ""
	if err := bc.Validate(); !errors.Is(err, ErrMissingRequired) {
		t.Errorf("Expected missing password error, got %v", err)
	}

	bc.Portal.Password = "secret"
	bc.Captcha.Provider = "solveomatic"
	if err := bc.Validate(); !errors.Is(err, ErrCaptchaConfig) {
		t.Errorf("Expected captcha provider error, got %v", err)
	}
}

package config

import (
	"errors"
	"fmt"
	"strings"
)

// ValidateConfig validates the complete configuration. Every section is
// checked so a single run reports all problems, not just the first.
func (c *Config) ValidateConfig() error {
	var problems []error

	if c.App != nil {
		if err := c.App.Validate(); err != nil {
			problems = append(problems, fmt.Errorf("app: %w", err))
		}
	}

	if c.Slots == nil {
		problems = append(problems, fmt.Errorf("%w: slots section", ErrMissingRequired))
	} else if err := c.Slots.Validate(); err != nil {
		problems = append(problems, fmt.Errorf("%w: %v", ErrSlotsConfig, err))
	}

	if c.Monitor == nil {
		problems = append(problems, fmt.Errorf("%w: monitor section", ErrMissingRequired))
	} else if err := c.Monitor.Validate(); err != nil {
		problems = append(problems, fmt.Errorf("%w: %v", ErrMonitorConfig, err))
	}

	if c.Notifications != nil {
		if c.Notifications.Telegram != nil {
			if err := c.Notifications.Telegram.Validate(); err != nil {
				problems = append(problems, fmt.Errorf("%w: %v", ErrTelegramConfig, err))
			}
		}
		if c.Notifications.Webhook != nil {
			if err := c.Notifications.Webhook.Validate(); err != nil {
				problems = append(problems, fmt.Errorf("%w: %v", ErrWebhookConfig, err))
			}
		}
	}

	if c.Booking != nil {
		if err := c.Booking.Validate(); err != nil {
			problems = append(problems, fmt.Errorf("%w: %v", ErrBookingConfig, err))
		}
	}

	if c.ClickHouse != nil {
		if err := c.ClickHouse.Validate(); err != nil {
			problems = append(problems, fmt.Errorf("%w: %v", ErrClickHouseConfig, err))
		}
	}

	if c.Journal != nil {
		if err := c.Journal.Validate(); err != nil {
			problems = append(problems, fmt.Errorf("%w: %v", ErrJournalConfig, err))
		}
	}

	if c.Server != nil {
		if err := c.Server.Validate(); err != nil {
			problems = append(problems, fmt.Errorf("server: %w", err))
		}
	}

	if c.Scheduler != nil {
		if err := c.Scheduler.Validate(); err != nil {
			problems = append(problems, fmt.Errorf("%w: %v", ErrSchedulerConfig, err))
		}
	}

	if c.Runtime != nil {
		if err := c.Runtime.Validate(); err != nil {
			problems = append(problems, fmt.Errorf("runtime: %w", err))
		}
	}

	return errors.Join(problems...)
}

// isValidValue checks whether a value is in the list of valid values
func isValidValue(value string, validValues []string) bool {
	for _, valid := range validValues {
		if value == valid {
			return true
		}
	}
	return false
}

// isValidCronExpression does a shallow check: 5 or 6 whitespace-separated
// fields. The scheduler rejects anything the cron parser cannot handle.
func isValidCronExpression(cron string) bool {
	fields := strings.Fields(cron)
	return len(fields) == 5 || len(fields) == 6
}

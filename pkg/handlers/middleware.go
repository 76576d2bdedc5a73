package handlers

import (
	"fmt"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// sanitizeConfig removes sensitive information from config before returning
func (h *HandlerService) sanitizeConfig() map[string]interface{} {
	cfg := h.config
	slotsCfg := cfg.GetSlotsConfig()
	monitorCfg := cfg.GetMonitorConfig()
	telegramCfg := cfg.GetTelegramConfig()
	webhookCfg := cfg.GetWebhookConfig()
	bookingCfg := cfg.GetBookingConfig()
	historyCfg := cfg.GetClickHouseConfig()

	sanitized := map[string]interface{}{
		"app": cfg.App,
		"slots": map[string]interface{}{
			"endpoint":    slotsCfg.Endpoint,
			"timeout":     slotsCfg.Timeout,
			"rate_limit":  slotsCfg.RateLimit,
			"rate_window": slotsCfg.RateWindow,
			"has_api_key": slotsCfg.APIKey != "",
		},
		"monitor": map[string]interface{}{
			"interval":         monitorCfg.Interval,
			"duration_minutes": monitorCfg.DurationMinutes,
			"cities":           monitorCfg.Cities,
			"startup_notice":   monitorCfg.StartupNotice,
			"book_on_slot":     monitorCfg.BookOnSlot,
		},
		"notifications": map[string]interface{}{
			"telegram": map[string]interface{}{
				"enabled":       telegramCfg.Enabled,
				"chat_id":       maskChatID(telegramCfg.ChatID),
				"cooldown":      telegramCfg.Cooldown,
				"has_bot_token": telegramCfg.BotToken != "",
			},
			"webhook": map[string]interface{}{
				"enabled":     webhookCfg.Enabled,
				"url":         maskWebhookURL(webhookCfg.URL),
				"max_retries": webhookCfg.MaxRetries,
			},
		},
		"booking": map[string]interface{}{
			"enabled":            bookingCfg.Enabled,
			"headless":           bookingCfg.Headless,
			"country_code":       bookingCfg.Portal.CountryCode,
			"consular_id":        bookingCfg.Portal.ConsularID,
			"has_credentials":    bookingCfg.Portal.Username != "" && bookingCfg.Portal.Password != "",
			"has_captcha_solver": bookingCfg.Captcha.Provider != "" && bookingCfg.Captcha.APIKey != "",
		},
		"history": map[string]interface{}{
			"enabled":  historyCfg.Enabled,
			"hosts":    historyCfg.Hosts,
			"port":     historyCfg.Port,
			"database": historyCfg.Database,
			"protocol": historyCfg.Protocol,
		},
	}

	return sanitized
}

// maskWebhookURL hides the sensitive part of a webhook URL so it can be
// shown in API responses.
func maskWebhookURL(webhookURL string) string {
	if webhookURL == "" {
		return ""
	}

	if len(webhookURL) > 20 {
		return webhookURL[:10] + "***" + webhookURL[len(webhookURL)-7:]
	}
	return "***"
}

// maskChatID hides the middle of a chat identifier
func maskChatID(chatID string) string {
	if chatID == "" {
		return ""
	}

	if len(chatID) > 8 {
		return chatID[:4] + "***" + chatID[len(chatID)-4:]
	}
	return "***"
}

// parseLimit reads the limit query parameter, clamped to [1, max]
func parseLimit(c *gin.Context, def, max int) int {
	raw := c.DefaultQuery("limit", strconv.Itoa(def))
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 1 {
		return def
	}
	if limit > max {
		return max
	}
	return limit
}

// formatDuration formats a duration as a readable string
func formatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%.0fms", float64(d.Nanoseconds())/1e6)
	}
	if d < time.Minute {
		return fmt.Sprintf("%.1fs", d.Seconds())
	}
	if d < time.Hour {
		return fmt.Sprintf("%.1fm", d.Minutes())
	}
	return fmt.Sprintf("%.1fh", d.Hours())
}

// getCurrentTimestamp returns the current UTC timestamp
func getCurrentTimestamp() time.Time {
	return time.Now().UTC()
}

// buildTaskResponse builds the standard task acknowledgement
func buildTaskResponse(taskID, status, message string) map[string]interface{} {
	return map[string]interface{}{
		"task_id":   taskID,
		"status":    status,
		"message":   message,
		"timestamp": getCurrentTimestamp(),
	}
}

// buildSuccessResponse builds a success response
func buildSuccessResponse(data interface{}) map[string]interface{} {
	response := map[string]interface{}{
		"success":   true,
		"timestamp": getCurrentTimestamp(),
	}

	if data != nil {
		response["data"] = data
	}

	return response
}

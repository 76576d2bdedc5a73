package handlers

import (
	"context"
	"net/http"
	"time"

	"visawatch/pkg/logger"
	_ "visawatch/pkg/models"
	"visawatch/pkg/notifier"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// notificationSendTimeout bounds one outbound test delivery.
const notificationSendTimeout = 10 * time.Second

// SendTestNotification sends a test message through the configured channels
// @Summary Send test notification
// @Description Sends a fixed test message through every configured channel, or a single named one. Useful for verifying tokens and URLs before relying on alerts.
// @Tags Notifications
// @Accept json
// @Produce json
// @Param request body models.NotificationTestRequest true "Test parameters"
// @Success 200 {object} models.MessageResponse "Test message delivered"
// @Failure 400 {object} models.ErrorResponse "Unknown channel"
// @Failure 500 {object} models.ErrorResponse "No channel accepted the message"
// @Failure 503 {object} models.ErrorResponse "No channels configured"
// @Router /notifications/test [post]
func (h *HandlerService) SendTestNotification(c *gin.Context) {
	if len(h.notifiers) == 0 {
		HandleError(c, NewServiceUnavailableError("No notification channels configured", nil))
		return
	}

	var req struct {
		Channel string `json:"channel"`
	}

	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			HandleError(c, NewBadRequestError("Invalid request body", err))
			return
		}
	}

	selected := h.notifiers
	if req.Channel != "" {
		selected = nil
		for _, n := range h.notifiers {
			if n.Name() == req.Channel {
				selected = append(selected, n)
			}
		}
		if len(selected) == 0 {
			HandleError(c, NewBadRequestError("Unknown notification channel", nil))
			return
		}
	}

	message := notifier.FormatTestMessage()
	results := make(map[string]interface{}, len(selected))
	delivered := 0

	for _, n := range selected {
		sendCtx, cancel := context.WithTimeout(c.Request.Context(), notificationSendTimeout)
		started := time.Now()
		err := n.SendMessage(sendCtx, message)
		cancel()

		if err != nil {
			logger.Warn("Test notification failed",
				zap.String("channel", n.Name()),
				zap.Error(err))
			results[n.Name()] = gin.H{
				"status": "failed",
				"error":  err.Error(),
			}
			continue
		}

		delivered++
		results[n.Name()] = gin.H{
			"status":   "sent",
			"duration": formatDuration(time.Since(started)),
		}
	}

	if delivered == 0 {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   true,
			"message": "Test message reached no channel",
			"results": results,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "Test message delivered",
		"delivered": delivered,
		"results":   results,
		"timestamp": getCurrentTimestamp(),
	})
}

// GetRecentNotifications returns recorded notification deliveries
// @Summary Get recent notifications
// @Description Returns journaled outbound notifications, newest first
// @Tags Notifications
// @Accept json
// @Produce json
// @Param limit query int false "Maximum records returned" default(50) minimum(1) maximum(500)
// @Success 200 {object} models.NotificationListResponse "Records retrieved successfully"
// @Failure 500 {object} models.ErrorResponse "Query failed"
// @Failure 503 {object} models.ErrorResponse "Journal not available"
// @Router /notifications/recent [get]
func (h *HandlerService) GetRecentNotifications(c *gin.Context) {
	if h.journal == nil {
		HandleError(c, NewServiceUnavailableError("Notification journal not available", nil))
		return
	}

	limit := parseLimit(c, 50, 500)

	records, err := h.journal.RecentNotifications(c.Request.Context(), limit)
	if err != nil {
		HandleError(c, NewInternalServerError("Failed to query notifications", err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"notifications": records,
		"count":         len(records),
	})
}

// GetNotificationStatus returns notification channel configuration
// @Summary Get notification channel status
// @Description Returns which channels are configured, with credentials masked
// @Tags Notifications
// @Accept json
// @Produce json
// @Success 200 {object} models.NotificationsView "Status retrieved successfully"
// @Router /notifications/status [get]
func (h *HandlerService) GetNotificationStatus(c *gin.Context) {
	telegramCfg := h.config.GetTelegramConfig()
	webhookCfg := h.config.GetWebhookConfig()

	channels := make([]string, 0, len(h.notifiers))
	for _, n := range h.notifiers {
		channels = append(channels, n.Name())
	}

	status := gin.H{
		"active_channels": channels,
		"telegram": gin.H{
			"enabled":       telegramCfg.Enabled,
			"configured":    telegramCfg.BotToken != "" && telegramCfg.ChatID != "",
			"chat_id":       maskChatID(telegramCfg.ChatID),
			"cooldown":      telegramCfg.Cooldown,
			"has_bot_token": telegramCfg.BotToken != "",
		},
		"webhook": gin.H{
			"enabled":     webhookCfg.Enabled,
			"configured":  webhookCfg.URL != "",
			"url":         maskWebhookURL(webhookCfg.URL),
			"max_retries": webhookCfg.MaxRetries,
		},
		"timestamp": getCurrentTimestamp(),
	}

	if h.journal != nil {
		if recent, err := h.journal.RecentNotifications(c.Request.Context(), 5); err == nil {
			status["recent"] = recent
		}
	}

	c.JSON(http.StatusOK, status)
}

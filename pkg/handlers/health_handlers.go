package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	_ "visawatch/pkg/models"
)

// GetStatus returns the overall system status
// @Summary Get system status
// @Description Returns service information including task statistics, monitor state and scheduler status
// @Tags System
// @Accept json
// @Produce json
// @Success 200 {object} models.SystemStatus
// @Router /system/status [get]
func (h *HandlerService) GetStatus(c *gin.Context) {
	status := map[string]interface{}{
		"service":   "visawatch",
		"version":   "1.0.0",
		"status":    "running",
		"timestamp": getCurrentTimestamp(),
		"uptime":    int64(time.Since(h.startedAt).Seconds()),
		"tasks": map[string]interface{}{
			"running": h.taskMgr.GetRunningTaskCount(),
			"total":   len(h.taskMgr.GetTasks()) + len(h.taskMgr.GetTaskHistory()),
		},
	}

	if h.mon != nil {
		status["monitor"] = h.mon.Status()
	}

	if h.scheduler != nil {
		status["scheduler"] = h.scheduler.GetStatus()
	}

	c.JSON(http.StatusOK, status)
}

// GetAppConfig returns the current configuration (sensitive data masked)
// @Summary Get system configuration
// @Description Returns system configuration information with credentials and tokens masked
// @Tags System
// @Accept json
// @Produce json
// @Success 200 {object} models.ConfigResponse
// @Router /system/config [get]
func (h *HandlerService) GetAppConfig(c *gin.Context) {
	// Return a sanitized version of the config without sensitive information
	sanitizedConfig := h.sanitizeConfig()
	c.JSON(http.StatusOK, sanitizedConfig)
}

// UpdateConfig updates the configuration (not implemented for security)
// @Summary Update system configuration
// @Description This endpoint does not support configuration updates for security reasons
// @Tags System
// @Accept json
// @Produce json
// @Failure 501 {object} models.ErrorResponse
// @Router /system/config [put]
func (h *HandlerService) UpdateConfig(c *gin.Context) {
	c.JSON(http.StatusNotImplemented, gin.H{
		"error":   true,
		"message": "Configuration updates are not supported for security reasons",
	})
}

// HealthCheck performs a comprehensive health check
// @Summary Perform health check
// @Description Checks every wired component. Optional components that are not configured report disabled and do not fail the check. (Note: this endpoint is not under /api/v1)
// @Tags Health
// @Accept json
// @Produce json
// @Success 200 {object} models.HealthResponse "Health check passed"
// @Failure 503 {object} models.ErrorResponse "Service unhealthy"
// @Router /health [get]
func (h *HandlerService) HealthCheck(c *gin.Context) {
	health := map[string]interface{}{
		"status":    "healthy",
		"service":   "visawatch",
		"version":   "1.0.0",
		"timestamp": getCurrentTimestamp(),
		"checks": map[string]interface{}{
			"task_manager": h.checkTaskManagerHealth(),
			"monitor":      h.checkMonitorHealth(),
			"scheduler":    h.checkSchedulerHealth(),
			"history":      h.checkHistoryHealth(c.Request.Context()),
			"config":       h.checkConfigHealth(),
		},
	}

	// Determine overall health status. Components reporting disabled
	// are absent on purpose, not broken.
	allHealthy := true
	checks := health["checks"].(map[string]interface{})
	for _, check := range checks {
		if checkMap, ok := check.(map[string]interface{}); ok {
			if status, exists := checkMap["status"]; exists && status != "healthy" && status != "disabled" {
				allHealthy = false
				break
			}
		}
	}

	if !allHealthy {
		health["status"] = "unhealthy"
		c.JSON(http.StatusServiceUnavailable, health)
		return
	}

	c.JSON(http.StatusOK, health)
}

// checkTaskManagerHealth checks task manager health status
func (h *HandlerService) checkTaskManagerHealth() map[string]interface{} {
	if h.taskMgr == nil {
		return map[string]interface{}{
			"status": "unhealthy",
			"error":  "task manager not initialized",
		}
	}

	return map[string]interface{}{
		"status":        "healthy",
		"running_tasks": h.taskMgr.GetRunningTaskCount(),
	}
}

// checkMonitorHealth checks poll loop health status
func (h *HandlerService) checkMonitorHealth() map[string]interface{} {
	if !h.IsMonitorAvailable() {
		return map[string]interface{}{
			"status": "disabled",
		}
	}

	st := h.mon.Status()
	return map[string]interface{}{
		"status":  "healthy",
		"running": st.Running,
		"checks":  st.Checks,
	}
}

// checkSchedulerHealth checks scheduler health status
func (h *HandlerService) checkSchedulerHealth() map[string]interface{} {
	if h.scheduler == nil {
		return map[string]interface{}{
			"status": "disabled",
		}
	}

	return map[string]interface{}{
		"status":    "healthy",
		"job_count": len(h.scheduler.GetJobs()),
	}
}

// checkHistoryHealth checks the check-history store connection
func (h *HandlerService) checkHistoryHealth(ctx context.Context) map[string]interface{} {
	if h.store == nil {
		return map[string]interface{}{
			"status": "disabled",
		}
	}

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	if err := h.store.Ping(pingCtx); err != nil {
		return map[string]interface{}{
			"status": "unhealthy",
			"error":  err.Error(),
		}
	}

	return map[string]interface{}{
		"status": "healthy",
	}
}

// checkConfigHealth checks configuration health status
func (h *HandlerService) checkConfigHealth() map[string]interface{} {
	if h.config == nil {
		return map[string]interface{}{
			"status": "unhealthy",
			"error":  "configuration not loaded",
		}
	}

	if err := h.config.ValidateConfig(); err != nil {
		return map[string]interface{}{
			"status": "unhealthy",
			"error":  err.Error(),
		}
	}

	return map[string]interface{}{
		"status":        "healthy",
		"config_loaded": true,
	}
}

package handlers

import (
	"errors"
	"net/http"

	"visawatch/pkg/logger"
	_ "visawatch/pkg/models"
	"visawatch/pkg/monitor"
	"visawatch/pkg/tasks"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// GetMonitorStatus returns the poll loop status
// @Summary Get monitor status
// @Description Returns whether the poll loop is running, how many checks it has made and what its last check found
// @Tags Monitor
// @Accept json
// @Produce json
// @Success 200 {object} models.MonitorStatus
// @Failure 503 {object} models.ErrorResponse "Monitor not available"
// @Router /monitor/status [get]
func (h *HandlerService) GetMonitorStatus(c *gin.Context) {
	if !h.IsMonitorAvailable() {
		HandleError(c, NewServiceUnavailableError("Monitor not available", nil))
		return
	}

	c.JSON(http.StatusOK, h.mon.Status())
}

// StartMonitor launches the poll loop
// @Summary Start the monitor
// @Description Launches the continuous poll loop in the background. A duration limits the run; zero runs until stopped.
// @Tags Monitor
// @Accept json
// @Produce json
// @Param request body models.MonitorStartRequest true "Start parameters"
// @Success 200 {object} models.MessageResponse "Monitor started"
// @Failure 400 {object} models.ErrorResponse "Invalid request body"
// @Failure 409 {object} models.ErrorResponse "Monitor already running"
// @Failure 503 {object} models.ErrorResponse "Monitor not available"
// @Router /monitor/start [post]
func (h *HandlerService) StartMonitor(c *gin.Context) {
	if h.monitorCtl == nil {
		HandleError(c, NewServiceUnavailableError("Monitor not available", nil))
		return
	}

	var req struct {
		DurationMinutes int `json:"duration_minutes"`
	}

	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			HandleError(c, NewBadRequestError("Invalid request body", err))
			return
		}
	}

	if req.DurationMinutes < 0 {
		HandleError(c, NewBadRequestError("duration_minutes cannot be negative", nil))
		return
	}

	if err := h.monitorCtl.StartMonitor(req.DurationMinutes); err != nil {
		switch {
		case errors.Is(err, monitor.ErrAlreadyRunning):
			HandleError(c, NewConflictError("Monitor already running", err))
		case errors.Is(err, tasks.ErrMonitorUnavailable):
			HandleError(c, NewServiceUnavailableError("Monitor not available", err))
		default:
			HandleError(c, NewInternalServerError("Failed to start monitor", err))
		}
		return
	}

	logger.Info("Monitor started via API", zap.Int("duration_minutes", req.DurationMinutes))

	c.JSON(http.StatusOK, buildSuccessResponse(gin.H{
		"monitor":          "started",
		"duration_minutes": req.DurationMinutes,
	}))
}

// StopMonitor cancels the poll loop
// @Summary Stop the monitor
// @Description Requests cancellation of an active poll loop. The loop winds down after its current cycle.
// @Tags Monitor
// @Accept json
// @Produce json
// @Success 200 {object} models.MessageResponse "Stop requested"
// @Failure 404 {object} models.ErrorResponse "Monitor is not running"
// @Failure 503 {object} models.ErrorResponse "Monitor not available"
// @Router /monitor/stop [post]
func (h *HandlerService) StopMonitor(c *gin.Context) {
	if h.monitorCtl == nil {
		HandleError(c, NewServiceUnavailableError("Monitor not available", nil))
		return
	}

	if err := h.monitorCtl.StopMonitor(); err != nil {
		if errors.Is(err, tasks.ErrMonitorNotRunning) {
			HandleError(c, NewNotFoundError("Monitor is not running", err))
			return
		}
		HandleError(c, NewInternalServerError("Failed to stop monitor", err))
		return
	}

	logger.Info("Monitor stop requested via API")

	c.JSON(http.StatusOK, buildSuccessResponse(gin.H{
		"monitor": "stopping",
	}))
}

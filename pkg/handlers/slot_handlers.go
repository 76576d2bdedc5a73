package handlers

import (
	"net/http"

	"visawatch/pkg/logger"
	_ "visawatch/pkg/models"
	"visawatch/pkg/slots"
	"visawatch/pkg/tasks"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// GetLatestSlots returns the most recent availability report
// @Summary Get latest availability report
// @Description Returns the monitor's most recent classified availability report, covering every location with open slots
// @Tags Slots
// @Accept json
// @Produce json
// @Success 200 {object} models.LatestSlotsResponse "Latest report"
// @Failure 404 {object} models.ErrorResponse "No check recorded yet"
// @Failure 503 {object} models.ErrorResponse "Monitor not available"
// @Router /slots/latest [get]
func (h *HandlerService) GetLatestSlots(c *gin.Context) {
	if h.mon == nil {
		HandleError(c, NewServiceUnavailableError("Monitor not available", nil))
		return
	}

	report := h.mon.LastReport()
	if report.CheckedAt.IsZero() {
		HandleError(c, NewNotFoundError("No check recorded yet", nil))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"locations":      report.All,
		"main_locations": len(report.Main),
		"total_slots":    report.TotalMainSlots(),
		"checked_at":     report.CheckedAt,
	})
}

// TriggerCheck runs a one-shot slot check
// @Summary Trigger a slot check
// @Description Fetches and classifies the slot feed once, outside the monitor's regular cadence. With notify set, main-consulate availability is alerted through the configured channels.
// @Tags Slots
// @Accept json
// @Produce json
// @Param check body models.SlotCheckRequest true "Check parameters"
// @Success 200 {object} models.TaskAckResponse "Check started"
// @Failure 400 {object} models.ErrorResponse "Invalid request body"
// @Failure 503 {object} models.ErrorResponse "Task limit reached"
// @Router /slots/check [post]
func (h *HandlerService) TriggerCheck(c *gin.Context) {
	var req struct {
		Notify bool `json:"notify"`
	}

	// An empty body means a plain check without alerting.
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			HandleError(c, NewBadRequestError("Invalid request body", err))
			return
		}
	}

	logger.Info("Triggering slot check", zap.Bool("notify", req.Notify))

	taskReq := &tasks.TaskRequest{
		Type:   tasks.TaskTypeCheck,
		Config: tasks.TaskConfig{Notify: req.Notify},
	}

	result, ok := h.submitTask(c, taskReq)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, buildTaskResponse(result.ID, "started", "Slot check started"))
}

// GetConsulates returns the known consulate registry
// @Summary List known consulates
// @Description Returns the consulates the classifier recognises, with their portal facility identifiers
// @Tags Slots
// @Accept json
// @Produce json
// @Success 200 {object} models.MessageResponse "Known consulates"
// @Router /slots/consulates [get]
func (h *HandlerService) GetConsulates(c *gin.Context) {
	names := slots.KnownConsulates()

	consulates := make([]gin.H, 0, len(names))
	for _, name := range names {
		consulates = append(consulates, gin.H{
			"name":        name,
			"facility_id": slots.FacilityID(name),
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"consulates": consulates,
		"count":      len(consulates),
	})
}

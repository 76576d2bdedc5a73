package handlers

import (
	"errors"
	"net/http"

	"visawatch/pkg/journal"
	"visawatch/pkg/logger"
	_ "visawatch/pkg/models"
	"visawatch/pkg/slots"
	"visawatch/pkg/tasks"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CreateBookingAttempt runs one booking attempt
// @Summary Trigger a booking attempt
// @Description Starts one end-to-end booking run against the portal for the given consulate. Best effort: the attempt is recorded in the journal whether or not it books.
// @Tags Booking
// @Accept json
// @Produce json
// @Param attempt body models.BookingAttemptRequest true "Attempt parameters"
// @Success 201 {object} models.TaskAckResponse "Attempt started"
// @Failure 400 {object} models.ErrorResponse "Invalid request parameters"
// @Failure 503 {object} models.ErrorResponse "Task limit reached"
// @Router /booking/attempts [post]
func (h *HandlerService) CreateBookingAttempt(c *gin.Context) {
	var req struct {
		Consulate  string `json:"consulate"`
		TargetDate string `json:"target_date"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		HandleError(c, NewBadRequestError("Invalid request body", err))
		return
	}

	if err := ValidateRequired(req.Consulate, "consulate"); err != nil {
		HandleError(c, err)
		return
	}
	if err := ValidateDate(req.TargetDate, "target_date"); err != nil {
		HandleError(c, err)
		return
	}
	if _, ok := slots.LookupConsulate(req.Consulate); !ok {
		HandleError(c, NewBadRequestError("Unknown consulate", nil))
		return
	}

	logger.Info("Triggering booking attempt",
		zap.String("consulate", req.Consulate),
		zap.String("target_date", req.TargetDate))

	taskReq := &tasks.TaskRequest{
		Type: tasks.TaskTypeBooking,
		Config: tasks.TaskConfig{
			Consulate:  req.Consulate,
			TargetDate: req.TargetDate,
		},
	}

	result, ok := h.submitTask(c, taskReq)
	if !ok {
		return
	}

	c.JSON(http.StatusCreated, buildTaskResponse(result.ID, "started", "Booking attempt started"))
}

// GetBookingAttempts returns recorded booking attempts
// @Summary Get booking attempts
// @Description Returns journaled booking attempts, newest first
// @Tags Booking
// @Accept json
// @Produce json
// @Param limit query int false "Maximum attempts returned" default(20) minimum(1) maximum(200)
// @Success 200 {object} models.AttemptListResponse "Attempts retrieved successfully"
// @Failure 500 {object} models.ErrorResponse "Query failed"
// @Failure 503 {object} models.ErrorResponse "Journal not available"
// @Router /booking/attempts [get]
func (h *HandlerService) GetBookingAttempts(c *gin.Context) {
	if h.journal == nil {
		HandleError(c, NewServiceUnavailableError("Booking journal not available", nil))
		return
	}

	limit := parseLimit(c, 20, 200)

	attempts, err := h.journal.RecentAttempts(c.Request.Context(), limit)
	if err != nil {
		HandleError(c, NewInternalServerError("Failed to query booking attempts", err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"attempts": attempts,
		"count":    len(attempts),
	})
}

// GetBookingAttempt returns one booking attempt
// @Summary Get booking attempt details
// @Description Returns one journaled attempt by its UUID, step trail included
// @Tags Booking
// @Accept json
// @Produce json
// @Param id path string true "Attempt UUID"
// @Success 200 {object} models.AttemptEntry "Attempt retrieved successfully"
// @Failure 404 {object} models.ErrorResponse "Attempt not found"
// @Failure 503 {object} models.ErrorResponse "Journal not available"
// @Router /booking/attempts/{id} [get]
func (h *HandlerService) GetBookingAttempt(c *gin.Context) {
	if h.journal == nil {
		HandleError(c, NewServiceUnavailableError("Booking journal not available", nil))
		return
	}

	attemptID := c.Param("id")

	attempt, err := h.journal.AttemptByID(c.Request.Context(), attemptID)
	if err != nil {
		if errors.Is(err, journal.ErrAttemptNotFound) {
			HandleError(c, NewNotFoundError("Booking attempt not found", err))
			return
		}
		HandleError(c, NewInternalServerError("Failed to query booking attempt", err))
		return
	}

	c.JSON(http.StatusOK, attempt)
}

package handlers

import (
	"net/http"
	"strconv"
	"time"

	"visawatch/pkg/analysis"
	_ "visawatch/pkg/models"

	"github.com/gin-gonic/gin"
)

// GetCheckHistory returns recorded checks
// @Summary Get recorded checks
// @Description Returns persisted availability observations, newest first
// @Tags History
// @Accept json
// @Produce json
// @Param limit query int false "Maximum rows returned" default(100) minimum(1) maximum(1000)
// @Success 200 {object} models.CheckHistoryResponse "History retrieved successfully"
// @Failure 500 {object} models.ErrorResponse "Query failed"
// @Failure 503 {object} models.ErrorResponse "Check history not available"
// @Router /history/checks [get]
func (h *HandlerService) GetCheckHistory(c *gin.Context) {
	if h.store == nil {
		HandleError(c, NewServiceUnavailableError("Check history not available", nil))
		return
	}

	limit := parseLimit(c, 100, 1000)

	rows, err := h.store.RecentChecks(c.Request.Context(), limit)
	if err != nil {
		HandleError(c, NewInternalServerError("Failed to query check history", err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"checks": rows,
		"count":  len(rows),
	})
}

// GetDailySummary returns one day's availability digest
// @Summary Get availability summary
// @Description Aggregates recorded checks into a per-day digest. The optional days parameter widens the window and adds a per-day trend.
// @Tags History
// @Accept json
// @Produce json
// @Param day query string false "Day to summarise, YYYY-MM-DD, defaults to today"
// @Param days query int false "Trend window in days ending at the summarised day" default(1) minimum(1) maximum(31)
// @Success 200 {object} models.DailySummaryResponse "Summary computed successfully"
// @Failure 400 {object} models.ErrorResponse "Invalid day parameter"
// @Failure 500 {object} models.ErrorResponse "Query failed"
// @Failure 503 {object} models.ErrorResponse "Check history not available"
// @Router /history/summary [get]
func (h *HandlerService) GetDailySummary(c *gin.Context) {
	if h.store == nil {
		HandleError(c, NewServiceUnavailableError("Check history not available", nil))
		return
	}

	day := time.Now()
	if raw := c.Query("day"); raw != "" {
		parsed, err := time.ParseInLocation("2006-01-02", raw, time.Local)
		if err != nil {
			HandleError(c, NewBadRequestError("day must be YYYY-MM-DD", err))
			return
		}
		day = parsed
	}

	days := 1
	if raw := c.Query("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 31 {
			HandleError(c, NewBadRequestError("days must be between 1 and 31", err))
			return
		}
		days = parsed
	}

	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.Local)

	rows, err := h.store.FetchSince(c.Request.Context(), dayStart.AddDate(0, 0, -(days-1)))
	if err != nil {
		HandleError(c, NewInternalServerError("Failed to query check history", err))
		return
	}

	response := struct {
		analysis.DailySummary
		Trend []analysis.DayCount `json:"trend,omitempty"`
	}{
		DailySummary: analysis.Summarize(rows, dayStart, time.Local),
	}
	if days > 1 {
		response.Trend = analysis.Trend(rows, time.Local)
	}

	c.JSON(http.StatusOK, response)
}

// GetHistoryStats returns check-history store statistics
// @Summary Get history statistics
// @Description Returns how many availability observations the store holds
// @Tags History
// @Accept json
// @Produce json
// @Success 200 {object} models.MessageResponse "Statistics retrieved successfully"
// @Failure 500 {object} models.ErrorResponse "Query failed"
// @Failure 503 {object} models.ErrorResponse "Check history not available"
// @Router /history/stats [get]
func (h *HandlerService) GetHistoryStats(c *gin.Context) {
	if h.store == nil {
		HandleError(c, NewServiceUnavailableError("Check history not available", nil))
		return
	}

	count, err := h.store.CheckCount(c.Request.Context())
	if err != nil {
		HandleError(c, NewInternalServerError("Failed to query check history", err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"total_rows": count,
		"timestamp":  getCurrentTimestamp(),
	})
}

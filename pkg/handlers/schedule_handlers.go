package handlers

import (
	"errors"
	"fmt"
	"net/http"

	_ "visawatch/pkg/models"
	"visawatch/pkg/scheduler"

	"github.com/gin-gonic/gin"
)

// GetSchedulerStatus returns scheduler status
// @Summary Get scheduler status
// @Description Returns the running state of the job scheduler
// @Tags Scheduler
// @Accept json
// @Produce json
// @Success 200 {object} models.SchedulerStatus
// @Failure 503 {object} models.ErrorResponse
// @Router /scheduler/status [get]
func (h *HandlerService) GetSchedulerStatus(c *gin.Context) {
	if !h.IsSchedulerAvailable() {
		HandleError(c, NewServiceUnavailableError("Scheduler not available", nil))
		return
	}

	c.JSON(http.StatusOK, h.scheduler.GetStatus())
}

// GetScheduledJobs returns all scheduled jobs
// @Summary Get scheduled job list
// @Description Returns every configured scheduled job with its next and last run times
// @Tags Scheduler
// @Accept json
// @Produce json
// @Success 200 {object} models.JobListResponse
// @Failure 503 {object} models.ErrorResponse
// @Router /scheduler/jobs [get]
func (h *HandlerService) GetScheduledJobs(c *gin.Context) {
	if !h.IsSchedulerAvailable() {
		HandleError(c, NewServiceUnavailableError("Scheduler not available", nil))
		return
	}

	jobs := h.scheduler.GetJobs()
	c.JSON(http.StatusOK, gin.H{
		"jobs":      jobs,
		"count":     len(jobs),
		"timestamp": getCurrentTimestamp(),
	})
}

// GetScheduledJob returns one scheduled job
// @Summary Get scheduled job details
// @Description Returns one scheduled job by its identifier
// @Tags Scheduler
// @Accept json
// @Produce json
// @Param id path string true "Job identifier"
// @Success 200 {object} models.JobResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 503 {object} models.ErrorResponse
// @Router /scheduler/jobs/{id} [get]
func (h *HandlerService) GetScheduledJob(c *gin.Context) {
	if !h.IsSchedulerAvailable() {
		HandleError(c, NewServiceUnavailableError("Scheduler not available", nil))
		return
	}

	job, err := h.scheduler.GetJob(c.Param("id"))
	if err != nil {
		HandleError(c, NewNotFoundError("Scheduled job not found", err))
		return
	}

	c.JSON(http.StatusOK, job)
}

// CreateScheduledJob creates a new scheduled job
// @Summary Create scheduled job
// @Description Registers a new cron-scheduled task
// @Tags Scheduler
// @Accept json
// @Produce json
// @Param job body models.JobRequest true "Scheduled job parameters"
// @Success 201 {object} models.MessageResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 503 {object} models.ErrorResponse
// @Router /scheduler/jobs [post]
func (h *HandlerService) CreateScheduledJob(c *gin.Context) {
	if !h.IsSchedulerAvailable() {
		HandleError(c, NewServiceUnavailableError("Scheduler not available", nil))
		return
	}

	var job scheduler.ScheduledJob
	if err := c.ShouldBindJSON(&job); err != nil {
		HandleError(c, NewBadRequestError("Invalid request body", err))
		return
	}

	if err := h.validateScheduledJob(&job); err != nil {
		HandleError(c, NewBadRequestError("Job validation failed", err))
		return
	}

	if err := h.scheduler.AddJob(&job); err != nil {
		HandleError(c, NewBadRequestError("Failed to create scheduled job", err))
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"job_id":    job.ID,
		"status":    "created",
		"message":   "Scheduled job created successfully",
		"name":      job.Name,
		"cron":      job.Cron,
		"task":      job.Task,
		"timestamp": getCurrentTimestamp(),
	})
}

// DeleteScheduledJob removes a scheduled job
// @Summary Remove scheduled job
// @Description Unregisters a scheduled job so it never fires again
// @Tags Scheduler
// @Accept json
// @Produce json
// @Param id path string true "Job identifier"
// @Success 200 {object} models.MessageResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 503 {object} models.ErrorResponse
// @Router /scheduler/jobs/{id} [delete]
func (h *HandlerService) DeleteScheduledJob(c *gin.Context) {
	if !h.IsSchedulerAvailable() {
		HandleError(c, NewServiceUnavailableError("Scheduler not available", nil))
		return
	}

	jobID := c.Param("id")

	if err := h.scheduler.RemoveJob(jobID); err != nil {
		if errors.Is(err, scheduler.ErrJobNotFound) {
			HandleError(c, NewNotFoundError("Scheduled job not found", err))
			return
		}
		HandleError(c, NewInternalServerError("Failed to remove scheduled job", err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"job_id":    jobID,
		"status":    "removed",
		"message":   "Scheduled job removed successfully",
		"timestamp": getCurrentTimestamp(),
	})
}

// validateScheduledJob validates scheduled job parameters
func (h *HandlerService) validateScheduledJob(job *scheduler.ScheduledJob) error {
	if err := ValidateRequired(job.Name, "name"); err != nil {
		return err
	}

	if err := ValidateRequired(job.Cron, "cron"); err != nil {
		return err
	}

	if err := ValidateRequired(job.Task, "task"); err != nil {
		return err
	}

	switch job.Task {
	case scheduler.JobTaskSlotCheck, scheduler.JobTaskDailySummary:
	case scheduler.JobTaskBooking:
		// A booking job without a consulate has nothing to book.
		if err := ValidateRequired(job.Config.Consulate, "config.consulate"); err != nil {
			return err
		}
	default:
		return fmt.Errorf("%w: %s", scheduler.ErrUnknownJobTask, job.Task)
	}

	return ValidateDate(job.Config.TargetDate, "config.target_date")
}

package handlers

import (
	"errors"
	"net/http"

	"visawatch/pkg/logger"
	_ "visawatch/pkg/models"
	"visawatch/pkg/tasks"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// submitTask hands a request to the task manager and maps submission
// failures onto API errors. Returns false when a response was already
// written.
func (h *HandlerService) submitTask(c *gin.Context, req *tasks.TaskRequest) (*tasks.TaskResult, bool) {
	// The service context, not the request context: the task outlives
	// this HTTP exchange.
	result, err := h.taskMgr.ExecuteTask(h.ctx, req)
	if err != nil {
		switch {
		case errors.Is(err, tasks.ErrTooManyTasks):
			HandleError(c, NewServiceUnavailableError("Task limit reached", err))
		case errors.Is(err, tasks.ErrUnsupportedTaskType), errors.Is(err, tasks.ErrInvalidTaskConfig):
			HandleError(c, NewBadRequestError("Invalid task request", err))
		default:
			HandleError(c, NewInternalServerError("Failed to start task", err))
		}
		return nil, false
	}

	return result, true
}

// GetTasks returns all active tasks
// @Summary Get task list
// @Description Returns every pending and running task
// @Tags Tasks
// @Accept json
// @Produce json
// @Success 200 {object} models.TaskListResponse "Task list retrieved successfully"
// @Router /tasks [get]
func (h *HandlerService) GetTasks(c *gin.Context) {
	taskList := h.taskMgr.GetTasks()
	c.JSON(http.StatusOK, gin.H{
		"tasks": taskList,
		"count": len(taskList),
	})
}

// CreateTask creates a new task
// @Summary Create new task
// @Description Create and asynchronously execute a task. Supported types: check (one-shot slot check), booking (one booking attempt), summary (availability digest).
// @Tags Tasks
// @Accept json
// @Produce json
// @Param task body models.TaskCreateRequest true "Task request with type and per-type config"
// @Success 201 {object} models.TaskAckResponse "Task created successfully"
// @Failure 400 {object} models.ErrorResponse "Invalid request parameters"
// @Failure 503 {object} models.ErrorResponse "Task limit reached"
// @Router /tasks [post]
func (h *HandlerService) CreateTask(c *gin.Context) {
	var taskReq tasks.TaskRequest
	if err := c.ShouldBindJSON(&taskReq); err != nil {
		HandleError(c, NewBadRequestError("Invalid request body", err))
		return
	}

	if taskReq.Type == "" {
		HandleError(c, NewBadRequestError("Task type is required", nil))
		return
	}

	logger.Info("Creating task",
		zap.String("type", string(taskReq.Type)),
		zap.String("consulate", taskReq.Config.Consulate))

	result, ok := h.submitTask(c, &taskReq)
	if !ok {
		return
	}

	c.JSON(http.StatusCreated, buildTaskResponse(result.ID, "started", "Task started successfully"))
}

// GetTask returns a specific task
// @Summary Get specific task details
// @Description Get a task by ID, including status, timing and result
// @Tags Tasks
// @Accept json
// @Produce json
// @Param id path string true "Task identifier"
// @Success 200 {object} models.TaskResponse "Task details retrieved successfully"
// @Failure 404 {object} models.ErrorResponse "Task not found"
// @Router /tasks/{id} [get]
func (h *HandlerService) GetTask(c *gin.Context) {
	taskID := c.Param("id")

	task, err := h.taskMgr.GetTask(taskID)
	if err != nil {
		HandleError(c, NewNotFoundError("Task not found", err))
		return
	}

	c.JSON(http.StatusOK, task)
}

// DeleteTask cancels a task
// @Summary Cancel task
// @Description Cancel a pending or running task. Finished tasks cannot be cancelled.
// @Tags Tasks
// @Accept json
// @Produce json
// @Param id path string true "Task identifier"
// @Success 200 {object} models.TaskAckResponse "Task cancelled successfully"
// @Failure 400 {object} models.ErrorResponse "Task cannot be cancelled"
// @Failure 404 {object} models.ErrorResponse "Task not found"
// @Router /tasks/{id} [delete]
func (h *HandlerService) DeleteTask(c *gin.Context) {
	taskID := c.Param("id")

	if err := h.taskMgr.CancelTask(taskID); err != nil {
		if errors.Is(err, tasks.ErrTaskNotFound) {
			HandleError(c, NewNotFoundError("Task not found", err))
			return
		}
		HandleError(c, NewBadRequestError("Task cannot be cancelled", err))
		return
	}

	c.JSON(http.StatusOK, buildTaskResponse(taskID, "cancelled", "Task cancelled successfully"))
}

// GetTaskHistory returns finished tasks
// @Summary Get task history
// @Description Returns finished tasks, oldest first
// @Tags Tasks
// @Accept json
// @Produce json
// @Success 200 {object} models.TaskListResponse "History retrieved successfully"
// @Router /tasks/history [get]
func (h *HandlerService) GetTaskHistory(c *gin.Context) {
	taskHistory := h.taskMgr.GetTaskHistory()
	c.JSON(http.StatusOK, gin.H{
		"history":   taskHistory,
		"count":     len(taskHistory),
		"timestamp": getCurrentTimestamp(),
	})
}

package tasks

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"visawatch/pkg/config"
	"visawatch/pkg/logger"
	"visawatch/pkg/monitor"

	"github.com/google/uuid"

	"go.uber.org/zap"
)

// Manager orchestrates one-shot tasks and the monitor loop lifecycle.
// Dependencies are wired with setters; a task whose dependency is
// missing fails with the matching sentinel.
type Manager struct {
	config *config.Config
	ctx    context.Context

	checker   Checker
	booker    Booker
	history   HistoryReader
	notifiers []Notifier

	mon            *monitor.Monitor
	monitorCancel  context.CancelFunc
	monitorRunning bool
	monitorMutex   sync.Mutex

	tasks       map[string]*Task
	tasksMutex  sync.RWMutex
	taskHistory []*Task
	maxTasks    int
	taskTimeout time.Duration
}

// NewManager creates a task manager. ctx bounds every task it starts.
func NewManager(ctx context.Context, cfg *config.Config) *Manager {
	maxTasks := 3
	taskTimeout := time.Hour
	if cfg.Runtime != nil {
		if cfg.Runtime.MaxConcurrentTasks > 0 {
			maxTasks = cfg.Runtime.MaxConcurrentTasks
		}
		if cfg.Runtime.TaskTimeout > 0 {
			taskTimeout = time.Duration(cfg.Runtime.TaskTimeout) * time.Second
		}
	}

	return &Manager{
		config:      cfg,
		ctx:         ctx,
		tasks:       make(map[string]*Task),
		taskHistory: make([]*Task, 0),
		maxTasks:    maxTasks,
		taskTimeout: taskTimeout,
	}
}

// SetChecker wires the slot checker.
func (m *Manager) SetChecker(c Checker) {
	m.checker = c
}

// SetBooker wires the booking bot.
func (m *Manager) SetBooker(b Booker) {
	m.booker = b
}

// SetHistory wires the check-history reader.
func (m *Manager) SetHistory(h HistoryReader) {
	m.history = h
}

// AddNotifier registers an outbound channel for check alerts and
// summary digests.
func (m *Manager) AddNotifier(n Notifier) {
	m.notifiers = append(m.notifiers, n)
}

// SetMonitor wires the poll loop the manager starts and stops.
func (m *Manager) SetMonitor(mon *monitor.Monitor) {
	m.mon = mon
}

// ExecuteTask starts the requested task asynchronously and returns its
// initial state.
func (m *Manager) ExecuteTask(ctx context.Context, req *TaskRequest) (*TaskResult, error) {
	if req.ID == "" {
		req.ID = uuid.New().String()
	}

	if err := m.checkTaskLimit(); err != nil {
		return nil, err
	}

	task := m.createTask(req)
	m.addTask(task)

	go m.executeTaskInternal(task)

	return &TaskResult{
		ID:        task.ID,
		Type:      string(task.Type),
		Status:    string(task.Status),
		StartedAt: task.StartTime,
		Success:   true,
		Message:   "Task started",
	}, nil
}

// GetTask returns a running or finished task by ID.
func (m *Manager) GetTask(taskID string) (*Task, error) {
	m.tasksMutex.RLock()
	defer m.tasksMutex.RUnlock()

	if task, exists := m.tasks[taskID]; exists {
		return task, nil
	}
	for _, task := range m.taskHistory {
		if task.ID == taskID {
			return task, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrTaskNotFound, taskID)
}

// GetTasks returns all active tasks.
func (m *Manager) GetTasks() []*Task {
	m.tasksMutex.RLock()
	defer m.tasksMutex.RUnlock()

	tasks := make([]*Task, 0, len(m.tasks))
	for _, task := range m.tasks {
		tasks = append(tasks, task)
	}
	return tasks
}

// GetTaskHistory returns finished tasks, oldest first.
func (m *Manager) GetTaskHistory() []*Task {
	m.tasksMutex.RLock()
	defer m.tasksMutex.RUnlock()

	history := make([]*Task, len(m.taskHistory))
	copy(history, m.taskHistory)
	return history
}

// CancelTask cancels a running task.
func (m *Manager) CancelTask(taskID string) error {
	m.tasksMutex.Lock()
	defer m.tasksMutex.Unlock()

	task, exists := m.tasks[taskID]
	if !exists {
		return fmt.Errorf("%w: %s", ErrTaskNotFound, taskID)
	}
	if task.Status != TaskStatusRunning && task.Status != TaskStatusPending {
		return fmt.Errorf("task %s is not running (status: %s)", taskID, task.Status)
	}

	if task.Cancel != nil {
		task.Cancel()
	}

	task.Status = TaskStatusCancelled
	task.EndTime = time.Now()
	task.Duration = task.EndTime.Sub(task.StartTime)
	task.Error = "Task was cancelled"

	logger.Info("Task cancelled", zap.String("task_id", taskID))
	return nil
}

// GetRunningTaskCount returns the number of running tasks.
func (m *Manager) GetRunningTaskCount() int {
	m.tasksMutex.RLock()
	defer m.tasksMutex.RUnlock()

	count := 0
	for _, task := range m.tasks {
		if task.Status == TaskStatusRunning {
			count++
		}
	}
	return count
}

// StartMonitor launches the poll loop in the background. durationMinutes
// zero means run until stopped.
func (m *Manager) StartMonitor(durationMinutes int) error {
	if m.mon == nil {
		return ErrMonitorUnavailable
	}

	m.monitorMutex.Lock()
	defer m.monitorMutex.Unlock()

	if m.monitorRunning {
		return monitor.ErrAlreadyRunning
	}

	runCtx, cancel := context.WithCancel(m.ctx)
	m.monitorRunning = true
	m.monitorCancel = cancel

	go func() {
		var err error
		if durationMinutes > 0 {
			err = m.mon.RunFor(runCtx, time.Duration(durationMinutes)*time.Minute)
		} else {
			err = m.mon.Run(runCtx)
		}
		if err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("Monitor run ended with error", zap.Error(err))
		}
		cancel()

		m.monitorMutex.Lock()
		m.monitorRunning = false
		m.monitorCancel = nil
		m.monitorMutex.Unlock()
	}()

	logger.Info("Monitor started", zap.Int("duration_minutes", durationMinutes))
	return nil
}

// StopMonitor cancels an active poll loop.
func (m *Manager) StopMonitor() error {
	m.monitorMutex.Lock()
	defer m.monitorMutex.Unlock()

	if !m.monitorRunning || m.monitorCancel == nil {
		return ErrMonitorNotRunning
	}

	m.monitorCancel()
	logger.Info("Monitor stop requested")
	return nil
}

// MonitorRunning reports whether the manager has an active poll loop.
func (m *Manager) MonitorRunning() bool {
	m.monitorMutex.Lock()
	defer m.monitorMutex.Unlock()
	return m.monitorRunning
}

func (m *Manager) checkTaskLimit() error {
	m.tasksMutex.RLock()
	defer m.tasksMutex.RUnlock()

	runningCount := 0
	for _, task := range m.tasks {
		if task.Status == TaskStatusRunning || task.Status == TaskStatusPending {
			runningCount++
		}
	}

	if runningCount >= m.maxTasks {
		return fmt.Errorf("%w: %d running tasks (max: %d)", ErrTooManyTasks, runningCount, m.maxTasks)
	}
	return nil
}

func (m *Manager) createTask(req *TaskRequest) *Task {
	return &Task{
		ID:        req.ID,
		Type:      req.Type,
		Status:    TaskStatusPending,
		StartTime: time.Now(),
		Config:    req.Config,
	}
}

func (m *Manager) addTask(task *Task) {
	m.tasksMutex.Lock()
	defer m.tasksMutex.Unlock()
	m.tasks[task.ID] = task
}

func (m *Manager) executeTaskInternal(task *Task) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Task execution panicked",
				zap.String("task_id", task.ID),
				zap.Any("panic", r))
			m.finishTask(task, nil, fmt.Errorf("task panicked: %v", r))
		}
	}()

	taskCtx, cancel := context.WithTimeout(m.ctx, m.taskTimeout)
	defer cancel()

	m.tasksMutex.Lock()
	task.Status = TaskStatusRunning
	task.Cancel = cancel
	m.tasksMutex.Unlock()

	logger.Info("Starting task execution",
		zap.String("task_id", task.ID),
		zap.String("type", string(task.Type)))

	var result *TaskResult
	var err error

	switch task.Type {
	case TaskTypeCheck:
		result, err = m.executeCheckTask(taskCtx, task)
	case TaskTypeBooking:
		result, err = m.executeBookingTask(taskCtx, task)
	case TaskTypeSummary:
		result, err = m.executeSummaryTask(taskCtx, task)
	default:
		err = fmt.Errorf("%w: %s", ErrUnsupportedTaskType, task.Type)
	}

	m.finishTask(task, result, err)
}

func (m *Manager) finishTask(task *Task, result *TaskResult, err error) {
	m.tasksMutex.Lock()
	defer m.tasksMutex.Unlock()

	// A cancelled task keeps its cancelled state.
	if task.Status == TaskStatusCancelled {
		delete(m.tasks, task.ID)
		m.taskHistory = append(m.taskHistory, task)
		m.trimHistoryLocked()
		return
	}

	task.EndTime = time.Now()
	task.Duration = task.EndTime.Sub(task.StartTime)

	if err != nil {
		task.Status = TaskStatusFailed
		task.Error = err.Error()
		logger.Error("Task execution failed",
			zap.String("task_id", task.ID),
			zap.Error(err))
	} else {
		task.Status = TaskStatusCompleted
		task.Result = result
		logger.Info("Task execution completed",
			zap.String("task_id", task.ID),
			zap.Duration("duration", task.Duration))
	}

	delete(m.tasks, task.ID)
	m.taskHistory = append(m.taskHistory, task)
	m.trimHistoryLocked()
}

func (m *Manager) trimHistoryLocked() {
	if len(m.taskHistory) > 100 {
		m.taskHistory = m.taskHistory[1:]
	}
}

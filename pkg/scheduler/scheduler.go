package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"visawatch/pkg/config"
	"visawatch/pkg/logger"
	"visawatch/pkg/tasks"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Job statuses
const (
	JobStatusScheduled = "scheduled"
	JobStatusRunning   = "running"
	JobStatusCompleted = "completed"
	JobStatusFailed    = "failed"
)

// Job task names, matching the configuration file values.
const (
	JobTaskSlotCheck    = "slot_check"
	JobTaskDailySummary = "daily_summary"
	JobTaskBooking      = "booking"
)

// Error variables
var (
	ErrJobNotFound    = errors.New("job not found")
	ErrUnknownJobTask = errors.New("unknown job task")
)

// Config holds scheduler configuration
type Config struct {
	Config *config.Config
}

// TaskScheduler manages scheduled tasks using cron
type TaskScheduler struct {
	cron      *cron.Cron
	config    *Config
	ctx       context.Context
	jobs      map[string]*ScheduledJob
	jobsMutex sync.RWMutex
	taskMgr   tasks.TaskManager

	taskPollInterval time.Duration
}

// ScheduledJob represents a scheduled job
type ScheduledJob struct {
	ID      string    `json:"id"`
	Name    string    `json:"name"`
	Cron    string    `json:"cron"`
	Task    string    `json:"task"`
	Config  JobConfig `json:"config"`
	NextRun time.Time `json:"next_run"`
	LastRun time.Time `json:"last_run"`
	Status  string    `json:"status"`
	EntryID cron.EntryID
}

// JobConfig holds job-specific configuration
type JobConfig struct {
	Notify      bool   `json:"notify,omitempty"`       // slot_check
	SummaryDays int    `json:"summary_days,omitempty"` // daily_summary
	Consulate   string `json:"consulate,omitempty"`    // booking
	TargetDate  string `json:"target_date,omitempty"`  // booking
}

// NewTaskScheduler creates a task scheduler driving the given task
// manager. The manager carries the checker, booker, history and
// notifier wiring; the scheduler only decides when tasks run.
func NewTaskScheduler(ctx context.Context, cfg *Config, taskMgr tasks.TaskManager) (*TaskScheduler, error) {
	logger.Info("Initializing task scheduler")

	cronScheduler := cron.New(
		cron.WithChain(cron.Recover(cron.DefaultLogger)),
	)

	scheduler := &TaskScheduler{
		cron:             cronScheduler,
		config:           cfg,
		ctx:              ctx,
		jobs:             make(map[string]*ScheduledJob),
		taskMgr:          taskMgr,
		taskPollInterval: 2 * time.Second,
	}

	if err := scheduler.loadConfiguredJobs(); err != nil {
		return nil, fmt.Errorf("failed to load configured jobs: %w", err)
	}

	logger.Info("Task scheduler initialized", zap.Int("job_count", len(scheduler.jobs)))
	return scheduler, nil
}

// Start starts the task scheduler and blocks until the context is
// cancelled.
func (ts *TaskScheduler) Start() error {
	logger.Info("Starting task scheduler")

	ts.cron.Start()

	// Entries get their first fire time only after cron starts.
	ts.jobsMutex.Lock()
	for _, job := range ts.jobs {
		if err := ts.updateJobNextRunTime(job); err != nil {
			logger.Warn("Failed to update next run time after start",
				zap.String("job_name", job.Name),
				zap.Error(err))
		}
	}
	ts.jobsMutex.Unlock()

	ts.logScheduledJobs()

	<-ts.ctx.Done()
	logger.Info("Task scheduler context cancelled")

	return nil
}

// Shutdown gracefully shuts down the task scheduler
func (ts *TaskScheduler) Shutdown(ctx context.Context) error {
	logger.Info("Shutting down task scheduler")

	// Stop accepting new jobs
	cronCtx := ts.cron.Stop()

	// Wait for running jobs to complete or timeout
	select {
	case <-cronCtx.Done():
		logger.Info("All scheduled jobs completed")
	case <-ctx.Done():
		logger.Warn("Scheduler shutdown timeout, some jobs may still be running")
	}

	return nil
}

// AddJob adds a new scheduled job
func (ts *TaskScheduler) AddJob(job *ScheduledJob) error {
	ts.jobsMutex.Lock()
	defer ts.jobsMutex.Unlock()

	if job.ID == "" {
		job.ID = uuid.New().String()
	}

	jobFunc := ts.createJobFunction(job)

	entryID, err := ts.cron.AddFunc(job.Cron, jobFunc)
	if err != nil {
		return fmt.Errorf("failed to add cron job: %w", err)
	}

	job.EntryID = entryID
	job.Status = JobStatusScheduled

	if err := ts.updateJobNextRunTime(job); err != nil {
		logger.Warn("Failed to update next run time", zap.String("job_name", job.Name), zap.Error(err))
	}

	ts.jobs[job.ID] = job

	logger.Info("Added scheduled job",
		zap.String("job_id", job.ID),
		zap.String("job_name", job.Name),
		zap.String("cron", job.Cron),
		zap.String("task", job.Task),
		zap.Time("next_run", job.NextRun),
	)

	return nil
}

// RemoveJob removes a scheduled job
func (ts *TaskScheduler) RemoveJob(jobID string) error {
	ts.jobsMutex.Lock()
	defer ts.jobsMutex.Unlock()

	job, exists := ts.jobs[jobID]
	if !exists {
		return fmt.Errorf("%w: %s", ErrJobNotFound, jobID)
	}

	ts.cron.Remove(job.EntryID)
	delete(ts.jobs, jobID)

	logger.Info("Removed scheduled job", zap.String("job_id", jobID), zap.String("job_name", job.Name))
	return nil
}

// GetJobs returns all scheduled jobs
func (ts *TaskScheduler) GetJobs() []*ScheduledJob {
	ts.jobsMutex.RLock()
	defer ts.jobsMutex.RUnlock()

	jobs := make([]*ScheduledJob, 0, len(ts.jobs))
	for _, job := range ts.jobs {
		ts.updateJobNextRunTime(job)
		jobs = append(jobs, job)
	}

	return jobs
}

// GetJob returns a specific scheduled job
func (ts *TaskScheduler) GetJob(jobID string) (*ScheduledJob, error) {
	ts.jobsMutex.RLock()
	defer ts.jobsMutex.RUnlock()

	job, exists := ts.jobs[jobID]
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrJobNotFound, jobID)
	}

	return job, nil
}

// GetStatus returns scheduler status
func (ts *TaskScheduler) GetStatus() map[string]interface{} {
	ts.jobsMutex.RLock()
	defer ts.jobsMutex.RUnlock()

	status := map[string]interface{}{
		"running":   ts.cron != nil,
		"job_count": len(ts.jobs),
		"entries":   len(ts.cron.Entries()),
		"timestamp": time.Now().UTC(),
	}

	return status
}

// loadConfiguredJobs loads predefined jobs from configuration
func (ts *TaskScheduler) loadConfiguredJobs() error {
	schedCfg := ts.config.Config.GetSchedulerConfig()

	if schedCfg.Enabled && len(schedCfg.Jobs) > 0 {
		logger.Info("Loading jobs from configuration file", zap.Int("count", len(schedCfg.Jobs)))

		for _, configJob := range schedCfg.Jobs {
			job := &ScheduledJob{
				Name: configJob.Name,
				Task: configJob.Task,
				Cron: configJob.Cron,
				Config: JobConfig{
					Notify:      configJob.Config.Notify,
					SummaryDays: configJob.Config.SummaryDays,
					Consulate:   configJob.Config.Consulate,
					TargetDate:  configJob.Config.TargetDate,
				},
			}

			if err := ts.AddJob(job); err != nil {
				logger.Warn("Failed to add configured job", zap.String("job_name", job.Name), zap.Error(err))
			} else {
				logger.Info("Added configured job", zap.String("job_name", job.Name), zap.String("task", job.Task), zap.String("cron", job.Cron))
			}
		}

		return nil
	}

	logger.Info("No jobs found in configuration, loading default jobs")
	defaultJobs := ts.getDefaultJobs()

	for _, job := range defaultJobs {
		if err := ts.AddJob(job); err != nil {
			logger.Warn("Failed to add default job", zap.String("job_name", job.Name), zap.Error(err))
		}
	}

	return nil
}

// getDefaultJobs returns default scheduled jobs based on configuration.
// Booking never runs by default; a scheduled attempt needs an explicit
// job with a consulate.
func (ts *TaskScheduler) getDefaultJobs() []*ScheduledJob {
	var jobs []*ScheduledJob

	notify := ts.hasNotificationChannel()

	// Periodic slot check; alerts only when a channel is configured.
	jobs = append(jobs, &ScheduledJob{
		Name: "slot_check_every_10m",
		Cron: "*/10 * * * *",
		Task: JobTaskSlotCheck,
		Config: JobConfig{
			Notify: notify,
		},
	})

	// Evening digest needs both the history store and a channel.
	if chCfg := ts.config.Config.GetClickHouseConfig(); chCfg.Enabled && notify {
		jobs = append(jobs, &ScheduledJob{
			Name: "daily_summary_report",
			Cron: "0 21 * * *",
			Task: JobTaskDailySummary,
		})
	}

	logger.Info("Generated default jobs", zap.Int("count", len(jobs)))
	return jobs
}

// hasNotificationChannel reports whether at least one outbound channel
// is usable.
func (ts *TaskScheduler) hasNotificationChannel() bool {
	if tg := ts.config.Config.GetTelegramConfig(); tg.Enabled && tg.BotToken != "" && tg.ChatID != "" {
		return true
	}
	if wh := ts.config.Config.GetWebhookConfig(); wh.Enabled && wh.URL != "" {
		return true
	}
	return false
}

// createJobFunction creates a function to execute for a scheduled job
func (ts *TaskScheduler) createJobFunction(job *ScheduledJob) func() {
	return func() {
		logger.Info("Executing scheduled job", zap.String("job_id", job.ID), zap.String("job_name", job.Name), zap.String("task", job.Task))

		ts.updateJobStatus(job, JobStatusRunning)
		ts.updateJobLastRun(job, time.Now())

		taskReq, err := ts.buildTaskRequest(job)
		if err != nil {
			logger.Error("Scheduled job has no runnable task", zap.String("job_name", job.Name), zap.Error(err))
			ts.updateJobStatus(job, JobStatusFailed)
			return
		}

		result, err := ts.taskMgr.ExecuteTask(ts.ctx, taskReq)
		if err != nil {
			logger.Error("Scheduled job failed to start", zap.String("job_name", job.Name), zap.Error(err))
			ts.updateJobStatus(job, JobStatusFailed)
			return
		}

		// ExecuteTask only submits; follow the task to its end so the
		// job status reflects the real outcome.
		task := ts.awaitTask(result.ID)
		if task == nil {
			ts.updateJobStatus(job, JobStatusFailed)
			return
		}

		if task.Status == tasks.TaskStatusCompleted {
			logger.Info("Scheduled job completed",
				zap.String("job_name", job.Name),
				zap.String("task_id", task.ID),
				zap.Duration("duration", task.Duration),
			)
			ts.updateJobStatus(job, JobStatusCompleted)
		} else {
			logger.Error("Scheduled job task did not complete",
				zap.String("job_name", job.Name),
				zap.String("task_id", task.ID),
				zap.String("task_status", string(task.Status)),
				zap.String("task_error", task.Error),
			)
			ts.updateJobStatus(job, JobStatusFailed)
		}
	}
}

// buildTaskRequest maps a job onto the task manager's request types.
func (ts *TaskScheduler) buildTaskRequest(job *ScheduledJob) (*tasks.TaskRequest, error) {
	switch job.Task {
	case JobTaskSlotCheck:
		return &tasks.TaskRequest{
			ID:   uuid.New().String(),
			Type: tasks.TaskTypeCheck,
			Config: tasks.TaskConfig{
				Notify: job.Config.Notify,
			},
		}, nil
	case JobTaskDailySummary:
		return &tasks.TaskRequest{
			ID:   uuid.New().String(),
			Type: tasks.TaskTypeSummary,
			Config: tasks.TaskConfig{
				Days: job.Config.SummaryDays,
			},
		}, nil
	case JobTaskBooking:
		return &tasks.TaskRequest{
			ID:   uuid.New().String(),
			Type: tasks.TaskTypeBooking,
			Config: tasks.TaskConfig{
				Consulate:  job.Config.Consulate,
				TargetDate: job.Config.TargetDate,
			},
		}, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownJobTask, job.Task)
}

// awaitTask polls the task manager until the task reaches a terminal
// state or the scheduler context ends.
func (ts *TaskScheduler) awaitTask(taskID string) *tasks.Task {
	ticker := time.NewTicker(ts.taskPollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ts.ctx.Done():
			return nil
		case <-ticker.C:
			task, err := ts.taskMgr.GetTask(taskID)
			if err != nil {
				logger.Warn("Lost track of scheduled task", zap.String("task_id", taskID), zap.Error(err))
				return nil
			}
			if task.Status != tasks.TaskStatusPending && task.Status != tasks.TaskStatusRunning {
				return task
			}
		}
	}
}

// logScheduledJobs logs information about all scheduled jobs
func (ts *TaskScheduler) logScheduledJobs() {
	ts.jobsMutex.RLock()
	defer ts.jobsMutex.RUnlock()

	if len(ts.jobs) == 0 {
		logger.Info("No scheduled jobs configured")
		return
	}

	logger.Info("Active scheduled jobs:")
	for _, job := range ts.jobs {
		logger.Info("Scheduled job",
			zap.String("job_name", job.Name),
			zap.String("task", job.Task),
			zap.String("cron", job.Cron),
			zap.Time("next_run", job.NextRun),
			zap.String("status", job.Status),
		)
	}
}

// updateJobNextRunTime updates the next run time for a job
func (ts *TaskScheduler) updateJobNextRunTime(job *ScheduledJob) error {
	entries := ts.cron.Entries()
	for _, entry := range entries {
		if entry.ID == job.EntryID {
			job.NextRun = entry.Next
			return nil
		}
	}

	// If not found in entries, try to parse cron expression manually
	if schedule, err := cron.ParseStandard(job.Cron); err == nil {
		job.NextRun = schedule.Next(time.Now())
		return nil
	} else {
		return fmt.Errorf("failed to parse cron expression %s: %w", job.Cron, err)
	}
}

// updateJobStatus updates the status of a job
func (ts *TaskScheduler) updateJobStatus(job *ScheduledJob, status string) {
	ts.jobsMutex.Lock()
	defer ts.jobsMutex.Unlock()
	job.Status = status
}

// updateJobLastRun updates the last run time of a job
func (ts *TaskScheduler) updateJobLastRun(job *ScheduledJob, lastRun time.Time) {
	ts.jobsMutex.Lock()
	defer ts.jobsMutex.Unlock()
	job.LastRun = lastRun
}

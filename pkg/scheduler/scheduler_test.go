package scheduler

import (
	"context"
	"errors"
	"os"
	"sync"
	"testing"
	"time"

	"visawatch/pkg/config"
	"visawatch/pkg/logger"
	"visawatch/pkg/tasks"
)

func TestMain(m *testing.M) {
	logger.InitLogger(true, "")
	os.Exit(m.Run())
}

// fakeTaskManager records submitted requests and replays a scripted
// task state for follow-up polls.
type fakeTaskManager struct {
	mu       sync.Mutex
	requests []*tasks.TaskRequest
	execErr  error
	task     *tasks.Task
}

func (f *fakeTaskManager) ExecuteTask(ctx context.Context, req *tasks.TaskRequest) (*tasks.TaskResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.execErr != nil {
		return nil, f.execErr
	}
	f.requests = append(f.requests, req)
	return &tasks.TaskResult{
		ID:      req.ID,
		Type:    string(req.Type),
		Status:  string(tasks.TaskStatusPending),
		Success: true,
		Message: "Task started",
	}, nil
}

func (f *fakeTaskManager) GetTask(taskID string) (*tasks.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.task == nil {
		return nil, tasks.ErrTaskNotFound
	}
	return f.task, nil
}

func (f *fakeTaskManager) GetTasks() []*tasks.Task        { return nil }
func (f *fakeTaskManager) GetTaskHistory() []*tasks.Task  { return nil }
func (f *fakeTaskManager) CancelTask(taskID string) error { return nil }
func (f *fakeTaskManager) GetRunningTaskCount() int       { return 0 }

func (f *fakeTaskManager) submitted() []*tasks.TaskRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]*tasks.TaskRequest(nil), f.requests...)
}

// quietConfig has no channels, no history store and no configured jobs.
func quietConfig() *config.Config {
	return &config.Config{
		Notifications: &config.NotificationsConfig{
			Telegram: &config.TelegramConfig{Enabled: false},
			Webhook:  &config.WebhookConfig{Enabled: false},
		},
		ClickHouse: &config.ClickHouseConfig{Enabled: false},
		Scheduler:  &config.SchedulerConfig{Enabled: true},
	}
}

func newTestScheduler(t *testing.T, ctx context.Context, cfg *config.Config, mgr tasks.TaskManager) *TaskScheduler {
	t.Helper()
	ts, err := NewTaskScheduler(ctx, &Config{Config: cfg}, mgr)
	if err != nil {
		t.Fatalf("NewTaskScheduler failed: %v", err)
	}
	ts.taskPollInterval = 5 * time.Millisecond
	return ts
}

func TestLoadConfiguredJobs(t *testing.T) {
	cfg := quietConfig()
	cfg.Scheduler.Jobs = []config.ScheduledJob{
		{
			Name:   "morning-check",
			Task:   "slot_check",
			Cron:   "*/5 8-12 * * *",
			Config: config.JobConfig{Notify: true},
		},
		{
			Name:   "evening-digest",
			Task:   "daily_summary",
			Cron:   "0 21 * * *",
			Config: config.JobConfig{SummaryDays: 7},
		},
	}

	ts := newTestScheduler(t, context.Background(), cfg, &fakeTaskManager{})

	jobs := ts.GetJobs()
	if len(jobs) != 2 {
		t.Fatalf("Expected 2 configured jobs, got %d", len(jobs))
	}
	byName := make(map[string]*ScheduledJob, len(jobs))
	for _, job := range jobs {
		byName[job.Name] = job
		if job.Status != JobStatusScheduled {
			t.Errorf("Expected scheduled status for %s, got %s", job.Name, job.Status)
		}
		if job.ID == "" {
			t.Errorf("Expected assigned ID for %s", job.Name)
		}
	}
	if job := byName["morning-check"]; job == nil || job.Task != JobTaskSlotCheck || !job.Config.Notify {
		t.Errorf("Expected notifying slot check job, got %+v", job)
	}
	if job := byName["evening-digest"]; job == nil || job.Task != JobTaskDailySummary || job.Config.SummaryDays != 7 {
		t.Errorf("Expected 7-day summary job, got %+v", job)
	}
}

func TestDefaultJobsQuietSetup(t *testing.T) {
	ts := newTestScheduler(t, context.Background(), quietConfig(), &fakeTaskManager{})

	jobs := ts.GetJobs()
	if len(jobs) != 1 {
		t.Fatalf("Expected only the slot check by default, got %d jobs", len(jobs))
	}
	if jobs[0].Task != JobTaskSlotCheck {
		t.Errorf("Expected slot check job, got %s", jobs[0].Task)
	}
	if jobs[0].Config.Notify {
		t.Error("Expected no notify flag without a configured channel")
	}
}

func TestDefaultJobsWithChannelAndHistory(t *testing.T) {
	cfg := quietConfig()
	cfg.Notifications.Telegram = &config.TelegramConfig{
		Enabled:  true,
		BotToken: "123:abc",
		ChatID:   "42",
	}
	cfg.ClickHouse.Enabled = true

	ts := newTestScheduler(t, context.Background(), cfg, &fakeTaskManager{})

	jobs := ts.GetJobs()
	if len(jobs) != 2 {
		t.Fatalf("Expected slot check and daily summary, got %d jobs", len(jobs))
	}

	var sawCheck, sawSummary bool
	for _, job := range jobs {
		switch job.Task {
		case JobTaskSlotCheck:
			sawCheck = true
			if !job.Config.Notify {
				t.Error("Expected slot check to notify with a channel configured")
			}
		case JobTaskDailySummary:
			sawSummary = true
		}
	}
	if !sawCheck || !sawSummary {
		t.Errorf("Expected both default jobs, got check=%v summary=%v", sawCheck, sawSummary)
	}
}

func TestBuildTaskRequest(t *testing.T) {
	ts := newTestScheduler(t, context.Background(), quietConfig(), &fakeTaskManager{})

	req, err := ts.buildTaskRequest(&ScheduledJob{Task: JobTaskSlotCheck, Config: JobConfig{Notify: true}})
	if err != nil {
		t.Fatalf("buildTaskRequest failed: %v", err)
	}
	if req.Type != tasks.TaskTypeCheck || !req.Config.Notify {
		t.Errorf("Expected notifying check request, got %+v", req)
	}

	req, err = ts.buildTaskRequest(&ScheduledJob{Task: JobTaskDailySummary, Config: JobConfig{SummaryDays: 3}})
	if err != nil {
		t.Fatalf("buildTaskRequest failed: %v", err)
	}
	if req.Type != tasks.TaskTypeSummary || req.Config.Days != 3 {
		t.Errorf("Expected 3-day summary request, got %+v", req)
	}

	req, err = ts.buildTaskRequest(&ScheduledJob{Task: JobTaskBooking, Config: JobConfig{Consulate: "Chennai", TargetDate: "2026-09-15"}})
	if err != nil {
		t.Fatalf("buildTaskRequest failed: %v", err)
	}
	if req.Type != tasks.TaskTypeBooking || req.Config.Consulate != "Chennai" || req.Config.TargetDate != "2026-09-15" {
		t.Errorf("Expected booking request with target, got %+v", req)
	}

	if _, err := ts.buildTaskRequest(&ScheduledJob{Task: "defrag"}); !errors.Is(err, ErrUnknownJobTask) {
		t.Errorf("Expected ErrUnknownJobTask, got %v", err)
	}
}

func TestAddAndRemoveJob(t *testing.T) {
	ts := newTestScheduler(t, context.Background(), quietConfig(), &fakeTaskManager{})

	job := &ScheduledJob{Name: "extra-check", Task: JobTaskSlotCheck, Cron: "*/15 * * * *"}
	if err := ts.AddJob(job); err != nil {
		t.Fatalf("AddJob failed: %v", err)
	}
	if job.ID == "" {
		t.Fatal("Expected AddJob to assign an ID")
	}

	got, err := ts.GetJob(job.ID)
	if err != nil {
		t.Fatalf("GetJob failed: %v", err)
	}
	if got.Name != "extra-check" {
		t.Errorf("Expected extra-check, got %s", got.Name)
	}

	if err := ts.RemoveJob(job.ID); err != nil {
		t.Fatalf("RemoveJob failed: %v", err)
	}
	if _, err := ts.GetJob(job.ID); !errors.Is(err, ErrJobNotFound) {
		t.Errorf("Expected ErrJobNotFound after removal, got %v", err)
	}
	if err := ts.RemoveJob(job.ID); !errors.Is(err, ErrJobNotFound) {
		t.Errorf("Expected ErrJobNotFound for double removal, got %v", err)
	}
}

func TestAddJobRejectsBadCron(t *testing.T) {
	ts := newTestScheduler(t, context.Background(), quietConfig(), &fakeTaskManager{})

	job := &ScheduledJob{Name: "broken", Task: JobTaskSlotCheck, Cron: "not a cron"}
	if err := ts.AddJob(job); err == nil {
		t.Fatal("Expected error for invalid cron expression")
	}
}

func TestJobRunFollowsTaskToCompletion(t *testing.T) {
	mgr := &fakeTaskManager{task: &tasks.Task{
		ID:       "t-1",
		Type:     tasks.TaskTypeCheck,
		Status:   tasks.TaskStatusCompleted,
		Duration: 120 * time.Millisecond,
	}}
	ts := newTestScheduler(t, context.Background(), quietConfig(), mgr)

	job := &ScheduledJob{ID: "j-1", Name: "manual", Task: JobTaskSlotCheck, Config: JobConfig{Notify: true}}
	ts.createJobFunction(job)()

	if job.Status != JobStatusCompleted {
		t.Errorf("Expected completed job, got %s", job.Status)
	}
	if job.LastRun.IsZero() {
		t.Error("Expected last run timestamp")
	}

	reqs := mgr.submitted()
	if len(reqs) != 1 {
		t.Fatalf("Expected 1 submitted task, got %d", len(reqs))
	}
	if reqs[0].Type != tasks.TaskTypeCheck || !reqs[0].Config.Notify {
		t.Errorf("Expected notifying check request, got %+v", reqs[0])
	}
}

func TestJobRunFailsWhenTaskFails(t *testing.T) {
	mgr := &fakeTaskManager{task: &tasks.Task{
		ID:     "t-2",
		Type:   tasks.TaskTypeSummary,
		Status: tasks.TaskStatusFailed,
		Error:  "check history not configured",
	}}
	ts := newTestScheduler(t, context.Background(), quietConfig(), mgr)

	job := &ScheduledJob{ID: "j-2", Name: "digest", Task: JobTaskDailySummary}
	ts.createJobFunction(job)()

	if job.Status != JobStatusFailed {
		t.Errorf("Expected failed job, got %s", job.Status)
	}
}

func TestJobRunFailsWhenSubmitRejected(t *testing.T) {
	mgr := &fakeTaskManager{execErr: tasks.ErrTooManyTasks}
	ts := newTestScheduler(t, context.Background(), quietConfig(), mgr)

	job := &ScheduledJob{ID: "j-3", Name: "crowded", Task: JobTaskSlotCheck}
	ts.createJobFunction(job)()

	if job.Status != JobStatusFailed {
		t.Errorf("Expected failed job when the manager is full, got %s", job.Status)
	}
}

func TestStartRefreshesNextRunTimes(t *testing.T) {
	cfg := quietConfig()
	cfg.Scheduler.Jobs = []config.ScheduledJob{
		{Name: "ten-minutely", Task: "slot_check", Cron: "*/10 * * * *"},
	}

	ctx, cancel := context.WithCancel(context.Background())
	ts := newTestScheduler(t, ctx, cfg, &fakeTaskManager{})

	done := make(chan error, 1)
	go func() { done <- ts.Start() }()

	deadline := time.Now().Add(2 * time.Second)
	var next time.Time
	for time.Now().Before(deadline) {
		jobs := ts.GetJobs()
		if len(jobs) == 1 && !jobs[0].NextRun.IsZero() {
			next = jobs[0].NextRun
			break
		}
		time.Sleep(5 * time.Millisecond)
	}
	if next.IsZero() {
		t.Fatal("Next run time never set after start")
	}
	if until := time.Until(next); until <= 0 || until > 10*time.Minute {
		t.Errorf("Expected next run within 10 minutes, got %v away", until)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Start returned error: %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Start did not return after cancellation")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), time.Second)
	defer shutdownCancel()
	if err := ts.Shutdown(shutdownCtx); err != nil {
		t.Errorf("Shutdown failed: %v", err)
	}
}

func TestGetStatus(t *testing.T) {
	ts := newTestScheduler(t, context.Background(), quietConfig(), &fakeTaskManager{})

	status := ts.GetStatus()
	if status["job_count"] != 1 {
		t.Errorf("Expected job_count 1, got %v", status["job_count"])
	}
	if status["entries"] != 1 {
		t.Errorf("Expected 1 cron entry, got %v", status["entries"])
	}
}

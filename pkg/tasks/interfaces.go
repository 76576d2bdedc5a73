package tasks

import (
	"context"
	"time"

	"visawatch/pkg/booking"
	"visawatch/pkg/history"
	"visawatch/pkg/slots"
)

// Checker produces one classified availability report.
type Checker interface {
	Check(ctx context.Context) (slots.Report, error)
}

// Booker runs one end-to-end booking attempt against a consulate.
type Booker interface {
	Attempt(ctx context.Context, consulate, targetDate string) (*booking.Attempt, error)
}

// Notifier is one outbound message channel.
type Notifier interface {
	Name() string
	SendMessage(ctx context.Context, message string) error
}

// HistoryReader feeds the availability summary from recorded checks.
type HistoryReader interface {
	FetchSince(ctx context.Context, since time.Time) ([]history.CheckRow, error)
}

// MonitorController drives the continuous poll loop. The API exposes
// these controls next to the one-shot tasks.
type MonitorController interface {
	// StartMonitor launches the loop; zero duration runs until stopped
	StartMonitor(durationMinutes int) error

	// StopMonitor cancels an active loop
	StopMonitor() error

	// MonitorRunning reports whether a loop is active
	MonitorRunning() bool
}

// TaskManager defines the task orchestration surface the API and the
// scheduler drive.
type TaskManager interface {
	// ExecuteTask starts a task asynchronously
	ExecuteTask(ctx context.Context, req *TaskRequest) (*TaskResult, error)

	// GetTask returns a running or finished task
	GetTask(taskID string) (*Task, error)

	// GetTasks returns all active tasks
	GetTasks() []*Task

	// GetTaskHistory returns finished tasks, oldest first
	GetTaskHistory() []*Task

	// CancelTask cancels a running task
	CancelTask(taskID string) error

	// GetRunningTaskCount returns the number of running tasks
	GetRunningTaskCount() int
}

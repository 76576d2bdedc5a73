package tasks

import (
	"context"
	"time"
)

// TaskType represents the type of task
type TaskType string

const (
	TaskTypeCheck   TaskType = "check"   // one-shot slot check
	TaskTypeBooking TaskType = "booking" // one booking attempt
	TaskTypeSummary TaskType = "summary" // availability digest notification
)

// TaskStatus represents the status of a task
type TaskStatus string

const (
	TaskStatusPending   TaskStatus = "pending"
	TaskStatusRunning   TaskStatus = "running"
	TaskStatusCompleted TaskStatus = "completed"
	TaskStatusFailed    TaskStatus = "failed"
	TaskStatusCancelled TaskStatus = "cancelled"
)

// TaskRequest represents a request to execute a task
type TaskRequest struct {
	ID     string     `json:"id"`
	Type   TaskType   `json:"type"`
	Config TaskConfig `json:"config"`
}

// TaskConfig holds task-specific configuration
type TaskConfig struct {
	Consulate  string `json:"consulate,omitempty"`   // booking: target consulate
	TargetDate string `json:"target_date,omitempty"` // booking: preferred date, YYYY-MM-DD
	Notify     bool   `json:"notify,omitempty"`      // check: alert when main slots found
	Day        string `json:"day,omitempty"`         // summary: YYYY-MM-DD, empty means today
	Days       int    `json:"days,omitempty"`        // summary: trend window, 1 = the day alone
}

// Task represents a running or completed task
type Task struct {
	ID        string             `json:"id"`
	Type      TaskType           `json:"type"`
	Status    TaskStatus         `json:"status"`
	StartTime time.Time          `json:"start_time"`
	EndTime   time.Time          `json:"end_time"`
	Duration  time.Duration      `json:"duration"`
	Config    TaskConfig         `json:"config"`
	Result    *TaskResult        `json:"result,omitempty"`
	Error     string             `json:"error,omitempty"`
	Cancel    context.CancelFunc `json:"-"`
}

// TaskResult holds the result of a completed task
type TaskResult struct {
	ID            string        `json:"id"`
	Type          string        `json:"type"`
	Status        string        `json:"status"`
	Success       bool          `json:"success"`
	Message       string        `json:"message"`
	Error         string        `json:"error,omitempty"`
	MainLocations int           `json:"main_locations,omitempty"`
	TotalSlots    int           `json:"total_slots,omitempty"`
	Booked        bool          `json:"booked,omitempty"`
	AttemptID     string        `json:"attempt_id,omitempty"`
	Duration      time.Duration `json:"duration"`
	StartedAt     time.Time     `json:"started_at"`
	CompletedAt   time.Time     `json:"completed_at"`
}

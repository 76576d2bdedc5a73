package tasks

import "errors"

// Package-level error variables for unified error handling
var (
	// ErrTaskNotFound indicates task not found
	ErrTaskNotFound = errors.New("task not found")

	// ErrTooManyTasks indicates too many running tasks
	ErrTooManyTasks = errors.New("too many running tasks")

	// ErrUnsupportedTaskType indicates an unknown task type
	ErrUnsupportedTaskType = errors.New("unsupported task type")

	// ErrInvalidTaskConfig indicates invalid task configuration
	ErrInvalidTaskConfig = errors.New("invalid task configuration")

	// ErrCheckerUnavailable indicates the slot checker is not wired
	ErrCheckerUnavailable = errors.New("slot checker not configured")

	// ErrBookerUnavailable indicates the booking bot is not wired
	ErrBookerUnavailable = errors.New("booking bot not configured")

	// ErrHistoryUnavailable indicates the check-history store is not wired
	ErrHistoryUnavailable = errors.New("check history not configured")

	// ErrMonitorUnavailable indicates the monitor is not wired
	ErrMonitorUnavailable = errors.New("monitor not configured")

	// ErrMonitorNotRunning indicates a stop request without an active run
	ErrMonitorNotRunning = errors.New("monitor is not running")

	// ErrNotificationFailed indicates notification delivery failed
	ErrNotificationFailed = errors.New("notification delivery failed")
)

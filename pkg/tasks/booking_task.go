package tasks

import (
	"context"
	"fmt"
	"time"

	"visawatch/pkg/logger"
	"visawatch/pkg/utils/dateutils"

	"go.uber.org/zap"
)

// executeBookingTask runs one booking attempt against the configured
// portal. The attempt's step trail lands in the journal through the
// bot's sink; the task result only carries the outcome.
func (m *Manager) executeBookingTask(ctx context.Context, task *Task) (*TaskResult, error) {
	if m.booker == nil {
		return nil, ErrBookerUnavailable
	}
	if task.Config.Consulate == "" {
		return nil, fmt.Errorf("%w: consulate is required", ErrInvalidTaskConfig)
	}
	if task.Config.TargetDate != "" {
		target, err := dateutils.ParseFlexibleDate(task.Config.TargetDate)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidTaskConfig, err)
		}
		// The portal interprets the date in its own zone, so a stale
		// looking date is a warning, not a rejection.
		if !dateutils.IsFutureDate(target) {
			logger.Warn("Booking target date is not in the future",
				zap.String("task_id", task.ID),
				zap.String("target_date", task.Config.TargetDate))
		}
	}

	started := time.Now()
	attempt, err := m.booker.Attempt(ctx, task.Config.Consulate, task.Config.TargetDate)
	if err != nil {
		if attempt != nil {
			return nil, fmt.Errorf("booking attempt %s: %w", attempt.ID, err)
		}
		return nil, fmt.Errorf("booking attempt: %w", err)
	}

	logger.Info("Booking task finished",
		zap.String("task_id", task.ID),
		zap.String("attempt_id", attempt.ID),
		zap.String("consulate", task.Config.Consulate),
		zap.Bool("booked", attempt.Booked))

	completed := time.Now()
	return &TaskResult{
		ID:          task.ID,
		Type:        string(task.Type),
		Status:      string(TaskStatusCompleted),
		Success:     true,
		Message:     fmt.Sprintf("Appointment booked at %s", task.Config.Consulate),
		Booked:      attempt.Booked,
		AttemptID:   attempt.ID,
		StartedAt:   started,
		CompletedAt: completed,
		Duration:    completed.Sub(started),
	}, nil
}

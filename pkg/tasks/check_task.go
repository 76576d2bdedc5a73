package tasks

import (
	"context"
	"fmt"
	"time"

	"visawatch/pkg/logger"
	"visawatch/pkg/notifier"

	"go.uber.org/zap"
)

// executeCheckTask runs one fetch-and-classify cycle. With Notify set,
// main-consulate availability goes straight to the channels; manual
// checks bypass the monitor's cooldown window.
func (m *Manager) executeCheckTask(ctx context.Context, task *Task) (*TaskResult, error) {
	if m.checker == nil {
		return nil, ErrCheckerUnavailable
	}

	started := time.Now()
	report, err := m.checker.Check(ctx)
	if err != nil {
		return nil, fmt.Errorf("slot check: %w", err)
	}

	logger.Info("Check task finished",
		zap.String("task_id", task.ID),
		zap.Int("locations", len(report.All)),
		zap.Int("main_locations", len(report.Main)))

	if task.Config.Notify && report.HasMainSlots() {
		delivered := m.sendToAll(ctx, notifier.FormatSlotAlert(report))
		logger.Info("Check alert dispatched",
			zap.String("task_id", task.ID),
			zap.Int("delivered", delivered))
	}

	completed := time.Now()
	return &TaskResult{
		ID:            task.ID,
		Type:          string(task.Type),
		Status:        string(TaskStatusCompleted),
		Success:       true,
		Message:       fmt.Sprintf("Found %d location(s) with open slots, %d at monitored consulates", len(report.All), len(report.Main)),
		MainLocations: len(report.Main),
		TotalSlots:    report.TotalMainSlots(),
		StartedAt:     started,
		CompletedAt:   completed,
		Duration:      completed.Sub(started),
	}, nil
}

// sendToAll delivers a message to every channel, best effort, and
// returns how many accepted it.
func (m *Manager) sendToAll(ctx context.Context, message string) int {
	delivered := 0
	for _, n := range m.notifiers {
		sendCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
		if err := n.SendMessage(sendCtx, message); err != nil {
			logger.Warn("Failed to send notification",
				zap.String("channel", n.Name()),
				zap.Error(err))
		} else {
			delivered++
		}
		cancel()
	}
	return delivered
}

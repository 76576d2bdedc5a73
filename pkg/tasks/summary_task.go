package tasks

import (
	"context"
	"fmt"
	"time"

	"visawatch/pkg/analysis"
	"visawatch/pkg/logger"
	"visawatch/pkg/notifier"

	"go.uber.org/zap"
)

// executeSummaryTask aggregates one day of recorded checks and pushes
// the digest to every notification channel. The day defaults to today
// in the local zone; Config.Day overrides it as "2006-01-02".
func (m *Manager) executeSummaryTask(ctx context.Context, task *Task) (*TaskResult, error) {
	if m.history == nil {
		return nil, ErrHistoryUnavailable
	}

	day := time.Now()
	if task.Config.Day != "" {
		parsed, err := time.ParseInLocation("2006-01-02", task.Config.Day, time.Local)
		if err != nil {
			return nil, fmt.Errorf("%w: bad day %q", ErrInvalidTaskConfig, task.Config.Day)
		}
		day = parsed
	}
	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.Local)

	days := task.Config.Days
	if days < 1 {
		days = 1
	}

	started := time.Now()
	rows, err := m.history.FetchSince(ctx, dayStart.AddDate(0, 0, -(days-1)))
	if err != nil {
		return nil, fmt.Errorf("fetch history: %w", err)
	}

	summary := analysis.Summarize(rows, dayStart, time.Local)
	logger.Info("Daily summary computed",
		zap.String("task_id", task.ID),
		zap.String("day", summary.Day),
		zap.Int("total_checks", summary.TotalChecks),
		zap.Int("total_slots", summary.TotalSlots))

	message := notifier.FormatDailySummary(summary.Day, summary.TotalChecks, summary.TotalSlots, summary.PeakHour, summary.ByLocation)
	if days > 1 {
		if trend := notifier.FormatTrend(analysis.Trend(rows, time.Local)); trend != "" {
			message += "\n\n" + trend
		}
	}
	delivered := m.sendToAll(ctx, message)
	if len(m.notifiers) > 0 && delivered == 0 {
		return nil, fmt.Errorf("%w: summary for %s reached no channel", ErrNotificationFailed, summary.Day)
	}

	completed := time.Now()
	return &TaskResult{
		ID:          task.ID,
		Type:        string(task.Type),
		Status:      string(TaskStatusCompleted),
		Success:     true,
		Message:     fmt.Sprintf("Summary for %s delivered to %d channel(s)", summary.Day, delivered),
		TotalSlots:  summary.TotalSlots,
		StartedAt:   started,
		CompletedAt: completed,
		Duration:    completed.Sub(started),
	}, nil
}

package handlers

import (
	"context"
	"time"

	"visawatch/internal/models"
	"visawatch/pkg/config"
	"visawatch/pkg/history"
	"visawatch/pkg/logger"
	"visawatch/pkg/monitor"
	"visawatch/pkg/notifier"
	"visawatch/pkg/scheduler"
	"visawatch/pkg/tasks"
)

// HistoryStore is the slice of the check-history store the API reads.
type HistoryStore interface {
	RecentChecks(ctx context.Context, limit int) ([]history.CheckRow, error)
	FetchSince(ctx context.Context, since time.Time) ([]history.CheckRow, error)
	CheckCount(ctx context.Context) (uint64, error)
	Ping(ctx context.Context) error
}

// AttemptJournal is the slice of the local journal the API reads.
type AttemptJournal interface {
	RecentAttempts(ctx context.Context, limit int) ([]models.BookingAttempt, error)
	AttemptByID(ctx context.Context, attemptID string) (*models.BookingAttempt, error)
	RecentNotifications(ctx context.Context, limit int) ([]models.NotificationRecord, error)
}

// HandlerService provides HTTP handlers for the API.
// Base handler service structure containing common dependencies for all handlers.
type HandlerService struct {
	config     *config.Config
	ctx        context.Context
	taskMgr    tasks.TaskManager
	monitorCtl tasks.MonitorController
	mon        *monitor.Monitor
	store      HistoryStore
	journal    AttemptJournal
	notifiers  []notifier.Notifier
	scheduler  *scheduler.TaskScheduler
	startedAt  time.Time
}

// NewHandlerService creates a new handler service. The task manager is
// wired by the caller; the remaining dependencies arrive through the
// setters as they come up.
func NewHandlerService(ctx context.Context, cfg *config.Config, taskMgr tasks.TaskManager) *HandlerService {
	logger.Info("Initializing handler service")

	return &HandlerService{
		config:    cfg,
		ctx:       ctx,
		taskMgr:   taskMgr,
		startedAt: time.Now(),
	}
}

// SetMonitor sets the monitor references. The controller drives
// start/stop; the monitor itself answers status and latest-report reads.
func (h *HandlerService) SetMonitor(ctl tasks.MonitorController, mon *monitor.Monitor) {
	h.monitorCtl = ctl
	h.mon = mon
}

// SetHistory sets the check-history store reference.
func (h *HandlerService) SetHistory(store HistoryStore) {
	h.store = store
}

// SetJournal sets the local journal reference.
func (h *HandlerService) SetJournal(j AttemptJournal) {
	h.journal = j
}

// AddNotifier registers an outbound notification channel.
func (h *HandlerService) AddNotifier(n notifier.Notifier) {
	h.notifiers = append(h.notifiers, n)
}

// SetScheduler sets the scheduler reference (called after scheduler is created)
func (h *HandlerService) SetScheduler(schedulerInterface interface{}) {
	if s, ok := schedulerInterface.(*scheduler.TaskScheduler); ok {
		h.scheduler = s
	}
}

// GetConfig returns the handler service configuration
func (h *HandlerService) GetConfig() *config.Config {
	return h.config
}

// GetTaskManager returns the task manager instance
func (h *HandlerService) GetTaskManager() tasks.TaskManager {
	return h.taskMgr
}

// GetScheduler returns the scheduler instance
func (h *HandlerService) GetScheduler() *scheduler.TaskScheduler {
	return h.scheduler
}

// IsSchedulerAvailable checks if scheduler is available
func (h *HandlerService) IsSchedulerAvailable() bool {
	return h.scheduler != nil
}

// IsMonitorAvailable checks if the poll loop is wired
func (h *HandlerService) IsMonitorAvailable() bool {
	return h.monitorCtl != nil && h.mon != nil
}

// IsHistoryAvailable checks if the check-history store is wired
func (h *HandlerService) IsHistoryAvailable() bool {
	return h.store != nil
}

// IsJournalAvailable checks if the local journal is wired
func (h *HandlerService) IsJournalAvailable() bool {
	return h.journal != nil
}

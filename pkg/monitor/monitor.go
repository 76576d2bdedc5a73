package monitor

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"visawatch/pkg/config"
	"visawatch/pkg/logger"
	"visawatch/pkg/notifier"
	"visawatch/pkg/slots"

	"go.uber.org/zap"
)

// Checker produces one classified availability report per call.
type Checker interface {
	Check(ctx context.Context) (slots.Report, error)
}

// Notifier is the outbound alert channel contract. The Telegram and
// webhook clients both satisfy it.
type Notifier interface {
	Name() string
	SendMessage(ctx context.Context, message string) error
}

// Recorder persists per-cycle history. Optional; the loop never depends
// on it and a failed write only logs.
type Recorder interface {
	RecordCheck(ctx context.Context, report slots.Report) error
}

// Booker attempts to book one of the detected slots.
type Booker interface {
	BookFirstAvailable(ctx context.Context, records []slots.SlotRecord) (bool, error)
}

// Monitor drives the poll loop: fetch, classify, log, notify, sleep.
// Between cycles it keeps only the cooldown timestamp and a few
// observational counters.
type Monitor struct {
	config   *config.MonitorConfig
	checker  Checker
	cooldown *notifier.Cooldown

	notifiers []Notifier
	recorder  Recorder
	booker    Booker

	interval          time.Duration
	errorDelay        time.Duration
	bookingRetryDelay time.Duration

	mu         sync.RWMutex
	running    bool
	checks     int
	lastReport slots.Report
	lastError  string
}

// New creates a monitor around a checker. cooldownWindow throttles
// outbound alerts to at most one per window.
func New(cfg *config.MonitorConfig, checker Checker, cooldownWindow time.Duration) *Monitor {
	interval := time.Duration(cfg.Interval) * time.Second
	if interval <= 0 {
		interval = 30 * time.Second
	}

	errorDelay := time.Duration(cfg.ErrorRetryDelay) * time.Second
	if errorDelay <= 0 {
		errorDelay = 60 * time.Second
	}

	return &Monitor{
		config:     cfg,
		checker:    checker,
		cooldown:   notifier.NewCooldown(cooldownWindow),
		interval:   interval,
		errorDelay: errorDelay,
	}
}

// AddNotifier registers an outbound channel for alerts.
func (m *Monitor) AddNotifier(n Notifier) {
	m.notifiers = append(m.notifiers, n)
}

// SetRecorder wires an optional check-history sink.
func (m *Monitor) SetRecorder(r Recorder) {
	m.recorder = r
}

// SetBooker wires the booking bot for book-on-slot mode. retryDelay is
// the pause after an unsuccessful attempt before polling resumes.
func (m *Monitor) SetBooker(b Booker, retryDelay time.Duration) {
	m.booker = b
	m.bookingRetryDelay = retryDelay
}

// Run polls until the context is cancelled or a booking succeeds.
func (m *Monitor) Run(ctx context.Context) error {
	return m.run(ctx, 0)
}

// RunFor polls for the given wall-clock duration, then logs the final
// cycle count and returns.
func (m *Monitor) RunFor(ctx context.Context, duration time.Duration) error {
	runCtx, cancel := context.WithTimeout(ctx, duration)
	defer cancel()
	return m.run(runCtx, duration)
}

func (m *Monitor) run(ctx context.Context, duration time.Duration) error {
	m.mu.Lock()
	if m.running {
		m.mu.Unlock()
		return ErrAlreadyRunning
	}
	m.running = true
	m.checks = 0
	m.mu.Unlock()

	defer func() {
		m.mu.Lock()
		m.running = false
		m.mu.Unlock()
	}()

	cities := m.monitoredCities()

	if duration > 0 {
		logger.Info(fmt.Sprintf("🚀 Starting slot monitoring for %d minutes", int(duration.Minutes())))
	} else {
		logger.Info("🚀 Starting slot monitoring", zap.Strings("cities", cities))
	}
	logger.Info(fmt.Sprintf("⏰ Check interval: %d seconds", int(m.interval.Seconds())))
	if m.hasChannel("telegram") {
		logger.Info("📱 Telegram notifications enabled (main consulates only)")
	}

	if m.config.StartupNotice && len(m.notifiers) > 0 {
		m.sendStartupNotice(cities)
	}

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	// Initial check
	if stop := m.runCycle(ctx); stop {
		return nil
	}

	for {
		select {
		case <-ctx.Done():
			if duration > 0 && errors.Is(ctx.Err(), context.DeadlineExceeded) {
				logger.Info(fmt.Sprintf("✅ Monitoring completed after %d checks", m.Checks()))
				return nil
			}
			logger.Info("🛑 Monitoring stopped")
			return nil
		case <-ticker.C:
			if stop := m.runCycle(ctx); stop {
				return nil
			}
		}
	}
}

// runCycle performs one fetch-classify-notify pass. The returned flag
// asks the loop to stop because a booking went through.
func (m *Monitor) runCycle(ctx context.Context) (stop bool) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Unexpected failure during check cycle", zap.Any("panic", r))
			m.waitFallback(ctx)
		}
	}()

	report, err := m.checker.Check(ctx)

	m.mu.Lock()
	m.checks++
	checks := m.checks
	m.lastReport = report
	if err != nil {
		m.lastError = err.Error()
	} else {
		m.lastError = ""
	}
	m.mu.Unlock()

	if err != nil {
		if recoverable(err) {
			logger.Error("Slot check failed, skipping this cycle",
				logger.CycleField(checks),
				zap.Error(err))
			return false
		}
		logger.Error("Unexpected error during check cycle",
			logger.CycleField(checks),
			zap.Error(err))
		m.waitFallback(ctx)
		return false
	}

	m.logCycleSummary(report, checks)

	if m.recorder != nil {
		recCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		if recErr := m.recorder.RecordCheck(recCtx, report); recErr != nil {
			logger.Warn("Failed to record check history", zap.Error(recErr))
		}
		cancel()
	}

	m.maybeNotify(ctx, report)

	if m.booker != nil && m.config.BookOnSlot && report.HasMainSlots() {
		return m.attemptBooking(ctx, report)
	}

	return false
}

// maybeNotify sends at most one alert per cooldown window. The window
// closes only on a confirmed delivery, so a failed send leaves the next
// cycle free to retry.
func (m *Monitor) maybeNotify(ctx context.Context, report slots.Report) {
	if !report.HasMainSlots() || len(m.notifiers) == 0 {
		return
	}

	if !m.cooldown.Ready() {
		logger.Info("Notification suppressed by cooldown",
			zap.Duration("remaining", m.cooldown.Remaining()))
		return
	}

	message := notifier.FormatSlotAlert(report)

	delivered := false
	for _, n := range m.notifiers {
		sendCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
		err := n.SendMessage(sendCtx, message)
		cancel()
		if err != nil {
			logger.Error("Failed to send slot notification",
				zap.String("channel", n.Name()),
				zap.Error(err))
			continue
		}
		delivered = true
	}

	if delivered {
		m.cooldown.MarkDelivered()
		logger.Info("📱 Slot alert sent",
			zap.Int("locations", len(report.Main)),
			zap.Int("slots", report.TotalMainSlots()))
	}
}

// attemptBooking hands the main records to the booking bot. A booked
// slot stops the loop; anything else pauses briefly and polling
// resumes.
func (m *Monitor) attemptBooking(ctx context.Context, report slots.Report) bool {
	logger.Info("🎫 Launching booking attempt", zap.Int("locations", len(report.Main)))

	booked, err := m.booker.BookFirstAvailable(ctx, report.Main)
	if err != nil {
		logger.Error("Booking attempt failed", zap.Error(err))
	}
	if booked {
		logger.Info("🎉 Slot booked, stopping monitor")
		return true
	}

	if m.bookingRetryDelay > 0 {
		logger.Info("Booking did not complete, pausing before next attempt",
			zap.Duration("retry_delay", m.bookingRetryDelay))
		select {
		case <-ctx.Done():
		case <-time.After(m.bookingRetryDelay):
		}
	}
	return false
}

func (m *Monitor) logCycleSummary(report slots.Report, checks int) {
	summary := report.Summary()
	for _, city := range m.monitoredCities() {
		counts := summary[city]
		logger.Info(fmt.Sprintf("📍 %s: Main=%s, VAC=%s",
			city, formatCount(counts.Main), formatCount(counts.VAC)))
	}

	if report.HasMainSlots() {
		logger.Info("🎯 Open slots at monitored consulates",
			logger.CycleField(checks),
			zap.Int("locations", len(report.Main)),
			zap.Int("slots", report.TotalMainSlots()))
	} else {
		logger.Debug("No open slots at monitored consulates", logger.CycleField(checks))
	}
}

// sendStartupNotice announces the monitor start on every channel
// without blocking the first check.
func (m *Monitor) sendStartupNotice(cities []string) {
	message := notifier.FormatStartupMessage(cities, m.interval)
	notifiers := m.notifiers

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		for _, n := range notifiers {
			if err := n.SendMessage(ctx, message); err != nil {
				logger.Error("Failed to send startup notification",
					zap.String("channel", n.Name()),
					zap.Error(err))
			}
		}
	}()
}

// waitFallback sleeps the error-retry delay, honoring cancellation.
func (m *Monitor) waitFallback(ctx context.Context) {
	logger.Info("Pausing before next check", zap.Duration("delay", m.errorDelay))
	select {
	case <-ctx.Done():
	case <-time.After(m.errorDelay):
	}
}

func (m *Monitor) monitoredCities() []string {
	cities := make([]string, 0, len(m.config.Cities))
	for _, city := range m.config.Cities {
		cities = append(cities, slots.CanonicalLocation(city))
	}
	sort.Strings(cities)
	return cities
}

func (m *Monitor) hasChannel(name string) bool {
	for _, n := range m.notifiers {
		if n.Name() == name {
			return true
		}
	}
	return false
}

// recoverable classifies the known this-cycle-only failures: transport,
// bad status, bad body, cancellation mid-request.
func recoverable(err error) bool {
	return errors.Is(err, slots.ErrRequestFailed) ||
		errors.Is(err, slots.ErrUnexpectedStatus) ||
		errors.Is(err, slots.ErrMalformedResponse) ||
		errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded)
}

func formatCount(n int) string {
	if n <= 0 {
		return "No slots"
	}
	return fmt.Sprintf("%d slots", n)
}

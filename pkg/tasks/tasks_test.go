package tasks

import (
	"context"
	"errors"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"visawatch/pkg/booking"
	"visawatch/pkg/config"
	"visawatch/pkg/history"
	"visawatch/pkg/logger"
	"visawatch/pkg/monitor"
	"visawatch/pkg/slots"
)

func TestMain(m *testing.M) {
	logger.InitLogger(true, "")
	os.Exit(m.Run())
}

type fakeChecker struct {
	mu     sync.Mutex
	report slots.Report
	err    error
}

func (f *fakeChecker) Check(ctx context.Context) (slots.Report, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.report, f.err
}

// blockingChecker parks inside Check until released or cancelled.
type blockingChecker struct {
	started chan struct{}
	release chan struct{}
	once    sync.Once
}

func newBlockingChecker() *blockingChecker {
	return &blockingChecker{
		started: make(chan struct{}),
		release: make(chan struct{}),
	}
}

func (b *blockingChecker) Check(ctx context.Context) (slots.Report, error) {
	b.once.Do(func() { close(b.started) })
	select {
	case <-b.release:
		return slots.Report{CheckedAt: time.Now()}, nil
	case <-ctx.Done():
		return slots.Report{}, ctx.Err()
	}
}

type fakeBooker struct {
	mu            sync.Mutex
	attempt       *booking.Attempt
	err           error
	lastConsulate string
	lastDate      string
}

func (f *fakeBooker) Attempt(ctx context.Context, consulate, targetDate string) (*booking.Attempt, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastConsulate = consulate
	f.lastDate = targetDate
	return f.attempt, f.err
}

type fakeNotifier struct {
	mu       sync.Mutex
	name     string
	err      error
	messages []string
}

func (f *fakeNotifier) Name() string {
	if f.name == "" {
		return "fake"
	}
	return f.name
}

func (f *fakeNotifier) SendMessage(ctx context.Context, message string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.messages = append(f.messages, message)
	return nil
}

func (f *fakeNotifier) sent() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.messages...)
}

type fakeHistory struct {
	rows []history.CheckRow
	err  error
}

func (f *fakeHistory) FetchSince(ctx context.Context, since time.Time) ([]history.CheckRow, error) {
	return f.rows, f.err
}

func testManager(maxTasks int) *Manager {
	cfg := &config.Config{
		Runtime: &config.RuntimeConfig{
			MaxConcurrentTasks: maxTasks,
			TaskTimeout:        60,
		},
	}
	return NewManager(context.Background(), cfg)
}

func mainSlotsReport(city string, slotCount int) slots.Report {
	rec := slots.SlotRecord{
		Location:   city,
		Slots:      slotCount,
		ReportedAt: "23/08/2026 10:15:00",
		IsMain:     true,
	}
	return slots.Report{
		All:       []slots.SlotRecord{rec},
		Main:      []slots.SlotRecord{rec},
		CheckedAt: time.Now(),
	}
}

func checkRow(checkID string, at time.Time, location string, isVAC bool, slotCount int) history.CheckRow {
	return history.CheckRow{
		CheckID:    checkID,
		CheckedAt:  at,
		Location:   location,
		IsVAC:      isVAC,
		Slots:      slotCount,
		ReportedAt: at.Format("02/01/2006 15:04:05"),
	}
}

// taskStatus reads the status under the manager's lock so polling from
// the test does not race the executor goroutine.
func taskStatus(m *Manager, task *Task) TaskStatus {
	m.tasksMutex.RLock()
	defer m.tasksMutex.RUnlock()
	return task.Status
}

func waitForTask(t *testing.T, m *Manager, taskID string) *Task {
	t.Helper()

	task, err := m.GetTask(taskID)
	if err != nil {
		t.Fatalf("GetTask failed: %v", err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if s := taskStatus(m, task); s != TaskStatusPending && s != TaskStatusRunning {
			return task
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("Task %s did not finish in time", taskID)
	return nil
}

func TestCheckTaskCompletesAndAlerts(t *testing.T) {
	m := testManager(3)
	m.SetChecker(&fakeChecker{report: mainSlotsReport("Chennai", 3)})
	n := &fakeNotifier{}
	m.AddNotifier(n)

	result, err := m.ExecuteTask(context.Background(), &TaskRequest{
		Type:   TaskTypeCheck,
		Config: TaskConfig{Notify: true},
	})
	if err != nil {
		t.Fatalf("ExecuteTask failed: %v", err)
	}
	if result.Message != "Task started" {
		t.Errorf("Expected immediate start acknowledgement, got %q", result.Message)
	}

	task := waitForTask(t, m, result.ID)
	if task.Status != TaskStatusCompleted {
		t.Fatalf("Expected completed task, got %s (error: %s)", task.Status, task.Error)
	}
	if task.Result == nil {
		t.Fatal("Expected a task result")
	}
	if task.Result.MainLocations != 1 {
		t.Errorf("Expected 1 main location, got %d", task.Result.MainLocations)
	}
	if task.Result.TotalSlots != 3 {
		t.Errorf("Expected 3 slots, got %d", task.Result.TotalSlots)
	}

	messages := n.sent()
	if len(messages) != 1 {
		t.Fatalf("Expected 1 alert, got %d", len(messages))
	}
	if !strings.Contains(messages[0], "VISA SLOTS AVAILABLE") {
		t.Errorf("Expected alert header in message, got %q", messages[0])
	}
}

func TestCheckTaskQuietWithoutNotify(t *testing.T) {
	m := testManager(3)
	m.SetChecker(&fakeChecker{report: mainSlotsReport("Mumbai", 2)})
	n := &fakeNotifier{}
	m.AddNotifier(n)

	result, err := m.ExecuteTask(context.Background(), &TaskRequest{Type: TaskTypeCheck})
	if err != nil {
		t.Fatalf("ExecuteTask failed: %v", err)
	}

	task := waitForTask(t, m, result.ID)
	if task.Status != TaskStatusCompleted {
		t.Fatalf("Expected completed task, got %s", task.Status)
	}
	if got := len(n.sent()); got != 0 {
		t.Errorf("Expected no alerts without notify flag, got %d", got)
	}
}

func TestCheckTaskWithoutChecker(t *testing.T) {
	m := testManager(3)

	result, err := m.ExecuteTask(context.Background(), &TaskRequest{Type: TaskTypeCheck})
	if err != nil {
		t.Fatalf("ExecuteTask failed: %v", err)
	}

	task := waitForTask(t, m, result.ID)
	if task.Status != TaskStatusFailed {
		t.Fatalf("Expected failed task, got %s", task.Status)
	}
	if !strings.Contains(task.Error, "slot checker not configured") {
		t.Errorf("Expected checker sentinel in error, got %q", task.Error)
	}
}

func TestBookingTaskCompletes(t *testing.T) {
	m := testManager(3)
	booker := &fakeBooker{attempt: &booking.Attempt{
		ID:        "att-7f3a",
		Consulate: "Chennai",
		Booked:    true,
	}}
	m.SetBooker(booker)

	result, err := m.ExecuteTask(context.Background(), &TaskRequest{
		Type:   TaskTypeBooking,
		Config: TaskConfig{Consulate: "Chennai", TargetDate: "2026-09-01"},
	})
	if err != nil {
		t.Fatalf("ExecuteTask failed: %v", err)
	}

	task := waitForTask(t, m, result.ID)
	if task.Status != TaskStatusCompleted {
		t.Fatalf("Expected completed task, got %s (error: %s)", task.Status, task.Error)
	}
	if !task.Result.Booked {
		t.Error("Expected booked result")
	}
	if task.Result.AttemptID != "att-7f3a" {
		t.Errorf("Expected attempt ID in result, got %q", task.Result.AttemptID)
	}

	booker.mu.Lock()
	defer booker.mu.Unlock()
	if booker.lastConsulate != "Chennai" || booker.lastDate != "2026-09-01" {
		t.Errorf("Expected consulate/date passthrough, got %q / %q", booker.lastConsulate, booker.lastDate)
	}
}

func TestBookingTaskRequiresConsulate(t *testing.T) {
	m := testManager(3)
	m.SetBooker(&fakeBooker{attempt: &booking.Attempt{ID: "att-1"}})

	result, err := m.ExecuteTask(context.Background(), &TaskRequest{Type: TaskTypeBooking})
	if err != nil {
		t.Fatalf("ExecuteTask failed: %v", err)
	}

	task := waitForTask(t, m, result.ID)
	if task.Status != TaskStatusFailed {
		t.Fatalf("Expected failed task, got %s", task.Status)
	}
	if !strings.Contains(task.Error, "consulate is required") {
		t.Errorf("Expected consulate validation error, got %q", task.Error)
	}
}

func TestBookingTaskRejectsUnparseableDate(t *testing.T) {
	m := testManager(3)
	booker := &fakeBooker{attempt: &booking.Attempt{ID: "att-1"}}
	m.SetBooker(booker)

	result, err := m.ExecuteTask(context.Background(), &TaskRequest{
		Type:   TaskTypeBooking,
		Config: TaskConfig{Consulate: "Chennai", TargetDate: "next tuesday"},
	})
	if err != nil {
		t.Fatalf("ExecuteTask failed: %v", err)
	}

	task := waitForTask(t, m, result.ID)
	if task.Status != TaskStatusFailed {
		t.Fatalf("Expected failed task, got %s", task.Status)
	}
	if !strings.Contains(task.Error, "invalid task configuration") {
		t.Errorf("Expected config validation error, got %q", task.Error)
	}

	booker.mu.Lock()
	defer booker.mu.Unlock()
	if booker.lastConsulate != "" {
		t.Error("Expected no attempt for an unparseable date")
	}
}

func TestBookingTaskFailureCarriesAttemptID(t *testing.T) {
	m := testManager(3)
	m.SetBooker(&fakeBooker{
		attempt: &booking.Attempt{ID: "att-9b21", Consulate: "Mumbai"},
		err:     errors.New("captcha: solver gave up"),
	})

	result, err := m.ExecuteTask(context.Background(), &TaskRequest{
		Type:   TaskTypeBooking,
		Config: TaskConfig{Consulate: "Mumbai"},
	})
	if err != nil {
		t.Fatalf("ExecuteTask failed: %v", err)
	}

	task := waitForTask(t, m, result.ID)
	if task.Status != TaskStatusFailed {
		t.Fatalf("Expected failed task, got %s", task.Status)
	}
	if !strings.Contains(task.Error, "att-9b21") {
		t.Errorf("Expected attempt ID in error for journal lookup, got %q", task.Error)
	}
	if !strings.Contains(task.Error, "captcha") {
		t.Errorf("Expected cause in error, got %q", task.Error)
	}
}

func TestBookingTaskWithoutBooker(t *testing.T) {
	m := testManager(3)

	result, err := m.ExecuteTask(context.Background(), &TaskRequest{
		Type:   TaskTypeBooking,
		Config: TaskConfig{Consulate: "Chennai"},
	})
	if err != nil {
		t.Fatalf("ExecuteTask failed: %v", err)
	}

	task := waitForTask(t, m, result.ID)
	if !strings.Contains(task.Error, "booking bot not configured") {
		t.Errorf("Expected booker sentinel in error, got %q", task.Error)
	}
}

func TestSummaryTaskDeliversDigest(t *testing.T) {
	day := time.Date(2026, 8, 15, 0, 0, 0, 0, time.Local)
	m := testManager(3)
	m.SetHistory(&fakeHistory{rows: []history.CheckRow{
		checkRow("c1", day.Add(10*time.Hour), "Chennai", false, 5),
		checkRow("c1", day.Add(10*time.Hour), "Chennai", true, 3),
		checkRow("c2", day.Add(14*time.Hour), "Mumbai", false, 2),
	}})
	n := &fakeNotifier{}
	m.AddNotifier(n)

	result, err := m.ExecuteTask(context.Background(), &TaskRequest{
		Type:   TaskTypeSummary,
		Config: TaskConfig{Day: "2026-08-15"},
	})
	if err != nil {
		t.Fatalf("ExecuteTask failed: %v", err)
	}

	task := waitForTask(t, m, result.ID)
	if task.Status != TaskStatusCompleted {
		t.Fatalf("Expected completed task, got %s (error: %s)", task.Status, task.Error)
	}
	if task.Result.TotalSlots != 7 {
		t.Errorf("Expected 7 main slots in summary, got %d", task.Result.TotalSlots)
	}

	messages := n.sent()
	if len(messages) != 1 {
		t.Fatalf("Expected 1 digest, got %d", len(messages))
	}
	if !strings.Contains(messages[0], "Availability summary for 2026-08-15") {
		t.Errorf("Expected summary header in message, got %q", messages[0])
	}
	if !strings.Contains(messages[0], "Chennai</b>: 5 slots") {
		t.Errorf("Expected per-location line without VAC slots, got %q", messages[0])
	}
}

func TestSummaryTaskIncludesTrendWindow(t *testing.T) {
	day := time.Date(2026, 8, 15, 0, 0, 0, 0, time.Local)
	m := testManager(3)
	m.SetHistory(&fakeHistory{rows: []history.CheckRow{
		checkRow("c1", day.AddDate(0, 0, -1).Add(9*time.Hour), "Chennai", false, 2),
		checkRow("c2", day.Add(11*time.Hour), "Chennai", false, 6),
	}})
	n := &fakeNotifier{}
	m.AddNotifier(n)

	result, err := m.ExecuteTask(context.Background(), &TaskRequest{
		Type:   TaskTypeSummary,
		Config: TaskConfig{Day: "2026-08-15", Days: 2},
	})
	if err != nil {
		t.Fatalf("ExecuteTask failed: %v", err)
	}

	task := waitForTask(t, m, result.ID)
	if task.Status != TaskStatusCompleted {
		t.Fatalf("Expected completed task, got %s (error: %s)", task.Status, task.Error)
	}
	// The headline day excludes the previous day's slots.
	if task.Result.TotalSlots != 6 {
		t.Errorf("Expected 6 slots on the summary day, got %d", task.Result.TotalSlots)
	}

	messages := n.sent()
	if len(messages) != 1 {
		t.Fatalf("Expected 1 digest, got %d", len(messages))
	}
	if !strings.Contains(messages[0], "Trend") {
		t.Errorf("Expected trend section in message, got %q", messages[0])
	}
	if !strings.Contains(messages[0], "2026-08-14: 2 slots") {
		t.Errorf("Expected previous day in trend, got %q", messages[0])
	}
}

func TestSummaryTaskDefaultsToToday(t *testing.T) {
	m := testManager(3)
	m.SetHistory(&fakeHistory{rows: []history.CheckRow{
		checkRow("c1", time.Now(), "Hyderabad", false, 4),
	}})
	n := &fakeNotifier{}
	m.AddNotifier(n)

	result, err := m.ExecuteTask(context.Background(), &TaskRequest{Type: TaskTypeSummary})
	if err != nil {
		t.Fatalf("ExecuteTask failed: %v", err)
	}

	task := waitForTask(t, m, result.ID)
	if task.Status != TaskStatusCompleted {
		t.Fatalf("Expected completed task, got %s (error: %s)", task.Status, task.Error)
	}
	if task.Result.TotalSlots != 4 {
		t.Errorf("Expected today's slots in summary, got %d", task.Result.TotalSlots)
	}
}

func TestSummaryTaskRejectsBadDay(t *testing.T) {
	m := testManager(3)
	m.SetHistory(&fakeHistory{})

	result, err := m.ExecuteTask(context.Background(), &TaskRequest{
		Type:   TaskTypeSummary,
		Config: TaskConfig{Day: "15/08/2026"},
	})
	if err != nil {
		t.Fatalf("ExecuteTask failed: %v", err)
	}

	task := waitForTask(t, m, result.ID)
	if task.Status != TaskStatusFailed {
		t.Fatalf("Expected failed task, got %s", task.Status)
	}
	if !strings.Contains(task.Error, "invalid task configuration") {
		t.Errorf("Expected config validation error, got %q", task.Error)
	}
}

func TestSummaryTaskFailsWhenNoChannelAccepts(t *testing.T) {
	m := testManager(3)
	m.SetHistory(&fakeHistory{rows: []history.CheckRow{
		checkRow("c1", time.Now(), "Chennai", false, 1),
	}})
	m.AddNotifier(&fakeNotifier{err: errors.New("delivery refused")})

	result, err := m.ExecuteTask(context.Background(), &TaskRequest{Type: TaskTypeSummary})
	if err != nil {
		t.Fatalf("ExecuteTask failed: %v", err)
	}

	task := waitForTask(t, m, result.ID)
	if task.Status != TaskStatusFailed {
		t.Fatalf("Expected failed task, got %s", task.Status)
	}
	if !strings.Contains(task.Error, "notification delivery failed") {
		t.Errorf("Expected delivery sentinel in error, got %q", task.Error)
	}
}

func TestTaskLimitEnforced(t *testing.T) {
	m := testManager(1)
	checker := newBlockingChecker()
	m.SetChecker(checker)

	first, err := m.ExecuteTask(context.Background(), &TaskRequest{Type: TaskTypeCheck})
	if err != nil {
		t.Fatalf("First ExecuteTask failed: %v", err)
	}

	select {
	case <-checker.started:
	case <-time.After(2 * time.Second):
		t.Fatal("First task never started")
	}

	if _, err := m.ExecuteTask(context.Background(), &TaskRequest{Type: TaskTypeCheck}); !errors.Is(err, ErrTooManyTasks) {
		t.Errorf("Expected ErrTooManyTasks at the limit, got %v", err)
	}

	close(checker.release)
	task := waitForTask(t, m, first.ID)
	if task.Status != TaskStatusCompleted {
		t.Fatalf("Expected first task to complete, got %s", task.Status)
	}

	if _, err := m.ExecuteTask(context.Background(), &TaskRequest{Type: TaskTypeCheck}); err != nil {
		t.Errorf("Expected room for a new task after completion, got %v", err)
	}
}

func TestCancelRunningTask(t *testing.T) {
	m := testManager(3)
	checker := newBlockingChecker()
	m.SetChecker(checker)

	result, err := m.ExecuteTask(context.Background(), &TaskRequest{Type: TaskTypeCheck})
	if err != nil {
		t.Fatalf("ExecuteTask failed: %v", err)
	}

	select {
	case <-checker.started:
	case <-time.After(2 * time.Second):
		t.Fatal("Task never started")
	}

	if err := m.CancelTask(result.ID); err != nil {
		t.Fatalf("CancelTask failed: %v", err)
	}

	task := waitForTask(t, m, result.ID)
	if task.Status != TaskStatusCancelled {
		t.Fatalf("Expected cancelled task, got %s", task.Status)
	}
	if task.Error != "Task was cancelled" {
		t.Errorf("Expected cancellation message, got %q", task.Error)
	}

	// The executor moves the cancelled task to history without
	// overwriting its state.
	deadline := time.Now().Add(2 * time.Second)
	for len(m.GetTaskHistory()) == 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	hist := m.GetTaskHistory()
	if len(hist) != 1 {
		t.Fatalf("Expected 1 task in history, got %d", len(hist))
	}
	if hist[0].Status != TaskStatusCancelled {
		t.Errorf("Expected cancelled status preserved in history, got %s", hist[0].Status)
	}
}

func TestCancelUnknownTask(t *testing.T) {
	m := testManager(3)
	if err := m.CancelTask("no-such-task"); !errors.Is(err, ErrTaskNotFound) {
		t.Errorf("Expected ErrTaskNotFound, got %v", err)
	}
}

func TestGetTaskNotFound(t *testing.T) {
	m := testManager(3)
	if _, err := m.GetTask("no-such-task"); !errors.Is(err, ErrTaskNotFound) {
		t.Errorf("Expected ErrTaskNotFound, got %v", err)
	}
}

func TestUnsupportedTaskTypeFails(t *testing.T) {
	m := testManager(3)

	result, err := m.ExecuteTask(context.Background(), &TaskRequest{Type: TaskType("reindex")})
	if err != nil {
		t.Fatalf("ExecuteTask failed: %v", err)
	}

	task := waitForTask(t, m, result.ID)
	if task.Status != TaskStatusFailed {
		t.Fatalf("Expected failed task, got %s", task.Status)
	}
	if !strings.Contains(task.Error, "unsupported task type") {
		t.Errorf("Expected type error, got %q", task.Error)
	}
}

func TestFinishedTaskMovesToHistory(t *testing.T) {
	m := testManager(3)
	m.SetChecker(&fakeChecker{report: slots.Report{CheckedAt: time.Now()}})

	result, err := m.ExecuteTask(context.Background(), &TaskRequest{Type: TaskTypeCheck})
	if err != nil {
		t.Fatalf("ExecuteTask failed: %v", err)
	}
	waitForTask(t, m, result.ID)

	if got := len(m.GetTasks()); got != 0 {
		t.Errorf("Expected no active tasks after completion, got %d", got)
	}
	hist := m.GetTaskHistory()
	if len(hist) != 1 || hist[0].ID != result.ID {
		t.Fatalf("Expected the finished task in history, got %d entries", len(hist))
	}
	if m.GetRunningTaskCount() != 0 {
		t.Errorf("Expected 0 running tasks, got %d", m.GetRunningTaskCount())
	}
}

func TestMonitorStartStop(t *testing.T) {
	m := testManager(3)
	checker := &fakeChecker{report: slots.Report{CheckedAt: time.Now()}}
	monCfg := &config.MonitorConfig{Interval: 1, Cities: []string{"CHENNAI"}}
	m.SetMonitor(monitor.New(monCfg, checker, time.Hour))

	if err := m.StartMonitor(0); err != nil {
		t.Fatalf("StartMonitor failed: %v", err)
	}
	if !m.MonitorRunning() {
		t.Error("Expected MonitorRunning after start")
	}
	if err := m.StartMonitor(0); !errors.Is(err, monitor.ErrAlreadyRunning) {
		t.Errorf("Expected ErrAlreadyRunning on second start, got %v", err)
	}

	if err := m.StopMonitor(); err != nil {
		t.Fatalf("StopMonitor failed: %v", err)
	}
	deadline := time.Now().Add(2 * time.Second)
	for m.MonitorRunning() && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if m.MonitorRunning() {
		t.Fatal("Monitor still running after stop")
	}
	if err := m.StopMonitor(); !errors.Is(err, ErrMonitorNotRunning) {
		t.Errorf("Expected ErrMonitorNotRunning after stop, got %v", err)
	}
}

func TestStartMonitorWithoutMonitor(t *testing.T) {
	m := testManager(3)
	if err := m.StartMonitor(0); !errors.Is(err, ErrMonitorUnavailable) {
		t.Errorf("Expected ErrMonitorUnavailable, got %v", err)
	}
	if err := m.StopMonitor(); !errors.Is(err, ErrMonitorNotRunning) {
		t.Errorf("Expected ErrMonitorNotRunning, got %v", err)
	}
}

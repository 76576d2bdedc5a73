package models

import "time"

// SystemStatus represents the system status response
type SystemStatus struct {
	Service   string           `json:"service" example:"visawatch"`
	Version   string           `json:"version" example:"1.0.0"`
	Status    string           `json:"status" example:"running"`
	Timestamp time.Time        `json:"timestamp" example:"2026-08-15T08:13:24Z"`
	Uptime    int64            `json:"uptime" example:"3600"`
	Tasks     TasksStatus      `json:"tasks"`
	Monitor   *MonitorStatus   `json:"monitor,omitempty"`
	Scheduler *SchedulerStatus `json:"scheduler,omitempty"`
}

// TasksStatus represents the tasks status
type TasksStatus struct {
	Running int `json:"running" example:"1"`
	Total   int `json:"total" example:"4"`
}

// MonitorStatus represents the poll loop status
type MonitorStatus struct {
	Running         bool       `json:"running" example:"true"`
	Checks          int        `json:"checks" example:"42"`
	Cities          []string   `json:"cities" example:"Chennai,Mumbai"`
	IntervalSeconds int        `json:"interval_seconds" example:"60"`
	LastCheckedAt   *time.Time `json:"last_checked_at,omitempty" example:"2026-08-15T08:13:24Z"`
	LastError       string     `json:"last_error,omitempty"`
	MainLocations   int        `json:"main_locations" example:"2"`
	MainSlots       int        `json:"main_slots" example:"7"`
}

// SchedulerStatus represents the scheduler status
type SchedulerStatus struct {
	Running   bool      `json:"running" example:"true"`
	JobCount  int       `json:"job_count" example:"2"`
	Entries   int       `json:"entries" example:"2"`
	Timestamp time.Time `json:"timestamp" example:"2026-08-15T08:13:24Z"`
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string    `json:"status" example:"healthy"`
	Timestamp time.Time `json:"timestamp" example:"2026-08-15T08:13:24Z"`
	Service   string    `json:"service" example:"visawatch"`
	Version   string    `json:"version" example:"1.0.0"`
}

// SlotCheckRequest represents a manual slot check trigger
type SlotCheckRequest struct {
	Notify bool `json:"notify" example:"true"` // alert configured channels when main slots are found
}

// SlotEntry represents one location in an availability report
type SlotEntry struct {
	Location   string `json:"location" example:"Chennai"`
	Slots      int    `json:"slots" example:"5"`
	IsVAC      bool   `json:"is_vac" example:"false"`
	ReportedAt string `json:"reported_at" example:"15/08/2026 07:58:11"`
}

// LatestSlotsResponse represents the most recent availability report
type LatestSlotsResponse struct {
	Locations     []SlotEntry `json:"locations"`
	MainLocations int         `json:"main_locations" example:"2"`
	TotalSlots    int         `json:"total_slots" example:"7"`
	CheckedAt     time.Time   `json:"checked_at" example:"2026-08-15T08:13:24Z"`
}

// MonitorStartRequest represents a monitor start request
type MonitorStartRequest struct {
	DurationMinutes int `json:"duration_minutes" example:"120"` // 0 runs until stopped
}

// TaskOptions represents the per-type options of a task request
type TaskOptions struct {
	Consulate  string `json:"consulate,omitempty" example:"Chennai"`
	TargetDate string `json:"target_date,omitempty" example:"2026-09-15"`
	Notify     bool   `json:"notify,omitempty" example:"true"`
	Day        string `json:"day,omitempty" example:"2026-08-15"`
	Days       int    `json:"days,omitempty" example:"7"`
}

// TaskCreateRequest represents a task creation request
type TaskCreateRequest struct {
	Type   string      `json:"type" example:"check" validate:"required"`
	Config TaskOptions `json:"config"`
}

// TaskAckResponse represents the acknowledgement of a submitted task
type TaskAckResponse struct {
	TaskID    string    `json:"task_id" example:"9b2f6c1e-4a7d-4f7b-9c3e-5d8a2f1b0c4d"`
	Status    string    `json:"status" example:"started"`
	Message   string    `json:"message" example:"Task started"`
	Timestamp time.Time `json:"timestamp" example:"2026-08-15T08:13:24Z"`
}

// TaskResponse represents a task
type TaskResponse struct {
	ID        string     `json:"id" example:"9b2f6c1e-4a7d-4f7b-9c3e-5d8a2f1b0c4d"`
	Type      string     `json:"type" example:"check"`
	Status    string     `json:"status" example:"completed"`
	StartTime time.Time  `json:"start_time" example:"2026-08-15T08:13:24Z"`
	EndTime   *time.Time `json:"end_time,omitempty" example:"2026-08-15T08:13:30Z"`
	Error     string     `json:"error,omitempty"`
}

// TaskListResponse represents a list of tasks response
type TaskListResponse struct {
	Tasks []TaskResponse `json:"tasks"`
	Count int            `json:"count" example:"3"`
}

// BookingAttemptRequest represents a manual booking attempt trigger
type BookingAttemptRequest struct {
	Consulate  string `json:"consulate" example:"Chennai" validate:"required"`
	TargetDate string `json:"target_date,omitempty" example:"2026-09-15"` // earliest acceptable date, empty takes any
}

// AttemptEntry represents one recorded booking attempt
type AttemptEntry struct {
	AttemptID  string     `json:"attempt_id" example:"7f3a2b1c-9d4e-4f5a-8b6c-0d1e2f3a4b5c"`
	Consulate  string     `json:"consulate" example:"Chennai"`
	FacilityID string     `json:"facility_id" example:"122"`
	Status     string     `json:"status" example:"booked"`
	FailedStep string     `json:"failed_step,omitempty" example:"captcha"`
	ErrorMsg   string     `json:"error_msg,omitempty"`
	StartedAt  time.Time  `json:"started_at" example:"2026-08-15T08:13:24Z"`
	FinishedAt *time.Time `json:"finished_at,omitempty" example:"2026-08-15T08:14:02Z"`
	Duration   int64      `json:"duration" example:"38000"`
}

// AttemptListResponse represents a list of booking attempts
type AttemptListResponse struct {
	Attempts []AttemptEntry `json:"attempts"`
	Count    int            `json:"count" example:"5"`
}

// CheckEntry represents one persisted availability observation
type CheckEntry struct {
	CheckID    string    `json:"check_id" example:"c1f0a9d8-3b2e-4c5d-9e8f-7a6b5c4d3e2f"`
	CheckedAt  time.Time `json:"checked_at" example:"2026-08-15T08:13:24Z"`
	Location   string    `json:"location" example:"Chennai"`
	IsVAC      bool      `json:"is_vac" example:"false"`
	Slots      int       `json:"slots" example:"5"`
	ReportedAt string    `json:"reported_at" example:"15/08/2026 07:58:11"`
}

// CheckHistoryResponse represents recorded checks, newest first
type CheckHistoryResponse struct {
	Checks []CheckEntry `json:"checks"`
	Count  int          `json:"count" example:"100"`
}

// TrendDay represents one day in an availability trend
type TrendDay struct {
	Day   string `json:"day" example:"2026-08-14"`
	Slots int    `json:"slots" example:"12"`
}

// DailySummaryResponse represents one day's availability digest
type DailySummaryResponse struct {
	Day         string         `json:"day" example:"2026-08-15"`
	TotalChecks int            `json:"total_checks" example:"144"`
	TotalSlots  int            `json:"total_slots" example:"23"`
	PeakHour    int            `json:"peak_hour" example:"7"`
	ByLocation  map[string]int `json:"by_location"`
	Trend       []TrendDay     `json:"trend,omitempty"`
}

// JobOptions represents the per-task options of a scheduled job
type JobOptions struct {
	Notify      bool   `json:"notify,omitempty" example:"true"`
	SummaryDays int    `json:"summary_days,omitempty" example:"7"`
	Consulate   string `json:"consulate,omitempty" example:"Chennai"`
	TargetDate  string `json:"target_date,omitempty" example:"2026-09-15"`
}

// JobRequest represents a scheduled job creation request
type JobRequest struct {
	Name   string     `json:"name" example:"morning_check" validate:"required"`
	Cron   string     `json:"cron" example:"*/10 6-10 * * *" validate:"required"`
	Task   string     `json:"task" example:"slot_check" validate:"required"`
	Config JobOptions `json:"config"`
}

// JobResponse represents a scheduled job
type JobResponse struct {
	ID      string     `json:"id" example:"4d5e6f7a-8b9c-0d1e-2f3a-4b5c6d7e8f9a"`
	Name    string     `json:"name" example:"morning_check"`
	Cron    string     `json:"cron" example:"*/10 6-10 * * *"`
	Task    string     `json:"task" example:"slot_check"`
	Status  string     `json:"status" example:"scheduled"`
	NextRun *time.Time `json:"next_run,omitempty" example:"2026-08-15T09:10:00Z"`
	LastRun *time.Time `json:"last_run,omitempty" example:"2026-08-15T09:00:00Z"`
}

// JobListResponse represents a list of scheduled jobs response
type JobListResponse struct {
	Jobs      []JobResponse `json:"jobs"`
	Count     int           `json:"count" example:"2"`
	Timestamp time.Time     `json:"timestamp" example:"2026-08-15T08:13:24Z"`
}

// NotificationTestRequest represents a test notification trigger
type NotificationTestRequest struct {
	Channel string `json:"channel,omitempty" example:"telegram"` // empty tests every configured channel
}

// NotificationEntry represents one recorded outbound notification
type NotificationEntry struct {
	Channel  string    `json:"channel" example:"telegram"`
	Status   string    `json:"status" example:"sent"`
	Message  string    `json:"message"`
	ErrorMsg string    `json:"error_msg,omitempty"`
	SentAt   time.Time `json:"sent_at" example:"2026-08-15T08:13:24Z"`
}

// NotificationListResponse represents recorded notifications, newest first
type NotificationListResponse struct {
	Notifications []NotificationEntry `json:"notifications"`
	Count         int                 `json:"count" example:"10"`
}

// ConfigResponse represents configuration response (sensitive data masked)
type ConfigResponse struct {
	App           AppConfigView     `json:"app"`
	Slots         SlotsConfigView   `json:"slots"`
	Monitor       MonitorConfigView `json:"monitor"`
	Notifications NotificationsView `json:"notifications"`
	Booking       BookingConfigView `json:"booking"`
	History       HistoryConfigView `json:"history"`
}

// AppConfigView represents application configuration
type AppConfigView struct {
	LogLevel    string `json:"log_level" example:"info"`
	LogFile     string `json:"log_file,omitempty"`
	Environment string `json:"environment" example:"production"`
}

// SlotsConfigView represents slot feed configuration
type SlotsConfigView struct {
	Endpoint   string `json:"endpoint" example:"https://app.checkvisaslots.com/slots/v3"`
	Timeout    int    `json:"timeout" example:"30"`
	RateLimit  int    `json:"rate_limit" example:"10"`
	RateWindow int    `json:"rate_window" example:"60"`
	// Note: APIKey is masked for security
	HasAPIKey bool `json:"has_api_key" example:"true"`
}

// MonitorConfigView represents poll loop configuration
type MonitorConfigView struct {
	Interval        int      `json:"interval" example:"60"`
	DurationMinutes int      `json:"duration_minutes" example:"0"`
	Cities          []string `json:"cities" example:"Chennai,Mumbai"`
	StartupNotice   bool     `json:"startup_notice" example:"true"`
	BookOnSlot      bool     `json:"book_on_slot" example:"false"`
}

// NotificationsView represents notification channel configuration
type NotificationsView struct {
	Telegram TelegramConfigView `json:"telegram"`
	Webhook  WebhookConfigView  `json:"webhook"`
}

// TelegramConfigView represents Telegram channel configuration
type TelegramConfigView struct {
	Enabled  bool   `json:"enabled" example:"true"`
	ChatID   string `json:"chat_id" example:"-100***4567"`
	Cooldown int    `json:"cooldown" example:"300"`
	// Note: BotToken is masked for security
	HasBotToken bool `json:"has_bot_token" example:"true"`
}

// WebhookConfigView represents webhook channel configuration
type WebhookConfigView struct {
	Enabled    bool   `json:"enabled" example:"false"`
	URL        string `json:"url" example:"https://hook***example"`
	MaxRetries int    `json:"max_retries" example:"3"`
}

// BookingConfigView represents booking bot configuration
type BookingConfigView struct {
	Enabled     bool   `json:"enabled" example:"false"`
	Headless    bool   `json:"headless" example:"true"`
	CountryCode string `json:"country_code" example:"in"`
	ConsularID  string `json:"consular_id" example:"122"`
	// Note: portal and captcha credentials are masked
	HasCredentials   bool `json:"has_credentials" example:"true"`
	HasCaptchaSolver bool `json:"has_captcha_solver" example:"false"`
}

// HistoryConfigView represents check-history store configuration
type HistoryConfigView struct {
	Enabled  bool     `json:"enabled" example:"true"`
	Hosts    []string `json:"hosts" example:"localhost"`
	Port     int      `json:"port" example:"9000"`
	Database string   `json:"database" example:"default"`
	Protocol string   `json:"protocol" example:"native"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   bool   `json:"error" example:"true"`
	Message string `json:"message" example:"Invalid request parameters"`
	Code    int    `json:"code" example:"400"`
	Details string `json:"details,omitempty" example:"consulate is required"`
}

// MessageResponse represents a simple message response
type MessageResponse struct {
	Message string `json:"message" example:"Operation completed"`
	Success bool   `json:"success" example:"true"`
}

package booking

import (
	"context"
	"time"
)

// Step names recorded in the attempt trail, in flow order.
const (
	StepStartBrowser    = "start_browser"
	StepLogin           = "login"
	StepAppointmentPage = "appointment_page"
	StepCaptcha         = "captcha"
	StepSelectSlot      = "select_slot"
	StepConfirm         = "confirm"
)

// Step status values.
const (
	StepStatusOK     = "ok"
	StepStatusFailed = "failed"
)

// StepResult is one entry of an attempt's step trail.
type StepResult struct {
	Step       string `json:"step"`
	Status     string `json:"status"`
	Detail     string `json:"detail,omitempty"`
	DurationMS int64  `json:"duration_ms"`
}

// Attempt is the record of one end-to-end booking run.
type Attempt struct {
	ID         string       `json:"id"`
	Consulate  string       `json:"consulate"`
	FacilityID string       `json:"facility_id"`
	StartedAt  time.Time    `json:"started_at"`
	FinishedAt time.Time    `json:"finished_at"`
	Steps      []StepResult `json:"steps"`
	Booked     bool         `json:"booked"`
	FailedStep string       `json:"failed_step,omitempty"`
	Error      string       `json:"error,omitempty"`
}

// record appends a step outcome to the trail.
func (a *Attempt) record(stepName string, started time.Time, err error) {
	result := StepResult{
		Step:       stepName,
		Status:     StepStatusOK,
		DurationMS: time.Since(started).Milliseconds(),
	}
	if err != nil {
		result.Status = StepStatusFailed
		result.Detail = err.Error()
	}
	a.Steps = append(a.Steps, result)
}

// fail marks the attempt as aborted at the given step.
func (a *Attempt) fail(stepName string, err error) {
	a.FailedStep = stepName
	if err != nil {
		a.Error = err.Error()
	}
}

// Duration is the wall-clock length of the attempt.
func (a *Attempt) Duration() time.Duration {
	if a.FinishedAt.IsZero() {
		return time.Since(a.StartedAt)
	}
	return a.FinishedAt.Sub(a.StartedAt)
}

// AttemptSink receives finished attempts, booked or not. The journal
// implements it.
type AttemptSink interface {
	RecordAttempt(ctx context.Context, attempt *Attempt) error
}

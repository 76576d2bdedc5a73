package monitor

import (
	"time"

	"visawatch/pkg/slots"
)

// Status is the loop snapshot the control API serves.
type Status struct {
	Running          bool      `json:"running"`
	Checks           int       `json:"checks"`
	Cities           []string  `json:"cities"`
	IntervalSeconds  int       `json:"interval_seconds"`
	LastCheckedAt    time.Time `json:"last_checked_at,omitempty"`
	LastError        string    `json:"last_error,omitempty"`
	LastNotification time.Time `json:"last_notification,omitempty"`
	MainLocations    int       `json:"main_locations"`
	MainSlots        int       `json:"main_slots"`
}

// Status reports the current loop state.
func (m *Monitor) Status() Status {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return Status{
		Running:          m.running,
		Checks:           m.checks,
		Cities:           m.monitoredCities(),
		IntervalSeconds:  int(m.interval.Seconds()),
		LastCheckedAt:    m.lastReport.CheckedAt,
		LastError:        m.lastError,
		LastNotification: m.cooldown.LastDelivery(),
		MainLocations:    len(m.lastReport.Main),
		MainSlots:        m.lastReport.TotalMainSlots(),
	}
}

// LastReport returns the most recent report, zero before the first
// cycle.
func (m *Monitor) LastReport() slots.Report {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.lastReport
}

// Checks returns the number of completed cycles in the current run.
func (m *Monitor) Checks() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.checks
}

// IsRunning reports whether the loop is active.
func (m *Monitor) IsRunning() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.running
}

package handlers

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"visawatch/pkg/history"
)

func summaryRow(checkID string, at time.Time, location string, isVAC bool, slotCount int) history.CheckRow {
	return history.CheckRow{
		CheckID:    checkID,
		CheckedAt:  at,
		Location:   location,
		IsVAC:      isVAC,
		Slots:      slotCount,
		ReportedAt: at.Format("02/01/2006 15:04:05"),
	}
}

func TestGetCheckHistoryUnavailable(t *testing.T) {
	h := newService(&fakeTaskManager{})

	w := serve(http.MethodGet, "/history/checks", h.GetCheckHistory, "/history/checks", "")
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("Expected 503 without a store, got %d", w.Code)
	}
}

func TestGetCheckHistoryReturnsRows(t *testing.T) {
	store := &fakeHistoryStore{rows: []history.CheckRow{
		summaryRow("c1", time.Now(), "Chennai", false, 5),
		summaryRow("c1", time.Now(), "Chennai VAC", true, 2),
	}}
	h := newService(&fakeTaskManager{})
	h.SetHistory(store)

	w := serve(http.MethodGet, "/history/checks", h.GetCheckHistory, "/history/checks?limit=10", "")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}

	body := decodeBody(t, w)
	if body["count"].(float64) != 2 {
		t.Errorf("Expected 2 rows, got %v", body["count"])
	}

	store.mu.Lock()
	defer store.mu.Unlock()
	if store.lastLimit != 10 {
		t.Errorf("Expected limit 10 passed to store, got %d", store.lastLimit)
	}
}

func TestGetCheckHistoryClampsLimit(t *testing.T) {
	store := &fakeHistoryStore{}
	h := newService(&fakeTaskManager{})
	h.SetHistory(store)

	w := serve(http.MethodGet, "/history/checks", h.GetCheckHistory, "/history/checks?limit=5000", "")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}

	store.mu.Lock()
	defer store.mu.Unlock()
	if store.lastLimit != 1000 {
		t.Errorf("Expected limit clamped to 1000, got %d", store.lastLimit)
	}
}

func TestGetCheckHistoryQueryFailure(t *testing.T) {
	h := newService(&fakeTaskManager{})
	h.SetHistory(&fakeHistoryStore{err: errors.New("connection refused")})

	w := serve(http.MethodGet, "/history/checks", h.GetCheckHistory, "/history/checks", "")
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("Expected 500 on query failure, got %d", w.Code)
	}
}

func TestGetDailySummaryAggregatesDay(t *testing.T) {
	day := time.Date(2026, 8, 15, 0, 0, 0, 0, time.Local)
	store := &fakeHistoryStore{rows: []history.CheckRow{
		summaryRow("c1", day.Add(10*time.Hour), "Chennai", false, 5),
		summaryRow("c1", day.Add(10*time.Hour), "Chennai VAC", true, 3),
		summaryRow("c2", day.Add(14*time.Hour), "Mumbai", false, 2),
	}}
	h := newService(&fakeTaskManager{})
	h.SetHistory(store)

	w := serve(http.MethodGet, "/history/summary", h.GetDailySummary, "/history/summary?day=2026-08-15", "")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}

	body := decodeBody(t, w)
	if body["day"] != "2026-08-15" {
		t.Errorf("Expected summarised day, got %v", body["day"])
	}
	if body["total_checks"].(float64) != 2 {
		t.Errorf("Expected 2 checks, got %v", body["total_checks"])
	}
	// VAC rows never count toward slot totals.
	if body["total_slots"].(float64) != 7 {
		t.Errorf("Expected 7 main slots, got %v", body["total_slots"])
	}
	if body["peak_hour"].(float64) != 10 {
		t.Errorf("Expected peak hour 10, got %v", body["peak_hour"])
	}
	if _, present := body["trend"]; present {
		t.Error("Expected no trend for a single-day summary")
	}

	byLocation := body["by_location"].(map[string]interface{})
	if byLocation["Chennai"].(float64) != 5 {
		t.Errorf("Expected 5 Chennai slots, got %v", byLocation["Chennai"])
	}
}

func TestGetDailySummaryTrendWindow(t *testing.T) {
	day := time.Date(2026, 8, 15, 0, 0, 0, 0, time.Local)
	store := &fakeHistoryStore{rows: []history.CheckRow{
		summaryRow("c1", day.AddDate(0, 0, -1).Add(9*time.Hour), "Chennai", false, 2),
		summaryRow("c2", day.Add(11*time.Hour), "Chennai", false, 6),
	}}
	h := newService(&fakeTaskManager{})
	h.SetHistory(store)

	w := serve(http.MethodGet, "/history/summary", h.GetDailySummary, "/history/summary?day=2026-08-15&days=2", "")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}

	body := decodeBody(t, w)
	if body["total_slots"].(float64) != 6 {
		t.Errorf("Expected only the summarised day in totals, got %v", body["total_slots"])
	}

	trend := body["trend"].([]interface{})
	if len(trend) != 2 {
		t.Fatalf("Expected 2 trend days, got %d", len(trend))
	}
	first := trend[0].(map[string]interface{})
	if first["day"] != "2026-08-14" || first["slots"].(float64) != 2 {
		t.Errorf("Expected oldest day first in trend, got %v", first)
	}

	// The fetch window must reach back to cover the whole trend.
	store.mu.Lock()
	defer store.mu.Unlock()
	wantSince := day.AddDate(0, 0, -1)
	if !store.lastSince.Equal(wantSince) {
		t.Errorf("Expected fetch since %v, got %v", wantSince, store.lastSince)
	}
}

func TestGetDailySummaryRejectsBadDay(t *testing.T) {
	h := newService(&fakeTaskManager{})
	h.SetHistory(&fakeHistoryStore{})

	w := serve(http.MethodGet, "/history/summary", h.GetDailySummary, "/history/summary?day=15-08-2026", "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400 on a bad day format, got %d", w.Code)
	}
}

func TestGetDailySummaryRejectsBadWindow(t *testing.T) {
	h := newService(&fakeTaskManager{})
	h.SetHistory(&fakeHistoryStore{})

	for _, days := range []string{"0", "32", "x"} {
		w := serve(http.MethodGet, "/history/summary", h.GetDailySummary, "/history/summary?days="+days, "")
		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400 for days=%s, got %d", days, w.Code)
		}
	}
}

func TestGetHistoryStatsReportsCount(t *testing.T) {
	h := newService(&fakeTaskManager{})
	h.SetHistory(&fakeHistoryStore{count: 4121})

	w := serve(http.MethodGet, "/history/stats", h.GetHistoryStats, "/history/stats", "")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}

	body := decodeBody(t, w)
	if body["total_rows"].(float64) != 4121 {
		t.Errorf("Expected row count, got %v", body["total_rows"])
	}
}

func TestGetHistoryStatsUnavailable(t *testing.T) {
	h := newService(&fakeTaskManager{})

	w := serve(http.MethodGet, "/history/stats", h.GetHistoryStats, "/history/stats", "")
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("Expected 503 without a store, got %d", w.Code)
	}
}

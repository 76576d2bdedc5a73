package handlers

import (
	"net/http"
	"testing"
	"time"

	"visawatch/internal/models"
	"visawatch/pkg/journal"
	"visawatch/pkg/tasks"
)

func TestCreateBookingAttemptSubmitsTask(t *testing.T) {
	tm := &fakeTaskManager{}
	h := newService(tm)

	payload := `{"consulate":"Chennai","target_date":"2026-09-01"}`
	w := serve(http.MethodPost, "/booking/attempts", h.CreateBookingAttempt, "/booking/attempts", payload)
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
	}

	body := decodeBody(t, w)
	if body["status"] != "started" {
		t.Errorf("Expected started status, got %v", body["status"])
	}
	if body["message"] != "Booking attempt started" {
		t.Errorf("Expected booking acknowledgement, got %v", body["message"])
	}

	req := tm.submitted()
	if req == nil {
		t.Fatal("Expected a task submission")
	}
	if req.Type != tasks.TaskTypeBooking {
		t.Errorf("Expected booking task, got %s", req.Type)
	}
	if req.Config.Consulate != "Chennai" {
		t.Errorf("Expected consulate passthrough, got %q", req.Config.Consulate)
	}
}

func TestCreateBookingAttemptRequiresConsulate(t *testing.T) {
	h := newService(&fakeTaskManager{})

	w := serve(http.MethodPost, "/booking/attempts", h.CreateBookingAttempt, "/booking/attempts", `{"target_date":"2026-09-01"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400 without a consulate, got %d", w.Code)
	}

	body := decodeBody(t, w)
	if body["message"] != "Invalid parameter" {
		t.Errorf("Expected parameter validation message, got %v", body["message"])
	}
}

func TestCreateBookingAttemptRejectsBadDate(t *testing.T) {
	h := newService(&fakeTaskManager{})

	w := serve(http.MethodPost, "/booking/attempts", h.CreateBookingAttempt, "/booking/attempts", `{"consulate":"Chennai","target_date":"01/09/2026"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400 on a bad date, got %d", w.Code)
	}
}

func TestCreateBookingAttemptUnknownConsulate(t *testing.T) {
	tm := &fakeTaskManager{}
	h := newService(tm)

	w := serve(http.MethodPost, "/booking/attempts", h.CreateBookingAttempt, "/booking/attempts", `{"consulate":"Atlantis"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400 for an unknown consulate, got %d", w.Code)
	}

	body := decodeBody(t, w)
	if body["message"] != "Unknown consulate" {
		t.Errorf("Expected unknown consulate message, got %v", body["message"])
	}
	if tm.submitted() != nil {
		t.Error("Expected no task submission for an unknown consulate")
	}
}

func TestCreateBookingAttemptAcceptsVACSpelling(t *testing.T) {
	tm := &fakeTaskManager{}
	h := newService(tm)

	// The registry lookup tolerates the feed's VAC marker and casing.
	w := serve(http.MethodPost, "/booking/attempts", h.CreateBookingAttempt, "/booking/attempts", `{"consulate":"CHENNAI VAC"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201 for a VAC spelling, got %d: %s", w.Code, w.Body.String())
	}
}

func TestGetBookingAttemptsUnavailable(t *testing.T) {
	h := newService(&fakeTaskManager{})

	w := serve(http.MethodGet, "/booking/attempts", h.GetBookingAttempts, "/booking/attempts", "")
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("Expected 503 without a journal, got %d", w.Code)
	}
}

func TestGetBookingAttemptsListsJournal(t *testing.T) {
	j := &fakeJournal{attempts: []models.BookingAttempt{
		{AttemptID: "att-1", Consulate: "Chennai", Status: models.AttemptStatusFailed},
		{AttemptID: "att-2", Consulate: "Mumbai", Status: models.AttemptStatusBooked},
	}}
	h := newService(&fakeTaskManager{})
	h.SetJournal(j)

	w := serve(http.MethodGet, "/booking/attempts", h.GetBookingAttempts, "/booking/attempts?limit=5", "")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}

	body := decodeBody(t, w)
	if body["count"].(float64) != 2 {
		t.Errorf("Expected 2 attempts, got %v", body["count"])
	}

	j.mu.Lock()
	defer j.mu.Unlock()
	if j.lastLimit != 5 {
		t.Errorf("Expected limit 5 passed to journal, got %d", j.lastLimit)
	}
}

func TestGetBookingAttemptByID(t *testing.T) {
	started := time.Now().Add(-time.Minute)
	j := &fakeJournal{attempt: &models.BookingAttempt{
		AttemptID:  "att-7f3a",
		Consulate:  "Chennai",
		FacilityID: "122",
		Status:     models.AttemptStatusBooked,
		StartedAt:  started,
	}}
	h := newService(&fakeTaskManager{})
	h.SetJournal(j)

	w := serve(http.MethodGet, "/booking/attempts/:id", h.GetBookingAttempt, "/booking/attempts/att-7f3a", "")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}

	body := decodeBody(t, w)
	if body["attempt_id"] != "att-7f3a" {
		t.Errorf("Expected attempt ID, got %v", body["attempt_id"])
	}
	if body["status"] != "booked" {
		t.Errorf("Expected booked status, got %v", body["status"])
	}
}

func TestGetBookingAttemptNotFound(t *testing.T) {
	h := newService(&fakeTaskManager{})
	h.SetJournal(&fakeJournal{attemptErr: journal.ErrAttemptNotFound})

	w := serve(http.MethodGet, "/booking/attempts/:id", h.GetBookingAttempt, "/booking/attempts/ghost", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("Expected 404, got %d", w.Code)
	}

	body := decodeBody(t, w)
	if body["message"] != "Booking attempt not found" {
		t.Errorf("Expected not found message, got %v", body["message"])
	}
}

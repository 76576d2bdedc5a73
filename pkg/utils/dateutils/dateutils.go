package dateutils

import (
	"fmt"
	"strings"
	"time"
)

// Common date layouts used throughout the application
const (
	LayoutDate      = "2006-01-02"
	LayoutDateTime  = "2006-01-02 15:04:05"
	LayoutVendor    = "02/01/2006 15:04:05"
	LayoutVendorDay = "02/01/2006"
	MinValidYear    = 2018
)

// vendorLayouts is the parsing cascade for the handful of timestamp
// shapes the slot feed has been seen to emit. Order matters: the most
// common shape first.
var vendorLayouts = []string{
	LayoutVendor,
	LayoutVendorDay,
	LayoutDateTime,
	time.RFC3339,
	LayoutDate,
}

// ParseReportTime parses a reported-at string from the slot feed. The
// feed gives no timezone, so the result is in the supplied location.
func ParseReportTime(value string, loc *time.Location) (time.Time, error) {
	if value == "" {
		return time.Time{}, fmt.Errorf("report time cannot be empty")
	}
	if loc == nil {
		loc = time.UTC
	}

	value = strings.TrimSpace(value)

	for _, layout := range vendorLayouts {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("unable to parse report time: %s", value)
}

// DateBucket reduces a reported-at string to its calendar day, the key
// used for duplicate suppression. Unparseable values fall back to the
// raw string so distinct garbage never collapses into one bucket.
func DateBucket(value string) string {
	t, err := ParseReportTime(value, time.UTC)
	if err != nil {
		return strings.TrimSpace(value)
	}
	return t.Format(LayoutDate)
}

// FormatCheckedAt renders a check timestamp the way alerts display it.
func FormatCheckedAt(t time.Time) string {
	return t.Format(LayoutDateTime)
}

// ParseFlexibleDate attempts to parse a date string with multiple possible formats
// Supports: "2006-01-02", "2006-01-02 15:04:05", RFC3339
func ParseFlexibleDate(dateStr string) (time.Time, error) {
	if dateStr == "" {
		return time.Time{}, nil // Empty date is allowed in some contexts
	}

	dateStr = strings.TrimSpace(dateStr)

	// Try different formats in order of specificity
	formats := []string{
		LayoutDateTime,
		time.RFC3339,
		LayoutDate,
	}

	for _, format := range formats {
		if date, err := time.Parse(format, dateStr); err == nil {
			return date, nil
		}
	}

	return time.Time{}, fmt.Errorf("unable to parse date: %s", dateStr)
}

// ValidateDate validates a date string in YYYY-MM-DD format
func ValidateDate(dateStr string) error {
	if dateStr == "" {
		return fmt.Errorf("date cannot be empty")
	}

	date, err := time.Parse(LayoutDate, dateStr)
	if err != nil {
		return fmt.Errorf("invalid date format: expected YYYY-MM-DD, got %s", dateStr)
	}

	return validateDateRange(date)
}

// IsFutureDate checks if a date is in the future
func IsFutureDate(date time.Time) bool {
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	return dateOnly.After(today)
}

// validateDateRange validates that a date is within acceptable range
func validateDateRange(date time.Time) error {
	minTime := time.Date(MinValidYear, 1, 1, 0, 0, 0, 0, time.UTC)
	if date.Before(minTime) {
		return fmt.Errorf("date %s is before %d", date.Format(LayoutDate), MinValidYear)
	}

	return nil
}

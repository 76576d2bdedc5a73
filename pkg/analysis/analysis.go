// Package analysis reduces recorded check history to availability
// summaries. Everything here is pure computation; fetching rows is the
// history store's job.
package analysis

import (
	"sort"
	"time"

	"visawatch/pkg/history"
)

// DailySummary aggregates one calendar day of recorded checks. Slot
// figures count main consulates only; VAC rows contribute to the check
// count but never to slot totals.
type DailySummary struct {
	Day         string         `json:"day"` // YYYY-MM-DD
	TotalChecks int            `json:"total_checks"`
	TotalSlots  int            `json:"total_slots"`
	PeakHour    int            `json:"peak_hour"`
	ByLocation  map[string]int `json:"by_location"`
}

// DayCount is one day of the availability trend.
type DayCount struct {
	Day   string `json:"day"`
	Slots int    `json:"slots"`
}

// Summarize aggregates the rows that fall on the given calendar day in
// the given zone. A nil zone means UTC.
func Summarize(rows []history.CheckRow, day time.Time, zone *time.Location) DailySummary {
	if zone == nil {
		zone = time.UTC
	}
	wantDay := day.In(zone).Format("2006-01-02")

	summary := DailySummary{
		Day:        wantDay,
		ByLocation: make(map[string]int),
	}

	checkIDs := make(map[string]bool)
	hourSlots := make(map[int]int)

	for _, row := range rows {
		at := row.CheckedAt.In(zone)
		if at.Format("2006-01-02") != wantDay {
			continue
		}

		checkIDs[row.CheckID] = true
		if row.IsVAC {
			continue
		}

		summary.TotalSlots += row.Slots
		summary.ByLocation[row.Location] += row.Slots
		hourSlots[at.Hour()] += row.Slots
	}

	summary.TotalChecks = len(checkIDs)
	summary.PeakHour = peakHour(hourSlots)
	return summary
}

// Trend returns per-day main-consulate slot totals, oldest day first.
func Trend(rows []history.CheckRow, zone *time.Location) []DayCount {
	if zone == nil {
		zone = time.UTC
	}

	totals := make(map[string]int)
	for _, row := range rows {
		if row.IsVAC {
			continue
		}
		totals[row.CheckedAt.In(zone).Format("2006-01-02")] += row.Slots
	}

	days := make([]string, 0, len(totals))
	for day := range totals {
		days = append(days, day)
	}
	sort.Strings(days)

	trend := make([]DayCount, 0, len(days))
	for _, day := range days {
		trend = append(trend, DayCount{Day: day, Slots: totals[day]})
	}
	return trend
}

// peakHour picks the hour with the most slots; ties go to the earlier
// hour, no slots at all to hour zero.
func peakHour(hourSlots map[int]int) int {
	best, bestCount := 0, 0
	for hour := 0; hour < 24; hour++ {
		if count := hourSlots[hour]; count > bestCount {
			best, bestCount = hour, count
		}
	}
	return best
}

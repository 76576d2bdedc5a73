package notifier

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"visawatch/pkg/analysis"
	"visawatch/pkg/slots"
	"visawatch/pkg/utils/dateutils"
)

// BookingURL is where the alert points people; the scheduling portal,
// not the feed.
const BookingURL = "https://www.usvisascheduling.com/"

// FormatSlotAlert renders the main-consulate alert in Telegram HTML.
func FormatSlotAlert(report slots.Report) string {
	var b strings.Builder

	fmt.Fprintf(&b, "🎯 <b>VISA SLOTS AVAILABLE!</b> (%d locations)\n\n", len(report.Main))

	for _, rec := range report.Main {
		fmt.Fprintf(&b, "📍 <b>%s</b>: %d slots\n", rec.DisplayName(), rec.Slots)
	}

	fmt.Fprintf(&b, "\n⏰ Checked at: %s", dateutils.FormatCheckedAt(report.CheckedAt))
	fmt.Fprintf(&b, "\n\n⚡ Book now at: %s", BookingURL)

	return b.String()
}

// FormatStartupMessage announces that monitoring has begun.
func FormatStartupMessage(cities []string, interval time.Duration) string {
	sorted := append([]string(nil), cities...)
	sort.Strings(sorted)

	var b strings.Builder
	b.WriteString("🚀 <b>Slot monitoring started</b>\n\n")
	fmt.Fprintf(&b, "📊 Watching: %s (main consulates only)\n", strings.Join(sorted, ", "))
	fmt.Fprintf(&b, "⏰ Check interval: %d seconds", int(interval.Seconds()))
	return b.String()
}

// FormatDailySummary renders the scheduled availability digest.
func FormatDailySummary(day string, totalChecks int, totalSlots int, peakHour int, byLocation map[string]int) string {
	var b strings.Builder

	fmt.Fprintf(&b, "📊 <b>Availability summary for %s</b>\n\n", day)
	fmt.Fprintf(&b, "🔍 Checks recorded: %d\n", totalChecks)
	fmt.Fprintf(&b, "🎫 Slots seen: %d\n", totalSlots)
	if totalSlots > 0 {
		fmt.Fprintf(&b, "⏰ Busiest hour: %02d:00\n", peakHour)
	}

	if len(byLocation) > 0 {
		b.WriteString("\n")
		locations := make([]string, 0, len(byLocation))
		for loc := range byLocation {
			locations = append(locations, loc)
		}
		sort.Strings(locations)
		for _, loc := range locations {
			fmt.Fprintf(&b, "📍 <b>%s</b>: %d slots\n", loc, byLocation[loc])
		}
	}

	return strings.TrimRight(b.String(), "\n")
}

// FormatTrend renders per-day consulate totals for a multi-day window.
func FormatTrend(days []analysis.DayCount) string {
	if len(days) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString("📈 <b>Trend</b>\n")
	for _, d := range days {
		fmt.Fprintf(&b, "%s: %d slots\n", d.Day, d.Slots)
	}
	return strings.TrimRight(b.String(), "\n")
}

// FormatTestMessage is the connectivity probe body.
func FormatTestMessage() string {
	return "🔔 <b>Slot monitor test</b>\n\nNotifications are working."
}

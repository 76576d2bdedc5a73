package slots

import (
	"time"

	"visawatch/pkg/utils/dateutils"
)

// SlotDetail is one row of the feed response, exactly as the vendor
// returns it.
type SlotDetail struct {
	VisaLocation string `json:"visa_location"`
	Slots        int    `json:"slots"`
	CreatedOn    string `json:"createdon"`
}

// SlotRecord is a classified per-location availability record. Location
// carries the canonical consulate name; IsVAC marks the application
// center variant, which never counts as a main-consulate record.
type SlotRecord struct {
	Location   string `json:"location"`
	Slots      int    `json:"slots"`
	ReportedAt string `json:"reported_at"` // opaque vendor timestamp
	IsVAC      bool   `json:"is_vac"`
	IsMain     bool   `json:"is_main"`
}

// DisplayName renders the record's site name, VAC marker included.
func (r SlotRecord) DisplayName() string {
	if r.IsVAC {
		return r.Location + " VAC"
	}
	return r.Location
}

// Report is the outcome of one fetch-and-classify cycle. All holds every
// location with open slots, Main the subset at monitored consulates.
type Report struct {
	All       []SlotRecord `json:"all"`
	Main      []SlotRecord `json:"main"`
	CheckedAt time.Time    `json:"checked_at"`
}

// HasMainSlots reports whether any monitored consulate has open slots.
func (r Report) HasMainSlots() bool {
	return len(r.Main) > 0
}

// TotalMainSlots sums the open-slot counts across monitored consulates.
func (r Report) TotalMainSlots() int {
	total := 0
	for _, rec := range r.Main {
		total += rec.Slots
	}
	return total
}

// LocationCount carries the per-location split between the consulate
// proper and its application center.
type LocationCount struct {
	Main int `json:"main"`
	VAC  int `json:"vac"`
}

// Summary groups every record by base location name.
func (r Report) Summary() map[string]LocationCount {
	summary := make(map[string]LocationCount, len(r.All))
	for _, rec := range r.All {
		counts := summary[rec.Location]
		if rec.IsVAC {
			counts.VAC += rec.Slots
		} else {
			counts.Main += rec.Slots
		}
		summary[rec.Location] = counts
	}
	return summary
}

// EarliestMain returns the main record with the oldest parseable report
// time, or false when none parses. Useful for "how fresh is this"
// logging, not for booking decisions.
func (r Report) EarliestMain() (SlotRecord, bool) {
	var best SlotRecord
	var bestTime time.Time
	found := false

	for _, rec := range r.Main {
		t, err := dateutils.ParseReportTime(rec.ReportedAt, time.UTC)
		if err != nil {
			continue
		}
		if !found || t.Before(bestTime) {
			best = rec
			bestTime = t
			found = true
		}
	}

	return best, found
}

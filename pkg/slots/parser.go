package slots

import (
	"time"

	"visawatch/pkg/utils/dateutils"
)

// Parser reduces raw feed rows to a classified, deduplicated report.
// The monitored set is fixed at construction; membership is checked
// against canonical names so config may use any known spelling.
type Parser struct {
	monitored map[string]bool

	// MaxAge drops rows whose report time is older than this. Zero
	// keeps everything, and rows with unparseable times always pass.
	MaxAge time.Duration
}

// NewParser builds a parser watching the given consulate cities.
func NewParser(cities []string) *Parser {
	monitored := make(map[string]bool, len(cities))
	for _, city := range cities {
		monitored[CanonicalLocation(city)] = true
	}
	return &Parser{monitored: monitored}
}

// Monitored reports whether a location is on the allow-list.
func (p *Parser) Monitored(location string) bool {
	return p.monitored[CanonicalLocation(location)]
}

// MonitoredCities returns the canonical allow-list.
func (p *Parser) MonitoredCities() []string {
	cities := make([]string, 0, len(p.monitored))
	for city := range p.monitored {
		cities = append(cities, city)
	}
	return cities
}

// Classify maps feed rows into the report views. Rows without open
// slots vanish from both views, VAC variants never reach Main, and a
// duplicate (site, report-day) row keeps its first occurrence. The
// source usually emits one row per site per poll, so the dedup is a
// safety net rather than a primary mechanism.
func (p *Parser) Classify(details []SlotDetail, checkedAt time.Time) Report {
	report := Report{CheckedAt: checkedAt}
	seen := make(map[string]bool, len(details))

	for _, d := range details {
		if d.Slots <= 0 {
			continue
		}
		if p.tooOld(d.CreatedOn, checkedAt) {
			continue
		}

		isVAC := IsVACLocation(d.VisaLocation)
		location := CanonicalLocation(d.VisaLocation)

		key := dedupKey(location, isVAC, d.CreatedOn)
		if seen[key] {
			continue
		}
		seen[key] = true

		record := SlotRecord{
			Location:   location,
			Slots:      d.Slots,
			ReportedAt: d.CreatedOn,
			IsVAC:      isVAC,
			IsMain:     !isVAC && p.monitored[location],
		}

		report.All = append(report.All, record)
		if record.IsMain {
			report.Main = append(report.Main, record)
		}
	}

	return report
}

func (p *Parser) tooOld(reportedAt string, checkedAt time.Time) bool {
	if p.MaxAge <= 0 {
		return false
	}
	t, err := dateutils.ParseReportTime(reportedAt, checkedAt.Location())
	if err != nil {
		return false
	}
	return checkedAt.Sub(t) > p.MaxAge
}

// dedupKey identifies a row by site, VAC marker and report day. The VAC
// marker is part of the key so a consulate and its application center
// reported on the same day stay distinct rows.
func dedupKey(location string, isVAC bool, reportedAt string) string {
	key := location
	if isVAC {
		key += "|vac"
	}
	return key + "|" + dateutils.DateBucket(reportedAt)
}

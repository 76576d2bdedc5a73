package slots

import (
	"testing"
	"time"
)

func TestClassifyScenarios(t *testing.T) {
	parser := NewParser([]string{"CHENNAI", "HYDERABAD", "MUMBAI"})
	now := time.Now()

	tests := []struct {
		name       string
		details    []SlotDetail
		wantAll    int
		wantMain   int
		wantIsVAC  bool
		wantIsMain bool
	}{
		{
			name: "main consulate with open slots",
			details: []SlotDetail{
				{VisaLocation: "CHENNAI", Slots: 3, CreatedOn: "t1"},
			},
			wantAll:    1,
			wantMain:   1,
			wantIsVAC:  false,
			wantIsMain: true,
		},
		{
			name: "vac variant never reaches main",
			details: []SlotDetail{
				{VisaLocation: "CHENNAI VAC", Slots: 5, CreatedOn: "t1"},
			},
			wantAll:    1,
			wantMain:   0,
			wantIsVAC:  true,
			wantIsMain: false,
		},
		{
			name: "lowercase vac marker still detected",
			details: []SlotDetail{
				{VisaLocation: "Mumbai vac", Slots: 2, CreatedOn: "t1"},
			},
			wantAll:    1,
			wantMain:   0,
			wantIsVAC:  true,
			wantIsMain: false,
		},
		{
			name: "unmonitored city stays out of main",
			details: []SlotDetail{
				{VisaLocation: "KOLKATA", Slots: 4, CreatedOn: "t1"},
			},
			wantAll:    1,
			wantMain:   0,
			wantIsVAC:  false,
			wantIsMain: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report := parser.Classify(tt.details, now)

			if len(report.All) != tt.wantAll {
				t.Fatalf("Expected %d records in all, got %d", tt.wantAll, len(report.All))
			}
			if len(report.Main) != tt.wantMain {
				t.Fatalf("Expected %d records in main, got %d", tt.wantMain, len(report.Main))
			}
			if tt.wantAll == 0 {
				return
			}

			rec := report.All[0]
			if rec.IsVAC != tt.wantIsVAC {
				t.Errorf("Expected is_vac=%v, got %v", tt.wantIsVAC, rec.IsVAC)
			}
			if rec.IsMain != tt.wantIsMain {
				t.Errorf("Expected is_main=%v, got %v", tt.wantIsMain, rec.IsMain)
			}
		})
	}
}

func TestClassifyNormalizesLocationNames(t *testing.T) {
	parser := NewParser([]string{"Chennai", "New Delhi"})
	now := time.Now()

	report := parser.Classify([]SlotDetail{
		{VisaLocation: "CHENNAI", Slots: 3, CreatedOn: "t1"},
		{VisaLocation: "DELHI", Slots: 1, CreatedOn: "t1"},
		{VisaLocation: "NEW DELHI VAC", Slots: 2, CreatedOn: "t1"},
	}, now)

	if len(report.All) != 3 {
		t.Fatalf("Expected 3 records, got %d", len(report.All))
	}
	if report.All[0].Location != "Chennai" {
		t.Errorf("Expected canonical Chennai, got %s", report.All[0].Location)
	}
	if report.All[1].Location != "New Delhi" {
		t.Errorf("Expected DELHI to canonicalize to New Delhi, got %s", report.All[1].Location)
	}
	if report.All[2].Location != "New Delhi" || !report.All[2].IsVAC {
		t.Errorf("Expected New Delhi VAC record, got %+v", report.All[2])
	}
	if len(report.Main) != 2 {
		t.Errorf("Expected 2 main records, got %d", len(report.Main))
	}
}

func TestClassifyDropsZeroAndNegativeCounts(t *testing.T) {
	parser := NewParser([]string{"CHENNAI"})

	report := parser.Classify([]SlotDetail{
		{VisaLocation: "CHENNAI", Slots: 0, CreatedOn: "t1"},
		{VisaLocation: "CHENNAI VAC", Slots: -2, CreatedOn: "t1"},
	}, time.Now())

	if len(report.All) != 0 {
		t.Errorf("Zero-count records must be invisible to all, got %d", len(report.All))
	}
	if len(report.Main) != 0 {
		t.Errorf("Zero-count records must be invisible to main, got %d", len(report.Main))
	}
	if report.HasMainSlots() {
		t.Error("Expected no main slots")
	}
}

func TestClassifyDeduplicatesBySiteAndDay(t *testing.T) {
	parser := NewParser([]string{"CHENNAI"})
	now := time.Now()

	report := parser.Classify([]SlotDetail{
		{VisaLocation: "CHENNAI", Slots: 3, CreatedOn: "14/06/2024 09:00:00"},
		{VisaLocation: "CHENNAI", Slots: 7, CreatedOn: "14/06/2024 11:30:00"},
		{VisaLocation: "CHENNAI VAC", Slots: 2, CreatedOn: "14/06/2024 09:00:00"},
		{VisaLocation: "CHENNAI", Slots: 5, CreatedOn: "15/06/2024 08:00:00"},
	}, now)

	// Same site, same day: first row wins. The VAC variant and the
	// next-day row are distinct.
	if len(report.All) != 3 {
		t.Fatalf("Expected 3 records after dedup, got %d", len(report.All))
	}
	if report.All[0].Slots != 3 {
		t.Errorf("Expected first occurrence to win, got %d slots", report.All[0].Slots)
	}
	if len(report.Main) != 2 {
		t.Errorf("Expected 2 main records, got %d", len(report.Main))
	}
}

func TestClassifyMaxAgeFilter(t *testing.T) {
	parser := NewParser([]string{"CHENNAI"})
	parser.MaxAge = 30 * time.Minute

	checkedAt := time.Date(2024, 6, 14, 12, 0, 0, 0, time.UTC)

	report := parser.Classify([]SlotDetail{
		{VisaLocation: "CHENNAI", Slots: 3, CreatedOn: "14/06/2024 11:45:00"},
		{VisaLocation: "HYDERABAD", Slots: 9, CreatedOn: "14/06/2024 08:00:00"},
		{VisaLocation: "MUMBAI", Slots: 1, CreatedOn: "not-a-time"},
	}, checkedAt)

	// Fresh row passes, stale row is dropped, unparseable passes.
	if len(report.All) != 2 {
		t.Fatalf("Expected 2 records, got %d: %+v", len(report.All), report.All)
	}
	for _, rec := range report.All {
		if rec.Location == "Hyderabad" {
			t.Error("Stale record should have been dropped")
		}
	}
}

func TestReportSummary(t *testing.T) {
	parser := NewParser([]string{"CHENNAI", "HYDERABAD"})

	report := parser.Classify([]SlotDetail{
		{VisaLocation: "CHENNAI", Slots: 3, CreatedOn: "t1"},
		{VisaLocation: "CHENNAI VAC", Slots: 10, CreatedOn: "t1"},
		{VisaLocation: "HYDERABAD VAC", Slots: 4, CreatedOn: "t1"},
	}, time.Now())

	summary := report.Summary()
	if len(summary) != 2 {
		t.Fatalf("Expected 2 summary groups, got %d", len(summary))
	}

	chennai := summary["Chennai"]
	if chennai.Main != 3 || chennai.VAC != 10 {
		t.Errorf("Expected Chennai Main=3 VAC=10, got %+v", chennai)
	}

	hyderabad := summary["Hyderabad"]
	if hyderabad.Main != 0 || hyderabad.VAC != 4 {
		t.Errorf("Expected Hyderabad Main=0 VAC=4, got %+v", hyderabad)
	}

	if report.TotalMainSlots() != 3 {
		t.Errorf("Expected 3 total main slots, got %d", report.TotalMainSlots())
	}
}

func TestEarliestMain(t *testing.T) {
	parser := NewParser([]string{"CHENNAI", "HYDERABAD", "MUMBAI"})

	report := parser.Classify([]SlotDetail{
		{VisaLocation: "CHENNAI", Slots: 3, CreatedOn: "14/06/2024 09:00:00"},
		{VisaLocation: "HYDERABAD", Slots: 1, CreatedOn: "13/06/2024 17:00:00"},
		{VisaLocation: "MUMBAI", Slots: 2, CreatedOn: "junk"},
	}, time.Now())

	earliest, ok := report.EarliestMain()
	if !ok {
		t.Fatal("Expected an earliest record")
	}
	if earliest.Location != "Hyderabad" {
		t.Errorf("Expected Hyderabad as earliest, got %s", earliest.Location)
	}

	empty := Report{}
	if _, ok := empty.EarliestMain(); ok {
		t.Error("Empty report should have no earliest record")
	}
}

func TestMonitoredMatchesAnySpelling(t *testing.T) {
	parser := NewParser([]string{"chennai", "New Delhi"})

	if !parser.Monitored("CHENNAI") {
		t.Error("Expected CHENNAI to be monitored")
	}
	if !parser.Monitored("DELHI") {
		t.Error("Expected DELHI alias to be monitored")
	}
	if parser.Monitored("KOLKATA") {
		t.Error("Did not expect KOLKATA to be monitored")
	}
}

package history

import (
	"context"
	"os"
	"testing"
	"time"

	"visawatch/pkg/config"
	"visawatch/pkg/logger"
	"visawatch/pkg/slots"
)

func TestMain(m *testing.M) {
	logger.InitLogger(true, "")
	os.Exit(m.Run())
}

func TestRowsFromReport(t *testing.T) {
	checkedAt := time.Date(2025, 6, 13, 10, 30, 0, 0, time.UTC)
	report := slots.Report{
		CheckedAt: checkedAt,
		All: []slots.SlotRecord{
			{Location: "Chennai", Slots: 5, ReportedAt: "13/06/2025, 10:29:55", IsVAC: false, IsMain: true},
			{Location: "Chennai", Slots: 12, ReportedAt: "13/06/2025, 10:29:55", IsVAC: true},
			{Location: "Mumbai", Slots: 2, ReportedAt: "13/06/2025, 10:28:40", IsVAC: false, IsMain: true},
		},
	}

	rows := rowsFromReport(report)
	if len(rows) != 3 {
		t.Fatalf("Expected 3 rows, got %d", len(rows))
	}

	if rows[0].CheckID == "" {
		t.Error("Expected a generated check id, got empty")
	}
	for i, row := range rows {
		if row.CheckID != rows[0].CheckID {
			t.Errorf("Expected row %d to share check id %s, got %s", i, rows[0].CheckID, row.CheckID)
		}
		if !row.CheckedAt.Equal(checkedAt) {
			t.Errorf("Expected row %d checked_at %v, got %v", i, checkedAt, row.CheckedAt)
		}
	}

	if rows[1].Location != "Chennai" || !rows[1].IsVAC {
		t.Errorf("Expected Chennai VAC row, got %s (vac=%v)", rows[1].Location, rows[1].IsVAC)
	}
	if rows[2].Slots != 2 {
		t.Errorf("Expected Mumbai slots 2, got %d", rows[2].Slots)
	}
}

func TestRowsFromEmptyReport(t *testing.T) {
	rows := rowsFromReport(slots.Report{CheckedAt: time.Now()})
	if rows != nil {
		t.Errorf("Expected no rows for empty report, got %d", len(rows))
	}
}

func TestBoolToUint8(t *testing.T) {
	if boolToUint8(true) != 1 {
		t.Error("Expected true to map to 1")
	}
	if boolToUint8(false) != 0 {
		t.Error("Expected false to map to 0")
	}
}

func testStoreConfig() *config.ClickHouseConfig {
	return &config.ClickHouseConfig{
		Enabled:  true,
		Hosts:    []string{"localhost"},
		Port:     9000,
		Database: "default",
		Username: "default",
		Password: "",
		Protocol: "native",
	}
}

func TestStoreRoundTrip(t *testing.T) {
	store, err := Open(testStoreConfig())
	if err != nil {
		t.Skipf("ClickHouse not available: %v", err)
	}
	defer store.Close()

	ctx := context.Background()
	if err := store.EnsureSchema(ctx); err != nil {
		t.Fatalf("Failed to ensure schema: %v", err)
	}

	report := slots.Report{
		CheckedAt: time.Now().UTC().Truncate(time.Second),
		All: []slots.SlotRecord{
			{Location: "Hyderabad", Slots: 4, ReportedAt: "13/06/2025, 09:00:00", IsMain: true},
		},
	}

	if err := store.RecordCheck(ctx, report); err != nil {
		t.Fatalf("Failed to record check: %v", err)
	}

	rows, err := store.FetchSince(ctx, report.CheckedAt.Add(-time.Minute))
	if err != nil {
		t.Fatalf("Failed to fetch rows: %v", err)
	}
	if len(rows) == 0 {
		t.Fatal("Expected at least one row after recording")
	}

	found := false
	for _, row := range rows {
		if row.Location == "Hyderabad" && row.Slots == 4 && !row.IsVAC {
			found = true
			break
		}
	}
	if !found {
		t.Error("Expected the recorded Hyderabad row in the fetch result")
	}
}

func TestStoreEmptyReportWritesNothing(t *testing.T) {
	store, err := Open(testStoreConfig())
	if err != nil {
		t.Skipf("ClickHouse not available: %v", err)
	}
	defer store.Close()

	ctx := context.Background()
	if err := store.EnsureSchema(ctx); err != nil {
		t.Fatalf("Failed to ensure schema: %v", err)
	}

	before, err := store.CheckCount(ctx)
	if err != nil {
		t.Fatalf("Failed to count checks: %v", err)
	}

	if err := store.RecordCheck(ctx, slots.Report{CheckedAt: time.Now()}); err != nil {
		t.Fatalf("Expected empty report to be a no-op, got %v", err)
	}

	after, err := store.CheckCount(ctx)
	if err != nil {
		t.Fatalf("Failed to count checks: %v", err)
	}
	if after != before {
		t.Errorf("Expected check count unchanged at %d, got %d", before, after)
	}
}

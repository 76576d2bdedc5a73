package history

import (
	"context"
	"fmt"
	"time"

	"visawatch/pkg/config"
	"visawatch/pkg/logger"
	"visawatch/pkg/slots"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
	"github.com/google/uuid"

	"go.uber.org/zap"
)

const tableName = "slot_checks"

// One row per open-slot location per check cycle; rows from the same
// cycle share a check_id.
const tableSchema = `(
	check_id    String,
	checked_at  DateTime,
	location    String,
	is_vac      UInt8,
	slots       UInt32,
	reported_at String
) ENGINE = MergeTree()
PARTITION BY toYYYYMM(checked_at)
ORDER BY (location, checked_at)`

// CheckRow is one persisted availability observation.
type CheckRow struct {
	CheckID    string    `json:"check_id"`
	CheckedAt  time.Time `json:"checked_at"`
	Location   string    `json:"location"`
	IsVAC      bool      `json:"is_vac"`
	Slots      int       `json:"slots"`
	ReportedAt string    `json:"reported_at"`
}

// Store is the optional ClickHouse check-history sink. The monitor loop
// never depends on it; a missing or failing store only costs history.
type Store struct {
	conn   driver.Conn
	config *config.ClickHouseConfig
}

// Open connects to ClickHouse and verifies the connection with a ping.
func Open(cfg *config.ClickHouseConfig) (*Store, error) {
	opts := &clickhouse.Options{
		Addr: cfg.GetAddresses(),
		Auth: clickhouse.Auth{
			Database: cfg.Database,
			Username: cfg.Username,
			Password: cfg.Password,
		},
		Debug:    cfg.Debug,
		Protocol: cfg.GetProtocol(),
		Settings: clickhouse.Settings{
			"max_execution_time": 60,
		},
		DialTimeout:      30 * time.Second,
		MaxOpenConns:     10,
		MaxIdleConns:     5,
		ConnMaxLifetime:  time.Hour,
		ConnOpenStrategy: clickhouse.ConnOpenInOrder,
	}

	// HTTP protocol does not support LZ4 compression.
	if cfg.GetProtocol() == clickhouse.Native {
		opts.Compression = &clickhouse.Compression{
			Method: clickhouse.CompressionLZ4,
		}
	}

	conn, err := clickhouse.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConnectionFailed, err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := conn.Ping(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("%w: ping: %v", ErrConnectionFailed, err)
	}

	logger.Info("Connected to ClickHouse",
		zap.Strings("addresses", cfg.GetAddresses()),
		zap.String("database", cfg.Database))

	return &Store{conn: conn, config: cfg}, nil
}

// EnsureSchema creates the slot_checks table when missing.
func (s *Store) EnsureSchema(ctx context.Context) error {
	if s.conn == nil {
		return ErrNotConnected
	}

	query := fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s %s", tableName, tableSchema)
	if err := s.conn.Exec(ctx, query); err != nil {
		return fmt.Errorf("create table %s: %w", tableName, err)
	}
	return nil
}

// Ping checks the connection.
func (s *Store) Ping(ctx context.Context) error {
	if s.conn == nil {
		return ErrNotConnected
	}
	if err := s.conn.Ping(ctx); err != nil {
		return fmt.Errorf("%w: %v", ErrConnectionFailed, err)
	}
	return nil
}

// Close releases the connection.
func (s *Store) Close() error {
	if s.conn == nil {
		return nil
	}
	return s.conn.Close()
}

// RecordCheck persists the report, one row per open-slot location. An
// all-quiet cycle writes nothing.
func (s *Store) RecordCheck(ctx context.Context, report slots.Report) error {
	if s.conn == nil {
		return ErrNotConnected
	}

	rows := rowsFromReport(report)
	if len(rows) == 0 {
		return nil
	}

	query := fmt.Sprintf(
		"INSERT INTO %s (check_id, checked_at, location, is_vac, slots, reported_at)",
		tableName)
	batch, err := s.conn.PrepareBatch(ctx, query)
	if err != nil {
		return fmt.Errorf("prepare batch: %w", err)
	}

	for _, row := range rows {
		err := batch.Append(
			row.CheckID,
			row.CheckedAt,
			row.Location,
			boolToUint8(row.IsVAC),
			uint32(row.Slots),
			row.ReportedAt,
		)
		if err != nil {
			return fmt.Errorf("append row for %s: %w", row.Location, err)
		}
	}

	if err := batch.Send(); err != nil {
		return fmt.Errorf("send batch: %w", err)
	}

	logger.Debug("Recorded check history",
		zap.String("check_id", rows[0].CheckID),
		zap.Int("rows", len(rows)))
	return nil
}

// rowsFromReport flattens a report into rows sharing one check id.
func rowsFromReport(report slots.Report) []CheckRow {
	if len(report.All) == 0 {
		return nil
	}

	checkID := uuid.New().String()
	rows := make([]CheckRow, 0, len(report.All))
	for _, rec := range report.All {
		rows = append(rows, CheckRow{
			CheckID:    checkID,
			CheckedAt:  report.CheckedAt,
			Location:   rec.Location,
			IsVAC:      rec.IsVAC,
			Slots:      rec.Slots,
			ReportedAt: rec.ReportedAt,
		})
	}
	return rows
}

func boolToUint8(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}

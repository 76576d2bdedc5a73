package history

import (
	"context"
	"fmt"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
)

// FetchSince returns every row recorded at or after the given time,
// oldest first. The availability analyzer aggregates these in memory.
func (s *Store) FetchSince(ctx context.Context, since time.Time) ([]CheckRow, error) {
	if s.conn == nil {
		return nil, ErrNotConnected
	}

	query := fmt.Sprintf(`
		SELECT check_id, checked_at, location, is_vac, slots, reported_at
		FROM %s
		WHERE checked_at >= ?
		ORDER BY checked_at ASC`, tableName)

	rows, err := s.conn.Query(ctx, query, since)
	if err != nil {
		return nil, fmt.Errorf("query since %s: %w", since.Format(time.RFC3339), err)
	}
	defer rows.Close()

	return scanRows(rows)
}

// RecentChecks returns the newest rows, newest first.
func (s *Store) RecentChecks(ctx context.Context, limit int) ([]CheckRow, error) {
	if s.conn == nil {
		return nil, ErrNotConnected
	}
	if limit <= 0 {
		limit = 100
	}

	query := fmt.Sprintf(`
		SELECT check_id, checked_at, location, is_vac, slots, reported_at
		FROM %s
		ORDER BY checked_at DESC
		LIMIT %d`, tableName, limit)

	rows, err := s.conn.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query recent checks: %w", err)
	}
	defer rows.Close()

	return scanRows(rows)
}

// CheckCount returns the number of distinct recorded cycles.
func (s *Store) CheckCount(ctx context.Context) (uint64, error) {
	if s.conn == nil {
		return 0, ErrNotConnected
	}

	query := fmt.Sprintf("SELECT uniqExact(check_id) FROM %s", tableName)
	row := s.conn.QueryRow(ctx, query)

	var count uint64
	if err := row.Scan(&count); err != nil {
		return 0, fmt.Errorf("count checks: %w", err)
	}
	return count, nil
}

func scanRows(rows driver.Rows) ([]CheckRow, error) {
	var result []CheckRow
	for rows.Next() {
		var (
			row      CheckRow
			isVAC    uint8
			slotsVal uint32
		)
		err := rows.Scan(
			&row.CheckID,
			&row.CheckedAt,
			&row.Location,
			&isVAC,
			&slotsVal,
			&row.ReportedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan check row: %w", err)
		}
		row.IsVAC = isVAC == 1
		row.Slots = int(slotsVal)
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate check rows: %w", err)
	}
	return result, nil
}

package history

import "errors"

var (
	// ErrConnectionFailed indicates the ClickHouse connection could not
	// be established or was lost.
	ErrConnectionFailed = errors.New("clickhouse connection failed")

	// ErrNotConnected indicates an operation on a closed or never-opened
	// store.
	ErrNotConnected = errors.New("history store not connected")
)

package clickhouse

import (
	"context"
	"time"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	Conn interface {
		Query(ctx context.Context, query string, args ...any) (Rows, error)
		Close() error
	}
	Rows interface {
		Next() bool
		Scan(dest ...any) error
		Err() error
		Close() error
	}
	Metrics interface {
		Observe(operation string, err error, started time.Time)
		ObserveRows(operation string, rows int)
	}
)

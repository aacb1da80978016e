// Package clickhouse reads previous outputs from a blockinsight7000 ClickHouse.
package clickhouse

import (
	"context"
	"errors"
	"fmt"

	"github.com/ClickHouse/clickhouse-go/v2"
)

const (
	DefaultCoin    = "XEC"
	DefaultNetwork = "mainnet"
)

type Repository struct {
	conn    Conn
	metrics Metrics
	coin    string
	network string
}

// driverConn narrows clickhouse.Conn to Conn.
type driverConn struct {
	clickhouse.Conn
}

func (c driverConn) Query(ctx context.Context, query string, args ...any) (Rows, error) {
	rows, err := c.Conn.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// NewRepository opens a connection to dsn. Rows are filtered by coin and network.
func NewRepository(dsn, coin, network string, metrics Metrics) (*Repository, error) {
	if dsn == "" {
		return nil, errors.New("clickhouse dsn is required")
	}
	if metrics == nil {
		return nil, errors.New("clickhouse metrics is nil")
	}

	options, err := clickhouse.ParseDSN(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse clickhouse dsn: %w", err)
	}

	conn, err := clickhouse.Open(options)
	if err != nil {
		return nil, fmt.Errorf("open clickhouse connection: %w", err)
	}

	return newRepository(driverConn{conn}, coin, network, metrics), nil
}

func newRepository(conn Conn, coin, network string, metrics Metrics) *Repository {
	if coin == "" {
		coin = DefaultCoin
	}
	if network == "" {
		network = DefaultNetwork
	}
	return &Repository{conn: conn, metrics: metrics, coin: coin, network: network}
}

// Close releases the underlying connection.
func (r *Repository) Close() error {
	return r.conn.Close()
}

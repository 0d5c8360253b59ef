// Package ch provides a clickhouse client over the native protocol
package ch

import (
	"context"
	"fmt"
	"strings"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
)

// Config configures the clickhouse client
type Config struct {
	URL        string
	ClientName string
	ClientTag  string
}

// Rows is the minimal result set iteration for ch
type Rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close() error
}

// CH is a thin wrapper over the clickhouse-go native connection
type CH struct {
	conn driver.Conn
}

// Open parses the DSN and opens a native connection
func Open(ctx context.Context, cfg Config) (*CH, error) {
	opts, err := clickhouse.ParseDSN(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("ch: parse dsn: %w", err)
	}
	opts.ClientInfo = BuildClientInfo(cfg.ClientName, cfg.ClientTag)

	conn, err := clickhouse.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("ch: open: %w", err)
	}
	if err := conn.Ping(ctx); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("ch: ping: %w", err)
	}
	return &CH{conn: conn}, nil
}

// Insert appends rows to table via a prepared batch
func (c *CH) Insert(ctx context.Context, table string, cols []string, rowset [][]any) error {
	if len(rowset) == 0 {
		return nil
	}
	stmt := fmt.Sprintf("INSERT INTO %s (%s)", table, strings.Join(cols, ", "))
	batch, err := c.conn.PrepareBatch(ctx, stmt)
	if err != nil {
		return err
	}
	for _, r := range rowset {
		if err := batch.Append(r...); err != nil {
			return err
		}
	}
	return batch.Send()
}

// Query runs a query and returns ch.Rows
func (c *CH) Query(ctx context.Context, sql string, args ...any) (Rows, error) {
	return c.conn.Query(ctx, sql, args...)
}

// Ping verifies connectivity
func (c *CH) Ping(ctx context.Context) error { return c.conn.Ping(ctx) }

// Close closes the connection
func (c *CH) Close() error { return c.conn.Close() }

package xclickhouse

import (
	"context"
	"errors"

	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
	"github.com/ClickHouse/clickhouse-go/v2/lib/proto"
)

// mockConn 实现 driver.Conn 接口
type mockConn struct {
	queryFunc func(ctx context.Context, query string, args ...any) (driver.Rows, error)
	closed    bool
}

func (m *mockConn) Contributors() []string {
	return []string{"test"}
}

func (m *mockConn) ServerVersion() (*proto.ServerHandshake, error) {
	return &proto.ServerHandshake{}, nil
}

func (m *mockConn) Select(_ context.Context, _ any, _ string, _ ...any) error {
	return nil
}

func (m *mockConn) Query(ctx context.Context, query string, args ...any) (driver.Rows, error) {
	if m.queryFunc != nil {
		return m.queryFunc(ctx, query, args...)
	}
	return nil, errors.New("query not implemented")
}

func (m *mockConn) QueryRow(_ context.Context, _ string, _ ...any) driver.Row {
	return nil
}

func (m *mockConn) PrepareBatch(_ context.Context, _ string, _ ...driver.PrepareBatchOption) (driver.Batch, error) {
	return nil, errors.New("prepareBatch not implemented")
}

func (m *mockConn) Exec(_ context.Context, _ string, _ ...any) error {
	return nil
}

func (m *mockConn) AsyncInsert(_ context.Context, _ string, _ bool, _ ...any) error {
	return nil
}

func (m *mockConn) Ping(_ context.Context) error {
	return nil
}

func (m *mockConn) Stats() driver.Stats {
	return driver.Stats{}
}

func (m *mockConn) Close() error {
	m.closed = true
	return nil
}

// mockRows 实现 driver.Rows 接口，按预置的统计行顺序迭代。
type mockRows struct {
	stats   []CorridorStats
	idx     int
	scanErr error
	iterErr error
	closed  bool
}

func (m *mockRows) Next() bool {
	if m.idx >= len(m.stats) {
		return false
	}
	m.idx++
	return true
}

func (m *mockRows) Scan(_ ...any) error {
	return errors.New("scan not implemented")
}

func (m *mockRows) ScanStruct(dest any) error {
	if m.scanErr != nil {
		return m.scanErr
	}
	target, ok := dest.(*CorridorStats)
	if !ok {
		return errors.New("unexpected scan target")
	}
	*target = m.stats[m.idx-1]
	return nil
}

func (m *mockRows) ColumnTypes() []driver.ColumnType {
	return nil
}

func (m *mockRows) Totals(_ ...any) error {
	return nil
}

func (m *mockRows) Columns() []string {
	return []string{"corridor_id", "payment_count", "total_volume", "avg_latency_ms"}
}

func (m *mockRows) Close() error {
	m.closed = true
	return nil
}

func (m *mockRows) Err() error {
	return m.iterErr
}

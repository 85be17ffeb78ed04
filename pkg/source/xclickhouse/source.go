package xclickhouse

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"regexp"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"

	"github.com/omeyang/paycache/pkg/cache/xevent"
	"github.com/omeyang/paycache/pkg/cache/xwarm"
)

// 默认配置
const (
	// DefaultTable 是走廊统计聚合表的默认表名。
	DefaultTable = "corridor_stats"

	// DefaultKeyTTL 是预热记录的默认缓存 TTL。
	DefaultKeyTTL = 10 * time.Minute

	// statsSuffix 是走廊统计缓存键的固定后缀。
	statsSuffix = "stats"
)

// tableNamePattern 用于校验表名的合法性，支持 database.table 形式。
var tableNamePattern = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*(\.[a-zA-Z_][a-zA-Z0-9_]*)?$`)

// CorridorStats 是单条走廊的聚合统计，对应分析表中的一行。
type CorridorStats struct {
	CorridorID   string  `ch:"corridor_id" json:"corridor_id"`
	PaymentCount uint64  `ch:"payment_count" json:"payment_count"`
	TotalVolume  float64 `ch:"total_volume" json:"total_volume"`
	AvgLatencyMS float64 `ch:"avg_latency_ms" json:"avg_latency_ms"`
}

// CorridorSource 从 ClickHouse 取热门走廊统计，实现预热数据源接口。
type CorridorSource struct {
	conn   driver.Conn
	table  string
	keyTTL time.Duration
	logger *slog.Logger
}

var _ xwarm.Source[json.RawMessage] = (*CorridorSource)(nil)

// Option 配置 CorridorSource。
type Option func(*CorridorSource)

// WithTable 设置聚合表名。空表名保留默认值。
func WithTable(table string) Option {
	return func(s *CorridorSource) {
		if table != "" {
			s.table = table
		}
	}
}

// WithKeyTTL 设置预热记录的缓存 TTL。非正值保留默认值。
func WithKeyTTL(ttl time.Duration) Option {
	return func(s *CorridorSource) {
		if ttl > 0 {
			s.keyTTL = ttl
		}
	}
}

// WithLogger 设置日志记录器。nil 保留默认值。
func WithLogger(logger *slog.Logger) Option {
	return func(s *CorridorSource) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewCorridorSource 创建走廊统计数据源。
// 表名在此处一次性校验，防止后续查询拼接非法标识符。
func NewCorridorSource(conn driver.Conn, opts ...Option) (*CorridorSource, error) {
	if conn == nil {
		return nil, ErrNilConn
	}
	s := &CorridorSource{
		conn:   conn,
		table:  DefaultTable,
		keyTTL: DefaultKeyTTL,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if !tableNamePattern.MatchString(s.table) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTable, s.table)
	}
	return s, nil
}

// Name 返回数据源名称。
func (s *CorridorSource) Name() string {
	return "clickhouse/corridor-stats"
}

// FetchTop 按支付笔数倒序取前 limit 条走廊统计。
// 表名已通过构造期校验，limit 以参数绑定方式传入。
func (s *CorridorSource) FetchTop(ctx context.Context, limit int) ([]xwarm.Record[json.RawMessage], error) {
	query := fmt.Sprintf(
		"SELECT corridor_id, payment_count, total_volume, avg_latency_ms FROM %s ORDER BY payment_count DESC LIMIT ?",
		s.table,
	)

	rows, err := s.conn.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("xclickhouse: query corridor stats: %w", err)
	}
	defer func() { _ = rows.Close() }()

	records := make([]xwarm.Record[json.RawMessage], 0, limit)
	for rows.Next() {
		var stats CorridorStats
		if err := rows.ScanStruct(&stats); err != nil {
			return nil, fmt.Errorf("xclickhouse: scan corridor stats: %w", err)
		}
		payload, err := json.Marshal(stats)
		if err != nil {
			return nil, fmt.Errorf("xclickhouse: marshal corridor stats: %w", err)
		}
		records = append(records, xwarm.Record[json.RawMessage]{
			Key:   xevent.CorridorKeyPrefix(stats.CorridorID) + statsSuffix,
			Value: payload,
			TTL:   s.keyTTL,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("xclickhouse: iterate corridor stats: %w", err)
	}

	s.logger.Debug("corridor stats fetched",
		slog.String("table", s.table),
		slog.Int("count", len(records)))
	return records, nil
}

package xmongo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/omeyang/paycache/pkg/cache/xevent"
	"github.com/omeyang/paycache/pkg/cache/xwarm"
)

// 默认配置
const (
	// DefaultKeyTTL 是预热记录的默认缓存 TTL。
	DefaultKeyTTL = 10 * time.Minute

	// healthSuffix 是锚点健康度缓存键的固定后缀。
	healthSuffix = "health"
)

// AnchorHealth 是单个锚点的健康档案，对应集合中的一份文档。
type AnchorHealth struct {
	AnchorID        string  `bson:"anchor_id" json:"anchor_id"`
	Status          string  `bson:"status" json:"status"`
	HealthScore     float64 `bson:"health_score" json:"health_score"`
	SuccessRate     float64 `bson:"success_rate" json:"success_rate"`
	AvgSettlementMS float64 `bson:"avg_settlement_ms" json:"avg_settlement_ms"`
}

// finder 定义取数依赖的集合操作子集。
// *mongo.Collection 实现此接口。
type finder interface {
	Find(ctx context.Context, filter any, opts ...options.Lister[options.FindOptions]) (*mongo.Cursor, error)
}

// AnchorSource 从 MongoDB 取健康锚点档案，实现预热数据源接口。
type AnchorSource struct {
	coll   finder
	keyTTL time.Duration
	logger *slog.Logger
}

var _ xwarm.Source[json.RawMessage] = (*AnchorSource)(nil)

// Option 配置 AnchorSource。
type Option func(*AnchorSource)

// WithKeyTTL 设置预热记录的缓存 TTL。非正值保留默认值。
func WithKeyTTL(ttl time.Duration) Option {
	return func(s *AnchorSource) {
		if ttl > 0 {
			s.keyTTL = ttl
		}
	}
}

// WithLogger 设置日志记录器。nil 保留默认值。
func WithLogger(logger *slog.Logger) Option {
	return func(s *AnchorSource) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewAnchorSource 创建锚点健康度数据源。
func NewAnchorSource(coll *mongo.Collection, opts ...Option) (*AnchorSource, error) {
	if coll == nil {
		return nil, ErrNilCollection
	}
	return newAnchorSource(coll, opts...), nil
}

// newAnchorSource 供测试注入集合实现。
func newAnchorSource(coll finder, opts ...Option) *AnchorSource {
	s := &AnchorSource{
		coll:   coll,
		keyTTL: DefaultKeyTTL,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Name 返回数据源名称。
func (s *AnchorSource) Name() string {
	return "mongo/anchor-health"
}

// FetchTop 按健康评分倒序取前 limit 个锚点档案。
func (s *AnchorSource) FetchTop(ctx context.Context, limit int) (_ []xwarm.Record[json.RawMessage], err error) {
	findOpts := options.Find().
		SetSort(bson.D{{Key: "health_score", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := s.coll.Find(ctx, bson.D{}, findOpts)
	if err != nil {
		return nil, fmt.Errorf("xmongo: find anchor health: %w", err)
	}
	defer func() {
		if closeErr := cursor.Close(ctx); closeErr != nil {
			err = errors.Join(err, fmt.Errorf("xmongo: close cursor: %w", closeErr))
		}
	}()

	var profiles []AnchorHealth
	if err := cursor.All(ctx, &profiles); err != nil {
		return nil, fmt.Errorf("xmongo: decode anchor health: %w", err)
	}

	records := make([]xwarm.Record[json.RawMessage], 0, len(profiles))
	for _, p := range profiles {
		payload, err := json.Marshal(p)
		if err != nil {
			return nil, fmt.Errorf("xmongo: marshal anchor health: %w", err)
		}
		records = append(records, xwarm.Record[json.RawMessage]{
			Key:   xevent.AnchorKeyPrefix(p.AnchorID) + healthSuffix,
			Value: payload,
			TTL:   s.keyTTL,
		})
	}

	s.logger.Debug("anchor health fetched", slog.Int("count", len(records)))
	return records, nil
}

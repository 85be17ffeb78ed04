package xadmin

import (
	"log/slog"

	"github.com/omeyang/paycache/pkg/cache/xevent"
	"github.com/omeyang/paycache/pkg/cache/xstats"
)

// Store 定义控制面依赖的仓库能力，*xstore.Store[V] 满足该接口。
type Store interface {
	// Flush 清空全部条目。
	Flush()
	// Len 返回当前条目数。
	Len() int
}

// Publisher 定义事件投递能力，*xbus.Bus 满足该接口。
type Publisher interface {
	// Publish 向所有订阅者广播事件。
	Publish(ev xevent.Event)
}

// Controller 是管理控制面。
// 除 FlushAll 外的变更操作都经事件总线投递，由维护循环按发布顺序应用；
// 控制面本身无状态，可并发使用。
type Controller struct {
	store  Store
	bus    Publisher
	stats  *xstats.Recorder
	logger *slog.Logger
}

// Option 定义控制面的配置选项
type Option func(*Controller)

// WithLogger 设置日志记录器。nil 被忽略。
func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New 创建管理控制面。三个依赖都不可为 nil。
func New(store Store, bus Publisher, stats *xstats.Recorder, opts ...Option) (*Controller, error) {
	if store == nil {
		return nil, ErrNilStore
	}
	if bus == nil {
		return nil, ErrNilBus
	}
	if stats == nil {
		return nil, ErrNilStats
	}

	c := &Controller{
		store:  store,
		bus:    bus,
		stats:  stats,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Metrics 返回指标快照。
func (c *Controller) Metrics() xstats.Snapshot {
	return c.stats.Snapshot(c.store.Len())
}

// InvalidatePattern 按 glob 模式失效匹配条目。
// 模式在投递前校验，非法模式返回错误且不产生任何事件；
// 实际删除由维护循环异步执行。
func (c *Controller) InvalidatePattern(pattern string) error {
	if err := xevent.ValidatePattern(pattern); err != nil {
		return err
	}

	c.bus.Publish(xevent.AdminInvalidate{Pattern: pattern})
	c.logger.Info("admin invalidation published", slog.String("pattern", pattern))
	return nil
}

// FlushAll 立即清空全部条目。
// 绕过事件总线直接调用仓库，返回时清空已生效。
func (c *Controller) FlushAll() {
	c.store.Flush()
	c.logger.Info("admin flush completed")
}

// EvictToSize 强制 LRU 淘汰至目标大小。
// target 为负返回 ErrInvalidTarget；实际淘汰由维护循环异步执行。
func (c *Controller) EvictToSize(target int) error {
	if target < 0 {
		return ErrInvalidTarget
	}

	c.bus.Publish(xevent.MemoryPressure{TargetSize: target})
	c.logger.Info("admin eviction published", slog.Int("target_size", target))
	return nil
}

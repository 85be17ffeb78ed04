package xmaint

import (
	"context"
	"log/slog"
	"time"

	"github.com/omeyang/paycache/pkg/cache/xevent"
)

// Store 定义维护循环依赖的存储能力。
// *xstore.Store[V] 满足该接口；三个方法都不涉及值类型，
// 因此维护循环本身无需泛型参数。
type Store interface {
	// SweepExpired 删除 now 时刻已过期的条目，返回删除数量。
	SweepExpired(now time.Time) int
	// EvictToSize 按 LRU 淘汰至目标大小，返回淘汰数量。
	EvictToSize(target int) int
	// DeleteMatching 删除键满足谓词的条目，返回删除数量。
	DeleteMatching(pred xevent.Predicate) int
}

// Subscriber 定义事件订阅能力，*xbus.Bus 满足该接口。
type Subscriber interface {
	// Subscribe 返回事件通道与取消函数。
	Subscribe() (<-chan xevent.Event, func())
}

// Recorder 定义维护循环上报的指标子集。
type Recorder interface {
	// AddInvalidations 累加失效条目计数。
	AddInvalidations(n int)
}

// NoopRecorder 是空实现，未配置指标时使用。
type NoopRecorder struct{}

// AddInvalidations 空实现。
func (NoopRecorder) AddInvalidations(n int) {}

var _ Recorder = NoopRecorder{}

// DefaultInterval 是 TTL 清扫的默认间隔。
const DefaultInterval = 60 * time.Second

// Loop 是缓存维护循环。
// 所有存储变更都在 Handle 内同步完成，Run 退出时不存在未完成的变更。
type Loop struct {
	store    Store
	bus      Subscriber
	rules    *xevent.Rules
	rec      Recorder
	interval time.Duration
	logger   *slog.Logger
}

// New 创建维护循环。store 与 bus 不可为 nil。
func New(store Store, bus Subscriber, opts ...Option) (*Loop, error) {
	if store == nil {
		return nil, ErrNilStore
	}
	if bus == nil {
		return nil, ErrNilBus
	}

	l := &Loop{
		store:    store,
		bus:      bus,
		rules:    xevent.DefaultRules(),
		rec:      NoopRecorder{},
		interval: DefaultInterval,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l, nil
}

// Run 运行维护循环直至 ctx 取消或总线关闭。
// 取消检查发生在工作单元之间：一个事件处理完毕，或一轮清扫结束。
// ctx 取消时返回 ctx.Err()；总线关闭时返回 nil。
func (l *Loop) Run(ctx context.Context) error {
	events, cancel := l.bus.Subscribe()
	defer cancel()

	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	l.logger.Info("maintenance loop started",
		slog.Duration("sweep_interval", l.interval))

	for {
		select {
		case <-ctx.Done():
			l.logger.Info("maintenance loop stopped")
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				l.logger.Info("maintenance loop stopped: bus closed")
				return nil
			}
			l.Handle(ev)
		case <-ticker.C:
			l.Handle(xevent.TTLSweep{})
		}
	}
}

// Handle 同步处理单个失效事件。
// TtlSweep 与 MemoryPressure 是结构性事件，直接映射到存储操作；
// 其余事件经规则表解析为键谓词后执行批量删除。
// 未注册规则的事件记录日志后忽略，不作为错误。
func (l *Loop) Handle(ev xevent.Event) {
	switch e := ev.(type) {
	case nil:
		return
	case xevent.TTLSweep:
		removed := l.store.SweepExpired(time.Now())
		l.rec.AddInvalidations(removed)
		if removed > 0 {
			l.logger.Debug("ttl sweep completed", slog.Int("removed", removed))
		}
	case xevent.MemoryPressure:
		evicted := l.store.EvictToSize(e.TargetSize)
		if evicted > 0 {
			l.logger.Info("memory pressure eviction completed",
				slog.Int("target_size", e.TargetSize),
				slog.Int("evicted", evicted))
		}
	default:
		pred, ok := l.rules.Resolve(ev)
		if !ok {
			l.logger.Warn("no invalidation rule for event",
				slog.String("kind", ev.EventKind().String()))
			return
		}
		removed := l.store.DeleteMatching(pred)
		l.rec.AddInvalidations(removed)
		l.logger.Debug("invalidation applied",
			slog.String("kind", ev.EventKind().String()),
			slog.Int("removed", removed))
	}
}

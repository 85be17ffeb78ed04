package xengine

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/omeyang/paycache/pkg/cache/xadmin"
	"github.com/omeyang/paycache/pkg/cache/xbus"
	"github.com/omeyang/paycache/pkg/cache/xevent"
	"github.com/omeyang/paycache/pkg/cache/xmaint"
	"github.com/omeyang/paycache/pkg/cache/xstats"
	"github.com/omeyang/paycache/pkg/cache/xstore"
	"github.com/omeyang/paycache/pkg/cache/xwarm"
)

// DefaultLoadTimeout 是 GetOrLoad 回源的默认独立超时。
const DefaultLoadTimeout = 30 * time.Second

// Config 是引擎的构造配置。全部在构造时提供，核心不读环境变量。
type Config struct {
	// Capacity 仓库容量，0 表示不限。
	Capacity int

	// DefaultTTL 条目默认存活时长，0 表示永不过期。
	DefaultTTL time.Duration

	// SweepInterval TTL 清扫间隔，0 取默认 60 秒。
	SweepInterval time.Duration

	// BusBuffer 每个订阅者的事件缓冲大小，0 取默认值。
	BusBuffer int
}

// LoadFunc 定义 GetOrLoad 的回源函数。
type LoadFunc[V any] func(ctx context.Context) (V, error)

// Engine 是缓存引擎门面。
// 内部组件的所有权归引擎：总线随 Close 关闭，维护循环随 Run 结束。
type Engine[V any] struct {
	store *xstore.Store[V]
	bus   *xbus.Bus
	stats *xstats.Recorder
	maint *xmaint.Loop
	admin *xadmin.Controller

	// warmer 可选，未配置数据源时为 nil。
	warmer *xwarm.Loader[V]

	sf          singleflight.Group
	loadTimeout time.Duration
	logger      *slog.Logger
	closeOnce   sync.Once
}

// New 创建缓存引擎。配置校验失败时返回底层组件的哨兵错误
// （如 xstore.ErrInvalidCapacity）。
func New[V any](cfg Config, opts ...Option[V]) (*Engine[V], error) {
	o := defaultOptions[V]()
	for _, opt := range opts {
		if opt != nil {
			opt(o)
		}
	}

	stats := xstats.NewRecorder()

	store, err := xstore.New[V](xstore.Config{
		Capacity:   cfg.Capacity,
		DefaultTTL: cfg.DefaultTTL,
	},
		xstore.WithRecorder[V](stats),
		xstore.WithLogger[V](o.logger),
	)
	if err != nil {
		return nil, err
	}

	bus := xbus.New(xbus.WithBuffer(cfg.BusBuffer))

	maint, err := xmaint.New(store, bus,
		xmaint.WithInterval(cfg.SweepInterval),
		xmaint.WithRules(o.rules),
		xmaint.WithRecorder(stats),
		xmaint.WithLogger(o.logger),
	)
	if err != nil {
		bus.Close()
		return nil, err
	}

	admin, err := xadmin.New(store, bus, stats, xadmin.WithLogger(o.logger))
	if err != nil {
		bus.Close()
		return nil, err
	}

	e := &Engine[V]{
		store:       store,
		bus:         bus,
		stats:       stats,
		maint:       maint,
		admin:       admin,
		loadTimeout: o.loadTimeout,
		logger:      o.logger,
	}

	if len(o.sources) > 0 {
		warmOpts := append([]xwarm.Option[V]{
			xwarm.WithRecorder[V](stats),
			xwarm.WithLogger[V](o.logger),
		}, o.warmOpts...)

		warmer, err := xwarm.New(store, o.sources, warmOpts...)
		if err != nil {
			bus.Close()
			return nil, err
		}
		e.warmer = warmer
	}
	return e, nil
}

// Get 读取键值，命中推进 recency 并计数。
func (e *Engine[V]) Get(key string) (V, bool) {
	return e.store.Get(key)
}

// Set 以默认 TTL 写入条目。
func (e *Engine[V]) Set(key string, value V) {
	e.store.Set(key, value)
}

// SetTTL 以指定 TTL 写入条目，ttl <= 0 表示永不过期。
func (e *Engine[V]) SetTTL(key string, value V, ttl time.Duration) {
	e.store.SetTTL(key, value, ttl)
}

// Delete 删除单个条目，键不存在时为空操作。
func (e *Engine[V]) Delete(key string) {
	e.store.Delete(key)
}

// Len 返回当前条目数。
func (e *Engine[V]) Len() int {
	return e.store.Len()
}

// Publish 向维护循环投递失效事件，永不阻塞。
func (e *Engine[V]) Publish(ev xevent.Event) {
	e.bus.Publish(ev)
}

// Admin 返回管理控制面。
func (e *Engine[V]) Admin() *xadmin.Controller {
	return e.admin
}

// Metrics 返回指标快照。
func (e *Engine[V]) Metrics() xstats.Snapshot {
	return e.stats.Snapshot(e.store.Len())
}

// Stats 返回底层指标记录器，供 OTel 桥接等场景使用。
func (e *Engine[V]) Stats() *xstats.Recorder {
	return e.stats
}

// Warmer 返回预热加载器，供周期刷新等场景使用。
// 未配置数据源时返回 nil。
func (e *Engine[V]) Warmer() *xwarm.Loader[V] {
	return e.warmer
}

// GetOrLoad 以 Cache-Aside 模式读取：命中直接返回，未命中经
// singleflight 回源后以 ttl 写入（ttl <= 0 走默认 TTL 路径）。
// 同一 key 的并发请求只回源一次，TTL 取首个请求的配置。
//
// 回源在脱离调用方取消链、带独立超时的 context 中执行，
// 首个调用者取消不影响其他等待者；每个调用者独立响应自身 ctx。
func (e *Engine[V]) GetOrLoad(ctx context.Context, key string, ttl time.Duration, load LoadFunc[V]) (V, error) {
	var zero V
	if load == nil {
		return zero, ErrNilLoadFunc
	}

	if v, ok := e.store.Get(key); ok {
		return v, nil
	}

	sfCtx, cancel := detachTimeout(ctx, e.loadTimeout)
	defer cancel()

	ch := e.sf.DoChan(key, func() (any, error) {
		v, err := load(sfCtx)
		if err != nil {
			return nil, err
		}
		if ttl > 0 {
			e.store.SetTTL(key, v, ttl)
		} else {
			e.store.Set(key, v)
		}
		return v, nil
	})

	select {
	case <-ctx.Done():
		return zero, ctx.Err()
	case result := <-ch:
		if result.Err != nil {
			return zero, result.Err
		}
		v, ok := result.Val.(V)
		if !ok {
			return zero, ErrLoadType
		}
		return v, nil
	}
}

// Run 先预热再运行维护循环，直至 ctx 取消或引擎关闭。
// 预热失败降级为空缓存启动，唯一使 Run 提前返回的预热错误是 ctx 取消。
func (e *Engine[V]) Run(ctx context.Context) error {
	if e.warmer != nil {
		loaded, err := e.warmer.Warm(ctx)
		if err != nil {
			return err
		}
		e.logger.Info("cache warmed", slog.Int("records", loaded))
	}
	return e.maint.Run(ctx)
}

// Close 关闭引擎。幂等；关闭事件总线，使运行中的 Run 退出。
// 仓库中的条目保留，Close 后的读写仍可用（纯内存操作）。
func (e *Engine[V]) Close() {
	e.closeOnce.Do(func() {
		e.bus.Close()
		e.logger.Info("cache engine closed")
	})
}

// detachedCtx 脱离原始取消链但保留 Value 的 context。
type detachedCtx struct{ context.Context }

func (detachedCtx) Deadline() (time.Time, bool) { return time.Time{}, false }
func (detachedCtx) Done() <-chan struct{}       { return nil }
func (detachedCtx) Err() error                  { return nil }

// detachTimeout 构造脱离调用方取消链、带独立超时的 context。
// timeout <= 0 时仅脱离取消链，不设超时。
func detachTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	base := detachedCtx{Context: ctx}
	if timeout > 0 {
		return context.WithTimeout(base, timeout)
	}
	return context.WithCancel(base)
}

package xwarm

import (
	"context"
	"errors"
	"log/slog"
	"time"

	retry "github.com/avast/retry-go/v5"
	"github.com/sony/gobreaker/v2"
)

// Record 是一条待灌入缓存的预热记录。
// TTL <= 0 时走默认 TTL 写路径。
type Record[V any] struct {
	Key   string
	Value V
	TTL   time.Duration
}

// Source 定义权威数据源的预热取数能力。
type Source[V any] interface {
	// Name 返回数据源名称，用于日志与熔断器标识。
	Name() string
	// FetchTop 拉取按热度排序的前 limit 条记录。
	FetchTop(ctx context.Context, limit int) ([]Record[V], error)
}

// Setter 定义预热写入依赖的仓库能力，*xstore.Store[V] 满足该接口。
// 预热走标准写路径，条目获得完整的 TTL 与 recency 语义。
type Setter[V any] interface {
	Set(key string, value V)
	SetTTL(key string, value V, ttl time.Duration)
}

// Recorder 定义预热上报的指标子集。
type Recorder interface {
	// WarmUp 累加一次预热写入。
	WarmUp()
}

// NoopRecorder 是空实现，未配置指标时使用。
type NoopRecorder struct{}

// WarmUp 空实现。
func (NoopRecorder) WarmUp() {}

var _ Recorder = NoopRecorder{}

// 默认配置
const (
	// DefaultLimit 是每个数据源的默认取数上限。
	DefaultLimit = 100

	// DefaultAttempts 是单次取数的默认尝试次数（含首次）。
	DefaultAttempts = 3

	// DefaultRetryDelay 是重试的基础延迟。
	DefaultRetryDelay = 200 * time.Millisecond

	// DefaultBreakerTimeout 是熔断器从 Open 恢复到 HalfOpen 的超时。
	DefaultBreakerTimeout = 30 * time.Second

	// defaultBreakerFailures 是触发熔断的连续失败次数。
	defaultBreakerFailures = 5
)

// Loader 是缓存预热加载器。
// 每个数据源持有独立熔断器，取数失败经重试与熔断后降级为跳过，
// Warm 永不返回错误。
type Loader[V any] struct {
	store    Setter[V]
	sources  []Source[V]
	breakers []*gobreaker.CircuitBreaker[[]Record[V]]

	limit          int
	attempts       uint
	retryDelay     time.Duration
	breakerTimeout time.Duration
	rec            Recorder
	logger         *slog.Logger
}

// New 创建预热加载器。store 不可为 nil，sources 不可为空或含 nil。
func New[V any](store Setter[V], sources []Source[V], opts ...Option[V]) (*Loader[V], error) {
	if store == nil {
		return nil, ErrNilStore
	}
	if len(sources) == 0 {
		return nil, ErrNoSources
	}
	for _, src := range sources {
		if src == nil {
			return nil, ErrNilSource
		}
	}

	l := &Loader[V]{
		store:          store,
		sources:        sources,
		limit:          DefaultLimit,
		attempts:       DefaultAttempts,
		retryDelay:     DefaultRetryDelay,
		breakerTimeout: DefaultBreakerTimeout,
		rec:            NoopRecorder{},
		logger:         slog.Default(),
	}
	for _, opt := range opts {
		opt(l)
	}

	l.breakers = make([]*gobreaker.CircuitBreaker[[]Record[V]], len(sources))
	for i, src := range sources {
		l.breakers[i] = gobreaker.NewCircuitBreaker[[]Record[V]](gobreaker.Settings{
			Name:        "xwarm/" + src.Name(),
			MaxRequests: 1,
			Timeout:     l.breakerTimeout,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= defaultBreakerFailures
			},
		})
	}
	return l, nil
}

// Warm 依次预热所有数据源，返回灌入的记录总数。
// 单个源失败记录日志后跳过，不影响其余源；唯一向上传播的错误是
// ctx 取消，调用方据此区分"降级完成"与"被打断"。
func (l *Loader[V]) Warm(ctx context.Context) (int, error) {
	loaded := 0
	for i, src := range l.sources {
		if err := ctx.Err(); err != nil {
			return loaded, err
		}

		records, err := l.fetch(ctx, src, l.breakers[i])
		if err != nil {
			l.logger.Warn("warm source skipped",
				slog.String("source", src.Name()),
				slog.Any("error", err))
			continue
		}

		for _, r := range records {
			if r.TTL > 0 {
				l.store.SetTTL(r.Key, r.Value, r.TTL)
			} else {
				l.store.Set(r.Key, r.Value)
			}
			l.rec.WarmUp()
			loaded++
		}
		l.logger.Info("warm source loaded",
			slog.String("source", src.Name()),
			slog.Int("records", len(records)))
	}
	return loaded, nil
}

// fetch 在熔断器保护下执行带重试的取数。
// 熔断器 Open 状态的快速失败由 RetryIf 判为不可重试，避免空转。
func (l *Loader[V]) fetch(ctx context.Context, src Source[V], cb *gobreaker.CircuitBreaker[[]Record[V]]) ([]Record[V], error) {
	return retry.NewWithData[[]Record[V]](
		retry.Context(ctx),
		retry.Attempts(l.attempts),
		retry.Delay(l.retryDelay),
		retry.LastErrorOnly(true),
		retry.RetryIf(func(err error) bool {
			return !errors.Is(err, gobreaker.ErrOpenState) &&
				!errors.Is(err, gobreaker.ErrTooManyRequests)
		}),
	).Do(func() ([]Record[V], error) {
		return cb.Execute(func() ([]Record[V], error) {
			return src.FetchTop(ctx, l.limit)
		})
	})
}

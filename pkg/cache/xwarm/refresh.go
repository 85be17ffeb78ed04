package xwarm

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/robfig/cron/v3"
)

// DefaultSchedule 是周期性重新预热的默认 cron 表达式。
const DefaultSchedule = "@every 10m"

// Refresher 按 cron 计划周期性重新预热，保持头部记录常驻。
// 重新预热复用加载器的降级语义，单轮失败不中断计划。
type Refresher[V any] struct {
	loader   *Loader[V]
	schedule string
	logger   *slog.Logger
}

// RefresherOption 定义 Refresher 的配置选项
type RefresherOption[V any] func(*Refresher[V])

// WithSchedule 设置 cron 表达式。空串被忽略，保留默认每 10 分钟。
func WithSchedule[V any](spec string) RefresherOption[V] {
	return func(r *Refresher[V]) {
		if spec != "" {
			r.schedule = spec
		}
	}
}

// WithRefreshLogger 设置日志记录器。nil 被忽略。
func WithRefreshLogger[V any](logger *slog.Logger) RefresherOption[V] {
	return func(r *Refresher[V]) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewRefresher 创建周期预热器。loader 不可为 nil。
// cron 表达式在此即时校验，无效表达式返回 ErrBadSchedule。
func NewRefresher[V any](loader *Loader[V], opts ...RefresherOption[V]) (*Refresher[V], error) {
	if loader == nil {
		return nil, ErrNilLoader
	}

	r := &Refresher[V]{
		loader:   loader,
		schedule: DefaultSchedule,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}

	if _, err := cron.ParseStandard(r.schedule); err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrBadSchedule, r.schedule, err)
	}
	return r, nil
}

// Run 运行周期预热直至 ctx 取消，返回 ctx.Err()。
// 退出前等待进行中的预热轮完成，不留下半途写入。
func (r *Refresher[V]) Run(ctx context.Context) error {
	c := cron.New()
	// 表达式已在 NewRefresher 校验过，这里不会失败。
	if _, err := c.AddFunc(r.schedule, func() {
		loaded, err := r.loader.Warm(ctx)
		if err != nil {
			return
		}
		r.logger.Info("scheduled warm completed", slog.Int("loaded", loaded))
	}); err != nil {
		return fmt.Errorf("%w: %q: %v", ErrBadSchedule, r.schedule, err)
	}

	c.Start()
	r.logger.Info("warm refresher started", slog.String("schedule", r.schedule))

	<-ctx.Done()
	<-c.Stop().Done()
	r.logger.Info("warm refresher stopped")
	return ctx.Err()
}

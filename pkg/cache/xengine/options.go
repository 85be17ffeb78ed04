package xengine

import (
	"log/slog"
	"time"

	"github.com/omeyang/paycache/pkg/cache/xevent"
	"github.com/omeyang/paycache/pkg/cache/xwarm"
)

// Option 定义引擎的配置选项
type Option[V any] func(*options[V])

type options[V any] struct {
	logger      *slog.Logger
	rules       *xevent.Rules
	sources     []xwarm.Source[V]
	warmOpts    []xwarm.Option[V]
	loadTimeout time.Duration
}

func defaultOptions[V any]() *options[V] {
	return &options[V]{
		logger:      slog.Default(),
		loadTimeout: DefaultLoadTimeout,
	}
}

// WithLogger 设置日志记录器，注入到所有子组件。nil 被忽略。
func WithLogger[V any](logger *slog.Logger) Option[V] {
	return func(o *options[V]) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithRules 设置失效规则表。nil 被忽略，保留默认规则表。
func WithRules[V any](rules *xevent.Rules) Option[V] {
	return func(o *options[V]) {
		if rules != nil {
			o.rules = rules
		}
	}
}

// WithSources 设置预热数据源。未设置时 Run 跳过预热阶段。
func WithSources[V any](sources ...xwarm.Source[V]) Option[V] {
	return func(o *options[V]) {
		o.sources = sources
	}
}

// WithWarmOptions 透传预热加载器的额外选项（取数上限、重试参数等）。
func WithWarmOptions[V any](opts ...xwarm.Option[V]) Option[V] {
	return func(o *options[V]) {
		o.warmOpts = opts
	}
}

// WithLoadTimeout 设置 GetOrLoad 回源的独立超时。非正值被忽略。
func WithLoadTimeout[V any](d time.Duration) Option[V] {
	return func(o *options[V]) {
		if d > 0 {
			o.loadTimeout = d
		}
	}
}

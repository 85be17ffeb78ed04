package xwarm

import (
	"log/slog"
	"time"
)

// Option 定义预热加载器的配置选项
type Option[V any] func(*Loader[V])

// WithLimit 设置每个数据源的取数上限。非正值被忽略。
func WithLimit[V any](limit int) Option[V] {
	return func(l *Loader[V]) {
		if limit > 0 {
			l.limit = limit
		}
	}
}

// WithAttempts 设置单次取数的尝试次数（含首次）。非正值被忽略。
func WithAttempts[V any](n int) Option[V] {
	return func(l *Loader[V]) {
		if n > 0 {
			l.attempts = uint(n)
		}
	}
}

// WithRetryDelay 设置重试的基础延迟。非正值被忽略。
func WithRetryDelay[V any](d time.Duration) Option[V] {
	return func(l *Loader[V]) {
		if d > 0 {
			l.retryDelay = d
		}
	}
}

// WithBreakerTimeout 设置熔断器恢复超时。非正值被忽略。
func WithBreakerTimeout[V any](d time.Duration) Option[V] {
	return func(l *Loader[V]) {
		if d > 0 {
			l.breakerTimeout = d
		}
	}
}

// WithRecorder 设置指标记录器。nil 被忽略。
func WithRecorder[V any](rec Recorder) Option[V] {
	return func(l *Loader[V]) {
		if rec != nil {
			l.rec = rec
		}
	}
}

// WithLogger 设置日志记录器。nil 被忽略。
func WithLogger[V any](logger *slog.Logger) Option[V] {
	return func(l *Loader[V]) {
		if logger != nil {
			l.logger = logger
		}
	}
}

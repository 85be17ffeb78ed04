package xstore

import "log/slog"

// Recorder 是仓库向指标收集器上报的最小接口。
// xstats.Recorder 满足此接口；不关心指标的调用方无需任何处理，
// 默认的 NoopRecorder 会吞掉全部事件。
type Recorder interface {
	// Hit 记录一次命中。
	Hit()

	// Miss 记录一次未命中。
	Miss()

	// AddEvictions 记录 n 个条目被 LRU 淘汰。
	AddEvictions(n int)
}

// NoopRecorder 是 Recorder 的空实现。
type NoopRecorder struct{}

// Hit 空实现。
func (NoopRecorder) Hit() {}

// Miss 空实现。
func (NoopRecorder) Miss() {}

// AddEvictions 空实现。
func (NoopRecorder) AddEvictions(int) {}

// Option 定义仓库可选配置函数类型。
type Option[V any] func(*Store[V])

// WithRecorder 设置指标收集器。nil 被静默忽略。
func WithRecorder[V any](rec Recorder) Option[V] {
	return func(s *Store[V]) {
		if rec != nil {
			s.rec = rec
		}
	}
}

// WithLogger 设置日志记录器。默认使用 slog.Default()。
func WithLogger[V any](logger *slog.Logger) Option[V] {
	return func(s *Store[V]) {
		if logger != nil {
			s.logger = logger
		}
	}
}

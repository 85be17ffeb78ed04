package xmaint

import (
	"log/slog"
	"time"

	"github.com/omeyang/paycache/pkg/cache/xevent"
)

// Option 定义维护循环的配置选项
type Option func(*Loop)

// WithInterval 设置 TTL 清扫间隔。非正值被忽略，保留默认 60 秒。
func WithInterval(d time.Duration) Option {
	return func(l *Loop) {
		if d > 0 {
			l.interval = d
		}
	}
}

// WithRules 设置失效规则表。nil 被忽略，保留默认规则表。
func WithRules(rules *xevent.Rules) Option {
	return func(l *Loop) {
		if rules != nil {
			l.rules = rules
		}
	}
}

// WithRecorder 设置指标记录器。nil 被忽略。
func WithRecorder(rec Recorder) Option {
	return func(l *Loop) {
		if rec != nil {
			l.rec = rec
		}
	}
}

// WithLogger 设置日志记录器。nil 被忽略。
func WithLogger(logger *slog.Logger) Option {
	return func(l *Loop) {
		if logger != nil {
			l.logger = logger
		}
	}
}

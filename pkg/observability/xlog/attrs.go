package xlog

import (
	"log/slog"
	"time"
)

// 统一的日志字段键名。
const (
	KeyError     = "error"
	KeyComponent = "component"
	KeyDuration  = "duration"
	KeyCount     = "count"
)

// Err 构建错误属性。nil 错误产出空值而非 panic。
func Err(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}

// Component 构建组件名属性。
func Component(name string) slog.Attr {
	return slog.String(KeyComponent, name)
}

// Duration 构建耗时属性。
func Duration(d time.Duration) slog.Attr {
	return slog.Duration(KeyDuration, d)
}

// Count 构建计数属性。
func Count(n int64) slog.Attr {
	return slog.Int64(KeyCount, n)
}

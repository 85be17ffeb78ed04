package xevent

import "errors"

// 模式校验和规则表相关错误。
var (
	// ErrEmptyPattern 表示失效模式为空。
	ErrEmptyPattern = errors.New("xevent: empty invalidation pattern")

	// ErrBadPattern 表示失效模式语法非法。
	ErrBadPattern = errors.New("xevent: malformed invalidation pattern")

	// ErrNilMatcher 表示注册了 nil 匹配器。
	ErrNilMatcher = errors.New("xevent: nil matcher")
)

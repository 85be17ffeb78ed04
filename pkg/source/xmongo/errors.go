package xmongo

import "errors"

// 包级别错误定义。
var (
	// ErrNilCollection 表示传入了 nil 集合。
	ErrNilCollection = errors.New("xmongo: nil collection")
)

package xengine

import "errors"

// 预定义错误变量
var (
	// ErrNilLoadFunc 表示回源函数为 nil
	ErrNilLoadFunc = errors.New("xengine: load func is nil")

	// ErrLoadType 表示 singleflight 返回了意外类型
	ErrLoadType = errors.New("xengine: unexpected singleflight result type")
)

package xstore

import "errors"

// 构造期校验错误。
var (
	// ErrInvalidCapacity 表示容量配置非法（不允许负值）。
	ErrInvalidCapacity = errors.New("xstore: capacity must not be negative")

	// ErrInvalidTTL 表示默认 TTL 配置非法（不允许负值）。
	ErrInvalidTTL = errors.New("xstore: default TTL must not be negative")
)

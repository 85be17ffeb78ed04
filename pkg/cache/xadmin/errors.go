package xadmin

import "errors"

// 预定义错误变量
var (
	// ErrNilStore 表示条目仓库为 nil
	ErrNilStore = errors.New("xadmin: store is nil")

	// ErrNilBus 表示事件总线为 nil
	ErrNilBus = errors.New("xadmin: bus is nil")

	// ErrNilStats 表示指标记录器为 nil
	ErrNilStats = errors.New("xadmin: stats is nil")

	// ErrInvalidTarget 表示淘汰目标大小为负
	ErrInvalidTarget = errors.New("xadmin: eviction target must be non-negative")
)

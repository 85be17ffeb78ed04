package xmaint

import "errors"

// 预定义错误变量
var (
	// ErrNilStore 表示条目存储为 nil
	ErrNilStore = errors.New("xmaint: store is nil")

	// ErrNilBus 表示事件总线为 nil
	ErrNilBus = errors.New("xmaint: bus is nil")
)

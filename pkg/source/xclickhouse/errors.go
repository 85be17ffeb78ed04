package xclickhouse

import "errors"

// 包级别错误定义。
var (
	// ErrNilConn 表示传入了 nil 连接。
	ErrNilConn = errors.New("xclickhouse: nil connection")

	// ErrInvalidTable 表示表名为空或包含非法字符。
	ErrInvalidTable = errors.New("xclickhouse: invalid table name")
)

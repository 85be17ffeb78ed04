package xrotate

import "io"

// 编译时断言：Rotator 是 io.WriteCloser 的超集。
var _ io.WriteCloser = (Rotator)(nil)

// Rotator 定义日志轮转器能力。
//
// 实现必须并发安全；Close 后调用 Write 或 Rotate 返回 ErrClosed。
type Rotator interface {
	// Write 写入日志数据，触发轮转条件时自动轮转。
	Write(p []byte) (n int, err error)

	// Close 关闭轮转器并释放资源，重复调用返回 ErrClosed。
	Close() error

	// Rotate 手动触发一次轮转。
	Rotate() error
}

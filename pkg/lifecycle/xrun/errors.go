package xrun

import (
	"errors"
	"fmt"
	"os"
)

// 预定义错误变量
var (
	// ErrSignal 表示因收到系统信号而终止。
	// 使用 errors.Is(err, ErrSignal) 判断。
	ErrSignal = errors.New("received signal")

	// ErrNilFunc 表示服务函数为 nil
	ErrNilFunc = errors.New("xrun: service func is nil")

	// ErrNilService 表示服务为 nil
	ErrNilService = errors.New("xrun: service is nil")
)

// SignalError 携带触发终止的具体信号。
// 使用 errors.As 获取信号值，errors.Is(err, ErrSignal) 做分类判断。
type SignalError struct {
	Signal os.Signal
}

// Error 实现 error 接口。
func (e *SignalError) Error() string {
	if e.Signal == nil {
		return "received signal <nil>"
	}
	return fmt.Sprintf("received signal %s", e.Signal)
}

// Is 支持 errors.Is(err, ErrSignal) 判断。
func (e *SignalError) Is(target error) bool {
	return target == ErrSignal
}

// Unwrap 返回底层错误。
func (e *SignalError) Unwrap() error {
	return ErrSignal
}

package xstats

import "errors"

// OTel 桥接相关错误。
var (
	// ErrNilRecorder 表示传入了 nil Recorder。
	ErrNilRecorder = errors.New("xstats: nil recorder")

	// ErrNilSizeFunc 表示传入了 nil 容量回调。
	ErrNilSizeFunc = errors.New("xstats: nil size func")

	// ErrCreateInstrument 表示创建 OTel 指标失败。
	ErrCreateInstrument = errors.New("xstats: create instrument failed")

	// ErrRegisterCallback 表示注册 OTel 采集回调失败。
	ErrRegisterCallback = errors.New("xstats: register callback failed")
)

package xredis

import "errors"

// 预定义错误变量
var (
	// ErrNilClient 表示 Redis 客户端为 nil
	ErrNilClient = errors.New("xredis: redis client is nil")

	// ErrNilBus 表示事件总线为 nil
	ErrNilBus = errors.New("xredis: bus is nil")

	// ErrBadEnvelope 表示信封 JSON 无法解析
	ErrBadEnvelope = errors.New("xredis: malformed event envelope")

	// ErrUnknownType 表示信封携带未知事件类型
	ErrUnknownType = errors.New("xredis: unknown event type")

	// ErrMissingField 表示信封缺少该事件类型的必填字段
	ErrMissingField = errors.New("xredis: missing envelope field")
)

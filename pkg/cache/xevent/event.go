package xevent

import (
	"path"
	"strconv"
	"strings"
)

// Kind 表示失效事件变体。
type Kind int

const (
	// KindPaymentDetected 表示支付走廊出现新支付。
	KindPaymentDetected Kind = iota
	// KindAnchorStatusChanged 表示锚点健康状态变化。
	KindAnchorStatusChanged
	// KindAdminInvalidate 表示管理面按模式失效。
	KindAdminInvalidate
	// KindTTLSweep 表示周期性过期清扫。
	KindTTLSweep
	// KindMemoryPressure 表示内存压力触发的 LRU 淘汰。
	KindMemoryPressure
)

// String 返回 Kind 的可读字符串表示，用于调试和日志输出。
func (k Kind) String() string {
	switch k {
	case KindPaymentDetected:
		return "PaymentDetected"
	case KindAnchorStatusChanged:
		return "AnchorStatusChanged"
	case KindAdminInvalidate:
		return "AdminInvalidate"
	case KindTTLSweep:
		return "TTLSweep"
	case KindMemoryPressure:
		return "MemoryPressure"
	default:
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Event 是失效事件的标签联合接口。
//
// 所有变体都是小型不可变值类型，可安全地跨 goroutine 传递。
type Event interface {
	// EventKind 返回事件变体标签。
	EventKind() Kind
}

// PaymentDetected 表示支付走廊 CorridorID 出现新支付。
// 对应失效模板 corridor:<id>:*。
type PaymentDetected struct {
	CorridorID string
}

// EventKind 实现 Event 接口。
func (PaymentDetected) EventKind() Kind { return KindPaymentDetected }

// AnchorStatusChanged 表示锚点 AnchorID 的健康状态变化。
// 对应失效模板 anchor:<id>:*。
type AnchorStatusChanged struct {
	AnchorID string
}

// EventKind 实现 Event 接口。
func (AnchorStatusChanged) EventKind() Kind { return KindAnchorStatusChanged }

// AdminInvalidate 表示管理面按 glob 模式失效。
// Pattern 必须已在管理边界通过 ValidatePattern 校验。
type AdminInvalidate struct {
	Pattern string
}

// EventKind 实现 Event 接口。
func (AdminInvalidate) EventKind() Kind { return KindAdminInvalidate }

// TTLSweep 表示一次过期清扫。由维护循环按固定间隔内部发出，
// 也可由外部显式发布以立即触发清扫。
type TTLSweep struct{}

// EventKind 实现 Event 接口。
func (TTLSweep) EventKind() Kind { return KindTTLSweep }

// MemoryPressure 表示内存压力，要求仓库 LRU 淘汰到 TargetSize。
type MemoryPressure struct {
	TargetSize int
}

// EventKind 实现 Event 接口。
func (MemoryPressure) EventKind() Kind { return KindMemoryPressure }

// Predicate 是键匹配谓词。返回 true 表示该键应被删除。
type Predicate func(key string) bool

// 键命名约定前缀。
const (
	corridorPrefix = "corridor:"
	anchorPrefix   = "anchor:"
)

// CorridorKeyPrefix 返回走廊 id 对应的键前缀 corridor:<id>:。
func CorridorKeyPrefix(corridorID string) string {
	return corridorPrefix + corridorID + ":"
}

// AnchorKeyPrefix 返回锚点 id 对应的键前缀 anchor:<id>:。
func AnchorKeyPrefix(anchorID string) string {
	return anchorPrefix + anchorID + ":"
}

// PrefixPredicate 返回匹配指定前缀的谓词。
func PrefixPredicate(prefix string) Predicate {
	return func(key string) bool {
		return strings.HasPrefix(key, prefix)
	}
}

// PatternPredicate 返回按 glob 模式匹配的谓词。
// 语法与 path.Match 一致（*、?、[...]）；缓存键不含 '/'，
// 因此 * 可跨越键的任意片段。
//
// 设计决策: 运行期解析失败的模式不匹配任何键而非 panic——
// 模式校验属于管理边界（ValidatePattern），核心路径只做兜底。
func PatternPredicate(pattern string) Predicate {
	return func(key string) bool {
		ok, err := path.Match(pattern, key)
		return err == nil && ok
	}
}

// ValidatePattern 校验 glob 模式。
// 空模式返回 ErrEmptyPattern，语法非法返回 ErrBadPattern。
// 在管理边界调用，确保进入核心的模式都是格式良好的。
func ValidatePattern(pattern string) error {
	if pattern == "" {
		return ErrEmptyPattern
	}
	if _, err := path.Match(pattern, ""); err != nil {
		return ErrBadPattern
	}
	return nil
}

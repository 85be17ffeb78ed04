package xevent

import "sync"

// Matcher 将一个事件解析为键谓词。
// 只在事件变体与注册 Kind 一致时被调用。
type Matcher func(ev Event) Predicate

// Rules 是事件变体到键谓词的规则表。
//
// 规则表对扩展开放：新变体通过 Register 注册，无需修改已有代码。
// 所有方法并发安全。零值不可用，必须通过 NewRules 或 DefaultRules 创建。
type Rules struct {
	mu       sync.RWMutex
	matchers map[Kind]Matcher
}

// NewRules 创建空规则表。
func NewRules() *Rules {
	return &Rules{matchers: make(map[Kind]Matcher)}
}

// DefaultRules 创建包含内建失效规则的规则表：
//
//   - PaymentDetected  → 前缀 corridor:<id>:
//   - AnchorStatusChanged → 前缀 anchor:<id>:
//   - AdminInvalidate  → glob 模式匹配
//
// TTLSweep 与 MemoryPressure 由维护循环结构化处理，不在规则表内。
func DefaultRules() *Rules {
	r := NewRules()
	// 内建匹配器注册不会失败，忽略错误返回。
	_ = r.Register(KindPaymentDetected, func(ev Event) Predicate {
		pd, ok := ev.(PaymentDetected)
		if !ok {
			return nil
		}
		return PrefixPredicate(CorridorKeyPrefix(pd.CorridorID))
	})
	_ = r.Register(KindAnchorStatusChanged, func(ev Event) Predicate {
		ac, ok := ev.(AnchorStatusChanged)
		if !ok {
			return nil
		}
		return PrefixPredicate(AnchorKeyPrefix(ac.AnchorID))
	})
	_ = r.Register(KindAdminInvalidate, func(ev Event) Predicate {
		ai, ok := ev.(AdminInvalidate)
		if !ok {
			return nil
		}
		return PatternPredicate(ai.Pattern)
	})
	return r
}

// Register 注册或覆盖一个变体的匹配器。
// matcher 为 nil 返回 ErrNilMatcher。
func (r *Rules) Register(kind Kind, matcher Matcher) error {
	if matcher == nil {
		return ErrNilMatcher
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.matchers[kind] = matcher
	return nil
}

// Resolve 将事件解析为键谓词。
// 第二个返回值为 false 表示该变体未注册或匹配器拒绝了该事件，
// 调用方应跳过谓词删除路径。
func (r *Rules) Resolve(ev Event) (Predicate, bool) {
	if ev == nil {
		return nil, false
	}
	r.mu.RLock()
	matcher, ok := r.matchers[ev.EventKind()]
	r.mu.RUnlock()
	if !ok {
		return nil, false
	}
	pred := matcher(ev)
	if pred == nil {
		return nil, false
	}
	return pred, true
}

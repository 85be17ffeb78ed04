package xstore

import (
	"log/slog"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/omeyang/paycache/pkg/cache/xevent"
)

// Config 定义仓库配置。
type Config struct {
	// Capacity 容量上限。Set 超出后同步 LRU 淘汰回此容量。
	// 0 表示不限容量；不允许负值。
	Capacity int

	// DefaultTTL 未显式指定 TTL 的条目的存活时长。
	// 0 表示永不过期；不允许负值。
	DefaultTTL time.Duration
}

// Store 是并发安全的条目仓库。
// 必须通过 [New] 创建，零值不可用。
// 仓库独占持有全部条目，外部不会拿到条目内部引用。
type Store[V any] struct {
	mu      sync.RWMutex
	entries map[string]*entry[V]

	// clock 是仓库级逻辑时钟，每次命中和写入推进一格。
	// 单调递增，仅用于 LRU 排序。
	clock atomic.Uint64

	capacity   int
	defaultTTL time.Duration
	rec        Recorder
	logger     *slog.Logger
}

// entry 是仓库内部条目。value 整体替换，不做部分更新；
// lastUsed 是条目内原子值，允许 Get 在读锁下提升 recency。
type entry[V any] struct {
	value      V
	insertedAt time.Time
	ttl        time.Duration
	lastUsed   atomic.Uint64
}

// live 判定条目在 now 时刻是否存活。ttl <= 0 表示永不过期。
func (e *entry[V]) live(now time.Time) bool {
	return e.ttl <= 0 || now.Before(e.insertedAt.Add(e.ttl))
}

// New 创建条目仓库。
// cfg.Capacity < 0 返回 ErrInvalidCapacity，cfg.DefaultTTL < 0 返回 ErrInvalidTTL。
func New[V any](cfg Config, opts ...Option[V]) (*Store[V], error) {
	if cfg.Capacity < 0 {
		return nil, ErrInvalidCapacity
	}
	if cfg.DefaultTTL < 0 {
		return nil, ErrInvalidTTL
	}

	s := &Store[V]{
		entries:    make(map[string]*entry[V]),
		capacity:   cfg.Capacity,
		defaultTTL: cfg.DefaultTTL,
		rec:        NoopRecorder{},
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s, nil
}

// Get 读取键值。命中时推进条目的 lastUsed 并计一次命中；
// 缺失或已过期计一次未命中。过期条目惰性保留，由清扫删除。
func (s *Store[V]) Get(key string) (V, bool) {
	var zero V
	now := time.Now()

	s.mu.RLock()
	e, ok := s.entries[key]
	if !ok || !e.live(now) {
		s.mu.RUnlock()
		s.rec.Miss()
		return zero, false
	}
	// 逻辑时钟推进和 recency 提升都是原子操作，读锁下即可完成。
	e.lastUsed.Store(s.clock.Add(1))
	v := e.value
	s.mu.RUnlock()

	s.rec.Hit()
	return v, true
}

// Set 插入或整体替换条目，使用仓库默认 TTL。
func (s *Store[V]) Set(key string, value V) {
	s.SetTTL(key, value, s.defaultTTL)
}

// SetTTL 插入或整体替换条目，使用指定 TTL（ttl <= 0 表示永不过期）。
//
// 超出容量时在当前 goroutine 上同步 LRU 淘汰回容量，
// 淘汰数量计入淘汰计数器。
func (s *Store[V]) SetTTL(key string, value V, ttl time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	defer s.guardLocked()

	e := &entry[V]{
		value:      value,
		insertedAt: time.Now(),
		ttl:        ttl,
	}
	e.lastUsed.Store(s.clock.Add(1))
	s.entries[key] = e

	if s.capacity > 0 && len(s.entries) > s.capacity {
		s.rec.AddEvictions(s.evictLocked(s.capacity))
	}
}

// Delete 删除键。键不存在时为空操作，不报错。
func (s *Store[V]) Delete(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	defer s.guardLocked()

	delete(s.entries, key)
}

// DeleteMatching 删除所有满足谓词的键，返回删除数量。
// 用于模式失效和事件驱动失效。nil 谓词删除 0 个。
func (s *Store[V]) DeleteMatching(pred xevent.Predicate) int {
	if pred == nil {
		return 0
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	defer s.guardLocked()

	removed := 0
	for key := range s.entries {
		if pred(key) {
			delete(s.entries, key)
			removed++
		}
	}
	return removed
}

// Flush 删除全部条目。
func (s *Store[V]) Flush() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = make(map[string]*entry[V])
}

// Len 返回当前条目数。
//
// 注意：包含已过期但尚未被清扫的条目。
func (s *Store[V]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Keys 返回全部键的字典序切片。调试辅助。
func (s *Store[V]) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make([]string, 0, len(s.entries))
	for key := range s.entries {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	return keys
}

// guardLocked 在写路径持锁期间捕获 panic。
// 不可恢复的内部损坏以丢弃并重建条目集合收场，不让服务路径崩溃。
func (s *Store[V]) guardLocked() {
	if r := recover(); r != nil {
		s.entries = make(map[string]*entry[V])
		s.logger.Error("store mutation panicked, entry set reinitialized",
			slog.Any("panic", r),
		)
	}
}

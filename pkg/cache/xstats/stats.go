package xstats

import "sync/atomic"

// Recorder 是缓存指标收集器。
// 零值即可使用，所有方法并发安全。
//
// 计数器全部单调递增；当前容量是活值，由 Snapshot 的调用方提供
// （仓库的 Len()），Recorder 不持有仓库引用。
type Recorder struct {
	hits          atomic.Uint64
	misses        atomic.Uint64
	invalidations atomic.Uint64
	evictions     atomic.Uint64
	warmUps       atomic.Uint64
}

// NewRecorder 创建指标收集器。
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Hit 记录一次缓存命中。
func (r *Recorder) Hit() { r.hits.Add(1) }

// Miss 记录一次缓存未命中。
func (r *Recorder) Miss() { r.misses.Add(1) }

// AddInvalidations 记录 n 个条目因失效信号被删除。
// n <= 0 时为空操作。
func (r *Recorder) AddInvalidations(n int) {
	if n > 0 {
		r.invalidations.Add(uint64(n))
	}
}

// AddEvictions 记录 n 个条目被 LRU 淘汰。
// n <= 0 时为空操作。
func (r *Recorder) AddEvictions(n int) {
	if n > 0 {
		r.evictions.Add(uint64(n))
	}
}

// WarmUp 记录一次预热插入。
func (r *Recorder) WarmUp() { r.warmUps.Add(1) }

// Snapshot 是指标的不可变时点副本。
type Snapshot struct {
	// Hits 缓存命中次数。
	Hits uint64

	// Misses 缓存未命中次数。
	Misses uint64

	// Invalidations 因失效信号删除的条目数（含过期清扫）。
	Invalidations uint64

	// Evictions 被 LRU 淘汰的条目数。
	Evictions uint64

	// WarmUps 预热插入的条目数。
	WarmUps uint64

	// CurrentSize 当前条目数（活值）。
	CurrentSize int

	// HitRate 命中率 hits/(hits+misses)，无操作时为 0。
	HitRate float64
}

// Snapshot 返回当前指标的不可变副本。
// currentSize 由调用方提供（通常为仓库的 Len()）。
func (r *Recorder) Snapshot(currentSize int) Snapshot {
	hits := r.hits.Load()
	misses := r.misses.Load()

	var hitRate float64
	if total := hits + misses; total > 0 {
		hitRate = float64(hits) / float64(total)
	}

	return Snapshot{
		Hits:          hits,
		Misses:        misses,
		Invalidations: r.invalidations.Load(),
		Evictions:     r.evictions.Load(),
		WarmUps:       r.warmUps.Load(),
		CurrentSize:   currentSize,
		HitRate:       hitRate,
	}
}

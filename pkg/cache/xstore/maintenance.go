package xstore

import "time"

// SweepExpired 删除所有在 now 时刻已过期的条目，返回删除数量。
// 由维护循环按固定间隔调用。O(n) 全量扫描，简单可判定；
// 如需 O(log n) 可换有序索引，但必须保持相同的存活语义。
func (s *Store[V]) SweepExpired(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	defer s.guardLocked()

	removed := 0
	for key, e := range s.entries {
		if !e.live(now) {
			delete(s.entries, key)
			removed++
		}
	}
	return removed
}

// EvictToSize 按 LRU 淘汰条目直至条目数不超过 target，返回淘汰数量。
// target < 0 视同 0。淘汰数量计入淘汰计数器。
// 由内存压力事件和管理面的强制淘汰调用。
func (s *Store[V]) EvictToSize(target int) int {
	if target < 0 {
		target = 0
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	defer s.guardLocked()

	evicted := s.evictLocked(target)
	s.rec.AddEvictions(evicted)
	return evicted
}

// evictLocked 持写锁淘汰至 target。每轮全量扫描选出 lastUsed 数值
// 最小的条目；lastUsed 相等时取字典序最小的键（确定性平局裁决）。
// 每淘汰一个条目 O(n)，与规约的参考算法一致。
func (s *Store[V]) evictLocked(target int) int {
	evicted := 0
	for len(s.entries) > target {
		var victim string
		var victimUsed uint64
		found := false
		for key, e := range s.entries {
			used := e.lastUsed.Load()
			if !found || used < victimUsed || (used == victimUsed && key < victim) {
				victim = key
				victimUsed = used
				found = true
			}
		}
		if !found {
			break
		}
		delete(s.entries, victim)
		evicted++
	}
	return evicted
}

// Package xstore 实现缓存引擎的条目仓库：带 TTL 和 LRU 元数据的
// 并发安全键值存储，无任何 I/O。
//
// # 数据模型
//
// 每个条目携带 {value, insertedAt, ttl, lastUsed}。存活判定：
// now < insertedAt+ttl（ttl <= 0 表示永不过期）。lastUsed 来自仓库级
// 单调逻辑时钟（atomic 计数器），每次命中推进一格——O(1) 更新且不受
// 时钟回拨影响，仅用于 LRU 排序，与墙钟无关。
//
// # 锁纪律
//
// 单个 RWMutex：Get 走读锁并行（recency 提升是条目内原子写，无需写锁）；
// Set、Delete、DeleteMatching、Flush、清扫与淘汰走写锁独占。
// 所有操作只在锁获取上阻塞，从不在 I/O 上阻塞。
//
// # 过期语义
//
// 惰性过期：Get 对已过期条目记一次未命中并保留条目，物理删除由
// 维护循环的周期清扫（SweepExpired）完成。已过期条目永不从 Get 返回。
//
// # LRU 淘汰
//
// Set 超出容量时在调用 goroutine 上同步淘汰（持有已获取的写锁）——
// 这意味着越界的 Set 可能付出一次 O(n) 扫描，换来容量严格收敛，
// 效果通过淘汰计数器可观测。选择 lastUsed 数值最小者；lastUsed
// 相等时取字典序最小的键，保证测试可复现。
//
// # 失败语义
//
// 正常操作永不失败。写路径在持锁期间带 recover 兜底：临界区内的
// panic 会丢弃并重建条目集合，而不是让服务路径崩溃——卡死的缓存
// 不能阻塞读写方，不可恢复的内部损坏以清空缓存收场。
package xstore

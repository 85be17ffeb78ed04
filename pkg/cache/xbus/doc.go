// Package xbus 实现失效事件的进程内广播总线。
//
// # 语义
//
// 多生产者、多订阅者。Publish 从不阻塞，也不要求存在活跃订阅者：
// 慢订阅者或缺席订阅者只会滞后或丢事件，绝不反压生产者。
//
// 每个订阅者持有一个有界缓冲；缓冲满时丢弃最旧的事件为新事件腾位
// （drop-oldest）。丢弃的失效事件是最终一致性的权衡而非缺陷——
// 被丢弃的失效最终由 TTL 过期兜底；丢弃次数通过 Dropped 可观测。
//
// # 顺序保证
//
// Publish 在总线互斥锁下串行执行，单个订阅者按发布顺序收到事件；
// 不保证跨订阅者的相对顺序。
//
// # 生命周期
//
// 维护循环是规范订阅者；额外的观察者（如日志）可自由挂载，
// 不影响维护循环的行为。Close 幂等，关闭后 Publish 为空操作，
// 全部订阅通道被关闭。
package xbus

// Package xredis 提供 Redis 发布订阅的失效事件接入。
//
// 支付监听器与锚点健康检查等协作方把数据变更以 JSON 信封发布到
// Redis 频道；本包订阅这些频道，把信封解码为类型化失效事件后
// 投递到进程内事件总线，由维护循环按序应用。
//
// 信封格式:
//
//	{"id":"<uuid>","type":"payment_detected","corridor_id":"usdc-xlm"}
//	{"id":"<uuid>","type":"anchor_status_changed","anchor_id":"anchor-a"}
//	{"id":"<uuid>","type":"admin_invalidate","pattern":"corridor:*"}
//
// id 缺失时本地生成 UUID，仅用于日志关联。畸形信封与未知类型
// 记录日志后丢弃，不中断订阅；缓存对上游真相最终一致，丢弃一条
// 失效事件的代价由 TTL 兜底。
package xredis

// Package xmongo 提供基于 MongoDB 的锚点健康度预热数据源。
//
// AnchorSource 从运营库中按健康评分倒序取出状态最好的锚点档案，
// 序列化为 JSON 后作为预热记录写入缓存，缓存键与失效规则使用同一套
// 锚点键前缀约定。
//
// 设计决策：
//   - 集合操作通过内部接口注入，成功路径用 NewCursorFromDocuments 即可单测。
//   - 取数超时、重试与熔断由上层预热器统一治理，本包只负责单次取数。
package xmongo

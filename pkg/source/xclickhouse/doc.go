// Package xclickhouse 提供基于 ClickHouse 的走廊统计预热数据源。
//
// CorridorSource 从分析库中按支付笔数倒序取出最热的走廊聚合指标，
// 序列化为 JSON 后作为预热记录写入缓存，缓存键与失效规则使用同一套
// 走廊键前缀约定。
//
// 设计决策：
//   - 查询结果按 ScanStruct 映射到 CorridorStats，新增列不会破坏取数。
//   - 表名在构造期做白名单校验，查询语句不拼接任何外部输入。
//   - 取数超时、重试与熔断由上层预热器统一治理，本包只负责单次取数。
package xclickhouse

// Package xadmin 提供缓存引擎的管理控制面。
//
// 控制面暴露四个运维操作，均直接转译为对内部组件的调用：
//
//   - Metrics: 读取指标快照（含当前条目数与命中率）
//   - InvalidatePattern: 按 glob 模式失效，经事件总线投递 AdminInvalidate
//   - FlushAll: 全量清空，绕过事件总线直接调用仓库，保证即时生效
//   - EvictToSize: 强制 LRU 淘汰至目标大小，投递 MemoryPressure
//
// 输入校验发生在此边界：模式在投递前校验，目标大小拒绝负值；
// 核心内部只处理良构的谓词。控制面不含任何业务鉴权逻辑，
// 鉴权由外部协作方负责。
package xadmin

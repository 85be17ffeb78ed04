// Package xevent 定义缓存失效事件模型和事件到键谓词的解析规则。
//
// # 概述
//
// 上游协作方（支付监听器、锚点健康检查器、管理面）在底层数据变化时
// 发布失效事件，维护循环消费事件并将其解析为键匹配谓词，
// 再对条目仓库执行批量删除。
//
// # 事件变体
//
//   - PaymentDetected：某支付走廊出现新支付，失效 corridor:<id>:* 下的全部键
//   - AnchorStatusChanged：某锚点状态变化，失效 anchor:<id>:* 下的全部键
//   - AdminInvalidate：管理面按 glob 模式失效任意键
//   - TTLSweep：周期性过期清扫（由维护循环内部发出）
//   - MemoryPressure：内存压力，触发 LRU 淘汰到目标容量
//
// # 键命名约定
//
// 前缀是调用方约定而非仓库强制：
//
//	corridor:<id>:...   由 PaymentDetected 失效
//	anchor:<id>:...     由 AnchorStatusChanged 失效
//	自由格式             仅能由 AdminInvalidate 失效
//
// # 规则表
//
// Rules 将事件变体映射到键谓词，对扩展开放：新增变体只需实现 Event
// 接口并通过 Register 注册匹配器，无需修改仓库或维护循环。
// TTLSweep 与 MemoryPressure 不走谓词删除路径，由维护循环结构化处理，
// 因此默认规则表不包含它们。
//
// # 模式校验
//
// AdminInvalidate 的 glob 模式必须在管理边界先经 ValidatePattern 校验，
// 规则表内部只处理格式良好的模式；运行期解析失败的模式不匹配任何键。
package xevent

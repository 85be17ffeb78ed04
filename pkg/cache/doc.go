// Package cache 提供分析缓存引擎相关的子包。
//
// 子包列表：
//   - xstore: 条目仓库，TTL + LRU + 逻辑时钟
//   - xevent: 失效事件模型与键映射规则
//   - xbus: 进程内失效事件总线
//   - xmaint: 维护循环，事件失效与周期清扫
//   - xwarm: 数据源预热与计划刷新
//   - xstats: 指标采集与 OpenTelemetry 桥接
//   - xadmin: 管理控制面
//   - xengine: 顶层引擎装配
//
// 设计原则：
//   - 读写路径与维护路径分离，失效经事件总线异步执行
//   - 各子包以小接口解耦，可独立测试与替换
package cache

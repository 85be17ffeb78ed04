// Package source 提供预热数据源相关的子包。
//
// 子包列表：
//   - xclickhouse: 走廊统计预热源，来自分析库
//   - xmongo: 锚点健康度预热源，来自运营库
//
// 设计原则：
//   - 统一实现预热数据源接口，取数失败由上层治理
//   - 缓存键遵循失效规则的前缀约定
package source

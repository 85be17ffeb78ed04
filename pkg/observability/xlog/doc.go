// Package xlog 提供基于 log/slog 的日志构建器。
//
// Builder 以链式调用收集配置，Build 一次性产出 *slog.Logger 与
// 清理函数；级别经 slog.LevelVar 承载，支持运行期动态调整。
//
// 设计决策：
//   - 配置错误在 Builder 内累积，Build 统一返回，链式调用无需逐步判错。
//   - 输出目标接受任意 io.Writer，配合 xrotate 即获得文件轮转能力。
package xlog

// Package observability 提供可观测性相关的子包。
//
// 子包列表：
//   - xlog: 结构化日志构建器，基于 log/slog
//   - xrotate: 日志文件轮转
//
// 设计原则：
//   - 日志输出目标与格式由配置驱动
//   - 支持运行期动态级别控制
package observability

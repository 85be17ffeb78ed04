// Package xrotate 提供日志文件轮转能力。
//
// 基于 lumberjack 实现按大小轮转、备份清理与可选压缩，
// Rotator 实现 io.WriteCloser，可直接作为 xlog 的输出目标。
//
// 设计决策：
//   - 必须配置至少一种清理策略（数量或天数），防止磁盘被备份占满。
//   - Close 后的 Write/Rotate 统一返回 ErrClosed，便于调用方收敛错误处理。
package xrotate

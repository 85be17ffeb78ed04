// Package xstats 提供缓存引擎的被动指标收集。
//
// # 概述
//
// Recorder 持有一组单调递增的原子计数器：命中、未命中、失效、淘汰、预热。
// 仓库和维护循环在每次操作时递增对应计数器；Snapshot 返回含当前容量
// 和派生命中率的不可变副本。
//
// # 一致性语义
//
// 所有计数器使用 atomic.Uint64，读取永不撕裂。Snapshot 不加全局锁，
// 各计数器独立读取，并发期间可能存在微小偏差；CurrentSize 由调用方
// 在读取计数器前后采样，这是规约允许的时点一致性。
//
// # OTel 导出
//
// RegisterOTel 通过异步 observable 指标把 Recorder 桥接到
// OpenTelemetry，采集周期由 MeterProvider 的 Reader 决定，
// Recorder 自身不感知导出器存在。
package xstats

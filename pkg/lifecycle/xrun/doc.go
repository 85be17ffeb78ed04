// Package xrun 提供进程生命周期管理。
//
// Group 基于 errgroup 与 context 协调多个长生命周期服务的并发运行
// 与有序关闭：任一服务出错或 context 取消时，其余服务都收到取消信号。
//
// Run/RunServices 是常用入口，自带系统信号监听，收到 SIGINT/SIGTERM
// 等信号时取消全组并返回 *SignalError。
//
// 使用示例:
//
//	err := xrun.RunServices(ctx, maintLoop, refresher, ingress)
//	if errors.Is(err, xrun.ErrSignal) {
//		log.Println("shutting down")
//	}
package xrun

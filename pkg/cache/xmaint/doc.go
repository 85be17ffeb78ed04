// Package xmaint 提供缓存维护循环。
//
// 维护循环是缓存引擎中唯一的长生命周期后台任务，承担三类工作：
//
//   - 事件驱动失效: 消费失效事件总线，经规则表解析为键谓词后批量删除条目
//   - 定时 TTL 清扫: 按固定间隔（默认 60 秒）移除已过期条目
//   - 内存压力淘汰: 收到 MemoryPressure 事件时按 LRU 淘汰至目标大小
//
// Run 以工作单元为粒度响应取消：处理完一个事件或完成一轮清扫后
// 检查上下文，绝不在存储变更中途退出。
//
// 使用示例:
//
//	loop, err := xmaint.New(store, bus,
//		xmaint.WithInterval(30*time.Second),
//		xmaint.WithRecorder(rec),
//	)
//	if err != nil {
//		return err
//	}
//	go loop.Run(ctx)
package xmaint

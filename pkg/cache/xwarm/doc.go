// Package xwarm 提供缓存预热加载。
//
// 预热加载器在进程启动时从权威数据源拉取头部热点记录，经标准写路径
// 灌入条目仓库，使缓存带着完整的 TTL 与 recency 语义对外提供读流量。
//
// 失败降级契约: 预热失败绝不阻止进程启动。数据源不可用时记录日志并
// 跳过该源，空缓存冷启动是可接受的降级状态，不是致命错误。
//
// 每个数据源独立配备重试（底层 [avast/retry-go/v5]）与熔断
// （底层 [sony/gobreaker/v2]），单个源的持续故障不会拖垮整轮预热。
//
// Refresher 基于 [robfig/cron/v3] 提供周期性重新预热，保持头部
// 记录常驻。
//
// 使用示例:
//
//	loader, err := xwarm.New(store,
//		[]xwarm.Source[Stats]{chSource, mongoSource},
//		xwarm.WithLimit(200),
//	)
//	if err != nil {
//		return err
//	}
//	loaded, err := loader.Warm(ctx) // err 仅来自 ctx 取消
//
// [avast/retry-go/v5]: https://github.com/avast/retry-go
// [sony/gobreaker/v2]: https://github.com/sony/gobreaker
// [robfig/cron/v3]: https://github.com/robfig/cron
package xwarm

// Package xengine 提供缓存引擎门面。
//
// Engine 显式组合条目仓库、事件总线、失效规则、指标记录器、维护循环、
// 预热加载器与管理控制面，不依赖任何环境单例；所有配置在构造时注入。
//
// 读写操作（Get/Set/SetTTL/Delete）直达仓库；失效经 Publish 投递事件，
// 由维护循环按发布顺序异步应用。GetOrLoad 提供 Cache-Aside 回源，
// 内置 singleflight 防止击穿。
//
// 生命周期: Run(ctx) 先预热再运行维护循环直至 ctx 取消，可直接作为
// xrun.Service 托管；Close 关闭事件总线并使运行中的 Run 返回。
//
// 使用示例:
//
//	eng, err := xengine.New[Stats](xengine.Config{
//		Capacity:      10000,
//		DefaultTTL:    5 * time.Minute,
//		SweepInterval: time.Minute,
//	}, xengine.WithSources[Stats](chSource))
//	if err != nil {
//		return err
//	}
//	defer eng.Close()
//	go eng.Run(ctx)
//
//	eng.Set("corridor:usdc-xlm:stats", stats)
//	v, ok := eng.Get("corridor:usdc-xlm:stats")
package xengine

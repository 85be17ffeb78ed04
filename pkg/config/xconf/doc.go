// Package xconf 提供配置加载。
//
// 底层使用 [knadh/koanf/v2]，支持 YAML 与 JSON，按文件扩展名自动检测
// 格式。Config 接口只提供增值能力（类型化 Unmarshal、并发安全 Reload），
// 完整的 koanf 操作经 Client() 获取底层实例。
//
// 缓存引擎的配置面在构造时一次注入，核心不读环境变量；本包服务于
// 守护进程的启动装配。
//
// 使用示例:
//
//	cfg, err := xconf.New("paycached.yaml")
//	if err != nil {
//		return err
//	}
//	var c DaemonConfig
//	if err := cfg.Unmarshal("", &c); err != nil {
//		return err
//	}
//
// [knadh/koanf/v2]: https://github.com/knadh/koanf
package xconf

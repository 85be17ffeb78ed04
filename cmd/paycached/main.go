// paycached 是支付网络分析缓存守护进程。
//
// 用法:
//
//	paycached [选项]
//
// 选项:
//
//	-c, --config   配置文件路径 (YAML/JSON，省略时使用内置默认值)
//
// 进程内运行缓存引擎（TTL + LRU + 逻辑时钟）、失效事件维护循环、
// Redis 失效事件接入与按计划的数据源预热；收到 SIGINT/SIGTERM
// 等信号时协调关闭全部子服务。
//
// 退出码:
//
//	0: 正常退出（含信号触发的优雅关闭）
//	1: 运行期错误
//	2: 参数或配置错误
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/omeyang/paycache/pkg/lifecycle/xrun"
)

// 版本信息（可通过 -ldflags 注入，例如:
//
//	go build -ldflags "-X main.Version=1.0.0 -X main.GitCommit=$(git rev-parse --short HEAD) -X main.BuildTime=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
//
// ）。
var (
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildTime = "unknown"
)

func main() {
	os.Exit(run(os.Args))
}

// createApp 创建 CLI 应用。
func createApp() *cli.Command {
	return &cli.Command{
		Name:    "paycached",
		Usage:   "支付网络分析缓存守护进程",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, GitCommit, BuildTime),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "配置文件路径 (YAML/JSON)",
			},
		},
		// 设计决策: 禁止 urfave/cli 直接调用 os.Exit，
		// 由 run() 统一处理退出码映射，确保与文档退出码契约一致。
		ExitErrHandler: func(_ context.Context, _ *cli.Command, err error) {
			if _, ok := err.(cli.ExitCoder); ok {
				fmt.Fprintln(os.Stderr, err)
			}
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			cfg, err := loadConfig(c.String("config"))
			if err != nil {
				return &configError{err: err}
			}
			return runDaemon(ctx, cfg)
		},
	}
}

// configError 标记配置阶段的错误，映射到退出码 2。
type configError struct {
	err error
}

func (e *configError) Error() string { return e.err.Error() }
func (e *configError) Unwrap() error { return e.err }

func run(args []string) int {
	app := createApp()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := app.Run(ctx, args); err != nil {
		// 信号触发的关闭是正常退出
		var sigErr *xrun.SignalError
		if errors.As(err, &sigErr) {
			return 0
		}
		var cfgErr *configError
		if errors.As(err, &cfgErr) {
			fmt.Fprintf(os.Stderr, "配置错误: %v\n", cfgErr)
			return 2
		}
		fmt.Fprintf(os.Stderr, "错误: %v\n", err)
		return 1
	}

	return 0
}

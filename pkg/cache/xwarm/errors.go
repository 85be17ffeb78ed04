package xwarm

import "errors"

// 预定义错误变量
var (
	// ErrNilStore 表示条目仓库为 nil
	ErrNilStore = errors.New("xwarm: store is nil")

	// ErrNoSources 表示未提供任何数据源
	ErrNoSources = errors.New("xwarm: no sources")

	// ErrNilSource 表示数据源列表中含有 nil
	ErrNilSource = errors.New("xwarm: source is nil")

	// ErrNilLoader 表示预热加载器为 nil
	ErrNilLoader = errors.New("xwarm: loader is nil")

	// ErrBadSchedule 表示 cron 表达式无法解析
	ErrBadSchedule = errors.New("xwarm: bad refresh schedule")
)

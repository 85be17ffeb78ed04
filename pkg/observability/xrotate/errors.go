package xrotate

import "errors"

// 包级别错误定义。
var (
	// ErrEmptyFilename 表示未指定日志文件路径。
	ErrEmptyFilename = errors.New("xrotate: filename is required")

	// ErrInvalidMaxSize 表示单文件大小配置越界。
	ErrInvalidMaxSize = errors.New("xrotate: invalid MaxSizeMB")

	// ErrInvalidMaxBackups 表示备份数量配置越界。
	ErrInvalidMaxBackups = errors.New("xrotate: invalid MaxBackups")

	// ErrInvalidMaxAge 表示备份天数配置越界。
	ErrInvalidMaxAge = errors.New("xrotate: invalid MaxAgeDays")

	// ErrNoCleanupPolicy 表示数量与天数清理策略同时关闭。
	ErrNoCleanupPolicy = errors.New("xrotate: no cleanup policy configured")

	// ErrClosed 表示轮转器已关闭。
	ErrClosed = errors.New("xrotate: rotator is closed")
)

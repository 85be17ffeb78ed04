package main

import (
	"fmt"
	"time"

	"github.com/omeyang/paycache/pkg/config/xconf"
)

// Config 是守护进程的全量配置。
type Config struct {
	Log        LogConfig        `koanf:"log"`
	Cache      CacheConfig      `koanf:"cache"`
	Warm       WarmConfig       `koanf:"warm"`
	Redis      RedisConfig      `koanf:"redis"`
	ClickHouse ClickHouseConfig `koanf:"clickhouse"`
	Mongo      MongoConfig      `koanf:"mongo"`
}

// LogConfig 是日志配置。File 为空时输出到 stderr。
type LogConfig struct {
	Level      string `koanf:"level"`
	Format     string `koanf:"format"`
	File       string `koanf:"file"`
	MaxSizeMB  int    `koanf:"max_size_mb"`
	MaxBackups int    `koanf:"max_backups"`
}

// CacheConfig 是缓存引擎配置。
type CacheConfig struct {
	Capacity      int           `koanf:"capacity"`
	DefaultTTL    time.Duration `koanf:"default_ttl"`
	SweepInterval time.Duration `koanf:"sweep_interval"`
	BusBuffer     int           `koanf:"bus_buffer"`
	LoadTimeout   time.Duration `koanf:"load_timeout"`
}

// WarmConfig 是预热配置。Schedule 为空时不做周期刷新。
type WarmConfig struct {
	Schedule string        `koanf:"schedule"`
	Limit    int           `koanf:"limit"`
	KeyTTL   time.Duration `koanf:"key_ttl"`
}

// RedisConfig 是失效事件接入配置。Addr 为空时不启用接入。
type RedisConfig struct {
	Addr     string   `koanf:"addr"`
	Password string   `koanf:"password"`
	DB       int      `koanf:"db"`
	Channels []string `koanf:"channels"`
}

// ClickHouseConfig 是走廊统计预热源配置。Addrs 为空时不启用。
type ClickHouseConfig struct {
	Addrs    []string `koanf:"addrs"`
	Database string   `koanf:"database"`
	Username string   `koanf:"username"`
	Password string   `koanf:"password"`
	Table    string   `koanf:"table"`
}

// MongoConfig 是锚点健康度预热源配置。URI 为空时不启用。
type MongoConfig struct {
	URI        string `koanf:"uri"`
	Database   string `koanf:"database"`
	Collection string `koanf:"collection"`
}

// defaultConfig 返回内置默认配置。
func defaultConfig() *Config {
	return &Config{
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
		Cache: CacheConfig{
			Capacity:      10000,
			DefaultTTL:    5 * time.Minute,
			SweepInterval: time.Minute,
			BusBuffer:     1024,
			LoadTimeout:   30 * time.Second,
		},
		Warm: WarmConfig{
			Schedule: "@every 10m",
			Limit:    100,
			KeyTTL:   10 * time.Minute,
		},
		Mongo: MongoConfig{
			Database:   "paycache",
			Collection: "anchor_health",
		},
	}
}

// loadConfig 读取配置文件并叠加在默认配置之上。
// path 为空时直接返回默认配置。
func loadConfig(path string) (*Config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}

	conf, err := xconf.New(path)
	if err != nil {
		return nil, err
	}
	if err := conf.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return cfg, nil
}

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/v2/mongo"
	mongoopts "go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/omeyang/paycache/pkg/cache/xengine"
	"github.com/omeyang/paycache/pkg/cache/xwarm"
	"github.com/omeyang/paycache/pkg/ingress/xredis"
	"github.com/omeyang/paycache/pkg/lifecycle/xrun"
	"github.com/omeyang/paycache/pkg/observability/xlog"
	"github.com/omeyang/paycache/pkg/observability/xrotate"
	chsource "github.com/omeyang/paycache/pkg/source/xclickhouse"
	mongosource "github.com/omeyang/paycache/pkg/source/xmongo"
)

// buildLogger 按配置构建日志实例。File 为空时输出到 stderr。
func buildLogger(cfg LogConfig) (*slog.Logger, func() error, error) {
	b := xlog.New().
		SetLevelString(cfg.Level).
		SetFormat(cfg.Format)

	if cfg.File != "" {
		var opts []xrotate.Option
		if cfg.MaxSizeMB > 0 {
			opts = append(opts, xrotate.WithMaxSize(cfg.MaxSizeMB))
		}
		if cfg.MaxBackups > 0 {
			opts = append(opts, xrotate.WithMaxBackups(cfg.MaxBackups))
		}
		b = b.SetRotation(cfg.File, opts...)
	}

	return b.Build()
}

// runDaemon 装配并运行缓存守护进程，阻塞直到信号或运行期错误。
func runDaemon(ctx context.Context, cfg *Config) error {
	logger, cleanup, err := buildLogger(cfg.Log)
	if err != nil {
		return &configError{err: err}
	}
	defer func() { _ = cleanup() }()

	// 后进先出释放外部连接
	var cleanups []func()
	defer func() {
		for i := len(cleanups) - 1; i >= 0; i-- {
			cleanups[i]()
		}
	}()

	engineOpts := []xengine.Option[json.RawMessage]{
		xengine.WithLogger[json.RawMessage](logger),
	}
	if cfg.Cache.LoadTimeout > 0 {
		engineOpts = append(engineOpts, xengine.WithLoadTimeout[json.RawMessage](cfg.Cache.LoadTimeout))
	}

	var sources []xwarm.Source[json.RawMessage]

	if len(cfg.ClickHouse.Addrs) > 0 {
		conn, err := clickhouse.Open(&clickhouse.Options{
			Addr: cfg.ClickHouse.Addrs,
			Auth: clickhouse.Auth{
				Database: cfg.ClickHouse.Database,
				Username: cfg.ClickHouse.Username,
				Password: cfg.ClickHouse.Password,
			},
		})
		if err != nil {
			return fmt.Errorf("connect clickhouse: %w", err)
		}
		cleanups = append(cleanups, func() { _ = conn.Close() })

		chOpts := []chsource.Option{chsource.WithLogger(logger)}
		if cfg.ClickHouse.Table != "" {
			chOpts = append(chOpts, chsource.WithTable(cfg.ClickHouse.Table))
		}
		if cfg.Warm.KeyTTL > 0 {
			chOpts = append(chOpts, chsource.WithKeyTTL(cfg.Warm.KeyTTL))
		}
		src, err := chsource.NewCorridorSource(conn, chOpts...)
		if err != nil {
			return &configError{err: err}
		}
		sources = append(sources, src)
	}

	if cfg.Mongo.URI != "" {
		client, err := mongo.Connect(mongoopts.Client().ApplyURI(cfg.Mongo.URI))
		if err != nil {
			return fmt.Errorf("connect mongo: %w", err)
		}
		cleanups = append(cleanups, func() { _ = client.Disconnect(context.Background()) })

		coll := client.Database(cfg.Mongo.Database).Collection(cfg.Mongo.Collection)
		mOpts := []mongosource.Option{mongosource.WithLogger(logger)}
		if cfg.Warm.KeyTTL > 0 {
			mOpts = append(mOpts, mongosource.WithKeyTTL(cfg.Warm.KeyTTL))
		}
		src, err := mongosource.NewAnchorSource(coll, mOpts...)
		if err != nil {
			return &configError{err: err}
		}
		sources = append(sources, src)
	}

	if len(sources) > 0 {
		engineOpts = append(engineOpts, xengine.WithSources(sources...))
		if cfg.Warm.Limit > 0 {
			engineOpts = append(engineOpts,
				xengine.WithWarmOptions(xwarm.WithLimit[json.RawMessage](cfg.Warm.Limit)))
		}
	}

	engine, err := xengine.New[json.RawMessage](xengine.Config{
		Capacity:      cfg.Cache.Capacity,
		DefaultTTL:    cfg.Cache.DefaultTTL,
		SweepInterval: cfg.Cache.SweepInterval,
		BusBuffer:     cfg.Cache.BusBuffer,
	}, engineOpts...)
	if err != nil {
		return &configError{err: err}
	}
	defer engine.Close()

	services := []xrun.Service{xrun.ServiceFunc(engine.Run)}

	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		cleanups = append(cleanups, func() { _ = rdb.Close() })

		ingOpts := []xredis.Option{xredis.WithLogger(logger)}
		if len(cfg.Redis.Channels) > 0 {
			ingOpts = append(ingOpts, xredis.WithChannels(cfg.Redis.Channels...))
		}
		ingress, err := xredis.New(rdb, engine, ingOpts...)
		if err != nil {
			return err
		}
		services = append(services, xrun.ServiceFunc(ingress.Run))
	}

	if warmer := engine.Warmer(); warmer != nil && cfg.Warm.Schedule != "" {
		refresher, err := xwarm.NewRefresher(warmer,
			xwarm.WithSchedule[json.RawMessage](cfg.Warm.Schedule),
			xwarm.WithRefreshLogger[json.RawMessage](logger))
		if err != nil {
			return &configError{err: err}
		}
		services = append(services, xrun.ServiceFunc(refresher.Run))
	}

	logger.Info("paycached starting",
		slog.String("version", Version),
		slog.Int("capacity", cfg.Cache.Capacity),
		slog.Int("sources", len(sources)),
		slog.Bool("ingress", cfg.Redis.Addr != ""))

	return xrun.RunServicesWithOptions(ctx,
		[]xrun.Option{xrun.WithLogger(logger), xrun.WithName("paycached")},
		services...)
}

package xstats

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

const defaultInstrumentationName = "github.com/omeyang/paycache/xstats"

// 指标名称。计数器导出为单调 observable counter，容量和命中率为 gauge。
const (
	metricHits          = "paycache.hits"
	metricMisses        = "paycache.misses"
	metricInvalidations = "paycache.invalidations"
	metricEvictions     = "paycache.evictions"
	metricWarmUps       = "paycache.warm_ups"
	metricSize          = "paycache.size"
	metricHitRate       = "paycache.hit_rate"
)

type otelConfig struct {
	instrumentationName string
	meterProvider       metric.MeterProvider
}

// Option 定义 OTel 桥接的配置选项。
type Option func(*otelConfig)

// WithInstrumentationName 设置 OTel instrumentation 名称。
func WithInstrumentationName(name string) Option {
	return func(cfg *otelConfig) {
		if name != "" {
			cfg.instrumentationName = name
		}
	}
}

// WithMeterProvider 设置 MeterProvider。
// 默认使用 otel.GetMeterProvider()。
func WithMeterProvider(provider metric.MeterProvider) Option {
	return func(cfg *otelConfig) {
		if provider != nil {
			cfg.meterProvider = provider
		}
	}
}

// RegisterOTel 把 Recorder 桥接为 OpenTelemetry 异步指标。
//
// size 回调在每个采集周期被调用以观测当前容量（通常为仓库的 Len）。
// 返回的 Registration 的 Unregister 用于在关闭时解除采集回调。
//
// 设计决策: 使用 observable 指标而非在热路径同步打点——
// Get/Set 只付出一次原子递增的代价，导出频率由 Reader 决定。
func RegisterOTel(rec *Recorder, size func() int, opts ...Option) (metric.Registration, error) {
	if rec == nil {
		return nil, ErrNilRecorder
	}
	if size == nil {
		return nil, ErrNilSizeFunc
	}

	cfg := &otelConfig{
		instrumentationName: defaultInstrumentationName,
		meterProvider:       otel.GetMeterProvider(),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	meter := cfg.meterProvider.Meter(cfg.instrumentationName)

	hits, err := meter.Int64ObservableCounter(metricHits,
		metric.WithDescription("cache hits"), metric.WithUnit("1"))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCreateInstrument, err)
	}
	misses, err := meter.Int64ObservableCounter(metricMisses,
		metric.WithDescription("cache misses"), metric.WithUnit("1"))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCreateInstrument, err)
	}
	invalidations, err := meter.Int64ObservableCounter(metricInvalidations,
		metric.WithDescription("entries removed by invalidation"), metric.WithUnit("1"))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCreateInstrument, err)
	}
	evictions, err := meter.Int64ObservableCounter(metricEvictions,
		metric.WithDescription("entries removed by LRU eviction"), metric.WithUnit("1"))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCreateInstrument, err)
	}
	warmUps, err := meter.Int64ObservableCounter(metricWarmUps,
		metric.WithDescription("entries inserted by warming"), metric.WithUnit("1"))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCreateInstrument, err)
	}
	currentSize, err := meter.Int64ObservableGauge(metricSize,
		metric.WithDescription("current entry count"), metric.WithUnit("1"))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCreateInstrument, err)
	}
	hitRate, err := meter.Float64ObservableGauge(metricHitRate,
		metric.WithDescription("hit rate, 0 when no operations"), metric.WithUnit("1"))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCreateInstrument, err)
	}

	reg, err := meter.RegisterCallback(
		func(_ context.Context, o metric.Observer) error {
			snap := rec.Snapshot(size())
			o.ObserveInt64(hits, int64(snap.Hits))
			o.ObserveInt64(misses, int64(snap.Misses))
			o.ObserveInt64(invalidations, int64(snap.Invalidations))
			o.ObserveInt64(evictions, int64(snap.Evictions))
			o.ObserveInt64(warmUps, int64(snap.WarmUps))
			o.ObserveInt64(currentSize, int64(snap.CurrentSize))
			o.ObserveFloat64(hitRate, snap.HitRate)
			return nil
		},
		hits, misses, invalidations, evictions, warmUps, currentSize, hitRate,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRegisterCallback, err)
	}
	return reg, nil
}

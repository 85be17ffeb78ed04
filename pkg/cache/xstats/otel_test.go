package xstats

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func TestRegisterOTel_NilArgs(t *testing.T) {
	_, err := RegisterOTel(nil, func() int { return 0 })
	assert.True(t, errors.Is(err, ErrNilRecorder))

	_, err = RegisterOTel(NewRecorder(), nil)
	assert.True(t, errors.Is(err, ErrNilSizeFunc))
}

func TestRegisterOTel_Collect(t *testing.T) {
	rec := NewRecorder()
	rec.Hit()
	rec.Hit()
	rec.Miss()
	rec.AddEvictions(4)

	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	defer func() { _ = provider.Shutdown(context.Background()) }()

	reg, err := RegisterOTel(rec, func() int { return 11 }, WithMeterProvider(provider))
	require.NoError(t, err)
	defer func() { _ = reg.Unregister() }()

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))
	require.Len(t, rm.ScopeMetrics, 1)

	got := make(map[string]any)
	for _, m := range rm.ScopeMetrics[0].Metrics {
		switch data := m.Data.(type) {
		case metricdata.Sum[int64]:
			require.Len(t, data.DataPoints, 1)
			got[m.Name] = data.DataPoints[0].Value
		case metricdata.Gauge[int64]:
			require.Len(t, data.DataPoints, 1)
			got[m.Name] = data.DataPoints[0].Value
		case metricdata.Gauge[float64]:
			require.Len(t, data.DataPoints, 1)
			got[m.Name] = data.DataPoints[0].Value
		}
	}

	assert.Equal(t, int64(2), got[metricHits])
	assert.Equal(t, int64(1), got[metricMisses])
	assert.Equal(t, int64(4), got[metricEvictions])
	assert.Equal(t, int64(11), got[metricSize])
	assert.InDelta(t, 2.0/3.0, got[metricHitRate], 1e-9)
}

func TestRegisterOTel_InstrumentationName(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	defer func() { _ = provider.Shutdown(context.Background()) }()

	reg, err := RegisterOTel(NewRecorder(), func() int { return 0 },
		WithMeterProvider(provider),
		WithInstrumentationName("paycache-test"),
	)
	require.NoError(t, err)
	defer func() { _ = reg.Unregister() }()

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))
	require.Len(t, rm.ScopeMetrics, 1)
	assert.Equal(t, "paycache-test", rm.ScopeMetrics[0].Scope.Name)
}

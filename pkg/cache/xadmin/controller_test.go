package xadmin

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omeyang/paycache/pkg/cache/xbus"
	"github.com/omeyang/paycache/pkg/cache/xevent"
	"github.com/omeyang/paycache/pkg/cache/xstats"
	"github.com/omeyang/paycache/pkg/cache/xstore"
)

func newTestController(t *testing.T) (*Controller, *xstore.Store[string], *xbus.Bus, *xstats.Recorder) {
	t.Helper()

	stats := xstats.NewRecorder()
	store, err := xstore.New[string](xstore.Config{Capacity: 100},
		xstore.WithRecorder[string](stats))
	require.NoError(t, err)

	bus := xbus.New()
	t.Cleanup(bus.Close)

	ctrl, err := New(store, bus, stats)
	require.NoError(t, err)
	return ctrl, store, bus, stats
}

func TestNew_Validation(t *testing.T) {
	stats := xstats.NewRecorder()
	store, err := xstore.New[string](xstore.Config{Capacity: 100})
	require.NoError(t, err)
	bus := xbus.New()
	defer bus.Close()

	_, err = New(nil, bus, stats)
	assert.ErrorIs(t, err, ErrNilStore)

	_, err = New(store, nil, stats)
	assert.ErrorIs(t, err, ErrNilBus)

	_, err = New(store, bus, nil)
	assert.ErrorIs(t, err, ErrNilStats)
}

func TestController_Metrics(t *testing.T) {
	ctrl, store, _, _ := newTestController(t)

	store.Set("a", "1")
	store.Set("b", "2")
	store.Get("a")
	store.Get("missing")

	snap := ctrl.Metrics()
	assert.Equal(t, uint64(1), snap.Hits)
	assert.Equal(t, uint64(1), snap.Misses)
	assert.Equal(t, 2, snap.CurrentSize)
	assert.InDelta(t, 0.5, snap.HitRate, 1e-9)
}

func TestController_InvalidatePattern(t *testing.T) {
	ctrl, _, bus, _ := newTestController(t)

	events, cancel := bus.Subscribe()
	defer cancel()

	require.NoError(t, ctrl.InvalidatePattern("corridor:*"))

	select {
	case ev := <-events:
		assert.Equal(t, xevent.AdminInvalidate{Pattern: "corridor:*"}, ev)
	case <-time.After(time.Second):
		t.Fatal("invalidation event not published")
	}
}

func TestController_InvalidatePattern_Rejected(t *testing.T) {
	ctrl, _, bus, _ := newTestController(t)

	events, cancel := bus.Subscribe()
	defer cancel()

	assert.ErrorIs(t, ctrl.InvalidatePattern(""), xevent.ErrEmptyPattern)
	assert.ErrorIs(t, ctrl.InvalidatePattern("corridor:["), xevent.ErrBadPattern)

	// 非法模式在边界被拒绝，不产生任何事件。
	select {
	case ev := <-events:
		t.Fatalf("unexpected event published: %v", ev)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestController_FlushAll(t *testing.T) {
	ctrl, store, _, _ := newTestController(t)

	store.Set("a", "1")
	store.Set("b", "2")

	// 直达仓库，返回时已生效。
	ctrl.FlushAll()
	assert.Equal(t, 0, store.Len())
}

func TestController_EvictToSize(t *testing.T) {
	ctrl, _, bus, _ := newTestController(t)

	events, cancel := bus.Subscribe()
	defer cancel()

	assert.ErrorIs(t, ctrl.EvictToSize(-1), ErrInvalidTarget)

	require.NoError(t, ctrl.EvictToSize(10))
	select {
	case ev := <-events:
		assert.Equal(t, xevent.MemoryPressure{TargetSize: 10}, ev)
	case <-time.After(time.Second):
		t.Fatal("memory pressure event not published")
	}
}

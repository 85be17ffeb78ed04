package xstore

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omeyang/paycache/pkg/cache/xevent"
)

// countingRecorder 记录仓库上报的指标事件。
type countingRecorder struct {
	hits      atomic.Int64
	misses    atomic.Int64
	evictions atomic.Int64
}

func (r *countingRecorder) Hit()               { r.hits.Add(1) }
func (r *countingRecorder) Miss()              { r.misses.Add(1) }
func (r *countingRecorder) AddEvictions(n int) { r.evictions.Add(int64(n)) }

func TestNew(t *testing.T) {
	t.Run("valid config", func(t *testing.T) {
		s, err := New[string](Config{Capacity: 10, DefaultTTL: time.Minute})
		require.NoError(t, err)
		assert.NotNil(t, s)
	})

	t.Run("unbounded zero capacity", func(t *testing.T) {
		s, err := New[string](Config{})
		require.NoError(t, err)
		assert.NotNil(t, s)
	})

	t.Run("negative capacity", func(t *testing.T) {
		_, err := New[string](Config{Capacity: -1})
		assert.True(t, errors.Is(err, ErrInvalidCapacity))
	})

	t.Run("negative TTL", func(t *testing.T) {
		_, err := New[string](Config{DefaultTTL: -time.Second})
		assert.True(t, errors.Is(err, ErrInvalidTTL))
	})
}

func TestStore_SetAndGet(t *testing.T) {
	s, err := New[string](Config{Capacity: 10, DefaultTTL: time.Minute})
	require.NoError(t, err)

	t.Run("set and get", func(t *testing.T) {
		s.Set("corridor:usdc-xlm:stats", "v1")

		v, ok := s.Get("corridor:usdc-xlm:stats")
		require.True(t, ok)
		assert.Equal(t, "v1", v)
	})

	t.Run("miss on absent key", func(t *testing.T) {
		_, ok := s.Get("corridor:none:stats")
		assert.False(t, ok)
	})

	t.Run("full replacement", func(t *testing.T) {
		s.Set("k", "old")
		s.Set("k", "new")

		v, ok := s.Get("k")
		require.True(t, ok)
		assert.Equal(t, "new", v)
	})
}

func TestStore_LazyExpiry(t *testing.T) {
	rec := &countingRecorder{}
	s, err := New[int](Config{Capacity: 10}, WithRecorder[int](rec))
	require.NoError(t, err)

	s.SetTTL("short", 1, time.Millisecond)
	time.Sleep(5 * time.Millisecond)

	// 清扫尚未运行：条目物理存在但绝不从 Get 返回。
	_, ok := s.Get("short")
	assert.False(t, ok)
	assert.Equal(t, int64(1), rec.misses.Load())
	assert.Equal(t, 1, s.Len())

	removed := s.SweepExpired(time.Now())
	assert.Equal(t, 1, removed)
	assert.Equal(t, 0, s.Len())
}

func TestStore_NoExpiryWithZeroTTL(t *testing.T) {
	s, err := New[int](Config{Capacity: 10})
	require.NoError(t, err)

	s.SetTTL("immortal", 42, 0)
	assert.Equal(t, 0, s.SweepExpired(time.Now().Add(24*time.Hour)))

	v, ok := s.Get("immortal")
	require.True(t, ok)
	assert.Equal(t, 42, v)
}

func TestStore_LRUOverflow(t *testing.T) {
	// 规约场景：容量 2，写入 A、B，Get(A) 提升 recency，
	// 写入 D 后被淘汰的必须是 B。
	rec := &countingRecorder{}
	s, err := New[string](Config{Capacity: 2}, WithRecorder[string](rec))
	require.NoError(t, err)

	s.Set("a", "A")
	s.Set("b", "B")

	_, ok := s.Get("a")
	require.True(t, ok)

	s.Set("d", "D")

	assert.Equal(t, 2, s.Len())
	assert.Equal(t, int64(1), rec.evictions.Load())

	_, ok = s.Get("b")
	assert.False(t, ok, "b was the least recently used entry")
	_, ok = s.Get("a")
	assert.True(t, ok)
	_, ok = s.Get("d")
	assert.True(t, ok)
}

func TestStore_DeleteIdempotent(t *testing.T) {
	s, err := New[int](Config{})
	require.NoError(t, err)

	s.Set("k", 1)
	s.Delete("k")
	s.Delete("k") // 幂等：不存在时空操作

	assert.Equal(t, 0, s.Len())
}

func TestStore_DeleteMatching(t *testing.T) {
	s, err := New[int](Config{})
	require.NoError(t, err)

	s.Set("corridor:usdc-xlm:stats", 1)
	s.Set("corridor:usdc-xlm:volume", 2)
	s.Set("corridor:usdc-eur:stats", 3)
	s.Set("anchor:anchor-a:health", 4)

	removed := s.DeleteMatching(xevent.PrefixPredicate("corridor:usdc-xlm:"))
	assert.Equal(t, 2, removed)

	_, ok := s.Get("corridor:usdc-eur:stats")
	assert.True(t, ok, "other corridors must survive")
	_, ok = s.Get("anchor:anchor-a:health")
	assert.True(t, ok)

	assert.Equal(t, 0, s.DeleteMatching(nil))
}

func TestStore_Flush(t *testing.T) {
	s, err := New[int](Config{})
	require.NoError(t, err)

	for i := range 50 {
		s.Set(fmt.Sprintf("k%02d", i), i)
	}
	s.Flush()
	assert.Equal(t, 0, s.Len())
}

func TestStore_Keys(t *testing.T) {
	s, err := New[int](Config{})
	require.NoError(t, err)

	s.Set("b", 2)
	s.Set("a", 1)
	s.Set("c", 3)

	assert.Equal(t, []string{"a", "b", "c"}, s.Keys())
}

func TestStore_ConcurrentSameKeySet(t *testing.T) {
	s, err := New[string](Config{Capacity: 10})
	require.NoError(t, err)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for range 1000 {
			s.Set("k", "v1")
		}
	}()
	go func() {
		defer wg.Done()
		for range 1000 {
			s.Set("k", "v2")
		}
	}()
	wg.Wait()

	v, ok := s.Get("k")
	require.True(t, ok)
	assert.Contains(t, []string{"v1", "v2"}, v)
	assert.Equal(t, 1, s.Len(), "no duplicate keys")
}

func TestStore_ConcurrentMixed(t *testing.T) {
	s, err := New[int](Config{Capacity: 64})
	require.NoError(t, err)

	var wg sync.WaitGroup
	for g := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range 500 {
				key := fmt.Sprintf("k%d", (g*500+i)%100)
				switch i % 3 {
				case 0:
					s.Set(key, i)
				case 1:
					s.Get(key)
				default:
					s.Delete(key)
				}
			}
		}()
	}
	wg.Wait()

	assert.LessOrEqual(t, s.Len(), 64)
}

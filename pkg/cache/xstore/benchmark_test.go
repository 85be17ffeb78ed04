package xstore

import (
	"fmt"
	"testing"
	"time"
)

func BenchmarkStore_Get(b *testing.B) {
	s, _ := New[int](Config{Capacity: 1 << 16, DefaultTTL: time.Hour})
	for i := range 1024 {
		s.Set(fmt.Sprintf("k%d", i), i)
	}

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		i := 0
		for pb.Next() {
			s.Get(fmt.Sprintf("k%d", i%1024))
			i++
		}
	})
}

func BenchmarkStore_Set(b *testing.B) {
	s, _ := New[int](Config{Capacity: 1 << 16, DefaultTTL: time.Hour})

	b.ResetTimer()
	for i := 0; b.Loop(); i++ {
		s.Set(fmt.Sprintf("k%d", i%4096), i)
	}
}

func BenchmarkStore_SetWithEviction(b *testing.B) {
	// 容量远小于键空间，每次 Set 都可能触发 O(n) 淘汰扫描。
	s, _ := New[int](Config{Capacity: 128, DefaultTTL: time.Hour})

	b.ResetTimer()
	for i := 0; b.Loop(); i++ {
		s.Set(fmt.Sprintf("k%d", i), i)
	}
}

func BenchmarkStore_DeleteMatching(b *testing.B) {
	s, _ := New[int](Config{DefaultTTL: time.Hour})

	b.ResetTimer()
	for b.Loop() {
		b.StopTimer()
		for i := range 512 {
			s.Set(fmt.Sprintf("corridor:usdc-xlm:%d", i), i)
		}
		b.StartTimer()
		s.DeleteMatching(func(key string) bool { return true })
	}
}

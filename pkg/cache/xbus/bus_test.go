package xbus

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omeyang/paycache/pkg/cache/xevent"
)

func TestBus_PublishWithoutSubscribers(t *testing.T) {
	b := New()
	defer b.Close()

	done := make(chan struct{})
	go func() {
		defer close(done)
		for range 1000 {
			b.Publish(xevent.TTLSweep{})
		}
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("publish must not block without subscribers")
	}
}

func TestBus_FIFOPerSubscriber(t *testing.T) {
	b := New(WithBuffer(16))
	defer b.Close()

	events, cancel := b.Subscribe()
	defer cancel()

	published := []xevent.Event{
		xevent.PaymentDetected{CorridorID: "usdc-xlm"},
		xevent.AnchorStatusChanged{AnchorID: "anchor-a"},
		xevent.AdminInvalidate{Pattern: "*"},
		xevent.MemoryPressure{TargetSize: 5},
	}
	for _, ev := range published {
		b.Publish(ev)
	}

	for i, want := range published {
		select {
		case got := <-events:
			assert.Equal(t, want, got, "event %d out of order", i)
		case <-time.After(time.Second):
			t.Fatalf("timed out waiting for event %d", i)
		}
	}
}

func TestBus_Broadcast(t *testing.T) {
	b := New()
	defer b.Close()

	ch1, cancel1 := b.Subscribe()
	defer cancel1()
	ch2, cancel2 := b.Subscribe()
	defer cancel2()

	b.Publish(xevent.TTLSweep{})

	for _, ch := range []<-chan xevent.Event{ch1, ch2} {
		select {
		case ev := <-ch:
			assert.Equal(t, xevent.TTLSweep{}, ev)
		case <-time.After(time.Second):
			t.Fatal("subscriber did not receive broadcast")
		}
	}
}

func TestBus_DropOldestOnFull(t *testing.T) {
	b := New(WithBuffer(2))
	defer b.Close()

	events, cancel := b.Subscribe()
	defer cancel()

	// 订阅者不消费：第三个事件挤掉最旧的第一个。
	b.Publish(xevent.PaymentDetected{CorridorID: "c1"})
	b.Publish(xevent.PaymentDetected{CorridorID: "c2"})
	b.Publish(xevent.PaymentDetected{CorridorID: "c3"})

	assert.Equal(t, uint64(1), b.Dropped())

	got := []xevent.Event{<-events, <-events}
	assert.Equal(t, []xevent.Event{
		xevent.PaymentDetected{CorridorID: "c2"},
		xevent.PaymentDetected{CorridorID: "c3"},
	}, got)
}

func TestBus_CancelStopsDelivery(t *testing.T) {
	b := New()
	defer b.Close()

	events, cancel := b.Subscribe()
	cancel()
	cancel() // 幂等

	_, open := <-events
	assert.False(t, open, "canceled subscription channel must be closed")

	// 取消后的发布不会 panic。
	b.Publish(xevent.TTLSweep{})
}

func TestBus_Close(t *testing.T) {
	b := New()
	events, cancel := b.Subscribe()
	defer cancel()

	b.Close()
	b.Close() // 幂等

	_, open := <-events
	assert.False(t, open)

	// 关闭后发布为空操作。
	b.Publish(xevent.TTLSweep{})

	// 关闭后订阅得到已关闭通道。
	late, lateCancel := b.Subscribe()
	defer lateCancel()
	_, open = <-late
	assert.False(t, open)
}

func TestBus_ConcurrentPublishers(t *testing.T) {
	b := New(WithBuffer(4096))
	defer b.Close()

	events, cancel := b.Subscribe()
	defer cancel()

	const publishers = 8
	const perPublisher = 100

	var wg sync.WaitGroup
	for p := range publishers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range perPublisher {
				b.Publish(xevent.MemoryPressure{TargetSize: p*perPublisher + i})
			}
		}()
	}
	wg.Wait()

	require.Equal(t, uint64(0), b.Dropped())

	// 按发布方分组校验 FIFO：每个发布方的事件序列必须保序。
	next := make(map[int]int)
	for range publishers * perPublisher {
		ev := (<-events).(xevent.MemoryPressure)
		p := ev.TargetSize / perPublisher
		assert.Equal(t, next[p], ev.TargetSize%perPublisher, "publisher %d out of order", p)
		next[p]++
	}
}

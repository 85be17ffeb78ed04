package xbus

import (
	"sync"
	"sync/atomic"

	"github.com/omeyang/paycache/pkg/cache/xevent"
)

// DefaultBuffer 是订阅者缓冲的默认容量。
const DefaultBuffer = 64

// Bus 是失效事件广播总线。
// 必须通过 [New] 创建，零值不可用。所有方法并发安全。
type Bus struct {
	mu     sync.Mutex
	subs   map[uint64]chan xevent.Event
	nextID uint64
	closed bool

	buffer  int
	dropped atomic.Uint64
}

// Option 定义总线可选配置函数类型。
type Option func(*Bus)

// WithBuffer 设置每个订阅者的缓冲容量。
// n <= 0 被静默忽略，使用 DefaultBuffer。
func WithBuffer(n int) Option {
	return func(b *Bus) {
		if n > 0 {
			b.buffer = n
		}
	}
}

// New 创建广播总线。
func New(opts ...Option) *Bus {
	b := &Bus{
		subs:   make(map[uint64]chan xevent.Event),
		buffer: DefaultBuffer,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(b)
		}
	}
	return b
}

// Publish 向所有订阅者广播事件。从不阻塞：
// 订阅者缓冲满时丢弃其最旧的事件为新事件腾位。
// nil 事件和关闭后的发布均为空操作。
func (b *Bus) Publish(ev xevent.Event) {
	if ev == nil {
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}

	for _, ch := range b.subs {
		select {
		case ch <- ev:
			continue
		default:
		}
		// 缓冲满：丢最旧的一个再投递。持锁期间没有并发生产者，
		// 腾位后的第二次投递只会与消费者竞争，失败意味着消费者
		// 恰好清空了缓冲，此时直接投递必然成功。
		select {
		case <-ch:
			b.dropped.Add(1)
		default:
		}
		select {
		case ch <- ev:
		default:
			b.dropped.Add(1)
		}
	}
}

// Subscribe 注册一个订阅者，返回事件通道和取消函数。
// 总线关闭后订阅通道会被关闭；取消函数幂等。
// 总线已关闭时返回已关闭的通道。
func (b *Bus) Subscribe() (<-chan xevent.Event, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	ch := make(chan xevent.Event, b.buffer)
	if b.closed {
		close(ch)
		return ch, func() {}
	}

	id := b.nextID
	b.nextID++
	b.subs[id] = ch

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			if _, ok := b.subs[id]; ok {
				delete(b.subs, id)
				close(ch)
			}
		})
	}
	return ch, cancel
}

// Dropped 返回因订阅者缓冲满而被丢弃的事件总数。
func (b *Bus) Dropped() uint64 {
	return b.dropped.Load()
}

// Close 关闭总线并关闭全部订阅通道。幂等。
func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}
	b.closed = true
	for id, ch := range b.subs {
		delete(b.subs, id)
		close(ch)
	}
}

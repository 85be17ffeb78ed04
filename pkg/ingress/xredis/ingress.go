package xredis

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/omeyang/paycache/pkg/cache/xevent"
)

// DefaultChannel 是默认订阅的 Redis 频道。
const DefaultChannel = "paycache:invalidations"

// 信封 type 字段的取值。
const (
	typePaymentDetected     = "payment_detected"
	typeAnchorStatusChanged = "anchor_status_changed"
	typeAdminInvalidate     = "admin_invalidate"
)

// envelope 是协作方发布的事件信封。
type envelope struct {
	ID         string `json:"id"`
	Type       string `json:"type"`
	CorridorID string `json:"corridor_id,omitempty"`
	AnchorID   string `json:"anchor_id,omitempty"`
	Pattern    string `json:"pattern,omitempty"`
}

// Publisher 定义事件投递能力，*xbus.Bus 满足该接口。
type Publisher interface {
	Publish(ev xevent.Event)
}

// Ingress 订阅 Redis 频道并把信封转为进程内失效事件。
type Ingress struct {
	rdb      redis.UniversalClient
	bus      Publisher
	channels []string
	logger   *slog.Logger
}

// Option 定义接入端的配置选项
type Option func(*Ingress)

// WithChannels 设置订阅的频道列表。空列表被忽略，保留默认频道。
func WithChannels(channels ...string) Option {
	return func(i *Ingress) {
		if len(channels) > 0 {
			i.channels = channels
		}
	}
}

// WithLogger 设置日志记录器。nil 被忽略。
func WithLogger(logger *slog.Logger) Option {
	return func(i *Ingress) {
		if logger != nil {
			i.logger = logger
		}
	}
}

// New 创建 Redis 事件接入端。rdb 与 bus 不可为 nil。
func New(rdb redis.UniversalClient, bus Publisher, opts ...Option) (*Ingress, error) {
	if rdb == nil {
		return nil, ErrNilClient
	}
	if bus == nil {
		return nil, ErrNilBus
	}

	i := &Ingress{
		rdb:      rdb,
		bus:      bus,
		channels: []string{DefaultChannel},
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(i)
	}
	return i, nil
}

// Run 订阅频道并转发事件，直至 ctx 取消。
// 畸形消息记录日志后跳过，订阅本身不因单条消息失败而中断。
func (i *Ingress) Run(ctx context.Context) error {
	sub := i.rdb.Subscribe(ctx, i.channels...)
	defer sub.Close()

	// 确认订阅建立后再进入收包循环，避免启动窗口丢消息。
	if _, err := sub.Receive(ctx); err != nil {
		return fmt.Errorf("xredis: subscribe failed: %w", err)
	}

	i.logger.Info("redis ingress started",
		slog.Any("channels", i.channels))

	msgs := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			i.logger.Info("redis ingress stopped")
			return ctx.Err()
		case msg, ok := <-msgs:
			if !ok {
				i.logger.Info("redis ingress stopped: subscription closed")
				return nil
			}

			ev, id, err := decode([]byte(msg.Payload))
			if err != nil {
				i.logger.Warn("invalidation envelope dropped",
					slog.String("channel", msg.Channel),
					slog.Any("error", err))
				continue
			}

			i.bus.Publish(ev)
			i.logger.Debug("invalidation event forwarded",
				slog.String("event_id", id),
				slog.String("kind", ev.EventKind().String()))
		}
	}
}

// decode 把信封 JSON 解码为类型化事件，返回事件与日志关联 ID。
// 信封缺 id 时本地生成 UUID。
func decode(payload []byte) (xevent.Event, string, error) {
	var env envelope
	if err := json.Unmarshal(payload, &env); err != nil {
		return nil, "", fmt.Errorf("%w: %w", ErrBadEnvelope, err)
	}

	id := env.ID
	if id == "" {
		id = uuid.NewString()
	}

	switch env.Type {
	case typePaymentDetected:
		if env.CorridorID == "" {
			return nil, id, fmt.Errorf("%w: corridor_id", ErrMissingField)
		}
		return xevent.PaymentDetected{CorridorID: env.CorridorID}, id, nil
	case typeAnchorStatusChanged:
		if env.AnchorID == "" {
			return nil, id, fmt.Errorf("%w: anchor_id", ErrMissingField)
		}
		return xevent.AnchorStatusChanged{AnchorID: env.AnchorID}, id, nil
	case typeAdminInvalidate:
		if err := xevent.ValidatePattern(env.Pattern); err != nil {
			return nil, id, err
		}
		return xevent.AdminInvalidate{Pattern: env.Pattern}, id, nil
	default:
		return nil, id, fmt.Errorf("%w: %q", ErrUnknownType, env.Type)
	}
}

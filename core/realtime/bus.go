package realtime

import (
	"context"
	"encoding/json"

	"road_watch/core/logger"

	"github.com/go-redis/redis/v8"
)

// DefaultChannel là tên kênh redis pub/sub cho thông báo
const DefaultChannel = "road_watch:notifications"

// busEnvelope là message trao đổi qua redis giữa các instance
type busEnvelope struct {
	UserIDs []string `json:"userIds"`
	Event   Event    `json:"event"`
}

// Bus fan-out event thông báo tới các instance khác qua redis pub/sub.
// Khi client là nil (chạy một instance, không có redis), Bus phát thẳng
// vào hub trong process.
type Bus struct {
	client  *redis.Client
	hub     *Hub
	channel string
}

// NewBus tạo bus mới. client có thể là nil.
func NewBus(client *redis.Client, hub *Hub) *Bus {
	return &Bus{
		client:  client,
		hub:     hub,
		channel: DefaultChannel,
	}
}

// Publish đẩy event tới các user nhận.
// Có redis: publish lên kênh, vòng Run của chính instance này (và các
// instance khác) sẽ nhận lại message và giao vào hub - tránh giao đúp.
// Không có redis: giao thẳng vào hub.
func (b *Bus) Publish(ctx context.Context, userIDs []string, event Event) error {
	if b.client == nil {
		for _, userID := range userIDs {
			b.hub.Deliver(userID, event)
		}
		return nil
	}

	payload, err := json.Marshal(busEnvelope{UserIDs: userIDs, Event: event})
	if err != nil {
		return err
	}
	return b.client.Publish(ctx, b.channel, payload).Err()
}

// Run subscribe kênh redis và giao các event nhận được vào hub.
// Chạy trong goroutine riêng, kết thúc khi ctx bị cancel.
// Không có redis thì không có gì để chạy.
func (b *Bus) Run(ctx context.Context) {
	if b.client == nil {
		return
	}

	sub := b.client.Subscribe(ctx, b.channel)
	defer sub.Close()

	log := logger.GetAppLogger()
	log.Infof("Notification bus subscribed to channel %s", b.channel)

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			var envelope busEnvelope
			if err := json.Unmarshal([]byte(msg.Payload), &envelope); err != nil {
				log.WithError(err).Warn("Dropping malformed bus message")
				continue
			}
			for _, userID := range envelope.UserIDs {
				b.hub.Deliver(userID, envelope.Event)
			}
		}
	}
}

package pubsub

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	domain "agencydesk/internal/domain/notification"
	"agencydesk/internal/shared/logger"
)

// NotificationEvent is the payload published for each new notification.
type NotificationEvent struct {
	Notification domain.Notification `json:"notification"`
	// InstanceID identifies the publishing process.
	InstanceID string `json:"instance_id"`
}

// RedisNotificationBus publishes new notifications on a Redis channel and lets
// other processes follow them. It is a notification sink.
type RedisNotificationBus struct {
	client     *redis.Client
	channel    string
	logger     logger.Interface
	instanceID string
}

func NewRedisNotificationBus(client *redis.Client, channel string, log logger.Interface) *RedisNotificationBus {
	return &RedisNotificationBus{
		client:     client,
		channel:    channel,
		logger:     log.With("component", "pubsub.notifications"),
		instanceID: uuid.NewString(),
	}
}

func (b *RedisNotificationBus) Name() string { return "redis" }

// InstanceID identifies events this process published.
func (b *RedisNotificationBus) InstanceID() string { return b.instanceID }

// Forward relays events published by other instances to sink until ctx is
// done. Own events are skipped since the local center already delivered them.
func (b *RedisNotificationBus) Forward(ctx context.Context, sink interface {
	Deliver(context.Context, domain.Notification) error
}) error {
	return b.Subscribe(ctx, func(e NotificationEvent) {
		if e.InstanceID == b.instanceID {
			return
		}
		if err := sink.Deliver(ctx, e.Notification); err != nil {
			b.logger.Warnw("failed to forward notification", "notification_id", e.Notification.ID, "error", err)
		}
	})
}

// Deliver publishes n on the bus channel.
func (b *RedisNotificationBus) Deliver(ctx context.Context, n domain.Notification) error {
	data, err := json.Marshal(NotificationEvent{Notification: n, InstanceID: b.instanceID})
	if err != nil {
		return fmt.Errorf("failed to marshal notification event: %w", err)
	}

	if err := b.client.Publish(ctx, b.channel, data).Err(); err != nil {
		b.logger.Errorw("failed to publish notification",
			"notification_id", n.ID,
			"error", err,
		)
		return fmt.Errorf("failed to publish notification: %w", err)
	}

	b.logger.Debugw("notification published", "notification_id", n.ID, "channel", b.channel)
	return nil
}

// Subscribe calls handler for every notification published by any instance
// until ctx is done, reconnecting with exponential backoff.
func (b *RedisNotificationBus) Subscribe(ctx context.Context, handler func(NotificationEvent)) error {
	backoff := time.Second
	maxBackoff := 30 * time.Second

	for {
		err := b.subscribe(ctx, handler)
		if ctx.Err() != nil {
			return ctx.Err()
		}

		b.logger.Warnw("notification subscription disconnected, reconnecting",
			"channel", b.channel,
			"error", err,
			"backoff", backoff,
		)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}

		backoff = min(backoff*2, maxBackoff)
	}
}

func (b *RedisNotificationBus) subscribe(ctx context.Context, handler func(NotificationEvent)) error {
	sub := b.client.Subscribe(ctx, b.channel)
	defer sub.Close()

	if _, err := sub.Receive(ctx); err != nil {
		return fmt.Errorf("failed to subscribe to channel %s: %w", b.channel, err)
	}

	b.logger.Infow("subscribed to notification channel", "channel", b.channel)

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case msg, ok := <-ch:
			if !ok {
				b.logger.Warnw("notification channel closed", "channel", b.channel)
				return nil
			}

			var event NotificationEvent
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				b.logger.Warnw("failed to unmarshal notification event",
					"payload", msg.Payload,
					"error", err,
				)
				continue
			}
			// handlers run in order so streams keep newest-last delivery
			handler(event)
		}
	}
}

package pubsub

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "agencydesk/internal/domain/notification"
	"agencydesk/internal/shared/logger"
)

func newBus(t *testing.T) (*RedisNotificationBus, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	return newBusOn(t, mr), mr
}

func newBusOn(t *testing.T, mr *miniredis.Miniredis) *RedisNotificationBus {
	t.Helper()
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedisNotificationBus(client, "agencydesk:notifications", logger.Nop())
}

func TestRedisNotificationBus_DeliverAndSubscribe(t *testing.T) {
	bus, _ := newBus(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	received := make(chan NotificationEvent, 1)
	done := make(chan error, 1)
	go func() {
		done <- bus.Subscribe(ctx, func(e NotificationEvent) { received <- e })
	}()

	n := domain.Notification{ID: "n1", Type: domain.TypeTicket, Title: "New ticket created"}
	// the subscription is asynchronous; publish until it is picked up
	require.Eventually(t, func() bool {
		if err := bus.Deliver(context.Background(), n); err != nil {
			return false
		}
		select {
		case e := <-received:
			assert.Equal(t, "n1", e.Notification.ID)
			assert.Equal(t, bus.instanceID, e.InstanceID)
			return true
		case <-time.After(20 * time.Millisecond):
			return false
		}
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("subscriber did not stop")
	}
}

func TestRedisNotificationBus_DeliverFailsWhenDown(t *testing.T) {
	bus, mr := newBus(t)
	mr.Close()

	err := bus.Deliver(context.Background(), domain.Notification{ID: "n1"})
	assert.Error(t, err)
	assert.Equal(t, "redis", bus.Name())
}

func TestRedisNotificationBus_ForwardSkipsOwnEvents(t *testing.T) {
	local, mr := newBus(t)
	remote := newBusOn(t, mr)
	hub := NewHub(0, logger.Nop())
	conn, _ := hub.Register("c1", "1")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = local.Forward(ctx, hub) }()

	require.Eventually(t, func() bool {
		_ = local.Deliver(context.Background(), domain.Notification{ID: "own"})
		if err := remote.Deliver(context.Background(), domain.Notification{ID: "remote"}); err != nil {
			return false
		}
		select {
		case frame := <-conn.Send:
			assert.Contains(t, string(frame), "id: remote")
			return true
		case <-time.After(20 * time.Millisecond):
			return false
		}
	}, 2*time.Second, 10*time.Millisecond)

	assert.NotEqual(t, local.InstanceID(), remote.InstanceID())
}

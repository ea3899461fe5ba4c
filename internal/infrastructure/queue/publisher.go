// Package queue forwards new notifications to a RabbitMQ queue.
package queue

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"

	domain "agencydesk/internal/domain/notification"
	"agencydesk/internal/shared/biztime"
	"agencydesk/internal/shared/logger"
)

// channel is the part of *amqp.Channel the publisher needs.
type channel interface {
	QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error)
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// dialFunc opens a channel and returns it with a func closing its connection.
type dialFunc func(url string) (channel, func() error, error)

func dialAMQP(url string) (channel, func() error, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, nil, err
	}
	return ch, conn.Close, nil
}

// Publisher delivers each notification as a persistent JSON message on a
// durable queue. A connection is opened per delivery.
type Publisher struct {
	url    string
	queue  string
	dial   dialFunc
	logger logger.Interface
}

func NewPublisher(url, queue string, log logger.Interface) *Publisher {
	return &Publisher{
		url:    url,
		queue:  queue,
		dial:   dialAMQP,
		logger: log.With("component", "queue.publisher"),
	}
}

func (p *Publisher) Name() string { return "amqp" }

func (p *Publisher) Deliver(ctx context.Context, n domain.Notification) error {
	ch, closeConn, err := p.dial(p.url)
	if err != nil {
		p.logger.Warnw("rabbitmq dial failed", "error", err)
		return fmt.Errorf("failed to dial broker: %w", err)
	}
	defer func() { _ = closeConn() }()
	defer func() { _ = ch.Close() }()

	if _, err := ch.QueueDeclare(p.queue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("failed to declare queue %s: %w", p.queue, err)
	}

	body, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("failed to marshal notification: %w", err)
	}

	msg := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    n.ID,
		Type:         string(n.Type),
		Timestamp:    biztime.NowUTC(),
		Body:         body,
	}
	if err := ch.PublishWithContext(ctx, "", p.queue, false, false, msg); err != nil {
		p.logger.Warnw("rabbitmq publish failed", "notification_id", n.ID, "error", err)
		return fmt.Errorf("failed to publish notification: %w", err)
	}

	p.logger.Debugw("notification queued", "notification_id", n.ID, "queue", p.queue)
	return nil
}

package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// Publisher sends domain events to RabbitMQ. All publishes are
// fire-and-forget from the caller's point of view: errors are logged and
// returned so callers can ignore them without interrupting the request
// flow. A Publisher with an empty URL drops every event silently, which
// keeps local setups without a broker working.
type Publisher struct {
	url string
	log *zap.Logger
}

func NewPublisher(url string, log *zap.Logger) *Publisher {
	return &Publisher{
		url: url,
		log: log.With(zap.String("component", "queue_publisher")),
	}
}

// Publish marshals the event and sends it to the named durable queue.
// The connection is dialed per publish; event volume here is a handful
// per booking, not a stream.
func (p *Publisher) Publish(ctx context.Context, queueName string, event any) error {
	if p.url == "" {
		return nil
	}

	conn, err := amqp.Dial(p.url)
	if err != nil {
		p.log.Warn("rabbitmq dial failed", zap.Error(err))
		return fmt.Errorf("rabbitmq dial: %w", err)
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		p.log.Warn("rabbitmq channel open failed", zap.Error(err))
		return fmt.Errorf("rabbitmq channel: %w", err)
	}
	defer func() { _ = ch.Close() }()

	// Idempotent declare; durable so messages survive broker restarts.
	if _, err := ch.QueueDeclare(queueName, true, false, false, false, nil); err != nil {
		p.log.Warn("rabbitmq queue declare failed", zap.Error(err), zap.String("queue", queueName))
		return fmt.Errorf("rabbitmq queue declare %s: %w", queueName, err)
	}

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}

	if err := ch.PublishWithContext(ctx, "", queueName, false, false, pub); err != nil {
		p.log.Warn("rabbitmq publish failed", zap.Error(err), zap.String("queue", queueName))
		return fmt.Errorf("rabbitmq publish %s: %w", queueName, err)
	}

	return nil
}

package adapter

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/voxlate/voxlate/internal/config"
	"github.com/voxlate/voxlate/internal/logger"
	"github.com/voxlate/voxlate/models"
)

// AMQPPublisher mirrors terminal job transitions to a RabbitMQ queue as JSON
// messages. It implements service.EventPublisher.
type AMQPPublisher struct {
	conn  *amqp.Connection
	ch    *amqp.Channel
	queue string

	logger *logger.Logger
}

// NewAMQPPublisher dials the broker and declares the lifecycle queue.
// Returns (nil, nil) when no broker URL is configured: the publisher is an
// optional integration and the service runs without it.
func NewAMQPPublisher(cfg config.Broker, log *logger.Logger) (*AMQPPublisher, error) {
	if cfg.URL == "" {
		return nil, nil
	}

	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("dial broker: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open broker channel: %w", err)
	}

	// durable queue, survives broker restarts
	if _, err := ch.QueueDeclare(cfg.Queue, true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("declare queue %q: %w", cfg.Queue, err)
	}

	log.Info().Str("queue", cfg.Queue).Msg("connected to message broker")

	return &AMQPPublisher{
		conn:   conn,
		ch:     ch,
		queue:  cfg.Queue,
		logger: log,
	}, nil
}

// Publish delivers a job lifecycle event to the queue. Events are persistent
// so they outlive broker restarts alongside the queue itself.
func (p *AMQPPublisher) Publish(ctx context.Context, event models.JobEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal job event: %w", err)
	}

	err = p.ch.PublishWithContext(ctx, "", p.queue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Type:         event.Name,
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("publish job event: %w", err)
	}

	return nil
}

// Close releases the channel and the underlying connection.
func (p *AMQPPublisher) Close() error {
	if p.ch != nil {
		_ = p.ch.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}

package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/dtroode/quizzzy/internal/model"
)

// channelAPI is the part of *amqp.Channel the publisher uses.
type channelAPI interface {
	QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error)
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

var _ model.ActivityPublisher = (*Publisher)(nil)

// Publisher sends activities as JSON messages to a durable queue.
type Publisher struct {
	conn    *amqp.Connection
	channel channelAPI
	queue   string
}

// NewPublisher dials the broker and declares the queue.
func NewPublisher(url, queue string) (*Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	p, err := NewPublisherWithChannel(channel, queue)
	if err != nil {
		_ = channel.Close()
		_ = conn.Close()
		return nil, err
	}
	p.conn = conn

	return p, nil
}

// NewPublisherWithChannel allows injecting a fake channel.
func NewPublisherWithChannel(channel channelAPI, queue string) (*Publisher, error) {
	_, err := channel.QueueDeclare(
		queue,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to declare queue: %w", err)
	}

	return &Publisher{
		channel: channel,
		queue:   queue,
	}, nil
}

func (p *Publisher) Publish(ctx context.Context, activity model.Activity) error {
	body, err := json.Marshal(activity)
	if err != nil {
		return fmt.Errorf("failed to encode activity: %w", err)
	}

	err = p.channel.PublishWithContext(
		ctx,
		"",      // exchange
		p.queue, // routing key
		false,   // mandatory
		false,   // immediate
		amqp.Publishing{
			ContentType: "application/json",
			Type:        string(activity.Type),
			Body:        body,
			Timestamp:   activity.OccurredAt,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish activity: %w", err)
	}

	return nil
}

func (p *Publisher) Close() error {
	if p.channel != nil {
		_ = p.channel.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}

var _ model.ActivityPublisher = NoopPublisher{}

// NoopPublisher drops every activity. It is used when no broker is configured.
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, model.Activity) error {
	return nil
}

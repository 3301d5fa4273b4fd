package common

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

type Exchange string

type Queue string

type BindingKey string

// Binding routes messages published on Exchange with Key to Queue.
type Binding struct {
	Exchange Exchange
	Queue    Queue
	Key      BindingKey
}

type MessageProducer interface {
	Publish(ctx context.Context, b Binding, msg []byte) error
}

type MessageConsumer interface {
	Consume(b Binding) (<-chan amqp.Delivery, error)
}

const (
	UserExchange     Exchange   = "bloglist_exchange"
	UserCreatedQueue Queue      = "user_created_queue"
	UserCreatedKey   BindingKey = "user.created"
)

var UserCreatedBinding = Binding{Exchange: UserExchange, Queue: UserCreatedQueue, Key: UserCreatedKey}

// NopProducer drops every message. It stands in for the broker when none is configured.
type NopProducer struct{}

func (NopProducer) Publish(ctx context.Context, b Binding, msg []byte) error {
	return nil
}

type MessageBroker struct {
	conn *amqp.Connection
	ch   *amqp.Channel
	// guards ch for publishing
	mu sync.Mutex
}

func NewMessageBroker(uri string) (*MessageBroker, error) {
	conn, err := amqp.DialConfig(uri, amqp.Config{
		Heartbeat:  10 * time.Second,
		Properties: amqp.Table{"connection_name": "bloglist"},
	})
	if err != nil {
		return nil, fmt.Errorf("could not connect to AMQP: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("could not open channel: %w", err)
	}

	// One unacknowledged delivery at a time keeps mail retries in order.
	err = ch.Qos(1, 0, false)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("could not set prefetch: %w", err)
	}

	return &MessageBroker{conn: conn, ch: ch}, nil
}

// Declare creates the durable exchange and queue of every binding and binds them.
// Declaring an existing topology again is a no-op.
func (mb *MessageBroker) Declare(bindings ...Binding) error {
	for _, b := range bindings {
		err := mb.ch.ExchangeDeclare(string(b.Exchange), "direct", true, false, false, false, nil)
		if err != nil {
			return fmt.Errorf("could not declare exchange %s: %w", b.Exchange, err)
		}

		_, err = mb.ch.QueueDeclare(string(b.Queue), true, false, false, false, nil)
		if err != nil {
			return fmt.Errorf("could not declare queue %s: %w", b.Queue, err)
		}

		err = mb.ch.QueueBind(string(b.Queue), string(b.Key), string(b.Exchange), false, nil)
		if err != nil {
			return fmt.Errorf("could not bind %s to %s: %w", b.Queue, b.Exchange, err)
		}
	}

	return nil
}

// Close closes the channel and then the connection.
func (mb *MessageBroker) Close() error {
	return errors.Join(mb.ch.Close(), mb.conn.Close())
}

func (mb *MessageBroker) Publish(ctx context.Context, b Binding, msg []byte) error {
	mb.mu.Lock()
	defer mb.mu.Unlock()

	err := mb.ch.PublishWithContext(ctx, string(b.Exchange), string(b.Key), false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    uuid.NewString(),
		Timestamp:    time.Now().UTC(),
		Body:         msg,
	})
	if err != nil {
		return fmt.Errorf("could not publish to %s: %w", b.Key, err)
	}

	return nil
}

func (mb *MessageBroker) Consume(b Binding) (<-chan amqp.Delivery, error) {
	msgs, err := mb.ch.Consume(string(b.Queue), "", false, false, false, false, nil)
	if err != nil {
		return nil, fmt.Errorf("could not consume %s: %w", b.Queue, err)
	}

	return msgs, nil
}

package queue

import (
	"context"
)

// Message is a single delivery from the bus
type Message struct {
	ID    string
	Topic string
	Key   []byte
	Value []byte

	ack func(context.Context) error
}

// NewMessage creates a message acknowledged by calling ack
func NewMessage(id, topic string, key, value []byte, ack func(context.Context) error) *Message {
	return &Message{ID: id, Topic: topic, Key: key, Value: value, ack: ack}
}

// Ack marks the message as processed so it is not redelivered
func (m *Message) Ack(ctx context.Context) error {
	if m.ack != nil {
		return m.ack(ctx)
	}
	return nil
}

// Publisher defines the interface for publishing messages to a topic
type Publisher interface {
	Publish(ctx context.Context, topic string, key, value []byte) error
	Close() error
}

// Subscriber defines the interface for consuming messages from the subscribed topics
type Subscriber interface {
	// Fetch blocks until a message is available or ctx is done
	Fetch(ctx context.Context) (*Message, error)
	// Close releases the subscription, leaving any consumer group
	Close() error
}

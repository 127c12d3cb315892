// Package kafka implements the queue interfaces on top of segmentio/kafka-go.
package kafka

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/garaevmir/NanoServices/internal/config"
	"github.com/garaevmir/NanoServices/internal/queue"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type messageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Publisher writes messages to any topic; the topic is set per message
type Publisher struct {
	writer messageWriter
	log    *zap.Logger
}

// NewPublisher creates a Kafka publisher. Messages with equal keys land on the same partition.
func NewPublisher(cfg config.Kafka, log *zap.Logger) *Publisher {
	sugar := log.Sugar()
	writer := &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		BatchSize:              1,
		BatchTimeout:           10 * time.Millisecond,
		WriteTimeout:           cfg.WriteTimeout,
		AllowAutoTopicCreation: true,
		Logger:                 kafka.LoggerFunc(sugar.Debugf),
		ErrorLogger:            kafka.LoggerFunc(sugar.Errorf),
	}

	log.Info("Kafka publisher created", zap.Strings("brokers", cfg.Brokers))

	return &Publisher{writer: writer, log: log}
}

// Publish writes a single message and waits for the broker acknowledgement
func (p *Publisher) Publish(ctx context.Context, topic string, key, value []byte) error {
	err := p.writer.WriteMessages(ctx, kafka.Message{
		Topic: topic,
		Key:   key,
		Value: value,
	})
	if err != nil {
		return fmt.Errorf("failed to write message to %s: %w", topic, err)
	}
	return nil
}

// Close flushes pending writes and closes the writer
func (p *Publisher) Close() error {
	return p.writer.Close()
}

// Subscriber reads the given topics as a member of a consumer group
type Subscriber struct {
	reader messageReader
	log    *zap.Logger
}

// NewSubscriber verifies a broker is reachable and joins the consumer group.
// A group without committed offsets starts from the earliest message.
func NewSubscriber(ctx context.Context, cfg config.Kafka, consumer config.Consumer, topics []string, log *zap.Logger) (*Subscriber, error) {
	if err := ping(ctx, cfg.Brokers); err != nil {
		return nil, err
	}

	sugar := log.Sugar()
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:               cfg.Brokers,
		GroupID:               consumer.GroupID,
		GroupTopics:           topics,
		StartOffset:           kafka.FirstOffset,
		SessionTimeout:        consumer.SessionTimeout,
		WatchPartitionChanges: true,
		MinBytes:              1,
		MaxBytes:              10e6,
		Logger:                kafka.LoggerFunc(sugar.Debugf),
		ErrorLogger:           kafka.LoggerFunc(sugar.Errorf),
	})

	log.Info("Kafka subscriber created",
		zap.Strings("brokers", cfg.Brokers),
		zap.String("group_id", consumer.GroupID),
		zap.Strings("topics", topics))

	return &Subscriber{reader: reader, log: log}, nil
}

// Fetch returns the next message. Its Ack commits the offset for the group.
func (s *Subscriber) Fetch(ctx context.Context) (*queue.Message, error) {
	m, err := s.reader.FetchMessage(ctx)
	if err != nil {
		return nil, err
	}

	id := m.Topic + "/" + strconv.Itoa(m.Partition) + "/" + strconv.FormatInt(m.Offset, 10)
	ack := func(ctx context.Context) error {
		return s.reader.CommitMessages(ctx, m)
	}

	return queue.NewMessage(id, m.Topic, m.Key, m.Value, ack), nil
}

// Close leaves the consumer group
func (s *Subscriber) Close() error {
	s.log.Info("Closing Kafka subscriber")
	return s.reader.Close()
}

func ping(ctx context.Context, brokers []string) error {
	var errs []error
	for _, broker := range brokers {
		conn, err := kafka.DialContext(ctx, "tcp", broker)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		return conn.Close()
	}
	return fmt.Errorf("no kafka broker reachable: %w", errors.Join(errs...))
}

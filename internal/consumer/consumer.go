package consumer

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/garaevmir/NanoServices/internal/config"
	"github.com/garaevmir/NanoServices/internal/metrics"
	"github.com/garaevmir/NanoServices/internal/queue"
	"github.com/garaevmir/NanoServices/internal/repository"
)

// State is the lifecycle state of the consumer
type State int32

const (
	StateStopped State = iota
	StateConnecting
	StateSubscribed
	StateConsuming
)

func (s State) String() string {
	switch s {
	case StateStopped:
		return "STOPPED"
	case StateConnecting:
		return "CONNECTING"
	case StateSubscribed:
		return "SUBSCRIBED"
	case StateConsuming:
		return "CONSUMING"
	default:
		return fmt.Sprintf("State(%d)", int32(s))
	}
}

const fetchBackoff = time.Second

// SubscribeFunc connects to the bus and subscribes to the event topics
type SubscribeFunc func(ctx context.Context) (queue.Subscriber, error)

// Consumer orchestrates a two-stage pipeline: Receiver then Processor
type Consumer struct {
	subscribe  SubscribeFunc
	parser     MessageParser
	repository repository.EventRepository
	bufferSize int
	backoff    time.Duration
	state      atomic.Int32
	log        *zap.Logger
}

// NewConsumer creates a new consumer
func NewConsumer(cfg config.Consumer, subscribe SubscribeFunc, repo repository.EventRepository, log *zap.Logger) *Consumer {
	return &Consumer{
		subscribe:  subscribe,
		parser:     NewJSONEventParser(),
		repository: repo,
		bufferSize: cfg.BufferSize,
		backoff:    fetchBackoff,
		log:        log,
	}
}

// State returns the current lifecycle state
func (c *Consumer) State() State {
	return State(c.state.Load())
}

func (c *Consumer) setState(s State) {
	if State(c.state.Swap(int32(s))) != s {
		c.log.Info("Consumer state changed", zap.Stringer("state", s))
	}
	metrics.ConsumerState.Set(float64(s))
}

// Start subscribes and consumes until ctx is done, then leaves the group.
// It only returns an error when the subscription cannot be established.
func (c *Consumer) Start(ctx context.Context) error {
	c.setState(StateConnecting)

	subscriber, err := c.subscribe(ctx)
	if err != nil {
		c.setState(StateStopped)
		return fmt.Errorf("failed to subscribe: %w", err)
	}
	c.setState(StateSubscribed)

	defer func() {
		if err := subscriber.Close(); err != nil {
			c.log.Error("Failed to close subscriber", zap.Error(err))
		}
		c.setState(StateStopped)
	}()

	receiver := NewReceiver(subscriber, ReceiverConfig{Backoff: c.backoff}, c.setState, c.log)
	processor := NewProcessor(c.parser, c.repository, c.log)

	messageChan := make(chan *queue.Message, c.bufferSize)

	var wg sync.WaitGroup
	wg.Add(2)

	// Stage 1: fetch messages from the bus
	go func() {
		defer wg.Done()
		receiver.Start(ctx, messageChan)
	}()

	// Stage 2: parse, store and ack in order
	go func() {
		defer wg.Done()
		processor.Start(ctx, messageChan)
	}()

	wg.Wait()
	return nil
}

package consumer

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/garaevmir/NanoServices/internal/queue"
)

// ReceiverConfig configures the receiver
type ReceiverConfig struct {
	// Backoff is the pause after a failed fetch
	Backoff time.Duration
}

// Receiver fetches messages from the bus and hands them to the next stage
type Receiver struct {
	subscriber queue.Subscriber
	config     ReceiverConfig
	setState   func(State)
	log        *zap.Logger
}

// NewReceiver creates a new receiver. setState may be nil.
func NewReceiver(subscriber queue.Subscriber, config ReceiverConfig, setState func(State), log *zap.Logger) *Receiver {
	if setState == nil {
		setState = func(State) {}
	}
	return &Receiver{
		subscriber: subscriber,
		config:     config,
		setState:   setState,
		log:        log,
	}
}

// Start begins receiving messages and sends them to the output channel
func (r *Receiver) Start(ctx context.Context, out chan<- *queue.Message) {
	defer close(out)

	r.setState(StateConsuming)

	for {
		msg, err := r.subscriber.Fetch(ctx)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, context.Canceled) {
				r.log.Info("Receiver shutting down")
				return
			}

			r.log.Error("Error fetching message", zap.Error(err))
			select {
			case <-ctx.Done():
				r.log.Info("Receiver shutting down during backoff")
				return
			case <-time.After(r.config.Backoff):
			}
			r.setState(StateConsuming)
			continue
		}

		select {
		case <-ctx.Done():
			r.log.Info("Receiver shutting down while sending message")
			return
		case out <- msg:
		}
	}
}

package consumer

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/garaevmir/NanoServices/internal/domain"
	"github.com/garaevmir/NanoServices/internal/metrics"
	"github.com/garaevmir/NanoServices/internal/queue"
	"github.com/garaevmir/NanoServices/internal/repository"
)

// Processor parses, stores and acknowledges messages one at a time, in delivery order.
// Every message is acknowledged whatever the outcome, so a poison message never blocks.
type Processor struct {
	parser     MessageParser
	repository repository.EventRepository
	log        *zap.Logger
}

// NewProcessor creates a new processor
func NewProcessor(parser MessageParser, repo repository.EventRepository, log *zap.Logger) *Processor {
	return &Processor{
		parser:     parser,
		repository: repo,
		log:        log,
	}
}

// Start processes messages until the input channel is closed or ctx is done
func (p *Processor) Start(ctx context.Context, in <-chan *queue.Message) {
	for {
		select {
		case <-ctx.Done():
			p.log.Info("Processor shutting down")
			return
		case msg, ok := <-in:
			if !ok {
				p.log.Info("Processor input channel closed")
				return
			}
			p.process(context.WithoutCancel(ctx), msg)
		}
	}
}

// process handles a message that has already been fetched, so it is not cut short by shutdown
func (p *Processor) process(ctx context.Context, msg *queue.Message) {
	outcome := p.store(ctx, msg)
	metrics.EventsConsumed.WithLabelValues(msg.Topic, outcome).Inc()

	if err := msg.Ack(ctx); err != nil {
		p.log.Error("Failed to ack message",
			zap.String("message_id", msg.ID),
			zap.String("topic", msg.Topic),
			zap.Error(err))
	}
}

func (p *Processor) store(ctx context.Context, msg *queue.Message) string {
	event, err := p.parser.Parse(msg.Topic, msg.Value)
	if errors.Is(err, domain.ErrUnknownKind) {
		p.log.Warn("Rejected message from unknown topic",
			zap.String("message_id", msg.ID),
			zap.String("topic", msg.Topic))
		return metrics.OutcomeUnknownTopic
	}
	if err != nil {
		p.log.Warn("Failed to parse message",
			zap.String("message_id", msg.ID),
			zap.String("topic", msg.Topic),
			zap.Error(err))
		return metrics.OutcomeMalformed
	}

	if err := p.repository.InsertEvent(ctx, event); err != nil {
		p.log.Error("Failed to insert event",
			zap.String("message_id", msg.ID),
			zap.String("event_type", string(event.EventType)),
			zap.String("post_id", event.PostID),
			zap.Error(err))
		return metrics.OutcomeInsertFailed
	}

	p.log.Debug("Stored event",
		zap.String("message_id", msg.ID),
		zap.String("event_type", string(event.EventType)),
		zap.String("post_id", event.PostID))
	return metrics.OutcomeStored
}

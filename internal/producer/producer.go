// Package producer publishes interaction events from the posts service.
//
// Publishing is best effort: every Emit returns immediately and the outcome is
// only logged and counted. A failed publish is never retried.
package producer

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/garaevmir/NanoServices/internal/config"
	"github.com/garaevmir/NanoServices/internal/domain"
	"github.com/garaevmir/NanoServices/internal/metrics"
	"github.com/garaevmir/NanoServices/internal/queue"
)

// Producer emits events to the bus on background goroutines
type Producer struct {
	publisher queue.Publisher
	timeout   time.Duration
	log       *zap.Logger
	now       func() time.Time

	mu       sync.RWMutex
	closed   bool
	inflight sync.WaitGroup
}

// New creates a producer publishing through publisher
func New(publisher queue.Publisher, cfg config.Producer, log *zap.Logger) *Producer {
	return &Producer{
		publisher: publisher,
		timeout:   cfg.PublishTimeout,
		log:       log,
		now:       time.Now,
	}
}

// Emit stamps the event with the current time and publishes it asynchronously.
// The publish outlives ctx cancellation and is bounded by the publish timeout.
func (p *Producer) Emit(ctx context.Context, kind domain.EventKind, userID, postID string, content *string) {
	topic, err := kind.Topic()
	if err != nil {
		p.log.Error("Dropping event with unknown kind", zap.String("kind", string(kind)), zap.Error(err))
		return
	}

	msg := domain.EventMessage{
		UserID:    userID,
		PostID:    postID,
		Timestamp: p.now().UTC().Format(time.RFC3339Nano),
		Content:   content,
	}

	body, err := json.Marshal(msg)
	if err != nil {
		p.log.Error("Failed to marshal event", zap.String("topic", topic), zap.Error(err))
		metrics.EventsPublished.WithLabelValues(topic, metrics.OutcomeFailed).Inc()
		return
	}

	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		p.log.Warn("Producer closed, dropping event", zap.String("topic", topic), zap.String("post_id", postID))
		return
	}

	p.log.Info("Publishing event",
		zap.String("topic", topic),
		zap.String("user_id", msg.UserID),
		zap.String("post_id", msg.PostID),
		zap.String("timestamp", msg.Timestamp),
		zap.Bool("has_content", msg.Content != nil))

	p.inflight.Add(1)
	go p.publish(context.WithoutCancel(ctx), topic, []byte(postID), body)
}

func (p *Producer) publish(ctx context.Context, topic string, key, body []byte) {
	defer p.inflight.Done()

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	if err := p.publisher.Publish(ctx, topic, key, body); err != nil {
		p.log.Warn("Failed to publish event",
			zap.String("topic", topic),
			zap.ByteString("post_id", key),
			zap.Error(err))
		metrics.EventsPublished.WithLabelValues(topic, metrics.OutcomeFailed).Inc()
		return
	}

	metrics.EventsPublished.WithLabelValues(topic, metrics.OutcomePublished).Inc()
}

// Close stops accepting events, waits for in-flight publishes and closes the publisher
func (p *Producer) Close() error {
	p.mu.Lock()
	p.closed = true
	p.mu.Unlock()

	p.inflight.Wait()
	return p.publisher.Close()
}

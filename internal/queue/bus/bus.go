// Package bus selects the message bus implementation named by BUS_DRIVER.
package bus

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/garaevmir/NanoServices/internal/config"
	"github.com/garaevmir/NanoServices/internal/domain"
	"github.com/garaevmir/NanoServices/internal/queue"
	"github.com/garaevmir/NanoServices/internal/queue/kafka"
	"github.com/garaevmir/NanoServices/internal/queue/sqs"
)

// NewPublisher creates the publisher for the configured driver
func NewPublisher(ctx context.Context, cfg *config.Config, log *zap.Logger) (queue.Publisher, error) {
	switch cfg.Bus.Driver {
	case config.BusKafka:
		return kafka.NewPublisher(cfg.Kafka, log), nil
	case config.BusSQS:
		client, err := newSQS(ctx, cfg, log)
		if err != nil {
			return nil, err
		}
		return client, nil
	default:
		return nil, fmt.Errorf("unsupported bus driver %q", cfg.Bus.Driver)
	}
}

// NewSubscriber creates a subscriber on every event topic for the configured driver
func NewSubscriber(ctx context.Context, cfg *config.Config, log *zap.Logger) (queue.Subscriber, error) {
	switch cfg.Bus.Driver {
	case config.BusKafka:
		sub, err := kafka.NewSubscriber(ctx, cfg.Kafka, cfg.Consumer, domain.Topics(), log)
		if err != nil {
			return nil, err
		}
		return sub, nil
	case config.BusSQS:
		client, err := newSQS(ctx, cfg, log)
		if err != nil {
			return nil, err
		}
		return client, nil
	default:
		return nil, fmt.Errorf("unsupported bus driver %q", cfg.Bus.Driver)
	}
}

func newSQS(ctx context.Context, cfg *config.Config, log *zap.Logger) (*sqs.Client, error) {
	client, err := sqs.NewClient(ctx, cfg.SQS, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create SQS client: %w", err)
	}
	return client, nil
}

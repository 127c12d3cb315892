package sqs

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/aws/aws-sdk-go-v2/service/sqs/types"
	"go.uber.org/zap"

	envConfig "github.com/garaevmir/NanoServices/internal/config"
	"github.com/garaevmir/NanoServices/internal/queue"
)

// Message attributes carrying the routing information SQS has no native field for
const (
	AttributeTopic = "Topic"
	AttributeKey   = "Key"
)

// API is the subset of the SQS client used here
type API interface {
	SendMessage(ctx context.Context, params *sqs.SendMessageInput, optFns ...func(*sqs.Options)) (*sqs.SendMessageOutput, error)
	ReceiveMessage(ctx context.Context, params *sqs.ReceiveMessageInput, optFns ...func(*sqs.Options)) (*sqs.ReceiveMessageOutput, error)
	DeleteMessage(ctx context.Context, params *sqs.DeleteMessageInput, optFns ...func(*sqs.Options)) (*sqs.DeleteMessageOutput, error)
}

// Client publishes and receives bus messages through a single SQS queue.
// Fetch is not safe for concurrent use.
type Client struct {
	api     API
	config  envConfig.SQS
	log     *zap.Logger
	pending []types.Message
}

// NewClient creates a new SQS client
func NewClient(ctx context.Context, SQSConfig envConfig.SQS, log *zap.Logger) (*Client, error) {
	configOpts := []func(*config.LoadOptions) error{
		config.WithRegion(SQSConfig.Region),
	}

	var clientOpts []func(*sqs.Options)

	// Local development against ElasticMQ
	if SQSConfig.Endpoint != "" {
		log.Info("Configuring SQS for local development",
			zap.String("endpoint", SQSConfig.Endpoint))
		configOpts = append(configOpts,
			config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider("dummy", "dummy", "")))

		clientOpts = append(clientOpts, func(o *sqs.Options) {
			o.BaseEndpoint = aws.String(SQSConfig.Endpoint)
		})
	}

	cfg, err := config.LoadDefaultConfig(ctx, configOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	log.Info("SQS client created",
		zap.String("region", SQSConfig.Region),
		zap.String("queue_url", SQSConfig.QueueURL))

	return NewClientWithAPI(sqs.NewFromConfig(cfg, clientOpts...), SQSConfig, log), nil
}

// NewClientWithAPI wraps an existing SQS API implementation
func NewClientWithAPI(api API, SQSConfig envConfig.SQS, log *zap.Logger) *Client {
	return &Client{api: api, config: SQSConfig, log: log}
}

// Publish sends a message, carrying topic and key as message attributes
func (c *Client) Publish(ctx context.Context, topic string, key, value []byte) error {
	attributes := map[string]types.MessageAttributeValue{
		AttributeTopic: {
			DataType:    aws.String("String"),
			StringValue: aws.String(topic),
		},
	}
	if len(key) > 0 {
		attributes[AttributeKey] = types.MessageAttributeValue{
			DataType:    aws.String("String"),
			StringValue: aws.String(string(key)),
		}
	}

	_, err := c.api.SendMessage(ctx, &sqs.SendMessageInput{
		QueueUrl:          aws.String(c.config.QueueURL),
		MessageBody:       aws.String(string(value)),
		MessageAttributes: attributes,
	})
	if err != nil {
		return fmt.Errorf("failed to send message to SQS: %w", err)
	}

	return nil
}

// Fetch long-polls the queue until a message arrives. Acking deletes the message;
// an unacked message becomes visible again after the queue's visibility timeout.
func (c *Client) Fetch(ctx context.Context) (*queue.Message, error) {
	for len(c.pending) == 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		result, err := c.api.ReceiveMessage(ctx, &sqs.ReceiveMessageInput{
			QueueUrl:              aws.String(c.config.QueueURL),
			MaxNumberOfMessages:   c.config.MaxMessages,
			WaitTimeSeconds:       c.config.WaitTimeSeconds,
			MessageAttributeNames: []string{"All"},
		})
		if err != nil {
			return nil, fmt.Errorf("failed to receive messages from SQS: %w", err)
		}

		if len(result.Messages) > 0 {
			c.log.Debug("Received messages from SQS", zap.Int("message_count", len(result.Messages)))
		}
		c.pending = result.Messages
	}

	msg := c.pending[0]
	c.pending = c.pending[1:]

	receipt := msg.ReceiptHandle
	ack := func(ctx context.Context) error {
		_, err := c.api.DeleteMessage(ctx, &sqs.DeleteMessageInput{
			QueueUrl:      aws.String(c.config.QueueURL),
			ReceiptHandle: receipt,
		})
		if err != nil {
			return fmt.Errorf("failed to delete message from SQS: %w", err)
		}
		return nil
	}

	return queue.NewMessage(
		aws.ToString(msg.MessageId),
		attribute(msg, AttributeTopic),
		[]byte(attribute(msg, AttributeKey)),
		[]byte(aws.ToString(msg.Body)),
		ack,
	), nil
}

// Close drops undelivered buffered messages; they reappear after their visibility timeout
func (c *Client) Close() error {
	if len(c.pending) > 0 {
		c.log.Info("Dropping buffered SQS messages", zap.Int("message_count", len(c.pending)))
	}
	c.pending = nil
	return nil
}

func attribute(msg types.Message, name string) string {
	if v, ok := msg.MessageAttributes[name]; ok {
		return aws.ToString(v.StringValue)
	}
	return ""
}

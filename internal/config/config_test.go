package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Service.Environment)
	assert.Equal(t, BusKafka, cfg.Bus.Driver)
	assert.Equal(t, []string{"localhost:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, "stats-service-group", cfg.Consumer.GroupID)
	assert.Equal(t, 5*time.Second, cfg.Producer.PublishTimeout)
	assert.Equal(t, "localhost:9000", cfg.ClickHouse.Addr())
	assert.Equal(t, "localhost:8080", cfg.Gateway.Host)
	assert.Equal(t, "8080", cfg.Gateway.Port)
}

func TestLoad_NestedOverrides(t *testing.T) {
	t.Setenv("SERVICE_ENVIRONMENT", "production")
	t.Setenv("SERVICE_GRPC_PORT", "6000")
	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")
	t.Setenv("CONSUMER_GROUP_ID", "stats-test")
	t.Setenv("PRODUCER_PUBLISH_TIMEOUT", "250ms")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.Service.Environment)
	assert.Equal(t, ":6000", cfg.Service.GRPCAddr("50051"))
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, "stats-test", cfg.Consumer.GroupID)
	assert.Equal(t, 250*time.Millisecond, cfg.Producer.PublishTimeout)
}

func TestLoad_SQSRequiresQueueURL(t *testing.T) {
	t.Setenv("BUS_DRIVER", "sqs")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SQS_QUEUE_URL")

	t.Setenv("SQS_QUEUE_URL", "http://localhost:9324/queue/events")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, BusSQS, cfg.Bus.Driver)
}

func TestLoad_UnknownBusDriver(t *testing.T) {
	t.Setenv("BUS_DRIVER", "carrier-pigeon")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported bus driver")
}

func TestService_AddrFallback(t *testing.T) {
	s := Service{}
	assert.Equal(t, ":50052", s.GRPCAddr("50052"))
	assert.Equal(t, ":8081", s.HTTPAddr("8081"))
}

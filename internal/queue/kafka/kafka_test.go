package kafka

import (
	"context"
	"errors"
	"testing"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockWriter struct {
	mock.Mock
}

func (m *MockWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	return m.Called(ctx, msgs).Error(0)
}

func (m *MockWriter) Close() error {
	return m.Called().Error(0)
}

type MockReader struct {
	mock.Mock
}

func (m *MockReader) FetchMessage(ctx context.Context) (kafka.Message, error) {
	args := m.Called(ctx)
	return args.Get(0).(kafka.Message), args.Error(1)
}

func (m *MockReader) CommitMessages(ctx context.Context, msgs ...kafka.Message) error {
	return m.Called(ctx, msgs).Error(0)
}

func (m *MockReader) Close() error {
	return m.Called().Error(0)
}

func TestPublisher_Publish_SetsTopicAndKey(t *testing.T) {
	writer := new(MockWriter)
	p := &Publisher{writer: writer, log: zap.NewNop()}

	expected := []kafka.Message{{Topic: "post_likes", Key: []byte("post-1"), Value: []byte(`{}`)}}
	writer.On("WriteMessages", mock.Anything, expected).Return(nil)

	err := p.Publish(context.Background(), "post_likes", []byte("post-1"), []byte(`{}`))

	assert.NoError(t, err)
	writer.AssertExpectations(t)
}

func TestPublisher_Publish_Error(t *testing.T) {
	writer := new(MockWriter)
	p := &Publisher{writer: writer, log: zap.NewNop()}

	writer.On("WriteMessages", mock.Anything, mock.Anything).Return(errors.New("leader not available"))

	err := p.Publish(context.Background(), "post_views", nil, []byte(`{}`))

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "post_views")
	assert.Contains(t, err.Error(), "leader not available")
}

func TestSubscriber_Fetch_AckCommitsOffset(t *testing.T) {
	reader := new(MockReader)
	s := &Subscriber{reader: reader, log: zap.NewNop()}

	msg := kafka.Message{Topic: "post_views", Partition: 2, Offset: 41, Key: []byte("p"), Value: []byte(`{"post_id":"p"}`)}
	reader.On("FetchMessage", mock.Anything).Return(msg, nil).Once()
	reader.On("CommitMessages", mock.Anything, []kafka.Message{msg}).Return(nil).Once()

	got, err := s.Fetch(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "post_views", got.Topic)
	assert.Equal(t, "post_views/2/41", got.ID)
	assert.Equal(t, msg.Value, got.Value)

	reader.AssertNotCalled(t, "CommitMessages", mock.Anything, mock.Anything)
	require.NoError(t, got.Ack(context.Background()))
	reader.AssertExpectations(t)
}

func TestSubscriber_Fetch_Error(t *testing.T) {
	reader := new(MockReader)
	s := &Subscriber{reader: reader, log: zap.NewNop()}

	reader.On("FetchMessage", mock.Anything).Return(kafka.Message{}, context.Canceled)

	got, err := s.Fetch(context.Background())

	assert.Nil(t, got)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSubscriber_Close_LeavesGroup(t *testing.T) {
	reader := new(MockReader)
	s := &Subscriber{reader: reader, log: zap.NewNop()}

	reader.On("Close").Return(nil).Once()

	assert.NoError(t, s.Close())
	reader.AssertExpectations(t)
}

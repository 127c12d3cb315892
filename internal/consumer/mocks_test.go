package consumer

import (
	"context"
	"sync"

	"github.com/stretchr/testify/mock"

	"github.com/garaevmir/NanoServices/internal/domain"
	"github.com/garaevmir/NanoServices/internal/queue"
	"github.com/garaevmir/NanoServices/internal/repository"
)

// MockEventRepository is a mock implementation of repository.EventRepository
type MockEventRepository struct {
	mock.Mock
}

func (m *MockEventRepository) InsertEvent(ctx context.Context, event *domain.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockEventRepository) GetPostStats(ctx context.Context, postID string) (*repository.PostStats, error) {
	args := m.Called(ctx, postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.PostStats), args.Error(1)
}

func (m *MockEventRepository) GetTrend(ctx context.Context, query repository.TrendQuery) ([]repository.DailyCount, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.DailyCount), args.Error(1)
}

func (m *MockEventRepository) GetTopPosts(ctx context.Context, kind domain.EventKind, limit int) ([]repository.RankedPost, error) {
	args := m.Called(ctx, kind, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.RankedPost), args.Error(1)
}

func (m *MockEventRepository) GetTopUsers(ctx context.Context, kind domain.EventKind, limit int) ([]repository.RankedUser, error) {
	args := m.Called(ctx, kind, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.RankedUser), args.Error(1)
}

func (m *MockEventRepository) InitSchema(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockEventRepository) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockEventRepository) Close() error {
	return m.Called().Error(0)
}

// ackLog records acknowledged message ids in order
type ackLog struct {
	mu  sync.Mutex
	ids []string
}

func (l *ackLog) message(id, topic, body string) *queue.Message {
	return queue.NewMessage(id, topic, nil, []byte(body), func(context.Context) error {
		l.mu.Lock()
		defer l.mu.Unlock()
		l.ids = append(l.ids, id)
		return nil
	})
}

func (l *ackLog) acked() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.ids...)
}

// fakeSubscriber serves scripted fetch results, then blocks until ctx is done
type fakeSubscriber struct {
	results chan fetchResult

	mu     sync.Mutex
	closed bool
}

type fetchResult struct {
	msg *queue.Message
	err error
}

func newFakeSubscriber(results ...fetchResult) *fakeSubscriber {
	ch := make(chan fetchResult, len(results))
	for _, r := range results {
		ch <- r
	}
	return &fakeSubscriber{results: ch}
}

func (s *fakeSubscriber) Fetch(ctx context.Context) (*queue.Message, error) {
	select {
	case r := <-s.results:
		return r.msg, r.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (s *fakeSubscriber) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

func (s *fakeSubscriber) isClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

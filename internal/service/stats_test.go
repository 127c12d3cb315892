package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/garaevmir/NanoServices/internal/domain"
	"github.com/garaevmir/NanoServices/internal/models"
	"github.com/garaevmir/NanoServices/internal/repository"
)

func newTestStatsService(repo *MockEventRepository) *StatsService {
	svc := NewStatsService(repo, zap.NewNop())
	svc.now = func() time.Time { return fixedNow }
	return svc
}

func TestStatsService_GetPostStats(t *testing.T) {
	repo := new(MockEventRepository)
	svc := newTestStatsService(repo)
	repo.On("GetPostStats", mock.Anything, "p1").
		Return(&repository.PostStats{Views: 3, Likes: 1, Comments: 0}, nil)

	resp, err := svc.GetPostStats(context.Background(), &models.PostStatsRequest{PostID: "p1"})

	require.NoError(t, err)
	assert.Equal(t, uint64(3), resp.Views)
	assert.Equal(t, uint64(1), resp.Likes)
	assert.Equal(t, uint64(0), resp.Comments)
}

func TestStatsService_GetPostStats_EmptyPostID(t *testing.T) {
	repo := new(MockEventRepository)
	svc := newTestStatsService(repo)

	_, err := svc.GetPostStats(context.Background(), &models.PostStatsRequest{})

	assert.ErrorIs(t, err, ErrInvalidArgument)
	repo.AssertNotCalled(t, "GetPostStats", mock.Anything, mock.Anything)
}

func TestStatsService_GetPostStats_RepositoryError(t *testing.T) {
	repo := new(MockEventRepository)
	svc := newTestStatsService(repo)
	repo.On("GetPostStats", mock.Anything, "p1").Return(nil, errors.New("clickhouse down"))

	_, err := svc.GetPostStats(context.Background(), &models.PostStatsRequest{PostID: "p1"})

	assert.ErrorContains(t, err, "clickhouse down")
	assert.NotErrorIs(t, err, ErrInvalidArgument)
}

func TestParsePeriod(t *testing.T) {
	tests := []struct {
		period    string
		expected  int
		expectErr bool
	}{
		{period: "7d", expected: 7},
		{period: "1d", expected: 1},
		{period: "30d", expected: 30},
		{period: "all", expected: AllTimeDays},
		{period: "99999d", expected: AllTimeDays},
		{period: "0d", expectErr: true},
		{period: "-5d", expectErr: true},
		{period: "+5d", expectErr: true},
		{period: "d", expectErr: true},
		{period: "7", expectErr: true},
		{period: "7w", expectErr: true},
		{period: "invalid", expectErr: true},
		{period: "", expectErr: true},
		{period: "ALL", expectErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.period, func(t *testing.T) {
			days, err := ParsePeriod(tt.period)
			if tt.expectErr {
				assert.ErrorIs(t, err, ErrInvalidArgument)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, days)
		})
	}
}

func TestStatsService_GetTrend_Window(t *testing.T) {
	repo := new(MockEventRepository)
	svc := newTestStatsService(repo)

	expectedFrom := time.Date(2025, 3, 7, 0, 0, 0, 0, time.UTC)
	repo.On("GetTrend", mock.Anything, repository.TrendQuery{
		PostID: "p1",
		Kind:   domain.KindLike,
		From:   expectedFrom,
		To:     fixedNow,
	}).Return([]repository.DailyCount{
		{Date: time.Date(2025, 3, 8, 0, 0, 0, 0, time.UTC), Count: 2},
		{Date: time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC), Count: 5},
	}, nil)

	resp, err := svc.GetTrend(context.Background(), domain.KindLike, &models.PostTrendRequest{PostID: "p1", Period: "7d"})

	require.NoError(t, err)
	require.Len(t, resp.Data, 2)
	assert.Equal(t, "2025-03-08", resp.Data[0].Date)
	assert.Equal(t, uint64(2), resp.Data[0].Count)
	assert.Equal(t, "2025-03-12", resp.Data[1].Date)
	assert.Equal(t, uint64(5), resp.Data[1].Count)
	repo.AssertExpectations(t)
}

func TestStatsService_GetTrend_All(t *testing.T) {
	repo := new(MockEventRepository)
	svc := newTestStatsService(repo)

	repo.On("GetTrend", mock.Anything, mock.MatchedBy(func(q repository.TrendQuery) bool {
		return q.From.Equal(fixedNow.AddDate(0, 0, -AllTimeDays).Truncate(24*time.Hour)) &&
			q.Kind == domain.KindView
	})).Return([]repository.DailyCount{}, nil)

	resp, err := svc.GetTrend(context.Background(), domain.KindView, &models.PostTrendRequest{PostID: "p1", Period: "all"})

	require.NoError(t, err)
	assert.NotNil(t, resp.Data)
	assert.Empty(t, resp.Data)
}

func TestStatsService_GetTrend_InvalidPeriod(t *testing.T) {
	repo := new(MockEventRepository)
	svc := newTestStatsService(repo)

	_, err := svc.GetTrend(context.Background(), domain.KindView, &models.PostTrendRequest{PostID: "p1", Period: "invalid"})

	assert.ErrorIs(t, err, ErrInvalidArgument)
	repo.AssertNotCalled(t, "GetTrend", mock.Anything, mock.Anything)
}

func TestStatsService_GetTrend_EmptyPostID(t *testing.T) {
	repo := new(MockEventRepository)
	svc := newTestStatsService(repo)

	for _, kind := range []domain.EventKind{domain.KindView, domain.KindLike, domain.KindComment} {
		_, err := svc.GetTrend(context.Background(), kind, &models.PostTrendRequest{Period: "7d"})

		assert.ErrorIs(t, err, ErrInvalidArgument, string(kind))
		assert.Equal(t, "post_id is required", err.Error())
	}
	repo.AssertNotCalled(t, "GetTrend", mock.Anything, mock.Anything)
}

func TestStatsService_GetTopPosts(t *testing.T) {
	repo := new(MockEventRepository)
	svc := newTestStatsService(repo)
	repo.On("GetTopPosts", mock.Anything, domain.KindComment, TopLimit).Return([]repository.RankedPost{
		{PostID: "p9", Count: 40},
		{PostID: "p2", Count: 12},
	}, nil)

	resp, err := svc.GetTopPosts(context.Background(), &models.TopRequest{Metric: 2})

	require.NoError(t, err)
	require.Len(t, resp.Posts, 2)
	assert.Equal(t, "p9", resp.Posts[0].PostID)
	assert.Equal(t, uint64(40), resp.Posts[0].Count)
}

func TestStatsService_GetTopUsers(t *testing.T) {
	repo := new(MockEventRepository)
	svc := newTestStatsService(repo)
	repo.On("GetTopUsers", mock.Anything, domain.KindView, TopLimit).Return([]repository.RankedUser{
		{UserID: "u1", Count: 100},
	}, nil)

	resp, err := svc.GetTopUsers(context.Background(), &models.TopRequest{Metric: 0})

	require.NoError(t, err)
	require.Len(t, resp.Users, 1)
	assert.Equal(t, "u1", resp.Users[0].UserID)
}

func TestStatsService_Top_InvalidMetricIsNotADatabaseError(t *testing.T) {
	repo := new(MockEventRepository)
	svc := newTestStatsService(repo)
	repo.On("GetTopUsers", mock.Anything, domain.KindLike, TopLimit).Return(nil, errors.New("query timeout"))

	_, err := svc.GetTopPosts(context.Background(), &models.TopRequest{Metric: 5})
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = svc.GetTopUsers(context.Background(), &models.TopRequest{Metric: 1})
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidArgument)

	repo.AssertNotCalled(t, "GetTopPosts", mock.Anything, mock.Anything, mock.Anything)
}

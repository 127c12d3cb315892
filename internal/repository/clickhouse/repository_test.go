package clickhouse

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/garaevmir/NanoServices/internal/config"
	"github.com/garaevmir/NanoServices/internal/domain"
	"github.com/garaevmir/NanoServices/internal/repository"
)

// newTestRepository connects to the ClickHouse named by CLICKHOUSE_TEST_HOST or skips
func newTestRepository(t *testing.T) *Repository {
	t.Helper()

	host := os.Getenv("CLICKHOUSE_TEST_HOST")
	if host == "" {
		t.Skip("CLICKHOUSE_TEST_HOST not set")
	}

	cfg := &config.ClickHouse{
		Host:            host,
		Port:            "9000",
		Database:        "default",
		User:            "default",
		MaxOpenConns:    2,
		MaxIdleConns:    1,
		ConnMaxLifetime: 60,
	}
	if port := os.Getenv("CLICKHOUSE_TEST_PORT"); port != "" {
		cfg.Port = port
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := NewClient(ctx, cfg, zap.NewNop())
	require.NoError(t, err)

	repo := NewRepository(client, zap.NewNop())
	require.NoError(t, repo.InitSchema(ctx))

	t.Cleanup(func() {
		_ = repo.Close()
	})
	return repo
}

func TestRepository_DuplicateInsertsAreCountedTwice(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	postID := uuid.NewString()
	event := &domain.Event{
		EventTime: time.Now().UTC(),
		EventType: domain.KindView,
		PostID:    postID,
		UserID:    "user-1",
	}

	require.NoError(t, repo.InsertEvent(ctx, event))
	require.NoError(t, repo.InsertEvent(ctx, event))

	stats, err := repo.GetPostStats(ctx, postID)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), stats.Views)
	assert.Equal(t, uint64(0), stats.Likes)
	assert.Equal(t, uint64(0), stats.Comments)
}

func TestRepository_GetPostStats_UnknownPost(t *testing.T) {
	repo := newTestRepository(t)

	stats, err := repo.GetPostStats(context.Background(), uuid.NewString())

	require.NoError(t, err)
	assert.Equal(t, repository.PostStats{}, *stats)
}

func TestRepository_GetTrend_SparseAndOrdered(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	postID := uuid.NewString()
	now := time.Now().UTC()
	content := "nice"

	for _, ts := range []time.Time{now.AddDate(0, 0, -3), now, now.AddDate(0, 0, -3)} {
		require.NoError(t, repo.InsertEvent(ctx, &domain.Event{
			EventTime: ts,
			EventType: domain.KindComment,
			PostID:    postID,
			UserID:    "user-1",
			Content:   &content,
		}))
	}

	trend, err := repo.GetTrend(ctx, repository.TrendQuery{
		PostID: postID,
		Kind:   domain.KindComment,
		From:   now.AddDate(0, 0, -7),
		To:     now.Add(time.Minute),
	})

	require.NoError(t, err)
	require.Len(t, trend, 2)
	assert.Equal(t, uint64(2), trend[0].Count)
	assert.Equal(t, uint64(1), trend[1].Count)
	assert.True(t, trend[0].Date.Before(trend[1].Date))
}

func TestRepository_GetTopPosts_Integration(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	hot := uuid.NewString()
	for i := 0; i < 50; i++ {
		require.NoError(t, repo.InsertEvent(ctx, &domain.Event{
			EventTime: time.Now().UTC(),
			EventType: domain.KindLike,
			PostID:    hot,
			UserID:    uuid.NewString(),
		}))
	}

	top, err := repo.GetTopPosts(ctx, domain.KindLike, 10)

	require.NoError(t, err)
	assert.LessOrEqual(t, len(top), 10)
	for i := 1; i < len(top); i++ {
		assert.GreaterOrEqual(t, top[i-1].Count, top[i].Count)
	}
}

package clickhouse

import (
	"context"
	"fmt"

	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
	"go.uber.org/zap"

	"github.com/garaevmir/NanoServices/internal/domain"
	"github.com/garaevmir/NanoServices/internal/repository"
)

// Repository implements EventRepository for ClickHouse
type Repository struct {
	client *Client
	log    *zap.Logger
}

// NewRepository creates a new ClickHouse repository
func NewRepository(client *Client, log *zap.Logger) *Repository {
	return &Repository{
		client: client,
		log:    log,
	}
}

// InitSchema creates the append-only events table. Plain MergeTree keeps every
// delivered copy of an event, so redeliveries are counted again.
func (r *Repository) InitSchema(ctx context.Context) error {
	query := `
	CREATE TABLE IF NOT EXISTS events (
		event_time DateTime64(3, 'UTC'),
		event_type LowCardinality(String),
		post_id String,
		user_id String,
		content Nullable(String)
	) ENGINE = MergeTree
	PARTITION BY toYYYYMM(event_time)
	ORDER BY (event_type, post_id, event_time)
	SETTINGS index_granularity = 8192
	`

	if err := r.client.Conn().Exec(ctx, query); err != nil {
		return fmt.Errorf("failed to create events table: %w", err)
	}

	r.log.Info("ClickHouse schema initialized successfully")
	return nil
}

// InsertEvent appends a single event row
func (r *Repository) InsertEvent(ctx context.Context, event *domain.Event) error {
	batch, err := r.client.Conn().PrepareBatch(ctx,
		"INSERT INTO events (event_time, event_type, post_id, user_id, content)")
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}

	err = batch.Append(
		event.EventTime.UTC(),
		string(event.EventType),
		event.PostID,
		event.UserID,
		event.Content,
	)
	if err != nil {
		_ = batch.Abort()
		return fmt.Errorf("failed to append event: %w", err)
	}

	if err := batch.Send(); err != nil {
		return fmt.Errorf("failed to send event: %w", err)
	}

	return nil
}

// GetPostStats counts views, likes and comments of a post in one scan
func (r *Repository) GetPostStats(ctx context.Context, postID string) (*repository.PostStats, error) {
	query := `
		SELECT
			countIf(event_type = 'view') AS views,
			countIf(event_type = 'like') AS likes,
			countIf(event_type = 'comment') AS comments
		FROM events
		WHERE post_id = ?
	`

	var stats repository.PostStats
	row := r.client.Conn().QueryRow(ctx, query, postID)
	if err := row.Scan(&stats.Views, &stats.Likes, &stats.Comments); err != nil {
		return nil, fmt.Errorf("failed to query post stats: %w", err)
	}

	return &stats, nil
}

// GetTrend returns daily counts for a post and kind
func (r *Repository) GetTrend(ctx context.Context, q repository.TrendQuery) ([]repository.DailyCount, error) {
	query := `
		SELECT
			toDate(event_time) AS day,
			count() AS total_count
		FROM events
		WHERE post_id = ? AND event_type = ? AND event_time >= ? AND event_time <= ?
		GROUP BY day
		ORDER BY day ASC
	`

	rows, err := r.client.Conn().Query(ctx, query, q.PostID, string(q.Kind), q.From.UTC(), q.To.UTC())
	if err != nil {
		return nil, fmt.Errorf("failed to query trend: %w", err)
	}
	defer r.closeRows(rows)

	result := []repository.DailyCount{}
	for rows.Next() {
		var item repository.DailyCount
		if err := rows.Scan(&item.Date, &item.Count); err != nil {
			return nil, fmt.Errorf("failed to scan trend row: %w", err)
		}
		result = append(result, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating trend rows: %w", err)
	}

	return result, nil
}

// GetTopPosts ranks posts by event count for a kind
func (r *Repository) GetTopPosts(ctx context.Context, kind domain.EventKind, limit int) ([]repository.RankedPost, error) {
	rows, err := r.client.Conn().Query(ctx, topQuery("post_id"), string(kind), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query top posts: %w", err)
	}
	defer r.closeRows(rows)

	result := []repository.RankedPost{}
	for rows.Next() {
		var item repository.RankedPost
		if err := rows.Scan(&item.PostID, &item.Count); err != nil {
			return nil, fmt.Errorf("failed to scan top posts row: %w", err)
		}
		result = append(result, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating top posts rows: %w", err)
	}

	return result, nil
}

// GetTopUsers ranks users by event count for a kind
func (r *Repository) GetTopUsers(ctx context.Context, kind domain.EventKind, limit int) ([]repository.RankedUser, error) {
	rows, err := r.client.Conn().Query(ctx, topQuery("user_id"), string(kind), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query top users: %w", err)
	}
	defer r.closeRows(rows)

	result := []repository.RankedUser{}
	for rows.Next() {
		var item repository.RankedUser
		if err := rows.Scan(&item.UserID, &item.Count); err != nil {
			return nil, fmt.Errorf("failed to scan top users row: %w", err)
		}
		result = append(result, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating top users rows: %w", err)
	}

	return result, nil
}

// Ping checks if the ClickHouse connection is alive
func (r *Repository) Ping(ctx context.Context) error {
	return r.client.Conn().Ping(ctx)
}

// Close closes the ClickHouse connection
func (r *Repository) Close() error {
	return r.client.Close()
}

// topQuery builds a ranking query over a fixed column name, never user input
func topQuery(column string) string {
	return fmt.Sprintf(`
		SELECT
			%[1]s,
			count() AS total_count
		FROM events
		WHERE event_type = ?
		GROUP BY %[1]s
		ORDER BY total_count DESC
		LIMIT ?
	`, column)
}

func (r *Repository) closeRows(rows driver.Rows) {
	if err := rows.Close(); err != nil {
		r.log.Error("Failed to close rows", zap.Error(err))
	}
}

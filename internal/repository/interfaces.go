package repository

import (
	"context"
	"errors"
	"time"

	"github.com/garaevmir/NanoServices/internal/domain"
)

// ErrNotFound is returned when a row does not exist or is not visible to the caller
var ErrNotFound = errors.New("not found")

// PostStats holds per-kind counters for one post
type PostStats struct {
	Views    uint64
	Likes    uint64
	Comments uint64
}

// TrendQuery represents a daily trend query parameters
type TrendQuery struct {
	PostID string
	Kind   domain.EventKind
	From   time.Time
	To     time.Time
}

// DailyCount is the number of events on one calendar day (UTC)
type DailyCount struct {
	Date  time.Time
	Count uint64
}

// RankedPost is a leaderboard entry keyed by post
type RankedPost struct {
	PostID string
	Count  uint64
}

// RankedUser is a leaderboard entry keyed by user
type RankedUser struct {
	UserID string
	Count  uint64
}

// EventRepository defines the interface for event storage operations
type EventRepository interface {
	// InsertEvent appends one event row. Repeated inserts of the same event produce repeated rows.
	InsertEvent(ctx context.Context, event *domain.Event) error

	// GetPostStats counts events of every kind for a post
	GetPostStats(ctx context.Context, postID string) (*PostStats, error)

	// GetTrend returns per-day counts in [From, To], ordered by date, omitting empty days
	GetTrend(ctx context.Context, query TrendQuery) ([]DailyCount, error)

	// GetTopPosts returns the posts with the most events of the given kind
	GetTopPosts(ctx context.Context, kind domain.EventKind, limit int) ([]RankedPost, error)

	// GetTopUsers returns the users with the most events of the given kind
	GetTopUsers(ctx context.Context, kind domain.EventKind, limit int) ([]RankedUser, error)

	// InitSchema initializes the database schema (creates tables if they don't exist)
	InitSchema(ctx context.Context) error

	// Ping checks if the database connection is alive
	Ping(ctx context.Context) error

	// Close closes the repository and releases resources
	Close() error
}

// PostRepository defines the interface for post and comment storage operations
type PostRepository interface {
	CreatePost(ctx context.Context, post *domain.Post) error

	// GetPost returns ErrNotFound when the post is missing or private to another user
	GetPost(ctx context.Context, postID, viewerID string) (*domain.Post, error)

	// UpdatePost overwrites the mutable fields of a post owned by post.UserID
	UpdatePost(ctx context.Context, post *domain.Post) error

	// DeletePost reports whether a post with this id and owner was removed
	DeletePost(ctx context.Context, postID, userID string) (bool, error)

	// ListPosts returns a newest-first page of posts visible to viewerID and the visible total
	ListPosts(ctx context.Context, viewerID string, limit, offset int) ([]domain.Post, int64, error)

	CreateComment(ctx context.Context, comment *domain.Comment) error

	// ListComments returns a newest-first page of comments and the post's comment total
	ListComments(ctx context.Context, postID string, limit, offset int) ([]domain.Comment, int64, error)

	InitSchema(ctx context.Context) error
	Ping(ctx context.Context) error
	Close() error
}

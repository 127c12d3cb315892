package service

import (
	"context"

	"github.com/garaevmir/NanoServices/internal/domain"
	"github.com/garaevmir/NanoServices/internal/models"
)

// EventEmitter is a best-effort side effect: it never reports whether the event was delivered
type EventEmitter interface {
	Emit(ctx context.Context, kind domain.EventKind, userID, postID string, content *string)
}

// PostServicer defines the interface for post service operations
type PostServicer interface {
	CreatePost(ctx context.Context, req *models.CreatePostRequest) (*models.PostResponse, error)
	DeletePost(ctx context.Context, req *models.PostRequest) (*models.DeletePostResponse, error)
	UpdatePost(ctx context.Context, req *models.UpdatePostRequest) (*models.PostResponse, error)
	GetPost(ctx context.Context, req *models.PostRequest) (*models.PostResponse, error)
	ListPosts(ctx context.Context, req *models.ListPostsRequest) (*models.ListPostsResponse, error)
	CreateComment(ctx context.Context, req *models.CreateCommentRequest) (*models.CommentResponse, error)
	GetComments(ctx context.Context, req *models.GetCommentsRequest) (*models.CommentsResponse, error)
	ViewPost(ctx context.Context, req *models.InteractionRequest) (*models.InteractionResponse, error)
	LikePost(ctx context.Context, req *models.InteractionRequest) (*models.InteractionResponse, error)
}

// StatsServicer defines the interface for statistics service operations
type StatsServicer interface {
	GetPostStats(ctx context.Context, req *models.PostStatsRequest) (*models.PostStatsResponse, error)
	GetTrend(ctx context.Context, kind domain.EventKind, req *models.PostTrendRequest) (*models.PostTrendResponse, error)
	GetTopPosts(ctx context.Context, req *models.TopRequest) (*models.TopPostsResponse, error)
	GetTopUsers(ctx context.Context, req *models.TopRequest) (*models.TopUsersResponse, error)
}

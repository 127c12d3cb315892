package handler

import (
	"context"

	"google.golang.org/grpc"

	"github.com/garaevmir/NanoServices/internal/models"
)

// PostsClient is the subset of rpc.PostServiceClient the gateway calls
type PostsClient interface {
	CreatePost(ctx context.Context, in *models.CreatePostRequest, opts ...grpc.CallOption) (*models.PostResponse, error)
	DeletePost(ctx context.Context, in *models.PostRequest, opts ...grpc.CallOption) (*models.DeletePostResponse, error)
	UpdatePost(ctx context.Context, in *models.UpdatePostRequest, opts ...grpc.CallOption) (*models.PostResponse, error)
	GetPost(ctx context.Context, in *models.PostRequest, opts ...grpc.CallOption) (*models.PostResponse, error)
	ListPosts(ctx context.Context, in *models.ListPostsRequest, opts ...grpc.CallOption) (*models.ListPostsResponse, error)
	CreateComment(ctx context.Context, in *models.CreateCommentRequest, opts ...grpc.CallOption) (*models.CommentResponse, error)
	GetComments(ctx context.Context, in *models.GetCommentsRequest, opts ...grpc.CallOption) (*models.CommentsResponse, error)
	ViewPost(ctx context.Context, in *models.InteractionRequest, opts ...grpc.CallOption) (*models.InteractionResponse, error)
	LikePost(ctx context.Context, in *models.InteractionRequest, opts ...grpc.CallOption) (*models.InteractionResponse, error)
}

// StatsClient is the subset of rpc.StatsServiceClient the gateway calls
type StatsClient interface {
	GetPostStats(ctx context.Context, in *models.PostStatsRequest, opts ...grpc.CallOption) (*models.PostStatsResponse, error)
	GetViewsTrend(ctx context.Context, in *models.PostTrendRequest, opts ...grpc.CallOption) (*models.PostTrendResponse, error)
	GetLikesTrend(ctx context.Context, in *models.PostTrendRequest, opts ...grpc.CallOption) (*models.PostTrendResponse, error)
	GetCommentsTrend(ctx context.Context, in *models.PostTrendRequest, opts ...grpc.CallOption) (*models.PostTrendResponse, error)
	GetTopPosts(ctx context.Context, in *models.TopRequest, opts ...grpc.CallOption) (*models.TopPostsResponse, error)
	GetTopUsers(ctx context.Context, in *models.TopRequest, opts ...grpc.CallOption) (*models.TopUsersResponse, error)
}

// HealthCheck is one named dependency check of the ops endpoint
type HealthCheck struct {
	Name  string
	Check func(ctx context.Context) error
}

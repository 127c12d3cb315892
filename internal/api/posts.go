package api

import (
	"context"

	"github.com/garaevmir/NanoServices/internal/models"
	"github.com/garaevmir/NanoServices/internal/rpc"
	"github.com/garaevmir/NanoServices/internal/service"
)

// PostServer exposes a PostServicer as posts.PostService
type PostServer struct {
	service service.PostServicer
}

var _ rpc.PostServiceServer = (*PostServer)(nil)

// NewPostServer creates a new posts gRPC server
func NewPostServer(svc service.PostServicer) *PostServer {
	return &PostServer{service: svc}
}

func (s *PostServer) CreatePost(ctx context.Context, req *models.CreatePostRequest) (*models.PostResponse, error) {
	resp, err := s.service.CreatePost(ctx, req)
	return resp, toStatus(err)
}

func (s *PostServer) DeletePost(ctx context.Context, req *models.PostRequest) (*models.DeletePostResponse, error) {
	resp, err := s.service.DeletePost(ctx, req)
	return resp, toStatus(err)
}

func (s *PostServer) UpdatePost(ctx context.Context, req *models.UpdatePostRequest) (*models.PostResponse, error) {
	resp, err := s.service.UpdatePost(ctx, req)
	return resp, toStatus(err)
}

func (s *PostServer) GetPost(ctx context.Context, req *models.PostRequest) (*models.PostResponse, error) {
	resp, err := s.service.GetPost(ctx, req)
	return resp, toStatus(err)
}

func (s *PostServer) ListPosts(ctx context.Context, req *models.ListPostsRequest) (*models.ListPostsResponse, error) {
	resp, err := s.service.ListPosts(ctx, req)
	return resp, toStatus(err)
}

func (s *PostServer) CreateComment(ctx context.Context, req *models.CreateCommentRequest) (*models.CommentResponse, error) {
	resp, err := s.service.CreateComment(ctx, req)
	return resp, toStatus(err)
}

func (s *PostServer) GetComments(ctx context.Context, req *models.GetCommentsRequest) (*models.CommentsResponse, error) {
	resp, err := s.service.GetComments(ctx, req)
	return resp, toStatus(err)
}

func (s *PostServer) ViewPost(ctx context.Context, req *models.InteractionRequest) (*models.InteractionResponse, error) {
	resp, err := s.service.ViewPost(ctx, req)
	return resp, toStatus(err)
}

func (s *PostServer) LikePost(ctx context.Context, req *models.InteractionRequest) (*models.InteractionResponse, error) {
	resp, err := s.service.LikePost(ctx, req)
	return resp, toStatus(err)
}

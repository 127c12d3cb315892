package api

import (
	"context"

	"github.com/garaevmir/NanoServices/internal/domain"
	"github.com/garaevmir/NanoServices/internal/models"
	"github.com/garaevmir/NanoServices/internal/rpc"
	"github.com/garaevmir/NanoServices/internal/service"
)

// StatsServer exposes a StatsServicer as stats.StatsService
type StatsServer struct {
	service service.StatsServicer
}

var _ rpc.StatsServiceServer = (*StatsServer)(nil)

// NewStatsServer creates a new statistics gRPC server
func NewStatsServer(svc service.StatsServicer) *StatsServer {
	return &StatsServer{service: svc}
}

func (s *StatsServer) GetPostStats(ctx context.Context, req *models.PostStatsRequest) (*models.PostStatsResponse, error) {
	resp, err := s.service.GetPostStats(ctx, req)
	return resp, toStatus(err)
}

func (s *StatsServer) GetViewsTrend(ctx context.Context, req *models.PostTrendRequest) (*models.PostTrendResponse, error) {
	return s.trend(ctx, domain.KindView, req)
}

func (s *StatsServer) GetLikesTrend(ctx context.Context, req *models.PostTrendRequest) (*models.PostTrendResponse, error) {
	return s.trend(ctx, domain.KindLike, req)
}

func (s *StatsServer) GetCommentsTrend(ctx context.Context, req *models.PostTrendRequest) (*models.PostTrendResponse, error) {
	return s.trend(ctx, domain.KindComment, req)
}

func (s *StatsServer) GetTopPosts(ctx context.Context, req *models.TopRequest) (*models.TopPostsResponse, error) {
	resp, err := s.service.GetTopPosts(ctx, req)
	return resp, toStatus(err)
}

func (s *StatsServer) GetTopUsers(ctx context.Context, req *models.TopRequest) (*models.TopUsersResponse, error) {
	resp, err := s.service.GetTopUsers(ctx, req)
	return resp, toStatus(err)
}

func (s *StatsServer) trend(ctx context.Context, kind domain.EventKind, req *models.PostTrendRequest) (*models.PostTrendResponse, error) {
	resp, err := s.service.GetTrend(ctx, kind, req)
	return resp, toStatus(err)
}

package rpc

import (
	"context"

	"google.golang.org/grpc"

	"github.com/garaevmir/NanoServices/internal/models"
)

// StatsServiceName is the fully-qualified gRPC service name
const StatsServiceName = "stats.StatsService"

// StatsServiceServer is the server API for the statistics service
type StatsServiceServer interface {
	GetPostStats(context.Context, *models.PostStatsRequest) (*models.PostStatsResponse, error)
	GetViewsTrend(context.Context, *models.PostTrendRequest) (*models.PostTrendResponse, error)
	GetLikesTrend(context.Context, *models.PostTrendRequest) (*models.PostTrendResponse, error)
	GetCommentsTrend(context.Context, *models.PostTrendRequest) (*models.PostTrendResponse, error)
	GetTopPosts(context.Context, *models.TopRequest) (*models.TopPostsResponse, error)
	GetTopUsers(context.Context, *models.TopRequest) (*models.TopUsersResponse, error)
}

// StatsServiceDesc describes stats.StatsService for grpc.Server.RegisterService
var StatsServiceDesc = grpc.ServiceDesc{
	ServiceName: StatsServiceName,
	HandlerType: (*StatsServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "GetPostStats", Handler: unary(fullMethod(StatsServiceName, "GetPostStats"), StatsServiceServer.GetPostStats)},
		{MethodName: "GetViewsTrend", Handler: unary(fullMethod(StatsServiceName, "GetViewsTrend"), StatsServiceServer.GetViewsTrend)},
		{MethodName: "GetLikesTrend", Handler: unary(fullMethod(StatsServiceName, "GetLikesTrend"), StatsServiceServer.GetLikesTrend)},
		{MethodName: "GetCommentsTrend", Handler: unary(fullMethod(StatsServiceName, "GetCommentsTrend"), StatsServiceServer.GetCommentsTrend)},
		{MethodName: "GetTopPosts", Handler: unary(fullMethod(StatsServiceName, "GetTopPosts"), StatsServiceServer.GetTopPosts)},
		{MethodName: "GetTopUsers", Handler: unary(fullMethod(StatsServiceName, "GetTopUsers"), StatsServiceServer.GetTopUsers)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "stats",
}

// RegisterStatsServiceServer registers srv on s
func RegisterStatsServiceServer(s grpc.ServiceRegistrar, srv StatsServiceServer) {
	s.RegisterService(&StatsServiceDesc, srv)
}

// StatsServiceClient calls stats.StatsService over a client connection
type StatsServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewStatsServiceClient creates a new statistics client
func NewStatsServiceClient(cc grpc.ClientConnInterface) *StatsServiceClient {
	return &StatsServiceClient{cc: cc}
}

func (c *StatsServiceClient) GetPostStats(ctx context.Context, in *models.PostStatsRequest, opts ...grpc.CallOption) (*models.PostStatsResponse, error) {
	return invoke[models.PostStatsResponse](ctx, c.cc, fullMethod(StatsServiceName, "GetPostStats"), in, opts...)
}

func (c *StatsServiceClient) GetViewsTrend(ctx context.Context, in *models.PostTrendRequest, opts ...grpc.CallOption) (*models.PostTrendResponse, error) {
	return invoke[models.PostTrendResponse](ctx, c.cc, fullMethod(StatsServiceName, "GetViewsTrend"), in, opts...)
}

func (c *StatsServiceClient) GetLikesTrend(ctx context.Context, in *models.PostTrendRequest, opts ...grpc.CallOption) (*models.PostTrendResponse, error) {
	return invoke[models.PostTrendResponse](ctx, c.cc, fullMethod(StatsServiceName, "GetLikesTrend"), in, opts...)
}

func (c *StatsServiceClient) GetCommentsTrend(ctx context.Context, in *models.PostTrendRequest, opts ...grpc.CallOption) (*models.PostTrendResponse, error) {
	return invoke[models.PostTrendResponse](ctx, c.cc, fullMethod(StatsServiceName, "GetCommentsTrend"), in, opts...)
}

func (c *StatsServiceClient) GetTopPosts(ctx context.Context, in *models.TopRequest, opts ...grpc.CallOption) (*models.TopPostsResponse, error) {
	return invoke[models.TopPostsResponse](ctx, c.cc, fullMethod(StatsServiceName, "GetTopPosts"), in, opts...)
}

func (c *StatsServiceClient) GetTopUsers(ctx context.Context, in *models.TopRequest, opts ...grpc.CallOption) (*models.TopUsersResponse, error) {
	return invoke[models.TopUsersResponse](ctx, c.cc, fullMethod(StatsServiceName, "GetTopUsers"), in, opts...)
}

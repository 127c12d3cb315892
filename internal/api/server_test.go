package api

import (
	"context"
	"errors"
	"fmt"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"

	"github.com/garaevmir/NanoServices/internal/domain"
	"github.com/garaevmir/NanoServices/internal/models"
	"github.com/garaevmir/NanoServices/internal/rpc"
	"github.com/garaevmir/NanoServices/internal/service"
)

// MockPostService is a mock implementation of service.PostServicer
type MockPostService struct {
	mock.Mock
}

func (m *MockPostService) CreatePost(ctx context.Context, req *models.CreatePostRequest) (*models.PostResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PostResponse), args.Error(1)
}

func (m *MockPostService) DeletePost(ctx context.Context, req *models.PostRequest) (*models.DeletePostResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DeletePostResponse), args.Error(1)
}

func (m *MockPostService) UpdatePost(ctx context.Context, req *models.UpdatePostRequest) (*models.PostResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PostResponse), args.Error(1)
}

func (m *MockPostService) GetPost(ctx context.Context, req *models.PostRequest) (*models.PostResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PostResponse), args.Error(1)
}

func (m *MockPostService) ListPosts(ctx context.Context, req *models.ListPostsRequest) (*models.ListPostsResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ListPostsResponse), args.Error(1)
}

func (m *MockPostService) CreateComment(ctx context.Context, req *models.CreateCommentRequest) (*models.CommentResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CommentResponse), args.Error(1)
}

func (m *MockPostService) GetComments(ctx context.Context, req *models.GetCommentsRequest) (*models.CommentsResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CommentsResponse), args.Error(1)
}

func (m *MockPostService) ViewPost(ctx context.Context, req *models.InteractionRequest) (*models.InteractionResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.InteractionResponse), args.Error(1)
}

func (m *MockPostService) LikePost(ctx context.Context, req *models.InteractionRequest) (*models.InteractionResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.InteractionResponse), args.Error(1)
}

// MockStatsService is a mock implementation of service.StatsServicer
type MockStatsService struct {
	mock.Mock
}

func (m *MockStatsService) GetPostStats(ctx context.Context, req *models.PostStatsRequest) (*models.PostStatsResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PostStatsResponse), args.Error(1)
}

func (m *MockStatsService) GetTrend(ctx context.Context, kind domain.EventKind, req *models.PostTrendRequest) (*models.PostTrendResponse, error) {
	args := m.Called(ctx, kind, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PostTrendResponse), args.Error(1)
}

func (m *MockStatsService) GetTopPosts(ctx context.Context, req *models.TopRequest) (*models.TopPostsResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TopPostsResponse), args.Error(1)
}

func (m *MockStatsService) GetTopUsers(ctx context.Context, req *models.TopRequest) (*models.TopUsersResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TopUsersResponse), args.Error(1)
}

// dial starts an in-memory server with register applied and returns a connected client
func dial(t *testing.T, serviceName string, register func(*grpc.Server)) *grpc.ClientConn {
	t.Helper()

	lis := bufconn.Listen(1 << 20)
	server, _ := NewGRPCServer(serviceName, zap.NewNop())
	register(server)

	go func() { _ = server.Serve(lis) }()
	t.Cleanup(server.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	return conn
}

func TestPostServer_RoundTrip(t *testing.T) {
	svc := new(MockPostService)
	conn := dial(t, rpc.PostServiceName, func(s *grpc.Server) {
		rpc.RegisterPostServiceServer(s, NewPostServer(svc))
	})
	client := rpc.NewPostServiceClient(conn)

	svc.On("CreatePost", mock.Anything, &models.CreatePostRequest{
		Title:  "Hello",
		UserID: "u1",
		Tags:   []string{"go"},
	}).Return(&models.PostResponse{
		ID:        "p1",
		Title:     "Hello",
		UserID:    "u1",
		Tags:      []string{"go"},
		CreatedAt: "2025-01-01T00:00:00Z",
		UpdatedAt: "2025-01-01T00:00:00Z",
	}, nil)

	resp, err := client.CreatePost(context.Background(), &models.CreatePostRequest{
		Title:  "Hello",
		UserID: "u1",
		Tags:   []string{"go"},
	})

	require.NoError(t, err)
	assert.Equal(t, "p1", resp.ID)
	assert.Equal(t, []string{"go"}, resp.Tags)
	assert.Equal(t, resp.CreatedAt, resp.UpdatedAt)
	svc.AssertExpectations(t)
}

func TestPostServer_ErrorCodes(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		expectCode  codes.Code
		expectInMsg string
	}{
		{
			name:        "not found",
			err:         &service.Error{Kind: service.ErrNotFound, Message: "Post not found or permission denied"},
			expectCode:  codes.NotFound,
			expectInMsg: "Post not found or permission denied",
		},
		{
			name:        "invalid argument",
			err:         fmt.Errorf("wrapped: %w", &service.Error{Kind: service.ErrInvalidArgument, Message: "bad input"}),
			expectCode:  codes.InvalidArgument,
			expectInMsg: "bad input",
		},
		{
			name:        "internal",
			err:         errors.New("failed to get post: connection refused"),
			expectCode:  codes.Internal,
			expectInMsg: "connection refused",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockPostService)
			conn := dial(t, rpc.PostServiceName, func(s *grpc.Server) {
				rpc.RegisterPostServiceServer(s, NewPostServer(svc))
			})
			client := rpc.NewPostServiceClient(conn)
			svc.On("GetPost", mock.Anything, mock.Anything).Return(nil, tt.err)

			resp, err := client.GetPost(context.Background(), &models.PostRequest{PostID: "p1", UserID: "u1"})

			assert.Nil(t, resp)
			st, ok := status.FromError(err)
			require.True(t, ok)
			assert.Equal(t, tt.expectCode, st.Code())
			assert.Contains(t, st.Message(), tt.expectInMsg)
		})
	}
}

func TestPostServer_PanicBecomesInternal(t *testing.T) {
	svc := new(MockPostService)
	conn := dial(t, rpc.PostServiceName, func(s *grpc.Server) {
		rpc.RegisterPostServiceServer(s, NewPostServer(svc))
	})
	client := rpc.NewPostServiceClient(conn)
	svc.On("ViewPost", mock.Anything, mock.Anything).Run(func(mock.Arguments) {
		panic("boom")
	}).Return(nil, nil)

	_, err := client.ViewPost(context.Background(), &models.InteractionRequest{PostID: "p1", UserID: "u1"})

	assert.Equal(t, codes.Internal, status.Code(err))

	// the server keeps serving after a panic
	svc.On("LikePost", mock.Anything, mock.Anything).Return(&models.InteractionResponse{Success: true}, nil)
	like, err := client.LikePost(context.Background(), &models.InteractionRequest{PostID: "p1", UserID: "u1"})
	require.NoError(t, err)
	assert.True(t, like.Success)
}

func TestStatsServer_TrendMethodsFixTheKind(t *testing.T) {
	svc := new(MockStatsService)
	conn := dial(t, rpc.StatsServiceName, func(s *grpc.Server) {
		rpc.RegisterStatsServiceServer(s, NewStatsServer(svc))
	})
	client := rpc.NewStatsServiceClient(conn)
	req := &models.PostTrendRequest{PostID: "p1", Period: "7d"}

	for _, kind := range []domain.EventKind{domain.KindView, domain.KindLike, domain.KindComment} {
		svc.On("GetTrend", mock.Anything, kind, req).Return(&models.PostTrendResponse{
			Data: []*models.TrendItem{{Date: "2025-01-02", Count: 4}},
		}, nil).Once()
	}

	views, err := client.GetViewsTrend(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, views.Data, 1)
	assert.Equal(t, "2025-01-02", views.Data[0].Date)

	_, err = client.GetLikesTrend(context.Background(), req)
	require.NoError(t, err)

	_, err = client.GetCommentsTrend(context.Background(), req)
	require.NoError(t, err)

	svc.AssertExpectations(t)
}

func TestStatsServer_InvalidMetricIsInvalidArgument(t *testing.T) {
	svc := new(MockStatsService)
	conn := dial(t, rpc.StatsServiceName, func(s *grpc.Server) {
		rpc.RegisterStatsServiceServer(s, NewStatsServer(svc))
	})
	client := rpc.NewStatsServiceClient(conn)

	svc.On("GetTopPosts", mock.Anything, &models.TopRequest{Metric: 5}).
		Return(nil, &service.Error{Kind: service.ErrInvalidArgument, Message: "invalid metric 5"})
	svc.On("GetTopUsers", mock.Anything, &models.TopRequest{Metric: 0}).
		Return(nil, errors.New("failed to get top users: clickhouse down"))

	_, err := client.GetTopPosts(context.Background(), &models.TopRequest{Metric: 5})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))

	_, err = client.GetTopUsers(context.Background(), &models.TopRequest{Metric: 0})
	assert.Equal(t, codes.Internal, status.Code(err))
}

func TestNewGRPCServer_HealthService(t *testing.T) {
	conn := dial(t, rpc.StatsServiceName, func(*grpc.Server) {})

	resp, err := healthpb.NewHealthClient(conn).Check(context.Background(), &healthpb.HealthCheckRequest{
		Service: rpc.StatsServiceName,
	})

	require.NoError(t, err)
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, resp.Status)
}

func TestToStatus(t *testing.T) {
	assert.NoError(t, toStatus(nil))
	assert.Equal(t, codes.DeadlineExceeded, status.Code(toStatus(fmt.Errorf("query: %w", context.DeadlineExceeded))))
	assert.Equal(t, codes.Canceled, status.Code(toStatus(context.Canceled)))
}

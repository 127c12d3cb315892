package rpc

import (
	"context"

	"google.golang.org/grpc"

	"github.com/garaevmir/NanoServices/internal/models"
)

// PostServiceName is the fully-qualified gRPC service name
const PostServiceName = "posts.PostService"

// PostServiceServer is the server API for the posts service
type PostServiceServer interface {
	CreatePost(context.Context, *models.CreatePostRequest) (*models.PostResponse, error)
	DeletePost(context.Context, *models.PostRequest) (*models.DeletePostResponse, error)
	UpdatePost(context.Context, *models.UpdatePostRequest) (*models.PostResponse, error)
	GetPost(context.Context, *models.PostRequest) (*models.PostResponse, error)
	ListPosts(context.Context, *models.ListPostsRequest) (*models.ListPostsResponse, error)
	CreateComment(context.Context, *models.CreateCommentRequest) (*models.CommentResponse, error)
	GetComments(context.Context, *models.GetCommentsRequest) (*models.CommentsResponse, error)
	ViewPost(context.Context, *models.InteractionRequest) (*models.InteractionResponse, error)
	LikePost(context.Context, *models.InteractionRequest) (*models.InteractionResponse, error)
}

// PostServiceDesc describes posts.PostService for grpc.Server.RegisterService
var PostServiceDesc = grpc.ServiceDesc{
	ServiceName: PostServiceName,
	HandlerType: (*PostServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "CreatePost", Handler: unary(fullMethod(PostServiceName, "CreatePost"), PostServiceServer.CreatePost)},
		{MethodName: "DeletePost", Handler: unary(fullMethod(PostServiceName, "DeletePost"), PostServiceServer.DeletePost)},
		{MethodName: "UpdatePost", Handler: unary(fullMethod(PostServiceName, "UpdatePost"), PostServiceServer.UpdatePost)},
		{MethodName: "GetPost", Handler: unary(fullMethod(PostServiceName, "GetPost"), PostServiceServer.GetPost)},
		{MethodName: "ListPosts", Handler: unary(fullMethod(PostServiceName, "ListPosts"), PostServiceServer.ListPosts)},
		{MethodName: "CreateComment", Handler: unary(fullMethod(PostServiceName, "CreateComment"), PostServiceServer.CreateComment)},
		{MethodName: "GetComments", Handler: unary(fullMethod(PostServiceName, "GetComments"), PostServiceServer.GetComments)},
		{MethodName: "ViewPost", Handler: unary(fullMethod(PostServiceName, "ViewPost"), PostServiceServer.ViewPost)},
		{MethodName: "LikePost", Handler: unary(fullMethod(PostServiceName, "LikePost"), PostServiceServer.LikePost)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "posts",
}

// RegisterPostServiceServer registers srv on s
func RegisterPostServiceServer(s grpc.ServiceRegistrar, srv PostServiceServer) {
	s.RegisterService(&PostServiceDesc, srv)
}

// PostServiceClient calls posts.PostService over a client connection
type PostServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewPostServiceClient creates a new posts client
func NewPostServiceClient(cc grpc.ClientConnInterface) *PostServiceClient {
	return &PostServiceClient{cc: cc}
}

func (c *PostServiceClient) CreatePost(ctx context.Context, in *models.CreatePostRequest, opts ...grpc.CallOption) (*models.PostResponse, error) {
	return invoke[models.PostResponse](ctx, c.cc, fullMethod(PostServiceName, "CreatePost"), in, opts...)
}

func (c *PostServiceClient) DeletePost(ctx context.Context, in *models.PostRequest, opts ...grpc.CallOption) (*models.DeletePostResponse, error) {
	return invoke[models.DeletePostResponse](ctx, c.cc, fullMethod(PostServiceName, "DeletePost"), in, opts...)
}

func (c *PostServiceClient) UpdatePost(ctx context.Context, in *models.UpdatePostRequest, opts ...grpc.CallOption) (*models.PostResponse, error) {
	return invoke[models.PostResponse](ctx, c.cc, fullMethod(PostServiceName, "UpdatePost"), in, opts...)
}

func (c *PostServiceClient) GetPost(ctx context.Context, in *models.PostRequest, opts ...grpc.CallOption) (*models.PostResponse, error) {
	return invoke[models.PostResponse](ctx, c.cc, fullMethod(PostServiceName, "GetPost"), in, opts...)
}

func (c *PostServiceClient) ListPosts(ctx context.Context, in *models.ListPostsRequest, opts ...grpc.CallOption) (*models.ListPostsResponse, error) {
	return invoke[models.ListPostsResponse](ctx, c.cc, fullMethod(PostServiceName, "ListPosts"), in, opts...)
}

func (c *PostServiceClient) CreateComment(ctx context.Context, in *models.CreateCommentRequest, opts ...grpc.CallOption) (*models.CommentResponse, error) {
	return invoke[models.CommentResponse](ctx, c.cc, fullMethod(PostServiceName, "CreateComment"), in, opts...)
}

func (c *PostServiceClient) GetComments(ctx context.Context, in *models.GetCommentsRequest, opts ...grpc.CallOption) (*models.CommentsResponse, error) {
	return invoke[models.CommentsResponse](ctx, c.cc, fullMethod(PostServiceName, "GetComments"), in, opts...)
}

func (c *PostServiceClient) ViewPost(ctx context.Context, in *models.InteractionRequest, opts ...grpc.CallOption) (*models.InteractionResponse, error) {
	return invoke[models.InteractionResponse](ctx, c.cc, fullMethod(PostServiceName, "ViewPost"), in, opts...)
}

func (c *PostServiceClient) LikePost(ctx context.Context, in *models.InteractionRequest, opts ...grpc.CallOption) (*models.InteractionResponse, error) {
	return invoke[models.InteractionResponse](ctx, c.cc, fullMethod(PostServiceName, "LikePost"), in, opts...)
}

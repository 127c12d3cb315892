package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/garaevmir/NanoServices/internal/domain"
	"github.com/garaevmir/NanoServices/internal/models"
	"github.com/garaevmir/NanoServices/internal/repository"
)

// Pagination defaults
const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

const msgPostNotFound = "Post not found or permission denied"

// PostService implements post and comment operations and emits interaction events
type PostService struct {
	repository repository.PostRepository
	events     EventEmitter
	log        *zap.Logger
	now        func() time.Time
	newID      func() string
}

// NewPostService creates a new post service
func NewPostService(repo repository.PostRepository, events EventEmitter, log *zap.Logger) *PostService {
	return &PostService{
		repository: repo,
		events:     events,
		log:        log,
		now:        time.Now,
		newID:      uuid.NewString,
	}
}

// CreatePost stores a new post; created_at and updated_at are the same instant
func (s *PostService) CreatePost(ctx context.Context, req *models.CreatePostRequest) (*models.PostResponse, error) {
	now := s.now().UTC()
	post := &domain.Post{
		ID:          s.newID(),
		Title:       req.Title,
		Description: req.Description,
		UserID:      req.UserID,
		IsPrivate:   req.IsPrivate,
		Tags:        req.Tags,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repository.CreatePost(ctx, post); err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}

	s.log.Info("Post created",
		zap.String("post_id", post.ID),
		zap.String("user_id", post.UserID))

	return toPostResponse(post), nil
}

// DeletePost removes a post owned by the caller
func (s *PostService) DeletePost(ctx context.Context, req *models.PostRequest) (*models.DeletePostResponse, error) {
	deleted, err := s.repository.DeletePost(ctx, req.PostID, req.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to delete post: %w", err)
	}
	if !deleted {
		return nil, notFound(msgPostNotFound)
	}

	s.log.Info("Post deleted",
		zap.String("post_id", req.PostID),
		zap.String("user_id", req.UserID))

	return &models.DeletePostResponse{Success: true}, nil
}

// UpdatePost merges the present fields onto the stored post.
// The read and the write are separate statements, so concurrent updates
// to the same post can overwrite each other (last writer wins).
func (s *PostService) UpdatePost(ctx context.Context, req *models.UpdatePostRequest) (*models.PostResponse, error) {
	current, err := s.repository.GetPost(ctx, req.PostID, req.UserID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, notFound(msgPostNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load post: %w", err)
	}
	if current.UserID != req.UserID {
		return nil, notFound(msgPostNotFound)
	}

	patch := domain.PostPatch{
		Title:       req.Title,
		Description: req.Description,
		IsPrivate:   req.IsPrivate,
		Tags:        req.Tags,
	}
	updated := patch.Apply(*current)
	updated.UpdatedAt = s.now().UTC()

	err = s.repository.UpdatePost(ctx, &updated)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, notFound(msgPostNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update post: %w", err)
	}

	return toPostResponse(&updated), nil
}

// GetPost returns a post; private posts are only visible to their owner
func (s *PostService) GetPost(ctx context.Context, req *models.PostRequest) (*models.PostResponse, error) {
	post, err := s.repository.GetPost(ctx, req.PostID, req.UserID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, notFound(msgPostNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get post: %w", err)
	}
	return toPostResponse(post), nil
}

// ListPosts returns a newest-first page of posts visible to the caller
func (s *PostService) ListPosts(ctx context.Context, req *models.ListPostsRequest) (*models.ListPostsResponse, error) {
	page, size := normalizePage(req.Page, req.PageSize)

	posts, total, err := s.repository.ListPosts(ctx, req.UserID, size, (page-1)*size)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}

	resp := &models.ListPostsResponse{
		Posts: make([]*models.PostResponse, 0, len(posts)),
		Total: total,
	}
	for i := range posts {
		resp.Posts = append(resp.Posts, toPostResponse(&posts[i]))
	}
	return resp, nil
}

// CreateComment stores a comment and then emits a comment event
func (s *PostService) CreateComment(ctx context.Context, req *models.CreateCommentRequest) (*models.CommentResponse, error) {
	comment := &domain.Comment{
		ID:        s.newID(),
		PostID:    req.PostID,
		UserID:    req.UserID,
		Content:   req.Content,
		CreatedAt: s.now().UTC(),
	}

	err := s.repository.CreateComment(ctx, comment)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, notFound("Post not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}

	content := comment.Content
	s.events.Emit(ctx, domain.KindComment, comment.UserID, comment.PostID, &content)

	return &models.CommentResponse{CommentID: comment.ID}, nil
}

// GetComments returns a newest-first page of a post's comments
func (s *PostService) GetComments(ctx context.Context, req *models.GetCommentsRequest) (*models.CommentsResponse, error) {
	page, size := normalizePage(req.Page, req.PageSize)

	comments, total, err := s.repository.ListComments(ctx, req.PostID, size, (page-1)*size)
	if err != nil {
		return nil, fmt.Errorf("failed to get comments: %w", err)
	}

	resp := &models.CommentsResponse{
		Comments: make([]*models.Comment, 0, len(comments)),
		Total:    total,
	}
	for _, c := range comments {
		resp.Comments = append(resp.Comments, &models.Comment{
			ID:        c.ID,
			Content:   c.Content,
			UserID:    c.UserID,
			CreatedAt: formatTime(c.CreatedAt),
		})
	}
	return resp, nil
}

// ViewPost emits a view event; it always succeeds
func (s *PostService) ViewPost(ctx context.Context, req *models.InteractionRequest) (*models.InteractionResponse, error) {
	s.events.Emit(ctx, domain.KindView, req.UserID, req.PostID, nil)
	return &models.InteractionResponse{Success: true}, nil
}

// LikePost emits a like event; it always succeeds
func (s *PostService) LikePost(ctx context.Context, req *models.InteractionRequest) (*models.InteractionResponse, error) {
	s.events.Emit(ctx, domain.KindLike, req.UserID, req.PostID, nil)
	return &models.InteractionResponse{Success: true}, nil
}

// normalizePage clamps pagination: page <= 0 becomes 1, page size outside [1, MaxPageSize] becomes DefaultPageSize
func normalizePage(page, pageSize int32) (int, int) {
	if page <= 0 {
		page = 1
	}
	if pageSize < 1 || pageSize > MaxPageSize {
		pageSize = DefaultPageSize
	}
	return int(page), int(pageSize)
}

func toPostResponse(p *domain.Post) *models.PostResponse {
	tags := p.Tags
	if tags == nil {
		tags = []string{}
	}
	return &models.PostResponse{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		UserID:      p.UserID,
		CreatedAt:   formatTime(p.CreatedAt),
		UpdatedAt:   formatTime(p.UpdatedAt),
		IsPrivate:   p.IsPrivate,
		Tags:        tags,
	}
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

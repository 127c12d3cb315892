package models

// CreatePostRequest represents a create post request
type CreatePostRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	UserID      string   `json:"user_id"`
	IsPrivate   bool     `json:"is_private"`
	Tags        []string `json:"tags"`
}

// PostRequest addresses a single post on behalf of a user (GetPost, DeletePost)
type PostRequest struct {
	PostID string `json:"post_id"`
	UserID string `json:"user_id"`
}

// UpdatePostRequest represents a partial post update. Nil fields are left unchanged.
type UpdatePostRequest struct {
	PostID      string   `json:"post_id"`
	UserID      string   `json:"user_id"`
	Title       *string  `json:"title,omitempty"`
	Description *string  `json:"description,omitempty"`
	IsPrivate   *bool    `json:"is_private,omitempty"`
	Tags        []string `json:"tags,omitempty"`
}

// ListPostsRequest represents a paginated post listing
type ListPostsRequest struct {
	Page     int32  `json:"page"`
	PageSize int32  `json:"page_size"`
	UserID   string `json:"user_id"`
}

// InteractionRequest represents a view or like of a post
type InteractionRequest struct {
	PostID string `json:"post_id"`
	UserID string `json:"user_id"`
}

// CreateCommentRequest represents a new comment on a post
type CreateCommentRequest struct {
	PostID  string `json:"post_id"`
	UserID  string `json:"user_id"`
	Content string `json:"content"`
}

// GetCommentsRequest represents a paginated comment listing
type GetCommentsRequest struct {
	PostID   string `json:"post_id"`
	Page     int32  `json:"page"`
	PageSize int32  `json:"page_size"`
}

// PostStatsRequest represents a per-post counters query
type PostStatsRequest struct {
	PostID string `json:"post_id"`
}

// PostTrendRequest represents a trend query. Period is "<N>d" or "all".
type PostTrendRequest struct {
	PostID string `json:"post_id"`
	Period string `json:"period"`
}

// Metric selects the event kind of a ranking: 0=views, 1=likes, 2=comments
type Metric int32

// TopRequest represents a top posts / top users query
type TopRequest struct {
	Metric Metric `json:"metric"`
}

package models

// PostResponse represents a post. Timestamps are ISO-8601.
type PostResponse struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	UserID      string   `json:"user_id"`
	CreatedAt   string   `json:"created_at"`
	UpdatedAt   string   `json:"updated_at"`
	IsPrivate   bool     `json:"is_private"`
	Tags        []string `json:"tags"`
}

// DeletePostResponse represents the outcome of a delete
type DeletePostResponse struct {
	Success bool `json:"success"`
}

// ListPostsResponse represents a page of posts
type ListPostsResponse struct {
	Posts []*PostResponse `json:"posts"`
	Total int64           `json:"total"`
}

// InteractionResponse is returned by view and like
type InteractionResponse struct {
	Success bool `json:"success"`
}

// CommentResponse is returned when a comment is created
type CommentResponse struct {
	CommentID string `json:"comment_id"`
}

// Comment represents a single comment
type Comment struct {
	ID        string `json:"id"`
	Content   string `json:"content"`
	UserID    string `json:"user_id"`
	CreatedAt string `json:"created_at"`
}

// CommentsResponse represents a page of comments
type CommentsResponse struct {
	Comments []*Comment `json:"comments"`
	Total    int64      `json:"total"`
}

// PostStatsResponse carries per-post counters; absent categories are zero
type PostStatsResponse struct {
	Views    uint64 `json:"views"`
	Likes    uint64 `json:"likes"`
	Comments uint64 `json:"comments"`
}

// TrendItem is one day of a trend series
type TrendItem struct {
	Date  string `json:"date"`
	Count uint64 `json:"count"`
}

// PostTrendResponse is a sparse, date-ordered series
type PostTrendResponse struct {
	Data []*TrendItem `json:"data"`
}

// PostItem is one ranking entry of top posts
type PostItem struct {
	PostID string `json:"post_id"`
	Count  uint64 `json:"count"`
}

// TopPostsResponse lists the highest-count posts
type TopPostsResponse struct {
	Posts []*PostItem `json:"posts"`
}

// UserItem is one ranking entry of top users
type UserItem struct {
	UserID string `json:"user_id"`
	Count  uint64 `json:"count"`
}

// TopUsersResponse lists the highest-count users
type TopUsersResponse struct {
	Users []*UserItem `json:"users"`
}

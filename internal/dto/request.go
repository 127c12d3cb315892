package dto

// CreatePostRequest represents a create post request body. The author comes from X-User-ID.
type CreatePostRequest struct {
	Title       string   `json:"title" example:"Hello"`
	Description string   `json:"description" example:"First post"`
	IsPrivate   bool     `json:"is_private" example:"false"`
	Tags        []string `json:"tags" example:"go,grpc"`
}

// UpdatePostRequest represents a partial update body. Absent fields are left unchanged;
// tags replace the stored set only when non-empty.
type UpdatePostRequest struct {
	Title       *string  `json:"title" example:"Edited"`
	Description *string  `json:"description"`
	IsPrivate   *bool    `json:"is_private"`
	Tags        []string `json:"tags"`
}

// CreateCommentRequest represents a new comment body
type CreateCommentRequest struct {
	Content string `json:"content" example:"Nice post"`
}

// PageQuery represents pagination query parameters. Out-of-range values are clamped by the posts service.
type PageQuery struct {
	Page     int32 `form:"page" example:"1"`
	PageSize int32 `form:"page_size" example:"10"`
}

// TrendQuery represents the trend window, "<N>d" or "all"
type TrendQuery struct {
	Period string `form:"period" binding:"required" example:"7d"`
}

// TopQuery selects the ranking metric: 0=views, 1=likes, 2=comments
type TopQuery struct {
	Metric int32 `form:"metric" example:"0"`
}

package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/garaevmir/NanoServices/internal/dto"
	"github.com/garaevmir/NanoServices/internal/models"
)

// UserIDHeader carries the caller identity on post routes
const UserIDHeader = "X-User-ID"

const userIDKey = "user_id"

// Handler is the REST gateway in front of the posts and statistics services
type Handler struct {
	posts  PostsClient
	stats  StatsClient
	router *gin.Engine
	log    *zap.Logger
}

func NewHandler(posts PostsClient, stats StatsClient, log *zap.Logger) *Handler {
	h := &Handler{
		posts:  posts,
		stats:  stats,
		router: gin.Default(),
		log:    log,
	}

	h.registerRoutes()

	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.router.ServeHTTP(w, r)
}

func (h *Handler) registerRoutes() {
	h.router.GET("/health", h.healthCheck)

	posts := h.router.Group("/posts", h.requireUser)
	posts.POST("", h.createPost)
	posts.GET("", h.listPosts)
	posts.GET("/:id", h.getPost)
	posts.PATCH("/:id", h.updatePost)
	posts.DELETE("/:id", h.deletePost)
	posts.POST("/:id/view", h.viewPost)
	posts.POST("/:id/like", h.likePost)
	posts.POST("/:id/comments", h.createComment)
	posts.GET("/:id/comments", h.getComments)

	stats := h.router.Group("/posts")
	stats.GET("/:id/stats", h.getPostStats)
	stats.GET("/:id/trend/:kind", h.getTrend)

	h.router.GET("/top/posts", h.getTopPosts)
	h.router.GET("/top/users", h.getTopUsers)
	h.router.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}

// healthCheck handles GET /health
// @Summary Health check
// @Description Check if the gateway is running
// @Tags health
// @Produce json
// @Success 200 {object} dto.HealthResponse
// @Router /health [get]
func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, dto.HealthResponse{Status: "ok"})
}

// requireUser rejects post requests without a caller identity
func (h *Handler) requireUser(c *gin.Context) {
	userID := c.GetHeader(UserIDHeader)
	if userID == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error:   "unauthorized",
			Message: UserIDHeader + " header is required",
		})
		return
	}
	c.Set(userIDKey, userID)
	c.Next()
}

// createPost handles POST /posts
// @Summary Create a post
// @Description Create a post owned by the caller
// @Tags posts
// @Accept json
// @Produce json
// @Param X-User-ID header string true "Caller identity"
// @Param post body dto.CreatePostRequest true "Post data"
// @Success 201 {object} models.PostResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /posts [post]
func (h *Handler) createPost(c *gin.Context) {
	var req dto.CreatePostRequest
	if !h.bindJSON(c, &req) {
		return
	}

	resp, err := h.posts.CreatePost(c.Request.Context(), &models.CreatePostRequest{
		Title:       req.Title,
		Description: req.Description,
		UserID:      c.GetString(userIDKey),
		IsPrivate:   req.IsPrivate,
		Tags:        req.Tags,
	})
	if err != nil {
		h.respondError(c, "create post", err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// listPosts handles GET /posts
// @Summary List posts
// @Description List public posts and the caller's private posts, newest first
// @Tags posts
// @Produce json
// @Param X-User-ID header string true "Caller identity"
// @Param page query int false "Page number, values below 1 become 1" example(1)
// @Param page_size query int false "Page size, values outside 1..100 become 10" example(10)
// @Success 200 {object} models.ListPostsResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /posts [get]
func (h *Handler) listPosts(c *gin.Context) {
	var query dto.PageQuery
	if !h.bindQuery(c, &query) {
		return
	}

	resp, err := h.posts.ListPosts(c.Request.Context(), &models.ListPostsRequest{
		Page:     query.Page,
		PageSize: query.PageSize,
		UserID:   c.GetString(userIDKey),
	})
	if err != nil {
		h.respondError(c, "list posts", err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// getPost handles GET /posts/:id
// @Summary Get a post
// @Description Get a post visible to the caller
// @Tags posts
// @Produce json
// @Param X-User-ID header string true "Caller identity"
// @Param id path string true "Post ID"
// @Success 200 {object} models.PostResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /posts/{id} [get]
func (h *Handler) getPost(c *gin.Context) {
	resp, err := h.posts.GetPost(c.Request.Context(), &models.PostRequest{
		PostID: c.Param("id"),
		UserID: c.GetString(userIDKey),
	})
	if err != nil {
		h.respondError(c, "get post", err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// updatePost handles PATCH /posts/:id
// @Summary Update a post
// @Description Update the present fields of a post owned by the caller
// @Tags posts
// @Accept json
// @Produce json
// @Param X-User-ID header string true "Caller identity"
// @Param id path string true "Post ID"
// @Param post body dto.UpdatePostRequest true "Fields to change"
// @Success 200 {object} models.PostResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /posts/{id} [patch]
func (h *Handler) updatePost(c *gin.Context) {
	var req dto.UpdatePostRequest
	if !h.bindJSON(c, &req) {
		return
	}

	resp, err := h.posts.UpdatePost(c.Request.Context(), &models.UpdatePostRequest{
		PostID:      c.Param("id"),
		UserID:      c.GetString(userIDKey),
		Title:       req.Title,
		Description: req.Description,
		IsPrivate:   req.IsPrivate,
		Tags:        req.Tags,
	})
	if err != nil {
		h.respondError(c, "update post", err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// deletePost handles DELETE /posts/:id
// @Summary Delete a post
// @Description Delete a post owned by the caller
// @Tags posts
// @Produce json
// @Param X-User-ID header string true "Caller identity"
// @Param id path string true "Post ID"
// @Success 200 {object} models.DeletePostResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /posts/{id} [delete]
func (h *Handler) deletePost(c *gin.Context) {
	resp, err := h.posts.DeletePost(c.Request.Context(), &models.PostRequest{
		PostID: c.Param("id"),
		UserID: c.GetString(userIDKey),
	})
	if err != nil {
		h.respondError(c, "delete post", err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// viewPost handles POST /posts/:id/view
// @Summary View a post
// @Description Record a view event for a post
// @Tags interactions
// @Produce json
// @Param X-User-ID header string true "Caller identity"
// @Param id path string true "Post ID"
// @Success 200 {object} models.InteractionResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /posts/{id}/view [post]
func (h *Handler) viewPost(c *gin.Context) {
	resp, err := h.posts.ViewPost(c.Request.Context(), h.interaction(c))
	if err != nil {
		h.respondError(c, "view post", err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// likePost handles POST /posts/:id/like
// @Summary Like a post
// @Description Record a like event for a post
// @Tags interactions
// @Produce json
// @Param X-User-ID header string true "Caller identity"
// @Param id path string true "Post ID"
// @Success 200 {object} models.InteractionResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /posts/{id}/like [post]
func (h *Handler) likePost(c *gin.Context) {
	resp, err := h.posts.LikePost(c.Request.Context(), h.interaction(c))
	if err != nil {
		h.respondError(c, "like post", err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// createComment handles POST /posts/:id/comments
// @Summary Comment on a post
// @Description Add a comment to a post and record a comment event
// @Tags interactions
// @Accept json
// @Produce json
// @Param X-User-ID header string true "Caller identity"
// @Param id path string true "Post ID"
// @Param comment body dto.CreateCommentRequest true "Comment"
// @Success 201 {object} models.CommentResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /posts/{id}/comments [post]
func (h *Handler) createComment(c *gin.Context) {
	var req dto.CreateCommentRequest
	if !h.bindJSON(c, &req) {
		return
	}

	resp, err := h.posts.CreateComment(c.Request.Context(), &models.CreateCommentRequest{
		PostID:  c.Param("id"),
		UserID:  c.GetString(userIDKey),
		Content: req.Content,
	})
	if err != nil {
		h.respondError(c, "create comment", err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// getComments handles GET /posts/:id/comments
// @Summary List comments
// @Description List comments of a post, newest first
// @Tags interactions
// @Produce json
// @Param X-User-ID header string true "Caller identity"
// @Param id path string true "Post ID"
// @Param page query int false "Page number, values below 1 become 1" example(1)
// @Param page_size query int false "Page size, values outside 1..100 become 10" example(10)
// @Success 200 {object} models.CommentsResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /posts/{id}/comments [get]
func (h *Handler) getComments(c *gin.Context) {
	var query dto.PageQuery
	if !h.bindQuery(c, &query) {
		return
	}

	resp, err := h.posts.GetComments(c.Request.Context(), &models.GetCommentsRequest{
		PostID:   c.Param("id"),
		Page:     query.Page,
		PageSize: query.PageSize,
	})
	if err != nil {
		h.respondError(c, "get comments", err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// getPostStats handles GET /posts/:id/stats
// @Summary Get post statistics
// @Description Get view, like and comment counts of a post
// @Tags statistics
// @Produce json
// @Param id path string true "Post ID"
// @Success 200 {object} models.PostStatsResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Failure 503 {object} dto.ErrorResponse
// @Router /posts/{id}/stats [get]
func (h *Handler) getPostStats(c *gin.Context) {
	resp, err := h.stats.GetPostStats(c.Request.Context(), &models.PostStatsRequest{PostID: c.Param("id")})
	if err != nil {
		h.respondError(c, "get post stats", err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// getTrend handles GET /posts/:id/trend/:kind where kind is views, likes or comments
// @Summary Get a daily trend
// @Description Get daily counts of one event kind for a post; days without events are omitted
// @Tags statistics
// @Produce json
// @Param id path string true "Post ID"
// @Param kind path string true "Event kind" Enums(views, likes, comments)
// @Param period query string true "Window: <N>d or all" example(7d)
// @Success 200 {object} models.PostTrendResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Failure 503 {object} dto.ErrorResponse
// @Router /posts/{id}/trend/{kind} [get]
func (h *Handler) getTrend(c *gin.Context) {
	var query dto.TrendQuery
	if !h.bindQuery(c, &query) {
		return
	}

	req := &models.PostTrendRequest{PostID: c.Param("id"), Period: query.Period}
	ctx := c.Request.Context()

	var (
		resp *models.PostTrendResponse
		err  error
	)
	switch kind := c.Param("kind"); kind {
	case "views":
		resp, err = h.stats.GetViewsTrend(ctx, req)
	case "likes":
		resp, err = h.stats.GetLikesTrend(ctx, req)
	case "comments":
		resp, err = h.stats.GetCommentsTrend(ctx, req)
	default:
		c.JSON(http.StatusNotFound, dto.ErrorResponse{
			Error:   "not_found",
			Message: "unknown trend kind " + kind + ": expected views, likes or comments",
		})
		return
	}
	if err != nil {
		h.respondError(c, "get trend", err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// getTopPosts handles GET /top/posts
// @Summary Get top posts
// @Description Get the 10 posts with the most events of a kind
// @Tags statistics
// @Produce json
// @Param metric query int false "0=views, 1=likes, 2=comments" example(0)
// @Success 200 {object} models.TopPostsResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Failure 503 {object} dto.ErrorResponse
// @Router /top/posts [get]
func (h *Handler) getTopPosts(c *gin.Context) {
	var query dto.TopQuery
	if !h.bindQuery(c, &query) {
		return
	}

	resp, err := h.stats.GetTopPosts(c.Request.Context(), &models.TopRequest{Metric: models.Metric(query.Metric)})
	if err != nil {
		h.respondError(c, "get top posts", err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// getTopUsers handles GET /top/users
// @Summary Get top users
// @Description Get the 10 users with the most events of a kind
// @Tags statistics
// @Produce json
// @Param metric query int false "0=views, 1=likes, 2=comments" example(0)
// @Success 200 {object} models.TopUsersResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Failure 503 {object} dto.ErrorResponse
// @Router /top/users [get]
func (h *Handler) getTopUsers(c *gin.Context) {
	var query dto.TopQuery
	if !h.bindQuery(c, &query) {
		return
	}

	resp, err := h.stats.GetTopUsers(c.Request.Context(), &models.TopRequest{Metric: models.Metric(query.Metric)})
	if err != nil {
		h.respondError(c, "get top users", err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *Handler) interaction(c *gin.Context) *models.InteractionRequest {
	return &models.InteractionRequest{
		PostID: c.Param("id"),
		UserID: c.GetString(userIDKey),
	}
}

func (h *Handler) bindJSON(c *gin.Context, obj any) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		h.log.Warn("Invalid request body", zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "validation_error",
			Message: err.Error(),
		})
		return false
	}
	return true
}

func (h *Handler) bindQuery(c *gin.Context, obj any) bool {
	if err := c.ShouldBindQuery(obj); err != nil {
		h.log.Warn("Invalid query parameters", zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "validation_error",
			Message: err.Error(),
		})
		return false
	}
	return true
}

// respondError translates a gRPC status into an HTTP error response
func (h *Handler) respondError(c *gin.Context, op string, err error) {
	st := status.Convert(err)
	httpStatus, kind := httpError(st.Code())

	if httpStatus >= http.StatusInternalServerError {
		h.log.Error("Upstream call failed",
			zap.String("operation", op),
			zap.String("code", st.Code().String()),
			zap.Error(err))
	}

	c.JSON(httpStatus, dto.ErrorResponse{
		Error:   kind,
		Message: st.Message(),
	})
}

func httpError(code codes.Code) (int, string) {
	switch code {
	case codes.NotFound:
		return http.StatusNotFound, "not_found"
	case codes.InvalidArgument:
		return http.StatusBadRequest, "validation_error"
	case codes.Unavailable:
		return http.StatusServiceUnavailable, "unavailable"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}

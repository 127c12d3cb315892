package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/garaevmir/NanoServices/internal/domain"
	"github.com/garaevmir/NanoServices/internal/models"
	"github.com/garaevmir/NanoServices/internal/repository"
)

// TopLimit is the size of every ranking
const TopLimit = 10

// AllTimeDays is the window the "all" period stands for
const AllTimeDays = 3650

const (
	periodAll  = "all"
	dateLayout = "2006-01-02"
)

// StatsService answers aggregate queries over the events table
type StatsService struct {
	repository repository.EventRepository
	log        *zap.Logger
	now        func() time.Time
}

// NewStatsService creates a new statistics service
func NewStatsService(repo repository.EventRepository, log *zap.Logger) *StatsService {
	return &StatsService{
		repository: repo,
		log:        log,
		now:        time.Now,
	}
}

// GetPostStats returns view, like and comment counts; absent kinds are zero
func (s *StatsService) GetPostStats(ctx context.Context, req *models.PostStatsRequest) (*models.PostStatsResponse, error) {
	if req.PostID == "" {
		return nil, invalidArgument("post_id is required")
	}

	stats, err := s.repository.GetPostStats(ctx, req.PostID)
	if err != nil {
		return nil, fmt.Errorf("failed to get post stats: %w", err)
	}

	return &models.PostStatsResponse{
		Views:    stats.Views,
		Likes:    stats.Likes,
		Comments: stats.Comments,
	}, nil
}

// GetTrend returns the sparse daily series for a post and kind.
// The window runs from midnight UTC N days ago up to now.
func (s *StatsService) GetTrend(ctx context.Context, kind domain.EventKind, req *models.PostTrendRequest) (*models.PostTrendResponse, error) {
	if !kind.Valid() {
		return nil, invalidArgument("invalid event kind %q", string(kind))
	}
	if req.PostID == "" {
		return nil, invalidArgument("post_id is required")
	}

	days, err := ParsePeriod(req.Period)
	if err != nil {
		s.log.Warn("Invalid trend period",
			zap.String("post_id", req.PostID),
			zap.String("period", req.Period))
		return nil, err
	}

	now := s.now().UTC()
	from := now.AddDate(0, 0, -days).Truncate(24 * time.Hour)

	rows, err := s.repository.GetTrend(ctx, repository.TrendQuery{
		PostID: req.PostID,
		Kind:   kind,
		From:   from,
		To:     now,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get trend: %w", err)
	}

	resp := &models.PostTrendResponse{Data: make([]*models.TrendItem, 0, len(rows))}
	for _, row := range rows {
		resp.Data = append(resp.Data, &models.TrendItem{
			Date:  row.Date.UTC().Format(dateLayout),
			Count: row.Count,
		})
	}
	return resp, nil
}

// GetTopPosts returns the TopLimit posts with the most events of the selected kind
func (s *StatsService) GetTopPosts(ctx context.Context, req *models.TopRequest) (*models.TopPostsResponse, error) {
	kind, err := selectorKind(req.Metric)
	if err != nil {
		return nil, err
	}

	ranked, err := s.repository.GetTopPosts(ctx, kind, TopLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to get top posts: %w", err)
	}

	resp := &models.TopPostsResponse{Posts: make([]*models.PostItem, 0, len(ranked))}
	for _, r := range ranked {
		resp.Posts = append(resp.Posts, &models.PostItem{PostID: r.PostID, Count: r.Count})
	}
	return resp, nil
}

// GetTopUsers returns the TopLimit users with the most events of the selected kind
func (s *StatsService) GetTopUsers(ctx context.Context, req *models.TopRequest) (*models.TopUsersResponse, error) {
	kind, err := selectorKind(req.Metric)
	if err != nil {
		return nil, err
	}

	ranked, err := s.repository.GetTopUsers(ctx, kind, TopLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to get top users: %w", err)
	}

	resp := &models.TopUsersResponse{Users: make([]*models.UserItem, 0, len(ranked))}
	for _, r := range ranked {
		resp.Users = append(resp.Users, &models.UserItem{UserID: r.UserID, Count: r.Count})
	}
	return resp, nil
}

// ParsePeriod converts "<N>d" or "all" into a number of days.
// N must be a positive integer; windows longer than "all" are capped to it.
func ParsePeriod(period string) (int, error) {
	if period == periodAll {
		return AllTimeDays, nil
	}

	digits, ok := strings.CutSuffix(period, "d")
	if !ok || digits == "" {
		return 0, invalidArgument("invalid period %q: expected \"<N>d\" or \"all\"", period)
	}

	days, err := strconv.Atoi(digits)
	if err != nil || days < 1 || strings.HasPrefix(digits, "+") {
		return 0, invalidArgument("invalid period %q: expected \"<N>d\" or \"all\"", period)
	}

	return min(days, AllTimeDays), nil
}

func selectorKind(metric models.Metric) (domain.EventKind, error) {
	kind, err := domain.KindFromSelector(int32(metric))
	if err != nil {
		return "", invalidArgument("invalid metric %d: expected 0 (views), 1 (likes) or 2 (comments)", int32(metric))
	}
	return kind, nil
}

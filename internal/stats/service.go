package stats

import (
	"context"
	"fmt"
	"time"

	"github.com/gracepath/gracepath-api/internal/domain"
	"github.com/gracepath/gracepath-api/internal/repository"
)

// Service defines read-only progression statistics operations
type Service interface {
	// Leaderboard returns the top users by total XP. A non-positive limit
	// falls back to the default; limits above the cap are clamped.
	Leaderboard(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error)

	// UserStats aggregates a user's progress events over the trailing
	// window, including per-action sums and a per-day histogram with a
	// bucket for every day in the window.
	UserStats(ctx context.Context, userID string, windowDays int) (*domain.UserStatsSummary, error)
}

type service struct {
	repo repository.Stats
	now  func() time.Time
}

// NewService creates a new stats service
func NewService(repo repository.Stats) Service {
	return &service{
		repo: repo,
		now:  time.Now,
	}
}

func (s *service) Leaderboard(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error) {
	if limit <= 0 {
		limit = DefaultLeaderboardLimit
	}
	if limit > MaxLeaderboardLimit {
		limit = MaxLeaderboardLimit
	}

	entries, err := s.repo.GetLeaderboard(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgLeaderboardFailed, err)
	}

	return entries, nil
}

func (s *service) UserStats(ctx context.Context, userID string, windowDays int) (*domain.UserStatsSummary, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: user id is required", domain.ErrInvalidInput)
	}
	if windowDays <= 0 {
		windowDays = DefaultStatsWindowDays
	}
	if windowDays > MaxStatsWindowDays {
		windowDays = MaxStatsWindowDays
	}

	// The window covers whole UTC calendar days, ending with today.
	end := s.now().UTC()
	windowStart := end.Truncate(24 * time.Hour).AddDate(0, 0, -(windowDays - 1))

	byAction, err := s.repo.GetXPByAction(ctx, userID, windowStart, end)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgUserStatsFailed, err)
	}

	dailyTotals, err := s.repo.GetDailyXPTotals(ctx, userID, windowStart, end)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgUserStatsFailed, err)
	}

	var totalXP int64
	for _, xp := range byAction {
		totalXP += xp
	}

	// Every day in the window gets a bucket so sparse data still renders
	// as a complete histogram.
	daily := make([]domain.DailyXP, 0, windowDays)
	for i := 0; i < windowDays; i++ {
		day := windowStart.AddDate(0, 0, i).Format(DayFormat)
		daily = append(daily, domain.DailyXP{Day: day, XP: dailyTotals[day]})
	}

	return &domain.UserStatsSummary{
		UserID:     userID,
		WindowDays: windowDays,
		StartTime:  windowStart,
		EndTime:    end,
		TotalXP:    totalXP,
		XPByAction: byAction,
		DailyXP:    daily,
	}, nil
}

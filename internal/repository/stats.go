package repository

import (
	"context"
	"time"

	"github.com/gracepath/gracepath-api/internal/domain"
)

// Stats defines the interface for read-only progression aggregation.
// Implementations may run at weaker isolation than the award path; results
// are display-only and tolerate slight staleness, but reads must never block
// Award operations.
type Stats interface {
	// GetLeaderboard returns the top users ordered by xp_total descending,
	// ties broken by user_id ascending, with ranks assigned 1..n.
	GetLeaderboard(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error)

	// GetXPByAction sums event amounts per action type for a user within
	// [start, end).
	GetXPByAction(ctx context.Context, userID string, start, end time.Time) (map[domain.ActionType]int64, error)

	// GetDailyXPTotals sums event amounts per UTC calendar day for a user
	// within [start, end). Keys are formatted YYYY-MM-DD.
	GetDailyXPTotals(ctx context.Context, userID string, start, end time.Time) (map[string]int64, error)
}

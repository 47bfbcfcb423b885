package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gracepath/gracepath-api/internal/domain"
)

// StatsRepository implements read-only progression aggregation for PostgreSQL.
// All queries here are plain reads outside any transaction, so they never
// contend with the award write path.
type StatsRepository struct {
	db *pgxpool.Pool
}

// NewStatsRepository creates a new StatsRepository
func NewStatsRepository(db *pgxpool.Pool) *StatsRepository {
	return &StatsRepository{db: db}
}

// GetLeaderboard returns the top users by xp_total with a stable tie-break
func (r *StatsRepository) GetLeaderboard(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error) {
	query := `
		SELECT user_id, xp_total, level
		FROM user_progress
		ORDER BY xp_total DESC, user_id ASC
		LIMIT $1
	`
	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, classifyError(err, ErrMsgFailedToGetLeaderboard)
	}
	defer rows.Close()

	var entries []domain.LeaderboardEntry
	rank := 1
	for rows.Next() {
		var e domain.LeaderboardEntry
		if err := rows.Scan(&e.UserID, &e.XPTotal, &e.Level); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetLeaderboard, err)
		}
		e.Rank = rank
		rank++
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// GetXPByAction sums event amounts per action type for a user within [start, end)
func (r *StatsRepository) GetXPByAction(ctx context.Context, userID string, start, end time.Time) (map[domain.ActionType]int64, error) {
	query := `
		SELECT action_type, COALESCE(SUM(amount), 0)
		FROM progress_events
		WHERE user_id = $1 AND created_at >= $2 AND created_at < $3
		GROUP BY action_type
	`
	rows, err := r.db.Query(ctx, query, userID, start, end)
	if err != nil {
		return nil, classifyError(err, ErrMsgFailedToGetXPByAction)
	}
	defer rows.Close()

	result := make(map[domain.ActionType]int64)
	for rows.Next() {
		var action string
		var total int64
		if err := rows.Scan(&action, &total); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetXPByAction, err)
		}
		result[domain.ActionType(action)] = total
	}
	return result, rows.Err()
}

// GetDailyXPTotals sums event amounts per UTC calendar day within [start, end)
func (r *StatsRepository) GetDailyXPTotals(ctx context.Context, userID string, start, end time.Time) (map[string]int64, error) {
	query := `
		SELECT to_char(created_at AT TIME ZONE 'UTC', 'YYYY-MM-DD') AS day, COALESCE(SUM(amount), 0)
		FROM progress_events
		WHERE user_id = $1 AND created_at >= $2 AND created_at < $3
		GROUP BY day
	`
	rows, err := r.db.Query(ctx, query, userID, start, end)
	if err != nil {
		return nil, classifyError(err, ErrMsgFailedToGetDailyXP)
	}
	defer rows.Close()

	result := make(map[string]int64)
	for rows.Next() {
		var day string
		var total int64
		if err := rows.Scan(&day, &total); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetDailyXP, err)
		}
		result[day] = total
	}
	return result, rows.Err()
}

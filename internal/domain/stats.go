package domain

import "time"

// LeaderboardEntry represents a user's position in the XP leaderboard.
// Ordering is xp_total descending with user_id as the tie-break so repeated
// reads over unchanged data produce identical rankings.
type LeaderboardEntry struct {
	Rank    int    `json:"rank"`
	UserID  string `json:"user_id"`
	XPTotal int64  `json:"xp_total"`
	Level   int    `json:"level"`
}

// DailyXP is one calendar-day bucket of the trailing XP histogram
type DailyXP struct {
	Day string `json:"day"` // UTC calendar day, YYYY-MM-DD
	XP  int64  `json:"xp"`
}

// UserStatsSummary aggregates a user's progress events over a trailing window
type UserStatsSummary struct {
	UserID     string               `json:"user_id"`
	WindowDays int                  `json:"window_days"`
	StartTime  time.Time            `json:"start_time"`
	EndTime    time.Time            `json:"end_time"`
	TotalXP    int64                `json:"total_xp"`
	XPByAction map[ActionType]int64 `json:"xp_by_action"`
	DailyXP    []DailyXP            `json:"daily_xp"`
}

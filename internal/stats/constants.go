package stats

// Leaderboard limits
const (
	// DefaultLeaderboardLimit is used when the caller does not specify one
	DefaultLeaderboardLimit = 10

	// MaxLeaderboardLimit caps a single leaderboard request
	MaxLeaderboardLimit = 100
)

// Stats window configuration
const (
	// DefaultStatsWindowDays is the trailing window for user stats
	DefaultStatsWindowDays = 7

	// MaxStatsWindowDays caps the trailing window for a single request
	MaxStatsWindowDays = 90
)

// DayFormat is the histogram bucket key layout (UTC calendar day)
const DayFormat = "2006-01-02"

// Error message constants
const (
	ErrMsgLeaderboardFailed = "failed to get leaderboard"
	ErrMsgUserStatsFailed   = "failed to get user stats"
)

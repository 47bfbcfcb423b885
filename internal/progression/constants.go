package progression

// Log message constants
const (
	LogMsgXPAwarded          = "XP awarded"
	LogMsgZeroAmountAward    = "Zero-amount award recorded"
	LogMsgLevelUp            = "User leveled up"
	LogMsgRewardUnlockFailed = "Reward unlock after level-up failed, reconcile job will catch up"
	LogMsgXPTableLoaded      = "XP amount table loaded"
	LogMsgXPTableLoadFailed  = "Failed to load XP amount table, using built-in defaults"
)

// Error message constants
const (
	ErrMsgAwardFailed       = "failed to award XP"
	ErrMsgGetProgressFailed = "failed to get user progress"
)

package postgres

// PostgreSQL Error Codes
const (
	// PgErrorCodeUniqueViolation is the PostgreSQL error code for unique constraint violations
	PgErrorCodeUniqueViolation = "23505"

	// PgErrorCodeSerializationFailure is returned when concurrent transactions conflict
	PgErrorCodeSerializationFailure = "40001"

	// PgErrorCodeDeadlockDetected is returned when the server resolves a deadlock
	PgErrorCodeDeadlockDetected = "40P01"
)

// Error Messages - Transaction Operations
const (
	ErrMsgFailedToBeginTransaction  = "failed to begin transaction"
	ErrMsgFailedToCommitTransaction = "failed to commit transaction"
)

// Error Messages - Progression Operations
const (
	ErrMsgFailedToUpsertProgress = "failed to upsert user progress"
	ErrMsgFailedToUpdateLevel    = "failed to update level"
	ErrMsgFailedToInsertEvent    = "failed to insert progress event"
	ErrMsgFailedToGetProgress    = "failed to get user progress"
)

// Error Messages - Reward Operations
const (
	ErrMsgFailedToGetDefinitions  = "failed to get reward definitions"
	ErrMsgFailedToGetUserRewards  = "failed to get user rewards"
	ErrMsgFailedToInsertRewards   = "failed to insert user rewards"
	ErrMsgFailedToActivateReward  = "failed to activate reward"
	ErrMsgFailedToListUnlockUsers = "failed to list users needing unlock"
)

// Error Messages - Stats Operations
const (
	ErrMsgFailedToGetLeaderboard = "failed to get leaderboard"
	ErrMsgFailedToGetXPByAction  = "failed to get xp by action"
	ErrMsgFailedToGetDailyXP     = "failed to get daily xp totals"
)

package reward

import "time"

// Catalog cache configuration
const (
	// CatalogCacheSize is the maximum number of cached catalog slices,
	// keyed by level
	CatalogCacheSize = 256

	// CatalogCacheTTL bounds how stale a cached catalog slice can get.
	// Catalog changes are rare and admin-driven, so a short TTL is enough.
	CatalogCacheTTL = 5 * time.Minute
)

// Reconcile job configuration
const (
	// ReconcileBatchSize is how many users a single reconcile pass repairs
	ReconcileBatchSize = 100
)

// Log message constants
const (
	LogMsgRewardsUnlocked      = "Rewards unlocked"
	LogMsgRewardActivated      = "Reward activated"
	LogMsgReconcileStarted     = "Reward reconcile pass started"
	LogMsgReconcileCompleted   = "Reward reconcile pass completed"
	LogMsgReconcileUserFailed  = "Reward reconcile failed for user"
	LogMsgReconcileListFailed  = "Failed to list users needing reward unlock"
)

// Error message constants
const (
	ErrMsgUnlockFailed   = "failed to unlock rewards"
	ErrMsgListFailed     = "failed to list user rewards"
	ErrMsgActivateFailed = "failed to activate reward"
)

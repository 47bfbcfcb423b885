package repository

import (
	"context"
	"time"

	"github.com/gracepath/gracepath-api/internal/domain"
)

// Reward defines the interface for reward catalog and ownership persistence.
// The catalog itself is admin-managed elsewhere; this service only reads it.
type Reward interface {
	// GetDefinitionsUpToLevel returns active catalog entries with
	// unlock_level <= level, lowest level first.
	GetDefinitionsUpToLevel(ctx context.Context, level int) ([]domain.RewardDefinition, error)

	// GetDefinition returns a single catalog entry, active or not.
	// Returns domain.ErrRewardNotFound when the ID is unknown.
	GetDefinition(ctx context.Context, rewardID string) (*domain.RewardDefinition, error)

	// GetUserRewards returns all ownership rows for a user.
	GetUserRewards(ctx context.Context, userID string) ([]domain.UserReward, error)

	// ListUserRewardInfo returns ownership joined with catalog metadata.
	ListUserRewardInfo(ctx context.Context, userID string) ([]domain.UserRewardInfo, error)

	// InsertUserRewards bulk-inserts ownership rows with is_active=false.
	// Rows violating the (user_id, reward_id) uniqueness constraint are
	// silently skipped; the IDs actually inserted are returned.
	InsertUserRewards(ctx context.Context, userID string, rewardIDs []string, unlockedAt time.Time) ([]string, error)

	// ActivateReward deactivates the user's other rewards of the same type
	// and activates the requested one, in a single transaction. Returns
	// domain.ErrRewardNotOwned if the user does not own the reward.
	ActivateReward(ctx context.Context, userID, rewardID string) error

	// ListUsersNeedingUnlock returns users whose cached level exceeds the
	// highest unlock_level among active catalog rewards they own. Used by
	// the reconcile pass to catch up missed unlock cascades.
	ListUsersNeedingUnlock(ctx context.Context, limit int) ([]domain.UserProgress, error)
}

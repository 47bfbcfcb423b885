package domain

import "time"

// RewardType categorizes rewards; at most one reward per type may be active
// (equipped) for a user at a time
type RewardType string

const (
	RewardTypeBadge       RewardType = "badge"
	RewardTypeTitle       RewardType = "title"
	RewardTypeAvatarFrame RewardType = "avatar_frame"
	RewardTypeTheme       RewardType = "theme"
)

// RewardDefinition is a catalog entry gated by a minimum unlock level.
// The catalog is admin-managed and read-only to this service; UnlockLevel is
// treated as immutable once any user has been granted the reward.
type RewardDefinition struct {
	RewardID    string     `json:"reward_id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Type        RewardType `json:"type"`
	UnlockLevel int        `json:"unlock_level"`
	IsActive    bool       `json:"is_active"`
	CreatedAt   time.Time  `json:"created_at"`
}

// UserReward records ownership of a catalog reward. The (UserID, RewardID)
// pair is unique: a reward is granted at most once, ever. IsActive is a
// display/selection flag, not an ownership flag.
type UserReward struct {
	UserID     string    `json:"user_id"`
	RewardID   string    `json:"reward_id"`
	UnlockedAt time.Time `json:"unlocked_at"`
	IsActive   bool      `json:"is_active"`
}

// UserRewardInfo combines ownership with reward metadata for API responses
type UserRewardInfo struct {
	RewardID    string     `json:"reward_id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Type        RewardType `json:"type"`
	UnlockLevel int        `json:"unlock_level"`
	UnlockedAt  time.Time  `json:"unlocked_at"`
	IsActive    bool       `json:"is_active"`
}

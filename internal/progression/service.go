package progression

import (
	"context"
	"fmt"

	"github.com/gracepath/gracepath-api/internal/domain"
	"github.com/gracepath/gracepath-api/internal/event"
	"github.com/gracepath/gracepath-api/internal/level"
	"github.com/gracepath/gracepath-api/internal/logger"
	"github.com/gracepath/gracepath-api/internal/repository"
)

// Service defines the progression engine operations
type Service interface {
	// Award grants XP to a user for an action. When amount is nil the
	// amount is resolved from the XP table; unknown actions without an
	// explicit amount fail with domain.ErrUnknownActionType.
	Award(ctx context.Context, userID string, actionType domain.ActionType, amount *int, metadata map[string]interface{}) (*domain.AwardResult, error)

	// AwardStreakBonus computes the streak bonus for a consecutive-day
	// streak and awards it. A streak below one full week awards zero XP
	// and still records an event.
	AwardStreakBonus(ctx context.Context, userID string, streakDays int) (*domain.AwardResult, error)

	// GetUserProgress returns the user's progression record, creating it
	// at zero XP on first access.
	GetUserProgress(ctx context.Context, userID string) (*domain.UserProgress, error)

	// GetLevelProgress returns how far the user is into their current level.
	GetLevelProgress(ctx context.Context, userID string) (*domain.LevelProgress, error)

	// SetRewardUnlocker wires in the reward service after construction.
	SetRewardUnlocker(unlocker RewardUnlocker)
}

// RewardUnlocker grants level-gated rewards after a level-up. Implemented by
// the reward service; kept as a local interface so the reward package can
// depend on progression events without a package cycle.
type RewardUnlocker interface {
	UnlockRewardsForLevel(ctx context.Context, userID string, lvl int) ([]string, error)
}

type service struct {
	repo      repository.Progression
	publisher event.Bus
	unlocker  RewardUnlocker
	xpTable   XPTable
}

// NewService creates a new progression service
func NewService(repo repository.Progression, publisher event.Bus, xpTable XPTable) Service {
	if xpTable == nil {
		xpTable = DefaultXPTable()
	}
	return &service{
		repo:      repo,
		publisher: publisher,
		xpTable:   xpTable,
	}
}

// SetRewardUnlocker wires the reward service in after construction. The
// reward service needs the progression repo to exist first, so the dependency
// is injected late during bootstrap.
func (s *service) SetRewardUnlocker(unlocker RewardUnlocker) {
	s.unlocker = unlocker
}

func (s *service) Award(ctx context.Context, userID string, actionType domain.ActionType, amount *int, metadata map[string]interface{}) (*domain.AwardResult, error) {
	log := logger.FromContext(ctx)

	if userID == "" {
		return nil, fmt.Errorf("%w: user id is required", domain.ErrInvalidInput)
	}
	if amount != nil && *amount < 0 {
		return nil, fmt.Errorf("%w: amount %d for %s", domain.ErrInvalidAmount, *amount, actionType)
	}

	xp := 0
	if amount != nil {
		xp = *amount
	} else {
		tableAmount, ok := s.xpTable.Amount(actionType)
		if !ok {
			return nil, fmt.Errorf("%w: %s", domain.ErrUnknownActionType, actionType)
		}
		xp = tableAmount
	}

	progressEvent := &domain.ProgressEvent{
		UserID:     userID,
		ActionType: actionType,
		Amount:     xp,
		Metadata:   metadata,
	}

	updated, err := s.repo.AwardXP(ctx, progressEvent)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgAwardFailed, err)
	}

	// The award is already committed, so the previous level is derived from
	// the returned total rather than a separate read.
	oldLevel := level.FromXP(updated.XPTotal - int64(xp))
	leveledUp := updated.Level > oldLevel

	if xp == 0 {
		log.Info(LogMsgZeroAmountAward, "user_id", userID, "action_type", actionType)
	} else {
		log.Info(LogMsgXPAwarded,
			"user_id", userID,
			"action_type", actionType,
			"amount", xp,
			"xp_total", updated.XPTotal,
			"level", updated.Level)
	}

	if s.publisher != nil {
		_ = s.publisher.Publish(ctx, event.NewXPAwardedEvent(userID, actionType, xp, updated.XPTotal, updated.Level))
	}

	if leveledUp {
		log.Info(LogMsgLevelUp, "user_id", userID, "old_level", oldLevel, "new_level", updated.Level)
		if s.publisher != nil {
			_ = s.publisher.Publish(ctx, event.NewLevelUpEvent(userID, oldLevel, updated.Level, updated.XPTotal))
		}
		s.unlockRewards(ctx, userID, updated.Level)
	}

	return &domain.AwardResult{
		XPAwarded: xp,
		XPTotal:   updated.XPTotal,
		Level:     updated.Level,
		OldLevel:  oldLevel,
		LeveledUp: leveledUp,
	}, nil
}

// unlockRewards grants level-gated rewards after the XP commit. Failures are
// logged and left for the reconcile job; the award itself already succeeded.
func (s *service) unlockRewards(ctx context.Context, userID string, lvl int) {
	if s.unlocker == nil {
		return
	}

	unlocked, err := s.unlocker.UnlockRewardsForLevel(ctx, userID, lvl)
	if err != nil {
		logger.FromContext(ctx).Warn(LogMsgRewardUnlockFailed,
			"user_id", userID, "level", lvl, "error", err)
		return
	}

	if len(unlocked) > 0 && s.publisher != nil {
		_ = s.publisher.Publish(ctx, event.NewRewardUnlockedEvent(userID, unlocked, lvl))
	}
}

func (s *service) AwardStreakBonus(ctx context.Context, userID string, streakDays int) (*domain.AwardResult, error) {
	if streakDays < 0 {
		return nil, fmt.Errorf("%w: streak days %d", domain.ErrInvalidInput, streakDays)
	}

	bonus := level.StreakBonus(streakDays)
	metadata := map[string]interface{}{"streak_days": streakDays}

	return s.Award(ctx, userID, domain.ActionStreakBonus, &bonus, metadata)
}

func (s *service) GetUserProgress(ctx context.Context, userID string) (*domain.UserProgress, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: user id is required", domain.ErrInvalidInput)
	}

	progress, err := s.repo.GetUserProgress(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgGetProgressFailed, err)
	}

	return progress, nil
}

func (s *service) GetLevelProgress(ctx context.Context, userID string) (*domain.LevelProgress, error) {
	progress, err := s.GetUserProgress(ctx, userID)
	if err != nil {
		return nil, err
	}

	lp := level.Progress(progress.XPTotal)
	return &lp, nil
}

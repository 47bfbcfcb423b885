package reward

import (
	"context"
	"fmt"
	"time"

	"github.com/gracepath/gracepath-api/internal/domain"
	"github.com/gracepath/gracepath-api/internal/logger"
	"github.com/gracepath/gracepath-api/internal/repository"
)

// Service defines reward catalog and ownership operations
type Service interface {
	// UnlockRewardsForLevel grants every active reward with unlock_level
	// at or below the given level that the user does not already own.
	// Idempotent: repeated calls grant nothing new and return an empty
	// slice. Returns the reward IDs granted by this call.
	UnlockRewardsForLevel(ctx context.Context, userID string, lvl int) ([]string, error)

	// ListRewardsForUser returns the user's rewards with catalog metadata.
	ListRewardsForUser(ctx context.Context, userID string) ([]domain.UserRewardInfo, error)

	// ActivateReward equips a reward the user owns, deactivating any other
	// active reward of the same type.
	ActivateReward(ctx context.Context, userID, rewardID string) error

	// Reconcile repairs users whose owned rewards lag behind their level,
	// catching up unlock cascades that failed after an award committed.
	Reconcile(ctx context.Context) error

	// InvalidateCatalogCache drops cached catalog slices after an
	// out-of-band catalog change.
	InvalidateCatalogCache()
}

type service struct {
	repo    repository.Reward
	catalog *catalogCache
}

// NewService creates a new reward service
func NewService(repo repository.Reward) Service {
	return &service{
		repo:    repo,
		catalog: newCatalogCache(CatalogCacheSize, CatalogCacheTTL),
	}
}

func (s *service) UnlockRewardsForLevel(ctx context.Context, userID string, lvl int) ([]string, error) {
	eligible, err := s.definitionsUpToLevel(ctx, lvl)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgUnlockFailed, err)
	}
	if len(eligible) == 0 {
		return nil, nil
	}

	owned, err := s.repo.GetUserRewards(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgUnlockFailed, err)
	}

	ownedSet := make(map[string]struct{}, len(owned))
	for _, r := range owned {
		ownedSet[r.RewardID] = struct{}{}
	}

	missing := make([]string, 0, len(eligible))
	for _, def := range eligible {
		if _, ok := ownedSet[def.RewardID]; !ok {
			missing = append(missing, def.RewardID)
		}
	}
	if len(missing) == 0 {
		return nil, nil
	}

	// The insert skips duplicate rows, so a concurrent unlock for the same
	// user still grants each reward exactly once.
	inserted, err := s.repo.InsertUserRewards(ctx, userID, missing, time.Now())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgUnlockFailed, err)
	}

	if len(inserted) > 0 {
		logger.FromContext(ctx).Info(LogMsgRewardsUnlocked,
			"user_id", userID, "level", lvl, "reward_ids", inserted)
	}

	return inserted, nil
}

func (s *service) definitionsUpToLevel(ctx context.Context, lvl int) ([]domain.RewardDefinition, error) {
	if defs, ok := s.catalog.Get(lvl); ok {
		return defs, nil
	}

	defs, err := s.repo.GetDefinitionsUpToLevel(ctx, lvl)
	if err != nil {
		return nil, err
	}

	s.catalog.Set(lvl, defs)
	return defs, nil
}

func (s *service) ListRewardsForUser(ctx context.Context, userID string) ([]domain.UserRewardInfo, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: user id is required", domain.ErrInvalidInput)
	}

	infos, err := s.repo.ListUserRewardInfo(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgListFailed, err)
	}

	return infos, nil
}

func (s *service) ActivateReward(ctx context.Context, userID, rewardID string) error {
	if userID == "" || rewardID == "" {
		return fmt.Errorf("%w: user id and reward id are required", domain.ErrInvalidInput)
	}

	if _, err := s.repo.GetDefinition(ctx, rewardID); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgActivateFailed, err)
	}

	if err := s.repo.ActivateReward(ctx, userID, rewardID); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgActivateFailed, err)
	}

	logger.FromContext(ctx).Info(LogMsgRewardActivated, "user_id", userID, "reward_id", rewardID)
	return nil
}

func (s *service) Reconcile(ctx context.Context) error {
	log := logger.FromContext(ctx)
	log.Info(LogMsgReconcileStarted)

	users, err := s.repo.ListUsersNeedingUnlock(ctx, ReconcileBatchSize)
	if err != nil {
		log.Error(LogMsgReconcileListFailed, "error", err)
		return err
	}

	repaired := 0
	for _, u := range users {
		if _, err := s.UnlockRewardsForLevel(ctx, u.UserID, u.Level); err != nil {
			log.Warn(LogMsgReconcileUserFailed, "user_id", u.UserID, "error", err)
			continue
		}
		repaired++
	}

	log.Info(LogMsgReconcileCompleted, "candidates", len(users), "repaired", repaired)
	return nil
}

func (s *service) InvalidateCatalogCache() {
	s.catalog.Purge()
}

package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gracepath/gracepath-api/internal/domain"
)

// RewardRepository implements the reward repository for PostgreSQL
type RewardRepository struct {
	db *pgxpool.Pool
}

// NewRewardRepository creates a new RewardRepository
func NewRewardRepository(db *pgxpool.Pool) *RewardRepository {
	return &RewardRepository{db: db}
}

// GetDefinitionsUpToLevel returns active catalog entries with unlock_level <= level
func (r *RewardRepository) GetDefinitionsUpToLevel(ctx context.Context, lvl int) ([]domain.RewardDefinition, error) {
	query := `
		SELECT reward_id, name, description, reward_type, unlock_level, is_active, created_at
		FROM reward_definitions
		WHERE is_active AND unlock_level <= $1
		ORDER BY unlock_level ASC, reward_id ASC
	`
	rows, err := r.db.Query(ctx, query, lvl)
	if err != nil {
		return nil, classifyError(err, ErrMsgFailedToGetDefinitions)
	}
	defer rows.Close()

	var defs []domain.RewardDefinition
	for rows.Next() {
		var d domain.RewardDefinition
		if err := rows.Scan(&d.RewardID, &d.Name, &d.Description, &d.Type, &d.UnlockLevel, &d.IsActive, &d.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetDefinitions, err)
		}
		defs = append(defs, d)
	}
	return defs, rows.Err()
}

// GetDefinition returns a single catalog entry
func (r *RewardRepository) GetDefinition(ctx context.Context, rewardID string) (*domain.RewardDefinition, error) {
	query := `
		SELECT reward_id, name, description, reward_type, unlock_level, is_active, created_at
		FROM reward_definitions
		WHERE reward_id = $1
	`
	var d domain.RewardDefinition
	err := r.db.QueryRow(ctx, query, rewardID).
		Scan(&d.RewardID, &d.Name, &d.Description, &d.Type, &d.UnlockLevel, &d.IsActive, &d.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRewardNotFound
		}
		return nil, classifyError(err, ErrMsgFailedToGetDefinitions)
	}
	return &d, nil
}

// GetUserRewards returns all ownership rows for a user
func (r *RewardRepository) GetUserRewards(ctx context.Context, userID string) ([]domain.UserReward, error) {
	query := `
		SELECT user_id, reward_id, unlocked_at, is_active
		FROM user_rewards
		WHERE user_id = $1
	`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, classifyError(err, ErrMsgFailedToGetUserRewards)
	}
	defer rows.Close()

	var rewards []domain.UserReward
	for rows.Next() {
		var ur domain.UserReward
		if err := rows.Scan(&ur.UserID, &ur.RewardID, &ur.UnlockedAt, &ur.IsActive); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetUserRewards, err)
		}
		rewards = append(rewards, ur)
	}
	return rewards, rows.Err()
}

// ListUserRewardInfo returns ownership joined with catalog metadata
func (r *RewardRepository) ListUserRewardInfo(ctx context.Context, userID string) ([]domain.UserRewardInfo, error) {
	query := `
		SELECT d.reward_id, d.name, d.description, d.reward_type, d.unlock_level, ur.unlocked_at, ur.is_active
		FROM user_rewards ur
		JOIN reward_definitions d ON d.reward_id = ur.reward_id
		WHERE ur.user_id = $1
		ORDER BY d.unlock_level ASC, d.reward_id ASC
	`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, classifyError(err, ErrMsgFailedToGetUserRewards)
	}
	defer rows.Close()

	var infos []domain.UserRewardInfo
	for rows.Next() {
		var info domain.UserRewardInfo
		if err := rows.Scan(&info.RewardID, &info.Name, &info.Description, &info.Type, &info.UnlockLevel, &info.UnlockedAt, &info.IsActive); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetUserRewards, err)
		}
		infos = append(infos, info)
	}
	return infos, rows.Err()
}

// InsertUserRewards bulk-inserts ownership rows. Duplicate (user_id, reward_id)
// pairs are skipped by the conflict clause, which keeps concurrent unlock
// cascades exactly-once per reward.
func (r *RewardRepository) InsertUserRewards(ctx context.Context, userID string, rewardIDs []string, unlockedAt time.Time) ([]string, error) {
	if len(rewardIDs) == 0 {
		return nil, nil
	}

	query := `
		INSERT INTO user_rewards (user_id, reward_id, unlocked_at, is_active)
		SELECT $1, reward_id, $2, FALSE
		FROM unnest($3::text[]) AS reward_id
		ON CONFLICT (user_id, reward_id) DO NOTHING
		RETURNING reward_id
	`
	rows, err := r.db.Query(ctx, query, userID, unlockedAt, rewardIDs)
	if err != nil {
		return nil, classifyError(err, ErrMsgFailedToInsertRewards)
	}
	defer rows.Close()

	var inserted []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToInsertRewards, err)
		}
		inserted = append(inserted, id)
	}
	return inserted, rows.Err()
}

// ActivateReward activates the requested reward and deactivates the user's
// other rewards of the same type, in one transaction.
func (r *RewardRepository) ActivateReward(ctx context.Context, userID, rewardID string) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return classifyError(err, ErrMsgFailedToBeginTransaction)
	}
	defer SafeRollback(ctx, tx)

	deactivateQuery := `
		UPDATE user_rewards ur
		SET is_active = FALSE
		FROM reward_definitions d
		WHERE ur.reward_id = d.reward_id
		  AND ur.user_id = $1
		  AND ur.is_active
		  AND d.reward_type = (SELECT reward_type FROM reward_definitions WHERE reward_id = $2)
	`
	if _, err := tx.Exec(ctx, deactivateQuery, userID, rewardID); err != nil {
		return classifyError(err, ErrMsgFailedToActivateReward)
	}

	tag, err := tx.Exec(ctx,
		`UPDATE user_rewards SET is_active = TRUE WHERE user_id = $1 AND reward_id = $2`,
		userID, rewardID)
	if err != nil {
		return classifyError(err, ErrMsgFailedToActivateReward)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrRewardNotOwned
	}

	if err := tx.Commit(ctx); err != nil {
		return classifyError(err, ErrMsgFailedToCommitTransaction)
	}
	return nil
}

// ListUsersNeedingUnlock returns users whose level qualifies them for active
// catalog rewards they do not own yet.
func (r *RewardRepository) ListUsersNeedingUnlock(ctx context.Context, limit int) ([]domain.UserProgress, error) {
	query := `
		SELECT DISTINCT up.user_id, up.xp_total, up.level, up.created_at, up.updated_at
		FROM user_progress up
		JOIN reward_definitions d
		  ON d.is_active AND d.unlock_level <= up.level
		LEFT JOIN user_rewards ur
		  ON ur.user_id = up.user_id AND ur.reward_id = d.reward_id
		WHERE ur.reward_id IS NULL
		ORDER BY up.user_id
		LIMIT $1
	`
	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, classifyError(err, ErrMsgFailedToListUnlockUsers)
	}
	defer rows.Close()

	var users []domain.UserProgress
	for rows.Next() {
		var p domain.UserProgress
		if err := rows.Scan(&p.UserID, &p.XPTotal, &p.Level, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListUnlockUsers, err)
		}
		users = append(users, p)
	}
	return users, rows.Err()
}

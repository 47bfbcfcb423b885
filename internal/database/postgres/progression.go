package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gracepath/gracepath-api/internal/domain"
	"github.com/gracepath/gracepath-api/internal/level"
)

// ProgressionRepository implements the progression repository for PostgreSQL
type ProgressionRepository struct {
	db *pgxpool.Pool
}

// NewProgressionRepository creates a new ProgressionRepository
func NewProgressionRepository(db *pgxpool.Pool) *ProgressionRepository {
	return &ProgressionRepository{db: db}
}

// GetUserProgress returns the progression record for a user, creating it with
// zero XP at level 1 on first read.
func (r *ProgressionRepository) GetUserProgress(ctx context.Context, userID string) (*domain.UserProgress, error) {
	insertQuery := `
		INSERT INTO user_progress (user_id, xp_total, level)
		VALUES ($1, 0, 1)
		ON CONFLICT (user_id) DO NOTHING
	`
	if _, err := r.db.Exec(ctx, insertQuery, userID); err != nil {
		return nil, classifyError(err, ErrMsgFailedToGetProgress)
	}

	query := `
		SELECT user_id, xp_total, level, created_at, updated_at
		FROM user_progress
		WHERE user_id = $1
	`
	var p domain.UserProgress
	err := r.db.QueryRow(ctx, query, userID).Scan(&p.UserID, &p.XPTotal, &p.Level, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, classifyError(err, ErrMsgFailedToGetProgress)
	}

	return &p, nil
}

// AwardXP atomically adds the event amount to the user's total, recomputes the
// cached level, and appends the progress event, all in one transaction.
//
// The upsert locks the user's row for the remainder of the transaction, so
// concurrent awards for the same user serialize on that row while awards for
// other users proceed unaffected.
func (r *ProgressionRepository) AwardXP(ctx context.Context, event *domain.ProgressEvent) (*domain.UserProgress, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, classifyError(err, ErrMsgFailedToBeginTransaction)
	}
	defer SafeRollback(ctx, tx)

	upsertQuery := `
		INSERT INTO user_progress (user_id, xp_total, level)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id) DO UPDATE
		SET xp_total = user_progress.xp_total + EXCLUDED.xp_total,
		    updated_at = NOW()
		RETURNING xp_total, created_at, updated_at
	`
	var p domain.UserProgress
	p.UserID = event.UserID
	err = tx.QueryRow(ctx, upsertQuery, event.UserID, event.Amount, level.FromXP(int64(event.Amount))).
		Scan(&p.XPTotal, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, classifyError(err, ErrMsgFailedToUpsertProgress)
	}

	// The level column is a cache of FromXP(xp_total); it is recomputed here
	// so the two never diverge.
	p.Level = level.FromXP(p.XPTotal)
	if _, err := tx.Exec(ctx, `UPDATE user_progress SET level = $1 WHERE user_id = $2`, p.Level, event.UserID); err != nil {
		return nil, classifyError(err, ErrMsgFailedToUpdateLevel)
	}

	var metadata []byte
	if event.Metadata != nil {
		metadata, err = json.Marshal(event.Metadata)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToInsertEvent, err)
		}
	}

	eventQuery := `
		INSERT INTO progress_events (user_id, action_type, amount, metadata)
		VALUES ($1, $2, $3, $4)
		RETURNING event_id, created_at
	`
	err = tx.QueryRow(ctx, eventQuery, event.UserID, string(event.ActionType), event.Amount, metadata).
		Scan(&event.EventID, &event.CreatedAt)
	if err != nil {
		return nil, classifyError(err, ErrMsgFailedToInsertEvent)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, classifyError(err, ErrMsgFailedToCommitTransaction)
	}

	return &p, nil
}

package repository

import (
	"context"

	"github.com/gracepath/gracepath-api/internal/domain"
)

// Progression defines the interface for progression persistence.
//
// AwardXP is the single write path for UserProgress: it must execute the
// increment of xp_total, the recomputation of the cached level, and the
// append of the progress event as one atomic unit scoped to the user's row.
// Concurrent calls for the same user serialize; calls for different users
// must not block each other.
type Progression interface {
	// GetUserProgress returns the progression record for a user, creating
	// it with zero XP at level 1 on first read.
	GetUserProgress(ctx context.Context, userID string) (*domain.UserProgress, error)

	// AwardXP atomically adds event.Amount to the user's total, recomputes
	// the cached level from the new total, and appends the event. Returns
	// the post-award state. The event's EventID and CreatedAt are filled in.
	AwardXP(ctx context.Context, event *domain.ProgressEvent) (*domain.UserProgress, error)
}

package stats

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gracepath/gracepath-api/internal/domain"
)

type fakeStatsRepo struct {
	leaderboard    []domain.LeaderboardEntry
	byAction       map[domain.ActionType]int64
	dailyTotals    map[string]int64
	requestedLimit int
	err            error
}

func (r *fakeStatsRepo) GetLeaderboard(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error) {
	if r.err != nil {
		return nil, r.err
	}
	r.requestedLimit = limit
	if len(r.leaderboard) > limit {
		return r.leaderboard[:limit], nil
	}
	return r.leaderboard, nil
}

func (r *fakeStatsRepo) GetXPByAction(ctx context.Context, userID string, start, end time.Time) (map[domain.ActionType]int64, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.byAction, nil
}

func (r *fakeStatsRepo) GetDailyXPTotals(ctx context.Context, userID string, start, end time.Time) (map[string]int64, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.dailyTotals, nil
}

func TestLeaderboard_DefaultLimit(t *testing.T) {
	repo := &fakeStatsRepo{}
	svc := NewService(repo)

	if _, err := svc.Leaderboard(context.Background(), 0); err != nil {
		t.Fatalf("Leaderboard returned error: %v", err)
	}
	if repo.requestedLimit != DefaultLeaderboardLimit {
		t.Errorf("expected default limit %d, got %d", DefaultLeaderboardLimit, repo.requestedLimit)
	}
}

func TestLeaderboard_ClampsLimit(t *testing.T) {
	repo := &fakeStatsRepo{}
	svc := NewService(repo)

	if _, err := svc.Leaderboard(context.Background(), 10000); err != nil {
		t.Fatalf("Leaderboard returned error: %v", err)
	}
	if repo.requestedLimit != MaxLeaderboardLimit {
		t.Errorf("expected clamped limit %d, got %d", MaxLeaderboardLimit, repo.requestedLimit)
	}
}

func TestLeaderboard_StableOrder(t *testing.T) {
	// The repo returns entries pre-ordered by xp desc, user_id asc. The
	// service must pass the ordering through untouched.
	repo := &fakeStatsRepo{
		leaderboard: []domain.LeaderboardEntry{
			{Rank: 1, UserID: "user-c", XPTotal: 500, Level: 2},
			{Rank: 2, UserID: "user-a", XPTotal: 300, Level: 2},
			{Rank: 3, UserID: "user-b", XPTotal: 300, Level: 2},
		},
	}
	svc := NewService(repo)

	entries, err := svc.Leaderboard(context.Background(), 10)
	if err != nil {
		t.Fatalf("Leaderboard returned error: %v", err)
	}

	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	if entries[1].UserID != "user-a" || entries[2].UserID != "user-b" {
		t.Errorf("tie-break order changed: %v", entries)
	}
	for i, e := range entries {
		if e.Rank != i+1 {
			t.Errorf("expected rank %d, got %d", i+1, e.Rank)
		}
	}
}

func TestLeaderboard_RepoError(t *testing.T) {
	repo := &fakeStatsRepo{err: domain.ErrStoreUnavailable}
	svc := NewService(repo)

	_, err := svc.Leaderboard(context.Background(), 10)
	if !errors.Is(err, domain.ErrStoreUnavailable) {
		t.Errorf("expected ErrStoreUnavailable, got %v", err)
	}
}

func TestUserStats_FillsEveryDayBucket(t *testing.T) {
	fixed := time.Date(2025, 3, 10, 15, 0, 0, 0, time.UTC)
	repo := &fakeStatsRepo{
		byAction: map[domain.ActionType]int64{
			domain.ActionChapterRead:   30,
			domain.ActionQuizCompleted: 15,
		},
		dailyTotals: map[string]int64{
			"2025-03-10": 25,
			"2025-03-08": 20,
		},
	}
	svc := &service{repo: repo, now: func() time.Time { return fixed }}

	summary, err := svc.UserStats(context.Background(), "user-1", 7)
	if err != nil {
		t.Fatalf("UserStats returned error: %v", err)
	}

	if summary.TotalXP != 45 {
		t.Errorf("expected total 45, got %d", summary.TotalXP)
	}
	if len(summary.DailyXP) != 7 {
		t.Fatalf("expected 7 day buckets, got %d", len(summary.DailyXP))
	}
	if summary.DailyXP[0].Day != "2025-03-04" {
		t.Errorf("expected window start 2025-03-04, got %s", summary.DailyXP[0].Day)
	}
	if summary.DailyXP[6].Day != "2025-03-10" {
		t.Errorf("expected window end 2025-03-10, got %s", summary.DailyXP[6].Day)
	}
	if summary.DailyXP[6].XP != 25 {
		t.Errorf("expected 25 XP on the final day, got %d", summary.DailyXP[6].XP)
	}
	if summary.DailyXP[4].XP != 20 {
		t.Errorf("expected 20 XP on 2025-03-08, got %d", summary.DailyXP[4].XP)
	}
	// Days without events render as zero buckets.
	if summary.DailyXP[1].XP != 0 {
		t.Errorf("expected empty bucket, got %d", summary.DailyXP[1].XP)
	}
}

func TestUserStats_DefaultWindow(t *testing.T) {
	repo := &fakeStatsRepo{byAction: map[domain.ActionType]int64{}, dailyTotals: map[string]int64{}}
	svc := NewService(repo)

	summary, err := svc.UserStats(context.Background(), "user-1", 0)
	if err != nil {
		t.Fatalf("UserStats returned error: %v", err)
	}
	if summary.WindowDays != DefaultStatsWindowDays {
		t.Errorf("expected default window %d, got %d", DefaultStatsWindowDays, summary.WindowDays)
	}
	if len(summary.DailyXP) != DefaultStatsWindowDays {
		t.Errorf("expected %d buckets, got %d", DefaultStatsWindowDays, len(summary.DailyXP))
	}
}

func TestUserStats_ClampsWindow(t *testing.T) {
	repo := &fakeStatsRepo{byAction: map[domain.ActionType]int64{}, dailyTotals: map[string]int64{}}
	svc := NewService(repo)

	summary, err := svc.UserStats(context.Background(), "user-1", 5000)
	if err != nil {
		t.Fatalf("UserStats returned error: %v", err)
	}
	if summary.WindowDays != MaxStatsWindowDays {
		t.Errorf("expected clamped window %d, got %d", MaxStatsWindowDays, summary.WindowDays)
	}
}

func TestUserStats_EmptyUserID(t *testing.T) {
	svc := NewService(&fakeStatsRepo{})

	_, err := svc.UserStats(context.Background(), "", 7)
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}

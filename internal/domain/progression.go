package domain

import "time"

// ActionType identifies a gamified action that can earn XP
type ActionType string

const (
	ActionChapterRead     ActionType = "CHAPTER_READ"
	ActionLessonCompleted ActionType = "LESSON_COMPLETED"
	ActionQuizCorrect     ActionType = "QUIZ_CORRECT"
	ActionQuizCompleted   ActionType = "QUIZ_COMPLETED"
	ActionVerseMemorized  ActionType = "VERSE_MEMORIZED"
	ActionPrayerLogged    ActionType = "PRAYER_LOGGED"
	ActionReadingPlanDay  ActionType = "READING_PLAN_DAY"
	ActionDailyLogin      ActionType = "DAILY_LOGIN"
	// ActionStreakBonus carries a caller-computed streak bonus and always
	// arrives with an explicit amount
	ActionStreakBonus ActionType = "STREAK_BONUS"
)

// UserProgress is the durable per-user progression record.
// Level is derived from XPTotal and cached for read efficiency; both fields
// are only ever written together inside one atomic update.
type UserProgress struct {
	UserID    string    `json:"user_id"`
	XPTotal   int64     `json:"xp_total"`
	Level     int       `json:"level"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ProgressEvent is an append-only record of a single XP grant
type ProgressEvent struct {
	EventID    int64                  `json:"event_id"`
	UserID     string                 `json:"user_id"`
	ActionType ActionType             `json:"action_type"`
	Amount     int                    `json:"amount"`
	Metadata   map[string]interface{} `json:"metadata,omitempty"`
	CreatedAt  time.Time              `json:"created_at"`
}

// AwardResult contains the outcome of awarding XP
type AwardResult struct {
	XPAwarded int   `json:"xp_awarded"`
	XPTotal   int64 `json:"xp_total"`
	Level     int   `json:"level"`
	OldLevel  int   `json:"old_level"`
	LeveledUp bool  `json:"leveled_up"`
}

// LevelProgress describes how far into the current level a user is
type LevelProgress struct {
	Level            int     `json:"level"`
	CurrentXPInLevel int64   `json:"current_xp_in_level"`
	XPNeededForLevel int64   `json:"xp_needed_for_level"`
	ProgressPercent  float64 `json:"progress_percent"`
}

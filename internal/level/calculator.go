// Package level implements the pure level-derivation formula. It holds no
// state and touches no storage; both the award engine and the persistence
// layer call into it so the cached level column can never drift from the
// formula.
package level

import (
	"math"

	"github.com/gracepath/gracepath-api/internal/domain"
)

// XPForLevel returns the total XP threshold at which a user reaches the given
// level. Level 1 (and below) requires no XP. The formula is strictly
// increasing for level >= 1, so the inverse is well-defined.
func XPForLevel(lvl int) int64 {
	if lvl <= MinLevel {
		return 0
	}
	return int64(math.Floor(BaseXP * math.Pow(float64(lvl), Exponent)))
}

// FromXP returns the largest level whose threshold does not exceed totalXP.
// totalXP must be non-negative; callers validate before reaching this point.
func FromXP(totalXP int64) int {
	lvl := MinLevel
	for lvl < MaxScanLevel && XPForLevel(lvl+1) <= totalXP {
		lvl++
	}
	return lvl
}

// Progress returns the user's level and position within it for display.
// ProgressPercent is clamped to [0, 100].
func Progress(totalXP int64) domain.LevelProgress {
	lvl := FromXP(totalXP)
	floor := XPForLevel(lvl)
	ceil := XPForLevel(lvl + 1)

	inLevel := totalXP - floor
	needed := ceil - floor

	percent := MinProgressPercent
	if needed > 0 {
		percent = float64(inLevel) / float64(needed) * MaxProgressPercent
	}
	if percent < MinProgressPercent {
		percent = MinProgressPercent
	}
	if percent > MaxProgressPercent {
		percent = MaxProgressPercent
	}

	return domain.LevelProgress{
		Level:            lvl,
		CurrentXPInLevel: inLevel,
		XPNeededForLevel: needed,
		ProgressPercent:  percent,
	}
}

// StreakBonus computes the XP bonus for a run of consecutive active days.
// Zero below one full interval. The caller passes the result into Award as an
// explicit amount; this function never reads or writes progression state.
func StreakBonus(streakDays int) int {
	if streakDays < StreakBonusInterval {
		return 0
	}
	return (streakDays / StreakBonusInterval) * StreakBonusXP
}

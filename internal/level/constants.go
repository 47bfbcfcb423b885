package level

// XP formula constants
const (
	// BaseXP is the base XP value used in level threshold calculations
	BaseXP = 100.0

	// Exponent is the exponent used in the threshold formula:
	// XPForLevel(L) = floor(BaseXP * L^Exponent)
	Exponent = 1.5

	// MaxScanLevel bounds the upward scan in FromXP. The threshold at this
	// level is ~1e8 XP, far beyond anything a user can accumulate.
	MaxScanLevel = 10000
)

// Streak bonus constants
const (
	// StreakBonusInterval is the number of consecutive active days per bonus step
	StreakBonusInterval = 7

	// StreakBonusXP is the XP granted per full interval
	StreakBonusXP = 10
)

// MinLevel is the level of a user with zero XP
const MinLevel = 1

// Progress percentage bounds
const (
	MinProgressPercent = 0.0
	MaxProgressPercent = 100.0
)

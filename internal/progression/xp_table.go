package progression

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/gracepath/gracepath-api/internal/domain"
)

// XPTable maps action types to their default XP amounts. Actions absent from
// the table require an explicit amount on the award call.
type XPTable map[domain.ActionType]int

// DefaultXPTable returns the built-in XP amounts used when no config file
// overrides them.
func DefaultXPTable() XPTable {
	return XPTable{
		domain.ActionChapterRead:     10,
		domain.ActionLessonCompleted: 20,
		domain.ActionQuizCorrect:     5,
		domain.ActionQuizCompleted:   15,
		domain.ActionVerseMemorized:  25,
		domain.ActionPrayerLogged:    5,
		domain.ActionReadingPlanDay:  15,
		domain.ActionDailyLogin:      5,
	}
}

// LoadXPTable reads the XP amount table from a JSON config file. Entries in
// the file override the built-in defaults; unlisted actions keep theirs.
func LoadXPTable(path string) (XPTable, error) {
	table := DefaultXPTable()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read xp table %s: %w", path, err)
	}

	var overrides map[string]int
	if err := json.Unmarshal(data, &overrides); err != nil {
		return nil, fmt.Errorf("failed to parse xp table %s: %w", path, err)
	}

	for action, amount := range overrides {
		if amount < 0 {
			return nil, fmt.Errorf("xp table %s: negative amount %d for %s", path, amount, action)
		}
		table[domain.ActionType(action)] = amount
	}

	return table, nil
}

// Amount resolves the default XP amount for an action. The second return
// reports whether the action is known to the table.
func (t XPTable) Amount(action domain.ActionType) (int, bool) {
	amount, ok := t[action]
	return amount, ok
}

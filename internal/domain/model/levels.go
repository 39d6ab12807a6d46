//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Level is a proficiency level on the four-step scale used by assessments.
type Level string

const (
	LevelBeginner     Level = "Beginner"
	LevelIntermediate Level = "Intermediate"
	LevelAdvanced     Level = "Advanced"
	LevelExpert       Level = "Expert"
)

var levelRanks = map[string]int{
	"beginner":     1,
	"intermediate": 2,
	"advanced":     3,
	"expert":       4,
}

var levelsByRank = [...]Level{"", LevelBeginner, LevelIntermediate, LevelAdvanced, LevelExpert}

// Rank returns 1-4 for known levels and 0 otherwise.
func (l Level) Rank() int {
	return levelRanks[strings.ToLower(strings.TrimSpace(string(l)))]
}

// Valid reports whether l is on the scale.
func (l Level) Valid() bool { return l.Rank() > 0 }

// Canonical returns the title-cased form of a known level, or l unchanged.
func (l Level) Canonical() Level {
	if r := l.Rank(); r > 0 {
		return levelsByRank[r]
	}
	return l
}

// UnmarshalJSON accepts level names or the numeric ranks 1-4.
func (l *Level) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*l = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*l = Level(s).Canonical()
		return nil
	}
	n, err := strconv.Atoi(string(b))
	if err != nil {
		return fmt.Errorf("level: unsupported value %s", b)
	}
	if n < 1 || n > 4 {
		*l = ""
		return nil
	}
	*l = levelsByRank[n]
	return nil
}

// GapStatus classifies a current level against the expected level.
type GapStatus string

const (
	GapBelow     GapStatus = "below"
	GapMeeting   GapStatus = "meeting"
	GapExceeding GapStatus = "exceeding"
)

// ClassifyGap compares current against expected on the level scale.
// Unknown levels rank as 0.
func ClassifyGap(current, expected Level) GapStatus {
	c, e := current.Rank(), expected.Rank()
	switch {
	case c < e:
		return GapBelow
	case c > e:
		return GapExceeding
	default:
		return GapMeeting
	}
}

// Percent returns part/total as a rounded percentage, or 0 when total is 0.
func Percent(part, total int) int {
	if total <= 0 {
		return 0
	}
	return (part*200 + total) / (2 * total)
}

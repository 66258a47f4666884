// Package model defines shared data structures.
package model

import "time"

// Config defines game settings.
type Config struct {
	Sound       bool
	WordListDir string
	FPS         int
	DBPath      string
}

// Tier is a difficulty bucket of the word lexicon.
type Tier int

const (
	TierEasy Tier = iota
	TierMedium
	TierHard
)

func (t Tier) String() string {
	switch t {
	case TierEasy:
		return "easy"
	case TierMedium:
		return "medium"
	case TierHard:
		return "hard"
	default:
		return "unknown"
	}
}

// Tiers lists all tiers in ascending difficulty.
var Tiers = []Tier{TierEasy, TierMedium, TierHard}

// Cue names an audio/visual cue played by the presentation layer.
type Cue string

const (
	CueKeystroke   Cue = "keystroke"
	CueWhisper     Cue = "whisper"
	CueSuccess     Cue = "success"
	CueError       Cue = "error"
	CueCollapse    Cue = "collapse"
	CuePhantomMode Cue = "phantomMode"
	CueWarning     Cue = "warning"
)

// PersistedStats is the durable aggregate record across all sessions.
type PersistedStats struct {
	TotalWords           int        `json:"totalWords"`
	TotalKeystrokes      int        `json:"totalKeystrokes"`
	TotalErrors          int        `json:"totalErrors"`
	BestStreak           int        `json:"bestStreak"`
	BestWPM              int        `json:"bestWPM"`
	TotalSessions        int        `json:"totalSessions"`
	LastPlayed           *time.Time `json:"lastPlayed"`
	DifficultyMultiplier float64    `json:"difficultyMultiplier"`
}

// SessionResult is the final tally of a play session.
type SessionResult struct {
	StartedAt      time.Time
	EndedAt        time.Time
	Level          int
	WordsCompleted int
	LongestStreak  int
	Keystrokes     int
	Errors         int
	WPM            int
	Accuracy       int
}

// SessionRecord is a stored history row for a finished session.
type SessionRecord struct {
	ID                   int64
	StartedAt            time.Time
	EndedAt              time.Time
	Level                int
	WordsCompleted       int
	LongestStreak        int
	Keystrokes           int
	Errors               int
	WPM                  int
	Accuracy             int
	DifficultyMultiplier float64
}

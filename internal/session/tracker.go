// Package session accumulates per-session counters and derived metrics.
package session

import (
	"math"
	"time"

	"github.com/verte-zerg/ghosttype/internal/model"
)

// Tracker holds the counters of one play session.
type Tracker struct {
	Level          int
	Streak         int
	LongestStreak  int
	WordsCompleted int
	Keystrokes     int
	Errors         int
	StartedAt      time.Time
}

// NewTracker returns a tracker for a session starting at now.
func NewTracker(now time.Time) *Tracker {
	t := &Tracker{}
	t.Reset(now)
	return t
}

// Reset starts a new session at now.
func (t *Tracker) Reset(now time.Time) {
	*t = Tracker{Level: 1, StartedAt: now}
}

// Keystroke counts one input event.
func (t *Tracker) Keystroke(correct bool) {
	t.Keystrokes++
	if !correct {
		t.Errors++
	}
}

// Win records a completed word.
func (t *Tracker) Win() {
	t.WordsCompleted++
	t.Streak++
	t.Level++
	if t.Streak > t.LongestStreak {
		t.LongestStreak = t.Streak
	}
}

// Loss breaks the streak.
func (t *Tracker) Loss() {
	t.Streak = 0
}

// Accuracy returns the rounded percentage of correct keystrokes, 0 without input.
func (t *Tracker) Accuracy() int {
	return Accuracy(t.Keystrokes, t.Errors)
}

// WPM returns completed words per minute of session time up to end.
func (t *Tracker) WPM(end time.Time) int {
	return WPM(t.WordsCompleted, end.Sub(t.StartedAt))
}

// Result snapshots the session for the progression model.
func (t *Tracker) Result(end time.Time) model.SessionResult {
	return model.SessionResult{
		StartedAt:      t.StartedAt,
		EndedAt:        end,
		Level:          t.Level,
		WordsCompleted: t.WordsCompleted,
		LongestStreak:  t.LongestStreak,
		Keystrokes:     t.Keystrokes,
		Errors:         t.Errors,
		WPM:            t.WPM(end),
		Accuracy:       t.Accuracy(),
	}
}

// Accuracy computes round((keystrokes-errors)/keystrokes*100).
func Accuracy(keystrokes, errors int) int {
	if keystrokes <= 0 {
		return 0
	}
	return int(math.Round(float64(keystrokes-errors) / float64(keystrokes) * 100))
}

// WPM computes round(words/minutes). A non-positive duration yields 0.
func WPM(words int, elapsed time.Duration) int {
	minutes := elapsed.Minutes()
	if minutes <= 0 {
		return 0
	}
	return int(math.Round(float64(words) / minutes))
}

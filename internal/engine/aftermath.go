package engine

import (
	"fmt"
	"time"

	"github.com/verte-zerg/ghosttype/internal/model"
	"github.com/verte-zerg/ghosttype/internal/progression"
)

// SummaryLine is one revealed stat of the aftermath screen.
type SummaryLine struct {
	Label string
	Value string
}

// Summary is the aftermath state.
type Summary struct {
	Result     model.SessionResult
	Persisted  model.PersistedStats
	Saved      bool
	Raised     bool
	Lines      []SummaryLine
	Revealed   int
	RetryReady bool
}

// Visible returns the lines revealed so far.
func (s Summary) Visible() []SummaryLine {
	n := s.Revealed
	if n > len(s.Lines) {
		n = len(s.Lines)
	}
	return s.Lines[:n]
}

func (e *Engine) enterAftermath(now time.Time, fx *Effects) {
	e.epoch++
	e.state = StateAftermath

	result := e.tracker.Result(now)
	var before model.PersistedStats
	next, saved := e.progress.Update(func(current model.PersistedStats) model.PersistedStats {
		before = current
		return progression.Apply(current, result)
	})
	e.progress.RecordSession(model.SessionRecord{
		StartedAt:            result.StartedAt,
		EndedAt:              result.EndedAt,
		Level:                result.Level,
		WordsCompleted:       result.WordsCompleted,
		LongestStreak:        result.LongestStreak,
		Keystrokes:           result.Keystrokes,
		Errors:               result.Errors,
		WPM:                  result.WPM,
		Accuracy:             result.Accuracy,
		DifficultyMultiplier: e.multiplier,
	})

	e.summary = Summary{
		Result:    result,
		Persisted: next,
		Saved:     saved,
		Raised:    saved && next.DifficultyMultiplier > before.DifficultyMultiplier,
		Lines:     summaryLines(result, next),
	}
	e.logger.Info("session ended",
		"words", result.WordsCompleted,
		"wpm", result.WPM,
		"accuracy", result.Accuracy,
		"saved", saved,
		"multiplier", next.DifficultyMultiplier,
	)
	e.schedule(fx, TimerReveal, RevealStagger)
}

func (e *Engine) revealNext(fx *Effects) {
	if e.summary.Revealed < len(e.summary.Lines) {
		e.summary.Revealed++
	}
	if e.summary.Revealed < len(e.summary.Lines) {
		e.schedule(fx, TimerReveal, RevealStagger)
		return
	}
	e.schedule(fx, TimerRetry, RetryDelay)
}

func summaryLines(result model.SessionResult, persisted model.PersistedStats) []SummaryLine {
	return []SummaryLine{
		{Label: "Words", Value: fmt.Sprintf("%d", result.WordsCompleted)},
		{Label: "WPM", Value: fmt.Sprintf("%d", result.WPM)},
		{Label: "Accuracy", Value: fmt.Sprintf("%d%%", result.Accuracy)},
		{Label: "Longest streak", Value: fmt.Sprintf("%d", result.LongestStreak)},
		{Label: "Level reached", Value: fmt.Sprintf("%d", result.Level)},
		{Label: "Best streak", Value: fmt.Sprintf("%d", persisted.BestStreak)},
		{Label: "Best WPM", Value: fmt.Sprintf("%d", persisted.BestWPM)},
		{Label: "Difficulty", Value: fmt.Sprintf("%.2fx", persisted.DifficultyMultiplier)},
	}
}

// Package progression updates the persisted player record from a finished session.
package progression

import (
	"math"

	"github.com/verte-zerg/ghosttype/internal/model"
)

const (
	// MinMultiplier is the default and lowest difficulty multiplier.
	MinMultiplier = 1.0
	// MaxMultiplier caps the difficulty multiplier.
	MaxMultiplier = 2.0
	// MultiplierStep is added after a qualifying session.
	MultiplierStep = 0.05

	qualifyingWords    = 10
	qualifyingAccuracy = 85
)

// Qualifies reports whether a session earns a difficulty increase.
func Qualifies(result model.SessionResult) bool {
	return result.WordsCompleted >= qualifyingWords && result.Accuracy > qualifyingAccuracy
}

// ClampMultiplier bounds a stored multiplier to [MinMultiplier, MaxMultiplier].
func ClampMultiplier(v float64) float64 {
	if math.IsNaN(v) || v < MinMultiplier {
		return MinMultiplier
	}
	if v > MaxMultiplier {
		return MaxMultiplier
	}
	return v
}

// Apply folds a session result into the persisted record and returns the new record.
// The multiplier only ratchets upward.
func Apply(persisted model.PersistedStats, result model.SessionResult) model.PersistedStats {
	next := persisted
	next.TotalWords += result.WordsCompleted
	next.TotalKeystrokes += result.Keystrokes
	next.TotalErrors += result.Errors
	next.TotalSessions++

	if result.LongestStreak > next.BestStreak {
		next.BestStreak = result.LongestStreak
	}
	if result.WPM > next.BestWPM {
		next.BestWPM = result.WPM
	}

	next.DifficultyMultiplier = ClampMultiplier(next.DifficultyMultiplier)
	if Qualifies(result) {
		// Rounded to hundredths so repeated steps don't drift.
		raised := math.Round((next.DifficultyMultiplier+MultiplierStep)*100) / 100
		next.DifficultyMultiplier = math.Min(raised, MaxMultiplier)
	}
	return next
}

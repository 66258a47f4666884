package progression

import (
	"math"
	"testing"

	"github.com/verte-zerg/ghosttype/internal/model"
)

func TestApplyAccumulatesTotals(t *testing.T) {
	persisted := model.PersistedStats{
		TotalWords:           4,
		TotalKeystrokes:      30,
		TotalErrors:          2,
		TotalSessions:        1,
		BestStreak:           6,
		BestWPM:              20,
		DifficultyMultiplier: 1.0,
	}
	result := model.SessionResult{
		WordsCompleted: 3,
		Keystrokes:     25,
		Errors:         5,
		LongestStreak:  3,
		WPM:            31,
		Accuracy:       80,
	}
	next := Apply(persisted, result)
	if next.TotalWords != 7 || next.TotalKeystrokes != 55 || next.TotalErrors != 7 || next.TotalSessions != 2 {
		t.Fatalf("unexpected totals: %+v", next)
	}
	if next.BestStreak != 6 {
		t.Fatalf("expected best streak to stay 6, got %d", next.BestStreak)
	}
	if next.BestWPM != 31 {
		t.Fatalf("expected best wpm 31, got %d", next.BestWPM)
	}
	if next.DifficultyMultiplier != 1.0 {
		t.Fatalf("expected multiplier unchanged, got %v", next.DifficultyMultiplier)
	}
	if persisted.TotalWords != 4 {
		t.Fatalf("input record was mutated")
	}
}

func TestApplyQualifyingSessionRaisesMultiplier(t *testing.T) {
	persisted := model.PersistedStats{DifficultyMultiplier: 1.0}
	result := model.SessionResult{WordsCompleted: 10, Keystrokes: 100, Errors: 10, Accuracy: 90}
	next := Apply(persisted, result)
	if next.DifficultyMultiplier != 1.05 {
		t.Fatalf("expected 1.05, got %v", next.DifficultyMultiplier)
	}
}

func TestApplyBoundaryDoesNotQualify(t *testing.T) {
	cases := []model.SessionResult{
		{WordsCompleted: 9, Accuracy: 100},
		{WordsCompleted: 30, Accuracy: 85},
	}
	for _, result := range cases {
		next := Apply(model.PersistedStats{DifficultyMultiplier: 1.3}, result)
		if next.DifficultyMultiplier != 1.3 {
			t.Fatalf("%+v: expected multiplier to stay 1.3, got %v", result, next.DifficultyMultiplier)
		}
	}
}

func TestMultiplierAfterRepeatedSessions(t *testing.T) {
	qualifying := model.SessionResult{WordsCompleted: 12, Accuracy: 95}
	poor := model.SessionResult{WordsCompleted: 2, Accuracy: 40}
	stats := model.PersistedStats{DifficultyMultiplier: 1.0}
	for n := 1; n <= 25; n++ {
		stats = Apply(stats, qualifying)
		want := math.Min(1.0+0.05*float64(n), 2.0)
		if math.Abs(stats.DifficultyMultiplier-want) > 1e-9 {
			t.Fatalf("after %d sessions expected %v, got %v", n, want, stats.DifficultyMultiplier)
		}
		before := stats.DifficultyMultiplier
		stats = Apply(stats, poor)
		if stats.DifficultyMultiplier != before {
			t.Fatalf("poor session changed multiplier %v -> %v", before, stats.DifficultyMultiplier)
		}
	}
	if stats.DifficultyMultiplier != MaxMultiplier {
		t.Fatalf("expected cap at %v, got %v", MaxMultiplier, stats.DifficultyMultiplier)
	}
}

func TestClampMultiplier(t *testing.T) {
	cases := map[float64]float64{
		0:    1.0,
		0.5:  1.0,
		1.25: 1.25,
		3:    2.0,
	}
	for in, want := range cases {
		if got := ClampMultiplier(in); got != want {
			t.Fatalf("ClampMultiplier(%v) = %v, want %v", in, got, want)
		}
	}
	if got := ClampMultiplier(math.NaN()); got != 1.0 {
		t.Fatalf("expected NaN to clamp to 1.0, got %v", got)
	}
}

package engine

import (
	"math"
	"time"
)

// Visuals are the distortion parameters of the target word.
type Visuals struct {
	Corruption       float64 // 0-100, share of time used
	DifficultyFactor float64
	Blur             float64 // px
	Skew             float64 // degrees
	Opacity          float64 // 0-1
	Brightness       float64 // 0-1
}

const (
	maxBlur       = 4.0
	maxSkew       = 10.0
	opacityFade   = 0.6
	opacityFloor  = 0.25
	brightFade    = 0.5
	brightFloor   = 0.35
	percentScaled = 100.0
)

// MaxTime returns the time allowed for a round at level with multiplier mult.
func MaxTime(level int, mult float64) time.Duration {
	ms := float64(BaseTime.Milliseconds()) - float64(level)*float64(TimeReductionPerLevel.Milliseconds())*mult
	d := time.Duration(math.Round(ms)) * time.Millisecond
	if d < MinTime {
		return MinTime
	}
	return d
}

// DifficultyFactor returns 1 + level*0.15*mult.
func DifficultyFactor(level int, mult float64) float64 {
	return 1 + float64(level)*DifficultyScale*mult
}

// ComputeVisuals derives the distortion for the remaining share of a round.
func ComputeVisuals(remaining, maxTime time.Duration, level int, mult float64) Visuals {
	percent := 0.0
	if maxTime > 0 {
		percent = float64(remaining) / float64(maxTime) * percentScaled
	}
	percent = math.Max(0, math.Min(percentScaled, percent))
	corruption := percentScaled - percent
	df := DifficultyFactor(level, mult)
	c := corruption / percentScaled
	return Visuals{
		Corruption:       corruption,
		DifficultyFactor: df,
		Blur:             c * maxBlur * df,
		Skew:             c * maxSkew * df,
		Opacity:          math.Max(opacityFloor, 1-c*opacityFade*df),
		Brightness:       math.Max(brightFloor, 1-c*brightFade*df),
	}
}

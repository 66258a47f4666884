package engine

import (
	"time"

	"github.com/verte-zerg/ghosttype/internal/model"
)

// TimerKind names a deferred transition.
type TimerKind int

const (
	TimerFrame TimerKind = iota
	TimerNextRound
	TimerCollapseHold
	TimerReveal
	TimerRetry
)

func (k TimerKind) String() string {
	switch k {
	case TimerFrame:
		return "frame"
	case TimerNextRound:
		return "next-round"
	case TimerCollapseHold:
		return "collapse-hold"
	case TimerReveal:
		return "reveal"
	case TimerRetry:
		return "retry"
	default:
		return "unknown"
	}
}

// Timer is a one-shot deferred event. Epoch is its cancellation handle.
type Timer struct {
	Kind  TimerKind
	After time.Duration
	Epoch uint64
}

// Effects are the outputs of one event.
type Effects struct {
	Cues   []model.Cue
	Timers []Timer
}

// Empty reports whether there is nothing to do.
func (fx Effects) Empty() bool {
	return len(fx.Cues) == 0 && len(fx.Timers) == 0
}

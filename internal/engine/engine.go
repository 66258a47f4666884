// Package engine implements the round lifecycle of the game.
//
// The engine is a plain state machine driven by explicit events. It never
// sleeps or spawns goroutines: each event returns the cues to play and the
// timers to schedule, and the owner feeds fired timers back through Fire.
// Timers carry the epoch they were scheduled in; the epoch advances on every
// state change, so a timer from a superseded round is dropped.
package engine

import (
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/verte-zerg/ghosttype/internal/model"
	"github.com/verte-zerg/ghosttype/internal/persist"
	"github.com/verte-zerg/ghosttype/internal/progression"
	"github.com/verte-zerg/ghosttype/internal/session"
	"github.com/verte-zerg/ghosttype/internal/wordbank"
)

// State tags the lifecycle phase.
type State int

const (
	StateBoot      State = iota // Waiting for the first key
	StateRunning                // A round is being typed
	StateSuccess                // Pause after a completed word
	StateCollapse               // Timed out, failure hold
	StateAftermath              // Session summary
)

func (s State) String() string {
	switch s {
	case StateBoot:
		return "boot"
	case StateRunning:
		return "running"
	case StateSuccess:
		return "success"
	case StateCollapse:
		return "collapse"
	case StateAftermath:
		return "aftermath"
	default:
		return "unknown"
	}
}

// Active reports whether the state belongs to the round loop.
func (s State) Active() bool {
	return s == StateRunning || s == StateSuccess
}

// Feedback classifies the latest input.
type Feedback int

const (
	FeedbackNone Feedback = iota
	FeedbackCorrect
	FeedbackIncorrect
)

// Round timing and pacing.
const (
	BaseTime              = 8000 * time.Millisecond
	MinTime               = 3000 * time.Millisecond
	TimeReductionPerLevel = 300 * time.Millisecond
	PhantomModeTrigger    = 5
	DifficultyScale       = 0.15
	WarningPercent        = 20.0

	SuccessPause  = 500 * time.Millisecond
	CollapseHold  = 3000 * time.Millisecond
	RevealStagger = 400 * time.Millisecond
	RetryDelay    = 1000 * time.Millisecond

	DefaultFrameInterval = time.Second / 60
)

// Progress is the persistence the engine reads difficulty from and writes results to.
type Progress interface {
	Load() model.PersistedStats
	Update(fn func(model.PersistedStats) model.PersistedStats) (model.PersistedStats, bool)
	RecordSession(rec model.SessionRecord) bool
}

// AudioOutput is initialized on the first key press.
type AudioOutput interface {
	Init() error
}

// Options configures an Engine. A nil Progress behaves as unavailable storage.
type Options struct {
	Bank          *wordbank.Bank
	Progress      Progress
	Audio         AudioOutput
	Logger        *log.Logger
	FrameInterval time.Duration
}

// Round is the state of the current word.
type Round struct {
	Number    int
	Word      string
	Tier      model.Tier
	Phantom   bool
	Ghosts    []string
	Input     string
	Feedback  Feedback
	MaxTime   time.Duration
	Remaining time.Duration
	StartedAt time.Time
	Warned    bool
	Visuals   Visuals
}

// PercentRemaining returns the share of the round time left, 0-100.
func (r Round) PercentRemaining() float64 {
	if r.MaxTime <= 0 {
		return 0
	}
	return float64(r.Remaining) / float64(r.MaxTime) * 100
}

// Engine owns the session state. It is not safe for concurrent use; a single
// owner applies events one at a time.
type Engine struct {
	bank          *wordbank.Bank
	progress      Progress
	audio         AudioOutput
	logger        *log.Logger
	frameInterval time.Duration

	state      State
	epoch      uint64
	muted      bool
	multiplier float64
	tracker    *session.Tracker
	round      Round
	summary    Summary
}

// New returns an engine waiting in StateBoot.
func New(opts Options) *Engine {
	frame := opts.FrameInterval
	if frame <= 0 {
		frame = DefaultFrameInterval
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	progress := opts.Progress
	if progress == nil {
		progress = persist.New(nil, nil, logger)
	}
	return &Engine{
		bank:          opts.Bank,
		progress:      progress,
		audio:         opts.Audio,
		logger:        logger,
		frameInterval: frame,
		state:         StateBoot,
		multiplier:    progression.MinMultiplier,
		tracker:       session.NewTracker(time.Time{}),
	}
}

// State returns the current lifecycle state.
func (e *Engine) State() State { return e.state }

// Epoch returns the current timer epoch.
func (e *Engine) Epoch() uint64 { return e.epoch }

// Round returns a copy of the current round.
func (e *Engine) Round() Round {
	r := e.round
	r.Ghosts = append([]string(nil), e.round.Ghosts...)
	return r
}

// Session returns a copy of the session counters.
func (e *Engine) Session() session.Tracker { return *e.tracker }

// Multiplier returns the difficulty multiplier of the session.
func (e *Engine) Multiplier() float64 { return e.multiplier }

// Summary returns the aftermath summary.
func (e *Engine) Summary() Summary {
	s := e.summary
	s.Lines = append([]SummaryLine(nil), e.summary.Lines...)
	return s
}

// Muted reports whether audio init failed.
func (e *Engine) Muted() bool { return e.muted }

// Press handles the first key of the boot screen.
func (e *Engine) Press(now time.Time) Effects {
	if e.state != StateBoot {
		return Effects{}
	}
	if e.audio != nil {
		if err := e.audio.Init(); err != nil {
			e.logger.Warn("audio unavailable, continuing muted", "err", err)
			e.muted = true
		}
	}
	e.multiplier = e.progress.Load().DifficultyMultiplier
	e.tracker.Reset(now)
	e.logger.Info("session started", "multiplier", e.multiplier)
	var fx Effects
	e.startRound(now, &fx)
	return fx
}

// Type applies typed runes, one keystroke each.
func (e *Engine) Type(runes []rune, now time.Time) Effects {
	var fx Effects
	for _, r := range runes {
		if e.state != StateRunning {
			break
		}
		if e.advance(now, &fx) {
			break
		}
		e.round.Input += string(r)
		e.evaluate(now, &fx)
	}
	return fx
}

// Backspace removes the last rune of the input. It is a keystroke like any other.
func (e *Engine) Backspace(now time.Time) Effects {
	var fx Effects
	if e.state != StateRunning || e.round.Input == "" {
		return fx
	}
	if e.advance(now, &fx) {
		return fx
	}
	runes := []rune(e.round.Input)
	e.round.Input = string(runes[:len(runes)-1])
	e.evaluate(now, &fx)
	return fx
}

// Fire delivers a scheduled timer. Timers from an earlier epoch are ignored.
func (e *Engine) Fire(t Timer, now time.Time) Effects {
	var fx Effects
	if t.Epoch != e.epoch {
		return fx
	}
	switch t.Kind {
	case TimerFrame:
		if e.state == StateRunning {
			e.tick(now, &fx)
		}
	case TimerNextRound:
		if e.state == StateSuccess {
			e.startRound(now, &fx)
		}
	case TimerCollapseHold:
		if e.state == StateCollapse {
			e.enterAftermath(now, &fx)
		}
	case TimerReveal:
		if e.state == StateAftermath {
			e.revealNext(&fx)
		}
	case TimerRetry:
		if e.state == StateAftermath {
			e.summary.RetryReady = true
		}
	}
	return fx
}

// Retry starts a new session once the aftermath exposes it.
func (e *Engine) Retry(now time.Time) Effects {
	var fx Effects
	if e.state != StateAftermath || !e.summary.RetryReady {
		return fx
	}
	e.multiplier = e.progress.Load().DifficultyMultiplier
	e.tracker.Reset(now)
	e.summary = Summary{}
	e.round = Round{}
	e.logger.Info("session restarted", "multiplier", e.multiplier)
	e.startRound(now, &fx)
	return fx
}

func (e *Engine) startRound(now time.Time, fx *Effects) {
	e.epoch++
	e.state = StateRunning
	level := e.tracker.Level
	tier := wordbank.TierForLevel(level)
	word := e.bank.Pick(tier)
	maxTime := MaxTime(level, e.multiplier)
	e.round = Round{
		Number:    e.round.Number + 1,
		Word:      word,
		Tier:      tier,
		MaxTime:   maxTime,
		Remaining: maxTime,
		StartedAt: now,
		Visuals:   ComputeVisuals(maxTime, maxTime, level, e.multiplier),
	}
	e.cue(fx, model.CueWhisper)

	words := e.tracker.WordsCompleted
	if words > 0 && words%PhantomModeTrigger == 0 {
		e.round.Phantom = true
		e.round.Ghosts = e.bank.Ghosts(tier, word, e.bank.GhostCount())
		e.cue(fx, model.CuePhantomMode)
	}
	e.logger.Debug("round started", "level", level, "tier", tier, "word", word, "max", maxTime, "phantom", e.round.Phantom)
	e.schedule(fx, TimerFrame, e.frameInterval)
}

// advance recomputes the remaining time and times the round out when it hits zero.
// It reports whether the round ended.
func (e *Engine) advance(now time.Time, fx *Effects) bool {
	elapsed := now.Sub(e.round.StartedAt)
	remaining := e.round.MaxTime - elapsed
	if remaining < 0 {
		remaining = 0
	}
	e.round.Remaining = remaining
	e.round.Visuals = ComputeVisuals(remaining, e.round.MaxTime, e.tracker.Level, e.multiplier)
	if remaining == 0 {
		e.timeout(fx)
		return true
	}
	if !e.round.Warned && e.round.PercentRemaining() < WarningPercent {
		e.round.Warned = true
		e.cue(fx, model.CueWarning)
	}
	return false
}

func (e *Engine) tick(now time.Time, fx *Effects) {
	if e.advance(now, fx) {
		return
	}
	e.schedule(fx, TimerFrame, e.frameInterval)
}

func (e *Engine) evaluate(now time.Time, fx *Effects) {
	input := normalize(e.round.Input)
	target := normalize(e.round.Word)
	switch {
	case input == target:
		e.tracker.Keystroke(true)
		e.round.Feedback = FeedbackCorrect
		e.succeed(now, fx)
	case strings.HasPrefix(target, input):
		e.tracker.Keystroke(true)
		e.round.Feedback = FeedbackCorrect
		e.cue(fx, model.CueKeystroke)
	default:
		e.tracker.Keystroke(false)
		e.round.Feedback = FeedbackIncorrect
		e.cue(fx, model.CueError)
	}
}

func (e *Engine) succeed(now time.Time, fx *Effects) {
	e.epoch++
	e.state = StateSuccess
	e.tracker.Win()
	e.cue(fx, model.CueSuccess)
	e.logger.Debug("round won", "word", e.round.Word, "took", now.Sub(e.round.StartedAt), "streak", e.tracker.Streak)
	e.schedule(fx, TimerNextRound, SuccessPause)
}

func (e *Engine) timeout(fx *Effects) {
	e.epoch++
	e.state = StateCollapse
	e.tracker.Loss()
	e.cue(fx, model.CueCollapse)
	e.logger.Debug("round timed out", "word", e.round.Word, "level", e.tracker.Level)
	e.schedule(fx, TimerCollapseHold, CollapseHold)
}

func (e *Engine) cue(fx *Effects, c model.Cue) {
	if e.muted {
		return
	}
	fx.Cues = append(fx.Cues, c)
}

func (e *Engine) schedule(fx *Effects, kind TimerKind, after time.Duration) {
	fx.Timers = append(fx.Timers, Timer{Kind: kind, After: after, Epoch: e.epoch})
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

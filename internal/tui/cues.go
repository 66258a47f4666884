package tui

import (
	"errors"
	"io"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/verte-zerg/ghosttype/internal/model"
)

const (
	bell      = "\a"
	flashTime = 450 * time.Millisecond
)

type cueStyle struct {
	label string
	bell  bool
}

var cueStyles = map[model.Cue]cueStyle{
	model.CueKeystroke:   {label: "·"},
	model.CueWhisper:     {label: "~ whisper ~"},
	model.CueSuccess:     {label: "✓"},
	model.CueError:       {label: "✗", bell: true},
	model.CueCollapse:    {label: "COLLAPSE", bell: true},
	model.CuePhantomMode: {label: "phantoms stir"},
	model.CueWarning:     {label: "! hurry !", bell: true},
}

type cueClearMsg struct {
	seq int
}

// CuePlayer renders cues as a status flash and rings the terminal bell for
// the alarming ones.
type CuePlayer struct {
	out     io.Writer
	enabled bool
	muted   bool
	ready   bool

	seq   int
	flash string
}

// NewCuePlayer returns a player writing bells to out. With enabled false it
// only flashes.
func NewCuePlayer(out io.Writer, enabled bool) *CuePlayer {
	return &CuePlayer{out: out, enabled: enabled}
}

// Init checks that out is a terminal able to ring the bell.
func (p *CuePlayer) Init() error {
	if p.ready {
		return nil
	}
	if !p.enabled {
		p.ready = true
		return nil
	}
	f, ok := p.out.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		p.enabled = false
		return errors.New("cue output is not a terminal")
	}
	p.ready = true
	return nil
}

// ToggleMute flips the mute flag and returns the new value.
func (p *CuePlayer) ToggleMute() bool {
	p.muted = !p.muted
	return p.muted
}

// Muted reports whether bells are silenced.
func (p *CuePlayer) Muted() bool {
	return p.muted || !p.enabled
}

// Flash returns the label of the most recent cue, if still showing.
func (p *CuePlayer) Flash() string {
	return p.flash
}

// Play shows the cue and returns a command that clears it.
func (p *CuePlayer) Play(c model.Cue) tea.Cmd {
	cs, ok := cueStyles[c]
	if !ok {
		return nil
	}
	if cs.bell && !p.Muted() && p.out != nil {
		_, _ = io.WriteString(p.out, bell)
	}
	p.seq++
	p.flash = cs.label
	seq := p.seq
	return tea.Tick(flashTime, func(time.Time) tea.Msg {
		return cueClearMsg{seq: seq}
	})
}

func (p *CuePlayer) clear(msg cueClearMsg) {
	if msg.seq == p.seq {
		p.flash = ""
	}
}

package tui

import (
	"bytes"
	"testing"

	"github.com/verte-zerg/ghosttype/internal/model"
)

func TestCuePlayerBell(t *testing.T) {
	var buf bytes.Buffer
	p := NewCuePlayer(&buf, true)

	if cmd := p.Play(model.CueKeystroke); cmd == nil {
		t.Fatalf("expected clear command")
	}
	if buf.Len() != 0 {
		t.Fatalf("keystroke must not ring")
	}
	p.Play(model.CueError)
	if buf.String() != bell {
		t.Fatalf("expected bell, got %q", buf.String())
	}
	if p.Flash() != "✗" {
		t.Fatalf("unexpected flash %q", p.Flash())
	}

	p.ToggleMute()
	p.Play(model.CueCollapse)
	if buf.String() != bell {
		t.Fatalf("muted player rang")
	}
}

func TestCuePlayerFlashClear(t *testing.T) {
	p := NewCuePlayer(nil, false)
	p.Play(model.CueWhisper)
	p.Play(model.CueSuccess)
	p.clear(cueClearMsg{seq: 1})
	if p.Flash() == "" {
		t.Fatalf("stale clear removed newer flash")
	}
	p.clear(cueClearMsg{seq: 2})
	if p.Flash() != "" {
		t.Fatalf("expected flash cleared")
	}
}

func TestCuePlayerInitRequiresTerminal(t *testing.T) {
	p := NewCuePlayer(&bytes.Buffer{}, true)
	if err := p.Init(); err == nil {
		t.Fatalf("expected init error for non-terminal output")
	}
	if !p.Muted() {
		t.Fatalf("expected player muted after failed init")
	}

	silent := NewCuePlayer(nil, false)
	if err := silent.Init(); err != nil {
		t.Fatalf("disabled player init: %v", err)
	}
}

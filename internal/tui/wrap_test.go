package tui

import (
	"strings"
	"testing"
)

func TestBuildGhostRunes(t *testing.T) {
	runes := buildGhostRunes([]string{"ab", "cd"})
	if len(runes) != 4+len(ghostGap) {
		t.Fatalf("expected %d runes, got %d", 4+len(ghostGap), len(runes))
	}
	if runes[0].s != ghostStyle.Render("a") {
		t.Fatalf("expected ghost style for first rune")
	}
	if !runes[2].isSpace || runes[2].width != 1 {
		t.Fatalf("expected gap rune after first ghost")
	}
}

func TestWrapStyledRunesFits(t *testing.T) {
	row := buildGhostRunes([]string{"ab", "cd"})
	out := wrapStyledRunes(row, 40)
	if strings.Contains(out, "\n") {
		t.Fatalf("expected single line, got %q", out)
	}
	if got := lineWidthOf(row); got != 7 {
		t.Fatalf("expected width 7, got %d", got)
	}
}

func TestWrapStyledRunesBreaksAtGap(t *testing.T) {
	row := buildGhostRunes([]string{"abcd", "efgh", "ijkl"})
	out := wrapStyledRunes(row, 8)
	lines := strings.Split(out, "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %q", out)
	}
	for _, line := range lines {
		if strings.HasPrefix(line, " ") || strings.HasSuffix(line, " ") {
			t.Fatalf("expected trimmed line, got %q", line)
		}
	}
}

func TestWrapStyledRunesHardBreak(t *testing.T) {
	row := buildGhostRunes([]string{"abcdef"})
	out := wrapStyledRunes(row, 4)
	if out != ghostRender("abcd")+"\n"+ghostRender("ef") {
		t.Fatalf("unexpected hard wrap %q", out)
	}
}

func ghostRender(s string) string {
	var b strings.Builder
	for _, r := range s {
		b.WriteString(ghostStyle.Render(string(r)))
	}
	return b.String()
}

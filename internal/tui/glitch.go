package tui

import (
	"math"
	"math/rand"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/ghosttype/internal/engine"
)

const (
	// Blur at which every pending rune is glitched.
	blurSaturation = 8.0
	// Skew per column of horizontal jitter.
	skewPerColumn = 5.0
)

var glitchGlyphs = []rune("#%&@*/\\|~^")

var (
	wordColor       = hexColor("#F0F0F0")
	backgroundColor = hexColor("#101010")
)

// distortion maps the round visuals onto what a terminal can show.
type distortion struct {
	glitch float64
	shift  int
	color  colorful.Color
}

func newDistortion(v engine.Visuals, rnd *rand.Rand) distortion {
	d := distortion{
		glitch: math.Min(1, math.Max(0, v.Blur/blurSaturation)),
		color:  fadeColor(wordColor, v.Opacity, v.Brightness),
	}
	if maxShift := int(math.Round(v.Skew / skewPerColumn)); maxShift > 0 {
		d.shift = rnd.Intn(2*maxShift+1) - maxShift
	}
	return d
}

// fadeColor blends c toward the background by the missing opacity, then dims
// its lightness by brightness.
func fadeColor(c colorful.Color, opacity, brightness float64) colorful.Color {
	faded := c.BlendRgb(backgroundColor, 1-opacity)
	h, chroma, l := faded.Hcl()
	return colorful.Hcl(h, chroma, l*brightness).Clamped()
}

// buildWordRunes renders the target word. The typed prefix is shown plainly,
// the rest is distorted.
func buildWordRunes(word, input []rune, d distortion, rnd *rand.Rand) []styledRune {
	pending := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(d.color.Hex()))
	out := make([]styledRune, 0, len(word))
	for i, target := range word {
		displayed := target
		style := pending
		switch {
		case i < len(input) && input[i] == target:
			style = correctStyle
		case i < len(input):
			style = incorrectStyle
		default:
			if d.glitch > 0 && rnd.Float64() < d.glitch {
				displayed = glitchRune(target, rnd)
			}
			if i == len(input) {
				style = style.Underline(true)
			}
		}
		out = append(out, styledRune{
			r:       displayed,
			s:       style.Render(string(displayed)),
			width:   runewidth.RuneWidth(displayed),
			isSpace: target == ' ',
		})
	}
	return out
}

// glitchRune swaps r for a glyph of the same display width.
func glitchRune(r rune, rnd *rand.Rand) rune {
	g := glitchGlyphs[rnd.Intn(len(glitchGlyphs))]
	if runewidth.RuneWidth(g) != runewidth.RuneWidth(r) {
		return r
	}
	return g
}

// collapseWord renders the lost word fully corrupted.
func collapseWord(word string, rnd *rand.Rand) string {
	var b strings.Builder
	for _, r := range word {
		b.WriteRune(glitchRune(r, rnd))
	}
	return incorrectStyle.Bold(true).Render(b.String())
}

// shiftLine jitters a centered line by shift columns.
func shiftLine(s string, shift int) string {
	if shift == 0 {
		return s
	}
	pad := strings.Repeat(" ", 2*abs(shift))
	if shift > 0 {
		return pad + s
	}
	return s + pad
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func hexColor(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		return colorful.Color{R: 1, G: 1, B: 1}
	}
	return c
}

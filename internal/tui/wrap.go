package tui

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

type styledRune struct {
	r       rune
	s       string
	width   int
	isSpace bool
}

const ghostGap = "   "

// buildGhostRunes lays the phantom words out as one row separated by gaps.
func buildGhostRunes(ghosts []string) []styledRune {
	out := make([]styledRune, 0, len(ghosts)*8)
	for i, ghost := range ghosts {
		if i > 0 {
			for _, r := range ghostGap {
				out = append(out, styledRune{r: r, s: string(r), width: 1, isSpace: true})
			}
		}
		for _, r := range ghost {
			out = append(out, styledRune{
				r:     r,
				s:     ghostStyle.Render(string(r)),
				width: runewidth.RuneWidth(r),
			})
		}
	}
	return out
}

func renderStyledRunes(runes []styledRune) string {
	var b strings.Builder
	for _, item := range runes {
		b.WriteString(item.s)
	}
	return b.String()
}

func wrapStyledRunes(runes []styledRune, width int) string {
	if width <= 0 {
		return renderStyledRunes(runes)
	}
	var out strings.Builder
	line := make([]styledRune, 0, len(runes))
	lineWidth := 0
	lastSpaceIdx := -1

	for i := 0; i < len(runes); {
		item := runes[i]
		if lineWidth+item.width > width && len(line) > 0 {
			if lastSpaceIdx >= 0 {
				out.WriteString(renderStyledRunes(trimSpaces(line[:lastSpaceIdx])))
				out.WriteRune('\n')
				line = append([]styledRune{}, trimLeadingSpaces(line[lastSpaceIdx+1:])...)
				lineWidth = lineWidthOf(line)
				lastSpaceIdx = lastSpaceIndex(line)
			} else {
				out.WriteString(renderStyledRunes(line))
				out.WriteRune('\n')
				line = line[:0]
				lineWidth = 0
				lastSpaceIdx = -1
			}
			continue
		}
		if item.isSpace && len(line) == 0 {
			i++
			continue
		}
		line = append(line, item)
		lineWidth += item.width
		if item.isSpace {
			lastSpaceIdx = len(line) - 1
		}
		i++
	}
	out.WriteString(renderStyledRunes(line))
	return out.String()
}

func trimSpaces(line []styledRune) []styledRune {
	end := len(line)
	for end > 0 && line[end-1].isSpace {
		end--
	}
	return line[:end]
}

func trimLeadingSpaces(line []styledRune) []styledRune {
	start := 0
	for start < len(line) && line[start].isSpace {
		start++
	}
	return line[start:]
}

func lineWidthOf(line []styledRune) int {
	total := 0
	for _, item := range line {
		total += item.width
	}
	return total
}

func lastSpaceIndex(line []styledRune) int {
	for i := len(line) - 1; i >= 0; i-- {
		if line[i].isSpace {
			return i
		}
	}
	return -1
}

// Package stats renders persisted totals and session history for the stats command.
package stats

import (
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/verte-zerg/ghosttype/internal/model"
	"github.com/verte-zerg/ghosttype/internal/session"
)

var sparkChars = []rune("▁▂▃▄▅▆▇█")

const (
	terminalWidthBackup = 80
	trendLabelWidth     = 12
	timeLayout          = "2006-01-02 15:04"
)

// MovingAverage computes a rolling mean over the provided window size.
func MovingAverage(values []float64, window int) []float64 {
	out := make([]float64, len(values))
	if window <= 1 {
		copy(out, values)
		return out
	}
	var sum float64
	for i, v := range values {
		sum += v
		if i >= window {
			sum -= values[i-window]
		}
		den := float64(i + 1)
		if i >= window {
			den = float64(window)
		}
		out[i] = sum / den
	}
	return out
}

// Sparkline renders a single-line block sparkline for the values.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	minVal, maxVal := values[0], values[0]
	for _, v := range values[1:] {
		minVal = math.Min(minVal, v)
		maxVal = math.Max(maxVal, v)
	}
	if maxVal-minVal < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	top := len(sparkChars) - 1
	for _, v := range values {
		idx := int(math.Round((v - minVal) / (maxVal - minVal) * float64(top)))
		if idx < 0 {
			idx = 0
		}
		if idx > top {
			idx = top
		}
		b.WriteRune(sparkChars[idx])
	}
	return b.String()
}

// RenderSummary prints the lifetime totals.
func RenderSummary(w io.Writer, p model.PersistedStats) error {
	lastPlayed := "never"
	if p.LastPlayed != nil {
		lastPlayed = p.LastPlayed.Local().Format(timeLayout)
	}
	rows := [][]string{
		{"Sessions", fmt.Sprintf("%d", p.TotalSessions)},
		{"Words", fmt.Sprintf("%d", p.TotalWords)},
		{"Keystrokes", fmt.Sprintf("%d", p.TotalKeystrokes)},
		{"Accuracy", fmt.Sprintf("%d%%", session.Accuracy(p.TotalKeystrokes, p.TotalErrors))},
		{"Best streak", fmt.Sprintf("%d", p.BestStreak)},
		{"Best WPM", fmt.Sprintf("%d", p.BestWPM)},
		{"Difficulty", fmt.Sprintf("%.2fx", p.DifficultyMultiplier)},
		{"Last played", lastPlayed},
	}
	if _, err := fmt.Fprintln(w, "Summary"); err != nil {
		return err
	}
	return writeLines(w, formatTable(nil, rows, map[int]bool{1: true}))
}

// RenderSessions prints one row per recorded session, oldest first.
func RenderSessions(w io.Writer, sessions []model.SessionRecord) error {
	if len(sessions) == 0 {
		_, err := fmt.Fprintln(w, "No sessions found.")
		return err
	}
	if _, err := fmt.Fprintln(w, "Sessions"); err != nil {
		return err
	}
	headers := []string{"Date", "Level", "Words", "Streak", "WPM", "Accuracy", "Difficulty"}
	rows := make([][]string, 0, len(sessions))
	for _, s := range sessions {
		rows = append(rows, []string{
			s.StartedAt.Local().Format(timeLayout),
			fmt.Sprintf("%d", s.Level),
			fmt.Sprintf("%d", s.WordsCompleted),
			fmt.Sprintf("%d", s.LongestStreak),
			fmt.Sprintf("%d", s.WPM),
			fmt.Sprintf("%d%%", s.Accuracy),
			fmt.Sprintf("%.2fx", s.DifficultyMultiplier),
		})
	}
	rightAlign := map[int]bool{1: true, 2: true, 3: true, 4: true, 5: true, 6: true}
	return writeLines(w, formatTable(headers, rows, rightAlign))
}

// RenderTrend prints WPM and accuracy sparklines smoothed over window sessions,
// keeping the most recent points that fit in width columns.
func RenderTrend(w io.Writer, sessions []model.SessionRecord, window, width int) error {
	if len(sessions) < 2 {
		return nil
	}
	wpms := make([]float64, len(sessions))
	accs := make([]float64, len(sessions))
	for i, s := range sessions {
		wpms[i] = float64(s.WPM)
		accs[i] = float64(s.Accuracy)
	}
	wpms = MovingAverage(wpms, window)
	accs = MovingAverage(accs, window)

	points := width - trendLabelWidth
	if points < 1 {
		points = 1
	}
	if len(wpms) > points {
		wpms = wpms[len(wpms)-points:]
		accs = accs[len(accs)-points:]
	}
	if _, err := fmt.Fprintln(w, "Trend"); err != nil {
		return err
	}
	rows := [][]string{
		{"WPM", Sparkline(wpms)},
		{"Accuracy", Sparkline(accs)},
	}
	return writeLines(w, formatTable(nil, rows, nil))
}

// Render prints the full report.
func Render(w io.Writer, report Report, width int) error {
	if err := RenderSummary(w, report.Persisted); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, ""); err != nil {
		return err
	}
	if err := RenderSessions(w, report.Sessions); err != nil {
		return err
	}
	if len(report.Sessions) < 2 {
		return nil
	}
	if _, err := fmt.Fprintln(w, ""); err != nil {
		return err
	}
	return RenderTrend(w, report.Sessions, report.Window, width)
}

// TerminalWidth returns the width of f, or a fallback when it is not a terminal.
func TerminalWidth(f *os.File) int {
	if f == nil || !term.IsTerminal(int(f.Fd())) {
		return terminalWidthBackup
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 {
		return terminalWidthBackup
	}
	return width
}

func writeLines(w io.Writer, lines []string) error {
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// Package tui provides the Bubble Tea game interface.
package tui

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/ghosttype/internal/engine"
)

// Records exposes the persisted highlights shown on the boot screen.
type Records interface {
	BestStreak() int
	DifficultyMultiplier() float64
}

type timerMsg struct {
	timer engine.Timer
	at    time.Time
}

func scheduleTimer(t engine.Timer) tea.Cmd {
	return tea.Tick(t.After, func(now time.Time) tea.Msg {
		return timerMsg{timer: t, at: now}
	})
}

// Model implements the Bubble Tea game UI. It owns the engine and feeds it
// key presses and fired timers one at a time.
type Model struct {
	engine *engine.Engine
	cues   *CuePlayer
	keys   KeyMap
	rnd    *rand.Rand
	now    func() time.Time

	bestStreak int
	multiplier float64

	width  int
	height int

	bar     progress.Model
	warnBar progress.Model
}

var (
	correctStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	incorrectStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	successStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#7FD36E")).Bold(true)
	pendingStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	ghostStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#4A4A5A")).Italic(true)
	titleStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
	labelStyle     = pendingStyle.Copy().Width(16)
	footerStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	flashStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
)

const barWidth = 40

// NewModel constructs the game model.
func NewModel(eng *engine.Engine, cues *CuePlayer, records Records) *Model {
	m := &Model{
		engine:  eng,
		cues:    cues,
		keys:    DefaultKeyMap(),
		rnd:     rand.New(rand.NewSource(time.Now().UnixNano())),
		now:     time.Now,
		bar:     progress.New(progress.WithSolidFill("#C89A3A"), progress.WithoutPercentage()),
		warnBar: progress.New(progress.WithSolidFill("#FF4D4F"), progress.WithoutPercentage()),
	}
	m.bar.Width = barWidth
	m.warnBar.Width = barWidth
	if records != nil {
		m.bestStreak = records.BestStreak()
		m.multiplier = records.DifficultyMultiplier()
	}
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		w := msg.Width / 2
		if w > barWidth {
			w = barWidth
		}
		if w < 10 {
			w = 10
		}
		m.bar.Width = w
		m.warnBar.Width = w
		return m, nil
	case timerMsg:
		return m, m.apply(m.engine.Fire(msg.timer, msg.at))
	case cueClearMsg:
		m.cues.clear(msg)
		return m, nil
	case tea.KeyMsg:
		return m, m.handleKey(msg)
	default:
		return m, nil
	}
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if key.Matches(msg, m.keys.Quit) {
		return tea.Quit
	}
	if key.Matches(msg, m.keys.Mute) {
		m.cues.ToggleMute()
		return nil
	}
	now := m.now()
	switch m.engine.State() {
	case engine.StateBoot:
		return m.apply(m.engine.Press(now))
	case engine.StateRunning:
		if key.Matches(msg, m.keys.Backspace) {
			return m.apply(m.engine.Backspace(now))
		}
		switch msg.Type {
		case tea.KeySpace:
			return m.apply(m.engine.Type([]rune{' '}, now))
		case tea.KeyRunes:
			return m.apply(m.engine.Type(msg.Runes, now))
		}
	case engine.StateAftermath:
		if key.Matches(msg, m.keys.Retry) {
			return m.apply(m.engine.Retry(now))
		}
	}
	return nil
}

// apply turns engine effects into commands: cues play now, timers tick later.
func (m *Model) apply(fx engine.Effects) tea.Cmd {
	if fx.Empty() {
		return nil
	}
	cmds := make([]tea.Cmd, 0, len(fx.Cues)+len(fx.Timers))
	for _, c := range fx.Cues {
		cmds = append(cmds, m.cues.Play(c))
	}
	for _, t := range fx.Timers {
		cmds = append(cmds, scheduleTimer(t))
	}
	return tea.Batch(cmds...)
}

// View implements tea.Model.
func (m *Model) View() string {
	var content string
	switch state := m.engine.State(); {
	case state.Active():
		content = m.viewRound()
	case state == engine.StateBoot:
		content = m.viewBoot()
	case state == engine.StateCollapse:
		content = m.viewCollapse()
	case state == engine.StateAftermath:
		content = m.viewAftermath()
	}
	footer := m.renderFooter()
	if m.width == 0 || m.height == 0 {
		if footer == "" {
			return content
		}
		return content + "\n\n" + footer
	}
	if footer == "" || m.height < 3 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
	}
	bodyHeight := m.height - 1
	body := lipgloss.Place(m.width, bodyHeight, lipgloss.Center, lipgloss.Center, content)
	footerLine := lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Center, footer)
	return body + "\n" + footerLine
}

func (m *Model) viewBoot() string {
	lines := []string{
		titleStyle.Render("G H O S T   T Y P E"),
		"",
		pendingStyle.Render("type each word before it fades"),
		"",
		correctStyle.Render("press any key to begin"),
	}
	if m.bestStreak > 0 || m.multiplier > 1 {
		lines = append(lines, "", footerStyle.Render(fmt.Sprintf("Best streak %d · Difficulty %.2fx", m.bestStreak, m.multiplier)))
	}
	return lipgloss.JoinVertical(lipgloss.Center, lines...)
}

func (m *Model) viewRound() string {
	round := m.engine.Round()
	lines := []string{
		pendingStyle.Render(fmt.Sprintf("level %d · %s", m.engine.Session().Level, round.Tier)),
		"",
	}
	if round.Phantom && len(round.Ghosts) > 0 {
		lines = append(lines, wrapStyledRunes(buildGhostRunes(round.Ghosts), m.contentWidth()), "")
	}

	if m.engine.State() == engine.StateSuccess {
		lines = append(lines, successStyle.Render(round.Word))
	} else {
		d := newDistortion(round.Visuals, m.rnd)
		word := renderStyledRunes(buildWordRunes([]rune(round.Word), []rune(round.Input), d, m.rnd))
		lines = append(lines, shiftLine(word, d.shift))
	}
	lines = append(lines, "", renderInput(round.Input, round.Feedback), "", m.renderBar(round))
	return lipgloss.JoinVertical(lipgloss.Center, lines...)
}

func (m *Model) viewCollapse() string {
	round := m.engine.Round()
	return lipgloss.JoinVertical(lipgloss.Center,
		collapseWord(round.Word, m.rnd),
		"",
		pendingStyle.Render("the word slipped away"),
	)
}

func (m *Model) viewAftermath() string {
	return renderSummary(m.engine.Summary(), m.keys)
}

func (m *Model) renderBar(round engine.Round) string {
	pct := round.PercentRemaining() / 100
	if round.PercentRemaining() < engine.WarningPercent {
		return m.warnBar.ViewAs(pct)
	}
	return m.bar.ViewAs(pct)
}

func (m *Model) contentWidth() int {
	if m.width == 0 {
		return 0
	}
	w := int(float64(m.width) * 0.70)
	if w < 1 {
		w = 1
	}
	return w
}

func renderInput(input string, fb engine.Feedback) string {
	style := pendingStyle
	switch fb {
	case engine.FeedbackCorrect:
		style = correctStyle
	case engine.FeedbackIncorrect:
		style = incorrectStyle
	}
	return pendingStyle.Render("> ") + style.Render(input) + pendingStyle.Render("▏")
}

func renderSummary(s engine.Summary, keys KeyMap) string {
	lines := []string{titleStyle.Render("AFTERMATH"), ""}
	for _, line := range s.Visible() {
		lines = append(lines, labelStyle.Render(line.Label)+correctStyle.Render(line.Value))
	}
	if s.RetryReady {
		lines = append(lines, "")
		if s.Raised {
			lines = append(lines, flashStyle.Render("the ghosts grow restless"))
		}
		if !s.Saved {
			lines = append(lines, incorrectStyle.Render("progress could not be saved"))
		}
		retry := keys.Retry.Help()
		quit := keys.Quit.Help()
		lines = append(lines, footerStyle.Render(fmt.Sprintf("%s %s · %s %s", retry.Key, retry.Desc, quit.Key, quit.Desc)))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m *Model) renderFooter() string {
	state := m.engine.State()
	if state == engine.StateBoot {
		return ""
	}
	tracker := m.engine.Session()
	segments := []string{
		fmt.Sprintf("Words %d", tracker.WordsCompleted),
		fmt.Sprintf("Streak %d", tracker.Streak),
		fmt.Sprintf("Accuracy %d%%", tracker.Accuracy()),
		fmt.Sprintf("Difficulty %.2fx", m.engine.Multiplier()),
	}
	if m.engine.Muted() || m.cues.Muted() {
		segments = append(segments, "muted")
	}
	footer := footerStyle.Render(strings.Join(segments, "  "))
	if flash := m.cues.Flash(); flash != "" {
		footer += "  " + flashStyle.Render(flash)
	}
	return footer
}

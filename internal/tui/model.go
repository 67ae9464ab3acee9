package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"typedrill/internal/engine"
	"typedrill/internal/generator"
	"typedrill/internal/lesson"
	"typedrill/internal/metrics"
	"typedrill/internal/model"
)

// Mode selects what the typing screen is drilling.
type Mode int

// Typing modes.
const (
	ModeFree Mode = iota
	ModeLesson
	ModeChallenge
)

const (
	noticeTicks = 3
	popupTicks  = 5
)

type charStat struct {
	correct      int
	incorrect    int
	latencySumMs int64
	latencyCount int64
}

type notice struct {
	text string
	ttl  int
}

type tickMsg time.Time

// Model implements the Bubble Tea typing UI for free practice, lessons, and
// the daily challenge.
type Model struct {
	eng *engine.Engine

	mode     Mode
	cfg      model.PracticeConfig
	gen      *generator.Generator
	words    []string
	punctSet []rune
	weakSet  map[rune]struct{}

	lsn         lesson.Lesson
	exerciseIdx int
	chal        model.DailyChallenge

	width  int
	height int

	targetRunes []rune
	inputRunes  []rune

	started       bool
	elapsed       int
	sample        model.TypingSample
	charStats     map[rune]*charStat
	prevCorrectAt time.Time

	stats     model.GameStats
	bar       progress.Model
	notices   []notice
	popupLeft int
	done      bool
	outcome   *engine.Outcome
}

var (
	correctStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	incorrectStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	pendingStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	currentWordStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	cursorStyle      = pendingStyle.Copy().Underline(true)
	footerStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	noticeStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	instructionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E")).Italic(true)
	popupStyle       = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("#C89A3A")).
				Padding(0, 2)
)

// NewFreePractice constructs the endless free-practice screen.
func NewFreePractice(eng *engine.Engine, cfg model.PracticeConfig, gen *generator.Generator, words []string, punctSet []rune, weakSet map[rune]struct{}) *Model {
	m := newModel(eng, ModeFree)
	m.cfg = cfg
	m.gen = gen
	m.words = words
	m.punctSet = punctSet
	m.weakSet = weakSet
	m.resetAttempt()
	return m
}

// NewLesson constructs the screen for one lesson's exercise sequence.
func NewLesson(eng *engine.Engine, l lesson.Lesson) *Model {
	m := newModel(eng, ModeLesson)
	m.lsn = l
	m.resetAttempt()
	return m
}

// NewChallenge constructs the single-attempt daily challenge screen.
func NewChallenge(eng *engine.Engine, ch model.DailyChallenge) *Model {
	m := newModel(eng, ModeChallenge)
	m.chal = ch
	m.resetAttempt()
	return m
}

func newModel(eng *engine.Engine, mode Mode) *Model {
	bar := progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage())
	bar.Width = 20
	return &Model{
		eng:   eng,
		mode:  mode,
		bar:   bar,
		stats: eng.GameStats(context.Background()),
	}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tickMsg:
		m.handleTick()
		return m, tick()
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			if m.popupLeft > 0 {
				m.dismissPopup()
				return m, nil
			}
			if m.done {
				return m, tea.Quit
			}
			return m, nil
		case tea.KeyBackspace, tea.KeyDelete:
			m.handleBackspace()
			return m, nil
		case tea.KeySpace:
			m.handleRunes([]rune{' '})
			return m, nil
		case tea.KeyRunes:
			m.handleRunes(msg.Runes)
			return m, nil
		default:
			return m, nil
		}
	default:
		return m, nil
	}
}

func (m *Model) handleTick() {
	if m.started && !m.done {
		m.elapsed++
		m.sample = metrics.Compute(m.targetRunes, m.inputRunes, m.elapsed)
	}
	kept := m.notices[:0]
	for _, n := range m.notices {
		n.ttl--
		if n.ttl > 0 {
			kept = append(kept, n)
		}
	}
	m.notices = kept
	if m.popupLeft > 0 {
		m.popupLeft--
		if m.popupLeft == 0 {
			m.dismissPopup()
		}
	}
}

func (m *Model) dismissPopup() {
	m.eng.Notifications().Dismiss()
	if _, ok := m.eng.Notifications().Peek(); ok {
		m.popupLeft = popupTicks
	} else {
		m.popupLeft = 0
	}
}

func (m *Model) handleBackspace() {
	if m.done || len(m.inputRunes) == 0 {
		return
	}
	m.inputRunes = m.inputRunes[:len(m.inputRunes)-1]
	m.sample = metrics.Compute(m.targetRunes, m.inputRunes, m.elapsed)
}

func (m *Model) handleRunes(runes []rune) {
	if m.done {
		return
	}
	for _, r := range runes {
		if len(m.inputRunes) >= len(m.targetRunes) {
			return
		}
		if !m.started {
			m.started = true
		}
		pos := len(m.inputRunes)
		expected := m.targetRunes[pos]
		m.inputRunes = append(m.inputRunes, r)
		m.trackChar(expected, r)
		m.sample = metrics.Compute(m.targetRunes, m.inputRunes, m.elapsed)
		if metrics.Complete(m.targetRunes, m.inputRunes) {
			m.finishAttempt()
			return
		}
	}
}

func (m *Model) trackChar(expected, typed rune) {
	if expected == ' ' {
		return
	}
	if m.charStats == nil {
		m.charStats = map[rune]*charStat{}
	}
	entry, ok := m.charStats[expected]
	if !ok {
		entry = &charStat{}
		m.charStats[expected] = entry
	}
	if typed == expected {
		entry.correct++
		now := time.Now()
		if !m.prevCorrectAt.IsZero() {
			entry.latencySumMs += now.Sub(m.prevCorrectAt).Milliseconds()
			entry.latencyCount++
		}
		m.prevCorrectAt = now
		return
	}
	entry.incorrect++
}

// finishAttempt hands the completed attempt to the engine and queues the
// resulting notices. Free practice immediately rolls into a fresh text;
// lessons advance to the next exercise; a challenge run ends the screen.
func (m *Model) finishAttempt() {
	ctx := context.Background()
	lessonID := 0
	if m.mode == ModeLesson {
		lessonID = m.lsn.ID
	}

	charStats := make([]model.CharStats, 0, len(m.charStats))
	for ch, entry := range m.charStats {
		charStats = append(charStats, model.CharStats{
			Char:         string(ch),
			Correct:      entry.correct,
			Incorrect:    entry.incorrect,
			LatencySumMs: entry.latencySumMs,
			LatencyCount: entry.latencyCount,
		})
	}

	outcome := m.eng.CompleteSession(ctx, m.sample, lessonID, m.mode == ModeChallenge, charStats)
	m.outcome = &outcome
	m.stats = outcome.Stats

	m.pushNotice(fmt.Sprintf("+%d XP", outcome.XPGained))
	if outcome.LeveledUp {
		m.pushNotice(fmt.Sprintf("Level up! Now level %d", outcome.Stats.Level))
	}
	if outcome.ChallengeCompleted {
		m.pushNotice(fmt.Sprintf("Daily challenge complete! +%d XP", m.chal.RewardXP))
	}
	if len(outcome.NewlyUnlocked) > 0 && m.popupLeft == 0 {
		m.popupLeft = popupTicks
	}

	switch m.mode {
	case ModeFree:
		if m.cfg.FocusWeak {
			m.weakSet = m.eng.WeakChars(ctx, m.cfg.WeakWindow, m.cfg.WeakTop)
		}
		m.resetAttempt()
	case ModeLesson:
		m.exerciseIdx++
		if m.exerciseIdx >= len(m.lsn.Exercises) {
			m.done = true
			return
		}
		m.resetAttempt()
	case ModeChallenge:
		m.done = true
	}
}

func (m *Model) resetAttempt() {
	m.inputRunes = nil
	m.started = false
	m.elapsed = 0
	m.sample = model.TypingSample{AccuracyPercent: 100}
	m.charStats = map[rune]*charStat{}
	m.prevCorrectAt = time.Time{}
	m.targetRunes = []rune(m.targetText())
}

func (m *Model) targetText() string {
	switch m.mode {
	case ModeLesson:
		return m.lsn.Exercises[m.exerciseIdx].Text
	case ModeChallenge:
		return m.chal.Text
	default:
		if m.cfg.FocusWeak && len(m.weakSet) > 0 {
			return m.gen.WeightedText(m.words, m.cfg.Words, m.cfg.CapsPct, m.cfg.PunctPct, m.punctSet, m.weakSet, m.cfg.WeakFactor)
		}
		return m.gen.Text(m.words, m.cfg.Words, m.cfg.CapsPct, m.cfg.PunctPct, m.punctSet)
	}
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.done {
		return m.renderDone()
	}
	if len(m.targetRunes) == 0 {
		return ""
	}
	cursorIndex := -1
	if len(m.inputRunes) < len(m.targetRunes) {
		cursorIndex = len(m.inputRunes)
	}
	glyphs := buildGlyphs(m.targetRunes, m.inputRunes, cursorIndex)
	if m.width == 0 || m.height == 0 {
		return renderGlyphs(glyphs)
	}
	contentWidth := int(float64(m.width) * 0.70)
	if contentWidth < 1 {
		contentWidth = 1
	}
	wrapped := wrapGlyphs(glyphs, contentWidth)

	sections := []string{}
	if header := m.renderHeader(); header != "" {
		sections = append(sections, instructionStyle.Width(contentWidth).Render(header))
	}
	sections = append(sections, lipgloss.NewStyle().Width(contentWidth).Render(wrapped))
	if popup := m.renderPopup(); popup != "" {
		sections = append(sections, popup)
	}
	content := strings.Join(sections, "\n\n")

	footer := m.renderFooter()
	if footer == "" || m.height < 3 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
	}
	bodyHeight := m.height - 1
	body := lipgloss.Place(m.width, bodyHeight, lipgloss.Center, lipgloss.Center, content)
	footerLine := lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Center, footer)
	return body + "\n" + footerLine
}

func (m *Model) renderHeader() string {
	switch m.mode {
	case ModeLesson:
		ex := m.lsn.Exercises[m.exerciseIdx]
		return fmt.Sprintf("%s · exercise %d/%d\n%s", m.lsn.Title, m.exerciseIdx+1, len(m.lsn.Exercises), ex.Instruction)
	case ModeChallenge:
		return fmt.Sprintf("Daily challenge · %s (+%d XP)", m.chal.Description, m.chal.RewardXP)
	default:
		return ""
	}
}

func (m *Model) renderFooter() string {
	if len(m.targetRunes) == 0 {
		return ""
	}
	// NextLevelXP is an absolute total-XP threshold; the bar shows progress
	// within the current level.
	span := m.stats.NextLevelXP - (m.stats.TotalXP - m.stats.CurrentLevelXP)
	pct := 0.0
	if span > 0 {
		pct = float64(m.stats.CurrentLevelXP) / float64(span)
	}
	segments := []string{
		fmt.Sprintf("Lv %d", m.stats.Level),
		m.bar.ViewAs(pct),
		fmt.Sprintf("%d/%d XP", m.stats.CurrentLevelXP, span),
	}
	if m.stats.StreakDays > 0 {
		segments = append(segments, fmt.Sprintf("Streak %dd", m.stats.StreakDays))
	}
	segments = append(segments, fmt.Sprintf("%d WPM · %d%%", m.sample.WPM, m.sample.AccuracyPercent))
	for _, n := range m.notices {
		segments = append(segments, noticeStyle.Render(n.text))
	}
	return footerStyle.Render(strings.Join(segments, "  "))
}

func (m *Model) renderPopup() string {
	if m.popupLeft == 0 {
		return ""
	}
	ach, ok := m.eng.Notifications().Peek()
	if !ok {
		return ""
	}
	body := fmt.Sprintf("Achievement unlocked!\n%s\n%s", ach.Name, ach.Description)
	return popupStyle.Render(body)
}

// renderDone shows the final summary for lesson and challenge runs.
func (m *Model) renderDone() string {
	var b strings.Builder
	switch m.mode {
	case ModeLesson:
		b.WriteString(fmt.Sprintf("Lesson complete: %s\n", m.lsn.Title))
	case ModeChallenge:
		if m.outcome != nil && m.outcome.ChallengeCompleted {
			b.WriteString("Daily challenge complete!\n")
		} else {
			b.WriteString("Daily challenge attempted. Target missed, try again tomorrow.\n")
		}
	}
	if m.outcome != nil {
		rec := m.outcome.Record
		b.WriteString(fmt.Sprintf("%d WPM · %d%% accuracy · +%d XP\n", rec.WPM, rec.AccuracyPercent, m.outcome.XPGained))
		span := m.stats.NextLevelXP - (m.stats.TotalXP - m.stats.CurrentLevelXP)
		b.WriteString(fmt.Sprintf("Level %d · %d/%d XP\n", m.stats.Level, m.stats.CurrentLevelXP, span))
		for _, ach := range m.outcome.NewlyUnlocked {
			b.WriteString(fmt.Sprintf("Achievement unlocked: %s\n", ach.Name))
		}
	}
	b.WriteString("\nPress enter to exit.")
	if m.width == 0 || m.height == 0 {
		return b.String()
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, b.String())
}

func (m *Model) pushNotice(text string) {
	m.notices = append(m.notices, notice{text: text, ttl: noticeTicks})
}

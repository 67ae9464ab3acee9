// Package statsui provides the Bubble Tea progress dashboard.
package statsui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"typedrill/internal/engine"
	"typedrill/internal/lesson"
	"typedrill/internal/model"
	"typedrill/internal/stats"
)

const (
	tabOverview = iota
	tabHistory
	tabAchievements
)

const weakCharWindow = 20

var (
	activeNavStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F0F0F0")).
			Bold(true).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#C89A3A"))
	inactiveNavStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#B0B0B0")).
				Padding(0, 1).
				Border(lipgloss.RoundedBorder(), true).
				BorderForeground(lipgloss.Color("#4A4A4A"))
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	cardStyle   = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#4A4A4A"))
	cardTitleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	cardValueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	tableMutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#B8B8B8"))
	unlockedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
	lockedStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	doneStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#73D13D"))
)

// Model implements the Bubble Tea dashboard UI.
type Model struct {
	eng *engine.Engine
	cfg model.HistoryConfig

	sessions     []model.SessionRecord
	gameStats    model.GameStats
	achievements []model.Achievement
	challenge    model.DailyChallenge
	challengeOn  bool
	weakChars    []model.CharAggregate
	errMsg       string

	tabs         []string
	activeTab    int
	viewports    []viewport.Model
	historyTable table.Model

	width  int
	height int
}

// NewModel constructs a dashboard model for one identity.
func NewModel(eng *engine.Engine, cfg model.HistoryConfig) *Model {
	m := &Model{
		eng:  eng,
		cfg:  cfg,
		tabs: []string{"Overview", "History", "Achievements"},
	}
	m.viewports = make([]viewport.Model, len(m.tabs))
	for i := range m.viewports {
		m.viewports[i] = viewport.New(0, 0)
	}
	m.historyTable = table.New(
		table.WithColumns(historyColumns()),
		table.WithHeight(1),
	)
	m.historyTable.SetStyles(historyTableStyles())
	m.refresh()
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
		m.updateLayout()
		m.renderTabContents()
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.String() == "q" {
			return m, tea.Quit
		}
		if m.activeTab == tabHistory {
			m.historyTable.Focus()
		} else {
			m.historyTable.Blur()
		}
		switch msg.String() {
		case "left", "h":
			m.moveTab(-1)
			return m, tea.ClearScreen
		case "right", "l":
			m.moveTab(1)
			return m, tea.ClearScreen
		case "r":
			m.refresh()
			m.updateLayout()
			return m, nil
		case "g", "home":
			if m.activeTab == tabHistory {
				m.historyTable.GotoTop()
			} else {
				m.viewports[m.activeTab].GotoTop()
			}
			return m, nil
		case "G", "end":
			if m.activeTab == tabHistory {
				m.historyTable.GotoBottom()
			} else {
				m.viewports[m.activeTab].GotoBottom()
			}
			return m, nil
		default:
			if m.activeTab == tabHistory {
				var cmd tea.Cmd
				m.historyTable, cmd = m.historyTable.Update(msg)
				return m, cmd
			}
			vp := m.viewports[m.activeTab]
			var cmd tea.Cmd
			vp, cmd = vp.Update(msg)
			m.viewports[m.activeTab] = vp
			return m, cmd
		}
	}
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	headerHeight, bodyHeight, footerHeight := m.layoutHeights()
	header := fitLines(m.renderHeader(), m.width, headerHeight)
	body := fitLines(m.renderBody(), m.width, bodyHeight)
	footer := fitLines(m.renderFooter(), m.width, footerHeight)
	return strings.Join([]string{header, body, footer}, "\n")
}

func (m *Model) refresh() {
	ctx := context.Background()
	sessions, err := m.eng.History(ctx, m.cfg)
	if err != nil {
		m.errMsg = err.Error()
	} else {
		m.errMsg = ""
		m.sessions = sessions
	}
	m.gameStats = m.eng.GameStats(ctx)
	m.achievements = m.eng.Achievements(ctx)
	m.challenge, m.challengeOn = m.eng.DailyChallenge(ctx)
	if aggs, err := m.eng.CharAggregates(ctx, weakCharWindow); err == nil {
		m.weakChars = stats.WeakestChars(aggs, 5)
	}
	m.historyTable.SetRows(historyRows(m.sessions))
	m.renderTabContents()
}

func (m *Model) layoutHeights() (headerHeight, bodyHeight, footerHeight int) {
	tabsHeight := lipgloss.Height(activeNavStyle.Render("X"))
	if tabsHeight < 1 {
		tabsHeight = 1
	}
	headerHeight = tabsHeight
	footerHeight = 1
	if m.errMsg != "" {
		footerHeight++
	}
	bodyHeight = m.height - headerHeight - footerHeight
	if bodyHeight < 1 {
		bodyHeight = 1
	}
	return headerHeight, bodyHeight, footerHeight
}

func (m *Model) updateLayout() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	_, bodyHeight, _ := m.layoutHeights()
	for i := range m.viewports {
		m.viewports[i].Width = m.width
		m.viewports[i].Height = bodyHeight
	}
	m.historyTable.SetWidth(m.width)
	m.historyTable.SetHeight(maxInt(1, bodyHeight-1))
}

func (m *Model) moveTab(delta int) {
	count := len(m.tabs)
	next := m.activeTab + delta
	if next < 0 {
		next = count - 1
	}
	if next >= count {
		next = 0
	}
	m.activeTab = next
	if m.activeTab == tabHistory {
		m.historyTable.Focus()
	} else {
		m.historyTable.Blur()
	}
}

func (m *Model) renderHeader() string {
	parts := make([]string, 0, len(m.tabs))
	for i, tab := range m.tabs {
		if i == m.activeTab {
			parts = append(parts, activeNavStyle.Render(tab))
		} else {
			parts = append(parts, inactiveNavStyle.Render(tab))
		}
	}
	return padLines(lipgloss.JoinHorizontal(lipgloss.Top, parts...), m.width)
}

func (m *Model) renderFooter() string {
	help := headerStyle.Render("Nav: left/right  Scroll: up/down/pgup/pgdn  Refresh: r  Quit: q")
	if m.errMsg != "" {
		return help + "\n" + errorStyle.Render(m.errMsg)
	}
	return help
}

func (m *Model) renderBody() string {
	_, bodyHeight, _ := m.layoutHeights()
	if m.activeTab == tabHistory {
		if len(m.sessions) == 0 {
			return fitLines("No sessions found.", m.width, bodyHeight)
		}
		return fitLines(tableMutedStyle.Render(m.historyTable.View()), m.width, bodyHeight)
	}
	return fitLines(m.viewports[m.activeTab].View(), m.width, bodyHeight)
}

func (m *Model) renderTabContents() {
	width := m.width
	if width <= 0 {
		width = 80
	}
	m.viewports[tabOverview].SetContent(m.renderOverview(width))
	m.viewports[tabAchievements].SetContent(m.renderAchievements())
}

func (m *Model) renderOverview(width int) string {
	span := m.gameStats.NextLevelXP - (m.gameStats.TotalXP - m.gameStats.CurrentLevelXP)
	cards := []string{
		metricCard("Level", fmt.Sprintf("%d", m.gameStats.Level)),
		metricCard("XP", fmt.Sprintf("%d/%d", m.gameStats.CurrentLevelXP, span)),
		metricCard("Total XP", fmt.Sprintf("%d", m.gameStats.TotalXP)),
		metricCard("Streak", fmt.Sprintf("%d days", m.gameStats.StreakDays)),
	}
	summary := stats.Summarize(m.sessions)
	if summary.Sessions > 0 {
		cards = append(cards,
			metricCard("Avg WPM", fmt.Sprintf("%.1f", summary.AvgWPM)),
			metricCard("Best WPM", fmt.Sprintf("%d", summary.BestWPM)),
			metricCard("Avg Acc", fmt.Sprintf("%.1f%%", summary.AvgAccuracy)),
			metricCard("Time", stats.FormatDuration(summary.TotalSeconds)),
		)
	}

	var rows []string
	if width < 80 {
		rows = cards
	} else {
		for i := 0; i < len(cards); i += 4 {
			end := minInt(i+4, len(cards))
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cards[i:end]...))
		}
	}
	sections := []string{lipgloss.JoinVertical(lipgloss.Left, rows...)}

	sections = append(sections, m.renderChallengeLine())

	if summary.Sessions > 0 {
		wpm := stats.WPMSeries(m.sessions)
		acc := stats.AccuracySeries(m.sessions)
		sections = append(sections, fmt.Sprintf("WPM trend      %s\nAccuracy trend %s",
			stats.Sparkline(clampTail(wpm, width-16)),
			stats.Sparkline(clampTail(acc, width-16))))
	}

	if len(m.weakChars) > 0 {
		labels := make([]string, 0, len(m.weakChars))
		for _, agg := range m.weakChars {
			labels = append(labels, fmt.Sprintf("%s (%.0f%%)", charLabel(agg.Char), stats.CharAccuracy(agg)*100))
		}
		sections = append(sections, headerStyle.Render("Weakest keys: "+strings.Join(labels, "  ")))
	}

	return strings.TrimRight(strings.Join(sections, "\n\n"), "\n")
}

func (m *Model) renderChallengeLine() string {
	line := fmt.Sprintf("Daily challenge: %s (+%d XP)", m.challenge.Description, m.challenge.RewardXP)
	if !m.challengeOn {
		return doneStyle.Render(line + "  ✓ completed today")
	}
	return headerStyle.Render(line)
}

func (m *Model) renderAchievements() string {
	unlocked := 0
	lines := make([]string, 0, len(m.achievements)+1)
	for _, ach := range m.achievements {
		if ach.Unlocked {
			unlocked++
			lines = append(lines, unlockedStyle.Render(fmt.Sprintf("✓ %s", ach.Name))+
				headerStyle.Render(fmt.Sprintf("  %s · unlocked %s", ach.Description, ach.UnlockedAt.Format("2006-01-02"))))
			continue
		}
		lines = append(lines, lockedStyle.Render(fmt.Sprintf("· %s  %s", ach.Name, ach.Description)))
	}
	header := cardValueStyle.Render(fmt.Sprintf("Achievements %d/%d", unlocked, len(m.achievements)))
	return header + "\n\n" + strings.Join(lines, "\n")
}

func historyColumns() []table.Column {
	return []table.Column{
		{Title: "Date", Width: 16},
		{Title: "Mode", Width: 24},
		{Title: "WPM", Width: 5},
		{Title: "Acc", Width: 5},
		{Title: "Time", Width: 8},
		{Title: "Errors", Width: 6},
	}
}

func historyRows(sessions []model.SessionRecord) []table.Row {
	rows := make([]table.Row, 0, len(sessions))
	// Newest first for browsing.
	for i := len(sessions) - 1; i >= 0; i-- {
		rec := sessions[i]
		rows = append(rows, table.Row{
			rec.RecordedAt.Format("2006-01-02 15:04"),
			modeLabel(rec.LessonID),
			fmt.Sprintf("%d", rec.WPM),
			fmt.Sprintf("%d%%", rec.AccuracyPercent),
			stats.FormatDuration(rec.DurationSeconds),
			fmt.Sprintf("%d", rec.Errors),
		})
	}
	return rows
}

func modeLabel(lessonID int) string {
	if lessonID == 0 {
		return "Practice"
	}
	l, err := lesson.ByID(lessonID)
	if err != nil {
		return fmt.Sprintf("Lesson %d", lessonID)
	}
	return l.Title
}

func charLabel(ch string) string {
	if ch == " " {
		return "<space>"
	}
	return ch
}

func historyTableStyles() table.Styles {
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("#4A4A4A")).
		Foreground(lipgloss.Color("#C0C0C0")).
		Bold(true).
		Padding(0, 1).
		PaddingLeft(0)
	styles.Cell = styles.Cell.
		Padding(0, 1).
		PaddingLeft(0)
	styles.Selected = styles.Cell.
		Foreground(lipgloss.Color("#F0F0F0")).
		Bold(true)
	return styles
}

func metricCard(label, value string) string {
	content := fmt.Sprintf("%s\n%s", cardTitleStyle.Render(label), cardValueStyle.Render(value))
	return cardStyle.Render(content)
}

func clampTail(values []float64, width int) []float64 {
	if width <= 0 || len(values) <= width {
		return values
	}
	return values[len(values)-width:]
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func padLines(s string, width int) string {
	if width <= 0 || s == "" {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = padLine(line, width)
	}
	return strings.Join(lines, "\n")
}

func padLine(line string, width int) string {
	lineWidth := lipgloss.Width(line)
	if lineWidth < width {
		return line + strings.Repeat(" ", width-lineWidth)
	}
	return line
}

func fitLines(s string, width, height int) string {
	if width <= 0 || height <= 0 {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = padLine(line, width)
	}
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, strings.Repeat(" ", width))
	}
	return strings.Join(lines, "\n")
}

package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/progress"

	"typedrill/internal/model"
)

func testModel() *Model {
	bar := progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage())
	bar.Width = 10
	return &Model{
		bar:         bar,
		targetRunes: []rune("abcd"),
		inputRunes:  []rune("ab"),
		stats: model.GameStats{
			TotalXP:        150,
			Level:          2,
			CurrentLevelXP: 50,
			NextLevelXP:    400,
			StreakDays:     4,
		},
		sample: model.TypingSample{WPM: 42, AccuracyPercent: 96},
	}
}

func TestRenderFooterFormats(t *testing.T) {
	out := testModel().renderFooter()
	if out == "" {
		t.Fatalf("expected footer output")
	}
	if !containsAll(out, []string{"Lv 2", "50/300 XP", "Streak 4d", "42 WPM", "96%"}) {
		t.Fatalf("footer missing expected segments: %s", out)
	}
}

func TestRenderFooterHidesZeroStreak(t *testing.T) {
	m := testModel()
	m.stats.StreakDays = 0
	if strings.Contains(m.renderFooter(), "Streak") {
		t.Fatalf("expected no streak segment for zero streak")
	}
}

func TestNoticesExpireWithTicks(t *testing.T) {
	m := testModel()
	m.pushNotice("+107 XP")
	if !strings.Contains(m.renderFooter(), "+107 XP") {
		t.Fatalf("expected notice in footer")
	}
	for i := 0; i < noticeTicks; i++ {
		m.handleTick()
	}
	if strings.Contains(m.renderFooter(), "+107 XP") {
		t.Fatalf("expected notice to expire after %d ticks", noticeTicks)
	}
}

func containsAll(haystack string, needles []string) bool {
	for _, needle := range needles {
		if !strings.Contains(haystack, needle) {
			return false
		}
	}
	return true
}

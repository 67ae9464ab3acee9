package stats

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"typedrill/internal/model"
)

func sampleHistory() []model.SessionRecord {
	base := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	return []model.SessionRecord{
		{RecordedAt: base, LessonID: 1, WPM: 30, AccuracyPercent: 90, DurationSeconds: 60, Errors: 5, CorrectChars: 150},
		{RecordedAt: base.Add(time.Hour), LessonID: 0, WPM: 40, AccuracyPercent: 95, DurationSeconds: 120, Errors: 3, CorrectChars: 400},
		{RecordedAt: base.Add(2 * time.Hour), LessonID: 2, WPM: 50, AccuracyPercent: 85, DurationSeconds: 30, Errors: 8, CorrectChars: 125},
	}
}

func TestSummarize(t *testing.T) {
	s := Summarize(sampleHistory())
	if s.Sessions != 3 {
		t.Fatalf("expected 3 sessions, got %d", s.Sessions)
	}
	if s.BestWPM != 50 || s.BestAccuracy != 95 {
		t.Fatalf("unexpected bests: %+v", s)
	}
	if s.AvgWPM != 40 {
		t.Fatalf("expected avg WPM 40, got %.2f", s.AvgWPM)
	}
	if s.TotalSeconds != 210 {
		t.Fatalf("expected 210 total seconds, got %d", s.TotalSeconds)
	}
	if s.LessonsPlayed != 2 {
		t.Fatalf("expected 2 distinct lessons, got %d", s.LessonsPlayed)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil)
	if s.Sessions != 0 || s.AvgWPM != 0 {
		t.Fatalf("unexpected empty summary: %+v", s)
	}
}

func TestMovingAverage(t *testing.T) {
	values := []float64{2, 4, 6, 8}
	out := MovingAverage(values, 2)
	want := []float64{2, 3, 5, 7}
	for i := range want {
		if out[i] != want[i] {
			t.Fatalf("index %d: expected %.1f, got %.1f", i, want[i], out[i])
		}
	}
	// Window of 1 copies the input.
	out = MovingAverage(values, 1)
	for i := range values {
		if out[i] != values[i] {
			t.Fatalf("window 1 should copy values, got %v", out)
		}
	}
}

func TestSparkline(t *testing.T) {
	if Sparkline(nil) != "" {
		t.Fatalf("expected empty sparkline for no values")
	}
	flat := Sparkline([]float64{5, 5, 5})
	if len(flat) != 3 {
		t.Fatalf("expected 3 chars, got %q", flat)
	}
	ramp := Sparkline([]float64{0, 50, 100})
	if ramp[0] != ' ' || ramp[2] != '@' {
		t.Fatalf("expected full range in ramp, got %q", ramp)
	}
}

func TestRenderSummary(t *testing.T) {
	var buf bytes.Buffer
	stats := model.GameStats{TotalXP: 523, Level: 3, CurrentLevelXP: 123, NextLevelXP: 900, StreakDays: 5}
	if err := RenderSummary(&buf, sampleHistory(), stats, 40); err != nil {
		t.Fatalf("render summary: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Sessions: 3", "Level: 3", "Streak: 5 days", "Best WPM: 50", "WPM trend"} {
		if !strings.Contains(out, want) {
			t.Fatalf("summary missing %q:\n%s", want, out)
		}
	}

	buf.Reset()
	if err := RenderSummary(&buf, nil, stats, 0); err != nil {
		t.Fatalf("render empty summary: %v", err)
	}
	if !strings.Contains(buf.String(), "No sessions found.") {
		t.Fatalf("expected empty notice, got %q", buf.String())
	}
}

func TestSelectWeakChars(t *testing.T) {
	aggs := []model.CharAggregate{
		{Char: "a", Correct: 9, Incorrect: 1},
		{Char: "q", Correct: 2, Incorrect: 8},
		{Char: "z", Correct: 5, Incorrect: 5},
	}
	weak := SelectWeakChars(aggs, 2)
	if len(weak) != 2 {
		t.Fatalf("expected 2 weak chars, got %d", len(weak))
	}
	if _, ok := weak['q']; !ok {
		t.Fatalf("expected q in weak set")
	}
	if _, ok := weak['z']; !ok {
		t.Fatalf("expected z in weak set")
	}
}

func TestWeakestCharsOrder(t *testing.T) {
	aggs := []model.CharAggregate{
		{Char: "a", Correct: 9, Incorrect: 1},
		{Char: "q", Correct: 2, Incorrect: 8},
	}
	weakest := WeakestChars(aggs, 5)
	if len(weakest) != 2 || weakest[0].Char != "q" {
		t.Fatalf("unexpected weakest order: %+v", weakest)
	}
}

func TestFormatTableAlignsColumns(t *testing.T) {
	headers := []string{"Achievement", "Status", "Unlocked"}
	rows := [][]string{
		{"Speed Starter", "yes", "2024-03-01"},
		{"Marathon Typist", "no", ""},
	}
	lines := FormatTable(headers, rows, 1)
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if !strings.HasPrefix(lines[1], "Speed Starter   ") {
		t.Fatalf("unexpected padding: %q", lines[1])
	}
}

func TestFormatDuration(t *testing.T) {
	cases := []struct {
		seconds int
		want    string
	}{
		{45, "45s"},
		{90, "1m 30s"},
		{3700, "1h 1m"},
	}
	for _, tc := range cases {
		if got := FormatDuration(tc.seconds); got != tc.want {
			t.Fatalf("FormatDuration(%d) = %q, want %q", tc.seconds, got, tc.want)
		}
	}
}

// Package stats contains history summaries and reporting helpers.
package stats

import (
	"fmt"
	"io"
	"math"
	"strings"

	"typedrill/internal/model"
)

const sparkChars = " .:-=+*#%@"

// Summary aggregates a slice of recorded sessions.
type Summary struct {
	Sessions      int
	AvgWPM        float64
	BestWPM       int
	AvgAccuracy   float64
	BestAccuracy  int
	TotalSeconds  int
	TotalErrors   int
	TotalCorrect  int
	LessonsPlayed int
}

// Summarize folds the history into a Summary.
func Summarize(sessions []model.SessionRecord) Summary {
	var s Summary
	s.Sessions = len(sessions)
	if s.Sessions == 0 {
		return s
	}
	lessons := map[int]bool{}
	var wpmSum, accSum float64
	for _, rec := range sessions {
		wpmSum += float64(rec.WPM)
		accSum += float64(rec.AccuracyPercent)
		if rec.WPM > s.BestWPM {
			s.BestWPM = rec.WPM
		}
		if rec.AccuracyPercent > s.BestAccuracy {
			s.BestAccuracy = rec.AccuracyPercent
		}
		s.TotalSeconds += rec.DurationSeconds
		s.TotalErrors += rec.Errors
		s.TotalCorrect += rec.CorrectChars
		if rec.LessonID > 0 {
			lessons[rec.LessonID] = true
		}
	}
	s.AvgWPM = wpmSum / float64(s.Sessions)
	s.AvgAccuracy = accSum / float64(s.Sessions)
	s.LessonsPlayed = len(lessons)
	return s
}

// WPMSeries extracts the WPM values in history order.
func WPMSeries(sessions []model.SessionRecord) []float64 {
	out := make([]float64, len(sessions))
	for i, rec := range sessions {
		out[i] = float64(rec.WPM)
	}
	return out
}

// AccuracySeries extracts the accuracy values in history order.
func AccuracySeries(sessions []model.SessionRecord) []float64 {
	out := make([]float64, len(sessions))
	for i, rec := range sessions {
		out[i] = float64(rec.AccuracyPercent)
	}
	return out
}

// MovingAverage computes a rolling mean over the provided window size.
func MovingAverage(values []float64, window int) []float64 {
	if window <= 1 || len(values) == 0 {
		out := make([]float64, len(values))
		copy(out, values)
		return out
	}
	out := make([]float64, len(values))
	var sum float64
	for i := 0; i < len(values); i++ {
		sum += values[i]
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

// Sparkline renders a single-line ASCII sparkline for the values.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	minVal := values[0]
	maxVal := values[0]
	for _, v := range values[1:] {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	if math.Abs(maxVal-minVal) < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		pos := (v - minVal) / (maxVal - minVal)
		idx := int(math.Round(pos * float64(len(sparkChars)-1)))
		if idx < 0 {
			idx = 0
		}
		if idx >= len(sparkChars) {
			idx = len(sparkChars) - 1
		}
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}

// RenderSummary prints a summary plus trend sparklines. width caps the
// sparkline length; zero means unbounded.
func RenderSummary(w io.Writer, sessions []model.SessionRecord, stats model.GameStats, width int) error {
	if len(sessions) == 0 {
		_, err := fmt.Fprintln(w, "No sessions found.")
		return err
	}
	s := Summarize(sessions)
	lines := []string{
		"Summary",
		fmt.Sprintf("Sessions: %d", s.Sessions),
		fmt.Sprintf("Level: %d (%d/%d XP)", stats.Level, stats.CurrentLevelXP, stats.NextLevelXP-levelFloor(stats)),
		fmt.Sprintf("Total XP: %d", stats.TotalXP),
		fmt.Sprintf("Streak: %d days", stats.StreakDays),
		fmt.Sprintf("Avg WPM: %.1f", s.AvgWPM),
		fmt.Sprintf("Best WPM: %d", s.BestWPM),
		fmt.Sprintf("Avg Accuracy: %.1f%%", s.AvgAccuracy),
		fmt.Sprintf("Best Accuracy: %d%%", s.BestAccuracy),
		fmt.Sprintf("Practice Time: %s", FormatDuration(s.TotalSeconds)),
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}

	wpm := clampSeries(WPMSeries(sessions), width)
	acc := clampSeries(AccuracySeries(sessions), width)
	if _, err := fmt.Fprintf(w, "WPM trend      %s\n", Sparkline(wpm)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Accuracy trend %s\n", Sparkline(acc)); err != nil {
		return err
	}
	return nil
}

// FormatDuration renders seconds as a compact h/m/s string.
func FormatDuration(seconds int) string {
	if seconds < 60 {
		return fmt.Sprintf("%ds", seconds)
	}
	if seconds < 3600 {
		return fmt.Sprintf("%dm %ds", seconds/60, seconds%60)
	}
	return fmt.Sprintf("%dh %dm", seconds/3600, (seconds%3600)/60)
}

func clampSeries(values []float64, width int) []float64 {
	if width <= 0 || len(values) <= width {
		return values
	}
	return values[len(values)-width:]
}

func levelFloor(stats model.GameStats) int {
	return stats.TotalXP - stats.CurrentLevelXP
}

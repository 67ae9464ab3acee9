package challenge

import (
	"testing"
	"time"

	"typedrill/internal/model"
)

func TestForDateDeterministic(t *testing.T) {
	day := time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC)
	first := ForDate(day)
	second := ForDate(day.Add(8 * time.Hour))
	if first != second {
		t.Fatalf("same date produced different challenges: %+v vs %+v", first, second)
	}
	if first.ID == "" || first.Text == "" || first.RewardXP <= 0 {
		t.Fatalf("challenge is missing fields: %+v", first)
	}
}

func TestForDateReachesAllEntries(t *testing.T) {
	seen := map[string]bool{}
	day := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 60; i++ {
		seen[ForDate(day.AddDate(0, 0, i)).ID] = true
	}
	for _, id := range []string{"numbers", "speed", "accuracy", "mixed"} {
		if !seen[id] {
			t.Fatalf("challenge %q never selected over 60 days", id)
		}
	}
}

func TestAvailable(t *testing.T) {
	now := time.Date(2024, 3, 15, 18, 0, 0, 0, time.UTC)
	stats := model.DefaultGameStats()
	if !Available(stats, now) {
		t.Fatalf("fresh stats should have the challenge available")
	}
	stats.DailyChallengeCompletedDate = "2024-03-15"
	if Available(stats, now) {
		t.Fatalf("completed today, challenge must be unavailable")
	}
	stats.DailyChallengeCompletedDate = "2024-03-14"
	if !Available(stats, now) {
		t.Fatalf("yesterday's completion should not block today")
	}
}

func TestTargetMet(t *testing.T) {
	speed := model.DailyChallenge{TargetMetric: model.MetricSpeed, TargetValue: 60}
	if TargetMet(speed, 59, 100) {
		t.Fatalf("59 WPM should miss a 60 WPM target")
	}
	if !TargetMet(speed, 60, 10) {
		t.Fatalf("60 WPM should meet a 60 WPM target regardless of accuracy")
	}
	acc := model.DailyChallenge{TargetMetric: model.MetricAccuracy, TargetValue: 98}
	if TargetMet(acc, 120, 97) {
		t.Fatalf("97%% should miss a 98%% accuracy target")
	}
	if !TargetMet(acc, 5, 98) {
		t.Fatalf("98%% should meet a 98%% accuracy target")
	}
}

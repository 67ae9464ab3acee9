// Package challenge derives the daily challenge from the calendar date.
package challenge

import (
	"time"

	"typedrill/internal/model"
)

var catalog = []model.DailyChallenge{
	{
		ID:           "numbers",
		Text:         "Practice numbers and symbols: 1234567890 !@#$%^&*()",
		TargetMetric: model.MetricNumbers,
		TargetValue:  40,
		Description:  "Type numbers and symbols at 40+ WPM",
		RewardXP:     100,
	},
	{
		ID:           "speed",
		Text:         "The quick brown fox jumps over the lazy dog. Speed is key to mastering typing skills.",
		TargetMetric: model.MetricSpeed,
		TargetValue:  60,
		Description:  "Achieve 60+ WPM on this text",
		RewardXP:     150,
	},
	{
		ID:           "accuracy",
		Text:         "Precision and accuracy are fundamental skills for professional typing excellence.",
		TargetMetric: model.MetricAccuracy,
		TargetValue:  98,
		Description:  "Type with 98%+ accuracy",
		RewardXP:     120,
	},
	{
		ID:           "mixed",
		Text:         "Mixed challenge: Hello123 World! @typing #skills $matter 100% (always) & forever.",
		TargetMetric: model.MetricSpeed,
		TargetValue:  45,
		Description:  "Mixed characters at 45+ WPM",
		RewardXP:     130,
	},
}

// ForDate returns the challenge for the given date. Deterministic: two calls
// on the same calendar day return the identical entry.
func ForDate(date time.Time) model.DailyChallenge {
	day := date.Format(model.DayLayout)
	sum := 0
	for i := 0; i < len(day); i++ {
		sum += int(day[i])
	}
	return catalog[sum%len(catalog)]
}

// Available reports whether the identity may still complete today's challenge.
func Available(stats model.GameStats, now time.Time) bool {
	return stats.DailyChallengeCompletedDate != now.Format(model.DayLayout)
}

// TargetMet reports whether a finished attempt satisfies the challenge target.
// Speed-flavored challenges (including the numbers drill) compare WPM,
// accuracy challenges compare the accuracy percentage.
func TargetMet(ch model.DailyChallenge, wpm, accuracyPercent int) bool {
	if ch.TargetMetric == model.MetricAccuracy {
		return accuracyPercent >= ch.TargetValue
	}
	return wpm >= ch.TargetValue
}

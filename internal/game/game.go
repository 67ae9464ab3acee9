// Package game converts session performance into experience, levels, and
// practice streaks.
package game

import (
	"math"
	"time"

	"typedrill/internal/challenge"
	"typedrill/internal/model"
)

// minSessionXP is the floor every awarded session clears.
const minSessionXP = 10

// Award describes the outcome of a single XP grant.
type Award struct {
	XPGained  int
	LeveledUp bool
}

// Level computes the level for a total XP amount.
func Level(totalXP int) int {
	if totalXP < 0 {
		totalXP = 0
	}
	return int(math.Floor(math.Sqrt(float64(totalXP)/100))) + 1
}

// LevelFloorXP returns the total XP at which a level starts.
func LevelFloorXP(level int) int {
	if level < 1 {
		level = 1
	}
	return (level - 1) * (level - 1) * 100
}

// SessionXP computes the XP for a finished session without mutating stats.
// The streak bonus uses the pre-update streak.
func SessionXP(stats model.GameStats, wpm, accuracyPercent, durationSeconds int) int {
	base := int(math.Floor(float64(wpm) * (float64(accuracyPercent) / 100) * (float64(durationSeconds) / 60)))

	bonus := 0
	switch {
	case accuracyPercent > 95:
		bonus = 50
	case accuracyPercent > 90:
		bonus = 25
	}

	streakBonus := 0
	switch {
	case stats.StreakDays > 7:
		streakBonus = 25
	case stats.StreakDays > 3:
		streakBonus = 10
	}

	xp := base + bonus + streakBonus
	if xp < minSessionXP {
		xp = minSessionXP
	}
	return xp
}

// AwardXP applies a finished session to the gamification record and returns
// the updated record. Streak continuity compares calendar days: same-day play
// leaves the streak alone, playing the day after the last play extends it,
// anything else resets it to 1. When isDailyChallenge is set the reward for
// today's challenge is added on top and the completion date is stamped.
func AwardXP(stats model.GameStats, wpm, accuracyPercent, durationSeconds int, isDailyChallenge bool, now time.Time) (model.GameStats, Award) {
	xpGained := SessionXP(stats, wpm, accuracyPercent, durationSeconds)
	if isDailyChallenge {
		xpGained += challenge.ForDate(now).RewardXP
	}

	today := now.Format(model.DayLayout)
	yesterday := now.AddDate(0, 0, -1).Format(model.DayLayout)
	switch stats.LastPlayDate {
	case today:
		// Same-day repeat play; streak unchanged.
	case yesterday:
		stats.StreakDays++
	default:
		stats.StreakDays = 1
	}
	stats.LastPlayDate = today

	newTotal := stats.TotalXP + xpGained
	newLevel := Level(newTotal)
	award := Award{
		XPGained:  xpGained,
		LeveledUp: newLevel > stats.Level,
	}

	stats.TotalXP = newTotal
	stats.Level = newLevel
	stats.CurrentLevelXP = newTotal - LevelFloorXP(newLevel)
	stats.NextLevelXP = LevelFloorXP(newLevel + 1)
	if isDailyChallenge {
		stats.DailyChallengeCompletedDate = today
	}
	return stats, award
}

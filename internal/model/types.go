// Package model defines shared data structures.
package model

import "time"

// DayLayout is the calendar-day format used for streak and challenge dates.
const DayLayout = "2006-01-02"

// GuestIdentity is the identity key used when no profile is configured.
const GuestIdentity = "guest"

// PracticeConfig defines free-practice settings.
type PracticeConfig struct {
	Identity     string
	Words        int
	CapsPct      float64
	PunctPct     float64
	PunctSet     string
	FocusWeak    bool
	WeakTop      int
	WeakFactor   float64
	WeakWindow   int
	WordListPath string
}

// HistoryConfig defines filters for history queries.
type HistoryConfig struct {
	Identity string
	Since    *time.Time
	Last     int
}

// TypingSample captures live metrics for an in-flight attempt. It is
// recomputed on every keystroke and never persisted.
type TypingSample struct {
	CorrectChars    int
	TotalChars      int
	Errors          int
	ElapsedSeconds  int
	WPM             int
	AccuracyPercent int
}

// SessionRecord is an immutable completed attempt in the per-identity history.
type SessionRecord struct {
	ID              int64
	Identity        string
	RecordedAt      time.Time
	LessonID        int
	WPM             int
	AccuracyPercent int
	DurationSeconds int
	Errors          int
	CorrectChars    int
	TotalChars      int
}

// CharStats stores per-character stats for a session.
type CharStats struct {
	Char         string
	Correct      int
	Incorrect    int
	LatencySumMs int64
	LatencyCount int64
}

// CharAggregate aggregates character stats across sessions.
type CharAggregate struct {
	Char         string
	Correct      int
	Incorrect    int
	LatencySumMs int64
	LatencyCount int64
}

// GameStats is the single mutable gamification record per identity.
// Invariant: Level == floor(sqrt(TotalXP/100))+1 and CurrentLevelXP ==
// TotalXP-(Level-1)^2*100 after every award.
type GameStats struct {
	TotalXP                     int
	Level                       int
	CurrentLevelXP              int
	NextLevelXP                 int
	StreakDays                  int
	LastPlayDate                string
	DailyChallengeCompletedDate string
}

// DefaultGameStats returns the first-run gamification record.
func DefaultGameStats() GameStats {
	return GameStats{
		TotalXP:        0,
		Level:          1,
		CurrentLevelXP: 0,
		NextLevelXP:    100,
		StreakDays:     0,
	}
}

// Achievement is a catalog entry plus per-identity unlock state.
type Achievement struct {
	ID          string
	Name        string
	Description string
	Unlocked    bool
	UnlockedAt  time.Time
}

// AchievementProgress is the aggregate snapshot the rule evaluator consumes.
type AchievementProgress struct {
	CurrentWPM           int
	BestAccuracy         int
	PracticeStreak       int
	LessonsCompleted     int
	TotalPracticeSeconds int
}

// ChallengeMetric is the metric a daily challenge targets.
type ChallengeMetric string

// Daily challenge target metrics.
const (
	MetricNumbers  ChallengeMetric = "numbers"
	MetricSpeed    ChallengeMetric = "speed"
	MetricAccuracy ChallengeMetric = "accuracy"
)

// DailyChallenge is derived from the calendar date and never persisted.
type DailyChallenge struct {
	ID           string
	Text         string
	TargetMetric ChallengeMetric
	TargetValue  int
	Description  string
	RewardXP     int
}

// Package achieve evaluates achievement rules and tracks unlock state.
package achieve

import (
	"time"

	"typedrill/internal/model"
)

type rule struct {
	id          string
	name        string
	description string
	satisfied   func(model.AchievementProgress) bool
}

// The catalog is fixed; evaluation and notification order follow it.
var rules = []rule{
	{"first_30wpm", "Speed Starter", "Reach 30 WPM", func(p model.AchievementProgress) bool {
		return p.CurrentWPM >= 30
	}},
	{"accuracy_95", "Precision Master", "95% accuracy", func(p model.AchievementProgress) bool {
		return p.BestAccuracy >= 95
	}},
	{"practice_7days", "Consistent Learner", "7 days streak", func(p model.AchievementProgress) bool {
		return p.PracticeStreak >= 7
	}},
	{"lesson_10", "Dedicated Student", "Complete 10 lessons", func(p model.AchievementProgress) bool {
		return p.LessonsCompleted >= 10
	}},
	{"speed_demon", "Speed Demon", "Reach 60 WPM", func(p model.AchievementProgress) bool {
		return p.CurrentWPM >= 60
	}},
	{"perfect_score", "Perfectionist", "100% accuracy", func(p model.AchievementProgress) bool {
		return p.BestAccuracy >= 100
	}},
	{"marathon", "Marathon Typist", "60 minutes practice", func(p model.AchievementProgress) bool {
		return p.TotalPracticeSeconds >= 3600
	}},
	{"lesson_master", "Lesson Master", "Complete 25 lessons", func(p model.AchievementProgress) bool {
		return p.LessonsCompleted >= 25
	}},
}

// Catalog returns the full achievement catalog with everything locked.
func Catalog() []model.Achievement {
	out := make([]model.Achievement, 0, len(rules))
	for _, r := range rules {
		out = append(out, model.Achievement{
			ID:          r.id,
			Name:        r.name,
			Description: r.description,
		})
	}
	return out
}

// WithUnlocks merges stored unlock timestamps into the catalog.
func WithUnlocks(unlockedAt map[string]time.Time) []model.Achievement {
	out := Catalog()
	for i := range out {
		if at, ok := unlockedAt[out[i].ID]; ok {
			out[i].Unlocked = true
			out[i].UnlockedAt = at
		}
	}
	return out
}

// Evaluate tests every still-locked achievement against the progress snapshot.
// Unlocking is monotonic: already-unlocked entries are never re-evaluated.
// Newly unlocked achievements are returned in catalog order.
func Evaluate(progress model.AchievementProgress, state []model.Achievement, now time.Time) (updated, newlyUnlocked []model.Achievement) {
	byID := make(map[string]model.Achievement, len(state))
	for _, a := range state {
		byID[a.ID] = a
	}

	updated = make([]model.Achievement, 0, len(rules))
	for _, r := range rules {
		entry, ok := byID[r.id]
		if !ok {
			entry = model.Achievement{ID: r.id, Name: r.name, Description: r.description}
		}
		if !entry.Unlocked && r.satisfied(progress) {
			entry.Unlocked = true
			entry.UnlockedAt = now
			newlyUnlocked = append(newlyUnlocked, entry)
		}
		updated = append(updated, entry)
	}
	return updated, newlyUnlocked
}

// UnlockedCount counts unlocked entries.
func UnlockedCount(state []model.Achievement) int {
	n := 0
	for _, a := range state {
		if a.Unlocked {
			n++
		}
	}
	return n
}

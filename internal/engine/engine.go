// Package engine wires the gamification core together: it records finished
// attempts, awards experience, and evaluates achievements.
package engine

import (
	"context"
	"fmt"
	"os"
	"time"

	"typedrill/internal/achieve"
	"typedrill/internal/challenge"
	"typedrill/internal/game"
	"typedrill/internal/lesson"
	"typedrill/internal/model"
	"typedrill/internal/progress"
	statsPkg "typedrill/internal/stats"
	"typedrill/internal/store"
)

// Engine owns one identity's gamification state transitions. Durable writes
// are best-effort: a storage or sync failure costs at most the durability of
// that one update, never the in-memory result of the running session.
type Engine struct {
	store    *store.Store
	sync     *progress.Client
	identity string
	now      func() time.Time

	notifications achieve.Queue
}

// Option configures an Engine.
type Option func(*Engine)

// WithSync attaches a remote progress client. Only non-guest identities use it.
func WithSync(client *progress.Client) Option {
	return func(e *Engine) {
		e.sync = client
	}
}

// WithClock overrides the engine clock.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

// New builds an engine for the given identity.
func New(st *store.Store, identity string, opts ...Option) *Engine {
	if identity == "" {
		identity = model.GuestIdentity
	}
	e := &Engine{
		store:    st,
		identity: identity,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Identity returns the identity this engine serves.
func (e *Engine) Identity() string {
	return e.identity
}

// Notifications returns the achievement display queue.
func (e *Engine) Notifications() *achieve.Queue {
	return &e.notifications
}

// GameStats loads the identity's gamification record, substituting defaults
// when nothing is stored or the load fails.
func (e *Engine) GameStats(ctx context.Context) model.GameStats {
	stats, err := e.store.LoadGameStats(ctx, e.identity)
	if err != nil {
		logErrf("failed to load game stats: %v\n", err)
		return model.DefaultGameStats()
	}
	return stats
}

// Achievements loads the identity's catalog state.
func (e *Engine) Achievements(ctx context.Context) []model.Achievement {
	unlocked, err := e.store.LoadUnlocked(ctx, e.identity)
	if err != nil {
		logErrf("failed to load achievements: %v\n", err)
		unlocked = nil
	}
	return achieve.WithUnlocks(unlocked)
}

// DailyChallenge returns today's challenge and whether it is still available.
func (e *Engine) DailyChallenge(ctx context.Context) (model.DailyChallenge, bool) {
	now := e.now()
	return challenge.ForDate(now), challenge.Available(e.GameStats(ctx), now)
}

// History returns the identity's session history, oldest first.
func (e *Engine) History(ctx context.Context, cfg model.HistoryConfig) ([]model.SessionRecord, error) {
	cfg.Identity = e.identity
	return e.store.ListSessions(ctx, cfg)
}

// CharAggregates returns per-character aggregates over the last window sessions.
func (e *Engine) CharAggregates(ctx context.Context, window int) ([]model.CharAggregate, error) {
	return e.store.GetWeakChars(ctx, window, e.identity)
}

// WeakChars returns the lowest-accuracy characters over the last window
// sessions, for weighted practice text generation.
func (e *Engine) WeakChars(ctx context.Context, window, top int) map[rune]struct{} {
	aggs, err := e.CharAggregates(ctx, window)
	if err != nil {
		logErrf("failed to load weak chars: %v\n", err)
		return map[rune]struct{}{}
	}
	return statsPkg.SelectWeakChars(aggs, top)
}

// Outcome is the result of completing one attempt.
type Outcome struct {
	Record             model.SessionRecord
	Stats              model.GameStats
	XPGained           int
	LeveledUp          bool
	ChallengeCompleted bool
	NewlyUnlocked      []model.Achievement
}

// CompleteSession applies a finished attempt: the session is appended to the
// history, XP and streak are awarded, and achievement rules are evaluated.
// lessonID is zero for free practice; challengeAttempt marks a run of today's
// challenge text, which pays its reward only when the target metric is met
// and the challenge was not already completed today.
func (e *Engine) CompleteSession(ctx context.Context, sample model.TypingSample, lessonID int, challengeAttempt bool, chars []model.CharStats) Outcome {
	now := e.now()
	rec := model.SessionRecord{
		Identity:        e.identity,
		RecordedAt:      now,
		LessonID:        lessonID,
		WPM:             sample.WPM,
		AccuracyPercent: sample.AccuracyPercent,
		DurationSeconds: sample.ElapsedSeconds,
		Errors:          sample.Errors,
		CorrectChars:    sample.CorrectChars,
		TotalChars:      sample.TotalChars,
	}
	if id, err := e.store.InsertSession(ctx, rec, chars); err != nil {
		logErrf("failed to save session: %v\n", err)
	} else {
		rec.ID = id
	}

	stats := e.GameStats(ctx)

	challengeDone := false
	if challengeAttempt && challenge.Available(stats, now) {
		challengeDone = challenge.TargetMet(challenge.ForDate(now), sample.WPM, sample.AccuracyPercent)
	}

	stats, award := game.AwardXP(stats, sample.WPM, sample.AccuracyPercent, sample.ElapsedSeconds, challengeDone, now)
	if err := e.store.SaveGameStats(ctx, e.identity, stats); err != nil {
		logErrf("failed to save game stats: %v\n", err)
	}

	snapshot := e.progressSnapshot(ctx, rec, stats)
	_, newlyUnlocked := achieve.Evaluate(snapshot, e.Achievements(ctx), now)
	if err := e.store.RecordUnlocks(ctx, e.identity, newlyUnlocked); err != nil {
		logErrf("failed to save achievements: %v\n", err)
	}
	e.notifications.Enqueue(newlyUnlocked...)

	return Outcome{
		Record:             rec,
		Stats:              stats,
		XPGained:           award.XPGained,
		LeveledUp:          award.LeveledUp,
		ChallengeCompleted: challengeDone,
		NewlyUnlocked:      newlyUnlocked,
	}
}

// progressSnapshot builds the aggregate the achievement rules consume. For
// signed-in identities with sync configured, lesson and time totals come from
// the remote aggregate; otherwise they are derived from local history.
func (e *Engine) progressSnapshot(ctx context.Context, rec model.SessionRecord, stats model.GameStats) model.AchievementProgress {
	snapshot := model.AchievementProgress{
		CurrentWPM:     rec.WPM,
		BestAccuracy:   rec.AccuracyPercent,
		PracticeStreak: stats.StreakDays,
	}

	if e.sync != nil && e.identity != model.GuestIdentity && rec.LessonID > 0 {
		agg, err := e.sync.SubmitAttempt(ctx, e.identity, progress.Attempt{
			LessonID:        rec.LessonID,
			WPM:             rec.WPM,
			Accuracy:        rec.AccuracyPercent,
			DurationSeconds: rec.DurationSeconds,
		})
		if err == nil {
			snapshot.LessonsCompleted = agg.TotalLessonsCompleted
			snapshot.TotalPracticeSeconds = agg.TotalTypingSeconds
			if agg.AverageAccuracy > snapshot.BestAccuracy {
				snapshot.BestAccuracy = agg.AverageAccuracy
			}
			return snapshot
		}
		logErrf("failed to sync progress: %v\n", err)
	}

	history, err := e.store.ListSessions(ctx, model.HistoryConfig{Identity: e.identity})
	if err != nil {
		logErrf("failed to load history: %v\n", err)
		snapshot.TotalPracticeSeconds = rec.DurationSeconds
		if rec.LessonID > 0 && lessonPassed(rec) {
			snapshot.LessonsCompleted = 1
		}
		return snapshot
	}

	completedLessons := map[int]bool{}
	for _, s := range history {
		snapshot.TotalPracticeSeconds += s.DurationSeconds
		if s.AccuracyPercent > snapshot.BestAccuracy {
			snapshot.BestAccuracy = s.AccuracyPercent
		}
		if s.LessonID > 0 && lessonPassed(s) {
			completedLessons[s.LessonID] = true
		}
	}
	snapshot.LessonsCompleted = len(completedLessons)
	return snapshot
}

func lessonPassed(rec model.SessionRecord) bool {
	l, err := lesson.ByID(rec.LessonID)
	if err != nil {
		return false
	}
	return l.Passed(rec.AccuracyPercent)
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}

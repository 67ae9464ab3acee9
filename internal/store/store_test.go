package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"typedrill/internal/model"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	dir := t.TempDir()
	st, err := Open(filepath.Join(dir, "typedrill.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})
	return st
}

func TestGameStatsDefaultsOnFirstRun(t *testing.T) {
	st := openTestStore(t)
	stats, err := st.LoadGameStats(context.Background(), "guest")
	if err != nil {
		t.Fatalf("load stats: %v", err)
	}
	want := model.DefaultGameStats()
	if stats != want {
		t.Fatalf("expected first-run defaults, got %+v", stats)
	}
}

func TestGameStatsRoundtrip(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	stats := model.GameStats{
		TotalXP:                     523,
		Level:                       3,
		CurrentLevelXP:              123,
		NextLevelXP:                 900,
		StreakDays:                  5,
		LastPlayDate:                "2024-03-01",
		DailyChallengeCompletedDate: "2024-02-29",
	}
	if err := st.SaveGameStats(ctx, "alice", stats); err != nil {
		t.Fatalf("save stats: %v", err)
	}
	got, err := st.LoadGameStats(ctx, "alice")
	if err != nil {
		t.Fatalf("load stats: %v", err)
	}
	if got != stats {
		t.Fatalf("roundtrip mismatch: %+v vs %+v", got, stats)
	}

	// Upsert overwrites the single row.
	stats.TotalXP = 600
	if err := st.SaveGameStats(ctx, "alice", stats); err != nil {
		t.Fatalf("save stats again: %v", err)
	}
	got, err = st.LoadGameStats(ctx, "alice")
	if err != nil {
		t.Fatalf("load stats: %v", err)
	}
	if got.TotalXP != 600 {
		t.Fatalf("expected upsert, got %+v", got)
	}

	// Other identities remain on defaults.
	other, err := st.LoadGameStats(ctx, "guest")
	if err != nil {
		t.Fatalf("load guest stats: %v", err)
	}
	if other != model.DefaultGameStats() {
		t.Fatalf("identity state leaked: %+v", other)
	}
}

func TestSessionHistoryAppendOrder(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	base := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		rec := model.SessionRecord{
			Identity:        "guest",
			RecordedAt:      base.Add(time.Duration(i) * time.Minute),
			LessonID:        i,
			WPM:             40 + i,
			AccuracyPercent: 90,
			DurationSeconds: 60,
			Errors:          2,
			CorrectChars:    200,
			TotalChars:      202,
		}
		chars := []model.CharStats{
			{Char: "a", Correct: 5, Incorrect: 1, LatencySumMs: 400, LatencyCount: 5},
		}
		if _, err := st.InsertSession(ctx, rec, chars); err != nil {
			t.Fatalf("insert session %d: %v", i, err)
		}
	}

	sessions, err := st.ListSessions(ctx, model.HistoryConfig{Identity: "guest"})
	if err != nil {
		t.Fatalf("list sessions: %v", err)
	}
	if len(sessions) != 3 {
		t.Fatalf("expected 3 sessions, got %d", len(sessions))
	}
	for i, s := range sessions {
		if s.WPM != 40+i {
			t.Fatalf("history out of insertion order: %+v", sessions)
		}
	}

	last, err := st.ListSessions(ctx, model.HistoryConfig{Identity: "guest", Last: 2})
	if err != nil {
		t.Fatalf("list last sessions: %v", err)
	}
	if len(last) != 2 || last[0].WPM != 41 {
		t.Fatalf("unexpected last-N window: %+v", last)
	}

	none, err := st.ListSessions(ctx, model.HistoryConfig{Identity: "bob"})
	if err != nil {
		t.Fatalf("list sessions for other identity: %v", err)
	}
	if len(none) != 0 {
		t.Fatalf("history leaked across identities: %+v", none)
	}
}

func TestUnlocksAreMonotonic(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	first := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	err := st.RecordUnlocks(ctx, "guest", []model.Achievement{
		{ID: "first_30wpm", UnlockedAt: first},
	})
	if err != nil {
		t.Fatalf("record unlocks: %v", err)
	}
	// A second write for the same id must not move the timestamp.
	err = st.RecordUnlocks(ctx, "guest", []model.Achievement{
		{ID: "first_30wpm", UnlockedAt: first.Add(48 * time.Hour)},
		{ID: "marathon", UnlockedAt: first.Add(time.Hour)},
	})
	if err != nil {
		t.Fatalf("record unlocks again: %v", err)
	}

	unlocked, err := st.LoadUnlocked(ctx, "guest")
	if err != nil {
		t.Fatalf("load unlocked: %v", err)
	}
	if len(unlocked) != 2 {
		t.Fatalf("expected 2 unlocks, got %d", len(unlocked))
	}
	if !unlocked["first_30wpm"].Equal(first) {
		t.Fatalf("unlock timestamp rewritten: %v", unlocked["first_30wpm"])
	}
}

func TestGetWeakChars(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	rec := model.SessionRecord{Identity: "guest", RecordedAt: time.Now(), WPM: 40, AccuracyPercent: 90, DurationSeconds: 30}
	chars := []model.CharStats{
		{Char: "q", Correct: 1, Incorrect: 4},
		{Char: "e", Correct: 9, Incorrect: 1},
	}
	if _, err := st.InsertSession(ctx, rec, chars); err != nil {
		t.Fatalf("insert session: %v", err)
	}

	aggs, err := st.GetWeakChars(ctx, 10, "guest")
	if err != nil {
		t.Fatalf("get weak chars: %v", err)
	}
	if len(aggs) != 2 {
		t.Fatalf("expected 2 aggregates, got %d", len(aggs))
	}

	aggs, err = st.GetWeakChars(ctx, 0, "guest")
	if err != nil || aggs != nil {
		t.Fatalf("zero window should return nothing, got %v, %v", aggs, err)
	}
}

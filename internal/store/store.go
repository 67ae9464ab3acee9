// Package store handles SQLite persistence.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"typedrill/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// Store wraps SQLite access for per-identity tutor state.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS sessions (
			id INTEGER PRIMARY KEY,
			identity TEXT NOT NULL,
			recorded_at TEXT NOT NULL,
			lesson_id INTEGER NOT NULL,
			wpm INTEGER NOT NULL,
			accuracy INTEGER NOT NULL,
			duration_s INTEGER NOT NULL,
			errors INTEGER NOT NULL,
			correct_chars INTEGER NOT NULL,
			total_chars INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS session_char_stats (
			session_id INTEGER NOT NULL,
			char TEXT NOT NULL,
			correct INTEGER NOT NULL,
			incorrect INTEGER NOT NULL,
			latency_sum_ms INTEGER NOT NULL,
			latency_count INTEGER NOT NULL,
			PRIMARY KEY (session_id, char)
		);`,
		`CREATE TABLE IF NOT EXISTS game_stats (
			identity TEXT PRIMARY KEY,
			total_xp INTEGER NOT NULL,
			level INTEGER NOT NULL,
			current_level_xp INTEGER NOT NULL,
			next_level_xp INTEGER NOT NULL,
			streak_days INTEGER NOT NULL,
			last_play_date TEXT NOT NULL,
			daily_challenge_date TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS achievements (
			identity TEXT NOT NULL,
			achievement_id TEXT NOT NULL,
			unlocked_at TEXT NOT NULL,
			PRIMARY KEY (identity, achievement_id)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_sessions_identity ON sessions(identity, recorded_at);`,
		`CREATE INDEX IF NOT EXISTS idx_session_char_stats_char ON session_char_stats(char);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// InsertSession appends a completed attempt and its per-character stats to the
// identity's history. Records are never updated afterwards.
func (s *Store) InsertSession(ctx context.Context, rec model.SessionRecord, chars []model.CharStats) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				// Best-effort rollback.
				_ = rerr
			}
		}
	}()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO sessions (identity, recorded_at, lesson_id, wpm, accuracy, duration_s, errors, correct_chars, total_chars)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.Identity,
		rec.RecordedAt.Format(time.RFC3339Nano),
		rec.LessonID,
		rec.WPM,
		rec.AccuracyPercent,
		rec.DurationSeconds,
		rec.Errors,
		rec.CorrectChars,
		rec.TotalChars,
	)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}

	if len(chars) > 0 {
		stmt, err := tx.PrepareContext(ctx,
			`INSERT INTO session_char_stats (session_id, char, correct, incorrect, latency_sum_ms, latency_count)
			 VALUES (?, ?, ?, ?, ?, ?)`)
		if err != nil {
			return 0, err
		}
		defer func() {
			if cerr := stmt.Close(); cerr != nil {
				// Best-effort statement close.
				_ = cerr
			}
		}()
		for _, cs := range chars {
			if _, err := stmt.ExecContext(ctx, id, cs.Char, cs.Correct, cs.Incorrect, cs.LatencySumMs, cs.LatencyCount); err != nil {
				return 0, err
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return id, nil
}

// ListSessions returns the identity's history in insertion order.
func (s *Store) ListSessions(ctx context.Context, cfg model.HistoryConfig) ([]model.SessionRecord, error) {
	clauses := []string{"identity = ?"}
	args := []any{cfg.Identity}
	if cfg.Since != nil {
		clauses = append(clauses, "recorded_at >= ?")
		args = append(args, cfg.Since.Format(time.RFC3339Nano))
	}
	query := fmt.Sprintf(`SELECT id, identity, recorded_at, lesson_id, wpm, accuracy, duration_s, errors, correct_chars, total_chars
		FROM sessions
		WHERE %s
		ORDER BY id ASC`, strings.Join(clauses, " AND "))
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var sessions []model.SessionRecord
	for rows.Next() {
		var rec model.SessionRecord
		var recordedAt string
		if err := rows.Scan(&rec.ID, &rec.Identity, &recordedAt, &rec.LessonID, &rec.WPM, &rec.AccuracyPercent, &rec.DurationSeconds, &rec.Errors, &rec.CorrectChars, &rec.TotalChars); err != nil {
			return nil, err
		}
		parsed, err := time.Parse(time.RFC3339Nano, recordedAt)
		if err != nil {
			return nil, err
		}
		rec.RecordedAt = parsed
		sessions = append(sessions, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if cfg.Last > 0 && len(sessions) > cfg.Last {
		sessions = sessions[len(sessions)-cfg.Last:]
	}
	return sessions, nil
}

// LoadGameStats returns the identity's gamification record, or first-run
// defaults when none is stored yet.
func (s *Store) LoadGameStats(ctx context.Context, identity string) (model.GameStats, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT total_xp, level, current_level_xp, next_level_xp, streak_days, last_play_date, daily_challenge_date
		 FROM game_stats WHERE identity = ?`, identity)
	var stats model.GameStats
	err := row.Scan(&stats.TotalXP, &stats.Level, &stats.CurrentLevelXP, &stats.NextLevelXP, &stats.StreakDays, &stats.LastPlayDate, &stats.DailyChallengeCompletedDate)
	if err == sql.ErrNoRows {
		return model.DefaultGameStats(), nil
	}
	if err != nil {
		return model.DefaultGameStats(), err
	}
	return stats, nil
}

// SaveGameStats upserts the identity's gamification record.
func (s *Store) SaveGameStats(ctx context.Context, identity string, stats model.GameStats) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO game_stats (identity, total_xp, level, current_level_xp, next_level_xp, streak_days, last_play_date, daily_challenge_date)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(identity) DO UPDATE SET
			total_xp = excluded.total_xp,
			level = excluded.level,
			current_level_xp = excluded.current_level_xp,
			next_level_xp = excluded.next_level_xp,
			streak_days = excluded.streak_days,
			last_play_date = excluded.last_play_date,
			daily_challenge_date = excluded.daily_challenge_date`,
		identity, stats.TotalXP, stats.Level, stats.CurrentLevelXP, stats.NextLevelXP, stats.StreakDays, stats.LastPlayDate, stats.DailyChallengeCompletedDate)
	return err
}

// LoadUnlocked returns the identity's unlocked achievement ids and timestamps.
func (s *Store) LoadUnlocked(ctx context.Context, identity string) (map[string]time.Time, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT achievement_id, unlocked_at FROM achievements WHERE identity = ?`, identity)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	unlocked := map[string]time.Time{}
	for rows.Next() {
		var id, at string
		if err := rows.Scan(&id, &at); err != nil {
			return nil, err
		}
		parsed, err := time.Parse(time.RFC3339Nano, at)
		if err != nil {
			return nil, err
		}
		unlocked[id] = parsed
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return unlocked, nil
}

// RecordUnlocks stores newly unlocked achievements. INSERT OR IGNORE keeps
// unlocking monotonic: an existing row is never rewritten.
func (s *Store) RecordUnlocks(ctx context.Context, identity string, unlocked []model.Achievement) error {
	if len(unlocked) == 0 {
		return nil
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				// Best-effort rollback.
				_ = rerr
			}
		}
	}()
	for _, a := range unlocked {
		if _, err = tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO achievements (identity, achievement_id, unlocked_at) VALUES (?, ?, ?)`,
			identity, a.ID, a.UnlockedAt.Format(time.RFC3339Nano)); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// GetWeakChars aggregates character stats over the identity's most recent
// sessions.
func (s *Store) GetWeakChars(ctx context.Context, window int, identity string) ([]model.CharAggregate, error) {
	if window <= 0 {
		return nil, nil
	}
	query := `WITH recent_sessions AS (
		SELECT id FROM sessions
		WHERE identity = ?
		ORDER BY id DESC
		LIMIT ?
	)
	SELECT cs.char, SUM(cs.correct) AS correct, SUM(cs.incorrect) AS incorrect,
		SUM(cs.latency_sum_ms) AS latency_sum_ms, SUM(cs.latency_count) AS latency_count
	FROM session_char_stats cs
	JOIN recent_sessions r ON r.id = cs.session_id
	GROUP BY cs.char`

	rows, err := s.db.QueryContext(ctx, query, identity, window)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var result []model.CharAggregate
	for rows.Next() {
		var agg model.CharAggregate
		if err := rows.Scan(&agg.Char, &agg.Correct, &agg.Incorrect, &agg.LatencySumMs, &agg.LatencyCount); err != nil {
			return nil, err
		}
		result = append(result, agg)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Package store handles SQLite persistence of score history.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/verte-zerg/typy/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// HistoryLimit is the number of most recent scores kept.
const HistoryLimit = 10

// ErrCorrupt reports stored rows that cannot be decoded.
var ErrCorrupt = errors.New("score history is corrupt")

// timeLayout is fixed width in UTC so text ordering matches time ordering.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Store wraps SQLite access for score history.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data dir: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// One connection keeps the append transaction and readers serialized.
	db.SetMaxOpenConns(1)
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS scores (
			id INTEGER PRIMARY KEY,
			session_id TEXT NOT NULL,
			recorded_at TEXT NOT NULL,
			wpm INTEGER NOT NULL,
			raw INTEGER NOT NULL,
			accuracy REAL NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS averages (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			wpm_sum REAL NOT NULL,
			raw_sum REAL NOT NULL,
			accuracy_sum REAL NOT NULL,
			count INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_scores_recorded_at ON scores(recorded_at);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// AppendScore stores a score, evicts everything past the newest
// HistoryLimit entries and folds the score into the running averages.
func (s *Store) AppendScore(ctx context.Context, score model.Score) (id int64, err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
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
		`INSERT INTO scores (session_id, recorded_at, wpm, raw, accuracy) VALUES (?, ?, ?, ?, ?)`,
		score.SessionID,
		score.Timestamp.UTC().Format(timeLayout),
		score.WPM,
		score.Raw,
		score.Accuracy,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert score: %w", err)
	}
	id, err = res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read score id: %w", err)
	}

	if _, err = tx.ExecContext(ctx,
		`DELETE FROM scores WHERE id NOT IN (
			SELECT id FROM scores ORDER BY recorded_at DESC, id DESC LIMIT ?
		)`, HistoryLimit); err != nil {
		return 0, fmt.Errorf("failed to trim history: %w", err)
	}

	if _, err = tx.ExecContext(ctx,
		`INSERT INTO averages (id, wpm_sum, raw_sum, accuracy_sum, count) VALUES (1, ?, ?, ?, 1)
		 ON CONFLICT(id) DO UPDATE SET
			wpm_sum = wpm_sum + excluded.wpm_sum,
			raw_sum = raw_sum + excluded.raw_sum,
			accuracy_sum = accuracy_sum + excluded.accuracy_sum,
			count = count + 1`,
		float64(score.WPM), float64(score.Raw), score.Accuracy); err != nil {
		return 0, fmt.Errorf("failed to update averages: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit score: %w", err)
	}
	return id, nil
}

// ListScores returns the stored scores, newest first.
func (s *Store) ListScores(ctx context.Context) ([]model.Score, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, session_id, recorded_at, wpm, raw, accuracy
		FROM scores
		ORDER BY recorded_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query scores: %w", err)
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var scores []model.Score
	for rows.Next() {
		var score model.Score
		var recordedAt string
		if err := rows.Scan(&score.ID, &score.SessionID, &recordedAt, &score.WPM, &score.Raw, &score.Accuracy); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
		}
		parsed, err := time.Parse(time.RFC3339Nano, recordedAt)
		if err != nil {
			return nil, fmt.Errorf("%w: bad timestamp %q", ErrCorrupt, recordedAt)
		}
		score.Timestamp = parsed
		scores = append(scores, score)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read scores: %w", err)
	}
	return scores, nil
}

// Averages returns all-time running averages. Count is 0 when nothing was saved.
func (s *Store) Averages(ctx context.Context) (model.Averages, error) {
	var wpmSum, rawSum, accSum float64
	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT wpm_sum, raw_sum, accuracy_sum, count FROM averages WHERE id = 1`).
		Scan(&wpmSum, &rawSum, &accSum, &count)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Averages{}, nil
	}
	if err != nil {
		return model.Averages{}, fmt.Errorf("failed to query averages: %w", err)
	}
	if count <= 0 {
		return model.Averages{}, nil
	}
	n := float64(count)
	return model.Averages{WPM: wpmSum / n, Raw: rawSum / n, Accuracy: accSum / n, Count: count}, nil
}

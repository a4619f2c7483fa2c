// Package store handles SQLite persistence of analysis runs.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/verte-zerg/zipfr/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// Store wraps SQLite access for run history.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create history directory: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open history: %w", err)
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, fmt.Errorf("failed to migrate history: %w", err)
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY,
			recorded_at TEXT NOT NULL,
			dataset TEXT NOT NULL,
			path TEXT NOT NULL,
			content_hash TEXT NOT NULL,
			total_words INTEGER NOT NULL,
			unique_words INTEGER NOT NULL,
			parse_ms INTEGER NOT NULL,
			analyze_ms INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS run_words (
			run_id INTEGER NOT NULL,
			rank INTEGER NOT NULL,
			word TEXT NOT NULL,
			count INTEGER NOT NULL,
			PRIMARY KEY (run_id, rank)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_runs_recorded_at ON runs(recorded_at);`,
		`CREATE INDEX IF NOT EXISTS idx_runs_dataset ON runs(dataset);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// RecordFor summarizes a dataset as a run record stamped at now.
func RecordFor(ds *model.Dataset, now time.Time) model.RunRecord {
	return model.RunRecord{
		RecordedAt:      now,
		Dataset:         ds.Name,
		Path:            ds.Path,
		ContentHash:     ds.ContentHash,
		TotalWords:      ds.TotalWords,
		UniqueWords:     ds.UniqueWords,
		ParseDurationMs: ds.ParseDuration.Milliseconds(),
		AnalyzeMs:       ds.AnalyzeDuration.Milliseconds(),
	}
}

// InsertRun stores a run and its top words.
func (s *Store) InsertRun(ctx context.Context, rec model.RunRecord, top []model.WordCount) (id int64, err error) {
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
		`INSERT INTO runs (recorded_at, dataset, path, content_hash, total_words, unique_words, parse_ms, analyze_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.RecordedAt.UTC().Format(time.RFC3339Nano),
		rec.Dataset,
		rec.Path,
		FormatHash(rec.ContentHash),
		rec.TotalWords,
		rec.UniqueWords,
		rec.ParseDurationMs,
		rec.AnalyzeMs,
	)
	if err != nil {
		return 0, err
	}
	if id, err = res.LastInsertId(); err != nil {
		return 0, err
	}
	if err = insertWords(ctx, tx, id, top); err != nil {
		return 0, err
	}
	if err = tx.Commit(); err != nil {
		return 0, err
	}
	return id, nil
}

func insertWords(ctx context.Context, tx *sql.Tx, runID int64, words []model.WordCount) error {
	if len(words) == 0 {
		return nil
	}
	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO run_words (run_id, rank, word, count) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := stmt.Close(); cerr != nil {
			// Best-effort statement close.
			_ = cerr
		}
	}()
	for _, wc := range words {
		if _, err := stmt.ExecContext(ctx, runID, wc.Rank, wc.Word, wc.Count); err != nil {
			return err
		}
	}
	return nil
}

// ListRuns returns runs newest first. A non-positive limit returns all runs;
// an empty dataset matches every dataset.
func (s *Store) ListRuns(ctx context.Context, limit int, dataset string) ([]model.RunRecord, error) {
	clauses := []string{"1=1"}
	args := []any{}
	if dataset != "" {
		clauses = append(clauses, "dataset = ?")
		args = append(args, dataset)
	}
	if limit <= 0 {
		limit = -1
	}
	args = append(args, limit)
	query := fmt.Sprintf(`SELECT id, recorded_at, dataset, path, content_hash, total_words, unique_words, parse_ms, analyze_ms
		FROM runs
		WHERE %s
		ORDER BY recorded_at DESC, id DESC
		LIMIT ?`, strings.Join(clauses, " AND "))
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

	var runs []model.RunRecord
	for rows.Next() {
		var rec model.RunRecord
		var recordedAt, hash string
		if err := rows.Scan(&rec.ID, &recordedAt, &rec.Dataset, &rec.Path, &hash,
			&rec.TotalWords, &rec.UniqueWords, &rec.ParseDurationMs, &rec.AnalyzeMs); err != nil {
			return nil, err
		}
		parsed, err := time.Parse(time.RFC3339Nano, recordedAt)
		if err != nil {
			return nil, err
		}
		rec.RecordedAt = parsed
		if rec.ContentHash, err = ParseHash(hash); err != nil {
			return nil, err
		}
		runs = append(runs, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return runs, nil
}

// ListRunWords returns the stored top words of a run in rank order.
func (s *Store) ListRunWords(ctx context.Context, runID int64) ([]model.WordCount, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT rank, word, count FROM run_words WHERE run_id = ? ORDER BY rank ASC`, runID)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var words []model.WordCount
	for rows.Next() {
		var wc model.WordCount
		if err := rows.Scan(&wc.Rank, &wc.Word, &wc.Count); err != nil {
			return nil, err
		}
		words = append(words, wc)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return words, nil
}

// FormatHash renders a content hash as fixed-width hex.
func FormatHash(h uint64) string {
	return fmt.Sprintf("%016x", h)
}

// ParseHash is the inverse of FormatHash.
func ParseHash(s string) (uint64, error) {
	h, err := strconv.ParseUint(s, 16, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse content hash %q: %w", s, err)
	}
	return h, nil
}

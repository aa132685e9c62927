// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package catalog records preprocessing runs in a SQLite database so that
// past runs, split statistics and the train vocabulary can be inspected
// with plain SQL.
package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/nli-prep/internal/vocab"
	"github.com/pdiddy/nli-prep/pkg/types"
)

const dbFile = "catalog.db"

// Catalog manages the run-catalog SQLite database.
type Catalog struct {
	db *sql.DB
}

// Open opens or creates the catalog database at targetDir/catalog.db and
// ensures the schema exists.
func Open(targetDir string) (*Catalog, error) {
	if err := os.MkdirAll(targetDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating target directory: %w", err)
	}

	dbPath := filepath.Join(targetDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening catalog database: %w", err)
	}

	c := &Catalog{db: db}
	if err := c.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating catalog schema: %w", err)
	}
	return c, nil
}

// Close releases the database connection.
func (c *Catalog) Close() error {
	return c.db.Close()
}

func (c *Catalog) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			started_at TEXT NOT NULL,
			finished_at TEXT,
			data_dir TEXT NOT NULL,
			embeddings_file TEXT NOT NULL,
			lowercase INTEGER NOT NULL,
			ignore_punctuation INTEGER NOT NULL,
			num_words INTEGER NOT NULL,
			vocab_size INTEGER,
			embedding_dim INTEGER
		)`,
		`CREATE TABLE IF NOT EXISTS splits (
			run_id INTEGER NOT NULL REFERENCES runs(id),
			name TEXT NOT NULL,
			source_file TEXT NOT NULL,
			pairs INTEGER NOT NULL,
			skipped_no_label INTEGER NOT NULL,
			skipped_short INTEGER NOT NULL,
			dropped_labels INTEGER NOT NULL,
			PRIMARY KEY (run_id, name)
		)`,
		`CREATE TABLE IF NOT EXISTS words (
			word TEXT PRIMARY KEY,
			idx INTEGER NOT NULL,
			count INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_words_idx ON words(idx)`,
	}

	for _, stmt := range statements {
		if _, err := c.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// BeginRun inserts a run row for cfg and returns its ID.
func (c *Catalog) BeginRun(ctx context.Context, cfg types.Config) (int64, error) {
	res, err := c.db.ExecContext(ctx,
		`INSERT INTO runs (started_at, data_dir, embeddings_file, lowercase, ignore_punctuation, num_words)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		time.Now().UTC().Format(time.RFC3339),
		cfg.DataDir, cfg.EmbeddingsFile,
		boolInt(cfg.Lowercase), boolInt(cfg.IgnorePunctuation), cfg.NumWords,
	)
	if err != nil {
		return 0, fmt.Errorf("inserting run: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading run id: %w", err)
	}
	return id, nil
}

// SplitStats describes one processed corpus split.
type SplitStats struct {
	Name           string
	SourceFile     string
	Pairs          int
	SkippedNoLabel int
	SkippedShort   int
	DroppedLabels  int
}

// RecordSplit stores the statistics of one split for a run.
func (c *Catalog) RecordSplit(ctx context.Context, runID int64, s SplitStats) error {
	_, err := c.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO splits
		 (run_id, name, source_file, pairs, skipped_no_label, skipped_short, dropped_labels)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		runID, s.Name, s.SourceFile, s.Pairs, s.SkippedNoLabel, s.SkippedShort, s.DroppedLabels,
	)
	if err != nil {
		return fmt.Errorf("recording split %q: %w", s.Name, err)
	}
	return nil
}

// ReplaceWords replaces the words table with the given dictionary. Counts
// missing from the frequency map (the special tokens) are stored as zero.
func (c *Catalog) ReplaceWords(ctx context.Context, dict vocab.WordDict, counts map[string]int) error {
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting words transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM words`); err != nil {
		return fmt.Errorf("clearing words table: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO words (word, idx, count) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing words insert: %w", err)
	}
	defer stmt.Close()

	for word, idx := range dict {
		if _, err := stmt.ExecContext(ctx, word, idx, counts[word]); err != nil {
			return fmt.Errorf("inserting word %q: %w", word, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing words: %w", err)
	}
	return nil
}

// WordEntry is one row of the words table.
type WordEntry struct {
	Word  string
	Index int
	Count int
}

// LookupWord returns the dictionary entry for word, or sql.ErrNoRows when
// the word is not in the vocabulary.
func (c *Catalog) LookupWord(ctx context.Context, word string) (WordEntry, error) {
	var e WordEntry
	err := c.db.QueryRowContext(ctx,
		`SELECT word, idx, count FROM words WHERE word = ?`, word,
	).Scan(&e.Word, &e.Index, &e.Count)
	if err != nil {
		return WordEntry{}, err
	}
	return e, nil
}

// FinishRun stamps the run with its completion time, vocabulary size and
// embedding dimensionality.
func (c *Catalog) FinishRun(ctx context.Context, runID int64, vocabSize, embeddingDim int) error {
	_, err := c.db.ExecContext(ctx,
		`UPDATE runs SET finished_at = ?, vocab_size = ?, embedding_dim = ? WHERE id = ?`,
		time.Now().UTC().Format(time.RFC3339), vocabSize, embeddingDim, runID,
	)
	if err != nil {
		return fmt.Errorf("finishing run %d: %w", runID, err)
	}
	return nil
}

// Run is a catalog row describing a past preprocessing run.
type Run struct {
	ID           int64
	StartedAt    string
	FinishedAt   string
	DataDir      string
	VocabSize    int
	EmbeddingDim int
}

// Runs lists the recorded runs, newest first.
func (c *Catalog) Runs(ctx context.Context) ([]Run, error) {
	rows, err := c.db.QueryContext(ctx,
		`SELECT id, started_at, COALESCE(finished_at, ''), data_dir,
		        COALESCE(vocab_size, 0), COALESCE(embedding_dim, 0)
		 FROM runs ORDER BY id DESC`)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.ID, &r.StartedAt, &r.FinishedAt, &r.DataDir, &r.VocabSize, &r.EmbeddingDim); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

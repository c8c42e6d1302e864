// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store persists episode records in a SQLite database. The
// database is the processing ledger: a paper with a row here is done
// and will never be processed again.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/mattn/go-sqlite3"

	"github.com/pdiddy/podcast-engine/pkg/types"
)

// ErrUnavailable marks a database failure that should abort the run.
// Without a reachable ledger, dedup answers cannot be trusted.
var ErrUnavailable = errors.New("episode store unavailable")

// ErrDuplicate marks an insert that lost a uniqueness race: the paper
// already has an episode row. Callers treat this as benign.
var ErrDuplicate = errors.New("episode already recorded")

// Store manages the episode SQLite database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the episode database at cfg.DBPath and creates
// the schema if it does not exist.
func Open(cfg types.StoreConfig) (*Store, error) {
	dbPath := cfg.DBPath
	if dbPath == "" {
		dbPath = filepath.Join("data", "episodes.db")
	}

	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS episodes (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			arxiv_id TEXT NOT NULL UNIQUE,
			title TEXT NOT NULL,
			original_title TEXT,
			abstract TEXT,
			authors TEXT,
			category TEXT,
			innovation TEXT,
			method TEXT,
			result TEXT,
			script TEXT,
			abs_url TEXT,
			pdf_url TEXT,
			script_url TEXT,
			audio_url TEXT,
			duration_seconds INTEGER,
			published TEXT,
			processed_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_episodes_processed_at ON episodes(processed_at)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}

	return nil
}

// Exists reports whether an episode row exists for the arXiv ID. A
// query failure is ErrUnavailable; a candidate must never be processed
// on an unanswered dedup check.
func (s *Store) Exists(ctx context.Context, arxivID string) (bool, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT count(*) FROM episodes WHERE arxiv_id = ?`, arxivID,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return count > 0, nil
}

// Insert records a finished episode. A uniqueness violation on the
// arXiv ID returns ErrDuplicate.
func (s *Store) Insert(ctx context.Context, ep types.Episode) error {
	authorsJSON, _ := json.Marshal(ep.Authors)

	publishedStr := ""
	if !ep.Published.IsZero() {
		publishedStr = ep.Published.UTC().Format(time.RFC3339)
	}
	processedAt := ep.ProcessedAt
	if processedAt.IsZero() {
		processedAt = time.Now()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO episodes (arxiv_id, title, original_title, abstract, authors,
			category, innovation, method, result, script, abs_url, pdf_url,
			script_url, audio_url, duration_seconds, published, processed_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		ep.ArxivID, ep.Title, ep.OriginalTitle, ep.Abstract, string(authorsJSON),
		ep.Category, ep.Innovation, ep.Method, ep.Result, ep.Script,
		ep.AbsURL, ep.PDFURL, ep.ScriptURL, ep.AudioURL, ep.DurationSeconds,
		publishedStr, processedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
			return ErrDuplicate
		}
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	return nil
}

// List returns all episode records, newest first.
func (s *Store) List(ctx context.Context) ([]types.Episode, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT arxiv_id, title, original_title, abstract, authors, category,
			innovation, method, result, script, abs_url, pdf_url,
			script_url, audio_url, duration_seconds, published, processed_at
		 FROM episodes ORDER BY processed_at DESC, rowid DESC`)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer rows.Close()

	var episodes []types.Episode
	for rows.Next() {
		var ep types.Episode
		var authorsJSON, publishedStr, processedStr string
		if err := rows.Scan(
			&ep.ArxivID, &ep.Title, &ep.OriginalTitle, &ep.Abstract, &authorsJSON,
			&ep.Category, &ep.Innovation, &ep.Method, &ep.Result, &ep.Script,
			&ep.AbsURL, &ep.PDFURL, &ep.ScriptURL, &ep.AudioURL,
			&ep.DurationSeconds, &publishedStr, &processedStr,
		); err != nil {
			return nil, fmt.Errorf("scanning episode row: %w", err)
		}
		if authorsJSON != "" {
			if err := json.Unmarshal([]byte(authorsJSON), &ep.Authors); err != nil {
				return nil, fmt.Errorf("parsing authors for %s: %w", ep.ArxivID, err)
			}
		}
		if publishedStr != "" {
			if t, err := time.Parse(time.RFC3339, publishedStr); err == nil {
				ep.Published = t
			}
		}
		if t, err := time.Parse(time.RFC3339, processedStr); err == nil {
			ep.ProcessedAt = t
		}
		episodes = append(episodes, ep)
	}

	return episodes, rows.Err()
}

// Package history persists processed requests to a local SQLite database.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/unicode/norm"
	_ "modernc.org/sqlite"
)

// createdAtLayout keeps a fixed-width fraction so that lexicographic order
// on the created_at column matches chronological order. RFC3339Nano trims
// trailing zeros and would mis-sort sub-second timestamps.
const createdAtLayout = "2006-01-02T15:04:05.000000000Z07:00"

type Entry struct {
	ID             string
	OriginalText   string
	NormalizedText string
	DetectedLang   string
	TargetLang     string
	TranslatedText string
	NumRetrieved   int
	LatencyMS      int64
	CreatedAt      time.Time
}

type Store struct {
	db *sql.DB
}

func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS processed_requests (
		id TEXT PRIMARY KEY,
		original_text TEXT NOT NULL,
		normalized_text TEXT NOT NULL DEFAULT '',
		detected_lang TEXT NOT NULL,
		target_lang TEXT NOT NULL,
		translated_text TEXT NOT NULL,
		num_retrieved INTEGER NOT NULL DEFAULT 0,
		latency_ms INTEGER NOT NULL DEFAULT 0,
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_processed_requests_created_at
		ON processed_requests(created_at DESC);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Record inserts a processed request. Text columns are stored NFC-normalized.
func (s *Store) Record(ctx context.Context, e Entry) (string, error) {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO processed_requests
			(id, original_text, normalized_text, detected_lang, target_lang,
			 translated_text, num_retrieved, latency_ms, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID,
		norm.NFC.String(e.OriginalText),
		norm.NFC.String(e.NormalizedText),
		e.DetectedLang,
		e.TargetLang,
		norm.NFC.String(e.TranslatedText),
		e.NumRetrieved,
		e.LatencyMS,
		e.CreatedAt.UTC().Format(createdAtLayout),
	)
	if err != nil {
		return "", fmt.Errorf("insert processed request: %w", err)
	}
	return e.ID, nil
}

// Recent returns up to limit entries, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, original_text, normalized_text, detected_lang, target_lang,
		       translated_text, num_retrieved, latency_ms, created_at
		FROM processed_requests
		ORDER BY created_at DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query processed requests: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var createdAt string
		if err := rows.Scan(
			&e.ID, &e.OriginalText, &e.NormalizedText, &e.DetectedLang,
			&e.TargetLang, &e.TranslatedText, &e.NumRetrieved, &e.LatencyMS,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("scan processed request: %w", err)
		}
		e.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (s *Store) Close() error {
	return s.db.Close()
}

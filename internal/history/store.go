// Package history records successful pastes in a local SQLite database.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// maxExcerpt is the longest excerpt stored per paste, in runes.
const maxExcerpt = 80

// Record is one successful paste.
type Record struct {
	ID        string
	URL       string
	Excerpt   string
	CreatedAt time.Time
}

// Store handles SQLite operations for paste history.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens (creating if needed) the history database at dbPath.
func Open(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create history dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	store := &Store{db: db, now: time.Now}
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *Store) initSchema() error {
	schema := `
CREATE TABLE IF NOT EXISTS pastes (
    id TEXT PRIMARY KEY,
    url TEXT NOT NULL,
    excerpt TEXT NOT NULL,
    created_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_pastes_created ON pastes(created_at DESC);
`
	_, err := s.db.Exec(schema)
	return err
}

// Record appends a paste. Only a short single-line excerpt of text is kept.
func (s *Store) Record(ctx context.Context, url, text string) error {
	rec := Record{
		ID:        uuid.NewString(),
		URL:       url,
		Excerpt:   excerpt(text),
		CreatedAt: s.now().UTC(),
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO pastes (id, url, excerpt, created_at) VALUES (?, ?, ?, ?)`,
		rec.ID, rec.URL, rec.Excerpt, rec.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("insert paste: %w", err)
	}
	return nil
}

// Recent returns up to limit pastes, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Record, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, url, excerpt, created_at FROM pastes ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query pastes: %w", err)
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var rec Record
		var created string
		if err := rows.Scan(&rec.ID, &rec.URL, &rec.Excerpt, &created); err != nil {
			return nil, fmt.Errorf("scan paste: %w", err)
		}
		at, err := time.Parse(time.RFC3339Nano, created)
		if err != nil {
			return nil, fmt.Errorf("parse created_at of paste %s: %w", rec.ID, err)
		}
		rec.CreatedAt = at
		out = append(out, rec)
	}
	return out, rows.Err()
}

func excerpt(text string) string {
	line := strings.Join(strings.Fields(text), " ")
	runes := []rune(line)
	if len(runes) <= maxExcerpt {
		return line
	}
	return string(runes[:maxExcerpt-1]) + "…"
}

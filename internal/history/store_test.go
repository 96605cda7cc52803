package history

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
)

func openTemp(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "sub", "history.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestRecordAndRecent(t *testing.T) {
	s := openTemp(t)
	ctx := context.Background()

	base := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	for i, u := range []string{"https://p/1", "https://p/2", "https://p/3"} {
		at := base.Add(time.Duration(i) * time.Minute)
		s.now = func() time.Time { return at }
		if err := s.Record(ctx, u, "note "+u); err != nil {
			t.Fatalf("Record failed: %v", err)
		}
	}

	got, err := s.Recent(ctx, 2)
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d records, want 2", len(got))
	}
	if got[0].URL != "https://p/3" || got[1].URL != "https://p/2" {
		t.Errorf("order = %s, %s; want newest first", got[0].URL, got[1].URL)
	}
	if _, err := uuid.Parse(got[0].ID); err != nil {
		t.Errorf("ID %q is not a UUID: %v", got[0].ID, err)
	}
	if !got[0].CreatedAt.Equal(base.Add(2 * time.Minute)) {
		t.Errorf("CreatedAt = %v", got[0].CreatedAt)
	}
}

func TestRecent_Empty(t *testing.T) {
	s := openTemp(t)
	got, err := s.Recent(context.Background(), 0)
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("got %d records from empty db", len(got))
	}
}

func TestReopenKeepsRecords(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	s, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Record(context.Background(), "https://p/1", "x"); err != nil {
		t.Fatal(err)
	}
	s.Close()

	s, err = Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()
	got, _ := s.Recent(context.Background(), 10)
	if len(got) != 1 {
		t.Errorf("got %d records after reopen, want 1", len(got))
	}
}

func TestExcerpt(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"short", "hello", "hello"},
		{"collapses whitespace", "a\n\n  b\tc", "a b c"},
		{"truncates", strings.Repeat("x", 100), strings.Repeat("x", maxExcerpt-1) + "…"},
		{"exact", strings.Repeat("é", maxExcerpt), strings.Repeat("é", maxExcerpt)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := excerpt(tt.in); got != tt.want {
				t.Errorf("excerpt() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRecent_BadTimestamp(t *testing.T) {
	s := openTemp(t)
	ctx := context.Background()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO pastes (id, url, excerpt, created_at) VALUES (?, ?, ?, ?)`,
		uuid.NewString(), "https://p/bad", "x", "yesterday")
	if err != nil {
		t.Fatalf("insert: %v", err)
	}

	if _, err := s.Recent(ctx, 5); err == nil {
		t.Error("Recent should report an unparseable created_at")
	}
}

package store

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/roach88/pikov/internal/model"
)

// createTestStore creates a fresh repository file in a temp dir.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.pikov")
	s, err := Create(path)
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// putTestImage stores a small opaque payload under the given key.
// Store-level tests treat keys and contents as opaque strings.
func putTestImage(t *testing.T, s *Store, key string) {
	t.Helper()
	contents := []byte("png-bytes-" + key)
	if _, err := s.PutImage(context.Background(), key, "image/png", contents); err != nil {
		t.Fatalf("PutImage(%q) failed: %v", key, err)
	}
}

// mustInsertFrame inserts a frame referencing an already stored image.
func mustInsertFrame(t *testing.T, s *Store, imageKey string, durationMicros int64) model.FrameRecord {
	t.Helper()
	rec, err := s.InsertFrame(context.Background(), model.NewFrame{
		ImageKey:       imageKey,
		DurationMicros: durationMicros,
	})
	if err != nil {
		t.Fatalf("InsertFrame(%q) failed: %v", imageKey, err)
	}
	return rec
}

// mustInsertTransition creates an edge between two existing frames.
func mustInsertTransition(t *testing.T, s *Store, sourceID, targetID int64) model.TransitionRecord {
	t.Helper()
	rec, err := s.InsertTransition(context.Background(), sourceID, targetID)
	if err != nil {
		t.Fatalf("InsertTransition(%d, %d) failed: %v", sourceID, targetID, err)
	}
	return rec
}

func getTableColumns(t *testing.T, db *sql.DB, table string) []string {
	t.Helper()

	rows, err := db.Query("PRAGMA table_info(" + table + ")")
	if err != nil {
		t.Fatalf("failed to get table info for %q: %v", table, err)
	}
	defer rows.Close()

	var columns []string
	for rows.Next() {
		var cid int
		var name, ctype string
		var notnull, pk int
		var dfltValue interface{}
		if err := rows.Scan(&cid, &name, &ctype, &notnull, &dfltValue, &pk); err != nil {
			t.Fatalf("failed to scan column info: %v", err)
		}
		columns = append(columns, name)
	}
	return columns
}

func getTableIndexes(t *testing.T, db *sql.DB, table string) []string {
	t.Helper()

	rows, err := db.Query("SELECT name FROM sqlite_master WHERE type='index' AND tbl_name=?", table)
	if err != nil {
		t.Fatalf("failed to get indexes for %q: %v", table, err)
	}
	defer rows.Close()

	var indexes []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			t.Fatalf("failed to scan index name: %v", err)
		}
		indexes = append(indexes, name)
	}
	return indexes
}

func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}

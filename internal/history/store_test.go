package history

import (
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "nested", "history.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestAppendAndRecent(t *testing.T) {
	s := openTestStore(t)

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	for i, id := range []string{"a", "b", "c"} {
		err := s.Append(Record{
			ID:        id,
			Operation: "creation",
			CardType:  "bug",
			Model:     "m",
			Output:    "card " + id,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		})
		if err != nil {
			t.Fatalf("Append: %v", err)
		}
	}

	got, err := s.Recent(2)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 records, got %d", len(got))
	}
	if got[0].ID != "c" || got[1].ID != "b" {
		t.Errorf("expected newest first, got %q then %q", got[0].ID, got[1].ID)
	}
	if got[0].Output != "card c" {
		t.Errorf("unexpected output %q", got[0].Output)
	}
}

func TestRecentEmptyStore(t *testing.T) {
	s := openTestStore(t)

	got, err := s.Recent(10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected no records, got %d", len(got))
	}
}

func TestAppendFillsCreatedAt(t *testing.T) {
	s := openTestStore(t)

	if err := s.Append(Record{ID: "x", Operation: "analysis", CardType: "bug", Model: "m", Output: "o"}); err != nil {
		t.Fatalf("Append: %v", err)
	}

	got, err := s.Recent(1)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(got) != 1 || got[0].CreatedAt.IsZero() {
		t.Error("expected CreatedAt to be filled on append")
	}
}

func TestDuplicateIDRejected(t *testing.T) {
	s := openTestStore(t)

	rec := Record{ID: "dup", Operation: "creation", CardType: "bug", Model: "m", Output: "o"}
	if err := s.Append(rec); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if err := s.Append(rec); err == nil {
		t.Error("expected primary key violation on duplicate ID")
	}
}

package history

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(filepath.Join(t.TempDir(), "history.json"))
}

func TestStore_AppendAndList(t *testing.T) {
	s := newTestStore(t)

	first, err := s.Append(Entry{VerdictTitle: "Нужна проверка", Summary: "1 E-кодов", RawText: "Состав: вода"})
	if err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	if first.ID == "" {
		t.Error("entry id not assigned")
	}
	if first.Timestamp.IsZero() {
		t.Error("entry timestamp not assigned")
	}

	if _, err := s.Append(Entry{VerdictTitle: "Выглядит нормально"}); err != nil {
		t.Fatalf("Append failed: %v", err)
	}

	list := s.List()
	if len(list) != 2 {
		t.Fatalf("List returned %d entries, want 2", len(list))
	}
	// Newest first.
	if list[0].VerdictTitle != "Выглядит нормально" {
		t.Errorf("first entry = %q, want the newest", list[0].VerdictTitle)
	}
	if list[1].RawText != "Состав: вода" {
		t.Errorf("oldest entry raw text = %q", list[1].RawText)
	}
}

func TestStore_Cap(t *testing.T) {
	s := newTestStore(t)

	for i := 0; i < MaxEntries+5; i++ {
		if _, err := s.Append(Entry{Summary: fmt.Sprintf("entry %d", i)}); err != nil {
			t.Fatalf("Append %d failed: %v", i, err)
		}
	}

	list := s.List()
	if len(list) != MaxEntries {
		t.Fatalf("List returned %d entries, want %d", len(list), MaxEntries)
	}
	// The oldest five must have been dropped; the newest survives.
	if list[0].Summary != fmt.Sprintf("entry %d", MaxEntries+4) {
		t.Errorf("newest = %q", list[0].Summary)
	}
	if list[len(list)-1].Summary != "entry 5" {
		t.Errorf("oldest kept = %q, want entry 5", list[len(list)-1].Summary)
	}
}

func TestStore_Clear(t *testing.T) {
	s := newTestStore(t)

	if _, err := s.Append(Entry{Summary: "x"}); err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	if err := s.Clear(); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if got := s.List(); len(got) != 0 {
		t.Errorf("List after Clear returned %d entries", len(got))
	}
	// Clearing an already-empty store is fine.
	if err := s.Clear(); err != nil {
		t.Errorf("second Clear failed: %v", err)
	}
}

func TestStore_CorruptFileReadsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.json")
	if err := os.WriteFile(path, []byte("{{{"), 0o644); err != nil {
		t.Fatalf("failed to write corrupt file: %v", err)
	}

	s := NewStore(path)
	if got := s.List(); len(got) != 0 {
		t.Errorf("List on corrupt file returned %d entries", len(got))
	}
	// Appending over a corrupt file starts a fresh list.
	if _, err := s.Append(Entry{Summary: "fresh"}); err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	if got := s.List(); len(got) != 1 || got[0].Summary != "fresh" {
		t.Errorf("unexpected list after recovery: %+v", got)
	}
}

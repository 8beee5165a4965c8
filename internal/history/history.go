// Package history persists past analyses as an append-only, capped list.
//
// The store is a purely additive concern: the analysis pipeline never
// reads from it. Entries are kept in a single JSON file so a session can
// be inspected or wiped by deleting the file.
package history

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MaxEntries caps the history to the most recent analyses; older entries
// are dropped on append.
const MaxEntries = 30

// Entry captures one saved analysis.
type Entry struct {
	ID           string    `json:"id"`
	Timestamp    time.Time `json:"timestamp"`
	VerdictTitle string    `json:"verdict_title"`
	Summary      string    `json:"summary"`
	RawText      string    `json:"raw_text"`
	Codes        []string  `json:"codes,omitempty"`
	Allergens    []string  `json:"allergens,omitempty"`
	HiddenSugars []string  `json:"hidden_sugars,omitempty"`
}

// Store is a file-backed history of analyses, safe for concurrent use.
type Store struct {
	mu   sync.Mutex
	path string
}

// NewStore creates a store persisting to the given file path. The file is
// created on first append; a missing or corrupt file reads as empty.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Append saves an entry, assigning it an id and timestamp, and enforces
// the MaxEntries cap by dropping the oldest entries.
func (s *Store) Append(e Entry) (Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e.ID = uuid.NewString()
	e.Timestamp = time.Now().UTC()

	entries := s.read()
	entries = append(entries, e)
	if len(entries) > MaxEntries {
		entries = entries[len(entries)-MaxEntries:]
	}

	if err := s.write(entries); err != nil {
		return Entry{}, err
	}
	return e, nil
}

// List returns the saved entries, newest first.
func (s *Store) List() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := s.read()
	out := make([]Entry, len(entries))
	for i, e := range entries {
		out[len(entries)-1-i] = e
	}
	return out
}

// Clear removes all saved entries.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to clear history: %w", err)
	}
	return nil
}

// read loads entries from disk, oldest first. Corrupt or missing data
// degrades to an empty list.
func (s *Store) read() []Entry {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil
	}
	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil
	}
	return entries
}

func (s *Store) write(entries []Entry) error {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal history: %w", err)
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create history directory: %w", err)
		}
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write history: %w", err)
	}
	return nil
}

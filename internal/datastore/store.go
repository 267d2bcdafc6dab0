// Package datastore persists the whole application state as one JSON
// document on disk. Every mutation rewrites the file in full.
package datastore

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/slidedeckhq/slidedeck-be/internal/models"
)

// State is the entire persisted dataset.
type State struct {
	Users         map[string]models.User         `json:"users"`
	Presentations map[string]models.Presentation `json:"presentations"`
}

// NewState returns an empty default state.
func NewState() State {
	return State{
		Users:         make(map[string]models.User),
		Presentations: make(map[string]models.Presentation),
	}
}

// Store reads and writes the JSON datastore file. A single mutex serializes
// read-modify-write cycles so concurrent requests cannot drop each other's
// writes; the file remains the sole source of truth.
type Store struct {
	path string
	mu   sync.Mutex
}

// New creates a store backed by the given file path.
func New(path string) *Store {
	return &Store{path: path}
}

// Load returns the persisted state, or an empty default when the file is
// absent or unreadable. It never fails.
func (s *Store) Load() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

func (s *Store) load() State {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return NewState()
	}
	var st State
	if err := json.Unmarshal(raw, &st); err != nil {
		return NewState()
	}
	if st.Users == nil {
		st.Users = make(map[string]models.User)
	}
	if st.Presentations == nil {
		st.Presentations = make(map[string]models.Presentation)
	}
	return st
}

// Save rewrites the datastore file with the full state. The write goes to a
// temp file first and is moved into place, so readers never see a partial
// document.
func (s *Store) Save(st State) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(st)
}

func (s *Store) save(st State) error {
	raw, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".data-*.json")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), s.path)
}

// Update runs fn against the current state under the store lock and persists
// the result when fn succeeds. Errors from fn abort the write.
func (s *Store) Update(fn func(*State) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.load()
	if err := fn(&st); err != nil {
		return err
	}
	return s.save(st)
}

package datastore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/slidedeckhq/slidedeck-be/internal/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return New(filepath.Join(t.TempDir(), "data.json"))
}

func TestLoad_MissingFile(t *testing.T) {
	s := newTestStore(t)

	st := s.Load()
	if st.Users == nil || st.Presentations == nil {
		t.Fatal("expected empty default maps for a missing file")
	}
	if len(st.Users) != 0 || len(st.Presentations) != 0 {
		t.Fatalf("expected empty state, got %d users, %d presentations", len(st.Users), len(st.Presentations))
	}
}

func TestLoad_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}

	st := New(path).Load()
	if len(st.Users) != 0 || len(st.Presentations) != 0 {
		t.Fatal("corrupt file should load as empty default state")
	}
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	s := newTestStore(t)

	st := NewState()
	st.Users["alice"] = models.User{PasswordHash: "hash"}
	st.Presentations["p1"] = models.Presentation{ID: "p1", Owner: "alice", Title: "Deck"}
	if err := s.Save(st); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got := s.Load()
	if got.Users["alice"].PasswordHash != "hash" {
		t.Errorf("user not persisted: %+v", got.Users)
	}
	if got.Presentations["p1"].Title != "Deck" {
		t.Errorf("presentation not persisted: %+v", got.Presentations)
	}
}

func TestUpdate_PersistsAndAborts(t *testing.T) {
	s := newTestStore(t)

	err := s.Update(func(st *State) error {
		st.Users["bob"] = models.User{PasswordHash: "x"}
		return nil
	})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if _, ok := s.Load().Users["bob"]; !ok {
		t.Fatal("Update did not persist the mutation")
	}

	wantErr := os.ErrInvalid
	err = s.Update(func(st *State) error {
		st.Users["carol"] = models.User{}
		return wantErr
	})
	if err != wantErr {
		t.Fatalf("expected fn error back, got %v", err)
	}
	if _, ok := s.Load().Users["carol"]; ok {
		t.Fatal("failed Update must not persist")
	}
}

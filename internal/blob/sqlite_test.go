package blob

import (
	"path/filepath"
	"testing"
)

func TestSQLiteGetSet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "blobs.db")
	s, err := OpenSQLite(path)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	if _, ok, err := s.Get("projects"); err != nil || ok {
		t.Fatalf("expected absent key, got ok=%v err=%v", ok, err)
	}

	if err := s.Set("projects", `[{"id":"1"}]`); err != nil {
		t.Fatal(err)
	}
	if err := s.Set("projects", `[]`); err != nil {
		t.Fatalf("overwrite failed: %v", err)
	}

	v, ok, err := s.Get("projects")
	if err != nil || !ok {
		t.Fatalf("expected value, got ok=%v err=%v", ok, err)
	}
	if v != `[]` {
		t.Fatalf("got %q, want overwritten value", v)
	}
}

func TestSQLiteReopenKeepsValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "blobs.db")
	s, err := OpenSQLite(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Set("entries", "[1]"); err != nil {
		t.Fatal(err)
	}
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}

	s, err = OpenSQLite(path)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()
	v, ok, err := s.Get("entries")
	if err != nil || !ok || v != "[1]" {
		t.Fatalf("value lost across reopen: %q ok=%v err=%v", v, ok, err)
	}
}

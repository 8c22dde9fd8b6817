package session

import (
	"os"
	"path/filepath"
	"testing"
)

func TestStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")

	s, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if s.Authed() {
		t.Fatal("fresh store should not be authed")
	}

	if err := s.SetAuth("tok-123", "u-1", "ORGANIZER", "Sam"); err != nil {
		t.Fatalf("set auth: %v", err)
	}

	// A second Open must see everything the first persisted.
	s2, err := Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if !s2.Authed() || s2.Token() != "tok-123" {
		t.Fatalf("token not persisted, got %q", s2.Token())
	}
	if s2.UserID() != "u-1" || s2.Name() != "Sam" {
		t.Fatalf("hints not persisted: id=%q name=%q", s2.UserID(), s2.Name())
	}

	if err := s2.Clear(); err != nil {
		t.Fatalf("clear: %v", err)
	}
	s3, _ := Open(path)
	if s3.Authed() {
		t.Fatal("cleared store should not be authed")
	}
}

func TestStoreLegacyTokenKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	if err := os.WriteFile(path, []byte(`{"token":"legacy-tok"}`), 0o600); err != nil {
		t.Fatal(err)
	}
	s, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if s.Token() != "legacy-tok" {
		t.Fatalf("legacy token not promoted, got %q", s.Token())
	}
}

func TestStoreCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatal(err)
	}
	s, err := Open(path)
	if err != nil {
		t.Fatalf("corrupt file should not fail open: %v", err)
	}
	if s.Authed() {
		t.Fatal("corrupt file should read as logged out")
	}
}

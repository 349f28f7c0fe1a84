package session

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSetAuthPersistsAcrossRestart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "news-agent-auth.json")

	s := NewStore(path)
	if err := s.SetAuth("tok123", User{ID: 1, Username: "admin"}); err != nil {
		t.Fatalf("SetAuth: %v", err)
	}

	// Simulate a process restart: fresh store, explicit Load.
	s2 := NewStore(path)
	if err := s2.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !s2.IsAuthenticated() {
		t.Fatal("expected authenticated after reload")
	}
	if s2.Token() != "tok123" {
		t.Errorf("Token() = %q, want %q", s2.Token(), "tok123")
	}
	u := s2.User()
	if u == nil || u.ID != 1 || u.Username != "admin" {
		t.Errorf("User() = %+v, want {1 admin}", u)
	}
}

func TestLoadMissingFile(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "absent.json"))
	if err := s.Load(); err != nil {
		t.Fatalf("Load on missing file: %v", err)
	}
	if s.IsAuthenticated() {
		t.Error("expected unauthenticated store")
	}
	if s.User() != nil {
		t.Error("expected nil user")
	}
}

func TestLogoutClearsAndPersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "news-agent-auth.json")
	s := NewStore(path)
	if err := s.SetAuth("tok", User{ID: 2, Username: "bob"}); err != nil {
		t.Fatalf("SetAuth: %v", err)
	}

	cleared, err := s.Logout()
	if err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if !cleared {
		t.Error("first Logout should report cleared")
	}
	if s.IsAuthenticated() || s.User() != nil {
		t.Error("store should be empty after logout")
	}

	// Second logout is a no-op.
	cleared, err = s.Logout()
	if err != nil {
		t.Fatalf("second Logout: %v", err)
	}
	if cleared {
		t.Error("second Logout should report nothing cleared")
	}

	// The empty record must survive a reload.
	s2 := NewStore(path)
	if err := s2.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s2.IsAuthenticated() {
		t.Error("reloaded store should be unauthenticated")
	}
}

func TestLoadCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "news-agent-auth.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatal(err)
	}
	s := NewStore(path)
	if err := s.Load(); err == nil {
		t.Error("expected error loading corrupt record")
	}
}

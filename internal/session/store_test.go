package session

import (
	"os"
	"path/filepath"
	"regexp"
	"testing"
)

func TestStore_GetAbsent(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "session"))

	id, ok := store.Get()
	if ok {
		t.Fatalf("expected no session, got %q", id)
	}
	if id != "" {
		t.Errorf("absent session should read as empty, got %q", id)
	}
}

func TestStore_SetThenGet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session")
	store := NewStore(path)

	if err := store.Set("abc-123"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	id, ok := store.Get()
	if !ok || id != "abc-123" {
		t.Errorf("expected abc-123, got %q ok=%v", id, ok)
	}

	// A second store over the same file sees the persisted value.
	fresh := NewStore(path)
	id, ok = fresh.Get()
	if !ok || id != "abc-123" {
		t.Errorf("persisted read: expected abc-123, got %q ok=%v", id, ok)
	}
}

func TestStore_SetObservedWithoutRereadingDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session")
	store := NewStore(path)

	if err := store.Set("cached-id"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	// Removing the backing file must not affect reads in this runtime:
	// Set populated the in-memory cache.
	if err := os.Remove(path); err != nil {
		t.Fatalf("remove failed: %v", err)
	}

	id, ok := store.Get()
	if !ok || id != "cached-id" {
		t.Errorf("expected cached-id from memory, got %q ok=%v", id, ok)
	}
}

func TestStore_SetRejectsEmpty(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "session"))
	if err := store.Set(""); err == nil {
		t.Error("expected error for empty session id")
	}
}

func TestStore_Clear(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session")
	store := NewStore(path)

	if err := store.Set("to-clear"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := store.Clear(); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}

	if id, ok := store.Get(); ok {
		t.Errorf("expected no session after clear, got %q", id)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("expected session file removed")
	}

	// Clearing an already-clear store is not an error.
	if err := store.Clear(); err != nil {
		t.Errorf("second Clear failed: %v", err)
	}
}

func TestNewID(t *testing.T) {
	uuidShape := regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-4[0-9a-f]{3}-[89ab][0-9a-f]{3}-[0-9a-f]{12}$`)

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := NewID()
		if id == "" {
			t.Fatal("NewID returned empty string")
		}
		if !uuidShape.MatchString(id) {
			t.Fatalf("NewID returned non-v4 shape: %q", id)
		}
		if seen[id] {
			t.Fatalf("NewID repeated %q", id)
		}
		seen[id] = true
	}
}

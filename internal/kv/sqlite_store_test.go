package kv

import (
	"path/filepath"
	"strings"
	"testing"
)

func newTestSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store := NewSQLiteStore(filepath.Join(t.TempDir(), "habitflow.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestSQLiteStore_LoadWithoutInitFails(t *testing.T) {
	store := NewSQLiteStore(filepath.Join(t.TempDir(), "habitflow.db"))

	err := store.Load()
	if err == nil {
		t.Fatal("Expected Load to fail for missing database")
	}
	if !strings.Contains(err.Error(), "not initialized") {
		t.Errorf("Expected a not-initialized error, got: %v", err)
	}
}

func TestSQLiteStore_SetGetDelete(t *testing.T) {
	store := newTestSQLiteStore(t)

	if err := store.Set("active_habit_id", "habit-1"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	value, ok, err := store.Get("active_habit_id")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if !ok || value != "habit-1" {
		t.Errorf("Expected %q, got %q (ok=%v)", "habit-1", value, ok)
	}

	if err := store.Delete("active_habit_id"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if err := store.Delete("active_habit_id"); err != nil {
		t.Errorf("Expected deleting a missing key to be a no-op, got: %v", err)
	}

	_, ok, err = store.Get("active_habit_id")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if ok {
		t.Error("Expected key to be gone after Delete")
	}
}

func TestSQLiteStore_SetUpserts(t *testing.T) {
	store := newTestSQLiteStore(t)

	if err := store.Set("key", "first"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := store.Set("key", "second"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	value, _, err := store.Get("key")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if value != "second" {
		t.Errorf("Expected upserted value %q, got %q", "second", value)
	}
}

func TestSQLiteStore_PersistsAcrossReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "habitflow.db")

	store := NewSQLiteStore(path)
	if err := store.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	if err := store.Set("first_run", "true"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	reopened := NewSQLiteStore(path)
	if err := reopened.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	defer reopened.Close()

	value, ok, err := reopened.Get("first_run")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if !ok || value != "true" {
		t.Errorf("Expected persisted value %q, got %q (ok=%v)", "true", value, ok)
	}
}

func TestSQLiteStore_KeysAreSorted(t *testing.T) {
	store := newTestSQLiteStore(t)

	for _, key := range []string{"c", "a", "b"} {
		if err := store.Set(key, "v"); err != nil {
			t.Fatalf("Set failed: %v", err)
		}
	}

	keys, err := store.Keys()
	if err != nil {
		t.Fatalf("Keys failed: %v", err)
	}
	if len(keys) != 3 || keys[0] != "a" || keys[1] != "b" || keys[2] != "c" {
		t.Errorf("Expected sorted keys [a b c], got %v", keys)
	}
}

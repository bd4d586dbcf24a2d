package workspace_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"tagreview/internal/records"
	"tagreview/internal/reviewerr"
	"tagreview/internal/workspace"
)

func createStore(t *testing.T, path string) {
	t.Helper()
	store, err := records.Open(context.Background(), path, records.Options{})
	if err != nil {
		t.Fatalf("records.Open: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
}

func TestNewName(t *testing.T) {
	now := time.Date(2026, 3, 1, 14, 5, 9, 0, time.UTC)
	cases := map[string]string{
		"/data/issues.xlsx":   "issues_20260301_140509.db",
		"Round 2: tags?.xlsx": "Round 2- tags_20260301_140509.db",
		"export.csv":          "export_20260301_140509.db",
		"":                    "review_20260301_140509.db",
	}
	for input, want := range cases {
		if got := workspace.NewName(input, now); got != want {
			t.Fatalf("NewName(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestResolve(t *testing.T) {
	dir := t.TempDir()
	ws := workspace.New(dir, nil)

	got, err := ws.Resolve("round1")
	if err != nil || got != filepath.Join(dir, "round1.db") {
		t.Fatalf("Resolve bare name = %q, %v", got, err)
	}
	got, err = ws.Resolve("round1.db")
	if err != nil || got != filepath.Join(dir, "round1.db") {
		t.Fatalf("Resolve name with extension = %q, %v", got, err)
	}
	explicit := filepath.Join(t.TempDir(), "elsewhere.sqlite")
	got, err = ws.Resolve(explicit)
	if err != nil || got != explicit {
		t.Fatalf("Resolve path = %q, %v", got, err)
	}
	if _, err := ws.Resolve(""); err == nil {
		t.Fatal("expected error for empty reference")
	}
	if _, err := ws.Resolve("bad|name"); err == nil {
		t.Fatal("expected error for unsafe name")
	}
}

func TestListNewestFirst(t *testing.T) {
	dir := t.TempDir()
	ws := workspace.New(dir, nil)
	for _, name := range []string{"a_20260101_000000.db", "a_20260301_000000.db", "notes.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
	}
	entries, err := ws.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(entries) != 2 || entries[0].Name != "a_20260301_000000.db" || entries[1].Name != "a_20260101_000000.db" {
		t.Fatalf("unexpected entries: %#v", entries)
	}

	missing := workspace.New(filepath.Join(dir, "nope"), nil)
	if entries, err := missing.List(); err != nil || len(entries) != 0 {
		t.Fatalf("expected empty listing for missing dir, got %v, %v", entries, err)
	}
}

func TestRenameMovesStore(t *testing.T) {
	dir := t.TempDir()
	ws := workspace.New(dir, nil)
	createStore(t, filepath.Join(dir, "old.db"))

	newPath, err := ws.Rename("old", "new name")
	if err != nil {
		t.Fatalf("Rename failed: %v", err)
	}
	if newPath != filepath.Join(dir, "new name.db") {
		t.Fatalf("unexpected new path %q", newPath)
	}
	if _, err := os.Stat(filepath.Join(dir, "old.db")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("old store still present: %v", err)
	}
	store, err := records.Open(context.Background(), newPath, records.Options{ReadOnly: true})
	if err != nil {
		t.Fatalf("open renamed store: %v", err)
	}
	_ = store.Close()
}

func TestRenameRefusesExistingTarget(t *testing.T) {
	dir := t.TempDir()
	ws := workspace.New(dir, nil)
	createStore(t, filepath.Join(dir, "a.db"))
	createStore(t, filepath.Join(dir, "b.db"))

	if _, err := ws.Rename("a", "b"); !errors.Is(err, workspace.ErrExists) {
		t.Fatalf("expected ErrExists, got %v", err)
	}
}

func TestLockedStoreCannotBeRenamedOrDeleted(t *testing.T) {
	dir := t.TempDir()
	ws := workspace.New(dir, nil)
	path := filepath.Join(dir, "busy.db")
	store, err := records.Open(context.Background(), path, records.Options{})
	if err != nil {
		t.Fatalf("records.Open: %v", err)
	}
	defer store.Close()

	if !workspace.IsLocked(path) {
		t.Fatal("expected store to report locked")
	}
	if _, err := ws.Rename("busy", "other"); !errors.Is(err, reviewerr.ErrLocked) {
		t.Fatalf("expected ErrLocked on rename, got %v", err)
	}
	if err := ws.Delete("busy"); !errors.Is(err, reviewerr.ErrLocked) {
		t.Fatalf("expected ErrLocked on delete, got %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("store should still exist: %v", err)
	}
}

func TestDeleteRemovesSidecars(t *testing.T) {
	dir := t.TempDir()
	ws := workspace.New(dir, nil)
	path := filepath.Join(dir, "gone.db")
	createStore(t, path)
	if err := os.WriteFile(path+"-wal", nil, 0o644); err != nil {
		t.Fatalf("write wal: %v", err)
	}

	if err := ws.Delete("gone.db"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	for _, p := range []string{path, path + "-wal", path + "-shm", path + ".lock"} {
		if _, err := os.Stat(p); !errors.Is(err, os.ErrNotExist) {
			t.Fatalf("%s still present: %v", filepath.Base(p), err)
		}
	}
	if err := ws.Delete("gone"); err == nil {
		t.Fatal("expected error deleting a missing store")
	}
}

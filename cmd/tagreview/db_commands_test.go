package main

import (
	"os"
	"path/filepath"
	"testing"

	"tagreview/internal/testsupport"
)

func TestDBLifecycle(t *testing.T) {
	env := setupCLITestEnv(t)
	env.seedDataset(t)

	out, _, err := runCLI(t, []string{"db", "list"}, env.configPath)
	if err != nil {
		t.Fatalf("db list: %v", err)
	}
	requireContains(t, out, "review.db")

	out, _, err = runCLI(t, []string{"db", "health"}, env.configPath)
	if err != nil {
		t.Fatalf("db health: %v", err)
	}
	requireContains(t, out, "Records:        3")

	if _, _, err := runCLI(t, []string{"db", "rename", "review.db", "archive"}, env.configPath); err != nil {
		t.Fatalf("db rename: %v", err)
	}
	if _, err := os.Stat(filepath.Join(env.cfg.Paths.StoreDir, "archive.db")); err != nil {
		t.Fatalf("expected renamed store: %v", err)
	}

	out, _, err = runCLI(t, []string{"--db", "archive.db", "stats"}, env.configPath)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	requireContains(t, out, "Total:       3")

	if _, _, err := runCLI(t, []string{"db", "delete", "archive.db"}, env.configPath); err == nil {
		t.Fatal("expected delete without --yes to fail")
	}
	if _, _, err := runCLI(t, []string{"db", "delete", "archive.db", "--yes"}, env.configPath); err != nil {
		t.Fatalf("db delete: %v", err)
	}
	if _, err := os.Stat(filepath.Join(env.cfg.Paths.StoreDir, "archive.db")); !os.IsNotExist(err) {
		t.Fatalf("expected store removed, stat err %v", err)
	}
}

func TestImportNewCreatesNamedStore(t *testing.T) {
	env := setupCLITestEnv(t)
	path := writeDataset(t, env.baseDir, "q3-feedback.csv", testsupport.DatasetHeader,
		testsupport.Row("Survey", "Bills arrive late", "Resident", "Finance", "Billing"),
	)

	out, _, err := runCLI(t, []string{"import", "--new", path}, env.configPath)
	if err != nil {
		t.Fatalf("import --new: %v", err)
	}
	requireContains(t, out, "Select this store with --db q3-feedback_")

	matches, _ := filepath.Glob(filepath.Join(env.cfg.Paths.StoreDir, "q3-feedback_*.db"))
	if len(matches) != 1 {
		t.Fatalf("expected one new store, got %v", matches)
	}
}

func TestDoctor(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"doctor"}, env.configPath)
	if err != nil {
		t.Fatalf("doctor: %v", err)
	}
	requireContains(t, out, "Store directory:")
	requireContains(t, out, "OK")
}

func writeDataset(t *testing.T, dir, name string, header []string, rows ...[]string) string {
	t.Helper()
	return testsupport.WriteCSV(t, dir, name, header, rows...)
}

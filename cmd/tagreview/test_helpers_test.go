package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"tagreview/internal/config"
	"tagreview/internal/testsupport"
)

type cliTestEnv struct {
	cfg        *config.Config
	configPath string
	baseDir    string
}

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	cfg := testsupport.NewConfig(t, testsupport.WithVocabularyFile("Billing", "Access", "Safety", "Noise"))
	base := testsupport.BaseDir(cfg)
	homeDir := filepath.Join(base, "home")
	if err := os.MkdirAll(homeDir, 0o755); err != nil {
		t.Fatalf("mkdir home: %v", err)
	}
	t.Setenv("HOME", homeDir)

	configPath := filepath.Join(homeDir, ".config", "tagreview", "config.toml")
	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		t.Fatalf("mkdir config dir: %v", err)
	}
	writeTestConfig(t, configPath, cfg)

	return &cliTestEnv{cfg: cfg, configPath: configPath, baseDir: base}
}

// seedDataset writes a three-row CSV dataset and imports it into the default store.
func (e *cliTestEnv) seedDataset(t *testing.T) string {
	t.Helper()
	path := testsupport.WriteCSV(t, e.baseDir, "feedback.csv", testsupport.DatasetHeader,
		testsupport.Row("Survey", "Bills arrive late", "Resident", "Finance, Ops", "Billing"),
		testsupport.Row("Hotline", "Ramp is broken", "Visitor", "Ops", "Access", "Safety"),
		testsupport.Row("Survey", "Loud generator", "Resident", "Ops", "Noise"),
	)
	if _, _, err := runCLI(t, []string{"import", path}, e.configPath); err != nil {
		t.Fatalf("seed import: %v", err)
	}
	return path
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeTestConfig(t *testing.T, path string, cfg *config.Config) {
	t.Helper()
	content := fmt.Sprintf(
		"[paths]\nstore_dir = %q\nexport_dir = %q\nlog_dir = %q\n\n[store]\nname = %q\n\n[vocabulary]\npath = %q\n\n[logging]\nlevel = \"error\"\n",
		cfg.Paths.StoreDir,
		cfg.Paths.ExportDir,
		cfg.Paths.LogDir,
		cfg.Store.Name,
		cfg.Vocabulary.Path,
	)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}

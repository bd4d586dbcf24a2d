package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"tagreview/internal/config"
)

func TestLoadDefaultConfigExpandsPaths(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Chdir(t.TempDir())

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	wantStore := filepath.Join(tempHome, ".local", "share", "tagreview", "stores")
	if cfg.Paths.StoreDir != wantStore {
		t.Fatalf("unexpected store dir: got %q want %q", cfg.Paths.StoreDir, wantStore)
	}
	if cfg.Import.ArrayDelimiter != "," {
		t.Fatalf("unexpected array delimiter %q", cfg.Import.ArrayDelimiter)
	}
	if cfg.Export.Format != "xlsx" {
		t.Fatalf("unexpected export format %q", cfg.Export.Format)
	}
	if cfg.Store.BusyTimeoutMS != 5000 {
		t.Fatalf("unexpected busy timeout %d", cfg.Store.BusyTimeoutMS)
	}
	if cfg.Vocabulary.Path != "" {
		t.Fatalf("expected built-in vocabulary by default, got %q", cfg.Vocabulary.Path)
	}
}

func TestLoadCustomPath(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)

	configPath := filepath.Join(t.TempDir(), "custom.toml")
	content := `
[paths]
store_dir = "~/stores"
log_dir = "~/logs"

[vocabulary]
path = "~/tags.yaml"

[import]
array_delimiter = ";"
default_sheet = " Issues "

[export]
format = "CSV"

[logging]
format = "json"
level = "DEBUG"
`
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || resolved != configPath {
		t.Fatalf("expected existing config at %q, got %q (exists=%v)", configPath, resolved, exists)
	}
	if cfg.Paths.StoreDir != filepath.Join(tempHome, "stores") {
		t.Fatalf("unexpected store dir %q", cfg.Paths.StoreDir)
	}
	if cfg.Vocabulary.Path != filepath.Join(tempHome, "tags.yaml") {
		t.Fatalf("unexpected vocabulary path %q", cfg.Vocabulary.Path)
	}
	if cfg.Import.ArrayDelimiter != ";" || cfg.Import.DefaultSheet != "Issues" {
		t.Fatalf("unexpected import section %+v", cfg.Import)
	}
	if cfg.Export.Format != "csv" {
		t.Fatalf("expected normalized csv format, got %q", cfg.Export.Format)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.Format != "json" {
		t.Fatalf("unexpected logging %+v", cfg.Logging)
	}
}

func TestStoreDirEnvOverride(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	override := t.TempDir()
	t.Setenv("TAGREVIEW_STORE_DIR", override)

	cfg, _, _, err := config.Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Paths.StoreDir != override {
		t.Fatalf("expected env override %q, got %q", override, cfg.Paths.StoreDir)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*config.Config)
		want   string
	}{
		{"export format", func(c *config.Config) { c.Export.Format = "pdf" }, "export.format"},
		{"log format", func(c *config.Config) { c.Logging.Format = "xml" }, "logging.format"},
		{"log level", func(c *config.Config) { c.Logging.Level = "trace" }, "logging.level"},
		{"store name", func(c *config.Config) { c.Store.Name = "a/b.db" }, "store.name"},
		{"busy timeout", func(c *config.Config) { c.Store.BusyTimeoutMS = -1 }, "busy_timeout_ms"},
	}
	for _, tc := range cases {
		cfg := config.Default()
		tc.mutate(&cfg)
		err := cfg.Validate()
		if err == nil || !strings.Contains(err.Error(), tc.want) {
			t.Fatalf("%s: expected error mentioning %q, got %v", tc.name, tc.want, err)
		}
	}
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "bad.toml")
	if err := os.WriteFile(path, []byte("[paths]\nstaging_dir = \"x\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, _, _, err := config.Load(path); err == nil {
		t.Fatal("expected unknown key to fail parsing")
	}
}

func TestSampleConfigParses(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sample.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	var cfg config.Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		t.Fatalf("sample config does not parse: %v", err)
	}
	if cfg.Export.Format != "xlsx" {
		t.Fatalf("unexpected sample export format %q", cfg.Export.Format)
	}
}

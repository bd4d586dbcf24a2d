package testsupport

import (
	"path/filepath"
	"testing"

	"tagreview/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.StoreDir = filepath.Join(base, "stores")
	cfgVal.Paths.ExportDir = filepath.Join(base, "exports")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.Store.Name = "review.db"

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithStoreName overrides the default store file name.
func WithStoreName(name string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Store.Name = name
	}
}

// WithVocabularyFile writes a vocabulary YAML file with the given tags and
// points the config at it.
func WithVocabularyFile(tags ...string) ConfigOption {
	return func(b *configBuilder) {
		path := filepath.Join(b.baseDir, "vocabulary.yaml")
		writeVocabulary(b.t, path, tags)
		b.cfg.Vocabulary.Path = path
	}
}

// WithExportFormat sets the full export format.
func WithExportFormat(format string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Export.Format = format
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.StoreDir)
}

// StorePath returns the configured default store location.
func StorePath(cfg *config.Config) string {
	return filepath.Join(cfg.Paths.StoreDir, cfg.Store.Name)
}

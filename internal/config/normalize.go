package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	if err := c.normalizeVocabulary(); err != nil {
		return err
	}
	c.normalizeStore()
	c.normalizeImport()
	c.normalizeExport()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	if value, ok := os.LookupEnv("TAGREVIEW_STORE_DIR"); ok && strings.TrimSpace(value) != "" {
		c.Paths.StoreDir = value
	}
	if strings.TrimSpace(c.Paths.StoreDir) == "" {
		c.Paths.StoreDir = defaultStoreDir
	}
	if strings.TrimSpace(c.Paths.ExportDir) == "" {
		c.Paths.ExportDir = defaultExportDir
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}

	var err error
	if c.Paths.StoreDir, err = expandPath(strings.TrimSpace(c.Paths.StoreDir)); err != nil {
		return fmt.Errorf("paths.store_dir: %w", err)
	}
	if c.Paths.ExportDir, err = expandPath(strings.TrimSpace(c.Paths.ExportDir)); err != nil {
		return fmt.Errorf("paths.export_dir: %w", err)
	}
	if c.Paths.LogDir, err = expandPath(strings.TrimSpace(c.Paths.LogDir)); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeVocabulary() error {
	if c.Vocabulary.Path == "" {
		if value, ok := os.LookupEnv("TAGREVIEW_VOCABULARY"); ok {
			c.Vocabulary.Path = value
		}
	}
	c.Vocabulary.Path = strings.TrimSpace(c.Vocabulary.Path)
	if c.Vocabulary.Path == "" {
		return nil
	}
	expanded, err := expandPath(c.Vocabulary.Path)
	if err != nil {
		return fmt.Errorf("vocabulary.path: %w", err)
	}
	c.Vocabulary.Path = expanded
	return nil
}

func (c *Config) normalizeStore() {
	c.Store.Name = strings.TrimSpace(c.Store.Name)
	if c.Store.BusyTimeoutMS == 0 {
		c.Store.BusyTimeoutMS = defaultBusyTimeoutMS
	}
}

// Delimiters are not trimmed: a tab or "; " is a legitimate choice.
func (c *Config) normalizeImport() {
	if c.Import.ArrayDelimiter == "" {
		c.Import.ArrayDelimiter = defaultArrayDelimiter
	}
	c.Import.DefaultSheet = strings.TrimSpace(c.Import.DefaultSheet)
}

func (c *Config) normalizeExport() {
	if c.Export.TagDelimiter == "" {
		c.Export.TagDelimiter = defaultTagDelimiter
	}
	c.Export.Format = strings.ToLower(strings.TrimSpace(c.Export.Format))
	if c.Export.Format == "" {
		c.Export.Format = defaultExportFormat
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}

package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateStore(); err != nil {
		return err
	}
	if err := c.validateExport(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validatePaths() error {
	if strings.TrimSpace(c.Paths.StoreDir) == "" {
		return errors.New("paths.store_dir must be set")
	}
	return nil
}

func (c *Config) validateStore() error {
	if c.Store.BusyTimeoutMS < 0 {
		return errors.New("store.busy_timeout_ms must be non-negative")
	}
	if strings.ContainsAny(c.Store.Name, `/\`) {
		return fmt.Errorf("store.name %q must be a file name, not a path", c.Store.Name)
	}
	return nil
}

func (c *Config) validateExport() error {
	switch c.Export.Format {
	case "xlsx", "csv":
	default:
		return fmt.Errorf("export.format: unsupported value %q (want xlsx or csv)", c.Export.Format)
	}
	if strings.ContainsAny(c.Export.TagDelimiter, "\r\n") {
		return errors.New("export.tag_delimiter must not contain line breaks")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}

// Package config loads, normalizes, and validates tagreview configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// TAGREVIEW_STORE_DIR. Always obtain settings through this package so the CLI
// and the engine packages receive sanitized paths and clear validation errors.
package config

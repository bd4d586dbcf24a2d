package workspace

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// Extension is the file suffix of review stores.
const Extension = ".db"

var fileNameReplacer = strings.NewReplacer(
	"/", "-",
	"\\", "-",
	":", "-",
	"*", "-",
	"?", "",
	"\"", "",
	"<", "",
	">", "",
	"|", "",
)

// SanitizeName replaces filesystem-unsafe characters in a store name.
// Slashes, backslashes, colons and asterisks become dashes; other unsafe
// characters are removed.
func SanitizeName(name string) string {
	return strings.TrimSpace(fileNameReplacer.Replace(strings.TrimSpace(name)))
}

// NewName derives a fresh store name from a dataset file, for example
// "issues.xlsx" at 2026-03-01 14:05:09 becomes "issues_20260301_140509.db".
func NewName(datasetPath string, now time.Time) string {
	base := filepath.Base(datasetPath)
	base = SanitizeName(strings.TrimSuffix(base, filepath.Ext(base)))
	if base == "" || base == "." {
		base = "review"
	}
	return fmt.Sprintf("%s_%s%s", base, now.Format("20060102_150405"), Extension)
}

// normalizeName validates a bare store name and appends the extension.
func normalizeName(name string) (string, error) {
	clean := SanitizeName(name)
	if clean == "" {
		return "", fmt.Errorf("store name %q is empty", name)
	}
	if clean != strings.TrimSpace(name) {
		return "", fmt.Errorf("store name %q contains unsupported characters", name)
	}
	if clean == "." || clean == ".." || strings.HasPrefix(clean, ".") {
		return "", fmt.Errorf("store name %q is not allowed", name)
	}
	if !strings.HasSuffix(clean, Extension) {
		clean += Extension
	}
	return clean, nil
}

func sidecars(path string) []string {
	return []string{path + "-wal", path + "-shm"}
}

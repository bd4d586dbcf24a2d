package preflight

import (
	"tagreview/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string `json:"name"`
	Passed bool   `json:"passed"`
	Detail string `json:"detail"`
}

// RunAll executes every preflight check for the given config.
func RunAll(cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	results := []Result{
		CheckDirectoryAccess("Store directory", cfg.Paths.StoreDir),
		CheckDirectoryAccess("Log directory", cfg.Paths.LogDir),
	}

	// The export directory is created on first export.
	if exists(cfg.Paths.ExportDir) {
		results = append(results, CheckDirectoryAccess("Export directory", cfg.Paths.ExportDir))
	}

	results = append(results, CheckVocabulary(cfg.Vocabulary.Path))
	return results
}

// Failed reports whether any result did not pass.
func Failed(results []Result) bool {
	for _, r := range results {
		if !r.Passed {
			return true
		}
	}
	return false
}

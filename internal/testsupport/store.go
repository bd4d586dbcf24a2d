package testsupport

import (
	"context"
	"testing"
	"time"

	"tagreview/internal/config"
	"tagreview/internal/records"
)

// MustOpenStore opens the configured records.Store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *records.Store {
	t.Helper()

	store, err := records.Open(context.Background(), StorePath(cfg), records.Options{
		BusyTimeout: time.Duration(cfg.Store.BusyTimeoutMS) * time.Millisecond,
	})
	if err != nil {
		t.Fatalf("records.Open: %v", err)
	}
	t.Cleanup(func() {
		_ = store.Close()
	})
	return store
}

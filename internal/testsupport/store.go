package testsupport

import (
	"testing"

	"fileman/internal/config"
	"fileman/internal/history"
)

// MustOpenHistory opens the history store configured on cfg and fails the
// test on error. The store is closed when the test completes.
func MustOpenHistory(t testing.TB, cfg *config.Config) *history.Store {
	t.Helper()

	store, err := history.Open(cfg.Paths.HistoryDB)
	if err != nil {
		t.Fatalf("open history store: %v", err)
	}
	t.Cleanup(func() {
		_ = store.Close()
	})
	return store
}

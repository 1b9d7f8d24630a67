package testsupport

import (
	"path/filepath"
	"testing"

	"fileman/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Paths.HistoryDB = filepath.Join(base, "history.db")

	for _, opt := range opts {
		opt(&cfg)
	}

	return &cfg
}

// WithConflictPolicy overrides the destination-collision policy.
func WithConflictPolicy(policy string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Organize.OnConflict = policy
	}
}

// WithScheme overrides the grouping scheme.
func WithScheme(scheme string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Organize.Scheme = scheme
	}
}

// WithMaxDepth bounds scan recursion.
func WithMaxDepth(depth int) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Organize.MaxDepth = depth
	}
}

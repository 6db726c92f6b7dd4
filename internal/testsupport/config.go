package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"linkarr/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
// The source and library trees exist on disk when this returns.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.SourceDir = filepath.Join(base, "source")
	cfg.Paths.LibraryDir = filepath.Join(base, "library")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Scan.RecencyWindowHours = 0
	cfg.Scan.Workers = 2

	for _, opt := range opts {
		opt(&cfg)
	}

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("ensure test directories: %v", err)
	}
	if err := os.MkdirAll(cfg.Paths.SourceDir, 0o755); err != nil {
		t.Fatalf("create test source dir: %v", err)
	}
	return &cfg
}

// WithWorkers overrides the scan worker count on the test config.
func WithWorkers(n int) ConfigOption {
	return func(c *config.Config) {
		c.Scan.Workers = n
	}
}

// WithRecencyWindow sets the scan recency gate on the test config.
func WithRecencyWindow(hours int) ConfigOption {
	return func(c *config.Config) {
		c.Scan.RecencyWindowHours = hours
	}
}

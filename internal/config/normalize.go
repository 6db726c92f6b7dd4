package config

import (
	"fmt"
	"os"
	"strings"

	"linkarr/internal/fileutil"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeLibrary()
	c.normalizeScan()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	if value, ok := os.LookupEnv("LINKARR_SOURCE_DIR"); ok && strings.TrimSpace(value) != "" {
		c.Paths.SourceDir = strings.TrimSpace(value)
	}
	if value, ok := os.LookupEnv("LINKARR_LIBRARY_DIR"); ok && strings.TrimSpace(value) != "" {
		c.Paths.LibraryDir = strings.TrimSpace(value)
	}

	var err error
	if c.Paths.SourceDir, err = fileutil.ExpandPath(c.Paths.SourceDir); err != nil {
		return fmt.Errorf("paths.source_dir: %w", err)
	}
	if c.Paths.LibraryDir, err = fileutil.ExpandPath(c.Paths.LibraryDir); err != nil {
		return fmt.Errorf("paths.library_dir: %w", err)
	}
	if c.Paths.LogDir, err = fileutil.ExpandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeLibrary() {
	c.Library.MoviesDir = strings.Trim(strings.TrimSpace(c.Library.MoviesDir), "/")
	if c.Library.MoviesDir == "" {
		c.Library.MoviesDir = defaultMoviesDir
	}
	c.Library.TVDir = strings.Trim(strings.TrimSpace(c.Library.TVDir), "/")
	if c.Library.TVDir == "" {
		c.Library.TVDir = defaultTVDir
	}
}

func (c *Config) normalizeScan() {
	c.Scan.MediaExtensions = normalizeExtensions(c.Scan.MediaExtensions, defaultMediaExtensions())
	c.Scan.SubtitleExtensions = normalizeExtensions(c.Scan.SubtitleExtensions, defaultSubtitleExtensions())
	if c.Scan.RecencyWindowHours < 0 {
		c.Scan.RecencyWindowHours = 0
	}
	if c.Scan.Workers <= 0 {
		c.Scan.Workers = defaultWorkers
	}
	if c.Scan.IntervalMinutes <= 0 {
		c.Scan.IntervalMinutes = defaultIntervalMinutes
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}

func normalizeExtensions(values []string, fallback []string) []string {
	if len(values) == 0 {
		return fallback
	}
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, value := range values {
		normalized := normalizeExtension(value)
		if normalized == "" {
			continue
		}
		if _, ok := seen[normalized]; ok {
			continue
		}
		seen[normalized] = struct{}{}
		out = append(out, normalized)
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}

package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"

	"linkarr/internal/fileutil"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory configuration.
type Paths struct {
	SourceDir  string `toml:"source_dir"`
	LibraryDir string `toml:"library_dir"`
	LogDir     string `toml:"log_dir"`
}

// Library contains configuration for the destination library structure.
type Library struct {
	MoviesDir string `toml:"movies_dir"`
	TVDir     string `toml:"tv_dir"`
}

// Scan contains configuration for the scan pass.
type Scan struct {
	MediaExtensions    []string `toml:"media_extensions"`
	SubtitleExtensions []string `toml:"subtitle_extensions"`
	// RecencyWindowHours limits a pass to files modified within the last N
	// hours. Zero disables the gate.
	RecencyWindowHours int `toml:"recency_window_hours"`
	Workers            int `toml:"workers"`
	IntervalMinutes    int `toml:"interval_minutes"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for linkarr.
type Config struct {
	Paths   Paths   `toml:"paths"`
	Library Library `toml:"library"`
	Scan    Scan    `toml:"scan"`
	Logging Logging `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration
// file location.
func DefaultConfigPath() (string, error) {
	return fileutil.ExpandPath("~/.config/linkarr/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned
// config has all path fields expanded and normalized. A .env file in the
// working directory is applied first, best-effort, so env overrides work the
// same from a shell or a compose file.
func Load(path string) (*Config, string, bool, error) {
	_ = godotenv.Load()

	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := fileutil.ExpandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("linkarr.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the directories a scan pass writes to. The source
// tree is deliberately excluded: it belongs to the downloader, and an absent
// source root is a fatal scan error rather than something to paper over.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.LibraryDir, c.Paths.LogDir} {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// IsMediaExtension reports whether ext (with or without a leading dot) is a
// recognized media file extension.
func (c *Config) IsMediaExtension(ext string) bool {
	return containsExtension(c.Scan.MediaExtensions, ext)
}

// IsSubtitleExtension reports whether ext is a recognized subtitle extension.
func (c *Config) IsSubtitleExtension(ext string) bool {
	return containsExtension(c.Scan.SubtitleExtensions, ext)
}

// RecencyWindow returns the configured mtime age gate, or zero when disabled.
func (c *Config) RecencyWindow() time.Duration {
	if c.Scan.RecencyWindowHours <= 0 {
		return 0
	}
	return time.Duration(c.Scan.RecencyWindowHours) * time.Hour
}

// ScanInterval returns the daemon scheduling interval.
func (c *Config) ScanInterval() time.Duration {
	return time.Duration(c.Scan.IntervalMinutes) * time.Minute
}

// MoviesRoot returns the absolute movies directory inside the library.
func (c *Config) MoviesRoot() string {
	return filepath.Join(c.Paths.LibraryDir, c.Library.MoviesDir)
}

// TVRoot returns the absolute TV shows directory inside the library.
func (c *Config) TVRoot() string {
	return filepath.Join(c.Paths.LibraryDir, c.Library.TVDir)
}

func containsExtension(exts []string, ext string) bool {
	normalized := normalizeExtension(ext)
	if normalized == "" {
		return false
	}
	for _, candidate := range exts {
		if candidate == normalized {
			return true
		}
	}
	return false
}

func normalizeExtension(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext == "" {
		return ""
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}

package config

import (
	"errors"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateLibrary(); err != nil {
		return err
	}
	if err := c.validateScan(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validatePaths() error {
	if strings.TrimSpace(c.Paths.SourceDir) == "" {
		return errors.New("paths.source_dir must be set")
	}
	if strings.TrimSpace(c.Paths.LibraryDir) == "" {
		return errors.New("paths.library_dir must be set")
	}
	if c.Paths.SourceDir == c.Paths.LibraryDir {
		return errors.New("paths.source_dir and paths.library_dir must differ")
	}
	return nil
}

func (c *Config) validateLibrary() error {
	if c.Library.MoviesDir == "" {
		return errors.New("library.movies_dir must be set")
	}
	if c.Library.TVDir == "" {
		return errors.New("library.tv_dir must be set")
	}
	if c.Library.MoviesDir == c.Library.TVDir {
		return errors.New("library.movies_dir and library.tv_dir must differ")
	}
	return nil
}

func (c *Config) validateScan() error {
	if len(c.Scan.MediaExtensions) == 0 {
		return errors.New("scan.media_extensions must include at least one extension")
	}
	if c.Scan.Workers <= 0 {
		return errors.New("scan.workers must be positive")
	}
	if c.Scan.IntervalMinutes <= 0 {
		return errors.New("scan.interval_minutes must be positive")
	}
	return nil
}

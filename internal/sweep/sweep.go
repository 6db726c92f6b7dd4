// Package sweep reconciles the library tree before provisioning: broken
// symlinks are removed, then directories left empty are pruned bottom-up.
package sweep

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"linkarr/internal/logging"
)

// Result counts what one sweep pass did.
type Result struct {
	RemovedLinks int
	PrunedDirs   int
	Errors       int
}

// Sweeper removes dead symlinks and empty directories from a library root.
// It only ever unlinks symlinks and rmdirs directories; regular files are
// never deleted, whatever state the tree is in.
type Sweeper struct {
	logger *slog.Logger
	dryRun bool
}

// New constructs a sweeper. logger may be nil.
func New(logger *slog.Logger, dryRun bool) *Sweeper {
	return &Sweeper{
		logger: logging.NewComponentLogger(logger, "sweep"),
		dryRun: dryRun,
	}
}

// Sweep walks root twice: first removing symlinks whose targets no longer
// resolve, then pruning empty directories deepest-first. The root itself is
// never removed. Per-item failures are logged and counted, not fatal; only a
// failure to enumerate the root aborts the sweep.
func (s *Sweeper) Sweep(root string) (Result, error) {
	var result Result

	if _, err := os.Lstat(root); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return result, nil
		}
		return result, err
	}

	if err := s.removeBrokenLinks(root, &result); err != nil {
		return result, err
	}
	if err := s.pruneEmptyDirs(root, &result); err != nil {
		return result, err
	}

	s.logger.Info("sweep complete",
		logging.Int("removed_links", result.RemovedLinks),
		logging.Int("pruned_dirs", result.PrunedDirs),
		logging.Int("errors", result.Errors))
	return result, nil
}

func (s *Sweeper) removeBrokenLinks(root string, result *Result) error {
	return filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			s.logger.Warn("cannot inspect path during sweep",
				logging.String("path", path), logging.Error(err))
			result.Errors++
			return nil
		}
		if entry.Type()&fs.ModeSymlink == 0 {
			return nil
		}

		// Stat follows the link; a not-exist error means the target is gone.
		if _, statErr := os.Stat(path); statErr == nil {
			return nil
		} else if !errors.Is(statErr, fs.ErrNotExist) {
			s.logger.Warn("cannot resolve symlink during sweep",
				logging.String("path", path), logging.Error(statErr))
			result.Errors++
			return nil
		}

		if s.dryRun {
			s.logger.Info("would remove broken symlink", logging.String("path", path))
			result.RemovedLinks++
			return nil
		}
		if rmErr := os.Remove(path); rmErr != nil {
			s.logger.Warn("cannot remove broken symlink",
				logging.String("path", path), logging.Error(rmErr))
			result.Errors++
			return nil
		}
		s.logger.Debug("removed broken symlink", logging.String("path", path))
		result.RemovedLinks++
		return nil
	})
}

func (s *Sweeper) pruneEmptyDirs(root string, result *Result) error {
	var dirs []string
	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			result.Errors++
			return nil
		}
		if entry.IsDir() && path != root {
			dirs = append(dirs, path)
		}
		return nil
	})
	if err != nil {
		return err
	}

	// Deepest directories first so a chain of empties collapses in one pass.
	sort.Slice(dirs, func(i, j int) bool {
		return strings.Count(dirs[i], string(os.PathSeparator)) >
			strings.Count(dirs[j], string(os.PathSeparator))
	})

	for _, dir := range dirs {
		entries, readErr := os.ReadDir(dir)
		if readErr != nil {
			s.logger.Warn("cannot read directory during prune",
				logging.String("path", dir), logging.Error(readErr))
			result.Errors++
			continue
		}
		if len(entries) != 0 {
			continue
		}

		if s.dryRun {
			s.logger.Info("would prune empty directory", logging.String("path", dir))
			result.PrunedDirs++
			continue
		}
		if rmErr := os.Remove(dir); rmErr != nil {
			s.logger.Warn("cannot prune directory",
				logging.String("path", dir), logging.Error(rmErr))
			result.Errors++
			continue
		}
		s.logger.Debug("pruned empty directory", logging.String("path", dir))
		result.PrunedDirs++
	}
	return nil
}

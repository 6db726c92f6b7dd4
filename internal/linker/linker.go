// Package linker provisions symlinks in the library tree. Every destination
// is driven through a small idempotent state machine: absent destinations are
// created, correct links are left alone, stale links are replaced, and
// anything that is not a symlink is never touched.
package linker

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"linkarr/internal/logging"
)

// Outcome is the result of driving one destination through the link state
// machine.
type Outcome string

const (
	// OutcomeCreated means the destination did not exist and a new symlink
	// was created.
	OutcomeCreated Outcome = "created"
	// OutcomeAlreadyCorrect means an existing symlink already pointed at
	// the source. Nothing was changed.
	OutcomeAlreadyCorrect Outcome = "already_correct"
	// OutcomeReplacedStale means an existing symlink pointed elsewhere and
	// was atomically swapped for one pointing at the source.
	OutcomeReplacedStale Outcome = "replaced_stale"
	// OutcomeConflictSkipped means a regular file or directory occupies the
	// destination. It was left untouched.
	OutcomeConflictSkipped Outcome = "conflict_skipped"
)

// Provisioner creates and repairs library symlinks. Safe for concurrent use:
// operations on the same destination path are serialized so two workers can
// never race the check-then-act sequence on one link.
type Provisioner struct {
	logger *slog.Logger
	dryRun bool

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// New constructs a provisioner. logger may be nil. When dryRun is set no
// filesystem mutation happens; outcomes report what would have been done.
func New(logger *slog.Logger, dryRun bool) *Provisioner {
	return &Provisioner{
		logger: logging.NewComponentLogger(logger, "linker"),
		dryRun: dryRun,
		locks:  make(map[string]*sync.Mutex),
	}
}

// Link ensures dest is a symlink pointing at source. Parent directories are
// created as needed. The returned outcome describes which state-machine arm
// ran; an error is returned only for filesystem failures, never for
// conflicts.
func (p *Provisioner) Link(source, dest string) (Outcome, error) {
	lock := p.destLock(dest)
	lock.Lock()
	defer lock.Unlock()

	outcome, err := p.link(source, dest)
	if err != nil {
		return outcome, err
	}

	switch outcome {
	case OutcomeConflictSkipped:
		p.logger.Warn("destination occupied by non-symlink, skipping",
			logging.String(logging.FieldDestination, dest),
			logging.String(logging.FieldSource, source))
	case OutcomeAlreadyCorrect:
		p.logger.Debug("symlink already correct",
			logging.String(logging.FieldDestination, dest))
	default:
		p.logger.Info("provisioned symlink",
			logging.String(logging.FieldSource, source),
			logging.String(logging.FieldDestination, dest),
			logging.String(logging.FieldOutcome, string(outcome)))
	}
	return outcome, nil
}

func (p *Provisioner) link(source, dest string) (Outcome, error) {
	info, err := os.Lstat(dest)
	switch {
	case errors.Is(err, os.ErrNotExist):
		if p.dryRun {
			return OutcomeCreated, nil
		}
		if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
			return "", fmt.Errorf("create link directory: %w", err)
		}
		if err := os.Symlink(source, dest); err != nil {
			return "", fmt.Errorf("create symlink: %w", err)
		}
		return OutcomeCreated, nil

	case err != nil:
		return "", fmt.Errorf("inspect destination: %w", err)
	}

	if info.Mode()&os.ModeSymlink == 0 {
		return OutcomeConflictSkipped, nil
	}

	current, err := os.Readlink(dest)
	if err != nil {
		return "", fmt.Errorf("read existing link: %w", err)
	}
	if sameTarget(current, source, dest) {
		return OutcomeAlreadyCorrect, nil
	}

	if p.dryRun {
		return OutcomeReplacedStale, nil
	}
	if err := os.Remove(dest); err != nil {
		return "", fmt.Errorf("remove stale link: %w", err)
	}
	if err := os.Symlink(source, dest); err != nil {
		return "", fmt.Errorf("replace symlink: %w", err)
	}
	return OutcomeReplacedStale, nil
}

// sameTarget reports whether an existing link target and the desired source
// resolve to the same path. Relative targets are resolved against the link's
// directory before comparison, and when both sides still exist on disk a
// file-identity check covers targets that differ only in spelling.
func sameTarget(current, source, dest string) bool {
	resolved := current
	if !filepath.IsAbs(resolved) {
		resolved = filepath.Join(filepath.Dir(dest), resolved)
	}
	if filepath.Clean(resolved) == filepath.Clean(source) {
		return true
	}

	curInfo, err := os.Stat(resolved)
	if err != nil {
		return false
	}
	srcInfo, err := os.Stat(source)
	if err != nil {
		return false
	}
	return os.SameFile(curInfo, srcInfo)
}

func (p *Provisioner) destLock(dest string) *sync.Mutex {
	p.mu.Lock()
	defer p.mu.Unlock()
	lock, ok := p.locks[dest]
	if !ok {
		lock = &sync.Mutex{}
		p.locks[dest] = lock
	}
	return lock
}

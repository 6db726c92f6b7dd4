// Package daemon runs scan passes on a schedule and enforces single-instance
// execution through a file lock.
package daemon

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync/atomic"

	"github.com/gofrs/flock"
	"github.com/robfig/cron/v3"

	"linkarr/internal/config"
	"linkarr/internal/logging"
	"linkarr/internal/scan"
)

// ErrAlreadyRunning is returned when another daemon instance holds the lock.
var ErrAlreadyRunning = errors.New("another linkarr daemon instance is already running")

// Daemon owns the scheduler and the instance lock.
type Daemon struct {
	cfg    *config.Config
	logger *slog.Logger

	lockPath string
	lock     *flock.Flock

	running atomic.Bool
}

// New constructs a daemon. logger may be nil.
func New(cfg *config.Config, logger *slog.Logger) (*Daemon, error) {
	if cfg == nil {
		return nil, errors.New("daemon requires config")
	}

	lockPath := filepath.Join(cfg.Paths.LogDir, "linkarr.lock")
	return &Daemon{
		cfg:      cfg,
		logger:   logging.NewComponentLogger(logger, "daemon"),
		lockPath: lockPath,
		lock:     flock.New(lockPath),
	}, nil
}

// LockPath returns the instance lock file location.
func (d *Daemon) LockPath() string {
	return d.lockPath
}

// Run acquires the instance lock, performs one immediate pass, then repeats
// on the configured interval until ctx is canceled. Pass failures are logged
// and the schedule keeps going; overlapping passes are skipped.
func (d *Daemon) Run(ctx context.Context) error {
	if d.running.Load() {
		return errors.New("daemon already running")
	}

	ok, err := d.lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock %s: %w", d.lockPath, err)
	}
	if !ok {
		return ErrAlreadyRunning
	}
	defer func() {
		if err := d.lock.Unlock(); err != nil {
			d.logger.Warn("failed to release daemon lock", logging.Error(err))
		}
	}()

	d.running.Store(true)
	defer d.running.Store(false)

	d.logger.Info("daemon started",
		logging.String("lock", d.lockPath),
		logging.Duration("interval", d.cfg.ScanInterval()))

	d.pass(ctx)

	scheduler := cron.New(cron.WithChain(
		cron.SkipIfStillRunning(cron.DiscardLogger),
	))
	spec := fmt.Sprintf("@every %s", d.cfg.ScanInterval())
	if _, err := scheduler.AddFunc(spec, func() { d.pass(ctx) }); err != nil {
		return fmt.Errorf("schedule scan passes: %w", err)
	}
	scheduler.Start()

	<-ctx.Done()
	stopCtx := scheduler.Stop()
	<-stopCtx.Done()
	d.logger.Info("daemon stopped")
	return nil
}

func (d *Daemon) pass(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}

	report, err := scan.New(d.cfg, d.logger, false).Run(ctx)
	if err != nil {
		d.logger.Error("scheduled scan pass failed", logging.Error(err))
		return
	}
	d.logger.Info("scheduled scan pass finished",
		logging.String(logging.FieldRunID, report.RunID),
		logging.Int("files", len(report.Records)))
}
